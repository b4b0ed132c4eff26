package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func signPayload(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature_Valid(t *testing.T) {
	sig := signPayload("order_abc", "pay_123", "secret")

	assert.True(t, VerifySignature("order_abc", "pay_123", sig, "secret"))
}

func TestVerifySignature_WrongSecret(t *testing.T) {
	sig := signPayload("order_abc", "pay_123", "secret")

	assert.False(t, VerifySignature("order_abc", "pay_123", sig, "other-secret"))
}

func TestVerifySignature_TamperedPaymentID(t *testing.T) {
	sig := signPayload("order_abc", "pay_123", "secret")

	assert.False(t, VerifySignature("order_abc", "pay_999", sig, "secret"))
}

func TestVerifySignature_EmptySignature(t *testing.T) {
	assert.False(t, VerifySignature("order_abc", "pay_123", "", "secret"))
}
