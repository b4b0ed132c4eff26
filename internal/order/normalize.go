package order

import (
	"encoding/json"

	"github.com/kundan-thakur61/mobilecoverdesign/internal/types"
)

// Older order records stored the payment state under different names:
// a top-level "paymentStatus" string, or the order "status" itself
// holding a payment value. NormalizePaymentStatus folds all of them
// into the canonical payment.status so readers only ever see one shape.
func NormalizePaymentStatus(raw json.RawMessage, order *types.Order) {
	if order.Payment.Status != "" {
		return
	}

	var legacy struct {
		PaymentStatus string `json:"paymentStatus"`
		Status        string `json:"status"`
	}
	if err := json.Unmarshal(raw, &legacy); err != nil {
		order.Payment.Status = types.PaymentStatusPending
		return
	}

	if status, ok := asPaymentStatus(legacy.PaymentStatus); ok {
		order.Payment.Status = status
		return
	}
	if status, ok := asPaymentStatus(legacy.Status); ok {
		order.Payment.Status = status
		return
	}
	order.Payment.Status = types.PaymentStatusPending
}

func asPaymentStatus(value string) (types.PaymentStatus, bool) {
	switch types.PaymentStatus(value) {
	case types.PaymentStatusPending, types.PaymentStatusProcessing,
		types.PaymentStatusPaid, types.PaymentStatusFailed:
		return types.PaymentStatus(value), true
	}
	return "", false
}
