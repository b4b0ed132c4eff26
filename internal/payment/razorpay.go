package payment

import (
	"fmt"

	"github.com/razorpay/razorpay-go"
)

// RazorpayGateway wraps the official client. Used whenever API keys are
// configured; the mock gateway covers the rest.
type RazorpayGateway struct {
	client *razorpay.Client
	keyID  string
}

func NewRazorpayGateway(keyID, keySecret string) *RazorpayGateway {
	return &RazorpayGateway{
		client: razorpay.NewClient(keyID, keySecret),
		keyID:  keyID,
	}
}

func (g *RazorpayGateway) CreateOrder(amountPaise int64, currency, receipt string) (*GatewayOrder, error) {
	if currency == "" {
		currency = "INR"
	}

	data := map[string]interface{}{
		"amount":   amountPaise,
		"currency": currency,
		"receipt":  receipt,
	}

	created, err := g.client.Order.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Razorpay order: %v", err)
	}

	id, _ := created["id"].(string)
	if id == "" {
		return nil, fmt.Errorf("razorpay order response missing id")
	}

	return &GatewayOrder{
		ID:          id,
		AmountPaise: amountPaise,
		Currency:    currency,
		Receipt:     receipt,
	}, nil
}

func (g *RazorpayGateway) KeyID() string {
	return g.keyID
}
