package payment

import (
	"fmt"
	"log"

	"github.com/google/uuid"
)

// Gateway creates orders on the external payment provider. Amounts are
// integer paise at this boundary.
type Gateway interface {
	CreateOrder(amountPaise int64, currency, receipt string) (*GatewayOrder, error)
	KeyID() string
}

// GatewayOrder is the provider-side order the hosted payment page is
// opened against.
type GatewayOrder struct {
	ID          string `json:"id"`
	AmountPaise int64  `json:"amount"`
	Currency    string `json:"currency"`
	Receipt     string `json:"receipt"`
}

// MockGateway stands in for the real provider when no API key is
// configured, so local checkout still completes end to end.
type MockGateway struct{}

func NewMockGateway() *MockGateway {
	return &MockGateway{}
}

func (m *MockGateway) CreateOrder(amountPaise int64, currency, receipt string) (*GatewayOrder, error) {
	if amountPaise <= 0 {
		return nil, fmt.Errorf("invalid amount: %d", amountPaise)
	}

	log.Printf("Mock Payment Gateway: Creating order for receipt %s, amount %d %s",
		receipt, amountPaise, currency)

	return &GatewayOrder{
		ID:          fmt.Sprintf("order_mock_%s", uuid.New().String()[:8]),
		AmountPaise: amountPaise,
		Currency:    currency,
		Receipt:     receipt,
	}, nil
}

func (m *MockGateway) KeyID() string {
	return "rzp_test_mock"
}
