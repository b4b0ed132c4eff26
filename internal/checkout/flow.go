package checkout

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// PaymentOutcome is what the hosted gateway flow eventually reports
// back for an order.
type PaymentOutcome string

const (
	PaymentOutcomeSuccess   PaymentOutcome = "success"
	PaymentOutcomeFailed    PaymentOutcome = "failed"
	PaymentOutcomeDismissed PaymentOutcome = "dismissed"
)

// PaymentFlowRequest carries everything the hosted payment page needs
// to collect a payment for an order.
type PaymentFlowRequest struct {
	OrderID        uuid.UUID
	GatewayOrderID string
	AmountPaise    int64
	Currency       string
	CustomerName   string
	CustomerPhone  string
}

// PaymentFlowResult is delivered once per order when the hosted flow
// finishes, whichever way it finishes.
type PaymentFlowResult struct {
	Outcome          PaymentOutcome
	GatewayPaymentID string
	GatewaySignature string
	FailureReason    string
}

// PaymentFlow opens an external payment surface for an order. The flow
// is opaque: once opened, the only signal back is the completion
// callback registered alongside it.
type PaymentFlow interface {
	Open(req PaymentFlowRequest, onComplete func(PaymentFlowResult)) error
}

// HostedPaymentFlow tracks orders whose payment page is open. The verify
// and cancel endpoints complete the flow by order id, firing the
// completion handler the submission workflow registered.
type HostedPaymentFlow struct {
	mu      sync.Mutex
	pending map[uuid.UUID]func(PaymentFlowResult)
}

func NewHostedPaymentFlow() *HostedPaymentFlow {
	return &HostedPaymentFlow{
		pending: make(map[uuid.UUID]func(PaymentFlowResult)),
	}
}

func (f *HostedPaymentFlow) Open(req PaymentFlowRequest, onComplete func(PaymentFlowResult)) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, exists := f.pending[req.OrderID]; exists {
		return fmt.Errorf("payment flow already open for order %s", req.OrderID)
	}
	f.pending[req.OrderID] = onComplete
	return nil
}

// Complete resolves an open flow. Returns false when no flow is pending
// for the order, which happens when the page was already completed or
// was never opened.
func (f *HostedPaymentFlow) Complete(orderID uuid.UUID, result PaymentFlowResult) bool {
	f.mu.Lock()
	onComplete, ok := f.pending[orderID]
	if ok {
		delete(f.pending, orderID)
	}
	f.mu.Unlock()

	if !ok {
		return false
	}
	onComplete(result)
	return true
}

// IsPending reports whether a payment page is still open for the order.
func (f *HostedPaymentFlow) IsPending(orderID uuid.UUID) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.pending[orderID]
	return ok
}
