package checkout

import (
	"context"
	"fmt"
	"log"
	"math"
	"sync"

	"github.com/google/uuid"

	"github.com/kundan-thakur61/mobilecoverdesign/internal/cart"
	"github.com/kundan-thakur61/mobilecoverdesign/internal/notify"
	"github.com/kundan-thakur61/mobilecoverdesign/internal/types"
)

// State of one order's trip through checkout.
type State string

const (
	StateIdle             State = "idle"
	StateValidating       State = "validating"
	StateSubmitting       State = "submitting"
	StateOrderCreated     State = "order_created"
	StatePaymentPending   State = "payment_pending"
	StatePaymentVerifying State = "payment_verifying"
	StateSucceeded        State = "succeeded"
	StateFailed           State = "failed"
)

// Dependencies the workflow needs from the order and payment services,
// kept as local interfaces so tests can fake them.
type OrderCreator interface {
	Create(ctx context.Context, order *types.Order) (*types.Order, error)
}

type GatewayCheckout struct {
	GatewayOrderID string
	KeyID          string
	AmountPaise    int64
	Currency       string
}

type PaymentOrders interface {
	CreatePaymentOrder(ctx context.Context, orderID uuid.UUID) (*GatewayCheckout, error)
	VerifyPayment(ctx context.Context, orderID uuid.UUID, gatewayOrderID, paymentID, signature string) error
	PaymentStatus(ctx context.Context, orderID uuid.UUID) (types.PaymentStatus, error)
}

type CartAccess interface {
	Get(ctx context.Context, sessionID string) (*types.Cart, error)
	Clear(ctx context.Context, sessionID string) error
}

// SubmitRequest is the place-order call from the checkout page.
type SubmitRequest struct {
	SessionID     string                `json:"session_id"`
	Form          ShippingForm          `json:"form"`
	PaymentMethod types.PaymentMethod   `json:"payment_method"`
	UPIApp        string                `json:"upi_app,omitempty"`
	UPIAppLabel   string                `json:"upi_app_label,omitempty"`
	SaveProfile   bool                  `json:"save_profile"`
}

// SubmitResult reports either field errors or the created order. For
// gateway payments Checkout carries what the hosted page needs.
type SubmitResult struct {
	Order       *types.Order      `json:"order,omitempty"`
	Checkout    *GatewayCheckout  `json:"checkout,omitempty"`
	FieldErrors map[string]string `json:"field_errors,omitempty"`
	Message     string            `json:"message,omitempty"`
}

// Workflow drives an order from form submission through payment. A
// gateway order stays open until the hosted payment flow reports back;
// the cart is only cleared once payment is confirmed (or immediately
// for cash on delivery).
type Workflow struct {
	orders   OrderCreator
	payments PaymentOrders
	carts    CartAccess
	profiles *ProfileStore
	flow     PaymentFlow
	notifier notify.Notifier

	mu     sync.Mutex
	states map[uuid.UUID]State
	// session that submitted each in-flight order, needed to clear the
	// right cart when the payment flow completes later
	sessions map[uuid.UUID]string
	// profile intent captured at submit, applied only once the order
	// actually succeeds
	pendingProfiles map[uuid.UUID]SubmitRequest
}

func NewWorkflow(orders OrderCreator, payments PaymentOrders, carts CartAccess, profiles *ProfileStore, flow PaymentFlow, notifier notify.Notifier) *Workflow {
	return &Workflow{
		orders:          orders,
		payments:        payments,
		carts:           carts,
		profiles:        profiles,
		flow:            flow,
		notifier:        notifier,
		states:          make(map[uuid.UUID]State),
		sessions:        make(map[uuid.UUID]string),
		pendingProfiles: make(map[uuid.UUID]SubmitRequest),
	}
}

func (w *Workflow) StateOf(orderID uuid.UUID) State {
	w.mu.Lock()
	defer w.mu.Unlock()
	if state, ok := w.states[orderID]; ok {
		return state
	}
	return StateIdle
}

func (w *Workflow) setState(orderID uuid.UUID, state State) {
	w.mu.Lock()
	w.states[orderID] = state
	w.mu.Unlock()
}

// Submit validates the form, builds the order from the session cart and
// creates it. Gateway methods additionally open the hosted payment flow
// and leave the order awaiting payment.
func (w *Workflow) Submit(ctx context.Context, req SubmitRequest) (*SubmitResult, error) {
	requireUPI := req.PaymentMethod == types.PaymentMethodDirectUPI
	if fieldErrors := ValidateAll(req.Form, requireUPI); len(fieldErrors) > 0 {
		return &SubmitResult{
			FieldErrors: fieldErrors,
			Message:     "Please fix all errors before proceeding",
		}, nil
	}

	sessionCart, err := w.carts.Get(ctx, req.SessionID)
	if err != nil {
		return nil, fmt.Errorf("cart load error: %v", err)
	}
	if sessionCart.IsEmpty() {
		return &SubmitResult{Message: "Your cart is empty"}, nil
	}

	items := NormalizeCartItems(sessionCart.Items)
	if len(items) == 0 {
		return &SubmitResult{Message: "Cart items could not be processed. Please try again."}, nil
	}

	totals := cart.CalculateTotals(sessionCart.Items, req.PaymentMethod)

	order := &types.Order{
		Items: items,
		ShippingAddress: types.ShippingAddress{
			Name:       req.Form.Name,
			Phone:      req.Form.Phone,
			Address1:   req.Form.Address,
			Address2:   req.Form.Address2,
			City:       req.Form.City,
			State:      req.Form.State,
			PostalCode: req.Form.PostalCode,
			Country:    "India",
		},
		Subtotal:      totals.Subtotal,
		ShippingFee:   totals.ShippingFee,
		CODFee:        totals.CODFee,
		Total:         totals.Total,
		PaymentMethod: req.PaymentMethod,
		Payment: types.PaymentInfo{
			Status: types.PaymentStatusPending,
			Method: req.PaymentMethod,
		},
		Status: types.OrderStatusPending,
	}
	if requireUPI {
		order.PaymentDetails = &types.UPIDetails{
			UPIID:       req.Form.UPIID,
			UPIApp:      req.UPIApp,
			UPIAppLabel: req.UPIAppLabel,
		}
	}

	created, err := w.orders.Create(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("order create error: %v", err)
	}
	w.setState(created.ID, StateOrderCreated)

	w.mu.Lock()
	w.sessions[created.ID] = req.SessionID
	w.pendingProfiles[created.ID] = req
	w.mu.Unlock()

	switch req.PaymentMethod {
	case types.PaymentMethodGateway, types.PaymentMethodDirectUPI:
		return w.openPayment(ctx, created, req)
	default:
		// Cash on delivery confirms immediately.
		if err := w.carts.Clear(ctx, req.SessionID); err != nil {
			log.Printf("Cart clear error after COD order %s: %v", created.ID, err)
		}
		w.applyProfile(ctx, created.ID)
		w.setState(created.ID, StateSucceeded)
		w.notifier.Success("Order placed successfully!")
		return &SubmitResult{Order: created, Message: "Order placed successfully!"}, nil
	}
}

func (w *Workflow) openPayment(ctx context.Context, order *types.Order, req SubmitRequest) (*SubmitResult, error) {
	checkout, err := w.payments.CreatePaymentOrder(ctx, order.ID)
	if err != nil {
		return nil, fmt.Errorf("payment order create error: %v", err)
	}

	flowReq := PaymentFlowRequest{
		OrderID:        order.ID,
		GatewayOrderID: checkout.GatewayOrderID,
		AmountPaise:    checkout.AmountPaise,
		Currency:       checkout.Currency,
		CustomerName:   req.Form.Name,
		CustomerPhone:  req.Form.Phone,
	}
	orderID := order.ID
	gatewayOrderID := checkout.GatewayOrderID
	sessionID := req.SessionID
	err = w.flow.Open(flowReq, func(result PaymentFlowResult) {
		w.HandlePaymentResult(context.Background(), orderID, gatewayOrderID, sessionID, result)
	})
	if err != nil {
		return nil, fmt.Errorf("payment flow open error: %v", err)
	}

	w.setState(order.ID, StatePaymentPending)
	return &SubmitResult{Order: order, Checkout: checkout}, nil
}

// HandlePaymentResult finishes a gateway payment. A successful hosted
// flow is still verified server side; when verification errors out the
// stored payment status is consulted before the customer is told to
// contact support.
func (w *Workflow) HandlePaymentResult(ctx context.Context, orderID uuid.UUID, gatewayOrderID, sessionID string, result PaymentFlowResult) {
	switch result.Outcome {
	case PaymentOutcomeSuccess:
		w.setState(orderID, StatePaymentVerifying)

		err := w.payments.VerifyPayment(ctx, orderID, gatewayOrderID, result.GatewayPaymentID, result.GatewaySignature)
		if err == nil {
			w.finishPaid(ctx, orderID, sessionID, "Payment successful! Your order is confirmed.")
			return
		}
		log.Printf("Payment verification error for order %s: %v", orderID, err)

		// Fallback: the verify call may have failed after the payment
		// was already recorded.
		if status, statusErr := w.payments.PaymentStatus(ctx, orderID); statusErr == nil && status == types.PaymentStatusPaid {
			w.finishPaid(ctx, orderID, sessionID, "Payment verified successfully")
			return
		}

		w.setState(orderID, StateFailed)
		w.notifier.Error("Payment verification failed. Please contact support with your order ID.")

	case PaymentOutcomeDismissed:
		// Order stays payable, cart stays intact.
		w.setState(orderID, StatePaymentPending)
		w.notifier.Info("Payment cancelled. Your order is saved and you can retry payment.")

	case PaymentOutcomeFailed:
		w.setState(orderID, StateFailed)
		reason := result.FailureReason
		if reason == "" {
			reason = "Payment failed. Please try again."
		}
		w.notifier.Error(reason)
	}
}

func (w *Workflow) finishPaid(ctx context.Context, orderID uuid.UUID, sessionID, message string) {
	if err := w.carts.Clear(ctx, sessionID); err != nil {
		log.Printf("Cart clear error after paid order %s: %v", orderID, err)
	}
	w.applyProfile(ctx, orderID)
	w.setState(orderID, StateSucceeded)
	w.notifier.Success(message)
}

// applyProfile persists or prunes the checkout prefill once the order
// succeeded. An unchecked save box also forgets a previously remembered
// UPI handle.
func (w *Workflow) applyProfile(ctx context.Context, orderID uuid.UUID) {
	w.mu.Lock()
	req, ok := w.pendingProfiles[orderID]
	delete(w.pendingProfiles, orderID)
	w.mu.Unlock()

	if !ok || w.profiles == nil {
		return
	}
	if !req.SaveProfile {
		w.profiles.ClearUPI(ctx, req.SessionID)
		return
	}
	w.saveProfile(ctx, req)
}

func (w *Workflow) saveProfile(ctx context.Context, req SubmitRequest) {
	if w.profiles == nil {
		return
	}
	profile := SavedProfile{
		Address: types.ShippingAddress{
			Name:       req.Form.Name,
			Phone:      req.Form.Phone,
			Address1:   req.Form.Address,
			Address2:   req.Form.Address2,
			City:       req.Form.City,
			State:      req.Form.State,
			PostalCode: req.Form.PostalCode,
			Country:    "India",
		},
	}
	if req.PaymentMethod == types.PaymentMethodDirectUPI && req.Form.UPIID != "" {
		profile.UPI = &types.UPIDetails{
			UPIID:       req.Form.UPIID,
			UPIApp:      req.UPIApp,
			UPIAppLabel: req.UPIAppLabel,
		}
	}
	w.profiles.Save(ctx, req.SessionID, profile)
}

// RupeesToPaise converts a rupee amount to the integer paise the
// gateway expects.
func RupeesToPaise(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
