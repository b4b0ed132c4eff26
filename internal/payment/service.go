package payment

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/kundan-thakur61/mobilecoverdesign/internal/events"
	"github.com/kundan-thakur61/mobilecoverdesign/internal/messaging"
	"github.com/kundan-thakur61/mobilecoverdesign/internal/types"
)

// Orders is the slice of the order service the payment service needs.
type Orders interface {
	Get(ctx context.Context, orderID uuid.UUID) (*types.Order, error)
	AttachGatewayOrder(ctx context.Context, orderID uuid.UUID, gatewayOrderID string) error
	ConfirmPayment(ctx context.Context, orderID uuid.UUID, transactionID string) (*types.Order, error)
	PaymentStatus(ctx context.Context, orderID uuid.UUID) (types.PaymentStatus, error)
}

// PaymentOrder is what the checkout page needs to open the hosted
// payment surface.
type PaymentOrder struct {
	GatewayOrderID string `json:"gateway_order_id"`
	KeyID          string `json:"key_id"`
	AmountPaise    int64  `json:"amount"`
	Currency       string `json:"currency"`
}

type PaymentService struct {
	gateway   Gateway
	keySecret string
	orders    Orders
	publisher messaging.EventPublisher
}

func NewPaymentService(gateway Gateway, keySecret string, orders Orders, publisher messaging.EventPublisher) *PaymentService {
	return &PaymentService{
		gateway:   gateway,
		keySecret: keySecret,
		orders:    orders,
		publisher: publisher,
	}
}

// CreatePaymentOrder creates (or reuses) the gateway order for an
// order. A retried payment keeps the original gateway order so the
// customer is never double charged for the same order.
func (s *PaymentService) CreatePaymentOrder(ctx context.Context, orderID uuid.UUID) (*PaymentOrder, error) {
	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.Payment.Status == types.PaymentStatusPaid {
		return nil, fmt.Errorf("order already paid: %s", orderID)
	}

	amountPaise := int64(math.Round(order.Total * 100))

	if order.GatewayOrderID != "" {
		return &PaymentOrder{
			GatewayOrderID: order.GatewayOrderID,
			KeyID:          s.gateway.KeyID(),
			AmountPaise:    amountPaise,
			Currency:       "INR",
		}, nil
	}

	receipt := fmt.Sprintf("receipt_%s", orderID.String()[:8])
	gatewayOrder, err := s.gateway.CreateOrder(amountPaise, "INR", receipt)
	if err != nil {
		return nil, err
	}

	if err := s.orders.AttachGatewayOrder(ctx, orderID, gatewayOrder.ID); err != nil {
		return nil, err
	}

	s.publish(events.StorefrontEvent{
		OrderID:   orderID,
		EventType: events.PaymentOrderEvent,
		Service:   "payment",
	})

	return &PaymentOrder{
		GatewayOrderID: gatewayOrder.ID,
		KeyID:          s.gateway.KeyID(),
		AmountPaise:    gatewayOrder.AmountPaise,
		Currency:       gatewayOrder.Currency,
	}, nil
}

// VerifyPayment validates the callback signature and settles the order.
// Without a configured key secret (mock gateway) the signature check is
// skipped so local checkouts complete.
func (s *PaymentService) VerifyPayment(ctx context.Context, orderID uuid.UUID, gatewayOrderID, paymentID, signature string) error {
	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return err
	}

	if order.GatewayOrderID != "" && order.GatewayOrderID != gatewayOrderID {
		return fmt.Errorf("gateway order mismatch for order %s", orderID)
	}

	if s.keySecret != "" && !VerifySignature(gatewayOrderID, paymentID, signature, s.keySecret) {
		s.publish(events.StorefrontEvent{
			OrderID:   orderID,
			EventType: events.PaymentFailedEvent,
			Service:   "payment",
			Payload: events.PaymentFailedPayload{
				OrderID: orderID,
				Reason:  "signature verification failed",
			},
		})
		return fmt.Errorf("payment signature verification failed for order %s", orderID)
	}

	if _, err := s.orders.ConfirmPayment(ctx, orderID, paymentID); err != nil {
		return err
	}

	log.Printf("Payment verified: order %s, payment %s", orderID, paymentID)
	return nil
}

// PaymentStatus reads the canonical payment status for the poller and
// the verify fallback path.
func (s *PaymentService) PaymentStatus(ctx context.Context, orderID uuid.UUID) (types.PaymentStatus, error) {
	return s.orders.PaymentStatus(ctx, orderID)
}

func (s *PaymentService) publish(event events.StorefrontEvent) {
	if s.publisher == nil {
		return
	}
	event.ID = uuid.New()
	event.Timestamp = time.Now()
	event.CorrelationID = uuid.New()
	if err := s.publisher.PublishEvent(event); err != nil {
		log.Printf("Event publish error (%s): %v", event.EventType, err)
	}
}
