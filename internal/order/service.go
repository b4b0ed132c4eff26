package order

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/kundan-thakur61/mobilecoverdesign/internal/events"
	"github.com/kundan-thakur61/mobilecoverdesign/internal/messaging"
	"github.com/kundan-thakur61/mobilecoverdesign/internal/types"
)

// Repository is the persistence surface the service needs. The concrete
// implementation is OrderRepository over Postgres.
type Repository interface {
	CreateOrder(order *OrderAggregate) error
	UpdateOrder(order *OrderAggregate) error
	GetOrderByID(orderID uuid.UUID) (*OrderAggregate, error)
	GetOrderByAWB(awbCode string) (*OrderAggregate, error)
	GetOrderByShipmentID(shipmentID string) (*OrderAggregate, error)
	ListOrders(limit, offset int) ([]*OrderAggregate, error)
}

// TrackIDKind selects how a tracking lookup interprets its id.
type TrackIDKind string

const (
	TrackByOrderID    TrackIDKind = "order"
	TrackByAWB        TrackIDKind = "awb"
	TrackByShipmentID TrackIDKind = "shipment"
)

type OrderService struct {
	repo      Repository
	publisher messaging.EventPublisher
}

func NewOrderService(repo Repository, publisher messaging.EventPublisher) *OrderService {
	return &OrderService{
		repo:      repo,
		publisher: publisher,
	}
}

// Create persists a new order and announces it on the event exchange.
// Publish failures are logged, not returned: the order exists either
// way.
func (s *OrderService) Create(ctx context.Context, order *types.Order) (*types.Order, error) {
	aggregate := NewOrderAggregate(order)

	if err := s.repo.CreateOrder(aggregate); err != nil {
		return nil, err
	}

	s.publish(events.StorefrontEvent{
		OrderID:       aggregate.ID,
		EventType:     events.OrderCreatedEvent,
		Service:       "order",
		CorrelationID: uuid.New(),
		Payload:       events.OrderCreatedPayload{Order: *aggregate.Order},
	})

	log.Printf("Order created: %s (%s, total %.2f)", aggregate.ID, aggregate.PaymentMethod, aggregate.Total)
	return aggregate.Order, nil
}

func (s *OrderService) Get(ctx context.Context, orderID uuid.UUID) (*types.Order, error) {
	aggregate, err := s.repo.GetOrderByID(orderID)
	if err != nil {
		return nil, err
	}
	return aggregate.Order, nil
}

func (s *OrderService) List(ctx context.Context, limit, offset int) ([]*types.Order, error) {
	aggregates, err := s.repo.ListOrders(limit, offset)
	if err != nil {
		return nil, err
	}

	orders := make([]*types.Order, len(aggregates))
	for i, aggregate := range aggregates {
		orders[i] = aggregate.Order
	}
	return orders, nil
}

// Track finds an order by order id, AWB code or shipment id so the
// tracking page accepts whichever reference the customer has at hand.
func (s *OrderService) Track(ctx context.Context, kind TrackIDKind, id string) (*types.Order, error) {
	switch kind {
	case TrackByOrderID:
		orderID, err := uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("invalid order id: %s", id)
		}
		return s.Get(ctx, orderID)
	case TrackByAWB:
		aggregate, err := s.repo.GetOrderByAWB(id)
		if err != nil {
			return nil, err
		}
		return aggregate.Order, nil
	case TrackByShipmentID:
		aggregate, err := s.repo.GetOrderByShipmentID(id)
		if err != nil {
			return nil, err
		}
		return aggregate.Order, nil
	default:
		return nil, fmt.Errorf("unknown tracking id kind: %s", kind)
	}
}

// PaymentStatus returns the canonical payment status for an order.
func (s *OrderService) PaymentStatus(ctx context.Context, orderID uuid.UUID) (types.PaymentStatus, error) {
	aggregate, err := s.repo.GetOrderByID(orderID)
	if err != nil {
		return "", err
	}
	return aggregate.Payment.Status, nil
}

// ConfirmPayment marks the order paid and publishes the confirmation.
func (s *OrderService) ConfirmPayment(ctx context.Context, orderID uuid.UUID, transactionID string) (*types.Order, error) {
	aggregate, err := s.repo.GetOrderByID(orderID)
	if err != nil {
		return nil, err
	}

	aggregate.MarkPaid(transactionID)
	if err := s.repo.UpdateOrder(aggregate); err != nil {
		return nil, err
	}

	s.publish(events.StorefrontEvent{
		OrderID:       aggregate.ID,
		EventType:     events.PaymentVerifiedEvent,
		Service:       "order",
		CorrelationID: uuid.New(),
		Payload: events.PaymentVerifiedPayload{
			OrderID:       aggregate.ID,
			TransactionID: transactionID,
			Amount:        aggregate.Total,
		},
	})

	return aggregate.Order, nil
}

// AttachGatewayOrder stores the gateway order id created for this
// order so a payment retry reuses it.
func (s *OrderService) AttachGatewayOrder(ctx context.Context, orderID uuid.UUID, gatewayOrderID string) error {
	aggregate, err := s.repo.GetOrderByID(orderID)
	if err != nil {
		return err
	}
	aggregate.SetGatewayOrder(gatewayOrderID)
	return s.repo.UpdateOrder(aggregate)
}

// UpdateShipment overwrites the shipment block on the order. A nil
// shipment clears it (after a cancellation).
func (s *OrderService) UpdateShipment(ctx context.Context, orderID uuid.UUID, shipment *types.Shipment) (*types.Order, error) {
	aggregate, err := s.repo.GetOrderByID(orderID)
	if err != nil {
		return nil, err
	}

	if shipment == nil {
		aggregate.ClearShipment()
		aggregate.UpdateStatus(types.OrderStatusProcessing)
	} else {
		aggregate.AttachShipment(shipment)
		if shipment.AWBCode != "" {
			aggregate.UpdateStatus(types.OrderStatusShipped)
		}
	}

	if err := s.repo.UpdateOrder(aggregate); err != nil {
		return nil, err
	}
	return aggregate.Order, nil
}

func (s *OrderService) publish(event events.StorefrontEvent) {
	if s.publisher == nil {
		return
	}
	event.ID = uuid.New()
	event.Timestamp = time.Now()
	if err := s.publisher.PublishEvent(event); err != nil {
		log.Printf("Event publish error (%s): %v", event.EventType, err)
	}
}
