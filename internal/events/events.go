package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/kundan-thakur61/mobilecoverdesign/internal/types"
)

type EventType string

const (
	OrderCreatedEvent      EventType = "order.created"
	OrderConfirmedEvent    EventType = "order.confirmed"
	PaymentOrderEvent      EventType = "payment.order.created"
	PaymentVerifiedEvent   EventType = "payment.verified"
	PaymentFailedEvent     EventType = "payment.failed"
	ShipmentCreatedEvent   EventType = "shipment.created"
	CourierAssignedEvent   EventType = "shipment.courier.assigned"
	PickupRequestedEvent   EventType = "shipment.pickup.requested"
	ShipmentCancelledEvent EventType = "shipment.cancelled"
	NotificationSentEvent  EventType = "notification.sent"
)

// StorefrontEvent is the envelope for every message on the storefront
// exchange. Payload is one of the typed payloads below on the publish
// side and a map[string]interface{} after JSON decoding on the consume
// side.
type StorefrontEvent struct {
	ID            uuid.UUID   `json:"id"`
	OrderID       uuid.UUID   `json:"order_id"`
	EventType     EventType   `json:"event_type"`
	Service       string      `json:"service"`
	Timestamp     time.Time   `json:"timestamp"`
	CorrelationID uuid.UUID   `json:"correlation_id"`
	Payload       interface{} `json:"payload,omitempty"`
}

type OrderCreatedPayload struct {
	Order types.Order `json:"order"`
}

type PaymentVerifiedPayload struct {
	OrderID       uuid.UUID `json:"order_id"`
	TransactionID string    `json:"transaction_id"`
	Amount        float64   `json:"amount"`
}

type PaymentFailedPayload struct {
	OrderID uuid.UUID `json:"order_id"`
	Reason  string    `json:"reason"`
}

type ShipmentPayload struct {
	OrderID     uuid.UUID `json:"order_id"`
	ShipmentID  string    `json:"shipment_id,omitempty"`
	AWBCode     string    `json:"awb_code,omitempty"`
	CourierName string    `json:"courier_name,omitempty"`
}
