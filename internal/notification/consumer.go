package notification

import (
	"fmt"
	"log"

	"github.com/kundan-thakur61/mobilecoverdesign/internal/events"
	"github.com/kundan-thakur61/mobilecoverdesign/internal/messaging"
)

// Repository persists delivered notifications.
type Repository interface {
	Save(record *Record) error
}

// NotificationService turns storefront events into stored, human
// readable notifications. It consumes every routing key on the
// exchange.
type NotificationService struct {
	repo Repository
}

func NewNotificationService(repo Repository) *NotificationService {
	return &NotificationService{repo: repo}
}

// StartConsuming binds a durable queue to all storefront events.
func (s *NotificationService) StartConsuming(consumer *messaging.Consumer) error {
	return consumer.ConsumeEvents([]string{"storefront.#"}, s.HandleEvent)
}

func (s *NotificationService) HandleEvent(event events.StorefrontEvent) error {
	message := messageFor(event)
	if message == "" {
		// Nothing customer-facing in this event.
		return nil
	}

	record := &Record{
		OrderID:   event.OrderID,
		EventType: string(event.EventType),
		Message:   message,
	}
	if err := s.repo.Save(record); err != nil {
		return err
	}

	log.Printf("Notification recorded for order %s: %s", event.OrderID, message)
	return nil
}

func messageFor(event events.StorefrontEvent) string {
	switch event.EventType {
	case events.OrderCreatedEvent:
		return fmt.Sprintf("Order %s received", event.OrderID)
	case events.PaymentVerifiedEvent:
		return fmt.Sprintf("Payment confirmed for order %s", event.OrderID)
	case events.PaymentFailedEvent:
		return fmt.Sprintf("Payment failed for order %s", event.OrderID)
	case events.ShipmentCreatedEvent:
		return fmt.Sprintf("Shipment created for order %s", event.OrderID)
	case events.CourierAssignedEvent:
		return fmt.Sprintf("Courier assigned for order %s", event.OrderID)
	case events.PickupRequestedEvent:
		return fmt.Sprintf("Pickup requested for order %s", event.OrderID)
	case events.ShipmentCancelledEvent:
		return fmt.Sprintf("Shipment cancelled for order %s", event.OrderID)
	default:
		return ""
	}
}
