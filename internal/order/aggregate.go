package order

import (
	"time"

	"github.com/google/uuid"

	"github.com/kundan-thakur61/mobilecoverdesign/internal/types"
)

type OrderAggregate struct {
	*types.Order
}

func NewOrderAggregate(order *types.Order) *OrderAggregate {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	now := time.Now()
	if order.CreatedAt.IsZero() {
		order.CreatedAt = now
	}
	order.UpdatedAt = now
	if order.Status == "" {
		order.Status = types.OrderStatusPending
	}
	if order.Payment.Status == "" {
		order.Payment.Status = types.PaymentStatusPending
	}
	if order.Payment.Method == "" {
		order.Payment.Method = order.PaymentMethod
	}

	return &OrderAggregate{Order: order}
}

func (o *OrderAggregate) UpdateStatus(status types.OrderStatus) {
	o.Status = status
	o.UpdatedAt = time.Now()
}

// MarkPaid records a confirmed payment and moves the order into
// processing.
func (o *OrderAggregate) MarkPaid(transactionID string) {
	o.Payment.Status = types.PaymentStatusPaid
	o.Payment.TransactionID = transactionID
	o.Status = types.OrderStatusProcessing
	o.UpdatedAt = time.Now()
}

func (o *OrderAggregate) MarkPaymentFailed() {
	o.Payment.Status = types.PaymentStatusFailed
	o.UpdatedAt = time.Now()
}

// SetGatewayOrder ties the order to the payment gateway order created
// for it so a retried payment reuses the same gateway order.
func (o *OrderAggregate) SetGatewayOrder(gatewayOrderID string) {
	o.GatewayOrderID = gatewayOrderID
	o.Payment.Status = types.PaymentStatusProcessing
	o.UpdatedAt = time.Now()
}

func (o *OrderAggregate) AttachShipment(shipment *types.Shipment) {
	o.Shipment = shipment
	o.UpdatedAt = time.Now()
}

// ClearShipment drops all shipment fields after a cancellation so the
// order can be shipped again from scratch.
func (o *OrderAggregate) ClearShipment() {
	o.Shipment = nil
	o.UpdatedAt = time.Now()
}

// CanCreateShipment reports whether shipping may start: the payment is
// settled (or the order is cash on delivery) and no shipment exists yet.
func (o *OrderAggregate) CanCreateShipment() bool {
	if o.Shipment != nil && o.Shipment.ShipmentID != "" {
		return false
	}
	return o.Payment.Status == types.PaymentStatusPaid ||
		o.PaymentMethod == types.PaymentMethodCashOnDelivery
}
