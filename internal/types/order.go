package types

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

type PaymentMethod string

const (
	PaymentMethodGateway        PaymentMethod = "razorpay"
	PaymentMethodDirectUPI      PaymentMethod = "upi"
	PaymentMethodCashOnDelivery PaymentMethod = "cod"
)

type PaymentStatus string

const (
	PaymentStatusPending    PaymentStatus = "pending"
	PaymentStatusProcessing PaymentStatus = "processing"
	PaymentStatusPaid       PaymentStatus = "paid"
	PaymentStatusFailed     PaymentStatus = "failed"
)

// IsTerminal reports whether no further payment transitions are expected.
func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentStatusPaid || s == PaymentStatusFailed
}

// PaymentInfo is the canonical payment block on an order. Legacy records
// carried the status under other names; the repository normalizes them
// into this shape on read.
type PaymentInfo struct {
	Status        PaymentStatus `json:"status"`
	Method        PaymentMethod `json:"method"`
	TransactionID string        `json:"transaction_id,omitempty"`
}

// UPIDetails is attached to an order when the customer pays with a
// directly supplied UPI handle instead of the hosted gateway flow.
type UPIDetails struct {
	UPIID       string `json:"upi_id"`
	UPIApp      string `json:"upi_app,omitempty"`
	UPIAppLabel string `json:"upi_app_label,omitempty"`
}

type Order struct {
	ID              uuid.UUID       `json:"id"`
	Items           []OrderLineItem `json:"items"`
	ShippingAddress ShippingAddress `json:"shipping_address"`
	Subtotal        float64         `json:"subtotal"`
	ShippingFee     float64         `json:"shipping_fee"`
	CODFee          float64         `json:"cod_fee,omitempty"`
	Total           float64         `json:"total"`
	PaymentMethod   PaymentMethod   `json:"payment_method"`
	PaymentDetails  *UPIDetails     `json:"payment_details,omitempty"`
	Payment         PaymentInfo     `json:"payment"`
	GatewayOrderID  string          `json:"gateway_order_id,omitempty"`
	Status          OrderStatus     `json:"status"`
	Shipment        *Shipment       `json:"shipment,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// OrderLineItem is the flattened, submission-time shape of a cart line.
// Product ids are strings because custom (user-photo) products carry a
// synthetic "custom_" prefixed id that never existed in the catalog.
type OrderLineItem struct {
	ProductID string  `json:"product_id"`
	VariantID string  `json:"variant_id"`
	Title     string  `json:"title"`
	Brand     string  `json:"brand,omitempty"`
	Model     string  `json:"model,omitempty"`
	Material  string  `json:"material,omitempty"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Image     string  `json:"image,omitempty"`
}
