package shipment

import (
	"context"

	"github.com/kundan-thakur61/mobilecoverdesign/internal/types"
)

// Courier is one serviceable courier option for a shipment.
type Courier struct {
	ID            int     `json:"id"`
	Name          string  `json:"name"`
	Freight       float64 `json:"freight"`
	EstimatedDays string  `json:"estimated_days,omitempty"`
	Rating        float64 `json:"rating,omitempty"`
}

type Dimensions struct {
	Length  float64 `json:"length"`
	Breadth float64 `json:"breadth"`
	Height  float64 `json:"height"`
}

// CreateShipmentParams carries the package details sent to the
// aggregator. Zero values are filled with the storefront defaults for a
// phone cover parcel.
type CreateShipmentParams struct {
	PickupLocationID int        `json:"pickup_location_id"`
	Dimensions       Dimensions `json:"dimensions"`
	Weight           float64    `json:"weight"`
}

// AssignedCourier is the result of booking a courier for a shipment.
type AssignedCourier struct {
	AWBCode     string `json:"awb_code"`
	CourierName string `json:"courier_name"`
}

// Aggregator is the shipping aggregator behind the admin shipment
// actions. The production implementation talks to Shiprocket.
type Aggregator interface {
	CreateShipment(ctx context.Context, order *types.Order, params CreateShipmentParams) (shipmentID string, err error)
	AvailableCouriers(ctx context.Context, shipmentID, deliveryPIN string) ([]Courier, error)
	AssignCourier(ctx context.Context, shipmentID string, courierID int) (*AssignedCourier, error)
	GenerateLabel(ctx context.Context, shipmentID string) (labelURL string, err error)
	RequestPickup(ctx context.Context, shipmentID string) error
	CancelShipment(ctx context.Context, shipmentID string) error
}
