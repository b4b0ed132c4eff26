package types

import "time"

type ShipmentStatus string

const (
	ShipmentStatusCreated         ShipmentStatus = "created"
	ShipmentStatusCourierAssigned ShipmentStatus = "courier_assigned"
	ShipmentStatusPickupRequested ShipmentStatus = "pickup_requested"
)

// Shipment is embedded in an order and populated progressively by the
// admin shipment workflow: ShipmentID on create, AWBCode and CourierName
// once a courier is assigned.
type Shipment struct {
	ShipmentID  string         `json:"shipment_id,omitempty"`
	AWBCode     string         `json:"awb_code,omitempty"`
	CourierName string         `json:"courier_name,omitempty"`
	Status      ShipmentStatus `json:"status,omitempty"`
	CreatedAt   time.Time      `json:"created_at,omitempty"`
	UpdatedAt   time.Time      `json:"updated_at,omitempty"`
}
