package shipment

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kundan-thakur61/mobilecoverdesign/internal/events"
	"github.com/kundan-thakur61/mobilecoverdesign/internal/messaging"
	"github.com/kundan-thakur61/mobilecoverdesign/internal/notify"
	"github.com/kundan-thakur61/mobilecoverdesign/internal/types"
)

// Default parcel profile for a phone cover.
var (
	DefaultDimensions = Dimensions{Length: 17, Breadth: 4, Height: 2}
	DefaultWeight     = 0.15
)

const defaultCourierFetchDelay = 3 * time.Second

// Orders is the slice of the order service the workflow needs to read
// and persist shipment state.
type Orders interface {
	Get(ctx context.Context, orderID uuid.UUID) (*types.Order, error)
	UpdateShipment(ctx context.Context, orderID uuid.UUID, shipment *types.Shipment) (*types.Order, error)
}

// Workflow drives one order's shipment through the admin actions:
// create, fetch couriers, assign, label, pickup, cancel. One action at
// a time; concurrent calls on the same order are rejected while busy.
type Workflow struct {
	orderID           uuid.UUID
	orders            Orders
	aggregator        Aggregator
	publisher         messaging.EventPublisher
	notifier          notify.Notifier
	pickupLocationID  int
	courierFetchDelay time.Duration
	onUpdate          func(*types.Order)

	mu       sync.Mutex
	busy     bool
	couriers []Courier
}

type WorkflowConfig struct {
	PickupLocationID  int
	CourierFetchDelay time.Duration
	OnUpdate          func(*types.Order)
}

func NewWorkflow(orderID uuid.UUID, orders Orders, aggregator Aggregator, publisher messaging.EventPublisher, notifier notify.Notifier, cfg WorkflowConfig) *Workflow {
	delay := cfg.CourierFetchDelay
	if delay == 0 {
		delay = defaultCourierFetchDelay
	}

	return &Workflow{
		orderID:           orderID,
		orders:            orders,
		aggregator:        aggregator,
		publisher:         publisher,
		notifier:          notifier,
		pickupLocationID:  cfg.PickupLocationID,
		courierFetchDelay: delay,
		onUpdate:          cfg.OnUpdate,
	}
}

func (w *Workflow) acquire() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.busy {
		return fmt.Errorf("another shipment action is in progress")
	}
	w.busy = true
	return nil
}

func (w *Workflow) release() {
	w.mu.Lock()
	w.busy = false
	w.mu.Unlock()
}

// Couriers returns the options loaded by the last serviceability call.
func (w *Workflow) Couriers() []Courier {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]Courier, len(w.couriers))
	copy(out, w.couriers)
	return out
}

// StateOf derives the shipment stage from the order record itself, so
// a restarted server picks up exactly where the admin left off.
func StateOf(order *types.Order) types.ShipmentStatus {
	if order.Shipment == nil || order.Shipment.ShipmentID == "" {
		return ""
	}
	if order.Shipment.Status == types.ShipmentStatusPickupRequested {
		return types.ShipmentStatusPickupRequested
	}
	if order.Shipment.AWBCode != "" {
		return types.ShipmentStatusCourierAssigned
	}
	return types.ShipmentStatusCreated
}

// CreateShipment registers the parcel with the aggregator and then,
// after a short settling delay, fetches the available couriers in the
// same action, mirroring how the admin flow chains the two steps.
func (w *Workflow) CreateShipment(ctx context.Context, params CreateShipmentParams) (*types.Order, error) {
	if err := w.acquire(); err != nil {
		return nil, err
	}
	defer w.release()

	order, err := w.orders.Get(ctx, w.orderID)
	if err != nil {
		return nil, err
	}
	if order.Shipment != nil && order.Shipment.ShipmentID != "" {
		w.notifier.Info("Shipment already created for this order")
		return order, nil
	}

	if params.PickupLocationID == 0 {
		params.PickupLocationID = w.pickupLocationID
	}
	if params.Dimensions == (Dimensions{}) {
		params.Dimensions = DefaultDimensions
	}
	if params.Weight == 0 {
		params.Weight = DefaultWeight
	}

	shipmentID, err := w.aggregator.CreateShipment(ctx, order, params)
	if err != nil {
		w.notifier.Error(err.Error())
		return nil, err
	}

	now := time.Now()
	updated, err := w.orders.UpdateShipment(ctx, w.orderID, &types.Shipment{
		ShipmentID: shipmentID,
		Status:     types.ShipmentStatusCreated,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		return nil, err
	}

	w.publish(events.ShipmentCreatedEvent, events.ShipmentPayload{
		OrderID:    w.orderID,
		ShipmentID: shipmentID,
	})
	w.notifier.Success("Shipment created successfully!")
	w.notifyUpdate(updated)

	// The aggregator needs a moment before serviceability returns the
	// newly created shipment.
	w.notifier.Info("Fetching available couriers...")
	select {
	case <-time.After(w.courierFetchDelay):
	case <-ctx.Done():
		return updated, ctx.Err()
	}

	if _, err := w.loadCouriers(ctx, updated); err != nil {
		log.Printf("Courier auto-fetch error for order %s: %v", w.orderID, err)
	}

	return updated, nil
}

// GetRecommendedCouriers lists serviceable couriers for the shipment.
// Without a created shipment it returns the guidance the admin UI shows
// next to the create button.
func (w *Workflow) GetRecommendedCouriers(ctx context.Context) ([]Courier, error) {
	if err := w.acquire(); err != nil {
		return nil, err
	}
	defer w.release()

	order, err := w.orders.Get(ctx, w.orderID)
	if err != nil {
		return nil, err
	}
	if order.Shipment == nil || order.Shipment.ShipmentID == "" {
		msg := `Please create shipment first using "Create Shipment" button`
		w.notifier.Error(msg)
		return nil, fmt.Errorf("shipment not created yet")
	}

	return w.loadCouriers(ctx, order)
}

func (w *Workflow) loadCouriers(ctx context.Context, order *types.Order) ([]Courier, error) {
	couriers, err := w.aggregator.AvailableCouriers(ctx, order.Shipment.ShipmentID, order.ShippingAddress.PostalCode)
	if err != nil {
		w.notifier.Error(err.Error())
		return nil, err
	}

	w.mu.Lock()
	w.couriers = couriers
	w.mu.Unlock()

	w.notifier.Success(fmt.Sprintf("Found %d available couriers", len(couriers)))
	return couriers, nil
}

// AssignCourier books a courier. Courier id zero auto-selects the
// cheapest option by freight; on a tie the first listed courier wins.
func (w *Workflow) AssignCourier(ctx context.Context, courierID int) (*types.Order, error) {
	if err := w.acquire(); err != nil {
		return nil, err
	}
	defer w.release()

	order, err := w.orders.Get(ctx, w.orderID)
	if err != nil {
		return nil, err
	}
	if order.Shipment == nil || order.Shipment.ShipmentID == "" {
		msg := `Please create shipment first using "Create Shipment" button`
		w.notifier.Error(msg)
		return nil, fmt.Errorf("shipment not created yet")
	}

	if courierID == 0 {
		cheapest, ok := w.cheapestCourier()
		if !ok {
			msg := "No courier selected. Please get available couriers first."
			w.notifier.Error(msg)
			return nil, fmt.Errorf("no couriers loaded")
		}
		courierID = cheapest.ID
		w.notifier.Info(fmt.Sprintf("Auto-selected cheapest courier: %s (₹%.0f)", cheapest.Name, cheapest.Freight))
	}

	assigned, err := w.aggregator.AssignCourier(ctx, order.Shipment.ShipmentID, courierID)
	if err != nil {
		w.notifier.Error(err.Error())
		return nil, err
	}

	shipment := *order.Shipment
	shipment.AWBCode = assigned.AWBCode
	shipment.CourierName = assigned.CourierName
	shipment.Status = types.ShipmentStatusCourierAssigned
	shipment.UpdatedAt = time.Now()

	updated, err := w.orders.UpdateShipment(ctx, w.orderID, &shipment)
	if err != nil {
		return nil, err
	}

	w.publish(events.CourierAssignedEvent, events.ShipmentPayload{
		OrderID:     w.orderID,
		ShipmentID:  shipment.ShipmentID,
		AWBCode:     assigned.AWBCode,
		CourierName: assigned.CourierName,
	})
	w.notifier.Success(fmt.Sprintf("Courier assigned! AWB: %s", assigned.AWBCode))
	w.notifyUpdate(updated)

	return updated, nil
}

// cheapestCourier picks the minimum freight, first occurrence winning
// on equal rates.
func (w *Workflow) cheapestCourier() (Courier, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.couriers) == 0 {
		return Courier{}, false
	}

	sorted := make([]Courier, len(w.couriers))
	copy(sorted, w.couriers)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Freight < sorted[j].Freight
	})
	return sorted[0], true
}

// GenerateLabel returns the label document URL for a booked shipment.
func (w *Workflow) GenerateLabel(ctx context.Context) (string, error) {
	if err := w.acquire(); err != nil {
		return "", err
	}
	defer w.release()

	order, err := w.orders.Get(ctx, w.orderID)
	if err != nil {
		return "", err
	}
	if order.Shipment == nil || order.Shipment.AWBCode == "" {
		msg := "No courier selected. Please get available couriers first."
		w.notifier.Error(msg)
		return "", fmt.Errorf("no courier assigned")
	}

	labelURL, err := w.aggregator.GenerateLabel(ctx, order.Shipment.ShipmentID)
	if err != nil {
		w.notifier.Error(err.Error())
		return "", err
	}

	w.notifier.Success("Label generated! Opening in new tab...")
	return labelURL, nil
}

// RequestPickup schedules the courier pickup for a booked shipment.
func (w *Workflow) RequestPickup(ctx context.Context) (*types.Order, error) {
	if err := w.acquire(); err != nil {
		return nil, err
	}
	defer w.release()

	order, err := w.orders.Get(ctx, w.orderID)
	if err != nil {
		return nil, err
	}
	if order.Shipment == nil || order.Shipment.AWBCode == "" {
		msg := "No courier selected. Please get available couriers first."
		w.notifier.Error(msg)
		return nil, fmt.Errorf("no courier assigned")
	}

	if err := w.aggregator.RequestPickup(ctx, order.Shipment.ShipmentID); err != nil {
		w.notifier.Error(err.Error())
		return nil, err
	}

	shipment := *order.Shipment
	shipment.Status = types.ShipmentStatusPickupRequested
	shipment.UpdatedAt = time.Now()

	updated, err := w.orders.UpdateShipment(ctx, w.orderID, &shipment)
	if err != nil {
		return nil, err
	}

	w.publish(events.PickupRequestedEvent, events.ShipmentPayload{
		OrderID:    w.orderID,
		ShipmentID: shipment.ShipmentID,
		AWBCode:    shipment.AWBCode,
	})
	w.notifier.Success("Pickup requested successfully!")
	w.notifyUpdate(updated)

	return updated, nil
}

// Cancel aborts the shipment with the aggregator and clears all
// shipment fields on the order so shipping can restart from scratch.
func (w *Workflow) Cancel(ctx context.Context) (*types.Order, error) {
	if err := w.acquire(); err != nil {
		return nil, err
	}
	defer w.release()

	order, err := w.orders.Get(ctx, w.orderID)
	if err != nil {
		return nil, err
	}
	if order.Shipment == nil || order.Shipment.ShipmentID == "" {
		w.notifier.Error("Shipment not created yet")
		return nil, fmt.Errorf("shipment not created yet")
	}

	shipmentID := order.Shipment.ShipmentID
	if err := w.aggregator.CancelShipment(ctx, shipmentID); err != nil {
		// Surface the aggregator's wording verbatim; admins act on it.
		w.notifier.Error(err.Error())
		return nil, err
	}

	// Clearing the shipment may null out order.Shipment when the store
	// hands back the same record, hence the snapshot above.
	updated, err := w.orders.UpdateShipment(ctx, w.orderID, nil)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	w.couriers = nil
	w.mu.Unlock()

	w.publish(events.ShipmentCancelledEvent, events.ShipmentPayload{
		OrderID:    w.orderID,
		ShipmentID: shipmentID,
	})
	w.notifier.Success("Shipment cancelled successfully")
	w.notifyUpdate(updated)

	return updated, nil
}

func (w *Workflow) notifyUpdate(order *types.Order) {
	if w.onUpdate != nil {
		w.onUpdate(order)
	}
}

func (w *Workflow) publish(eventType events.EventType, payload events.ShipmentPayload) {
	if w.publisher == nil {
		return
	}
	event := events.StorefrontEvent{
		ID:            uuid.New(),
		OrderID:       w.orderID,
		EventType:     eventType,
		Service:       "shipment",
		Timestamp:     time.Now(),
		CorrelationID: uuid.New(),
		Payload:       payload,
	}
	if err := w.publisher.PublishEvent(event); err != nil {
		log.Printf("Event publish error (%s): %v", eventType, err)
	}
}
