package shipment

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kundan-thakur61/mobilecoverdesign/internal/messaging"
	"github.com/kundan-thakur61/mobilecoverdesign/internal/notify"
)

// Manager hands out one Workflow per order, created lazily, so the
// busy guard and loaded courier list survive across admin requests.
type Manager struct {
	orders            Orders
	aggregator        Aggregator
	publisher         messaging.EventPublisher
	notifier          notify.Notifier
	pickupLocationID  int
	courierFetchDelay time.Duration

	mu        sync.Mutex
	workflows map[uuid.UUID]*Workflow
}

func NewManager(orders Orders, aggregator Aggregator, publisher messaging.EventPublisher, notifier notify.Notifier, pickupLocationID int, courierFetchDelay time.Duration) *Manager {
	return &Manager{
		orders:            orders,
		aggregator:        aggregator,
		publisher:         publisher,
		notifier:          notifier,
		pickupLocationID:  pickupLocationID,
		courierFetchDelay: courierFetchDelay,
		workflows:         make(map[uuid.UUID]*Workflow),
	}
}

func (m *Manager) For(orderID uuid.UUID) *Workflow {
	m.mu.Lock()
	defer m.mu.Unlock()

	if wf, ok := m.workflows[orderID]; ok {
		return wf
	}

	wf := NewWorkflow(orderID, m.orders, m.aggregator, m.publisher, m.notifier, WorkflowConfig{
		PickupLocationID:  m.pickupLocationID,
		CourierFetchDelay: m.courierFetchDelay,
	})
	m.workflows[orderID] = wf
	return wf
}
