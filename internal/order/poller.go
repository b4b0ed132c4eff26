package order

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kundan-thakur61/mobilecoverdesign/internal/types"
)

const defaultPollInterval = 5 * time.Second

// StatusFetcher reads the current payment status for an order.
type StatusFetcher interface {
	PaymentStatus(ctx context.Context, orderID uuid.UUID) (types.PaymentStatus, error)
}

// StatusPoller re-reads an order's payment status on an interval until
// it reaches a terminal state, then fires the callback exactly once and
// stops. The order status page uses it while a gateway payment settles.
type StatusPoller struct {
	fetcher  StatusFetcher
	interval time.Duration

	mu       sync.Mutex
	orderID  uuid.UUID
	last     types.PaymentStatus
	notified bool
	onDone   func(types.PaymentStatus)
	stop     chan struct{}
	stopped  bool
}

func NewStatusPoller(fetcher StatusFetcher, orderID uuid.UUID, onDone func(types.PaymentStatus)) *StatusPoller {
	return &StatusPoller{
		fetcher:  fetcher,
		interval: defaultPollInterval,
		orderID:  orderID,
		onDone:   onDone,
		stop:     make(chan struct{}),
	}
}

// WithInterval overrides the poll interval.
func (p *StatusPoller) WithInterval(interval time.Duration) *StatusPoller {
	p.interval = interval
	return p
}

// Start polls until the status turns terminal or Stop is called.
func (p *StatusPoller) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if done := p.Refresh(ctx); done {
					return
				}
			case <-p.stop:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Refresh performs one status read. Concurrent calls are serialized so
// the terminal callback cannot fire twice. Returns true once the
// status is terminal.
func (p *StatusPoller) Refresh(ctx context.Context) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.notified {
		return true
	}

	status, err := p.fetcher.PaymentStatus(ctx, p.orderID)
	if err != nil {
		log.Printf("Payment status poll error for order %s: %v", p.orderID, err)
		return false
	}
	p.last = status

	if !status.IsTerminal() {
		return false
	}

	p.notified = true
	if p.onDone != nil {
		p.onDone(status)
	}
	return true
}

// Last returns the most recently observed status.
func (p *StatusPoller) Last() types.PaymentStatus {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last
}

func (p *StatusPoller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopped {
		return
	}
	p.stopped = true
	close(p.stop)
}
