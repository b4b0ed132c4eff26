package order

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kundan-thakur61/mobilecoverdesign/internal/types"
)

type scriptedFetcher struct {
	mu       sync.Mutex
	statuses []types.PaymentStatus
	errs     []error
	calls    int
}

func (f *scriptedFetcher) PaymentStatus(_ context.Context, _ uuid.UUID) (types.PaymentStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	i := f.calls
	f.calls++
	if i >= len(f.statuses) {
		i = len(f.statuses) - 1
	}
	var err error
	if i < len(f.errs) {
		err = f.errs[i]
	}
	return f.statuses[i], err
}

func (f *scriptedFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestPoller_StopsOnTerminalStatus(t *testing.T) {
	fetcher := &scriptedFetcher{
		statuses: []types.PaymentStatus{
			types.PaymentStatusPending,
			types.PaymentStatusPending,
			types.PaymentStatusPaid,
		},
	}

	var done []types.PaymentStatus
	poller := NewStatusPoller(fetcher, uuid.New(), func(s types.PaymentStatus) {
		done = append(done, s)
	})

	ctx := context.Background()
	assert.False(t, poller.Refresh(ctx))
	assert.False(t, poller.Refresh(ctx))
	assert.True(t, poller.Refresh(ctx))

	require.Equal(t, []types.PaymentStatus{types.PaymentStatusPaid}, done)
	assert.Equal(t, types.PaymentStatusPaid, poller.Last())
}

func TestPoller_NotifiesExactlyOnce(t *testing.T) {
	fetcher := &scriptedFetcher{
		statuses: []types.PaymentStatus{types.PaymentStatusFailed},
	}

	notifications := 0
	poller := NewStatusPoller(fetcher, uuid.New(), func(types.PaymentStatus) {
		notifications++
	})

	ctx := context.Background()
	assert.True(t, poller.Refresh(ctx))
	assert.True(t, poller.Refresh(ctx))
	assert.True(t, poller.Refresh(ctx))

	assert.Equal(t, 1, notifications)
	assert.Equal(t, 1, fetcher.callCount(), "no fetches after the terminal status")
}

func TestPoller_FetchErrorKeepsPolling(t *testing.T) {
	fetcher := &scriptedFetcher{
		statuses: []types.PaymentStatus{"", types.PaymentStatusPaid},
		errs:     []error{fmt.Errorf("db down"), nil},
	}

	notified := false
	poller := NewStatusPoller(fetcher, uuid.New(), func(types.PaymentStatus) {
		notified = true
	})

	ctx := context.Background()
	assert.False(t, poller.Refresh(ctx))
	assert.False(t, notified)
	assert.True(t, poller.Refresh(ctx))
	assert.True(t, notified)
}

func TestPoller_BackgroundLoop(t *testing.T) {
	fetcher := &scriptedFetcher{
		statuses: []types.PaymentStatus{
			types.PaymentStatusPending,
			types.PaymentStatusPaid,
		},
	}

	done := make(chan types.PaymentStatus, 1)
	poller := NewStatusPoller(fetcher, uuid.New(), func(s types.PaymentStatus) {
		done <- s
	}).WithInterval(5 * time.Millisecond)

	poller.Start(context.Background())
	defer poller.Stop()

	select {
	case status := <-done:
		assert.Equal(t, types.PaymentStatusPaid, status)
	case <-time.After(2 * time.Second):
		t.Fatal("poller never reached the terminal status")
	}
}

func TestPoller_StopIsIdempotent(t *testing.T) {
	fetcher := &scriptedFetcher{statuses: []types.PaymentStatus{types.PaymentStatusPending}}
	poller := NewStatusPoller(fetcher, uuid.New(), nil)

	poller.Stop()
	poller.Stop()
}
