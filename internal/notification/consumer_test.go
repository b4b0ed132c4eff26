package notification

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kundan-thakur61/mobilecoverdesign/internal/events"
)

type fakeRepo struct {
	saved []*Record
}

func (f *fakeRepo) Save(record *Record) error {
	f.saved = append(f.saved, record)
	return nil
}

func TestHandleEvent_RecordsCustomerFacingEvents(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewNotificationService(repo)
	orderID := uuid.New()

	err := svc.HandleEvent(events.StorefrontEvent{
		OrderID:   orderID,
		EventType: events.PaymentVerifiedEvent,
	})
	require.NoError(t, err)

	require.Len(t, repo.saved, 1)
	assert.Equal(t, orderID, repo.saved[0].OrderID)
	assert.Contains(t, repo.saved[0].Message, "Payment confirmed")
}

func TestHandleEvent_IgnoresInternalEvents(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewNotificationService(repo)

	err := svc.HandleEvent(events.StorefrontEvent{
		OrderID:   uuid.New(),
		EventType: events.PaymentOrderEvent,
	})
	require.NoError(t, err)

	assert.Empty(t, repo.saved)
}
