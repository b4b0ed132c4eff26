package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kundan-thakur61/mobilecoverdesign/internal/types"
)

const profileTTL = 90 * 24 * time.Hour

// SavedProfile is the shipping address and UPI handle remembered from
// the last successful checkout so the form can be prefilled.
type SavedProfile struct {
	Address types.ShippingAddress `json:"address"`
	UPI     *types.UPIDetails     `json:"upi,omitempty"`
	SavedAt time.Time             `json:"saved_at"`
}

// ProfileStore persists checkout prefill data per session. Every
// operation is best effort: losing a saved profile only costs the
// customer some typing, so errors are logged and swallowed.
type ProfileStore struct {
	client *redis.Client
}

func NewProfileStore(client *redis.Client) *ProfileStore {
	return &ProfileStore{client: client}
}

func profileKey(sessionID string) string {
	return "checkout:profile:" + sessionID
}

func (s *ProfileStore) Load(ctx context.Context, sessionID string) *SavedProfile {
	raw, err := s.client.Get(ctx, profileKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		log.Printf("Checkout profile load error: %v", err)
		return nil
	}

	var profile SavedProfile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		return nil
	}
	return &profile
}

func (s *ProfileStore) Save(ctx context.Context, sessionID string, profile SavedProfile) {
	profile.SavedAt = time.Now()
	raw, err := json.Marshal(profile)
	if err != nil {
		return
	}
	if err := s.client.Set(ctx, profileKey(sessionID), raw, profileTTL).Err(); err != nil {
		log.Printf("Checkout profile save error: %v", err)
	}
}

// ClearUPI drops the remembered UPI handle while keeping the address.
// Called when the customer checks out without opting in to saving.
func (s *ProfileStore) ClearUPI(ctx context.Context, sessionID string) {
	profile := s.Load(ctx, sessionID)
	if profile == nil || profile.UPI == nil {
		return
	}
	profile.UPI = nil
	s.Save(ctx, sessionID, *profile)
}
