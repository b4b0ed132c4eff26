package cart

import (
	"context"

	"github.com/kundan-thakur61/mobilecoverdesign/internal/types"
)

// Store persists session carts. Load returns an empty cart, not an
// error, when the session has nothing saved yet.
type Store interface {
	Load(ctx context.Context, sessionID string) (*types.Cart, error)
	Save(ctx context.Context, cart *types.Cart) error
	Delete(ctx context.Context, sessionID string) error
}
