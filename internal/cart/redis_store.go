package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kundan-thakur61/mobilecoverdesign/internal/types"
)

const cartTTL = 30 * 24 * time.Hour

type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func cartKey(sessionID string) string {
	return "cart:" + sessionID
}

func (s *RedisStore) Load(ctx context.Context, sessionID string) (*types.Cart, error) {
	raw, err := s.client.Get(ctx, cartKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return &types.Cart{SessionID: sessionID, Items: []types.CartLineItem{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cart load error: %v", err)
	}

	var cart types.Cart
	if err := json.Unmarshal([]byte(raw), &cart); err != nil {
		// A corrupted entry should not brick the session.
		return &types.Cart{SessionID: sessionID, Items: []types.CartLineItem{}}, nil
	}
	cart.SessionID = sessionID
	return &cart, nil
}

func (s *RedisStore) Save(ctx context.Context, cart *types.Cart) error {
	cart.UpdatedAt = time.Now()
	raw, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("cart serialization error: %v", err)
	}
	if err := s.client.Set(ctx, cartKey(cart.SessionID), raw, cartTTL).Err(); err != nil {
		return fmt.Errorf("cart save error: %v", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, cartKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("cart delete error: %v", err)
	}
	return nil
}
