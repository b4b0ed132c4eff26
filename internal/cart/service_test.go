package cart

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kundan-thakur61/mobilecoverdesign/internal/types"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewService(NewRedisStore(client))
}

func TestAddItem_MergesSameVariant(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "sess-1", types.CartLineItem{
		ProductID: "p1", VariantID: "v1", UnitPrice: 199, Quantity: 1,
	})
	require.NoError(t, err)

	cart, err := svc.AddItem(ctx, "sess-1", types.CartLineItem{
		ProductID: "p1", VariantID: "v1", UnitPrice: 199, Quantity: 2,
	})
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)
}

func TestAddItem_DifferentVariantAppends(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "sess-1", types.CartLineItem{
		ProductID: "p1", VariantID: "v1", UnitPrice: 199, Quantity: 1,
	})
	require.NoError(t, err)

	cart, err := svc.AddItem(ctx, "sess-1", types.CartLineItem{
		ProductID: "p1", VariantID: "v2", UnitPrice: 249, Quantity: 1,
	})
	require.NoError(t, err)

	assert.Len(t, cart.Items, 2)
}

func TestAddItem_RejectsMissingProductID(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.AddItem(context.Background(), "sess-1", types.CartLineItem{VariantID: "v1"})

	assert.Error(t, err)
}

func TestUpdateQuantity_ZeroRemovesLine(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "sess-1", types.CartLineItem{
		ProductID: "p1", VariantID: "v1", UnitPrice: 199, Quantity: 2,
	})
	require.NoError(t, err)

	cart, err := svc.UpdateQuantity(ctx, "sess-1", "p1", "v1", 0)
	require.NoError(t, err)

	assert.True(t, cart.IsEmpty())
}

func TestUpdateQuantity_UnknownLine(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.UpdateQuantity(context.Background(), "sess-1", "nope", "v1", 2)

	assert.Error(t, err)
}

func TestCart_SurvivesReload(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	ctx := context.Background()
	first := NewService(NewRedisStore(client))
	_, err := first.AddItem(ctx, "sess-1", types.CartLineItem{
		ProductID: "p1", VariantID: "v1", UnitPrice: 299, Quantity: 1,
	})
	require.NoError(t, err)

	// A fresh service over the same store sees the saved cart.
	second := NewService(NewRedisStore(client))
	cart, err := second.Get(ctx, "sess-1")
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, "p1", cart.Items[0].ProductID)
}

func TestCart_SessionsAreIsolated(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "sess-1", types.CartLineItem{
		ProductID: "p1", VariantID: "v1", UnitPrice: 199, Quantity: 1,
	})
	require.NoError(t, err)

	other, err := svc.Get(ctx, "sess-2")
	require.NoError(t, err)

	assert.True(t, other.IsEmpty())
}

func TestClear_EmptiesCart(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "sess-1", types.CartLineItem{
		ProductID: "p1", VariantID: "v1", UnitPrice: 199, Quantity: 1,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Clear(ctx, "sess-1"))

	cart, err := svc.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
}
