package wishlist

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmwanza/storefront-backend/internal/apperr"
	"github.com/tmwanza/storefront-backend/internal/modules/catalog"
	"github.com/tmwanza/storefront-backend/internal/modules/identity"
)

var (
	alice = identity.Caller{Principal: "alice", Role: identity.RoleUser}
	bob   = identity.Caller{Principal: "bob", Role: identity.RoleUser}
)

func newTestWishlist(t *testing.T) (Service, *catalog.MemoryRepository) {
	t.Helper()
	products := catalog.NewMemoryRepository()
	return NewService(NewMemoryRepository(), products), products
}

func seedProduct(t *testing.T, products *catalog.MemoryRepository) uint64 {
	t.Helper()
	p := &catalog.Product{Name: "widget", Price: decimal.RequireFromString("5"), Stock: 1}
	require.NoError(t, products.CreateProduct(context.Background(), p))
	return p.ID
}

func TestGuest_HasNoWishlist(t *testing.T) {
	svc, _ := newTestWishlist(t)
	ctx := context.Background()

	_, err := svc.Get(ctx, identity.Guest)
	assert.True(t, apperr.Is(err, apperr.CodeUnauthorized))
	err = svc.Add(ctx, identity.Guest, 1)
	assert.True(t, apperr.Is(err, apperr.CodeUnauthorized))
}

func TestAddRemove(t *testing.T) {
	svc, products := newTestWishlist(t)
	ctx := context.Background()
	pid := seedProduct(t, products)

	require.NoError(t, svc.Add(ctx, alice, pid))
	require.NoError(t, svc.Add(ctx, alice, pid), "re-adding is a no-op")

	ids, err := svc.Get(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, []uint64{pid}, ids)

	require.NoError(t, svc.Remove(ctx, alice, pid))
	require.NoError(t, svc.Remove(ctx, alice, pid), "removing an absent id is a no-op")

	ids, err = svc.Get(ctx, alice)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestAdd_UnknownProduct(t *testing.T) {
	svc, _ := newTestWishlist(t)
	err := svc.Add(context.Background(), alice, 404)
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))
}

func TestWishlists_AreScopedPerCaller(t *testing.T) {
	svc, products := newTestWishlist(t)
	ctx := context.Background()
	pid := seedProduct(t, products)

	require.NoError(t, svc.Add(ctx, alice, pid))
	ids, err := svc.Get(ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestGet_DropsDeletedProducts(t *testing.T) {
	svc, products := newTestWishlist(t)
	ctx := context.Background()
	kept := seedProduct(t, products)
	doomed := seedProduct(t, products)

	require.NoError(t, svc.Add(ctx, alice, kept))
	require.NoError(t, svc.Add(ctx, alice, doomed))
	require.NoError(t, products.DeleteProduct(ctx, doomed))

	ids, err := svc.Get(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, []uint64{kept}, ids)
}
