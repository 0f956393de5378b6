package cart

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

func newTestCart(t *testing.T) (Service, *catalog.MemoryRepository) {
	t.Helper()
	products := catalog.NewMemoryRepository()
	return NewService(NewMemoryRepository(), products), products
}

func seedProduct(t *testing.T, products *catalog.MemoryRepository, stock uint64) uint64 {
	t.Helper()
	p := &catalog.Product{Name: "widget", Price: decimal.RequireFromString("5"), Stock: stock}
	require.NoError(t, products.CreateProduct(context.Background(), p))
	return p.ID
}

func TestGuest_HasNoCart(t *testing.T) {
	svc, _ := newTestCart(t)
	ctx := context.Background()

	_, err := svc.Get(ctx, identity.Guest)
	assert.True(t, apperr.Is(err, apperr.CodeUnauthorized))
	err = svc.Add(ctx, identity.Guest, AddRequest{ProductID: 1, Quantity: 1})
	assert.True(t, apperr.Is(err, apperr.CodeUnauthorized))
	err = svc.Clear(ctx, identity.Guest)
	assert.True(t, apperr.Is(err, apperr.CodeUnauthorized))
}

func TestAdd_MergesQuantity(t *testing.T) {
	svc, products := newTestCart(t)
	ctx := context.Background()
	pid := seedProduct(t, products, 10)

	require.NoError(t, svc.Add(ctx, alice, AddRequest{ProductID: pid, Quantity: 2}))
	require.NoError(t, svc.Add(ctx, alice, AddRequest{ProductID: pid, Quantity: 3}))

	items, err := svc.Get(ctx, alice)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, uint64(5), items[0].Quantity)
}

func TestAdd_RejectsNonPositiveQuantity(t *testing.T) {
	svc, products := newTestCart(t)
	ctx := context.Background()
	pid := seedProduct(t, products, 10)

	err := svc.Add(ctx, alice, AddRequest{ProductID: pid, Quantity: 0})
	assert.True(t, apperr.Is(err, apperr.CodeInvalidArgument))
	err = svc.Add(ctx, alice, AddRequest{ProductID: pid, Quantity: -2})
	assert.True(t, apperr.Is(err, apperr.CodeInvalidArgument))
}

func TestAdd_IgnoresStockLevel(t *testing.T) {
	svc, products := newTestCart(t)
	ctx := context.Background()
	pid := seedProduct(t, products, 1)

	// Stock is only checked at order placement.
	require.NoError(t, svc.Add(ctx, alice, AddRequest{ProductID: pid, Quantity: 100}))
	items, err := svc.Get(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), items[0].Quantity)
}

func TestUpdate_ZeroRemovesLine(t *testing.T) {
	svc, products := newTestCart(t)
	ctx := context.Background()
	pid := seedProduct(t, products, 10)

	require.NoError(t, svc.Add(ctx, alice, AddRequest{ProductID: pid, Quantity: 2}))
	require.NoError(t, svc.Update(ctx, alice, pid, UpdateRequest{Quantity: 0}))

	items, err := svc.Get(ctx, alice)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestUpdate_SetsAbsoluteQuantity(t *testing.T) {
	svc, products := newTestCart(t)
	ctx := context.Background()
	pid := seedProduct(t, products, 10)

	require.NoError(t, svc.Add(ctx, alice, AddRequest{ProductID: pid, Quantity: 2}))
	require.NoError(t, svc.Update(ctx, alice, pid, UpdateRequest{Quantity: 7}))

	items, err := svc.Get(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), items[0].Quantity)

	err = svc.Update(ctx, alice, pid, UpdateRequest{Quantity: -1})
	assert.True(t, apperr.Is(err, apperr.CodeInvalidArgument))
}

// No sequence of cart edits may leave a line with quantity below 1.
func TestEditSequence_NeverStoresZeroQuantity(t *testing.T) {
	svc, products := newTestCart(t)
	ctx := context.Background()
	a := seedProduct(t, products, 10)
	b := seedProduct(t, products, 10)

	ops := []func() error{
		func() error { return svc.Add(ctx, alice, AddRequest{ProductID: a, Quantity: 1}) },
		func() error { return svc.Add(ctx, alice, AddRequest{ProductID: b, Quantity: 4}) },
		func() error { return svc.Update(ctx, alice, a, UpdateRequest{Quantity: 0}) },
		func() error { return svc.Add(ctx, alice, AddRequest{ProductID: a, Quantity: 2}) },
		func() error { return svc.Update(ctx, alice, b, UpdateRequest{Quantity: 1}) },
		func() error { return svc.Remove(ctx, alice, b) },
		func() error { return svc.Remove(ctx, alice, b) }, // absent: no-op
		func() error { return svc.Update(ctx, alice, a, UpdateRequest{Quantity: 3}) },
	}
	for i, op := range ops {
		require.NoError(t, op(), "op %d", i)
		items, err := svc.Get(ctx, alice)
		require.NoError(t, err)
		for _, item := range items {
			assert.GreaterOrEqual(t, item.Quantity, uint64(1), "after op %d", i)
		}
	}

	items, err := svc.Get(ctx, alice)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, a, items[0].ProductID)
	assert.Equal(t, uint64(3), items[0].Quantity)
}

func TestCarts_AreScopedPerCaller(t *testing.T) {
	svc, products := newTestCart(t)
	ctx := context.Background()
	pid := seedProduct(t, products, 10)

	require.NoError(t, svc.Add(ctx, alice, AddRequest{ProductID: pid, Quantity: 2}))

	items, err := svc.Get(ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, items, "one caller's cart is invisible to another")

	require.NoError(t, svc.Clear(ctx, bob))
	items, err = svc.Get(ctx, alice)
	require.NoError(t, err)
	assert.Len(t, items, 1, "clearing one cart must not touch another")
}

func TestGet_DropsDeletedProducts(t *testing.T) {
	svc, products := newTestCart(t)
	ctx := context.Background()
	kept := seedProduct(t, products, 10)
	doomed := seedProduct(t, products, 10)

	require.NoError(t, svc.Add(ctx, alice, AddRequest{ProductID: kept, Quantity: 1}))
	require.NoError(t, svc.Add(ctx, alice, AddRequest{ProductID: doomed, Quantity: 1}))
	require.NoError(t, products.DeleteProduct(ctx, doomed))

	items, err := svc.Get(ctx, alice)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, kept, items[0].ProductID)
}

func TestAdd_UnknownProduct(t *testing.T) {
	svc, _ := newTestCart(t)
	err := svc.Add(context.Background(), alice, AddRequest{ProductID: 404, Quantity: 1})
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))
}
