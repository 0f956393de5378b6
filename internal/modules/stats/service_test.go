package stats

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmwanza/storefront-backend/internal/apperr"
	"github.com/tmwanza/storefront-backend/internal/modules/cart"
	"github.com/tmwanza/storefront-backend/internal/modules/catalog"
	"github.com/tmwanza/storefront-backend/internal/modules/identity"
	"github.com/tmwanza/storefront-backend/internal/modules/order"
	"github.com/tmwanza/storefront-backend/internal/modules/user"
)

var (
	admin   = identity.Caller{Principal: "admin-1", Role: identity.RoleAdmin}
	shopper = identity.Caller{Principal: "user-1", Role: identity.RoleUser}
)

func TestDashboard_AdminOnly(t *testing.T) {
	svc := NewService(catalog.NewMemoryRepository(), order.NewMemoryRepository(catalog.NewMemoryRepository(), cart.NewMemoryRepository()), user.NewMemoryRepository())

	_, err := svc.Dashboard(context.Background(), shopper)
	assert.True(t, apperr.Is(err, apperr.CodeUnauthorized))
	_, err = svc.Dashboard(context.Background(), identity.Guest)
	assert.True(t, apperr.Is(err, apperr.CodeUnauthorized))
}

func TestDashboard_Rollups(t *testing.T) {
	ctx := context.Background()
	products := catalog.NewMemoryRepository()
	carts := cart.NewMemoryRepository()
	orderRepo := order.NewMemoryRepository(products, carts)
	users := user.NewMemoryRepository()

	orderService := order.NewService(orderRepo)
	userService := user.NewService(users)
	svc := NewService(products, orderRepo, users)

	for i := 0; i < 3; i++ {
		p := &catalog.Product{Name: "widget", Price: decimal.RequireFromString("25.00"), Stock: 100}
		require.NoError(t, products.CreateProduct(ctx, p))
	}
	for _, c := range []identity.Caller{shopper, {Principal: "user-2", Role: identity.RoleUser}} {
		_, err := userService.SaveCallerProfile(ctx, c, user.ProfileRequest{Name: string(c.Principal), Email: "a@b.c"})
		require.NoError(t, err)
	}

	// Two live orders and one cancelled; sales must count only the live ones.
	var cancelledID uint64
	for i := 0; i < 3; i++ {
		o, err := orderService.Create(ctx, shopper, order.CreateRequest{
			Items: []cart.Item{{ProductID: 1, Quantity: 2}},
			Total: decimal.RequireFromString("50.00"),
		})
		require.NoError(t, err)
		cancelledID = o.ID
	}
	_, err := orderService.UpdateStatus(ctx, admin, cancelledID, order.StatusRequest{Status: "cancelled"})
	require.NoError(t, err)

	d, err := svc.Dashboard(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), d.TotalProducts)
	assert.Equal(t, uint64(3), d.TotalOrders, "cancelled orders still count as orders")
	assert.Equal(t, uint64(2), d.TotalUsers)
	assert.True(t, d.TotalSales.Equal(decimal.RequireFromString("100.00")),
		"sales must exclude the cancelled order, got %s", d.TotalSales)
}
