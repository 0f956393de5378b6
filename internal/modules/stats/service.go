// Package stats computes the admin dashboard rollups. It only reads; the
// numbers are recomputed on every call.
package stats

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tmwanza/storefront-backend/internal/apperr"
	"github.com/tmwanza/storefront-backend/internal/modules/identity"
)

// Dashboard is the admin console's headline numbers. TotalSales excludes
// cancelled orders.
type Dashboard struct {
	TotalProducts uint64          `json:"totalProducts"`
	TotalOrders   uint64          `json:"totalOrders"`
	TotalUsers    uint64          `json:"totalUsers"`
	TotalSales    decimal.Decimal `json:"totalSales"`
}

// ProductCounter reports the catalog size.
type ProductCounter interface {
	CountProducts(ctx context.Context) (uint64, error)
}

// OrderAggregator reports order count and the non-cancelled sales sum.
type OrderAggregator interface {
	OrderTotals(ctx context.Context) (count uint64, sales decimal.Decimal, err error)
}

// UserCounter reports the registry size.
type UserCounter interface {
	CountUsers(ctx context.Context) (uint64, error)
}

// Service defines the aggregation business logic.
type Service interface {
	Dashboard(ctx context.Context, caller identity.Caller) (*Dashboard, error)
}

type service struct {
	products ProductCounter
	orders   OrderAggregator
	users    UserCounter
}

// NewService creates a new stats service over the three read sources.
func NewService(products ProductCounter, orders OrderAggregator, users UserCounter) Service {
	return &service{products: products, orders: orders, users: users}
}

func (s *service) Dashboard(ctx context.Context, caller identity.Caller) (*Dashboard, error) {
	if !caller.Role.IsAdmin() {
		return nil, apperr.Unauthorized("only admins may view dashboard stats")
	}
	products, err := s.products.CountProducts(ctx)
	if err != nil {
		return nil, err
	}
	orders, sales, err := s.orders.OrderTotals(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.users.CountUsers(ctx)
	if err != nil {
		return nil, err
	}
	return &Dashboard{
		TotalProducts: products,
		TotalOrders:   orders,
		TotalUsers:    users,
		TotalSales:    sales,
	}, nil
}
