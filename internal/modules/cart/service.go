package cart

import (
	"context"

	"github.com/tmwanza/storefront-backend/internal/apperr"
	"github.com/tmwanza/storefront-backend/internal/modules/catalog"
	"github.com/tmwanza/storefront-backend/internal/modules/identity"
)

// Service defines cart business logic. Every operation is scoped to the
// calling principal; guests have no cart.
type Service interface {
	Get(ctx context.Context, caller identity.Caller) ([]Item, error)
	Add(ctx context.Context, caller identity.Caller, req AddRequest) error
	Update(ctx context.Context, caller identity.Caller, productID uint64, req UpdateRequest) error
	Remove(ctx context.Context, caller identity.Caller, productID uint64) error
	Clear(ctx context.Context, caller identity.Caller) error
}

type service struct {
	repo     Repository
	products catalog.Repository
}

// NewService creates a new cart service.
func NewService(repo Repository, products catalog.Repository) Service {
	return &service{repo: repo, products: products}
}

// Get returns the caller's cart. Lines whose product has since been
// deleted are dropped from the result rather than surfaced as errors.
func (s *service) Get(ctx context.Context, caller identity.Caller) ([]Item, error) {
	if !caller.Authenticated() {
		return nil, apperr.Unauthorized("sign in to view your cart")
	}
	items, err := s.repo.Get(ctx, caller.Principal)
	if err != nil {
		return nil, err
	}
	live := make([]Item, 0, len(items))
	for _, item := range items {
		if _, err := s.products.GetProduct(ctx, item.ProductID); err != nil {
			if apperr.Is(err, apperr.CodeNotFound) {
				continue
			}
			return nil, err
		}
		live = append(live, item)
	}
	return live, nil
}

// Add merges quantity into the caller's cart. Stock is deliberately not
// checked here; availability is settled at order placement.
func (s *service) Add(ctx context.Context, caller identity.Caller, req AddRequest) error {
	if !caller.Authenticated() {
		return apperr.Unauthorized("sign in to edit your cart")
	}
	if req.Quantity < 1 {
		return apperr.InvalidArgument("quantity must be at least 1")
	}
	if _, err := s.products.GetProduct(ctx, req.ProductID); err != nil {
		return err
	}
	return s.repo.Add(ctx, caller.Principal, req.ProductID, uint64(req.Quantity))
}

// Update sets an absolute quantity; zero removes the line.
func (s *service) Update(ctx context.Context, caller identity.Caller, productID uint64, req UpdateRequest) error {
	if !caller.Authenticated() {
		return apperr.Unauthorized("sign in to edit your cart")
	}
	if req.Quantity < 0 {
		return apperr.InvalidArgument("quantity cannot be negative")
	}
	if req.Quantity == 0 {
		return s.repo.Remove(ctx, caller.Principal, productID)
	}
	return s.repo.Set(ctx, caller.Principal, productID, uint64(req.Quantity))
}

func (s *service) Remove(ctx context.Context, caller identity.Caller, productID uint64) error {
	if !caller.Authenticated() {
		return apperr.Unauthorized("sign in to edit your cart")
	}
	return s.repo.Remove(ctx, caller.Principal, productID)
}

func (s *service) Clear(ctx context.Context, caller identity.Caller) error {
	if !caller.Authenticated() {
		return apperr.Unauthorized("sign in to edit your cart")
	}
	return s.repo.Clear(ctx, caller.Principal)
}
