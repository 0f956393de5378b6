package wishlist

import (
	"context"

	"github.com/tmwanza/storefront-backend/internal/apperr"
	"github.com/tmwanza/storefront-backend/internal/modules/catalog"
	"github.com/tmwanza/storefront-backend/internal/modules/identity"
)

// Service defines wishlist business logic, scoped to the calling principal.
type Service interface {
	Get(ctx context.Context, caller identity.Caller) ([]uint64, error)
	Add(ctx context.Context, caller identity.Caller, productID uint64) error
	Remove(ctx context.Context, caller identity.Caller, productID uint64) error
}

type service struct {
	repo     Repository
	products catalog.Repository
}

// NewService creates a new wishlist service.
func NewService(repo Repository, products catalog.Repository) Service {
	return &service{repo: repo, products: products}
}

func (s *service) Get(ctx context.Context, caller identity.Caller) ([]uint64, error) {
	if !caller.Authenticated() {
		return nil, apperr.Unauthorized("sign in to view your wishlist")
	}
	ids, err := s.repo.Get(ctx, caller.Principal)
	if err != nil {
		return nil, err
	}
	// Saved ids for products that were deleted later are dropped on read.
	live := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if _, err := s.products.GetProduct(ctx, id); err != nil {
			if apperr.Is(err, apperr.CodeNotFound) {
				continue
			}
			return nil, err
		}
		live = append(live, id)
	}
	return live, nil
}

func (s *service) Add(ctx context.Context, caller identity.Caller, productID uint64) error {
	if !caller.Authenticated() {
		return apperr.Unauthorized("sign in to edit your wishlist")
	}
	if _, err := s.products.GetProduct(ctx, productID); err != nil {
		return err
	}
	return s.repo.Add(ctx, caller.Principal, productID)
}

func (s *service) Remove(ctx context.Context, caller identity.Caller, productID uint64) error {
	if !caller.Authenticated() {
		return apperr.Unauthorized("sign in to edit your wishlist")
	}
	return s.repo.Remove(ctx, caller.Principal, productID)
}
