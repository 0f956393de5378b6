package catalog

import (
	"context"

	"github.com/tmwanza/storefront-backend/internal/apperr"
	"github.com/tmwanza/storefront-backend/internal/modules/identity"
)

// Service defines catalog business logic. Reads are open to every caller;
// every mutation requires the admin role.
type Service interface {
	AddProduct(ctx context.Context, caller identity.Caller, req ProductRequest) (*Product, error)
	UpdateProduct(ctx context.Context, caller identity.Caller, id uint64, req ProductRequest) (*Product, error)
	DeleteProduct(ctx context.Context, caller identity.Caller, id uint64) error
	UpdateStock(ctx context.Context, caller identity.Caller, id uint64, req StockRequest) (*Product, error)
	GetProduct(ctx context.Context, id uint64) (*Product, error)
	ListProducts(ctx context.Context) ([]*Product, error)
	ListProductsByCategory(ctx context.Context, category string) ([]*Product, error)

	AddCategory(ctx context.Context, caller identity.Caller, req CategoryRequest) (*Category, error)
	UpdateCategory(ctx context.Context, caller identity.Caller, id uint64, req CategoryRequest) (*Category, error)
	DeleteCategory(ctx context.Context, caller identity.Caller, id uint64) error
	GetCategory(ctx context.Context, id uint64) (*Category, error)
	ListCategories(ctx context.Context) ([]*Category, error)
}

type service struct{ repo Repository }

// NewService creates a new catalog service.
func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) AddProduct(ctx context.Context, caller identity.Caller, req ProductRequest) (*Product, error) {
	if !caller.Role.IsAdmin() {
		return nil, apperr.Unauthorized("only admins may add products")
	}
	if err := validateProduct(req); err != nil {
		return nil, err
	}
	p := &Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       uint64(req.Stock),
		Category:    req.Category,
		ImageFile:   req.ImageFile,
	}
	if err := s.repo.CreateProduct(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) UpdateProduct(ctx context.Context, caller identity.Caller, id uint64, req ProductRequest) (*Product, error) {
	if !caller.Role.IsAdmin() {
		return nil, apperr.Unauthorized("only admins may update products")
	}
	if err := validateProduct(req); err != nil {
		return nil, err
	}
	p, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Name = req.Name
	p.Description = req.Description
	p.Price = req.Price
	p.Stock = uint64(req.Stock)
	p.Category = req.Category
	p.ImageFile = req.ImageFile
	if err := s.repo.UpdateProduct(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) DeleteProduct(ctx context.Context, caller identity.Caller, id uint64) error {
	if !caller.Role.IsAdmin() {
		return apperr.Unauthorized("only admins may delete products")
	}
	return s.repo.DeleteProduct(ctx, id)
}

func (s *service) UpdateStock(ctx context.Context, caller identity.Caller, id uint64, req StockRequest) (*Product, error) {
	if !caller.Role.IsAdmin() {
		return nil, apperr.Unauthorized("only admins may update stock")
	}
	if req.Stock < 0 {
		return nil, apperr.InvalidArgument("stock cannot be negative")
	}
	return s.repo.SetStock(ctx, id, uint64(req.Stock))
}

func (s *service) GetProduct(ctx context.Context, id uint64) (*Product, error) {
	return s.repo.GetProduct(ctx, id)
}

func (s *service) ListProducts(ctx context.Context) ([]*Product, error) {
	return s.repo.ListProducts(ctx)
}

func (s *service) ListProductsByCategory(ctx context.Context, category string) ([]*Product, error) {
	return s.repo.ListProductsByCategory(ctx, category)
}

func (s *service) AddCategory(ctx context.Context, caller identity.Caller, req CategoryRequest) (*Category, error) {
	if !caller.Role.IsAdmin() {
		return nil, apperr.Unauthorized("only admins may add categories")
	}
	if req.Name == "" {
		return nil, apperr.InvalidArgument("category name is required")
	}
	c := &Category{Name: req.Name}
	if err := s.repo.CreateCategory(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) UpdateCategory(ctx context.Context, caller identity.Caller, id uint64, req CategoryRequest) (*Category, error) {
	if !caller.Role.IsAdmin() {
		return nil, apperr.Unauthorized("only admins may update categories")
	}
	if req.Name == "" {
		return nil, apperr.InvalidArgument("category name is required")
	}
	c, err := s.repo.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Name = req.Name
	if err := s.repo.UpdateCategory(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) DeleteCategory(ctx context.Context, caller identity.Caller, id uint64) error {
	if !caller.Role.IsAdmin() {
		return apperr.Unauthorized("only admins may delete categories")
	}
	return s.repo.DeleteCategory(ctx, id)
}

func (s *service) GetCategory(ctx context.Context, id uint64) (*Category, error) {
	return s.repo.GetCategory(ctx, id)
}

func (s *service) ListCategories(ctx context.Context) ([]*Category, error) {
	return s.repo.ListCategories(ctx)
}

func validateProduct(req ProductRequest) error {
	if req.Name == "" {
		return apperr.InvalidArgument("product name is required")
	}
	if req.Price.IsNegative() {
		return apperr.InvalidArgument("price cannot be negative")
	}
	if req.Stock < 0 {
		return apperr.InvalidArgument("stock cannot be negative")
	}
	return nil
}
