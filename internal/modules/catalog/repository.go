package catalog

import "context"

// Repository defines data access for products and categories.
type Repository interface {
	// CreateProduct persists a new product and assigns its id.
	CreateProduct(ctx context.Context, p *Product) error
	GetProduct(ctx context.Context, id uint64) (*Product, error)
	ListProducts(ctx context.Context) ([]*Product, error)
	ListProductsByCategory(ctx context.Context, category string) ([]*Product, error)
	UpdateProduct(ctx context.Context, p *Product) error
	DeleteProduct(ctx context.Context, id uint64) error

	// SetStock writes an absolute stock level and returns the updated product.
	SetStock(ctx context.Context, id uint64, stock uint64) (*Product, error)

	// CountProducts reports the catalog size for dashboard rollups.
	CountProducts(ctx context.Context) (uint64, error)

	// CreateCategory persists a new category; duplicate names conflict.
	CreateCategory(ctx context.Context, c *Category) error
	GetCategory(ctx context.Context, id uint64) (*Category, error)
	ListCategories(ctx context.Context) ([]*Category, error)
	UpdateCategory(ctx context.Context, c *Category) error
	DeleteCategory(ctx context.Context, id uint64) error
}
