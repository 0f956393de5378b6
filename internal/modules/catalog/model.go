package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a sellable item in the storefront catalog.
type Product struct {
	ID          uint64          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       uint64          `json:"stock"`
	Category    string          `json:"category"`
	ImageFile   string          `json:"imageFile"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// Category groups products by name. Products reference categories by name
// only; deleting a category leaves its products untouched.
type Category struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// ProductRequest holds the data for creating or updating a product.
type ProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int64           `json:"stock"`
	Category    string          `json:"category"`
	ImageFile   string          `json:"imageFile"`
}

// StockRequest sets an absolute stock level.
type StockRequest struct {
	Stock int64 `json:"stock"`
}

// CategoryRequest holds the data for creating or renaming a category.
type CategoryRequest struct {
	Name string `json:"name"`
}
