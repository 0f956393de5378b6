package catalog

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/tmwanza/storefront-backend/internal/apperr"
)

func now() time.Time { return time.Now().UTC() }

// MemoryRepository is the in-memory catalog store. It is the serialization
// point for stock: every stock mutation happens under its lock, so a
// check-and-decrement spanning several products is all-or-nothing.
type MemoryRepository struct {
	mu         sync.Mutex
	products   map[uint64]Product
	categories map[uint64]Category
	nextProd   uint64
	nextCat    uint64
}

// NewMemoryRepository creates an empty in-memory catalog repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		products:   make(map[uint64]Product),
		categories: make(map[uint64]Category),
	}
}

func (r *MemoryRepository) CreateProduct(ctx context.Context, p *Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextProd++
	p.ID = r.nextProd
	p.CreatedAt = now()
	p.UpdatedAt = p.CreatedAt
	r.products[p.ID] = *p
	return nil
}

func (r *MemoryRepository) GetProduct(ctx context.Context, id uint64) (*Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, apperr.NotFound("product %d not found", id)
	}
	return &p, nil
}

func (r *MemoryRepository) ListProducts(ctx context.Context) ([]*Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Product, 0, len(r.products))
	for _, p := range r.products {
		p := p
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MemoryRepository) ListProductsByCategory(ctx context.Context, category string) ([]*Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*Product
	for _, p := range r.products {
		if p.Category == category {
			p := p
			out = append(out, &p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MemoryRepository) UpdateProduct(ctx context.Context, p *Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.products[p.ID]
	if !ok {
		return apperr.NotFound("product %d not found", p.ID)
	}
	p.CreatedAt = cur.CreatedAt
	p.UpdatedAt = now()
	r.products[p.ID] = *p
	return nil
}

func (r *MemoryRepository) DeleteProduct(ctx context.Context, id uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return apperr.NotFound("product %d not found", id)
	}
	delete(r.products, id)
	return nil
}

func (r *MemoryRepository) SetStock(ctx context.Context, id uint64, stock uint64) (*Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, apperr.NotFound("product %d not found", id)
	}
	p.Stock = stock
	p.UpdatedAt = now()
	r.products[id] = p
	return &p, nil
}

func (r *MemoryRepository) CountProducts(ctx context.Context) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return uint64(len(r.products)), nil
}

// DecrementStock subtracts the requested quantities in one step. Either
// every product has sufficient stock and all are decremented, or nothing
// changes.
func (r *MemoryRepository) DecrementStock(ctx context.Context, quantities map[uint64]uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, qty := range quantities {
		p, ok := r.products[id]
		if !ok {
			return apperr.NotFound("product %d not found", id)
		}
		if p.Stock < qty {
			return apperr.InsufficientStock("product %d has %d in stock, %d requested", id, p.Stock, qty)
		}
	}
	for id, qty := range quantities {
		p := r.products[id]
		p.Stock -= qty
		p.UpdatedAt = now()
		r.products[id] = p
	}
	return nil
}

func (r *MemoryRepository) CreateCategory(ctx context.Context, c *Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.categories {
		if existing.Name == c.Name {
			return apperr.Conflict("category %q already exists", c.Name)
		}
	}
	r.nextCat++
	c.ID = r.nextCat
	r.categories[c.ID] = *c
	return nil
}

func (r *MemoryRepository) GetCategory(ctx context.Context, id uint64) (*Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.categories[id]
	if !ok {
		return nil, apperr.NotFound("category %d not found", id)
	}
	return &c, nil
}

func (r *MemoryRepository) ListCategories(ctx context.Context) ([]*Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Category, 0, len(r.categories))
	for _, c := range r.categories {
		c := c
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MemoryRepository) UpdateCategory(ctx context.Context, c *Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.categories[c.ID]; !ok {
		return apperr.NotFound("category %d not found", c.ID)
	}
	for id, existing := range r.categories {
		if id != c.ID && existing.Name == c.Name {
			return apperr.Conflict("category %q already exists", c.Name)
		}
	}
	r.categories[c.ID] = *c
	return nil
}

func (r *MemoryRepository) DeleteCategory(ctx context.Context, id uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.categories[id]; !ok {
		return apperr.NotFound("category %d not found", id)
	}
	delete(r.categories, id)
	return nil
}
