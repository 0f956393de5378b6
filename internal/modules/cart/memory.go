package cart

import (
	"context"
	"sort"
	"sync"

	"github.com/tmwanza/storefront-backend/internal/modules/identity"
)

// MemoryRepository keeps one quantity map per principal.
type MemoryRepository struct {
	mu    sync.Mutex
	carts map[identity.Principal]map[uint64]uint64
}

// NewMemoryRepository creates an empty in-memory cart repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{carts: make(map[identity.Principal]map[uint64]uint64)}
}

func (r *MemoryRepository) Get(ctx context.Context, owner identity.Principal) ([]Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	lines := r.carts[owner]
	out := make([]Item, 0, len(lines))
	for pid, qty := range lines {
		out = append(out, Item{ProductID: pid, Quantity: qty})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out, nil
}

func (r *MemoryRepository) Add(ctx context.Context, owner identity.Principal, productID, qty uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	lines := r.carts[owner]
	if lines == nil {
		lines = make(map[uint64]uint64)
		r.carts[owner] = lines
	}
	lines[productID] += qty
	return nil
}

func (r *MemoryRepository) Set(ctx context.Context, owner identity.Principal, productID, qty uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	lines := r.carts[owner]
	if lines == nil {
		lines = make(map[uint64]uint64)
		r.carts[owner] = lines
	}
	lines[productID] = qty
	return nil
}

func (r *MemoryRepository) Remove(ctx context.Context, owner identity.Principal, productID uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts[owner], productID)
	return nil
}

func (r *MemoryRepository) Clear(ctx context.Context, owner identity.Principal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, owner)
	return nil
}
