package wishlist

import (
	"context"
	"sort"
	"sync"

	"github.com/tmwanza/storefront-backend/internal/modules/identity"
)

// MemoryRepository keeps one product-id set per principal.
type MemoryRepository struct {
	mu    sync.Mutex
	lists map[identity.Principal]map[uint64]struct{}
}

// NewMemoryRepository creates an empty in-memory wishlist repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{lists: make(map[identity.Principal]map[uint64]struct{})}
}

func (r *MemoryRepository) Get(ctx context.Context, owner identity.Principal) ([]uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	set := r.lists[owner]
	out := make([]uint64, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

func (r *MemoryRepository) Add(ctx context.Context, owner identity.Principal, productID uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	set := r.lists[owner]
	if set == nil {
		set = make(map[uint64]struct{})
		r.lists[owner] = set
	}
	set[productID] = struct{}{}
	return nil
}

func (r *MemoryRepository) Remove(ctx context.Context, owner identity.Principal, productID uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.lists[owner], productID)
	return nil
}
