package user

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/tmwanza/storefront-backend/internal/apperr"
	"github.com/tmwanza/storefront-backend/internal/modules/identity"
)

// MemoryRepository keeps one profile per principal.
type MemoryRepository struct {
	mu       sync.Mutex
	profiles map[identity.Principal]Profile
}

// NewMemoryRepository creates an empty in-memory user repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{profiles: make(map[identity.Principal]Profile)}
}

func (r *MemoryRepository) Upsert(ctx context.Context, p *Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	if existing, ok := r.profiles[p.Principal]; ok {
		p.CreatedAt = existing.CreatedAt
	} else {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	r.profiles[p.Principal] = *p
	return nil
}

func (r *MemoryRepository) Get(ctx context.Context, principal identity.Principal) (*Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[principal]
	if !ok {
		return nil, apperr.NotFound("no profile for principal %s", principal)
	}
	return &p, nil
}

func (r *MemoryRepository) List(ctx context.Context) ([]*Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		p := p
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Principal < out[j].Principal })
	return out, nil
}

func (r *MemoryRepository) SetRole(ctx context.Context, principal identity.Principal, role identity.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[principal]
	if !ok {
		return apperr.NotFound("no profile for principal %s", principal)
	}
	p.Role = role
	p.UpdatedAt = time.Now().UTC()
	r.profiles[principal] = p
	return nil
}

func (r *MemoryRepository) CountUsers(ctx context.Context) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return uint64(len(r.profiles)), nil
}
