package auth

import (
	"context"
	"sync"
	"time"

	"github.com/tmwanza/storefront-backend/internal/apperr"
)

// MemoryRepository keeps credentials keyed by email.
type MemoryRepository struct {
	mu    sync.Mutex
	creds map[string]Credential
}

// NewMemoryRepository creates an empty in-memory credential repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{creds: make(map[string]Credential)}
}

func (r *MemoryRepository) Create(ctx context.Context, c *Credential) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.creds[c.Email]; ok {
		return apperr.Conflict("email %s is already registered", c.Email)
	}
	c.CreatedAt = time.Now().UTC()
	r.creds[c.Email] = *c
	return nil
}

func (r *MemoryRepository) GetByEmail(ctx context.Context, email string) (*Credential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.creds[email]
	if !ok {
		return nil, apperr.NotFound("no credential for %s", email)
	}
	return &c, nil
}
