package contact

import (
	"context"
	"sync"
	"time"
)

// MemoryRepository keeps messages in insertion order.
type MemoryRepository struct {
	mu       sync.Mutex
	messages []Message
	nextID   uint64
}

// NewMemoryRepository creates an empty in-memory contact repository.
func NewMemoryRepository() *MemoryRepository { return &MemoryRepository{} }

func (r *MemoryRepository) Create(ctx context.Context, m *Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	m.ID = r.nextID
	m.CreatedAt = time.Now().UTC()
	r.messages = append(r.messages, *m)
	return nil
}

func (r *MemoryRepository) List(ctx context.Context) ([]*Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Message, len(r.messages))
	for i := range r.messages {
		m := r.messages[i]
		out[i] = &m
	}
	return out, nil
}
