package contact

import "context"

// Repository defines data access for contact messages.
type Repository interface {
	// Create persists a message and assigns its id.
	Create(ctx context.Context, m *Message) error
	List(ctx context.Context) ([]*Message, error)
}
