// Package contact takes storefront contact-form submissions.
package contact

import (
	"context"

	"github.com/tmwanza/storefront-backend/internal/apperr"
	"github.com/tmwanza/storefront-backend/internal/modules/identity"
)

// Service defines contact-message business logic.
type Service interface {
	// Submit stores a message from any caller, guests included.
	Submit(ctx context.Context, req SubmitRequest) (*Message, error)

	// List returns every message. Admin only.
	List(ctx context.Context, caller identity.Caller) ([]*Message, error)
}

type service struct{ repo Repository }

// NewService creates a new contact service.
func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) Submit(ctx context.Context, req SubmitRequest) (*Message, error) {
	if req.Name == "" || req.Email == "" || req.Message == "" {
		return nil, apperr.InvalidArgument("name, email, and message are required")
	}
	m := &Message{Name: req.Name, Email: req.Email, Message: req.Message}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *service) List(ctx context.Context, caller identity.Caller) ([]*Message, error) {
	if !caller.Role.IsAdmin() {
		return nil, apperr.Unauthorized("only admins may read contact messages")
	}
	return s.repo.List(ctx)
}
