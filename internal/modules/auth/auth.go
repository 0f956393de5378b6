// Package auth issues the bearer tokens the identity gate verifies. It
// stands in for the external login provider: credentials live here, while
// profiles and roles belong to the user registry.
package auth

import (
	"context"
	"time"

	"github.com/tmwanza/storefront-backend/internal/modules/identity"
)

// Service defines the interface for authentication-related business logic.
type Service interface {
	// Register creates a credential, mints a fresh principal, and
	// returns a signed token for it.
	Register(ctx context.Context, email, password string) (string, error)

	// Login verifies a credential and returns a signed token.
	Login(ctx context.Context, email, password string) (string, error)
}

// Credential binds an email/password hash to the principal it yields.
type Credential struct {
	Principal    identity.Principal
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Repository defines data access for credentials.
type Repository interface {
	// Create persists a credential; a duplicate email conflicts.
	Create(ctx context.Context, c *Credential) error
	GetByEmail(ctx context.Context, email string) (*Credential, error)
}

// LoginRequest is the payload for both register and login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
