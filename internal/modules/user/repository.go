package user

import (
	"context"

	"github.com/tmwanza/storefront-backend/internal/modules/identity"
)

// Repository defines data access for user profiles.
type Repository interface {
	// Upsert creates or replaces the profile for its principal.
	Upsert(ctx context.Context, p *Profile) error
	Get(ctx context.Context, principal identity.Principal) (*Profile, error)
	List(ctx context.Context) ([]*Profile, error)
	SetRole(ctx context.Context, principal identity.Principal, role identity.Role) error

	// CountUsers reports the registry size for dashboard rollups.
	CountUsers(ctx context.Context) (uint64, error)
}
