// Package user owns per-principal profiles and role assignment.
package user

import (
	"time"

	"github.com/tmwanza/storefront-backend/internal/modules/identity"
)

// Profile is the per-principal user record. Exactly one exists per
// principal; the first save creates it with the default role.
type Profile struct {
	Principal identity.Principal `json:"principal"`
	Name      string             `json:"name"`
	Email     string             `json:"email"`
	Role      identity.Role      `json:"role"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// ProfileRequest is the payload for saving the caller's own profile. A
// role field submitted here is ignored; roles move only through
// AssignRole.
type ProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// RoleRequest is the payload for an admin role assignment.
type RoleRequest struct {
	Role string `json:"role"`
}
