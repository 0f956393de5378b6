package user

import (
	"context"

	"github.com/tmwanza/storefront-backend/internal/apperr"
	"github.com/tmwanza/storefront-backend/internal/modules/identity"
)

// Service defines the user registry business logic. It also serves as the
// identity middleware's RoleResolver.
type Service interface {
	// SaveCallerProfile creates or updates the caller's own profile. The
	// stored role is preserved on update and defaults to user on create.
	SaveCallerProfile(ctx context.Context, caller identity.Caller, req ProfileRequest) (*Profile, error)

	// GetProfile returns a profile; callers see their own, admins see any.
	GetProfile(ctx context.Context, caller identity.Caller, principal identity.Principal) (*Profile, error)

	// ListAll returns every profile. Admin only.
	ListAll(ctx context.Context, caller identity.Caller) ([]*Profile, error)

	// AssignRole sets another principal's role. Admin only.
	AssignRole(ctx context.Context, caller identity.Caller, principal identity.Principal, req RoleRequest) error

	// RoleOf resolves the current role for a principal, defaulting to
	// user for authenticated principals without a profile yet.
	RoleOf(ctx context.Context, principal identity.Principal) (identity.Role, error)
}

type service struct{ repo Repository }

// NewService creates a new user service.
func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) SaveCallerProfile(ctx context.Context, caller identity.Caller, req ProfileRequest) (*Profile, error) {
	if !caller.Authenticated() {
		return nil, apperr.Unauthorized("sign in to save a profile")
	}
	if req.Name == "" || req.Email == "" {
		return nil, apperr.InvalidArgument("name and email are required")
	}
	role := identity.RoleUser
	if existing, err := s.repo.Get(ctx, caller.Principal); err == nil {
		role = existing.Role
	} else if !apperr.Is(err, apperr.CodeNotFound) {
		return nil, err
	}
	p := &Profile{
		Principal: caller.Principal,
		Name:      req.Name,
		Email:     req.Email,
		Role:      role,
	}
	if err := s.repo.Upsert(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) GetProfile(ctx context.Context, caller identity.Caller, principal identity.Principal) (*Profile, error) {
	if !caller.Authenticated() {
		return nil, apperr.Unauthorized("sign in to view profiles")
	}
	if principal != caller.Principal && !caller.Role.IsAdmin() {
		return nil, apperr.Unauthorized("only admins may view other profiles")
	}
	return s.repo.Get(ctx, principal)
}

func (s *service) ListAll(ctx context.Context, caller identity.Caller) ([]*Profile, error) {
	if !caller.Role.IsAdmin() {
		return nil, apperr.Unauthorized("only admins may list users")
	}
	return s.repo.List(ctx)
}

func (s *service) AssignRole(ctx context.Context, caller identity.Caller, principal identity.Principal, req RoleRequest) error {
	if !caller.Role.IsAdmin() {
		return apperr.Unauthorized("only admins may assign roles")
	}
	role, ok := identity.ParseRole(req.Role)
	if !ok {
		return apperr.InvalidArgument("unknown role %q", req.Role)
	}
	return s.repo.SetRole(ctx, principal, role)
}

func (s *service) RoleOf(ctx context.Context, principal identity.Principal) (identity.Role, error) {
	p, err := s.repo.Get(ctx, principal)
	if err != nil {
		if apperr.Is(err, apperr.CodeNotFound) {
			return identity.RoleUser, nil
		}
		return identity.RoleGuest, err
	}
	return p.Role, nil
}
