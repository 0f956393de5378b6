package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmwanza/storefront-backend/internal/apperr"
	"github.com/tmwanza/storefront-backend/internal/modules/identity"
)

var (
	admin   = identity.Caller{Principal: "admin-1", Role: identity.RoleAdmin}
	shopper = identity.Caller{Principal: "user-1", Role: identity.RoleUser}
	other   = identity.Caller{Principal: "user-2", Role: identity.RoleUser}
)

func newTestService(t *testing.T) Service {
	t.Helper()
	return NewService(NewMemoryRepository())
}

func TestSaveCallerProfile_DefaultsToUserRole(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	p, err := svc.SaveCallerProfile(ctx, shopper, ProfileRequest{Name: "Ana", Email: "ana@example.com"})
	require.NoError(t, err)
	assert.Equal(t, identity.RoleUser, p.Role)
	assert.Equal(t, shopper.Principal, p.Principal)

	_, err = svc.SaveCallerProfile(ctx, identity.Guest, ProfileRequest{Name: "x", Email: "x@example.com"})
	assert.True(t, apperr.Is(err, apperr.CodeUnauthorized))

	_, err = svc.SaveCallerProfile(ctx, shopper, ProfileRequest{Name: "", Email: ""})
	assert.True(t, apperr.Is(err, apperr.CodeInvalidArgument))
}

func TestSaveCallerProfile_CannotSelfPromote(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.SaveCallerProfile(ctx, shopper, ProfileRequest{Name: "Ana", Email: "ana@example.com"})
	require.NoError(t, err)

	// Promote via the admin path, then make sure a later self-save does
	// not reset or alter the stored role.
	require.NoError(t, svc.AssignRole(ctx, admin, shopper.Principal, RoleRequest{Role: "admin"}))

	p, err := svc.SaveCallerProfile(ctx, shopper, ProfileRequest{Name: "Ana B", Email: "ana@example.com"})
	require.NoError(t, err)
	assert.Equal(t, identity.RoleAdmin, p.Role, "self-save preserves the stored role")
	assert.Equal(t, "Ana B", p.Name)

	role, err := svc.RoleOf(ctx, shopper.Principal)
	require.NoError(t, err)
	assert.Equal(t, identity.RoleAdmin, role)
}

func TestAssignRole_AdminOnly(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	_, err := svc.SaveCallerProfile(ctx, other, ProfileRequest{Name: "Bo", Email: "bo@example.com"})
	require.NoError(t, err)

	err = svc.AssignRole(ctx, shopper, other.Principal, RoleRequest{Role: "admin"})
	assert.True(t, apperr.Is(err, apperr.CodeUnauthorized))

	err = svc.AssignRole(ctx, admin, other.Principal, RoleRequest{Role: "superuser"})
	assert.True(t, apperr.Is(err, apperr.CodeInvalidArgument))

	err = svc.AssignRole(ctx, admin, "nobody", RoleRequest{Role: "admin"})
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))

	require.NoError(t, svc.AssignRole(ctx, admin, other.Principal, RoleRequest{Role: "admin"}))
	role, err := svc.RoleOf(ctx, other.Principal)
	require.NoError(t, err)
	assert.Equal(t, identity.RoleAdmin, role)
}

func TestRoleOf_UnknownPrincipalDefaultsToUser(t *testing.T) {
	svc := newTestService(t)
	role, err := svc.RoleOf(context.Background(), "fresh-principal")
	require.NoError(t, err)
	assert.Equal(t, identity.RoleUser, role)
}

func TestGetProfile_Scoping(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	_, err := svc.SaveCallerProfile(ctx, shopper, ProfileRequest{Name: "Ana", Email: "ana@example.com"})
	require.NoError(t, err)

	_, err = svc.GetProfile(ctx, other, shopper.Principal)
	assert.True(t, apperr.Is(err, apperr.CodeUnauthorized))

	p, err := svc.GetProfile(ctx, shopper, shopper.Principal)
	require.NoError(t, err)
	assert.Equal(t, "Ana", p.Name)

	_, err = svc.GetProfile(ctx, admin, shopper.Principal)
	require.NoError(t, err)
}

func TestListAll_AdminOnly(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	for _, c := range []identity.Caller{shopper, other} {
		_, err := svc.SaveCallerProfile(ctx, c, ProfileRequest{Name: string(c.Principal), Email: "a@b.c"})
		require.NoError(t, err)
	}

	_, err := svc.ListAll(ctx, shopper)
	assert.True(t, apperr.Is(err, apperr.CodeUnauthorized))

	profiles, err := svc.ListAll(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, profiles, 2)
}

func TestSaveCallerProfile_OnePerPrincipal(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.SaveCallerProfile(ctx, shopper, ProfileRequest{Name: "Ana", Email: "ana@example.com"})
	require.NoError(t, err)
	_, err = svc.SaveCallerProfile(ctx, shopper, ProfileRequest{Name: "Ana B", Email: "ana@example.com"})
	require.NoError(t, err)

	profiles, err := svc.ListAll(ctx, admin)
	require.NoError(t, err)
	require.Len(t, profiles, 1, "saving twice must not create a second profile")
	assert.Equal(t, "Ana B", profiles[0].Name)
}
