package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmwanza/storefront-backend/internal/apperr"
	"github.com/tmwanza/storefront-backend/internal/modules/identity"
)

var secret = []byte("test-secret")

func TestRegisterAndLogin(t *testing.T) {
	svc := NewService(NewMemoryRepository(), secret)
	ctx := context.Background()

	registered, err := svc.Register(ctx, "ana@example.com", "correct horse")
	require.NoError(t, err)

	logged, err := svc.Login(ctx, "ana@example.com", "correct horse")
	require.NoError(t, err)

	// Both tokens must name the same principal.
	p1, err := identity.ParseToken(secret, registered)
	require.NoError(t, err)
	p2, err := identity.ParseToken(secret, logged)
	require.NoError(t, err)
	assert.Equal(t, p1, p2)
	assert.NotEmpty(t, p1)
}

func TestRegister_Validation(t *testing.T) {
	svc := NewService(NewMemoryRepository(), secret)
	ctx := context.Background()

	_, err := svc.Register(ctx, "", "correct horse")
	assert.True(t, apperr.Is(err, apperr.CodeInvalidArgument))
	_, err = svc.Register(ctx, "ana@example.com", "short")
	assert.True(t, apperr.Is(err, apperr.CodeInvalidArgument))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := NewService(NewMemoryRepository(), secret)
	ctx := context.Background()

	_, err := svc.Register(ctx, "ana@example.com", "correct horse")
	require.NoError(t, err)
	_, err = svc.Register(ctx, "ana@example.com", "other password")
	assert.True(t, apperr.Is(err, apperr.CodeConflict))
}

func TestLogin_BadCredentials(t *testing.T) {
	svc := NewService(NewMemoryRepository(), secret)
	ctx := context.Background()

	_, err := svc.Register(ctx, "ana@example.com", "correct horse")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "ana@example.com", "wrong")
	assert.True(t, apperr.Is(err, apperr.CodeUnauthorized))
	_, err = svc.Login(ctx, "nobody@example.com", "correct horse")
	assert.True(t, apperr.Is(err, apperr.CodeUnauthorized))
}
