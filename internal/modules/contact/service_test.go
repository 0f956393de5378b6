package contact

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
)

func TestSubmit(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	m, err := svc.Submit(ctx, SubmitRequest{Name: "Ana", Email: "ana@example.com", Message: "hello"})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), m.ID)

	m, err = svc.Submit(ctx, SubmitRequest{Name: "Bo", Email: "bo@example.com", Message: "hi"})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), m.ID)

	_, err = svc.Submit(ctx, SubmitRequest{Name: "", Email: "", Message: ""})
	assert.True(t, apperr.Is(err, apperr.CodeInvalidArgument))
}

func TestList_AdminOnly(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()
	_, err := svc.Submit(ctx, SubmitRequest{Name: "Ana", Email: "ana@example.com", Message: "hello"})
	require.NoError(t, err)

	_, err = svc.List(ctx, shopper)
	assert.True(t, apperr.Is(err, apperr.CodeUnauthorized))
	_, err = svc.List(ctx, identity.Guest)
	assert.True(t, apperr.Is(err, apperr.CodeUnauthorized))

	messages, err := svc.List(ctx, admin)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "hello", messages[0].Message)
}
