package jwt

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextWithClaimsRoundTrip(t *testing.T) {
	claims := &Claims{
		UserID:  uuid.New(),
		Role:    RoleAdmin,
		TokenID: uuid.NewString(),
	}

	ctx := ContextWithClaims(context.Background(), claims)

	userID, ok := UserIDFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, claims.UserID, userID)

	role, ok := RoleFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, RoleAdmin, role)

	tokenID, ok := TokenIDFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, claims.TokenID, tokenID)
}

func TestEmptyContextHasNoIdentity(t *testing.T) {
	ctx := context.Background()

	_, ok := UserIDFromContext(ctx)
	assert.False(t, ok)

	_, ok = RoleFromContext(ctx)
	assert.False(t, ok)

	_, ok = TokenIDFromContext(ctx)
	assert.False(t, ok)
}
