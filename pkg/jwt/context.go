package jwt

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	userIDKey  contextKey = "user_id"
	roleKey    contextKey = "role"
	tokenIDKey contextKey = "token_id"
)

// ContextWithClaims stores the validated identity on the context so layers
// below the transport can resolve the acting user without importing it.
func ContextWithClaims(ctx context.Context, claims *Claims) context.Context {
	ctx = context.WithValue(ctx, userIDKey, claims.UserID)
	ctx = context.WithValue(ctx, roleKey, claims.Role)
	return context.WithValue(ctx, tokenIDKey, claims.TokenID)
}

// UserIDFromContext extracts the authenticated user ID from context
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(userIDKey).(uuid.UUID)
	return userID, ok
}

// RoleFromContext extracts the authenticated user role from context
func RoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(roleKey).(string)
	return role, ok
}

// TokenIDFromContext extracts the token ID from context
func TokenIDFromContext(ctx context.Context) (string, bool) {
	tokenID, ok := ctx.Value(tokenIDKey).(string)
	return tokenID, ok
}
