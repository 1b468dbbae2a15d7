package middleware

import (
	"context"

	"github.com/quangxuan98765/data-processing-api/internal/domain"
)

type contextKey string

const (
	userContextKey  contextKey = "user"
	tokenContextKey contextKey = "token"
)

// WithAuth injects the authenticated user and the bearer token that proved
// it into the context.
func WithAuth(ctx context.Context, user *domain.PublicUser, token string) context.Context {
	ctx = context.WithValue(ctx, userContextKey, user)
	return context.WithValue(ctx, tokenContextKey, token)
}

// UserFromContext returns the authenticated user from the context, or nil.
func UserFromContext(ctx context.Context) *domain.PublicUser {
	v := ctx.Value(userContextKey)
	if v == nil {
		return nil
	}
	u, _ := v.(*domain.PublicUser)
	return u
}

// TokenFromContext returns the bearer token the request authenticated with.
func TokenFromContext(ctx context.Context) string {
	v := ctx.Value(tokenContextKey)
	if v == nil {
		return ""
	}
	t, _ := v.(string)
	return t
}
