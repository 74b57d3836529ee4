package session

import (
	"context"

	"portfolio-backend/internal/infrastructure/identity"
)

type ctxKey struct{}

// WithUser stores the authenticated identity on the request context. Set by
// the session middleware after cookie verification.
func WithUser(ctx context.Context, user identity.User) context.Context {
	return context.WithValue(ctx, ctxKey{}, user)
}

// UserFrom returns the authenticated identity, if any.
func UserFrom(ctx context.Context) (identity.User, bool) {
	user, ok := ctx.Value(ctxKey{}).(identity.User)
	return user, ok
}
