package session

import (
	"context"

	"portfolio-backend/internal/shared/apperrors"
)

// Guard is the session check the collection services run before any
// mutating operation. Reads never consult it.
type Guard interface {
	// Authenticate returns apperrors.ErrUnauthorized when the context
	// carries no verified session.
	Authenticate(ctx context.Context) error
}

// ContextGuard trusts the identity placed on the context by the session
// middleware.
type ContextGuard struct{}

func NewGuard() ContextGuard { return ContextGuard{} }

func (ContextGuard) Authenticate(ctx context.Context) error {
	if _, ok := UserFrom(ctx); !ok {
		return apperrors.ErrUnauthorized
	}
	return nil
}
