// Package identity wraps the external identity provider. The application
// never checks credentials itself: it hands an opaque credential to a
// Verifier and gets identity claims back, then mints its own session cookie.
package identity

import (
	"context"
	"errors"
)

// User is the claim set the app cares about.
type User struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
}

// ErrInvalidCredential is returned when the provider rejects a credential.
var ErrInvalidCredential = errors.New("invalid credential")

// Verifier validates a credential (an ID token from the hosted provider, or
// email:password for the static dev verifier) and returns identity claims.
type Verifier interface {
	Verify(ctx context.Context, credential string) (*User, error)
}
