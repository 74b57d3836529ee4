package identity

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// StaticVerifier is the development verifier: one admin account configured
// by env, password checked against a bcrypt hash. The credential format is
// "email:password".
type StaticVerifier struct {
	email        string
	passwordHash string
}

func NewStaticVerifier(email, passwordHash string) *StaticVerifier {
	return &StaticVerifier{email: email, passwordHash: passwordHash}
}

func (v *StaticVerifier) Verify(_ context.Context, credential string) (*User, error) {
	email, password, ok := strings.Cut(credential, ":")
	if !ok {
		return nil, fmt.Errorf("%w: expected email:password", ErrInvalidCredential)
	}
	if email != v.email {
		return nil, ErrInvalidCredential
	}
	if err := bcrypt.CompareHashAndPassword([]byte(v.passwordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredential
	}
	return &User{UID: "admin", Email: email}, nil
}
