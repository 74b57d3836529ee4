// Package session mints and verifies the opaque session token carried by
// the "session" cookie that gates the dashboard API.
package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"portfolio-backend/internal/infrastructure/identity"
)

// CookieName is the session cookie the middleware reads.
const CookieName = "session"

// DefaultTTL is the session lifetime, five days.
const DefaultTTL = 5 * 24 * time.Hour

// Claims is the session token payload.
type Claims struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Manager signs and validates session tokens with an HMAC secret.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

func NewManager(secret string, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{secret: []byte(secret), ttl: ttl}
}

// TTL returns the session lifetime, used for the cookie max-age.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Issue mints a session token for a verified identity.
func (m *Manager) Issue(user identity.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UID:   user.UID,
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify validates a session token and returns the identity it carries.
func (m *Manager) Verify(tokenString string) (*identity.User, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid session token")
	}
	return &identity.User{UID: claims.UID, Email: claims.Email}, nil
}
