package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"portfolio-backend/internal/session"
)

type clientIPKey struct{}

// SessionLoader verifies the session cookie, if present, and places the
// identity on the request context for the service-level guard. It never
// aborts: public reads go through unauthenticated, and the services reject
// mutations themselves before any store call.
func SessionLoader(manager *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(session.CookieName)
		if err == nil && cookie != "" {
			if user, verr := manager.Verify(cookie); verr == nil {
				c.Request = c.Request.WithContext(session.WithUser(c.Request.Context(), *user))
			}
		}
		c.Next()
	}
}

// ClientIP copies gin's resolved client IP onto the request context so the
// download tracker can record it without seeing the HTTP layer.
func ClientIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.WithValue(c.Request.Context(), clientIPKey{}, c.ClientIP())
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// ClientIPFrom returns the client IP stored by the ClientIP middleware.
func ClientIPFrom(ctx context.Context) string {
	if ip, ok := ctx.Value(clientIPKey{}).(string); ok {
		return ip
	}
	return ""
}
