package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio-backend/internal/infrastructure/identity"
	"portfolio-backend/internal/session"
	"portfolio-backend/internal/shared/response"
	"portfolio-backend/pkg/logger"
)

// AuthHandler exchanges an identity-provider credential for the session
// cookie that gates the dashboard. Credential checking itself is fully
// delegated to the configured verifier.
type AuthHandler struct {
	verifier     identity.Verifier
	sessions     *session.Manager
	secureCookie bool
}

func NewAuthHandler(verifier identity.Verifier, sessions *session.Manager, secureCookie bool) *AuthHandler {
	return &AuthHandler{verifier: verifier, sessions: sessions, secureCookie: secureCookie}
}

type createSessionRequest struct {
	IDToken string `json:"idToken"`
}

// CreateSession handles POST /auth/session.
func (h *AuthHandler) CreateSession(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IDToken == "" {
		response.BadRequest(c, "idToken is required")
		return
	}

	user, err := h.verifier.Verify(c.Request.Context(), req.IDToken)
	if err != nil {
		logger.Warn("session creation rejected", err)
		response.Unauthorized(c, "failed to create session")
		return
	}

	token, err := h.sessions.Issue(*user)
	if err != nil {
		response.InternalServerError(c, "failed to create session")
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(session.CookieName, token, int(h.sessions.TTL().Seconds()), "/", "", h.secureCookie, true)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    gin.H{"uid": user.UID, "email": user.Email},
	})
}

// GetSession handles GET /auth/session.
func (h *AuthHandler) GetSession(c *gin.Context) {
	cookie, err := c.Cookie(session.CookieName)
	if err != nil || cookie == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"authenticated": false})
		return
	}
	user, err := h.sessions.Verify(cookie)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"authenticated": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"authenticated": true,
		"user":          gin.H{"uid": user.UID, "email": user.Email},
	})
}

// DeleteSession handles DELETE /auth/session.
func (h *AuthHandler) DeleteSession(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(session.CookieName, "", -1, "/", "", h.secureCookie, true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}
