package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-backend/internal/domains/skill/service"
	infracache "portfolio-backend/internal/infrastructure/cache"
	"portfolio-backend/internal/infrastructure/identity"
	"portfolio-backend/internal/session"
	"portfolio-backend/pkg/docstore"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupRouter(t *testing.T, authed bool) *gin.Engine {
	t.Helper()
	svc := service.NewSkillService(docstore.NewMemory(), session.NewGuard(), infracache.NewMemoryCache())
	h := NewSkillHandler(svc)

	router := gin.New()
	if authed {
		router.Use(func(c *gin.Context) {
			ctx := session.WithUser(c.Request.Context(), identity.User{UID: "admin"})
			c.Request = c.Request.WithContext(ctx)
		})
	}
	router.GET("/skills", h.GetAll)
	router.POST("/skills", h.Create)
	router.POST("/skills/bulk", h.BulkReplace)
	return router
}

func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestBulkReplaceMixedPayload(t *testing.T) {
	router := setupRouter(t, true)

	w := doJSON(router, http.MethodPost, "/skills/bulk", `{"skills":["Go",{"name":"Postgres","order":7},"Redis"]}`)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool `json:"success"`
		Skills  []struct {
			ID    string `json:"id"`
			Name  string `json:"name"`
			Order *int   `json:"order"`
		} `json:"skills"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	require.Len(t, body.Skills, 3)
	assert.Equal(t, "Go", body.Skills[0].Name)
	assert.Equal(t, "Postgres", body.Skills[1].Name)
	assert.Equal(t, "Redis", body.Skills[2].Name)
	for i, s := range body.Skills {
		require.NotNil(t, s.Order)
		assert.Equal(t, i, *s.Order)
		assert.NotEmpty(t, s.ID)
	}
}

func TestBulkReplaceRejectsNonArray(t *testing.T) {
	router := setupRouter(t, true)

	for _, payload := range []string{
		`{"skills":"Go"}`,
		`{"skills":{"name":"Go"}}`,
		`{"skills":42}`,
	} {
		w := doJSON(router, http.MethodPost, "/skills/bulk", payload)
		assert.Equal(t, http.StatusBadRequest, w.Code, "payload %s", payload)
	}
}

func TestBulkReplaceWithoutSession(t *testing.T) {
	router := setupRouter(t, false)

	w := doJSON(router, http.MethodPost, "/skills/bulk", `{"skills":["Go"]}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateAndList(t *testing.T) {
	router := setupRouter(t, true)

	w := doJSON(router, http.MethodPost, "/skills", `{"name":"Go"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodGet, "/skills", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Items []struct {
			Name string `json:"name"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Items, 1)
	assert.Equal(t, "Go", body.Items[0].Name)
}
