package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pharmalink/backend/internal/domain/identity"
	"github.com/pharmalink/backend/internal/infrastructure/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuthedRouter(t *testing.T, manager *auth.JWTManager) (*gin.Engine, *uuid.UUID) {
	t.Helper()
	var seenUserID uuid.UUID

	router := gin.New()
	router.Use(JWTAuthMiddlewareWithConfig(JWTMiddlewareConfig{
		Manager:   manager,
		SkipPaths: []string{"/public"},
	}))
	router.GET("/protected", func(c *gin.Context) {
		seenUserID = GetJWTUserID(c)
		c.Status(http.StatusOK)
	})
	router.GET("/public", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router, &seenUserID
}

func TestJWTAuthMiddleware(t *testing.T) {
	manager := auth.NewJWTManager("test-secret-test-secret-test-secret", "pharmalink-test", time.Hour)

	t.Run("valid token passes and exposes the user", func(t *testing.T) {
		router, seenUserID := newAuthedRouter(t, manager)

		userID := uuid.New()
		token, _, err := manager.Issue(userID, identity.RoleSalesRep)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, userID, *seenUserID)
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		router, _ := newAuthedRouter(t, manager)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/protected", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed header is rejected", func(t *testing.T) {
		router, _ := newAuthedRouter(t, manager)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Token abc")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		expiredManager := auth.NewJWTManager("test-secret-test-secret-test-secret", "pharmalink-test", -time.Minute)
		token, _, err := expiredManager.Issue(uuid.New(), identity.RoleSalesRep)
		require.NoError(t, err)

		router, _ := newAuthedRouter(t, manager)
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_TOKEN_EXPIRED")
	})

	t.Run("skip paths bypass authentication", func(t *testing.T) {
		router, _ := newAuthedRouter(t, manager)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/public", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRequireRole(t *testing.T) {
	router := gin.New()
	router.GET("/admin",
		func(c *gin.Context) { c.Set(JWTRoleKey, identity.RoleSalesRep) },
		RequireRole(identity.RoleAdmin),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)
	router.GET("/sales",
		func(c *gin.Context) { c.Set(JWTRoleKey, identity.RoleSalesRep) },
		RequireRole(identity.RoleAdmin, identity.RoleSalesRep),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/admin", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/sales", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
