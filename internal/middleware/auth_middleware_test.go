package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kpsunited/kps-admin-backend/internal/app/repository"
	"github.com/kpsunited/kps-admin-backend/internal/app/service"
	"github.com/kpsunited/kps-admin-backend/internal/storage"
	"github.com/kpsunited/kps-admin-backend/pkg/util"
)

func setupAuthMiddlewareTest(t *testing.T) (*gin.Engine, service.AuthService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	backend := storage.NewMemoryBackend(0)
	sessionRepo := repository.NewSessionRepository(backend)

	hash, err := util.HashPassword("admin123")
	require.NoError(t, err)
	authService := service.NewAuthService(sessionRepo, "test-secret", 24*time.Hour, hash)

	router := gin.New()
	router.GET("/protected", NewAuthMiddleware(authService).Authenticate(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router, authService
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	router, _ := setupAuthMiddlewareTest(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_InvalidHeaderFormat(t *testing.T) {
	router, _ := setupAuthMiddlewareTest(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_ValidSession(t *testing.T) {
	router, authService := setupAuthMiddlewareTest(t)

	_, token, err := authService.Login(context.Background(), "admin123")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddleware_TokenWithoutSessionRecord(t *testing.T) {
	router, authService := setupAuthMiddlewareTest(t)

	// Log in, then clear the record: the persisted session is the
	// source of truth, so the still-valid token is rejected.
	_, token, err := authService.Login(context.Background(), "admin123")
	require.NoError(t, err)
	_, err = authService.Logout(context.Background(), true)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_QueryTokenFallback(t *testing.T) {
	router, authService := setupAuthMiddlewareTest(t)

	_, token, err := authService.Login(context.Background(), "admin123")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected?token="+token, nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
