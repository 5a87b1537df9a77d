package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kpsunited/kps-admin-backend/internal/app/model"
	"github.com/kpsunited/kps-admin-backend/internal/app/repository"
	"github.com/kpsunited/kps-admin-backend/internal/errors"
	"github.com/kpsunited/kps-admin-backend/internal/storage"
	"github.com/kpsunited/kps-admin-backend/pkg/util"
)

func setupAuthServiceTest(t *testing.T) (AuthService, repository.SessionRepository, storage.Backend) {
	t.Helper()

	backend := storage.NewMemoryBackend(0)
	sessionRepo := repository.NewSessionRepository(backend)

	hash, err := util.HashPassword("admin123")
	require.NoError(t, err)

	authService := NewAuthService(sessionRepo, "test-secret", 24*time.Hour, hash)
	return authService, sessionRepo, backend
}

func TestAuthService_Login(t *testing.T) {
	authService, sessionRepo, _ := setupAuthServiceTest(t)
	ctx := context.Background()

	session, token, err := authService.Login(ctx, "admin123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "Administrator", session.Name)
	assert.NotZero(t, session.LoginTime)

	stored, err := sessionRepo.LoadSession(ctx)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, session.LoginTime, stored.LoginTime)

	require.NoError(t, authService.ValidateToken(token))
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	authService, sessionRepo, _ := setupAuthServiceTest(t)
	ctx := context.Background()

	_, _, err := authService.Login(ctx, "letmein")
	assert.ErrorIs(t, err, errors.ErrInvalidCredentials)

	stored, err := sessionRepo.LoadSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestAuthService_Logout(t *testing.T) {
	authService, sessionRepo, _ := setupAuthServiceTest(t)
	ctx := context.Background()

	_, _, err := authService.Login(ctx, "admin123")
	require.NoError(t, err)

	// Unconfirmed logout is a no-op
	cleared, err := authService.Logout(ctx, false)
	require.NoError(t, err)
	assert.False(t, cleared)

	stored, err := sessionRepo.LoadSession(ctx)
	require.NoError(t, err)
	assert.NotNil(t, stored)

	// Confirmed logout clears the record
	cleared, err = authService.Logout(ctx, true)
	require.NoError(t, err)
	assert.True(t, cleared)

	stored, err = sessionRepo.LoadSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestAuthService_SessionState(t *testing.T) {
	authService, sessionRepo, backend := setupAuthServiceTest(t)
	ctx := context.Background()

	// No record at all
	state, _, err := authService.SessionState(ctx)
	require.NoError(t, err)
	assert.Equal(t, StateUnauthenticated, state)

	// Fresh session
	require.NoError(t, sessionRepo.SaveSession(ctx, &model.Session{
		Name:      "Administrator",
		LoginTime: time.Now().Add(-time.Hour).UnixMilli(),
	}))
	state, session, err := authService.SessionState(ctx)
	require.NoError(t, err)
	assert.Equal(t, StateAuthenticated, state)
	require.NotNil(t, session)

	// Session past the 24h window
	require.NoError(t, sessionRepo.SaveSession(ctx, &model.Session{
		Name:      "Administrator",
		LoginTime: time.Now().Add(-25 * time.Hour).UnixMilli(),
	}))
	state, _, err = authService.SessionState(ctx)
	require.NoError(t, err)
	assert.Equal(t, StateExpired, state)

	// A record that does not parse counts as expired, never as an error
	require.NoError(t, backend.Set(ctx, repository.KeySession, []byte("{broken")))
	state, session, err = authService.SessionState(ctx)
	require.NoError(t, err)
	assert.Equal(t, StateExpired, state)
	assert.Nil(t, session)
}

func TestAuthService_EvaluatePage_Authenticated(t *testing.T) {
	authService, sessionRepo, _ := setupAuthServiceTest(t)
	ctx := context.Background()

	require.NoError(t, sessionRepo.SaveSession(ctx, &model.Session{
		LoginTime: time.Now().UnixMilli(),
	}))

	// Logged-in users bounce off the login-only pages
	for _, page := range []string{PageLogin, PageResetPassword} {
		decision, err := authService.EvaluatePage(ctx, page)
		require.NoError(t, err)
		assert.Equal(t, ActionRedirectDashboard, decision.Action)
		assert.Equal(t, PageDashboard, decision.Target)
	}

	// Terms stays reachable while logged in, as does the dashboard
	for _, page := range []string{PageTerms, PageDashboard, "stores.html"} {
		decision, err := authService.EvaluatePage(ctx, page)
		require.NoError(t, err)
		assert.Equal(t, ActionProceed, decision.Action)
	}
}

func TestAuthService_EvaluatePage_Unauthenticated(t *testing.T) {
	authService, _, _ := setupAuthServiceTest(t)
	ctx := context.Background()

	// Public pages proceed
	for _, page := range []string{PageLogin, PageResetPassword, PageTerms} {
		decision, err := authService.EvaluatePage(ctx, page)
		require.NoError(t, err)
		assert.Equal(t, ActionProceed, decision.Action)
	}

	// Protected pages redirect to login
	decision, err := authService.EvaluatePage(ctx, PageDashboard)
	require.NoError(t, err)
	assert.Equal(t, ActionRedirectLogin, decision.Action)
	assert.Equal(t, PageLogin, decision.Target)
	assert.False(t, decision.SessionCleared)
}

func TestAuthService_EvaluatePage_Expired(t *testing.T) {
	authService, sessionRepo, _ := setupAuthServiceTest(t)
	ctx := context.Background()

	seedExpired := func() {
		require.NoError(t, sessionRepo.SaveSession(ctx, &model.Session{
			LoginTime: time.Now().Add(-25 * time.Hour).UnixMilli(),
		}))
	}

	// Expired on a protected page clears the session and redirects
	seedExpired()
	decision, err := authService.EvaluatePage(ctx, PageDashboard)
	require.NoError(t, err)
	assert.Equal(t, StateExpired, decision.State)
	assert.Equal(t, ActionRedirectLogin, decision.Action)
	assert.True(t, decision.SessionCleared)

	stored, err := sessionRepo.LoadSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, stored)

	// Expired on a public page is a no-op: proceed, record untouched
	seedExpired()
	decision, err = authService.EvaluatePage(ctx, PageTerms)
	require.NoError(t, err)
	assert.Equal(t, ActionProceed, decision.Action)
	assert.False(t, decision.SessionCleared)

	stored, err = sessionRepo.LoadSession(ctx)
	require.NoError(t, err)
	assert.NotNil(t, stored)
}

func TestAuthService_ClearExpired(t *testing.T) {
	authService, sessionRepo, _ := setupAuthServiceTest(t)
	ctx := context.Background()

	// Nothing to clear
	cleared, err := authService.ClearExpired(ctx)
	require.NoError(t, err)
	assert.False(t, cleared)

	// A live session is left alone
	require.NoError(t, sessionRepo.SaveSession(ctx, &model.Session{
		LoginTime: time.Now().UnixMilli(),
	}))
	cleared, err = authService.ClearExpired(ctx)
	require.NoError(t, err)
	assert.False(t, cleared)

	// An expired one goes away
	require.NoError(t, sessionRepo.SaveSession(ctx, &model.Session{
		LoginTime: time.Now().Add(-25 * time.Hour).UnixMilli(),
	}))
	cleared, err = authService.ClearExpired(ctx)
	require.NoError(t, err)
	assert.True(t, cleared)

	stored, err := sessionRepo.LoadSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestAuthService_ValidateToken(t *testing.T) {
	authService, _, _ := setupAuthServiceTest(t)

	assert.Error(t, authService.ValidateToken("not-a-token"))

	expired, err := util.GenerateSessionToken("test-secret", time.Now().Add(-48*time.Hour), 24*time.Hour)
	require.NoError(t, err)
	assert.ErrorIs(t, authService.ValidateToken(expired), util.ErrExpiredToken)
}
