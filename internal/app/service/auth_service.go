package service

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/kpsunited/kps-admin-backend/internal/app/model"
	"github.com/kpsunited/kps-admin-backend/internal/app/repository"
	"github.com/kpsunited/kps-admin-backend/internal/errors"
	"github.com/kpsunited/kps-admin-backend/pkg/logger"
	"github.com/kpsunited/kps-admin-backend/pkg/util"
)

// Page identifiers the guard routes between. These are the console's
// entry points, not entities.
const (
	PageLogin         = "index.html"
	PageDashboard     = "dashboard.html"
	PageResetPassword = "reset-password.html"
	PageTerms         = "terms.html"
)

// PublicPages is the static allow-list exempt from the protected-page
// redirect rule. Adding a page here is a configuration decision.
var PublicPages = map[string]bool{
	PageLogin:         true,
	PageResetPassword: true,
	PageTerms:         true,
}

// SessionState is the guard's view of the persisted currentUser record.
type SessionState string

const (
	StateUnauthenticated SessionState = "unauthenticated"
	StateAuthenticated   SessionState = "authenticated"
	StateExpired         SessionState = "expired"
)

// GuardAction tells the presentation layer what to do on page entry.
type GuardAction string

const (
	ActionProceed           GuardAction = "proceed"
	ActionRedirectDashboard GuardAction = "redirect_dashboard"
	ActionRedirectLogin     GuardAction = "redirect_login"
)

// GuardDecision is the result of evaluating a page entry. Redirects are
// replace-navigations: the back button must not return to the page that
// was left.
type GuardDecision struct {
	State          SessionState `json:"state"`
	Action         GuardAction  `json:"action"`
	Target         string       `json:"target,omitempty"`
	SessionCleared bool         `json:"sessionCleared"`
}

type AuthService interface {
	// Login verifies the password against the configured bcrypt hash,
	// persists a fresh session record and returns a signed token for
	// the HTTP layer.
	Login(ctx context.Context, password string) (*model.Session, string, error)
	// Logout clears the session once confirmed. confirmed=false aborts
	// (the interactive confirmation lives in the presentation layer);
	// system-initiated cleanup always passes confirmed=true.
	Logout(ctx context.Context, confirmed bool) (bool, error)
	// SessionState evaluates the persisted record. A structurally
	// invalid record counts as Expired, never as an error.
	SessionState(ctx context.Context) (SessionState, *model.Session, error)
	// EvaluatePage applies the routing rules for entering page.
	EvaluatePage(ctx context.Context, page string) (*GuardDecision, error)
	// ClearExpired removes an expired or malformed session record.
	// Used by the background sweep; reports whether anything was
	// cleared.
	ClearExpired(ctx context.Context) (bool, error)
	ValidateToken(token string) error
}

type authService struct {
	sessionRepo     repository.SessionRepository
	jwtSecret       string
	sessionDuration time.Duration
	passwordHash    string
}

// defaultAdminPassword is the demo credential used when no hash is
// configured. It is hashed at startup; the plaintext is never compared
// directly.
const defaultAdminPassword = "admin123"

func NewAuthService(sessionRepo repository.SessionRepository, jwtSecret string, sessionDuration time.Duration, passwordHash string) AuthService {
	if sessionDuration <= 0 {
		sessionDuration = 24 * time.Hour
	}
	if passwordHash == "" {
		hashed, err := util.HashPassword(defaultAdminPassword)
		if err != nil {
			logger.Fatal("Failed to hash fallback admin password", err)
		}
		passwordHash = hashed
		logger.Warn("ADMIN_PASSWORD_HASH not set, using the demo password", nil)
	}
	return &authService{
		sessionRepo:     sessionRepo,
		jwtSecret:       jwtSecret,
		sessionDuration: sessionDuration,
		passwordHash:    passwordHash,
	}
}

func (s *authService) Login(ctx context.Context, password string) (*model.Session, string, error) {
	if !util.VerifyPassword(s.passwordHash, password) {
		logger.Warn("Admin login failed", nil)
		return nil, "", errors.ErrInvalidCredentials
	}

	now := time.Now()
	session := &model.Session{
		Name:      "Administrator",
		Email:     "admin@kpsunited.com",
		LoginTime: now.UnixMilli(),
	}
	if err := s.sessionRepo.SaveSession(ctx, session); err != nil {
		return nil, "", err
	}

	token, err := util.GenerateSessionToken(s.jwtSecret, now, s.sessionDuration)
	if err != nil {
		return nil, "", err
	}

	logger.Info("Admin logged in", map[string]interface{}{
		"login_time": session.LoginTime,
	})
	return session, token, nil
}

func (s *authService) Logout(ctx context.Context, confirmed bool) (bool, error) {
	if !confirmed {
		logger.Debug("Logout aborted, not confirmed", nil)
		return false, nil
	}
	if err := s.sessionRepo.ClearSession(ctx); err != nil {
		return false, err
	}
	logger.Info("Admin logged out", nil)
	return true, nil
}

func (s *authService) SessionState(ctx context.Context) (SessionState, *model.Session, error) {
	session, err := s.sessionRepo.LoadSession(ctx)
	if err != nil {
		var malformed *errors.MalformedStateError
		if stderrors.As(err, &malformed) {
			logger.Warn("Session record is malformed, treating as expired", map[string]interface{}{
				"error": err.Error(),
			})
			return StateExpired, nil, nil
		}
		return StateUnauthenticated, nil, err
	}
	if session == nil {
		return StateUnauthenticated, nil, nil
	}
	if session.Age(time.Now()) < s.sessionDuration {
		return StateAuthenticated, session, nil
	}
	return StateExpired, session, nil
}

func (s *authService) EvaluatePage(ctx context.Context, page string) (*GuardDecision, error) {
	state, _, err := s.SessionState(ctx)
	if err != nil {
		return nil, err
	}

	decision := &GuardDecision{State: state, Action: ActionProceed}

	switch state {
	case StateAuthenticated:
		// Bounce off the login-only pages; terms stays reachable while
		// logged in.
		if page == PageLogin || page == PageResetPassword {
			decision.Action = ActionRedirectDashboard
			decision.Target = PageDashboard
		}
	case StateUnauthenticated:
		if !PublicPages[page] {
			decision.Action = ActionRedirectLogin
			decision.Target = PageLogin
		}
	case StateExpired:
		if !PublicPages[page] {
			// System-initiated logout: no confirmation.
			if _, err := s.Logout(ctx, true); err != nil {
				return nil, err
			}
			decision.Action = ActionRedirectLogin
			decision.Target = PageLogin
			decision.SessionCleared = true
		}
	}

	logger.Debug("Page evaluated", map[string]interface{}{
		"page":   page,
		"state":  string(state),
		"action": string(decision.Action),
	})
	return decision, nil
}

func (s *authService) ClearExpired(ctx context.Context) (bool, error) {
	state, _, err := s.SessionState(ctx)
	if err != nil {
		return false, err
	}
	if state != StateExpired {
		return false, nil
	}
	cleared, err := s.Logout(ctx, true)
	if err != nil {
		return false, err
	}
	if cleared {
		logger.Info("Expired session cleared", nil)
	}
	return cleared, nil
}

func (s *authService) ValidateToken(token string) error {
	_, err := util.ValidateSessionToken(token, s.jwtSecret)
	return err
}
