package repository

import (
	"context"

	"github.com/kpsunited/kps-admin-backend/internal/app/model"
	"github.com/kpsunited/kps-admin-backend/internal/storage"
	"github.com/kpsunited/kps-admin-backend/pkg/logger"
)

// SessionRepository persists the single currentUser record plus the
// adminLoggedIn flag.
type SessionRepository interface {
	// LoadSession returns nil when no session record exists. A record
	// that fails to parse returns MalformedStateError; the guard treats
	// that as an expired session.
	LoadSession(ctx context.Context) (*model.Session, error)
	SaveSession(ctx context.Context, session *model.Session) error
	ClearSession(ctx context.Context) error
}

type sessionRepository struct {
	backend storage.Backend
}

func NewSessionRepository(backend storage.Backend) SessionRepository {
	return &sessionRepository{backend: backend}
}

func (r *sessionRepository) LoadSession(ctx context.Context) (*model.Session, error) {
	var session *model.Session
	if err := loadCollection(ctx, r.backend, KeySession, &session); err != nil {
		return nil, err
	}
	return session, nil
}

func (r *sessionRepository) SaveSession(ctx context.Context, session *model.Session) error {
	if err := saveCollection(ctx, r.backend, KeySession, session); err != nil {
		logger.Error("Failed to save session", err, map[string]interface{}{
			"key": KeySession,
		})
		return err
	}
	if err := r.backend.Set(ctx, KeyAdminFlag, []byte("true")); err != nil {
		logger.Error("Failed to set admin flag", err, map[string]interface{}{
			"key": KeyAdminFlag,
		})
		return err
	}
	return nil
}

func (r *sessionRepository) ClearSession(ctx context.Context) error {
	if err := r.backend.Delete(ctx, KeySession); err != nil {
		logger.Error("Failed to clear session", err, map[string]interface{}{
			"key": KeySession,
		})
		return err
	}
	return r.backend.Delete(ctx, KeyAdminFlag)
}
