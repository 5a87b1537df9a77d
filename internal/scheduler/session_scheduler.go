package scheduler

import (
	"context"

	"github.com/robfig/cron/v3"

	"github.com/kpsunited/kps-admin-backend/internal/app/service"
	"github.com/kpsunited/kps-admin-backend/pkg/logger"
)

// SessionScheduler periodically clears expired session records, so a
// console that was simply closed does not leave a stale session in
// storage until the next page load.
type SessionScheduler struct {
	cron        *cron.Cron
	authService service.AuthService
	schedule    string
}

func NewSessionScheduler(authService service.AuthService, schedule string) *SessionScheduler {
	if schedule == "" {
		schedule = "@every 15m"
	}
	return &SessionScheduler{
		cron:        cron.New(),
		authService: authService,
		schedule:    schedule,
	}
}

// Start registers the sweep job and starts the cron runner.
func (s *SessionScheduler) Start() error {
	_, err := s.cron.AddFunc(s.schedule, func() {
		cleared, err := s.authService.ClearExpired(context.Background())
		if err != nil {
			logger.Error("Session sweep failed", err)
			return
		}
		if cleared {
			logger.Info("Session sweep cleared an expired session", nil)
		}
	})
	if err != nil {
		logger.Error("Failed to register session sweep job", err)
		return err
	}

	s.cron.Start()
	logger.Info("Session scheduler started", map[string]interface{}{
		"schedule": s.schedule,
	})
	return nil
}

// Stop halts the cron runner.
func (s *SessionScheduler) Stop() {
	s.cron.Stop()
	logger.Info("Session scheduler stopped", nil)
}
