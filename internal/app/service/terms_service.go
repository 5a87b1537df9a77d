package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kpsunited/kps-admin-backend/internal/app/model"
	"github.com/kpsunited/kps-admin-backend/internal/app/repository"
	"github.com/kpsunited/kps-admin-backend/internal/errors"
	"github.com/kpsunited/kps-admin-backend/pkg/logger"
)

type TermsService interface {
	// GetTerms returns nil when no terms were ever published.
	GetTerms(ctx context.Context) (*model.Terms, error)
	// PublishTerms replaces the singleton with a new version: "1.0" on
	// the first publish, previous + 0.1 afterwards. Versions only ever
	// increase.
	PublishTerms(ctx context.Context, text string) (*model.Terms, error)
}

type termsService struct {
	termsRepo repository.TermsRepository
	notifier  ChangeNotifier
}

func NewTermsService(termsRepo repository.TermsRepository, notifier ChangeNotifier) TermsService {
	return &termsService{
		termsRepo: termsRepo,
		notifier:  notifier,
	}
}

func (s *termsService) GetTerms(ctx context.Context) (*model.Terms, error) {
	return s.termsRepo.LoadTerms(ctx)
}

func (s *termsService) PublishTerms(ctx context.Context, text string) (*model.Terms, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &errors.ValidationError{Field: "text", Reason: "must not be empty"}
	}

	current, err := s.termsRepo.LoadTerms(ctx)
	if err != nil {
		return nil, err
	}

	version := "1.0"
	if current != nil {
		previous, err := strconv.ParseFloat(current.Version, 64)
		if err != nil {
			return nil, &errors.MalformedStateError{
				Key: repository.KeyTerms,
				Err: fmt.Errorf("version %q: %w", current.Version, err),
			}
		}
		version = fmt.Sprintf("%.1f", previous+0.1)
	}

	terms := &model.Terms{
		Version: version,
		Text:    text,
		Date:    time.Now().UTC(),
	}
	if err := s.termsRepo.SaveTerms(ctx, terms); err != nil {
		return nil, err
	}

	logger.Info("Terms published", map[string]interface{}{
		"version": terms.Version,
	})
	notify(s.notifier, "terms", "published")
	return terms, nil
}
