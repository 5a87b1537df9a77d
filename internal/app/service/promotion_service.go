package service

import (
	"context"
	"encoding/base64"
	"sort"
	"strings"
	"time"

	"github.com/kpsunited/kps-admin-backend/internal/app/model"
	"github.com/kpsunited/kps-admin-backend/internal/app/repository"
	"github.com/kpsunited/kps-admin-backend/internal/errors"
	"github.com/kpsunited/kps-admin-backend/pkg/logger"
	"github.com/kpsunited/kps-admin-backend/pkg/util"
)

// MaxPromotionImageBytes caps the inline promotion image.
const MaxPromotionImageBytes = 500 * 1024

type PromotionService interface {
	ListPromotions(ctx context.Context) ([]model.Promotion, error)
	// CreatePromotion snapshots the vendor name; image is optional.
	CreatePromotion(ctx context.Context, title, description, vendorName string, image []byte) (*model.Promotion, error)
	DeletePromotion(ctx context.Context, id int64) error
}

type promotionService struct {
	promoRepo repository.PromotionRepository
	ids       util.IDGenerator
	notifier  ChangeNotifier
}

func NewPromotionService(promoRepo repository.PromotionRepository, ids util.IDGenerator, notifier ChangeNotifier) PromotionService {
	return &promotionService{
		promoRepo: promoRepo,
		ids:       ids,
		notifier:  notifier,
	}
}

func (s *promotionService) ListPromotions(ctx context.Context) ([]model.Promotion, error) {
	promos, err := s.promoRepo.LoadPromotions(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(promos, func(i, j int) bool {
		return promos[i].Date.After(promos[j].Date)
	})
	return promos, nil
}

func (s *promotionService) CreatePromotion(ctx context.Context, title, description, vendorName string, image []byte) (*model.Promotion, error) {
	if strings.TrimSpace(title) == "" {
		return nil, &errors.ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if int64(len(image)) > MaxPromotionImageBytes {
		return nil, &errors.PayloadTooLargeError{Size: int64(len(image)), Limit: MaxPromotionImageBytes}
	}

	promo := model.Promotion{
		ID:          s.ids.NextID(),
		Title:       title,
		Description: description,
		Vendor:      vendorName,
		Date:        time.Now().UTC(),
	}
	if len(image) > 0 {
		promo.Image = base64.StdEncoding.EncodeToString(image)
	}

	promos, err := s.promoRepo.LoadPromotions(ctx)
	if err != nil {
		return nil, err
	}
	promos = append(promos, promo)
	if err := s.promoRepo.SavePromotions(ctx, promos); err != nil {
		return nil, err
	}

	logger.Info("Promotion created", map[string]interface{}{
		"promotion_id": promo.ID,
		"title":        promo.Title,
		"vendor":       promo.Vendor,
	})
	notify(s.notifier, "promotion", "created")
	return &promo, nil
}

func (s *promotionService) DeletePromotion(ctx context.Context, id int64) error {
	promos, err := s.promoRepo.LoadPromotions(ctx)
	if err != nil {
		return err
	}

	kept := promos[:0]
	for _, p := range promos {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(promos) {
		return &errors.NotFoundError{Resource: "promotion", ID: formatID(id)}
	}

	if err := s.promoRepo.SavePromotions(ctx, kept); err != nil {
		return err
	}
	logger.Info("Promotion deleted", map[string]interface{}{
		"promotion_id": id,
	})
	notify(s.notifier, "promotion", "deleted")
	return nil
}
