package service

import (
	"context"
	"sort"
	"time"

	"github.com/kpsunited/kps-admin-backend/internal/app/model"
	"github.com/kpsunited/kps-admin-backend/internal/app/repository"
	"github.com/kpsunited/kps-admin-backend/internal/errors"
	"github.com/kpsunited/kps-admin-backend/pkg/logger"
)

type QueryService interface {
	// ListQueries returns queries newest first.
	ListQueries(ctx context.Context) ([]model.Query, error)
	// ReplyToQuery stores the reply, marks the query Replied and stamps
	// the reply time. Replying again overwrites the previous reply.
	ReplyToQuery(ctx context.Context, queryID int64, replyText string) (*model.Query, error)
}

type queryService struct {
	queryRepo repository.QueryRepository
	notifier  ChangeNotifier
}

func NewQueryService(queryRepo repository.QueryRepository, notifier ChangeNotifier) QueryService {
	return &queryService{
		queryRepo: queryRepo,
		notifier:  notifier,
	}
}

func (s *queryService) ListQueries(ctx context.Context) ([]model.Query, error) {
	queries, err := s.queryRepo.LoadQueries(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(queries, func(i, j int) bool {
		return queries[i].Date.After(queries[j].Date)
	})
	return queries, nil
}

func (s *queryService) ReplyToQuery(ctx context.Context, queryID int64, replyText string) (*model.Query, error) {
	queries, err := s.queryRepo.LoadQueries(ctx)
	if err != nil {
		return nil, err
	}

	for i := range queries {
		if queries[i].ID == queryID {
			now := time.Now().UTC()
			queries[i].Reply = replyText
			queries[i].Status = model.QueryReplied
			queries[i].ReplyDate = &now

			if err := s.queryRepo.SaveQueries(ctx, queries); err != nil {
				return nil, err
			}
			logger.Info("Query replied", map[string]interface{}{
				"query_id": queryID,
			})
			notify(s.notifier, "query", "replied")
			return &queries[i], nil
		}
	}
	return nil, &errors.NotFoundError{Resource: "query", ID: formatID(queryID)}
}
