package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/kpsunited/kps-admin-backend/internal/app/model"
	"github.com/kpsunited/kps-admin-backend/internal/app/repository"
	"github.com/kpsunited/kps-admin-backend/internal/errors"
	"github.com/kpsunited/kps-admin-backend/pkg/logger"
	"github.com/kpsunited/kps-admin-backend/pkg/util"
)

// MaxDocumentBytes caps a single upload. The whole key space shares one
// small storage quota, so oversized payloads are rejected before any
// persistence is attempted.
const MaxDocumentBytes = 2 * 1024 * 1024

type DocumentService interface {
	// ListDocuments returns documents newest first.
	ListDocuments(ctx context.Context) ([]model.Document, error)
	UploadDocument(ctx context.Context, name, mimeType string, payload []byte) (*model.Document, error)
	// GetDocument returns the document and its decoded payload,
	// byte-identical to what was uploaded.
	GetDocument(ctx context.Context, id int64) (*model.Document, []byte, error)
	DeleteDocument(ctx context.Context, id int64) error
}

type documentService struct {
	docRepo  repository.DocumentRepository
	ids      util.IDGenerator
	notifier ChangeNotifier
}

func NewDocumentService(docRepo repository.DocumentRepository, ids util.IDGenerator, notifier ChangeNotifier) DocumentService {
	return &documentService{
		docRepo:  docRepo,
		ids:      ids,
		notifier: notifier,
	}
}

func (s *documentService) ListDocuments(ctx context.Context) ([]model.Document, error) {
	docs, err := s.docRepo.LoadDocuments(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].Date.After(docs[j].Date)
	})
	return docs, nil
}

func (s *documentService) UploadDocument(ctx context.Context, name, mimeType string, payload []byte) (*model.Document, error) {
	if strings.TrimSpace(name) == "" {
		return nil, &errors.ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if int64(len(payload)) > MaxDocumentBytes {
		return nil, &errors.PayloadTooLargeError{Size: int64(len(payload)), Limit: MaxDocumentBytes}
	}

	doc := model.Document{
		ID:   s.ids.NextID(),
		Name: name,
		Type: mimeType,
		Data: base64.StdEncoding.EncodeToString(payload),
		Date: time.Now().UTC(),
	}

	docs, err := s.docRepo.LoadDocuments(ctx)
	if err != nil {
		return nil, err
	}
	docs = append(docs, doc)

	// The substrate may still refuse the write on cumulative quota even
	// though the pre-flight passed; that error propagates distinctly and
	// previously persisted documents stay intact.
	if err := s.docRepo.SaveDocuments(ctx, docs); err != nil {
		return nil, err
	}

	logger.Info("Document uploaded", map[string]interface{}{
		"document_id": doc.ID,
		"name":        doc.Name,
		"bytes":       len(payload),
	})
	notify(s.notifier, "document", "created")
	return &doc, nil
}

func (s *documentService) GetDocument(ctx context.Context, id int64) (*model.Document, []byte, error) {
	docs, err := s.docRepo.LoadDocuments(ctx)
	if err != nil {
		return nil, nil, err
	}

	for i := range docs {
		if docs[i].ID == id {
			payload, err := base64.StdEncoding.DecodeString(docs[i].Data)
			if err != nil {
				return nil, nil, &errors.MalformedStateError{
					Key: repository.KeyDocuments,
					Err: fmt.Errorf("document %d payload: %w", id, err),
				}
			}
			return &docs[i], payload, nil
		}
	}
	return nil, nil, &errors.NotFoundError{Resource: "document", ID: formatID(id)}
}

func (s *documentService) DeleteDocument(ctx context.Context, id int64) error {
	docs, err := s.docRepo.LoadDocuments(ctx)
	if err != nil {
		return err
	}

	kept := docs[:0]
	for _, d := range docs {
		if d.ID != id {
			kept = append(kept, d)
		}
	}
	if len(kept) == len(docs) {
		return &errors.NotFoundError{Resource: "document", ID: formatID(id)}
	}

	if err := s.docRepo.SaveDocuments(ctx, kept); err != nil {
		return err
	}
	logger.Info("Document deleted", map[string]interface{}{
		"document_id": id,
	})
	notify(s.notifier, "document", "deleted")
	return nil
}
