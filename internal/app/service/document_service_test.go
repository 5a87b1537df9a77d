package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kpsunited/kps-admin-backend/internal/app/repository"
	"github.com/kpsunited/kps-admin-backend/internal/errors"
	"github.com/kpsunited/kps-admin-backend/internal/storage"
	"github.com/kpsunited/kps-admin-backend/pkg/util"
)

func setupDocumentServiceTest(t *testing.T, quota int64) (DocumentService, storage.Backend) {
	t.Helper()

	backend := storage.NewMemoryBackend(quota)
	docRepo := repository.NewDocumentRepository(backend)
	return NewDocumentService(docRepo, util.NewIDGenerator(), nil), backend
}

func TestDocumentService_UploadAndDownloadRoundtrip(t *testing.T) {
	docService, _ := setupDocumentServiceTest(t, 0)
	ctx := context.Background()

	payload := bytes.Repeat([]byte{0x42, 0x00, 0xFF}, 1024*341) // ~1MiB with binary content

	doc, err := docService.UploadDocument(ctx, "contract.pdf", "application/pdf", payload)
	require.NoError(t, err)
	assert.NotZero(t, doc.ID)

	fetched, decoded, err := docService.GetDocument(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "contract.pdf", fetched.Name)
	assert.Equal(t, "application/pdf", fetched.Type)
	assert.True(t, bytes.Equal(payload, decoded))
}

func TestDocumentService_UploadDocument_TooLarge(t *testing.T) {
	docService, backend := setupDocumentServiceTest(t, 0)
	ctx := context.Background()

	oversized := make([]byte, MaxDocumentBytes+1)
	_, err := docService.UploadDocument(ctx, "huge.bin", "application/octet-stream", oversized)

	var tooLarge *errors.PayloadTooLargeError
	require.ErrorAs(t, err, &tooLarge)
	assert.Equal(t, int64(MaxDocumentBytes), tooLarge.Limit)

	// Pre-flight rejection leaves the backend untouched
	used, err := backend.Used(ctx)
	require.NoError(t, err)
	assert.Zero(t, used)
}

func TestDocumentService_UploadDocument_QuotaExceeded(t *testing.T) {
	// Quota small enough that a valid-sized upload still cannot fit
	docService, _ := setupDocumentServiceTest(t, 2048)
	ctx := context.Background()

	small, err := docService.UploadDocument(ctx, "small.txt", "text/plain", []byte("fits fine"))
	require.NoError(t, err)

	_, err = docService.UploadDocument(ctx, "big.txt", "text/plain", make([]byte, 4096))
	var quota *errors.QuotaExceededError
	require.ErrorAs(t, err, &quota)

	// The earlier document survived the failed write
	_, decoded, err := docService.GetDocument(ctx, small.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("fits fine"), decoded)
}

func TestDocumentService_UploadDocument_Validation(t *testing.T) {
	docService, _ := setupDocumentServiceTest(t, 0)

	_, err := docService.UploadDocument(context.Background(), "  ", "text/plain", []byte("x"))
	var validation *errors.ValidationError
	assert.ErrorAs(t, err, &validation)
}

func TestDocumentService_DeleteDocument(t *testing.T) {
	docService, _ := setupDocumentServiceTest(t, 0)
	ctx := context.Background()

	doc, err := docService.UploadDocument(ctx, "note.txt", "text/plain", []byte("hello"))
	require.NoError(t, err)

	require.NoError(t, docService.DeleteDocument(ctx, doc.ID))

	_, _, err = docService.GetDocument(ctx, doc.ID)
	var notFound *errors.NotFoundError
	assert.ErrorAs(t, err, &notFound)

	assert.ErrorAs(t, docService.DeleteDocument(ctx, doc.ID), &notFound)
}
