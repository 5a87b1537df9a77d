package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kpsunited/kps-admin-backend/internal/errors"
)

func TestFileBackend_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "store.json")
	ctx := context.Background()

	backend, err := NewFileBackend(path, 0)
	require.NoError(t, err)
	require.NoError(t, backend.Set(ctx, "userStores", []byte(`[{"id":"1-1"}]`)))
	require.NoError(t, backend.Close())

	reopened, err := NewFileBackend(path, 0)
	require.NoError(t, err)

	value, ok, err := reopened.Get(ctx, "userStores")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `[{"id":"1-1"}]`, string(value))
}

func TestFileBackend_Delete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	ctx := context.Background()

	backend, err := NewFileBackend(path, 0)
	require.NoError(t, err)
	require.NoError(t, backend.Set(ctx, "key", []byte(`"value"`)))
	require.NoError(t, backend.Delete(ctx, "key"))

	reopened, err := NewFileBackend(path, 0)
	require.NoError(t, err)
	_, ok, err := reopened.Get(ctx, "key")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileBackend_QuotaEnforced(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	ctx := context.Background()

	backend, err := NewFileBackend(path, 16)
	require.NoError(t, err)
	require.NoError(t, backend.Set(ctx, "a", []byte(`"12345678"`)))

	err = backend.Set(ctx, "b", []byte(`"1234567890"`))
	var quota *errors.QuotaExceededError
	assert.ErrorAs(t, err, &quota)
}

func TestFileBackend_RefusesCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewFileBackend(path, 0)
	var malformed *errors.MalformedStateError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, path, malformed.Key)
}

func TestFileBackend_EmptyFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	backend, err := NewFileBackend(path, 0)
	require.NoError(t, err)

	used, err := backend.Used(context.Background())
	require.NoError(t, err)
	assert.Zero(t, used)
}
