package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kpsunited/kps-admin-backend/internal/errors"
)

func TestMemoryBackend_GetSetDelete(t *testing.T) {
	backend := NewMemoryBackend(0)
	ctx := context.Background()

	_, ok, err := backend.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, backend.Set(ctx, "key", []byte(`{"a":1}`)))

	value, ok, err := backend.Get(ctx, "key")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte(`{"a":1}`), value)

	require.NoError(t, backend.Delete(ctx, "key"))
	_, ok, err = backend.Get(ctx, "key")
	require.NoError(t, err)
	assert.False(t, ok)

	// Deleting an absent key is fine
	require.NoError(t, backend.Delete(ctx, "key"))
}

func TestMemoryBackend_QuotaEnforced(t *testing.T) {
	backend := NewMemoryBackend(10)
	ctx := context.Background()

	require.NoError(t, backend.Set(ctx, "a", []byte("12345")))

	err := backend.Set(ctx, "b", []byte("123456789")) // would exceed 10 bytes total
	var quota *errors.QuotaExceededError
	require.ErrorAs(t, err, &quota)
	assert.Equal(t, int64(10), quota.Cap)

	// Overwriting the existing key counts the replaced bytes
	require.NoError(t, backend.Set(ctx, "a", []byte("1234567890")))

	used, err := backend.Used(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(10), used)
}

func TestMemoryBackend_DefensiveCopies(t *testing.T) {
	backend := NewMemoryBackend(0)
	ctx := context.Background()

	original := []byte("immutable")
	require.NoError(t, backend.Set(ctx, "key", original))
	original[0] = 'X'

	value, _, err := backend.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, []byte("immutable"), value)

	// Mutating the returned slice does not leak back either
	value[0] = 'Y'
	again, _, err := backend.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, []byte("immutable"), again)
}
