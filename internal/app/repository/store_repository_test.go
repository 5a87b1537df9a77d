package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kpsunited/kps-admin-backend/internal/app/model"
	"github.com/kpsunited/kps-admin-backend/internal/errors"
	"github.com/kpsunited/kps-admin-backend/internal/storage"
)

func TestStoreRepository_Roundtrip(t *testing.T) {
	backend := storage.NewMemoryBackend(0)
	repo := NewStoreRepository(backend)
	ctx := context.Background()

	// Absent keys read as empty collections
	stores, err := repo.LoadStores(ctx)
	require.NoError(t, err)
	assert.Len(t, stores, 0)

	want := []model.Store{
		{ID: "1-1", MemberID: "1-1", Name: "Green Grocer", Vendors: []string{"Pepsi"}},
	}
	require.NoError(t, repo.SaveStores(ctx, want))

	stores, err = repo.LoadStores(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, stores)

	members := []model.Member{{MemberID: "1-1", Name: "Owner"}}
	require.NoError(t, repo.SaveMembers(ctx, members))

	got, err := repo.LoadMembers(ctx)
	require.NoError(t, err)
	assert.Equal(t, members, got)
}

func TestStoreRepository_MalformedCollection(t *testing.T) {
	backend := storage.NewMemoryBackend(0)
	repo := NewStoreRepository(backend)
	ctx := context.Background()

	require.NoError(t, backend.Set(ctx, KeyStores, []byte(`{"not":"an array"`)))

	_, err := repo.LoadStores(ctx)
	var malformed *errors.MalformedStateError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, KeyStores, malformed.Key)
}

func TestSessionRepository_AdminFlag(t *testing.T) {
	backend := storage.NewMemoryBackend(0)
	repo := NewSessionRepository(backend)
	ctx := context.Background()

	require.NoError(t, repo.SaveSession(ctx, &model.Session{LoginTime: 12345}))

	flag, ok, err := backend.Get(ctx, KeyAdminFlag)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("true"), flag)

	require.NoError(t, repo.ClearSession(ctx))

	_, ok, err = backend.Get(ctx, KeySession)
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = backend.Get(ctx, KeyAdminFlag)
	require.NoError(t, err)
	assert.False(t, ok)
}
