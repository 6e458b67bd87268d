package redis

import (
	"context"
	"errors"
	"testing"

	"entity-admin/internal/shared/model"
	"entity-admin/internal/shared/storage"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestStore 使用 miniredis 创建内存 Redis
func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s := NewStoreFromClient(client, "test")
	t.Cleanup(func() { s.Close() })
	return s, mr
}

func TestClientCRUD(t *testing.T) {
	s, mr := newTestStore(t)
	repo := s.Clients()
	ctx := context.Background()

	client := model.Client{ID: 1, ClientID: "client_a", Secret: "pass", RedirectURL: "http://url"}

	// Create
	require.NoError(t, repo.Create(ctx, client))
	assert.True(t, mr.Exists("test/clients/1"))

	// Duplicate
	err := repo.Create(ctx, model.Client{ID: 1, ClientID: "other"})
	assert.True(t, errors.Is(err, storage.ErrDuplicate))

	// Get
	got, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, client, got)

	// Update
	client.Secret = "rotated"
	require.NoError(t, repo.Update(ctx, client))
	got, err = repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "rotated", got.Secret)

	// Delete twice
	require.NoError(t, repo.Delete(ctx, 1))
	require.NoError(t, repo.Delete(ctx, 1))
	assert.False(t, mr.Exists("test/clients/1"))

	// Not found
	_, err = repo.GetByID(ctx, 1)
	assert.True(t, errors.Is(err, storage.ErrNotFound))
}

func TestUpdateMissingDoesNotCreate(t *testing.T) {
	s, mr := newTestStore(t)
	repo := s.Clients()

	err := repo.Update(context.Background(), model.Client{ID: 5})
	assert.True(t, errors.Is(err, storage.ErrNotFound))
	assert.False(t, mr.Exists("test/clients/5"))
}

func TestConnectionErrorIsNotEntityError(t *testing.T) {
	s, mr := newTestStore(t)
	repo := s.Clients()
	mr.Close()

	_, err := repo.GetByID(context.Background(), 1)
	require.Error(t, err)
	_, isEntityErr := storage.AsEntityError(err)
	assert.False(t, isEntityErr)
}
