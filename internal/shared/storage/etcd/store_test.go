package etcd

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"entity-admin/internal/shared/model"
	"entity-admin/internal/shared/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testStore 需要 ETCD_TEST_ENDPOINTS（逗号分隔），否则跳过
func testStore(t *testing.T) *Store {
	t.Helper()
	endpoints := os.Getenv("ETCD_TEST_ENDPOINTS")
	if endpoints == "" {
		t.Skip("ETCD_TEST_ENDPOINTS not set")
	}

	prefix := "/entity-admin-test-" + time.Now().Format("150405.000000")
	s, err := NewStore(Config{Endpoints: strings.Split(endpoints, ","), Prefix: prefix})
	if err != nil {
		t.Skipf("etcd not available: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestNewStoreRequiresEndpoints(t *testing.T) {
	_, err := NewStore(Config{})
	assert.Error(t, err)
}

func TestClientCRUD(t *testing.T) {
	repo := testStore(t).Clients()
	ctx := context.Background()

	client := model.Client{ID: 1, ClientID: "client_a"}
	require.NoError(t, repo.Create(ctx, client))
	assert.True(t, errors.Is(repo.Create(ctx, client), storage.ErrDuplicate))

	client.ClientID = "client_b"
	require.NoError(t, repo.Update(ctx, client))
	got, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "client_b", got.ClientID)

	require.NoError(t, repo.Delete(ctx, 1))
	require.NoError(t, repo.Delete(ctx, 1))

	_, err = repo.GetByID(ctx, 1)
	assert.True(t, errors.Is(err, storage.ErrNotFound))
	assert.True(t, errors.Is(repo.Update(ctx, client), storage.ErrNotFound))
}
