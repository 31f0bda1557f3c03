package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T, prefix string) (*KVRepository, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewKVRepository(client, prefix), server
}

func TestKVRepository_GetSet(t *testing.T) {
	ctx := context.Background()
	repo, server := newTestRepo(t, "ledgerflow:")

	_, found, err := repo.Get(ctx, "transactions")
	require.NoError(t, err)
	assert.False(t, found, "missing key is not an error")

	require.NoError(t, repo.Set(ctx, "transactions", []byte(`[]`)))
	require.NoError(t, repo.Set(ctx, "transactions", []byte(`[{"id":"1"}]`)))

	got, found, err := repo.Get(ctx, "transactions")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[{"id":"1"}]`, string(got))

	raw, err := server.Get("ledgerflow:transactions")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"1"}]`, raw, "keys are namespaced by prefix")
	assert.Zero(t, server.TTL("ledgerflow:transactions"))
}

func TestKVRepository_ServerDown(t *testing.T) {
	ctx := context.Background()
	repo, server := newTestRepo(t, "")
	server.Close()

	_, _, err := repo.Get(ctx, "transactions")
	assert.Error(t, err)
	assert.Error(t, repo.Set(ctx, "transactions", []byte(`[]`)))
}

func TestConnect(t *testing.T) {
	server := miniredis.RunT(t)

	client, err := Connect(context.Background(), server.Addr())
	require.NoError(t, err)
	assert.NoError(t, client.Close())

	server.Close()
	_, err = Connect(context.Background(), server.Addr())
	assert.Error(t, err)
}
