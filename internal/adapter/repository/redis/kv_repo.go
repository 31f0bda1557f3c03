package redis

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
	"github.com/simaogato/ledgerflow-backend/internal/domain"
)

// KVRepository implements domain.KVStore on Redis strings.
// Keys are namespaced with a prefix so several trackers can share one instance.
type KVRepository struct {
	client goredis.UniversalClient
	prefix string
}

var _ domain.KVStore = (*KVRepository)(nil)

// Connect creates a client and checks the connection
func Connect(ctx context.Context, addr string) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", addr, err)
	}
	return client, nil
}

// NewKVRepository creates a new KVRepository
func NewKVRepository(client goredis.UniversalClient, prefix string) *KVRepository {
	return &KVRepository{client: client, prefix: prefix}
}

// Get retrieves the value stored under key
func (r *KVRepository) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get key %s: %w", key, err)
	}
	return value, true, nil
}

// Set replaces the value stored under key. Values never expire.
func (r *KVRepository) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, r.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set key %s: %w", key, err)
	}
	return nil
}
