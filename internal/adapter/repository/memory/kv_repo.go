package memory

import (
	"context"
	"sync"

	"github.com/simaogato/ledgerflow-backend/internal/domain"
)

// KVRepository is an in-process implementation of domain.KVStore.
// State is lost on restart; it backs tests and the "memory" storage driver.
type KVRepository struct {
	mu    sync.RWMutex
	items map[string][]byte
}

var _ domain.KVStore = (*KVRepository)(nil)

// NewKVRepository creates an empty KVRepository
func NewKVRepository() *KVRepository {
	return &KVRepository{items: make(map[string][]byte)}
}

// Get retrieves a copy of the value stored under key
func (r *KVRepository) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	value, ok := r.items[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), value...), true, nil
}

// Set replaces the value stored under key
func (r *KVRepository) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[key] = append([]byte(nil), value...)
	return nil
}
