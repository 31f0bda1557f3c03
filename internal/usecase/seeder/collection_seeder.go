package seeder

import (
	"context"
	"fmt"

	"github.com/simaogato/ledgerflow-backend/internal/domain"
)

// Collections lists every persisted collection key
var Collections = []string{
	domain.KeyTransactions,
	domain.KeyScheduledPayments,
	domain.KeyInvestmentAccounts,
}

// CollectionSeeder makes sure every collection key exists in the store
type CollectionSeeder struct {
	store domain.KVStore
}

// NewCollectionSeeder creates a new CollectionSeeder instance
func NewCollectionSeeder(store domain.KVStore) *CollectionSeeder {
	return &CollectionSeeder{store: store}
}

// Seed writes an empty JSON array under every key that was never written.
// Existing values are left untouched, even when they are malformed.
// Returns the keys that were created.
func (s *CollectionSeeder) Seed(ctx context.Context) ([]string, error) {
	var created []string
	for _, key := range Collections {
		_, found, err := s.store.Get(ctx, key)
		if err != nil {
			return created, fmt.Errorf("failed to check collection %s: %w", key, err)
		}
		if found {
			continue
		}

		if err := s.store.Set(ctx, key, []byte("[]")); err != nil {
			return created, fmt.Errorf("failed to seed collection %s: %w", key, err)
		}
		created = append(created, key)
	}

	return created, nil
}
