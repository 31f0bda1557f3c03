package snapshot

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/simaogato/ledgerflow-backend/internal/adapter/observability"
	"github.com/simaogato/ledgerflow-backend/internal/domain"
	"go.uber.org/zap"
)

// State is the full persisted state: three independent collections
type State struct {
	Transactions       []domain.Transaction
	ScheduledPayments  []domain.ScheduledPayment
	InvestmentAccounts []domain.InvestmentAccount
}

// Codec reads and writes the three collections as JSON arrays under their keys
type Codec struct {
	store   domain.KVStore
	logger  *zap.Logger
	metrics *observability.Metrics
}

// NewCodec creates a new Codec instance
func NewCodec(store domain.KVStore, logger *zap.Logger, metrics *observability.Metrics) *Codec {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Codec{
		store:   store,
		logger:  logger,
		metrics: metrics,
	}
}

// Load reads every collection independently
// Logic:
//  1. Missing key -> empty collection
//  2. Malformed content -> empty collection for that key alone, logged as PersistenceReadError
//  3. Store failure (I/O) -> returned, so startup never overwrites data it could not read
func (c *Codec) Load(ctx context.Context) (*State, error) {
	txs, err := load[domain.Transaction](ctx, c, domain.KeyTransactions)
	if err != nil {
		return nil, err
	}

	payments, err := load[domain.ScheduledPayment](ctx, c, domain.KeyScheduledPayments)
	if err != nil {
		return nil, err
	}

	accounts, err := load[domain.InvestmentAccount](ctx, c, domain.KeyInvestmentAccounts)
	if err != nil {
		return nil, err
	}

	return &State{
		Transactions:       txs,
		ScheduledPayments:  payments,
		InvestmentAccounts: accounts,
	}, nil
}

// SaveTransactions persists the full transaction collection
func (c *Codec) SaveTransactions(ctx context.Context, txs []domain.Transaction) error {
	return save(ctx, c, domain.KeyTransactions, txs)
}

// SaveScheduledPayments persists the full scheduled payment collection
func (c *Codec) SaveScheduledPayments(ctx context.Context, payments []domain.ScheduledPayment) error {
	return save(ctx, c, domain.KeyScheduledPayments, payments)
}

// SaveInvestmentAccounts persists the full investment account collection
func (c *Codec) SaveInvestmentAccounts(ctx context.Context, accounts []domain.InvestmentAccount) error {
	return save(ctx, c, domain.KeyInvestmentAccounts, accounts)
}

func load[T any](ctx context.Context, c *Codec, key string) ([]T, error) {
	raw, found, err := c.store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if !found || len(raw) == 0 {
		return []T{}, nil
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		readErr := &domain.PersistenceReadError{Key: key, Err: err}
		c.logger.Warn("falling back to empty collection",
			zap.String("key", key),
			zap.Error(readErr),
		)
		c.metrics.IncrPersistenceFallback(key)
		return []T{}, nil
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func save[T any](ctx context.Context, c *Codec, key string, items []T) error {
	if items == nil {
		items = []T{}
	}

	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}

	if err := c.store.Set(ctx, key, raw); err != nil {
		c.metrics.IncrPersistenceWrite(key, "error")
		return fmt.Errorf("failed to write %s: %w", key, err)
	}

	c.metrics.IncrPersistenceWrite(key, "ok")
	return nil
}
