package snapshot

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/ledgerflow-backend/internal/adapter/observability"
	"github.com/simaogato/ledgerflow-backend/internal/adapter/repository/memory"
	"github.com/simaogato/ledgerflow-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// MockKVStore is a mock implementation of KVStore for testing
type MockKVStore struct {
	mock.Mock
}

func (m *MockKVStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]byte), args.Bool(1), args.Error(2)
}

func (m *MockKVStore) Set(ctx context.Context, key string, value []byte) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func TestLoad_EmptyStore(t *testing.T) {
	codec := NewCodec(memory.NewKVRepository(), nil, nil)

	state, err := codec.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, state.Transactions)
	assert.Empty(t, state.ScheduledPayments)
	assert.Empty(t, state.InvestmentAccounts)
	assert.NotNil(t, state.Transactions)
}

func TestLoad_CorruptKeyFallsBackAlone(t *testing.T) {
	ctx := context.Background()
	store := memory.NewKVRepository()

	require.NoError(t, store.Set(ctx, domain.KeyTransactions,
		[]byte(`[{"id":"6f1c3c1e-4a0b-4a55-9a0e-1d2b3c4d5e6f","type":"INCOME","description":"Salary","amount":1500,"date":"2024-02-01T10:00:00.000Z"}]`)))
	require.NoError(t, store.Set(ctx, domain.KeyScheduledPayments, []byte(`{not json`)))
	require.NoError(t, store.Set(ctx, domain.KeyInvestmentAccounts,
		[]byte(`[{"id":"0b7e2a55-2f4b-4c1e-8d7a-9c0f1e2d3b4a","name":"Cetes","amount":1000,"rate":7.5}]`)))

	core, logs := observer.New(zapcore.WarnLevel)
	metrics := observability.NewMetrics()
	codec := NewCodec(store, zap.New(core), metrics)

	state, err := codec.Load(ctx)
	require.NoError(t, err)

	require.Len(t, state.Transactions, 1)
	assert.Equal(t, "Salary", state.Transactions[0].Description)
	assert.True(t, decimal.NewFromInt(1500).Equal(state.Transactions[0].Amount))

	assert.Empty(t, state.ScheduledPayments)

	require.Len(t, state.InvestmentAccounts, 1)
	assert.True(t, decimal.RequireFromString("7.5").Equal(state.InvestmentAccounts[0].Rate))

	entries := logs.FilterMessage("falling back to empty collection").All()
	require.Len(t, entries, 1)
	assert.Equal(t, domain.KeyScheduledPayments, entries[0].ContextMap()["key"])
	assert.Equal(t, float64(1), metrics.PersistenceFallbacks(domain.KeyScheduledPayments))
}

func TestLoad_NullArrayIsEmpty(t *testing.T) {
	ctx := context.Background()
	store := memory.NewKVRepository()
	require.NoError(t, store.Set(ctx, domain.KeyTransactions, []byte(`null`)))

	state, err := NewCodec(store, nil, nil).Load(ctx)
	require.NoError(t, err)
	assert.NotNil(t, state.Transactions)
	assert.Empty(t, state.Transactions)
}

func TestLoad_StoreFailureIsReturned(t *testing.T) {
	ctx := context.Background()
	store := new(MockKVStore)
	store.On("Get", ctx, domain.KeyTransactions).Return(nil, false, errors.New("connection refused"))

	state, err := NewCodec(store, nil, nil).Load(ctx)
	assert.Nil(t, state)
	assert.ErrorContains(t, err, "connection refused")
	store.AssertExpectations(t)
}

func TestSave_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := memory.NewKVRepository()
	codec := NewCodec(store, nil, observability.NewMetrics())

	payment := domain.ScheduledPayment{
		ID:          uuid.New(),
		SeriesID:    uuid.New(),
		Description: "Rent",
		Amount:      decimal.RequireFromString("800.50"),
		DueDate:     domain.MustParseDate("2024-02-29"),
		Category:    domain.CategoryHousing,
		Owner:       domain.OwnerOther,
	}
	tx := domain.Transaction{
		ID:          uuid.New(),
		Type:        domain.TransactionTypeExpense,
		Description: "Lunch",
		Amount:      decimal.NewFromInt(12),
		Category:    domain.CategoryFood,
		Date:        time.Date(2024, 2, 3, 12, 0, 0, 0, time.UTC),
	}

	require.NoError(t, codec.SaveScheduledPayments(ctx, []domain.ScheduledPayment{payment}))
	require.NoError(t, codec.SaveTransactions(ctx, []domain.Transaction{tx}))
	require.NoError(t, codec.SaveInvestmentAccounts(ctx, nil))

	raw, _, _ := store.Get(ctx, domain.KeyInvestmentAccounts)
	assert.Equal(t, `[]`, string(raw))

	state, err := codec.Load(ctx)
	require.NoError(t, err)
	require.Len(t, state.ScheduledPayments, 1)
	assert.Equal(t, payment.ID, state.ScheduledPayments[0].ID)
	assert.Equal(t, "2024-02-29", state.ScheduledPayments[0].DueDate.String())
	assert.True(t, payment.Amount.Equal(state.ScheduledPayments[0].Amount))
	require.Len(t, state.Transactions, 1)
	assert.True(t, tx.Date.Equal(state.Transactions[0].Date))
}

func TestSave_StoreFailure(t *testing.T) {
	ctx := context.Background()
	store := new(MockKVStore)
	store.On("Set", ctx, domain.KeyTransactions, mock.Anything).Return(errors.New("disk full"))

	err := NewCodec(store, nil, nil).SaveTransactions(ctx, nil)
	assert.ErrorContains(t, err, "failed to write transactions")
	store.AssertExpectations(t)
}
