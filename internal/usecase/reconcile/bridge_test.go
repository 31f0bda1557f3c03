package reconcile

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/ledgerflow-backend/internal/domain"
	"github.com/simaogato/ledgerflow-backend/internal/usecase/ledger"
	"github.com/simaogato/ledgerflow-backend/internal/usecase/recurrence"
	"github.com/simaogato/ledgerflow-backend/internal/usecase/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var reconciledAt = time.Date(2024, time.February, 3, 18, 0, 0, 0, time.UTC)

func setup(t *testing.T, owner domain.Owner) (*Bridge, []domain.ScheduledPayment) {
	t.Helper()
	store := schedule.NewStore(nil)
	l := ledger.NewLedger(nil, func() time.Time { return reconciledAt })

	series, err := recurrence.Expand(recurrence.Template{
		Description: "Insurance",
		Amount:      decimal.RequireFromString("120.45"),
		Category:    domain.CategoryHealth,
		Owner:       owner,
		BaseDate:    domain.MustParseDate("2024-01-31"),
	}, 3)
	require.NoError(t, err)

	created, err := store.AddSeries(series.SeriesID, series.Drafts)
	require.NoError(t, err)

	return NewBridge(store, l), created
}

func TestMarkPaid_CreatesExpenseTransaction(t *testing.T) {
	bridge, payments := setup(t, domain.OwnerOther)

	outcome, err := bridge.MarkPaid(payments[1].ID)
	require.NoError(t, err)
	require.True(t, outcome.Applied)

	assert.True(t, outcome.Payment.Paid)
	assert.Equal(t, payments[1].ID, outcome.Payment.ID)

	tx := outcome.Transaction
	assert.Equal(t, domain.TransactionTypeExpense, tx.Type)
	assert.Equal(t, "Insurance", tx.Description)
	assert.True(t, decimal.RequireFromString("120.45").Equal(tx.Amount))
	assert.Equal(t, domain.CategoryHealth, tx.Category)
	assert.Equal(t, domain.OwnerOther, tx.Owner)
	assert.Equal(t, reconciledAt, tx.Date, "stamped at reconciliation, not the due date")

	list := bridge.Ledger.List()
	require.Len(t, list, 1)
	assert.Equal(t, tx.ID, list[0].ID)

	stored, ok := bridge.Schedule.Get(payments[1].ID)
	require.True(t, ok)
	assert.True(t, stored.Paid)
}

func TestMarkPaid_IsIdempotent(t *testing.T) {
	bridge, payments := setup(t, domain.OwnerMine)

	first, err := bridge.MarkPaid(payments[0].ID)
	require.NoError(t, err)
	assert.True(t, first.Applied)

	second, err := bridge.MarkPaid(payments[0].ID)
	require.NoError(t, err)
	assert.False(t, second.Applied)

	assert.Equal(t, 1, bridge.Ledger.Len(), "exactly one ledger transaction")
	stored, _ := bridge.Schedule.Get(payments[0].ID)
	assert.True(t, stored.Paid)
}

func TestMarkPaid_UnknownIDIsNoOp(t *testing.T) {
	bridge, _ := setup(t, domain.OwnerMine)

	outcome, err := bridge.MarkPaid(uuid.New())
	require.NoError(t, err)
	assert.False(t, outcome.Applied)
	assert.Equal(t, 0, bridge.Ledger.Len())
}

func TestMarkPaid_AbsentOwnerStaysAbsent(t *testing.T) {
	bridge, payments := setup(t, "")

	outcome, err := bridge.MarkPaid(payments[2].ID)
	require.NoError(t, err)
	assert.Equal(t, domain.Owner(""), outcome.Transaction.Owner)
	assert.True(t, decimal.RequireFromString("120.45").Equal(bridge.Ledger.Aggregate().MyExpenses))
}

func TestMarkPaid_InvalidPaymentLeavesBothSidesUntouched(t *testing.T) {
	store := schedule.NewStore([]domain.ScheduledPayment{{
		ID:          uuid.New(),
		SeriesID:    uuid.New(),
		Description: "Legacy record without category",
		Amount:      decimal.NewFromInt(10),
		DueDate:     domain.MustParseDate("2024-01-01"),
	}})
	l := ledger.NewLedger(nil, nil)
	bridge := NewBridge(store, l)

	id := store.List()[0].ID
	_, err := bridge.MarkPaid(id)
	assert.Error(t, err)

	assert.Equal(t, 0, l.Len())
	stored, _ := store.Get(id)
	assert.False(t, stored.Paid)
}
