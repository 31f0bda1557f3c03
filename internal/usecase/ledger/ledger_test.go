package ledger

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/ledgerflow-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, time.June, 1, 9, 30, 0, 0, time.UTC)

func newTestLedger() *Ledger {
	return NewLedger(nil, func() time.Time { return fixedNow })
}

func mustAdd(t *testing.T, l *Ledger, input AddTransactionInput) *domain.Transaction {
	t.Helper()
	tx, err := l.Add(input)
	require.NoError(t, err)
	return tx
}

func expense(description string, amount int64, category domain.Category, owner domain.Owner) AddTransactionInput {
	return AddTransactionInput{
		Type:        domain.TransactionTypeExpense,
		Description: description,
		Amount:      decimal.NewFromInt(amount),
		Category:    category,
		Owner:       owner,
	}
}

func income(description string, amount int64) AddTransactionInput {
	return AddTransactionInput{
		Type:        domain.TransactionTypeIncome,
		Description: description,
		Amount:      decimal.NewFromInt(amount),
	}
}

func TestAdd_AssignsIdentityAndPrepends(t *testing.T) {
	l := newTestLedger()

	first := mustAdd(t, l, income("Salary", 1000))
	second := mustAdd(t, l, expense("Groceries", 40, domain.CategoryFood, ""))

	assert.NotEqual(t, uuid.Nil, first.ID)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, fixedNow, first.Date)

	list := l.List()
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID, "most recent first")
	assert.Equal(t, first.ID, list[1].ID)
}

func TestAdd_IncomeDropsExpenseFields(t *testing.T) {
	l := newTestLedger()

	in := income("Bonus", 300)
	in.Category = domain.CategoryFood
	in.Owner = domain.OwnerOther

	tx := mustAdd(t, l, in)
	assert.Equal(t, domain.Category(""), tx.Category)
	assert.Equal(t, domain.Owner(""), tx.Owner)
}

func TestAdd_RejectsInvalidInput(t *testing.T) {
	l := newTestLedger()

	_, err := l.Add(expense("", 10, domain.CategoryFood, ""))
	var validationErr *domain.ValidationError
	assert.True(t, errors.As(err, &validationErr))

	_, err = l.Add(expense("Coffee", 0, domain.CategoryFood, ""))
	assert.Error(t, err)

	_, err = l.Add(expense("Coffee", 3, "", ""))
	assert.Error(t, err)

	assert.Equal(t, 0, l.Len(), "rejected input never mutates the ledger")
}

func TestDelete(t *testing.T) {
	l := newTestLedger()
	a := mustAdd(t, l, income("A", 1))
	b := mustAdd(t, l, income("B", 2))

	assert.True(t, l.Delete(a.ID))
	assert.False(t, l.Delete(a.ID), "second delete is a no-op")
	assert.False(t, l.Delete(uuid.New()))

	list := l.List()
	require.Len(t, list, 1)
	assert.Equal(t, b.ID, list[0].ID)
}

func TestAggregate(t *testing.T) {
	l := newTestLedger()
	mustAdd(t, l, income("Salary", 1000))
	mustAdd(t, l, expense("Rent share", 200, domain.CategoryHousing, domain.OwnerMine))
	mustAdd(t, l, expense("Mom's meds", 50, domain.CategoryMedication, domain.OwnerOther))

	s := l.Aggregate()
	assert.True(t, decimal.NewFromInt(1000).Equal(s.TotalIncome))
	assert.True(t, decimal.NewFromInt(200).Equal(s.MyExpenses))
	assert.True(t, decimal.NewFromInt(50).Equal(s.OtherExpenses))
	assert.True(t, decimal.NewFromInt(250).Equal(s.TotalExpenses))
	assert.True(t, decimal.NewFromInt(750).Equal(s.Balance))
}

func TestAggregate_AbsentOwnerCountsAsMine(t *testing.T) {
	l := newTestLedger()
	mustAdd(t, l, expense("Bus", 3, domain.CategoryTransportation, ""))

	s := l.Aggregate()
	assert.True(t, decimal.NewFromInt(3).Equal(s.MyExpenses))
	assert.True(t, s.OtherExpenses.IsZero())
	assert.True(t, decimal.NewFromInt(-3).Equal(s.Balance))
}

func TestAggregate_EmptyAndExactDecimals(t *testing.T) {
	l := newTestLedger()
	s := l.Aggregate()
	assert.True(t, s.TotalIncome.IsZero())
	assert.True(t, s.TotalExpenses.IsZero())
	assert.True(t, s.Balance.IsZero())

	// 0.1 + 0.2 must be exactly 0.3
	for _, amount := range []string{"0.1", "0.2"} {
		_, err := l.Add(AddTransactionInput{
			Type:        domain.TransactionTypeIncome,
			Description: "Interest",
			Amount:      decimal.RequireFromString(amount),
		})
		require.NoError(t, err)
	}
	assert.Equal(t, "0.3", l.Aggregate().TotalIncome.String())
}

func TestRecent(t *testing.T) {
	l := newTestLedger()
	for i := int64(1); i <= 5; i++ {
		mustAdd(t, l, income("Gig", i))
	}

	recent := l.Recent(3)
	require.Len(t, recent, 3)
	assert.True(t, decimal.NewFromInt(5).Equal(recent[0].Amount))
	assert.Len(t, l.Recent(50), 5)
}
