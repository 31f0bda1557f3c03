package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/ledgerflow-backend/internal/domain"
)

// AddTransactionInput represents the input for recording a transaction
type AddTransactionInput struct {
	Type        domain.TransactionType
	Description string
	Amount      decimal.Decimal
	Category    domain.Category // Required for EXPENSE, dropped for INCOME
	Owner       domain.Owner    // Optional for EXPENSE, dropped for INCOME
}

// Summary holds the aggregate balances derived from the ledger
type Summary struct {
	TotalIncome   decimal.Decimal
	MyExpenses    decimal.Decimal
	OtherExpenses decimal.Decimal
	TotalExpenses decimal.Decimal
	Balance       decimal.Decimal
}

// Ledger owns the transaction history, most recent first.
// It is not safe for concurrent use; the tracker serialises access.
type Ledger struct {
	transactions []domain.Transaction
	now          func() time.Time
}

// NewLedger creates a Ledger from previously persisted transactions.
// now supplies creation timestamps; nil means time.Now.
func NewLedger(initial []domain.Transaction, now func() time.Time) *Ledger {
	if now == nil {
		now = time.Now
	}
	l := &Ledger{
		transactions: make([]domain.Transaction, len(initial)),
		now:          now,
	}
	copy(l.transactions, initial)
	return l
}

// Add records a new transaction
// Logic:
//  1. Drop category/owner for income (they only describe expenses)
//  2. Assign a fresh id and the creation timestamp
//  3. Validate and prepend to the history
func (l *Ledger) Add(input AddTransactionInput) (*domain.Transaction, error) {
	tx := domain.Transaction{
		ID:          uuid.New(),
		Type:        input.Type,
		Description: input.Description,
		Amount:      input.Amount,
		Date:        l.now(),
	}
	if input.Type == domain.TransactionTypeExpense {
		tx.Category = input.Category
		tx.Owner = input.Owner
	}

	if err := l.Record(tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

// Record validates a fully built transaction and prepends it to the history
func (l *Ledger) Record(tx domain.Transaction) error {
	if err := tx.Validate(); err != nil {
		return err
	}
	l.transactions = append([]domain.Transaction{tx}, l.transactions...)
	return nil
}

// Now returns the ledger's notion of the current time
func (l *Ledger) Now() time.Time {
	return l.now()
}

// Delete removes a transaction. Unknown ids are a no-op and return false.
func (l *Ledger) Delete(id uuid.UUID) bool {
	for i := range l.transactions {
		if l.transactions[i].ID == id {
			l.transactions = append(l.transactions[:i], l.transactions[i+1:]...)
			return true
		}
	}
	return false
}

// List returns a copy of the history, most recent first
func (l *Ledger) List() []domain.Transaction {
	return l.Recent(0)
}

// Recent returns up to limit of the most recent transactions. A limit <= 0 means all.
func (l *Ledger) Recent(limit int) []domain.Transaction {
	n := len(l.transactions)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]domain.Transaction, n)
	copy(out, l.transactions[:n])
	return out
}

// Len returns the number of transactions
func (l *Ledger) Len() int {
	return len(l.transactions)
}

// Aggregate derives the balances from the full history
// Logic:
//   - TotalIncome: sum of INCOME amounts
//   - MyExpenses: sum of EXPENSE amounts owned by "mine" or with no owner
//   - OtherExpenses: sum of EXPENSE amounts owned by "other"
//   - TotalExpenses: MyExpenses + OtherExpenses
//   - Balance: TotalIncome - TotalExpenses
func (l *Ledger) Aggregate() Summary {
	income := decimal.Zero
	mine := decimal.Zero
	other := decimal.Zero

	for _, tx := range l.transactions {
		switch tx.Type {
		case domain.TransactionTypeIncome:
			income = income.Add(tx.Amount)
		case domain.TransactionTypeExpense:
			if tx.Owner.Effective() == domain.OwnerOther {
				other = other.Add(tx.Amount)
			} else {
				mine = mine.Add(tx.Amount)
			}
		}
	}

	total := mine.Add(other)
	return Summary{
		TotalIncome:   income,
		MyExpenses:    mine,
		OtherExpenses: other,
		TotalExpenses: total,
		Balance:       income.Sub(total),
	}
}
