package reconcile

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/simaogato/ledgerflow-backend/internal/domain"
	"github.com/simaogato/ledgerflow-backend/internal/usecase/ledger"
	"github.com/simaogato/ledgerflow-backend/internal/usecase/schedule"
)

// Outcome is the result of one mark-paid command.
// When Applied is false nothing changed and Payment/Transaction are zero.
type Outcome struct {
	Applied     bool
	Payment     domain.ScheduledPayment
	Transaction domain.Transaction
}

// Bridge turns paid scheduled payments into ledger transactions.
// It is the only path through which the schedule writes into the ledger.
type Bridge struct {
	Schedule *schedule.Store
	Ledger   *ledger.Ledger
}

// NewBridge creates a new Bridge instance
func NewBridge(store *schedule.Store, l *ledger.Ledger) *Bridge {
	return &Bridge{
		Schedule: store,
		Ledger:   l,
	}
}

// MarkPaid reconciles one scheduled payment as a single logical unit
// Logic:
//  1. Unknown or already-paid id -> no-op (Applied=false, nil error)
//  2. Synthesize an EXPENSE transaction from the payment, stamped now
//  3. Record it in the ledger; only if that succeeds is the paid flag flipped
//
// Calling MarkPaid twice for the same id yields exactly one transaction.
func (b *Bridge) MarkPaid(id uuid.UUID) (*Outcome, error) {
	var tx domain.Transaction

	paid, applied, err := b.Schedule.MarkPaid(id, func(p domain.ScheduledPayment) error {
		tx = TransactionFor(p, b.Ledger.Now())
		return b.Ledger.Record(tx)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reconcile payment %s: %w", id, err)
	}
	if !applied {
		return &Outcome{Applied: false}, nil
	}

	return &Outcome{
		Applied:     true,
		Payment:     paid,
		Transaction: tx,
	}, nil
}

// TransactionFor builds the ledger transaction for a paid scheduled payment.
// Description, amount, category and owner are copied verbatim; the date is the
// reconciliation time, not the due date.
func TransactionFor(p domain.ScheduledPayment, at time.Time) domain.Transaction {
	return domain.Transaction{
		ID:          uuid.New(),
		Type:        domain.TransactionTypeExpense,
		Description: p.Description,
		Amount:      p.Amount,
		Category:    p.Category,
		Date:        at,
		Owner:       p.Owner,
	}
}
