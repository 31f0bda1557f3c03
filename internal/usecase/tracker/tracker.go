package tracker

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/simaogato/ledgerflow-backend/internal/adapter/observability"
	"github.com/simaogato/ledgerflow-backend/internal/domain"
	"github.com/simaogato/ledgerflow-backend/internal/usecase/advice"
	"github.com/simaogato/ledgerflow-backend/internal/usecase/investment"
	"github.com/simaogato/ledgerflow-backend/internal/usecase/ledger"
	"github.com/simaogato/ledgerflow-backend/internal/usecase/reconcile"
	"github.com/simaogato/ledgerflow-backend/internal/usecase/recurrence"
	"github.com/simaogato/ledgerflow-backend/internal/usecase/schedule"
	"github.com/simaogato/ledgerflow-backend/internal/usecase/snapshot"
	"go.uber.org/zap"
)

// Persister writes whole collections after each committed mutation
type Persister interface {
	SaveTransactions(ctx context.Context, txs []domain.Transaction) error
	SaveScheduledPayments(ctx context.Context, payments []domain.ScheduledPayment) error
	SaveInvestmentAccounts(ctx context.Context, accounts []domain.InvestmentAccount) error
}

// Adviser produces a tip from a state snapshot
type Adviser interface {
	Advise(ctx context.Context, in advice.Input) (string, error)
}

// DeletionOptions tells the caller which deletions make sense for a payment
type DeletionOptions struct {
	PaymentID uuid.UUID
	SeriesID  uuid.UUID
	IsSeries  bool // Offer "delete all in series" only when true
}

// Tracker is the application state: the ledger, the schedule and the investment book.
// Every operation runs under one mutex so callers observe a single sequential history.
type Tracker struct {
	mu sync.Mutex

	ledger   *ledger.Ledger
	schedule *schedule.Store
	book     *investment.Book
	bridge   *reconcile.Bridge

	persister Persister
	adviser   Adviser
	now       func() time.Time
	metrics   *observability.Metrics
	logger    *zap.Logger
}

// Option configures a Tracker
type Option func(*Tracker)

// WithClock overrides time.Now
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// WithAdviser sets the advice service
func WithAdviser(a Adviser) Option {
	return func(t *Tracker) { t.adviser = a }
}

// WithMetrics sets the metrics sink
func WithMetrics(m *observability.Metrics) Option {
	return func(t *Tracker) { t.metrics = m }
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(t *Tracker) { t.logger = l }
}

// New creates a Tracker from loaded state. A nil state starts empty; a nil persister disables saving.
func New(state *snapshot.State, persister Persister, opts ...Option) *Tracker {
	t := &Tracker{
		persister: persister,
		now:       time.Now,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}

	if state == nil {
		state = &snapshot.State{}
	}
	t.ledger = ledger.NewLedger(state.Transactions, t.now)
	t.schedule = schedule.NewStore(state.ScheduledPayments)
	t.book = investment.NewBook(state.InvestmentAccounts)
	t.bridge = reconcile.NewBridge(t.schedule, t.ledger)

	return t
}

// Today returns the current calendar date
func (t *Tracker) Today() domain.Date {
	return domain.DateOf(t.now())
}

// AddTransaction records a user-entered transaction
func (t *Tracker) AddTransaction(ctx context.Context, input ledger.AddTransactionInput) (*domain.Transaction, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	tx, err := t.ledger.Add(input)
	if err != nil {
		return nil, err
	}

	t.metrics.IncrTransactionAdded()
	t.saveTransactions(ctx)
	return tx, nil
}

// DeleteTransaction removes a transaction. Unknown ids are a silent no-op.
func (t *Tracker) DeleteTransaction(ctx context.Context, id uuid.UUID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.ledger.Delete(id) {
		return false
	}
	t.saveTransactions(ctx)
	return true
}

// Transactions returns the history, most recent first
func (t *Tracker) Transactions() []domain.Transaction {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.ledger.List()
}

// Summary returns income, expense and balance aggregates
func (t *Tracker) Summary() ledger.Summary {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.ledger.Aggregate()
}

// Breakdown returns expense totals per category for an owner filter.
// hasExpenses is false when there are no expenses at all, regardless of the filter.
func (t *Tracker) Breakdown(filter ledger.OwnerFilter) (totals []ledger.CategoryTotal, hasExpenses bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.ledger.Breakdown(filter), t.ledger.HasExpenses()
}

// SchedulePayments expands a template into count monthly occurrences and stores them as one series
func (t *Tracker) SchedulePayments(ctx context.Context, tpl recurrence.Template, count int) ([]domain.ScheduledPayment, error) {
	series, err := recurrence.Expand(tpl, count)
	if err != nil {
		return nil, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	created, err := t.schedule.AddSeries(series.SeriesID, series.Drafts)
	if err != nil {
		return nil, err
	}

	t.metrics.RecordSeriesScheduled(len(created))
	t.logger.Info("scheduled payment series",
		zap.String("series_id", series.SeriesID.String()),
		zap.Int("occurrences", len(created)),
	)
	t.saveScheduledPayments(ctx)
	return created, nil
}

// PaymentsOn returns the payments due on date, in store order
func (t *Tracker) PaymentsOn(date domain.Date) []domain.ScheduledPayment {
	t.mu.Lock()
	defer t.mu.Unlock()

	return slices.Collect(t.schedule.FindByDate(date))
}

// Payments returns every scheduled payment sorted by due date
func (t *Tracker) Payments() []domain.ScheduledPayment {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.schedule.List()
}

// DatesWithPayments returns the distinct due dates in a month
func (t *Tracker) DatesWithPayments(year int, month time.Month) []domain.Date {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.schedule.DatesWithPayments(year, month)
}

// UpcomingPayments returns up to limit unpaid payments due today or later
func (t *Tracker) UpcomingPayments(limit int) []domain.ScheduledPayment {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.schedule.Upcoming(t.Today(), limit)
}

// MarkPaid reconciles a scheduled payment into the ledger.
// Unknown or already-paid ids return Applied=false and persist nothing.
func (t *Tracker) MarkPaid(ctx context.Context, id uuid.UUID) (*reconcile.Outcome, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	outcome, err := t.bridge.MarkPaid(id)
	if err != nil {
		return nil, err
	}
	if !outcome.Applied {
		return outcome, nil
	}

	t.metrics.IncrPaymentReconciled()
	t.logger.Info("payment reconciled",
		zap.String("payment_id", outcome.Payment.ID.String()),
		zap.String("series_id", outcome.Payment.SeriesID.String()),
		zap.String("transaction_id", outcome.Transaction.ID.String()),
	)
	t.saveTransactions(ctx)
	t.saveScheduledPayments(ctx)
	return outcome, nil
}

// DeletionOptions reports whether a payment still has siblings in its series
func (t *Tracker) DeletionOptions(id uuid.UUID) (*DeletionOptions, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	p, ok := t.schedule.Get(id)
	if !ok {
		return nil, &domain.NotFoundError{Resource: "scheduled payment", ID: id.String()}
	}
	isSeries, _ := t.schedule.IsSeries(id)

	return &DeletionOptions{
		PaymentID: p.ID,
		SeriesID:  p.SeriesID,
		IsSeries:  isSeries,
	}, nil
}

// DeletePayment removes one occurrence. Unknown ids are a silent no-op.
func (t *Tracker) DeletePayment(ctx context.Context, id uuid.UUID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.schedule.DeleteOne(id) {
		return false
	}
	t.saveScheduledPayments(ctx)
	return true
}

// DeleteSeries removes every occurrence of a series, paid or not, and returns how many were removed
func (t *Tracker) DeleteSeries(ctx context.Context, seriesID uuid.UUID) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	removed := t.schedule.DeleteSeries(seriesID)
	if removed > 0 {
		t.saveScheduledPayments(ctx)
	}
	return removed
}

// AddInvestmentAccount opens a validated investment account
func (t *Tracker) AddInvestmentAccount(ctx context.Context, input investment.AddAccountInput) (*domain.InvestmentAccount, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	account, err := t.book.Add(input)
	if err != nil {
		return nil, err
	}
	t.saveInvestmentAccounts(ctx)
	return account, nil
}

// DeleteInvestmentAccount removes an account. Unknown ids are a silent no-op.
func (t *Tracker) DeleteInvestmentAccount(ctx context.Context, id uuid.UUID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.book.Delete(id) {
		return false
	}
	t.saveInvestmentAccounts(ctx)
	return true
}

// InvestmentAccounts returns the accounts in insertion order
func (t *Tracker) InvestmentAccounts() []domain.InvestmentAccount {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.book.List()
}

// Projection returns the one-period projection of all accounts
func (t *Tracker) Projection() investment.Projection {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.book.Projection()
}

// Advice asks the adviser for a tip.
// The state snapshot is taken under the lock; the call itself runs outside it.
func (t *Tracker) Advice(ctx context.Context) (string, error) {
	t.mu.Lock()
	txCount := t.ledger.Len()
	in := advice.Input{
		Transactions: t.ledger.Recent(advice.MaxTransactions),
		Payments:     t.schedule.List(),
		Today:        t.Today(),
	}
	t.mu.Unlock()

	if !advice.Eligible(txCount, len(in.Payments)) {
		return "", domain.ErrNotEnoughData
	}
	if t.adviser == nil {
		return "", &domain.CollaboratorError{Service: "advice", Message: domain.MissingCredentialMessage}
	}

	return t.adviser.Advise(ctx, in)
}

// View runs fn with read access to the collections under the lock
func (t *Tracker) View(fn func(l *ledger.Ledger, s *schedule.Store, b *investment.Book)) {
	t.mu.Lock()
	defer t.mu.Unlock()

	fn(t.ledger, t.schedule, t.book)
}
