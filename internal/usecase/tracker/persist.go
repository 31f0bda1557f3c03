package tracker

import (
	"context"

	"go.uber.org/zap"
)

// Saves run after the in-memory mutation has committed. A failed write is
// logged and leaves memory authoritative; the next save rewrites the whole collection.

func (t *Tracker) saveTransactions(ctx context.Context) {
	if t.persister == nil {
		return
	}
	if err := t.persister.SaveTransactions(ctx, t.ledger.List()); err != nil {
		t.logger.Error("failed to persist transactions", zap.Error(err))
	}
}

func (t *Tracker) saveScheduledPayments(ctx context.Context) {
	if t.persister == nil {
		return
	}
	if err := t.persister.SaveScheduledPayments(ctx, t.schedule.List()); err != nil {
		t.logger.Error("failed to persist scheduled payments", zap.Error(err))
	}
}

func (t *Tracker) saveInvestmentAccounts(ctx context.Context) {
	if t.persister == nil {
		return
	}
	if err := t.persister.SaveInvestmentAccounts(ctx, t.book.List()); err != nil {
		t.logger.Error("failed to persist investment accounts", zap.Error(err))
	}
}
