package dashboard

import (
	"github.com/shopspring/decimal"
	"github.com/simaogato/ledgerflow-backend/internal/domain"
	"github.com/simaogato/ledgerflow-backend/internal/usecase/investment"
	"github.com/simaogato/ledgerflow-backend/internal/usecase/ledger"
	"github.com/simaogato/ledgerflow-backend/internal/usecase/schedule"
	"github.com/simaogato/ledgerflow-backend/internal/usecase/tracker"
)

// DefaultUpcomingLimit is how many upcoming payments the overview lists
const DefaultUpcomingLimit = 5

// Overview is the read model behind the main screen
type Overview struct {
	Summary          ledger.Summary
	Investments      investment.Projection
	Upcoming         []domain.ScheduledPayment
	UpcomingTotal    decimal.Decimal // Sum of every unpaid payment due today or later
	PendingCount     int
	TransactionCount int
	NetPosition      decimal.Decimal // Balance + projected investments - upcoming total
}

// DashboardService builds overviews from the tracker
type DashboardService struct {
	Tracker *tracker.Tracker
}

// NewDashboardService creates a new DashboardService instance
func NewDashboardService(t *tracker.Tracker) *DashboardService {
	return &DashboardService{Tracker: t}
}

// GetOverview assembles one consistent overview
// Logic:
//   - Summary: ledger aggregate (income, my/other expenses, balance)
//   - Investments: one-period projection of every account
//   - Upcoming: the soonest `limit` unpaid payments due today or later (limit <= 0 uses the default)
//   - NetPosition: Balance + TotalProjected - UpcomingTotal
func (s *DashboardService) GetOverview(limit int) *Overview {
	if limit <= 0 {
		limit = DefaultUpcomingLimit
	}
	today := s.Tracker.Today()

	var out Overview
	s.Tracker.View(func(l *ledger.Ledger, store *schedule.Store, book *investment.Book) {
		out.Summary = l.Aggregate()
		out.TransactionCount = l.Len()
		out.Investments = book.Projection()

		pending := store.Upcoming(today, 0)
		out.PendingCount = len(pending)
		out.UpcomingTotal = decimal.Zero
		for _, p := range pending {
			out.UpcomingTotal = out.UpcomingTotal.Add(p.Amount)
		}
		out.Upcoming = pending[:min(limit, len(pending))]
	})

	out.NetPosition = out.Summary.Balance.Add(out.Investments.TotalProjected).Sub(out.UpcomingTotal)
	return &out
}
