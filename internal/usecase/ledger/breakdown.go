package ledger

import (
	"github.com/shopspring/decimal"
	"github.com/simaogato/ledgerflow-backend/internal/domain"
)

// OwnerFilter selects which expenses enter a breakdown
type OwnerFilter string

const (
	FilterAll   OwnerFilter = "all"
	FilterMine  OwnerFilter = "mine"
	FilterOther OwnerFilter = "other"
)

// CategoryTotal is the summed expense amount of one category
type CategoryTotal struct {
	Category domain.Category
	Total    decimal.Decimal
}

// Breakdown sums expenses per category for the chart.
// Expenses without a category are skipped. Categories appear in the order they are
// first met walking the history (most recent first). An unknown filter behaves as FilterAll.
func (l *Ledger) Breakdown(filter OwnerFilter) []CategoryTotal {
	totals := make([]CategoryTotal, 0)
	index := make(map[domain.Category]int)

	for _, tx := range l.transactions {
		if !tx.IsExpense() || tx.Category == "" || !filter.matches(tx.Owner) {
			continue
		}
		i, ok := index[tx.Category]
		if !ok {
			i = len(totals)
			index[tx.Category] = i
			totals = append(totals, CategoryTotal{Category: tx.Category, Total: decimal.Zero})
		}
		totals[i].Total = totals[i].Total.Add(tx.Amount)
	}

	return totals
}

// HasExpenses reports whether any expense exists regardless of filter
func (l *Ledger) HasExpenses() bool {
	for _, tx := range l.transactions {
		if tx.IsExpense() {
			return true
		}
	}
	return false
}

func (f OwnerFilter) matches(owner domain.Owner) bool {
	switch f {
	case FilterMine:
		return owner.Effective() == domain.OwnerMine
	case FilterOther:
		return owner.Effective() == domain.OwnerOther
	default:
		return true
	}
}
