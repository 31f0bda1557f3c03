package recurrence

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/ledgerflow-backend/internal/domain"
)

// MaxOccurrences bounds a single recurrence request (100 years of monthly payments)
const MaxOccurrences = 1200

// Template describes a payment that repeats monthly starting at BaseDate
type Template struct {
	Description string
	Amount      decimal.Decimal
	Category    domain.Category
	Owner       domain.Owner
	BaseDate    domain.Date
}

// Series is the result of expanding a template: n drafts sharing one series id
type Series struct {
	SeriesID uuid.UUID
	Drafts   []domain.PaymentDraft
}

// Expand turns a template into exactly n monthly-spaced payment drafts.
//
// Logic:
//   - Validate the template and n before generating anything (no partial series)
//   - Occurrence i is due AddMonths(BaseDate, i), always computed from the base date
//   - One fresh series id is generated per call, never per occurrence
//
// Returns a *domain.ValidationError if the template or n is invalid.
func Expand(tpl Template, n int) (*Series, error) {
	if n < 1 || n > MaxOccurrences {
		return nil, &domain.ValidationError{
			Field:   "count",
			Message: fmt.Sprintf("must be between 1 and %d", MaxOccurrences),
		}
	}

	base := domain.PaymentDraft{
		Description: tpl.Description,
		Amount:      tpl.Amount,
		DueDate:     tpl.BaseDate,
		Category:    tpl.Category,
		Owner:       tpl.Owner,
	}
	if err := base.Validate(); err != nil {
		return nil, err
	}

	drafts := make([]domain.PaymentDraft, 0, n)
	for i := 0; i < n; i++ {
		draft := base
		draft.DueDate = AddMonths(tpl.BaseDate, i)
		drafts = append(drafts, draft)
	}

	return &Series{
		SeriesID: uuid.New(),
		Drafts:   drafts,
	}, nil
}

// AddMonths adds k calendar months to d, keeping the day of month where valid.
// When the target month is shorter than d's day, the result clamps to the
// target month's last day (Jan 31 + 1 month = Feb 28/29, never Mar 2/3).
func AddMonths(d domain.Date, k int) domain.Date {
	// Zero-based month index so that negative k floors correctly
	idx := d.Year()*12 + int(d.Month()) - 1 + k
	year := floorDiv(idx, 12)
	month := time.Month(idx-year*12) + time.January

	day := d.Day()
	if last := domain.DaysIn(year, month); day > last {
		day = last
	}

	return domain.NewDate(year, month, day)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
