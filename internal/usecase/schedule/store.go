package schedule

import (
	"iter"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/simaogato/ledgerflow-backend/internal/domain"
)

// Store owns the collection of scheduled payments. All mutation funnels through it.
// The collection is kept sorted ascending by due date; equal dates keep insertion order.
//
// Store is not safe for concurrent use; the tracker serialises access.
type Store struct {
	payments []domain.ScheduledPayment
}

// NewStore creates a Store from previously persisted payments
func NewStore(initial []domain.ScheduledPayment) *Store {
	s := &Store{payments: make([]domain.ScheduledPayment, len(initial))}
	copy(s.payments, initial)
	s.sort()
	return s
}

// AddSeries persists a batch of drafts as one series.
// Logic:
//  1. Validate every draft (nothing is stored if any draft is invalid)
//  2. Assign a fresh id per draft, paid=false and the given series id
//  3. Append and re-sort the whole collection by due date (stable)
//
// Returns the persisted records in draft order.
func (s *Store) AddSeries(seriesID uuid.UUID, drafts []domain.PaymentDraft) ([]domain.ScheduledPayment, error) {
	if seriesID == uuid.Nil {
		return nil, &domain.ValidationError{Field: "series_id", Message: "is required"}
	}
	if len(drafts) == 0 {
		return nil, &domain.ValidationError{Field: "count", Message: "must be at least 1"}
	}
	for i := range drafts {
		if err := drafts[i].Validate(); err != nil {
			return nil, err
		}
	}

	created := make([]domain.ScheduledPayment, 0, len(drafts))
	for _, d := range drafts {
		created = append(created, domain.ScheduledPayment{
			ID:          uuid.New(),
			SeriesID:    seriesID,
			Description: d.Description,
			Amount:      d.Amount,
			DueDate:     d.DueDate,
			Category:    d.Category,
			Paid:        false,
			Owner:       d.Owner,
		})
	}

	s.payments = append(s.payments, created...)
	s.sort()

	return created, nil
}

// FindByDate returns a lazy view over the payments due on date.
// The view reads the live collection each time it is ranged over.
func (s *Store) FindByDate(date domain.Date) iter.Seq[domain.ScheduledPayment] {
	return func(yield func(domain.ScheduledPayment) bool) {
		for _, p := range s.payments {
			if !p.DueDate.Equal(date) {
				continue
			}
			if !yield(p) {
				return
			}
		}
	}
}

// Get retrieves a payment by id
func (s *Store) Get(id uuid.UUID) (domain.ScheduledPayment, bool) {
	if i := s.indexOf(id); i >= 0 {
		return s.payments[i], true
	}
	return domain.ScheduledPayment{}, false
}

// MarkPaid flips the paid flag of an unpaid payment exactly once.
// onPaid receives the record as it will look once paid; if it returns an error
// the flag is left untouched and the error is returned.
// Unknown or already-paid ids are a silent no-op (applied == false).
func (s *Store) MarkPaid(id uuid.UUID, onPaid func(domain.ScheduledPayment) error) (paid domain.ScheduledPayment, applied bool, err error) {
	i := s.indexOf(id)
	if i < 0 || s.payments[i].Paid {
		return domain.ScheduledPayment{}, false, nil
	}

	next := s.payments[i]
	next.Paid = true

	if onPaid != nil {
		if err := onPaid(next); err != nil {
			return domain.ScheduledPayment{}, false, err
		}
	}

	s.payments[i] = next
	return next, true, nil
}

// DeleteOne removes exactly one payment. Siblings in its series are untouched.
// Returns false if the id is unknown.
func (s *Store) DeleteOne(id uuid.UUID) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.payments = append(s.payments[:i], s.payments[i+1:]...)
	return true
}

// DeleteSeries removes every payment sharing seriesID, paid or not.
// Returns the number of removed payments.
func (s *Store) DeleteSeries(seriesID uuid.UUID) int {
	kept := s.payments[:0]
	for _, p := range s.payments {
		if p.SeriesID != seriesID {
			kept = append(kept, p)
		}
	}
	removed := len(s.payments) - len(kept)
	// Clear the tail so removed records are not retained by the backing array
	clear(s.payments[len(kept):])
	s.payments = kept
	return removed
}

// IsSeries reports whether the payment's series has other surviving members.
// This decides whether "delete entire series" is offered next to "delete this one".
// found is false if the id is unknown.
func (s *Store) IsSeries(id uuid.UUID) (isSeries bool, found bool) {
	target, ok := s.Get(id)
	if !ok {
		return false, false
	}
	for _, p := range s.payments {
		if p.SeriesID == target.SeriesID && p.ID != target.ID {
			return true, true
		}
	}
	return false, true
}

// Upcoming returns up to limit unpaid payments due on or after today, soonest first.
// A limit <= 0 means no limit.
func (s *Store) Upcoming(today domain.Date, limit int) []domain.ScheduledPayment {
	out := make([]domain.ScheduledPayment, 0)
	for _, p := range s.payments {
		if p.Paid || p.DueDate.Before(today) {
			continue
		}
		out = append(out, p)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// DatesWithPayments returns the distinct due dates within a calendar month, ascending
func (s *Store) DatesWithPayments(year int, month time.Month) []domain.Date {
	out := make([]domain.Date, 0)
	for _, p := range s.payments {
		if p.DueDate.Year() != year || p.DueDate.Month() != month {
			continue
		}
		if n := len(out); n > 0 && out[n-1].Equal(p.DueDate) {
			continue
		}
		out = append(out, p.DueDate)
	}
	return out
}

// List returns a copy of every payment in due-date order
func (s *Store) List() []domain.ScheduledPayment {
	out := make([]domain.ScheduledPayment, len(s.payments))
	copy(out, s.payments)
	return out
}

// Len returns the number of stored payments
func (s *Store) Len() int {
	return len(s.payments)
}

func (s *Store) indexOf(id uuid.UUID) int {
	for i := range s.payments {
		if s.payments[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) sort() {
	sort.SliceStable(s.payments, func(i, j int) bool {
		return s.payments[i].DueDate.Before(s.payments[j].DueDate)
	})
}
