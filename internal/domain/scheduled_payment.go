package domain

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ScheduledPayment represents one occurrence of a (possibly recurring) future expense.
// Occurrences created by the same recurrence request share a SeriesID.
type ScheduledPayment struct {
	ID          uuid.UUID       `json:"id"`
	SeriesID    uuid.UUID       `json:"seriesId"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	DueDate     Date            `json:"dueDate"`
	Category    Category        `json:"category"`
	Paid        bool            `json:"paid"` // Flips to true exactly once
	Owner       Owner           `json:"owner,omitempty"`
}

// PaymentDraft is a scheduled payment before the store assigns ID, SeriesID and Paid
type PaymentDraft struct {
	Description string
	Amount      decimal.Decimal
	DueDate     Date
	Category    Category
	Owner       Owner
}

// Validate ensures the draft adheres to domain rules
// Returns a *ValidationError if validation fails
func (d *PaymentDraft) Validate() error {
	if strings.TrimSpace(d.Description) == "" {
		return invalid("description", "cannot be empty")
	}

	if d.Amount.LessThanOrEqual(decimal.Zero) {
		return invalid("amount", "must be positive")
	}

	if d.Category == "" {
		return invalid("category", "is required")
	}
	if !d.Category.Valid() {
		return invalid("category", "unknown category "+string(d.Category))
	}

	if !d.Owner.Valid() {
		return invalid("owner", "must be mine or other")
	}

	if d.DueDate.IsZero() {
		return invalid("due_date", "is required")
	}

	return nil
}
