package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction represents a realized ledger entry.
// It is immutable once created; the only lifecycle event after creation is deletion.
type Transaction struct {
	ID          uuid.UUID       `json:"id"`
	Type        TransactionType `json:"type"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"` // Always positive
	Category    Category        `json:"category,omitempty"`
	Date        time.Time       `json:"date"` // Creation timestamp
	Owner       Owner           `json:"owner,omitempty"`
}

// IsExpense reports whether the transaction is an expense
func (t *Transaction) IsExpense() bool {
	return t.Type == TransactionTypeExpense
}

// Validate ensures the transaction adheres to domain rules
// Returns a *ValidationError if validation fails
func (t *Transaction) Validate() error {
	if !t.Type.Valid() {
		return invalid("type", "must be INCOME or EXPENSE")
	}

	if strings.TrimSpace(t.Description) == "" {
		return invalid("description", "cannot be empty")
	}

	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return invalid("amount", "must be positive")
	}

	// Expenses are categorized; income carries no category
	if t.IsExpense() {
		if t.Category == "" {
			return invalid("category", "is required for expenses")
		}
		if !t.Category.Valid() {
			return invalid("category", "unknown category "+string(t.Category))
		}
	}

	if !t.Owner.Valid() {
		return invalid("owner", "must be mine or other")
	}

	return nil
}
