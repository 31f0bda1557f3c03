package domain

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvestmentAccount represents a simple interest-bearing account.
// It has no relation to transactions or scheduled payments.
type InvestmentAccount struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Principal decimal.Decimal `json:"amount"`
	Rate      decimal.Decimal `json:"rate"` // Annual interest rate in percent
}

// Validate ensures the account adheres to domain rules.
// Runs at account creation, never at projection time.
func (a *InvestmentAccount) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return invalid("name", "cannot be empty")
	}

	if a.Principal.LessThanOrEqual(decimal.Zero) {
		return invalid("principal", "must be positive")
	}

	if a.Rate.LessThan(decimal.Zero) {
		return invalid("rate", "cannot be negative")
	}

	return nil
}
