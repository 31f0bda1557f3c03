package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// Keys of the three persisted collections
const (
	KeyTransactions       = "transactions"
	KeyScheduledPayments  = "scheduledPayments"
	KeyInvestmentAccounts = "investmentAccounts"
)

// KVStore defines the interface for the opaque key-value persistence layer
type KVStore interface {
	// Get retrieves the value stored under key
	// found is false (with a nil error) when the key was never written
	Get(ctx context.Context, key string) (value []byte, found bool, err error)

	// Set replaces the value stored under key
	Set(ctx context.Context, key string, value []byte) error
}

// AdviceTransaction is the simplified view of a transaction sent to the advice generator
type AdviceTransaction struct {
	Type        TransactionType `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Owner       Owner           `json:"owner"`
}

// AdvicePayment is the simplified view of an upcoming payment sent to the advice generator
type AdvicePayment struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	DueDate     Date            `json:"dueDate"`
	Category    Category        `json:"category"`
	Owner       Owner           `json:"owner"`
}

// AdviceRequest is the bounded summary handed to the advice generator
type AdviceRequest struct {
	Transactions     []AdviceTransaction `json:"transactions"`
	UpcomingPayments []AdvicePayment     `json:"upcomingPayments"`
}

// AdviceGenerator defines the interface for the external tip generator
type AdviceGenerator interface {
	// GenerateTip returns a short free-text financial tip for the summary
	GenerateTip(ctx context.Context, req AdviceRequest) (string, error)
}
