package investment

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/ledgerflow-backend/internal/domain"
)

// AddAccountInput represents the input for opening an investment account
type AddAccountInput struct {
	Name      string
	Principal decimal.Decimal
	Rate      decimal.Decimal
}

// Book owns the investment accounts in insertion order.
// It is not safe for concurrent use.
type Book struct {
	accounts []domain.InvestmentAccount
}

// NewBook creates a Book from previously persisted accounts
func NewBook(initial []domain.InvestmentAccount) *Book {
	b := &Book{accounts: make([]domain.InvestmentAccount, len(initial))}
	copy(b.accounts, initial)
	return b
}

// Add validates and appends a new account
func (b *Book) Add(input AddAccountInput) (*domain.InvestmentAccount, error) {
	account := domain.InvestmentAccount{
		ID:        uuid.New(),
		Name:      input.Name,
		Principal: input.Principal,
		Rate:      input.Rate,
	}

	if err := account.Validate(); err != nil {
		return nil, err
	}

	b.accounts = append(b.accounts, account)
	return &account, nil
}

// Delete removes an account. Unknown ids are a no-op and return false.
func (b *Book) Delete(id uuid.UUID) bool {
	for i := range b.accounts {
		if b.accounts[i].ID == id {
			b.accounts = append(b.accounts[:i], b.accounts[i+1:]...)
			return true
		}
	}
	return false
}

// List returns a copy of the accounts in insertion order
func (b *Book) List() []domain.InvestmentAccount {
	out := make([]domain.InvestmentAccount, len(b.accounts))
	copy(out, b.accounts)
	return out
}

// Projection projects the current accounts
func (b *Book) Projection() Projection {
	return Project(b.accounts)
}
