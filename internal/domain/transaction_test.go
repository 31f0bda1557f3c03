package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTransaction_Validate(t *testing.T) {
	tests := []struct {
		name    string
		tx      Transaction
		wantErr bool
		errMsg  string
	}{
		{
			name: "Valid expense should pass",
			tx: Transaction{
				ID:          uuid.New(),
				Type:        TransactionTypeExpense,
				Description: "Groceries",
				Amount:      decimal.NewFromInt(45),
				Category:    CategoryFood,
				Date:        time.Now(),
				Owner:       OwnerMine,
			},
			wantErr: false,
		},
		{
			name: "Valid income without category should pass",
			tx: Transaction{
				ID:          uuid.New(),
				Type:        TransactionTypeIncome,
				Description: "Salary",
				Amount:      decimal.NewFromInt(1000),
				Date:        time.Now(),
			},
			wantErr: false,
		},
		{
			name: "Expense without owner should pass",
			tx: Transaction{
				Type:        TransactionTypeExpense,
				Description: "Rent",
				Amount:      decimal.NewFromInt(800),
				Category:    CategoryHousing,
			},
			wantErr: false,
		},
		{
			name: "Unknown type should fail",
			tx: Transaction{
				Type:        "TRANSFER",
				Description: "Move",
				Amount:      decimal.NewFromInt(10),
			},
			wantErr: true,
			errMsg:  "invalid type: must be INCOME or EXPENSE",
		},
		{
			name: "Blank description should fail",
			tx: Transaction{
				Type:        TransactionTypeIncome,
				Description: "   ",
				Amount:      decimal.NewFromInt(10),
			},
			wantErr: true,
			errMsg:  "invalid description: cannot be empty",
		},
		{
			name: "Zero amount should fail",
			tx: Transaction{
				Type:        TransactionTypeIncome,
				Description: "Nothing",
				Amount:      decimal.Zero,
			},
			wantErr: true,
			errMsg:  "invalid amount: must be positive",
		},
		{
			name: "Negative amount should fail",
			tx: Transaction{
				Type:        TransactionTypeExpense,
				Description: "Refund",
				Amount:      decimal.NewFromInt(-5),
				Category:    CategoryOther,
			},
			wantErr: true,
			errMsg:  "invalid amount: must be positive",
		},
		{
			name: "Expense without category should fail",
			tx: Transaction{
				Type:        TransactionTypeExpense,
				Description: "Mystery",
				Amount:      decimal.NewFromInt(5),
			},
			wantErr: true,
			errMsg:  "invalid category: is required for expenses",
		},
		{
			name: "Expense with unknown category should fail",
			tx: Transaction{
				Type:        TransactionTypeExpense,
				Description: "Boat",
				Amount:      decimal.NewFromInt(5),
				Category:    "Yachts",
			},
			wantErr: true,
			errMsg:  "invalid category: unknown category Yachts",
		},
		{
			name: "Unknown owner should fail",
			tx: Transaction{
				Type:        TransactionTypeExpense,
				Description: "Gift",
				Amount:      decimal.NewFromInt(5),
				Category:    CategoryShopping,
				Owner:       "neighbour",
			},
			wantErr: true,
			errMsg:  "invalid owner: must be mine or other",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.tx.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.errMsg, err.Error())
				var validationErr *ValidationError
				assert.True(t, errors.As(err, &validationErr))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestOwner_Effective(t *testing.T) {
	assert.Equal(t, OwnerMine, Owner("").Effective())
	assert.Equal(t, OwnerMine, OwnerMine.Effective())
	assert.Equal(t, OwnerOther, OwnerOther.Effective())
}

func TestCategory_Valid(t *testing.T) {
	for _, c := range Categories {
		assert.True(t, c.Valid(), string(c))
	}
	assert.Len(t, Categories, 14)
	assert.False(t, Category("").Valid())
	assert.False(t, Category("food").Valid())
}
