package domain

// TransactionType represents the direction of a ledger transaction
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "INCOME"
	TransactionTypeExpense TransactionType = "EXPENSE"
)

// Valid reports whether t is one of the known transaction types
func (t TransactionType) Valid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// Owner attributes an expense to the user or to a third party the user is paying for.
// The empty Owner means "not set" and is treated as OwnerMine.
type Owner string

const (
	OwnerMine  Owner = "mine"
	OwnerOther Owner = "other"
)

// Valid reports whether o is empty or one of the known owners
func (o Owner) Valid() bool {
	return o == "" || o == OwnerMine || o == OwnerOther
}

// Effective resolves the empty owner to OwnerMine
func (o Owner) Effective() Owner {
	if o == "" {
		return OwnerMine
	}
	return o
}

// Category is an expense category. The empty Category means "not set".
type Category string

const (
	CategoryFood           Category = "Food"
	CategoryGas            Category = "Gas"
	CategoryWater          Category = "Water"
	CategoryHousing        Category = "Housing"
	CategoryTransportation Category = "Transportation"
	CategoryEntertainment  Category = "Entertainment"
	CategoryShopping       Category = "Shopping"
	CategoryHealth         Category = "Health"
	CategoryElectricity    Category = "Electricity"
	CategoryInternet       Category = "Internet"
	CategoryHomeAppliances Category = "Home appliances"
	CategoryMedication     Category = "Medication"
	CategoryCreditCard     Category = "Credit Card"
	CategoryOther          Category = "Other"
)

// Categories lists every expense category in display order
var Categories = []Category{
	CategoryFood,
	CategoryGas,
	CategoryWater,
	CategoryHousing,
	CategoryTransportation,
	CategoryEntertainment,
	CategoryShopping,
	CategoryHealth,
	CategoryElectricity,
	CategoryInternet,
	CategoryHomeAppliances,
	CategoryMedication,
	CategoryCreditCard,
	CategoryOther,
}

// Valid reports whether c is one of the known categories. The empty category is not valid.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}
