package investment

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/ledgerflow-backend/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// AccountProjection is the one-period projection of a single account
type AccountProjection struct {
	AccountID      uuid.UUID
	Name           string
	Principal      decimal.Decimal
	Rate           decimal.Decimal
	ProjectedValue decimal.Decimal
}

// Projection holds per-account projections and their totals
type Projection struct {
	Accounts       []AccountProjection
	TotalPrincipal decimal.Decimal
	TotalProjected decimal.Decimal
}

// Project computes a single-period, non-compounding projection
// Logic: ProjectedValue = Principal * (1 + Rate/100)
// Totals are the sums of principal and projected value across all accounts.
// Accounts are validated at creation time; Project never fails.
func Project(accounts []domain.InvestmentAccount) Projection {
	out := Projection{
		Accounts:       make([]AccountProjection, 0, len(accounts)),
		TotalPrincipal: decimal.Zero,
		TotalProjected: decimal.Zero,
	}

	for _, a := range accounts {
		projected := ProjectedValue(a.Principal, a.Rate)
		out.Accounts = append(out.Accounts, AccountProjection{
			AccountID:      a.ID,
			Name:           a.Name,
			Principal:      a.Principal,
			Rate:           a.Rate,
			ProjectedValue: projected,
		})
		out.TotalPrincipal = out.TotalPrincipal.Add(a.Principal)
		out.TotalProjected = out.TotalProjected.Add(projected)
	}

	return out
}

// ProjectedValue returns principal * (1 + rate/100)
func ProjectedValue(principal, rate decimal.Decimal) decimal.Decimal {
	return principal.Add(principal.Mul(rate).Div(hundred))
}
