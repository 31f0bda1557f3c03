package grpc

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/ledgerflow-backend/internal/domain"
)

// Request and response shapes carried inside google.protobuf.Struct.
// Money travels as decimal strings; numbers are also accepted on input.

type idRequest struct {
	ID uuid.UUID `json:"id"`
}

type deletedResponse struct {
	Deleted bool `json:"deleted"`
}

type addTransactionRequest struct {
	Type        domain.TransactionType `json:"type"`
	Description string                 `json:"description"`
	Amount      decimal.Decimal        `json:"amount"`
	Category    domain.Category        `json:"category"`
	Owner       domain.Owner           `json:"owner"`
}

type transactionResponse struct {
	Transaction *domain.Transaction `json:"transaction"`
}

type listTransactionsRequest struct {
	Limit int `json:"limit"`
}

type listTransactionsResponse struct {
	Transactions []domain.Transaction `json:"transactions"`
	TotalCount   int                  `json:"totalCount"`
}

type summaryResponse struct {
	TotalIncome   decimal.Decimal `json:"totalIncome"`
	MyExpenses    decimal.Decimal `json:"myExpenses"`
	OtherExpenses decimal.Decimal `json:"otherExpenses"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	Balance       decimal.Decimal `json:"balance"`
}

type breakdownRequest struct {
	Owner string `json:"owner"`
}

type categoryTotal struct {
	Category domain.Category `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

type breakdownResponse struct {
	Categories  []categoryTotal `json:"categories"`
	HasExpenses bool            `json:"hasExpenses"`
}

type schedulePaymentsRequest struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    domain.Category `json:"category"`
	Owner       domain.Owner    `json:"owner"`
	DueDate     domain.Date     `json:"dueDate"`
	Count       *int            `json:"count,omitempty"` // Defaults to 1 when omitted
}

type paymentsResponse struct {
	SeriesID *uuid.UUID                `json:"seriesId,omitempty"`
	Payments []domain.ScheduledPayment `json:"payments"`
}

type listPaymentsRequest struct {
	Date domain.Date `json:"date"` // Optional; zero lists every payment
}

type upcomingRequest struct {
	Limit int `json:"limit"`
}

type paymentDatesRequest struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

type paymentDatesResponse struct {
	Dates []domain.Date `json:"dates"`
}

type markPaidResponse struct {
	Applied     bool                     `json:"applied"`
	Payment     *domain.ScheduledPayment `json:"payment,omitempty"`
	Transaction *domain.Transaction      `json:"transaction,omitempty"`
}

type deletionOptionsResponse struct {
	PaymentID uuid.UUID `json:"paymentId"`
	SeriesID  uuid.UUID `json:"seriesId"`
	IsSeries  bool      `json:"isSeries"`
}

type deleteSeriesRequest struct {
	SeriesID uuid.UUID `json:"seriesId"`
}

type deleteSeriesResponse struct {
	Removed int `json:"removed"`
}

type addInvestmentAccountRequest struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
	Rate   decimal.Decimal `json:"rate"`
}

type investmentAccountResponse struct {
	Account *domain.InvestmentAccount `json:"account"`
}

type accountProjection struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	Amount         decimal.Decimal `json:"amount"`
	Rate           decimal.Decimal `json:"rate"`
	ProjectedValue decimal.Decimal `json:"projectedValue"`
}

type investmentAccountsResponse struct {
	Accounts       []accountProjection `json:"accounts"`
	TotalPrincipal decimal.Decimal     `json:"totalPrincipal"`
	TotalProjected decimal.Decimal     `json:"totalProjected"`
}

type adviceResponse struct {
	Tip string `json:"tip"`
}

type overviewRequest struct {
	UpcomingLimit int `json:"upcomingLimit"`
}

type overviewResponse struct {
	Summary          summaryResponse            `json:"summary"`
	Investments      investmentAccountsResponse `json:"investments"`
	Upcoming         []domain.ScheduledPayment  `json:"upcoming"`
	UpcomingTotal    decimal.Decimal            `json:"upcomingTotal"`
	PendingCount     int                        `json:"pendingCount"`
	TransactionCount int                        `json:"transactionCount"`
	NetPosition      decimal.Decimal            `json:"netPosition"`
	GeneratedAt      time.Time                  `json:"generatedAt"`
}
