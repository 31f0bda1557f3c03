package grpc

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/simaogato/ledgerflow-backend/internal/domain"
	"github.com/simaogato/ledgerflow-backend/internal/usecase/dashboard"
	"github.com/simaogato/ledgerflow-backend/internal/usecase/investment"
	"github.com/simaogato/ledgerflow-backend/internal/usecase/ledger"
	"github.com/simaogato/ledgerflow-backend/internal/usecase/recurrence"
	"github.com/simaogato/ledgerflow-backend/internal/usecase/tracker"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// Server implements the TrackerService gRPC server
type Server struct {
	Tracker          *tracker.Tracker
	DashboardService *dashboard.DashboardService
}

var _ TrackerServiceServer = (*Server)(nil)

// NewServer creates a new gRPC server instance
func NewServer(t *tracker.Tracker, dashboardService *dashboard.DashboardService) *Server {
	return &Server{
		Tracker:          t,
		DashboardService: dashboardService,
	}
}

// AddTransaction handles the AddTransaction RPC
func (s *Server) AddTransaction(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in addTransactionRequest
	if err := decodeRequest(req, &in); err != nil {
		return nil, err
	}

	tx, err := s.Tracker.AddTransaction(ctx, ledger.AddTransactionInput{
		Type:        in.Type,
		Description: in.Description,
		Amount:      in.Amount,
		Category:    in.Category,
		Owner:       in.Owner,
	})
	if err != nil {
		return nil, mapError(err)
	}

	return encodeResponse(transactionResponse{Transaction: tx})
}

// DeleteTransaction handles the DeleteTransaction RPC. Unknown ids report deleted=false.
func (s *Server) DeleteTransaction(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := requireID(req)
	if err != nil {
		return nil, err
	}

	return encodeResponse(deletedResponse{Deleted: s.Tracker.DeleteTransaction(ctx, id)})
}

// ListTransactions handles the ListTransactions RPC
func (s *Server) ListTransactions(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in listTransactionsRequest
	if err := decodeRequest(req, &in); err != nil {
		return nil, err
	}
	if in.Limit < 0 {
		return nil, status.Errorf(codes.InvalidArgument, "limit must be non-negative")
	}

	all := s.Tracker.Transactions()
	page := all
	if in.Limit > 0 && in.Limit < len(all) {
		page = all[:in.Limit]
	}

	return encodeResponse(listTransactionsResponse{
		Transactions: page,
		TotalCount:   len(all),
	})
}

// GetSummary handles the GetSummary RPC
func (s *Server) GetSummary(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return encodeResponse(toSummaryResponse(s.Tracker.Summary()))
}

// GetBreakdown handles the GetBreakdown RPC
func (s *Server) GetBreakdown(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in breakdownRequest
	if err := decodeRequest(req, &in); err != nil {
		return nil, err
	}

	filter := ledger.FilterAll
	switch in.Owner {
	case "", string(ledger.FilterAll):
	case string(ledger.FilterMine):
		filter = ledger.FilterMine
	case string(ledger.FilterOther):
		filter = ledger.FilterOther
	default:
		return nil, status.Errorf(codes.InvalidArgument, "owner must be all, mine or other")
	}

	totals, hasExpenses := s.Tracker.Breakdown(filter)
	categories := make([]categoryTotal, 0, len(totals))
	for _, t := range totals {
		categories = append(categories, categoryTotal{Category: t.Category, Total: t.Total})
	}

	return encodeResponse(breakdownResponse{
		Categories:  categories,
		HasExpenses: hasExpenses,
	})
}

// SchedulePayments handles the SchedulePayments RPC
func (s *Server) SchedulePayments(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in schedulePaymentsRequest
	if err := decodeRequest(req, &in); err != nil {
		return nil, err
	}
	count := 1
	if in.Count != nil {
		count = *in.Count
	}

	created, err := s.Tracker.SchedulePayments(ctx, recurrence.Template{
		Description: in.Description,
		Amount:      in.Amount,
		Category:    in.Category,
		Owner:       in.Owner,
		BaseDate:    in.DueDate,
	}, count)
	if err != nil {
		return nil, mapError(err)
	}

	seriesID := created[0].SeriesID
	return encodeResponse(paymentsResponse{
		SeriesID: &seriesID,
		Payments: created,
	})
}

// ListPayments handles the ListPayments RPC.
// With a date it returns that day's payments; without one, every payment.
func (s *Server) ListPayments(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in listPaymentsRequest
	if err := decodeRequest(req, &in); err != nil {
		return nil, err
	}

	var payments []domain.ScheduledPayment
	if in.Date.IsZero() {
		payments = s.Tracker.Payments()
	} else {
		payments = s.Tracker.PaymentsOn(in.Date)
	}

	return encodeResponse(paymentsResponse{Payments: nonNil(payments)})
}

// ListUpcomingPayments handles the ListUpcomingPayments RPC
func (s *Server) ListUpcomingPayments(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in upcomingRequest
	if err := decodeRequest(req, &in); err != nil {
		return nil, err
	}

	return encodeResponse(paymentsResponse{Payments: nonNil(s.Tracker.UpcomingPayments(in.Limit))})
}

// GetPaymentDates handles the GetPaymentDates RPC
func (s *Server) GetPaymentDates(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in paymentDatesRequest
	if err := decodeRequest(req, &in); err != nil {
		return nil, err
	}
	if in.Month < 1 || in.Month > 12 {
		return nil, status.Errorf(codes.InvalidArgument, "month must be between 1 and 12")
	}

	dates := s.Tracker.DatesWithPayments(in.Year, time.Month(in.Month))
	return encodeResponse(paymentDatesResponse{Dates: nonNil(dates)})
}

// MarkPaid handles the MarkPaid RPC
func (s *Server) MarkPaid(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := requireID(req)
	if err != nil {
		return nil, err
	}

	outcome, err := s.Tracker.MarkPaid(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}

	resp := markPaidResponse{Applied: outcome.Applied}
	if outcome.Applied {
		resp.Payment = &outcome.Payment
		resp.Transaction = &outcome.Transaction
	}
	return encodeResponse(resp)
}

// GetDeletionOptions handles the GetDeletionOptions RPC
func (s *Server) GetDeletionOptions(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := requireID(req)
	if err != nil {
		return nil, err
	}

	opts, err := s.Tracker.DeletionOptions(id)
	if err != nil {
		return nil, mapError(err)
	}

	return encodeResponse(deletionOptionsResponse{
		PaymentID: opts.PaymentID,
		SeriesID:  opts.SeriesID,
		IsSeries:  opts.IsSeries,
	})
}

// DeletePayment handles the DeletePayment RPC
func (s *Server) DeletePayment(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := requireID(req)
	if err != nil {
		return nil, err
	}

	return encodeResponse(deletedResponse{Deleted: s.Tracker.DeletePayment(ctx, id)})
}

// DeleteSeries handles the DeleteSeries RPC
func (s *Server) DeleteSeries(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in deleteSeriesRequest
	if err := decodeRequest(req, &in); err != nil {
		return nil, err
	}
	if in.SeriesID == uuid.Nil {
		return nil, status.Errorf(codes.InvalidArgument, "seriesId is required")
	}

	return encodeResponse(deleteSeriesResponse{Removed: s.Tracker.DeleteSeries(ctx, in.SeriesID)})
}

// AddInvestmentAccount handles the AddInvestmentAccount RPC
func (s *Server) AddInvestmentAccount(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in addInvestmentAccountRequest
	if err := decodeRequest(req, &in); err != nil {
		return nil, err
	}

	account, err := s.Tracker.AddInvestmentAccount(ctx, investment.AddAccountInput{
		Name:      in.Name,
		Principal: in.Amount,
		Rate:      in.Rate,
	})
	if err != nil {
		return nil, mapError(err)
	}

	return encodeResponse(investmentAccountResponse{Account: account})
}

// DeleteInvestmentAccount handles the DeleteInvestmentAccount RPC
func (s *Server) DeleteInvestmentAccount(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := requireID(req)
	if err != nil {
		return nil, err
	}

	return encodeResponse(deletedResponse{Deleted: s.Tracker.DeleteInvestmentAccount(ctx, id)})
}

// ListInvestmentAccounts handles the ListInvestmentAccounts RPC
func (s *Server) ListInvestmentAccounts(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return encodeResponse(toInvestmentsResponse(s.Tracker.Projection()))
}

// GetAdvice handles the GetAdvice RPC
func (s *Server) GetAdvice(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	tip, err := s.Tracker.Advice(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	return encodeResponse(adviceResponse{Tip: tip})
}

// GetOverview handles the GetOverview RPC
func (s *Server) GetOverview(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in overviewRequest
	if err := decodeRequest(req, &in); err != nil {
		return nil, err
	}

	overview := s.DashboardService.GetOverview(in.UpcomingLimit)
	return encodeResponse(overviewResponse{
		Summary:          toSummaryResponse(overview.Summary),
		Investments:      toInvestmentsResponse(overview.Investments),
		Upcoming:         nonNil(overview.Upcoming),
		UpcomingTotal:    overview.UpcomingTotal,
		PendingCount:     overview.PendingCount,
		TransactionCount: overview.TransactionCount,
		NetPosition:      overview.NetPosition,
		GeneratedAt:      time.Now().UTC(),
	})
}

// requireID extracts a mandatory "id" field
func requireID(req *structpb.Struct) (uuid.UUID, error) {
	var in idRequest
	if err := decodeRequest(req, &in); err != nil {
		return uuid.Nil, err
	}
	if in.ID == uuid.Nil {
		return uuid.Nil, status.Errorf(codes.InvalidArgument, "id is required")
	}
	return in.ID, nil
}

func toSummaryResponse(sum ledger.Summary) summaryResponse {
	return summaryResponse{
		TotalIncome:   sum.TotalIncome,
		MyExpenses:    sum.MyExpenses,
		OtherExpenses: sum.OtherExpenses,
		TotalExpenses: sum.TotalExpenses,
		Balance:       sum.Balance,
	}
}

func toInvestmentsResponse(p investment.Projection) investmentAccountsResponse {
	accounts := make([]accountProjection, 0, len(p.Accounts))
	for _, a := range p.Accounts {
		accounts = append(accounts, accountProjection{
			ID:             a.AccountID,
			Name:           a.Name,
			Amount:         a.Principal,
			Rate:           a.Rate,
			ProjectedValue: a.ProjectedValue,
		})
	}
	return investmentAccountsResponse{
		Accounts:       accounts,
		TotalPrincipal: p.TotalPrincipal,
		TotalProjected: p.TotalProjected,
	}
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
