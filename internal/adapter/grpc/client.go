package grpc

import (
	"context"

	"github.com/google/uuid"
	"github.com/simaogato/ledgerflow-backend/internal/domain"
	"github.com/simaogato/ledgerflow-backend/internal/usecase/ledger"
	"github.com/simaogato/ledgerflow-backend/internal/usecase/reconcile"
	"github.com/simaogato/ledgerflow-backend/internal/usecase/recurrence"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/structpb"
)

// Client calls TrackerService over an established connection
type Client struct {
	conn  grpc.ClientConnInterface
	token string
}

// NewClient creates a client that sends token as the authorization metadata
func NewClient(conn grpc.ClientConnInterface, token string) *Client {
	return &Client{conn: conn, token: token}
}

// Call invokes method with req encoded as a Struct and decodes the reply into resp.
// A nil req sends an empty message; a nil resp discards the reply.
func (c *Client) Call(ctx context.Context, method string, req, resp any) error {
	in := &structpb.Struct{}
	if req != nil {
		var err error
		if in, err = NewRequest(req); err != nil {
			return err
		}
	}

	if c.token != "" {
		ctx = metadata.AppendToOutgoingContext(ctx, "authorization", c.token)
	}

	out := &structpb.Struct{}
	if err := c.conn.Invoke(ctx, FullMethod(method), in, out); err != nil {
		return err
	}
	if resp == nil {
		return nil
	}
	return DecodeResponse(out, resp)
}

// AddTransaction records a transaction
func (c *Client) AddTransaction(ctx context.Context, input ledger.AddTransactionInput) (*domain.Transaction, error) {
	var resp transactionResponse
	err := c.Call(ctx, "AddTransaction", addTransactionRequest{
		Type:        input.Type,
		Description: input.Description,
		Amount:      input.Amount,
		Category:    input.Category,
		Owner:       input.Owner,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Transaction, nil
}

// SchedulePayments creates count monthly occurrences of tpl
func (c *Client) SchedulePayments(ctx context.Context, tpl recurrence.Template, count int) ([]domain.ScheduledPayment, error) {
	var resp paymentsResponse
	err := c.Call(ctx, "SchedulePayments", schedulePaymentsRequest{
		Description: tpl.Description,
		Amount:      tpl.Amount,
		Category:    tpl.Category,
		Owner:       tpl.Owner,
		DueDate:     tpl.BaseDate,
		Count:       &count,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Payments, nil
}

// MarkPaid settles a scheduled payment
func (c *Client) MarkPaid(ctx context.Context, id uuid.UUID) (*reconcile.Outcome, error) {
	var resp markPaidResponse
	if err := c.Call(ctx, "MarkPaid", idRequest{ID: id}, &resp); err != nil {
		return nil, err
	}

	outcome := &reconcile.Outcome{Applied: resp.Applied}
	if resp.Payment != nil {
		outcome.Payment = *resp.Payment
	}
	if resp.Transaction != nil {
		outcome.Transaction = *resp.Transaction
	}
	return outcome, nil
}

// Summary returns the ledger totals
func (c *Client) Summary(ctx context.Context) (ledger.Summary, error) {
	var resp summaryResponse
	if err := c.Call(ctx, "GetSummary", nil, &resp); err != nil {
		return ledger.Summary{}, err
	}
	return ledger.Summary{
		TotalIncome:   resp.TotalIncome,
		MyExpenses:    resp.MyExpenses,
		OtherExpenses: resp.OtherExpenses,
		TotalExpenses: resp.TotalExpenses,
		Balance:       resp.Balance,
	}, nil
}

// Advice requests a financial tip
func (c *Client) Advice(ctx context.Context) (string, error) {
	var resp adviceResponse
	if err := c.Call(ctx, "GetAdvice", nil, &resp); err != nil {
		return "", err
	}
	return resp.Tip, nil
}
