package advice

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/simaogato/ledgerflow-backend/internal/adapter/observability"
	"github.com/simaogato/ledgerflow-backend/internal/domain"
	"go.uber.org/zap"
)

const (
	// MaxTransactions bounds how many recent transactions are summarised
	MaxTransactions = 20
	// MaxPayments bounds how many upcoming payments are summarised
	MaxPayments = 10
	// FallbackCategory stands in for a transaction without a category
	FallbackCategory = "N/A"

	serviceName = "advice"
)

// Cache stores generated tips by request fingerprint
type Cache interface {
	Get(key string) (string, bool)
	Set(key string, value string)
}

// Input is a read-only snapshot of the tracker state taken at call time
type Input struct {
	Transactions []domain.Transaction      // Most recent first
	Payments     []domain.ScheduledPayment // Sorted by due date
	Today        domain.Date
}

// Service gates, summarises and forwards advice requests.
// It never mutates tracker state.
type Service struct {
	generator domain.AdviceGenerator
	cache     Cache
	timeout   time.Duration
	metrics   *observability.Metrics
	logger    *zap.Logger
}

// NewService creates a new Service instance.
// generator may be nil when no credential is configured; cache may be nil.
func NewService(generator domain.AdviceGenerator, cache Cache, timeout time.Duration, metrics *observability.Metrics, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		generator: generator,
		cache:     cache,
		timeout:   timeout,
		metrics:   metrics,
		logger:    logger,
	}
}

// Eligible reports whether there is enough data to ask for advice:
// at least 3 transactions or at least 1 scheduled payment
func Eligible(transactionCount, paymentCount int) bool {
	return transactionCount >= 3 || paymentCount >= 1
}

// Summarize builds the bounded request sent to the generator
// Logic:
//   - Up to 20 most recent transactions; missing category -> "N/A", missing owner -> "mine"
//   - Up to 10 unpaid payments due today or later, soonest first; missing owner -> "mine"
func Summarize(in Input) domain.AdviceRequest {
	n := min(len(in.Transactions), MaxTransactions)
	txs := make([]domain.AdviceTransaction, 0, n)
	for _, tx := range in.Transactions[:n] {
		category := string(tx.Category)
		if category == "" {
			category = FallbackCategory
		}
		txs = append(txs, domain.AdviceTransaction{
			Type:        tx.Type,
			Amount:      tx.Amount,
			Description: tx.Description,
			Category:    category,
			Owner:       tx.Owner.Effective(),
		})
	}

	payments := make([]domain.AdvicePayment, 0, MaxPayments)
	for _, p := range in.Payments {
		if len(payments) == MaxPayments {
			break
		}
		if p.Paid || p.DueDate.Before(in.Today) {
			continue
		}
		payments = append(payments, domain.AdvicePayment{
			Description: p.Description,
			Amount:      p.Amount,
			DueDate:     p.DueDate,
			Category:    p.Category,
			Owner:       p.Owner.Effective(),
		})
	}

	return domain.AdviceRequest{
		Transactions:     txs,
		UpcomingPayments: payments,
	}
}

// Advise returns a short financial tip for the snapshot
// Logic:
//  1. Gate: refuse with ErrNotEnoughData before any call
//  2. Serve from cache when the same summary was answered recently
//  3. Call the generator under the configured timeout
//  4. Any failure surfaces as *CollaboratorError with a user-facing message
func (s *Service) Advise(ctx context.Context, in Input) (string, error) {
	if !Eligible(len(in.Transactions), len(in.Payments)) {
		s.metrics.IncrAdviceRequest(observability.AdviceNotEnough)
		return "", domain.ErrNotEnoughData
	}

	if s.generator == nil {
		s.metrics.IncrAdviceRequest(observability.AdviceUnavailable)
		return "", &domain.CollaboratorError{Service: serviceName, Message: domain.MissingCredentialMessage}
	}

	req := Summarize(in)
	key, err := fingerprint(req)
	if err != nil {
		return "", err
	}

	if s.cache != nil {
		if tip, ok := s.cache.Get(key); ok {
			s.metrics.IncrAdviceRequest(observability.AdviceCached)
			return tip, nil
		}
	}

	callCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	tip, err := s.generator.GenerateTip(callCtx, req)
	if err != nil {
		s.metrics.IncrAdviceRequest(observability.AdviceUnavailable)
		s.logger.Error("advice generator failed",
			zap.Int("transactions", len(req.Transactions)),
			zap.Int("upcoming_payments", len(req.UpcomingPayments)),
			zap.Error(err),
		)

		var collabErr *domain.CollaboratorError
		if errors.As(err, &collabErr) {
			return "", collabErr
		}
		return "", &domain.CollaboratorError{Service: serviceName, Message: domain.AdviceUnavailableMessage, Err: err}
	}

	if s.cache != nil {
		s.cache.Set(key, tip)
	}
	s.metrics.IncrAdviceRequest(observability.AdviceOK)
	return tip, nil
}

func fingerprint(req domain.AdviceRequest) (string, error) {
	raw, err := json.Marshal(req)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}
