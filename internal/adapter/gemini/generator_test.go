package gemini

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/shopspring/decimal"
	"github.com/simaogato/ledgerflow-backend/internal/adapter/resilience"
	"github.com/simaogato/ledgerflow-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockContentGenerator is a mock implementation of ContentGenerator for testing
type MockContentGenerator struct {
	mock.Mock
}

func (m *MockContentGenerator) GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
	args := m.Called(ctx, parts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*genai.GenerateContentResponse), args.Error(1)
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Text(text)}},
		}},
	}
}

func sampleRequest() domain.AdviceRequest {
	return domain.AdviceRequest{
		Transactions: []domain.AdviceTransaction{{
			Type:        domain.TransactionTypeExpense,
			Amount:      decimal.NewFromInt(40),
			Description: "Groceries for mom",
			Category:    "Food",
			Owner:       domain.OwnerOther,
		}},
		UpcomingPayments: []domain.AdvicePayment{{
			Description: "Rent",
			Amount:      decimal.NewFromInt(800),
			DueDate:     domain.MustParseDate("2024-03-01"),
			Category:    domain.CategoryHousing,
			Owner:       domain.OwnerMine,
		}},
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt, err := BuildPrompt(sampleRequest())
	require.NoError(t, err)

	assert.Contains(t, prompt, "under 75 words")
	assert.Contains(t, prompt, "'other' indicates an expense the user is paying for someone else")
	assert.Contains(t, prompt, `"description": "Groceries for mom"`)
	assert.Contains(t, prompt, `"dueDate": "2024-03-01"`)
	assert.Contains(t, prompt, `"owner": "other"`)

	empty, err := BuildPrompt(domain.AdviceRequest{})
	require.NoError(t, err)
	assert.Contains(t, empty, "Upcoming Scheduled Payments:\n[]")
}

func TestGenerateTip_ReturnsText(t *testing.T) {
	model := new(MockContentGenerator)
	model.On("GenerateContent", mock.Anything, mock.Anything).Return(textResponse("  Set aside 10% for savings.  "), nil)

	g := NewGeneratorWithModel(model, resilience.Config{MaxRetries: 1, InitialBackoff: time.Millisecond}, nil)
	tip, err := g.GenerateTip(context.Background(), sampleRequest())

	require.NoError(t, err)
	assert.Equal(t, "Set aside 10% for savings.", tip)
	model.AssertNumberOfCalls(t, "GenerateContent", 1)
}

func TestGenerateTip_RetriesThenSucceeds(t *testing.T) {
	model := new(MockContentGenerator)
	model.On("GenerateContent", mock.Anything, mock.Anything).Return(nil, errors.New("503")).Once()
	model.On("GenerateContent", mock.Anything, mock.Anything).Return(textResponse("Pay off the credit card first."), nil).Once()

	g := NewGeneratorWithModel(model, resilience.Config{MaxRetries: 2, InitialBackoff: time.Millisecond}, nil)
	tip, err := g.GenerateTip(context.Background(), sampleRequest())

	require.NoError(t, err)
	assert.Equal(t, "Pay off the credit card first.", tip)
	model.AssertNumberOfCalls(t, "GenerateContent", 2)
}

func TestGenerateTip_FailureIsCollaboratorError(t *testing.T) {
	model := new(MockContentGenerator)
	model.On("GenerateContent", mock.Anything, mock.Anything).Return(textResponse("   "), nil)

	g := NewGeneratorWithModel(model, resilience.Config{MaxRetries: 1, InitialBackoff: time.Millisecond}, nil)
	_, err := g.GenerateTip(context.Background(), sampleRequest())

	var collabErr *domain.CollaboratorError
	require.True(t, errors.As(err, &collabErr))
	assert.Equal(t, domain.AdviceUnavailableMessage, collabErr.Message)
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestGenerateTip_MissingAPIKey(t *testing.T) {
	g, err := NewGenerator(context.Background(), Config{Model: "gemini-2.5-flash"}, nil)
	require.NoError(t, err)

	_, err = g.GenerateTip(context.Background(), sampleRequest())

	var collabErr *domain.CollaboratorError
	require.True(t, errors.As(err, &collabErr))
	assert.Equal(t, domain.MissingCredentialMessage, collabErr.Message)
	assert.NoError(t, g.Close())
}
