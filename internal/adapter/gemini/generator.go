package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/simaogato/ledgerflow-backend/internal/adapter/resilience"
	"github.com/simaogato/ledgerflow-backend/internal/domain"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

const serviceName = "gemini"

// ErrEmptyResponse is returned when the model answers without any text
var ErrEmptyResponse = errors.New("gemini returned no text")

// ContentGenerator is the slice of the Gemini SDK the generator needs
type ContentGenerator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// Config holds the generator settings
type Config struct {
	APIKey     string
	Model      string
	Resilience resilience.Config
}

// Generator implements domain.AdviceGenerator on Gemini.
// Each call goes through a circuit breaker and is retried with backoff.
type Generator struct {
	model   ContentGenerator
	breaker *gobreaker.CircuitBreaker
	retry   resilience.Config
	logger  *zap.Logger
	client  *genai.Client
}

var _ domain.AdviceGenerator = (*Generator)(nil)

// NewGenerator creates a Gemini-backed generator.
// A missing API key is not an error here: every call then fails with a CollaboratorError
// carrying the missing-credential message.
func NewGenerator(ctx context.Context, cfg Config, logger *zap.Logger) (*Generator, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.APIKey == "" {
		logger.Warn("advice API key not configured; advice requests will be refused")
		return &Generator{logger: logger}, nil
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("unable to create Gemini client: %w", err)
	}

	g := NewGeneratorWithModel(client.GenerativeModel(cfg.Model), cfg.Resilience, logger)
	g.client = client
	return g, nil
}

// NewGeneratorWithModel wires an existing content generator
func NewGeneratorWithModel(model ContentGenerator, retry resilience.Config, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		model:   model,
		breaker: resilience.NewCircuitBreaker(serviceName),
		retry:   retry,
		logger:  logger,
	}
}

// GenerateTip asks the model for one short tip
func (g *Generator) GenerateTip(ctx context.Context, req domain.AdviceRequest) (string, error) {
	if g.model == nil {
		return "", &domain.CollaboratorError{Service: serviceName, Message: domain.MissingCredentialMessage}
	}

	prompt, err := BuildPrompt(req)
	if err != nil {
		return "", err
	}

	tip, err := resilience.Call(ctx, g.breaker, g.retry, func(ctx context.Context) (string, error) {
		resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
		if err != nil {
			return "", err
		}
		return extractText(resp)
	})
	if err != nil {
		g.logger.Warn("gemini call failed",
			zap.String("breaker_state", g.breaker.State().String()),
			zap.Error(err),
		)
		return "", &domain.CollaboratorError{Service: serviceName, Message: domain.AdviceUnavailableMessage, Err: err}
	}

	return tip, nil
}

// Close releases the underlying client
func (g *Generator) Close() error {
	if g.client == nil {
		return nil
	}
	return g.client.Close()
}

func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", ErrEmptyResponse
	}

	var sb strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				sb.WriteString(string(text))
			}
		}
		if sb.Len() > 0 {
			break
		}
	}

	tip := strings.TrimSpace(sb.String())
	if tip == "" {
		return "", ErrEmptyResponse
	}
	return tip, nil
}
