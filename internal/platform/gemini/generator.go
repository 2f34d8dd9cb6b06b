package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"text/template"
	"time"

	"github.com/phrazzld/lexiplay/internal/config"
	"github.com/phrazzld/lexiplay/internal/domain"
	"github.com/phrazzld/lexiplay/internal/generation"
	"google.golang.org/genai"
)

// contentGenerator is the subset of genai.Models used by WordGenerator.
type contentGenerator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// WordGenerator implements generation.WordGenerator with the Gemini API.
type WordGenerator struct {
	logger   *slog.Logger
	models   contentGenerator
	model    string
	template *template.Template
	policy   generation.RetryPolicy
}

var _ generation.WordGenerator = (*WordGenerator)(nil)

// NewWordGenerator validates the configuration and creates a Gemini client.
func NewWordGenerator(ctx context.Context, cfg config.LLMConfig, logger *slog.Logger) (*WordGenerator, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", generation.ErrInvalidConfig, err)
	}

	return newWordGenerator(client.Models, cfg, logger)
}

func newWordGenerator(models contentGenerator, cfg config.LLMConfig, logger *slog.Logger) (*WordGenerator, error) {
	if models == nil {
		return nil, fmt.Errorf("%w: content generator cannot be nil", generation.ErrInvalidConfig)
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}
	if logger == nil {
		logger = slog.Default()
	}

	tmpl, err := generation.LoadPromptTemplate(cfg.PromptTemplatePath)
	if err != nil {
		return nil, err
	}

	return &WordGenerator{
		logger:   logger.With(slog.String("component", "gemini_generator"), slog.String("model", cfg.ModelName)),
		models:   models,
		model:    cfg.ModelName,
		template: tmpl,
		policy: generation.RetryPolicy{
			MaxRetries: cfg.MaxRetries,
			BaseDelay:  time.Duration(cfg.RetryDelaySeconds) * time.Second,
		},
	}, nil
}

// GenerateWords asks Gemini for count words at the given level.
func (g *WordGenerator) GenerateWords(ctx context.Context, level, count int) ([]domain.ScrambledWord, error) {
	prompt, err := generation.RenderPrompt(g.template, level, count)
	if err != nil {
		return nil, err
	}

	var words []domain.ScrambledWord
	err = generation.Retry(ctx, g.policy, g.logger, func(ctx context.Context) error {
		text, err := g.call(ctx, prompt)
		if err != nil {
			return err
		}
		words, err = generation.ParseWords(text, level)
		return err
	})
	if err != nil {
		g.logger.ErrorContext(ctx, "word generation failed",
			slog.Int("level", level),
			slog.String("error", err.Error()))
		if errors.Is(err, generation.ErrGenerationFailed) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", generation.ErrGenerationFailed, err)
	}

	g.logger.DebugContext(ctx, "generated words",
		slog.Int("level", level),
		slog.Int("requested", count),
		slog.Int("received", len(words)))
	return words, nil
}

func (g *WordGenerator) call(ctx context.Context, prompt string) (string, error) {
	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("%w: Gemini API call failed: %v", generation.ErrTransientFailure, err)
	}
	return responseText(resp)
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates in response", generation.ErrInvalidResponse)
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: finish reason %s", generation.ErrContentBlocked, candidate.FinishReason)
	}
	if candidate.Content == nil {
		return "", fmt.Errorf("%w: candidate has no content", generation.ErrInvalidResponse)
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}
	return sb.String(), nil
}
