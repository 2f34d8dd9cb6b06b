package openai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"text/template"
	"time"

	sdk "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/phrazzld/lexiplay/internal/config"
	"github.com/phrazzld/lexiplay/internal/domain"
	"github.com/phrazzld/lexiplay/internal/generation"
)

const requestTimeout = 30 * time.Second

// chatCompleter is the subset of the SDK's chat completion service used here.
type chatCompleter interface {
	New(ctx context.Context, body sdk.ChatCompletionNewParams, opts ...option.RequestOption) (*sdk.ChatCompletion, error)
}

// WordGenerator implements generation.WordGenerator with OpenAI chat completions.
type WordGenerator struct {
	logger      *slog.Logger
	completions chatCompleter
	model       string
	template    *template.Template
	policy      generation.RetryPolicy
}

var _ generation.WordGenerator = (*WordGenerator)(nil)

// NewWordGenerator validates the configuration and creates an OpenAI client.
// Retries are handled by generation.Retry, so the SDK's own retries are off.
func NewWordGenerator(cfg config.LLMConfig, logger *slog.Logger) (*WordGenerator, error) {
	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("%w: openai API key cannot be empty", generation.ErrInvalidConfig)
	}

	client := sdk.NewClient(
		option.WithAPIKey(cfg.OpenAIAPIKey),
		option.WithMaxRetries(0),
		option.WithRequestTimeout(requestTimeout),
	)
	return newWordGenerator(&client.Chat.Completions, cfg, logger)
}

func newWordGenerator(completions chatCompleter, cfg config.LLMConfig, logger *slog.Logger) (*WordGenerator, error) {
	if completions == nil {
		return nil, fmt.Errorf("%w: chat completer cannot be nil", generation.ErrInvalidConfig)
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
		logger:      logger.With(slog.String("component", "openai_generator"), slog.String("model", cfg.ModelName)),
		completions: completions,
		model:       cfg.ModelName,
		template:    tmpl,
		policy: generation.RetryPolicy{
			MaxRetries: cfg.MaxRetries,
			BaseDelay:  time.Duration(cfg.RetryDelaySeconds) * time.Second,
		},
	}, nil
}

// GenerateWords asks the chat model for count words at the given level.
func (g *WordGenerator) GenerateWords(ctx context.Context, level, count int) ([]domain.ScrambledWord, error) {
	prompt, err := generation.RenderPrompt(g.template, level, count)
	if err != nil {
		return nil, err
	}

	params := sdk.ChatCompletionNewParams{
		Model: sdk.ChatModel(g.model),
		Messages: []sdk.ChatCompletionMessageParamUnion{
			sdk.UserMessage(prompt),
		},
	}

	var words []domain.ScrambledWord
	err = generation.Retry(ctx, g.policy, g.logger, func(ctx context.Context) error {
		resp, err := g.completions.New(ctx, params)
		if err != nil {
			return fmt.Errorf("%w: OpenAI API call failed: %v", generation.ErrTransientFailure, err)
		}
		text, err := responseText(resp)
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

func responseText(resp *sdk.ChatCompletion) (string, error) {
	if resp == nil || len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in response", generation.ErrInvalidResponse)
	}
	choice := resp.Choices[0]
	if choice.FinishReason == "content_filter" {
		return "", fmt.Errorf("%w: finish reason %s", generation.ErrContentBlocked, choice.FinishReason)
	}
	if choice.Message.Refusal != "" {
		return "", fmt.Errorf("%w: %s", generation.ErrContentBlocked, choice.Message.Refusal)
	}
	return choice.Message.Content, nil
}
