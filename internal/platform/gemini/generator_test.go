package gemini

import (
	"context"
	"errors"
	"testing"

	"github.com/phrazzld/lexiplay/internal/config"
	"github.com/phrazzld/lexiplay/internal/domain"
	"github.com/phrazzld/lexiplay/internal/generation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

// fakeModels replays a fixed list of responses, one per call.
type fakeModels struct {
	responses []*genai.GenerateContentResponse
	errs      []error
	calls     int
	model     string
	prompt    string
}

func (f *fakeModels) GenerateContent(
	_ context.Context,
	model string,
	contents []*genai.Content,
	_ *genai.GenerateContentConfig,
) (*genai.GenerateContentResponse, error) {
	i := f.calls
	f.calls++
	f.model = model
	if len(contents) > 0 && len(contents[0].Parts) > 0 {
		f.prompt = contents[0].Parts[0].Text
	}
	var err error
	if i < len(f.errs) {
		err = f.errs[i]
	}
	var resp *genai.GenerateContentResponse
	if i < len(f.responses) {
		resp = f.responses[i]
	}
	return resp, err
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content:      &genai.Content{Role: "model", Parts: []*genai.Part{{Text: text}}},
			FinishReason: genai.FinishReasonStop,
		}},
	}
}

func testConfig() config.LLMConfig {
	return config.LLMConfig{
		Provider:          "gemini",
		GeminiAPIKey:      "test-key",
		ModelName:         "gemini-2.0-flash",
		MaxRetries:        2,
		RetryDelaySeconds: 0,
	}
}

func TestNewWordGeneratorValidation(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.GeminiAPIKey = ""
	_, err := NewWordGenerator(context.Background(), cfg, nil)
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)

	cfg = testConfig()
	cfg.ModelName = ""
	_, err = newWordGenerator(&fakeModels{}, cfg, nil)
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)

	cfg = testConfig()
	cfg.PromptTemplatePath = "/does/not/exist.tmpl"
	_, err = newWordGenerator(&fakeModels{}, cfg, nil)
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)

	_, err = newWordGenerator(nil, testConfig(), nil)
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)
}

func TestGenerateWords(t *testing.T) {
	t.Parallel()

	models := &fakeModels{responses: []*genai.GenerateContentResponse{
		textResponse(`{"words": [{"word": "frog", "scrambled": "gorf"}, {"word": "milk", "scrambled": "klim"}]}`),
	}}
	gen, err := newWordGenerator(models, testConfig(), nil)
	require.NoError(t, err)

	words, err := gen.GenerateWords(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, []domain.ScrambledWord{
		{Scrambled: "gorf", Word: "frog"},
		{Scrambled: "klim", Word: "milk"},
	}, words)
	assert.Equal(t, 1, models.calls)
	assert.Equal(t, "gemini-2.0-flash", models.model)
	assert.Contains(t, models.prompt, "between 4 and 4 letters")
}

func TestGenerateWordsRetriesTransientErrors(t *testing.T) {
	t.Parallel()

	models := &fakeModels{
		errs: []error{errors.New("503 unavailable"), nil},
		responses: []*genai.GenerateContentResponse{
			nil,
			textResponse(`{"words": [{"word": "cat", "scrambled": "act"}]}`),
		},
	}
	gen, err := newWordGenerator(models, testConfig(), nil)
	require.NoError(t, err)
	gen.policy.BaseDelay = 1

	words, err := gen.GenerateWords(context.Background(), 0, 1)
	require.NoError(t, err)
	assert.Len(t, words, 1)
	assert.Equal(t, 2, models.calls)
}

func TestGenerateWordsFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		models  *fakeModels
		wantErr error
		calls   int
	}{
		{
			name: "safety block",
			models: &fakeModels{responses: []*genai.GenerateContentResponse{{
				Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonSafety}},
			}}},
			wantErr: generation.ErrContentBlocked,
			calls:   1,
		},
		{
			name:    "no candidates",
			models:  &fakeModels{responses: []*genai.GenerateContentResponse{{}}},
			wantErr: generation.ErrInvalidResponse,
			calls:   1,
		},
		{
			name:    "malformed json",
			models:  &fakeModels{responses: []*genai.GenerateContentResponse{textResponse("cat, dog")}},
			wantErr: generation.ErrInvalidResponse,
			calls:   1,
		},
		{
			name: "api keeps failing",
			models: &fakeModels{errs: []error{
				errors.New("timeout"), errors.New("timeout"), errors.New("timeout"),
			}},
			wantErr: generation.ErrTransientFailure,
			calls:   3,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			gen, err := newWordGenerator(tc.models, testConfig(), nil)
			require.NoError(t, err)
			gen.policy.BaseDelay = 1

			words, err := gen.GenerateWords(context.Background(), 0, 5)
			assert.Nil(t, words)
			assert.ErrorIs(t, err, generation.ErrGenerationFailed)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Equal(t, tc.calls, tc.models.calls)
		})
	}
}
