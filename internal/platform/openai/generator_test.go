package openai

import (
	"context"
	"errors"
	"testing"

	sdk "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/phrazzld/lexiplay/internal/config"
	"github.com/phrazzld/lexiplay/internal/domain"
	"github.com/phrazzld/lexiplay/internal/generation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCompletions struct {
	responses []*sdk.ChatCompletion
	errs      []error
	calls     int
	model     string
}

func (f *fakeCompletions) New(
	_ context.Context,
	body sdk.ChatCompletionNewParams,
	_ ...option.RequestOption,
) (*sdk.ChatCompletion, error) {
	i := f.calls
	f.calls++
	f.model = string(body.Model)
	var err error
	if i < len(f.errs) {
		err = f.errs[i]
	}
	var resp *sdk.ChatCompletion
	if i < len(f.responses) {
		resp = f.responses[i]
	}
	return resp, err
}

func completion(content, finishReason string) *sdk.ChatCompletion {
	return &sdk.ChatCompletion{
		Choices: []sdk.ChatCompletionChoice{{
			FinishReason: finishReason,
			Message:      sdk.ChatCompletionMessage{Content: content},
		}},
	}
}

func testConfig() config.LLMConfig {
	return config.LLMConfig{
		Provider:     "openai",
		OpenAIAPIKey: "sk-test",
		ModelName:    "gpt-4o-mini",
		MaxRetries:   1,
	}
}

func TestNewWordGeneratorValidation(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.OpenAIAPIKey = ""
	_, err := NewWordGenerator(cfg, nil)
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)

	cfg = testConfig()
	cfg.ModelName = ""
	_, err = NewWordGenerator(cfg, nil)
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)

	gen, err := NewWordGenerator(testConfig(), nil)
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", gen.model)
}

func TestGenerateWords(t *testing.T) {
	t.Parallel()

	fake := &fakeCompletions{responses: []*sdk.ChatCompletion{
		completion("```json\n{\"words\": [{\"word\": \"apple\", \"scrambled\": \"pelap\"}]}\n```", "stop"),
	}}
	gen, err := newWordGenerator(fake, testConfig(), nil)
	require.NoError(t, err)

	words, err := gen.GenerateWords(context.Background(), 2, 1)
	require.NoError(t, err)
	assert.Equal(t, []domain.ScrambledWord{{Scrambled: "pelap", Word: "apple"}}, words)
	assert.Equal(t, "gpt-4o-mini", fake.model)
}

func TestGenerateWordsFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		fake    *fakeCompletions
		wantErr error
		calls   int
	}{
		{
			name:    "content filter",
			fake:    &fakeCompletions{responses: []*sdk.ChatCompletion{completion("", "content_filter")}},
			wantErr: generation.ErrContentBlocked,
			calls:   1,
		},
		{
			name:    "no choices",
			fake:    &fakeCompletions{responses: []*sdk.ChatCompletion{{}}},
			wantErr: generation.ErrInvalidResponse,
			calls:   1,
		},
		{
			name:    "api errors are retried",
			fake:    &fakeCompletions{errs: []error{errors.New("429"), errors.New("429")}},
			wantErr: generation.ErrTransientFailure,
			calls:   2,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			gen, err := newWordGenerator(tc.fake, testConfig(), nil)
			require.NoError(t, err)
			gen.policy.BaseDelay = 1

			_, err = gen.GenerateWords(context.Background(), 0, 3)
			assert.ErrorIs(t, err, generation.ErrGenerationFailed)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Equal(t, tc.calls, tc.fake.calls)
		})
	}
}
