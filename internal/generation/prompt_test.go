package generation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderDefaultPrompt(t *testing.T) {
	t.Parallel()

	tmpl, err := LoadPromptTemplate("")
	require.NoError(t, err)

	prompt, err := RenderPrompt(tmpl, 2, 12)
	require.NoError(t, err)
	assert.Contains(t, prompt, "Produce 12 common English words")
	assert.Contains(t, prompt, "between 5 and 5 letters")
	assert.Contains(t, prompt, `"scrambled"`)
}

func TestLoadPromptTemplateFromFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "words.tmpl")
	require.NoError(t, os.WriteFile(path, []byte("level {{.Level}}: {{.Count}} words of {{.MinLength}}-{{.MaxLength}}"), 0o600))

	tmpl, err := LoadPromptTemplate(path)
	require.NoError(t, err)

	prompt, err := RenderPrompt(tmpl, 4, 3)
	require.NoError(t, err)
	assert.Equal(t, "level 4: 3 words of 7-8", prompt)
}

func TestLoadPromptTemplateErrors(t *testing.T) {
	t.Parallel()

	_, err := LoadPromptTemplate(filepath.Join(t.TempDir(), "missing.tmpl"))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	path := filepath.Join(t.TempDir(), "broken.tmpl")
	require.NoError(t, os.WriteFile(path, []byte("{{.Count"), 0o600))
	_, err = LoadPromptTemplate(path)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestRenderPromptRejectsZeroCount(t *testing.T) {
	t.Parallel()

	tmpl, err := LoadPromptTemplate("")
	require.NoError(t, err)

	_, err = RenderPrompt(tmpl, 0, 0)
	assert.ErrorIs(t, err, ErrGenerationFailed)
}
