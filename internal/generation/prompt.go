package generation

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"text/template"
)

//go:embed prompts/words.tmpl
var defaultPromptTemplate string

// PromptData is the data passed to the prompt template.
type PromptData struct {
	Level     int
	Count     int
	MinLength int
	MaxLength int
}

// LoadPromptTemplate parses the template at path, or the built-in template
// when path is empty.
func LoadPromptTemplate(path string) (*template.Template, error) {
	content := defaultPromptTemplate
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to read prompt template from %s: %v", ErrInvalidConfig, path, err)
		}
		content = string(raw)
	}

	tmpl, err := template.New("words").Option("missingkey=error").Parse(content)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse prompt template: %v", ErrInvalidConfig, err)
	}
	return tmpl, nil
}

// RenderPrompt executes the template for a level and word count.
func RenderPrompt(tmpl *template.Template, level, count int) (string, error) {
	if count <= 0 {
		return "", fmt.Errorf("%w: word count must be positive, got %d", ErrGenerationFailed, count)
	}

	minLen, maxLen := WordLength(level)
	data := PromptData{
		Level:     level,
		Count:     count,
		MinLength: minLen,
		MaxLength: maxLen,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}
	return buf.String(), nil
}
