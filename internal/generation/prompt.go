package generation

import (
	"fmt"
	"os"
	"strings"
	"text/template"
)

// DefaultPromptTemplate instructs the model to return exactly the requested
// number of cards, in the target language, as a bare JSON object. The source
// text is always the last thing in the prompt.
const DefaultPromptTemplate = "You are an expert in creating study materials. " +
	"Your task is to carefully analyze the following text and create exactly {{.CardCount}} " +
	"of the most important learning cards from it. " +
	"Important: All questions and answers must be formulated in the following language: {{.TargetLanguage}}. " +
	"Return the result as a single JSON object containing a key 'cards', whose value is an array of objects " +
	"with keys 'question' and 'answer'. " +
	"Do not include any other text outside the JSON itself. " +
	"The text to analyze follows: \n\n{{.SourceText}}"

// PromptBuilder renders generation prompts from a template.
// It is safe for concurrent use.
type PromptBuilder struct {
	tmpl *template.Template
}

type promptData struct {
	SourceText     string
	CardCount      int
	TargetLanguage string
}

// NewPromptBuilder parses text as a prompt template. The template may refer to
// {{.SourceText}}, {{.CardCount}} and {{.TargetLanguage}}, and must end with
// {{.SourceText}}.
func NewPromptBuilder(text string) (*PromptBuilder, error) {
	if !strings.HasSuffix(text, "{{.SourceText}}") {
		return nil, fmt.Errorf("%w: prompt template must end with {{.SourceText}}", ErrInvalidConfig)
	}

	tmpl, err := template.New("flashcards").Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse prompt template: %v", ErrInvalidConfig, err)
	}
	return &PromptBuilder{tmpl: tmpl}, nil
}

// LoadPromptBuilder reads a prompt template from path. Trailing newlines,
// which editors tend to add, are dropped so the prompt still ends with the
// source text. An empty path yields the default template.
func LoadPromptBuilder(path string) (*PromptBuilder, error) {
	if path == "" {
		return DefaultPromptBuilder(), nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read prompt template: %v", ErrInvalidConfig, err)
	}
	return NewPromptBuilder(strings.TrimRight(string(content), "\r\n"))
}

var defaultBuilder = func() *PromptBuilder {
	b, err := NewPromptBuilder(DefaultPromptTemplate)
	if err != nil {
		panic(err)
	}
	return b
}()

// DefaultPromptBuilder returns the builder for DefaultPromptTemplate.
func DefaultPromptBuilder() *PromptBuilder {
	return defaultBuilder
}

// Build renders the prompt. The source text is passed to the template as
// data, so template syntax inside it is emitted literally.
func (b *PromptBuilder) Build(sourceText string, cardCount int, targetLanguage string) (string, error) {
	if err := validateStruct(promptInput{
		SourceText:     sourceText,
		CardCount:      cardCount,
		TargetLanguage: targetLanguage,
	}); err != nil {
		return "", err
	}

	var sb strings.Builder
	err := b.tmpl.Execute(&sb, promptData{
		SourceText:     sourceText,
		CardCount:      cardCount,
		TargetLanguage: targetLanguage,
	})
	if err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}
	return sb.String(), nil
}

// BuildPrompt renders the default prompt.
func BuildPrompt(sourceText string, cardCount int, targetLanguage string) (string, error) {
	return defaultBuilder.Build(sourceText, cardCount, targetLanguage)
}
