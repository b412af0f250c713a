package generation

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// Request limits.
const (
	MinCardCount        = 1
	MaxCardCount        = 16
	DefaultCardCount    = 5
	MaxSourceTextLength = 15000
	DefaultLanguage     = "English"
)

// SuggestedLanguages are offered to users; any non-empty language is accepted.
var SuggestedLanguages = []string{"English", "Czech", "German"}

// Request is a single text-to-flashcards generation call.
// Credential is the caller's own provider API key and is used only for the
// duration of the call.
type Request struct {
	SourceText     string `validate:"required,notblank,max=15000"`
	CardCount      int    `validate:"min=1,max=16"`
	TargetLanguage string `validate:"required,notblank"`
	Credential     string `validate:"required,notblank"`
}

// LogValue keeps the credential and source text out of logs.
func (r Request) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("source_length", len(r.SourceText)),
		slog.Int("card_count", r.CardCount),
		slog.String("target_language", r.TargetLanguage),
		slog.Bool("has_credential", r.Credential != ""),
	)
}

// Card is one question/answer pair returned by the model.
// Values are passed through as returned; only the shape is checked.
type Card struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Result is the ordered list of cards from one generation call. Its length
// usually equals the requested count but this is not guaranteed.
type Result struct {
	Cards []Card `json:"cards"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	return v
}

// Validate checks the request against the generation limits. Errors wrap
// ErrInvalidRequest and never include field values.
func (r Request) Validate() error {
	return validateStruct(r)
}

type promptInput struct {
	SourceText     string `validate:"required,notblank,max=15000"`
	CardCount      int    `validate:"min=1,max=16"`
	TargetLanguage string `validate:"required,notblank"`
}

func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describeFieldError(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalidRequest, strings.Join(msgs, "; "))
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Field() {
	case "SourceText":
		if fe.Tag() == "max" {
			return fmt.Sprintf("source text must be at most %d characters", MaxSourceTextLength)
		}
		return "source text is required"
	case "CardCount":
		return fmt.Sprintf("card count must be between %d and %d", MinCardCount, MaxCardCount)
	case "TargetLanguage":
		return "target language is required"
	case "Credential":
		return "credential is required"
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}
