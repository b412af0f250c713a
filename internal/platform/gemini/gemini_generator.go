package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/flashdeck/internal/config"
	"github.com/phrazzld/flashdeck/internal/generation"
	"github.com/phrazzld/flashdeck/internal/platform/logger"
	"google.golang.org/genai"
)

// Generator implements the generation.Generator interface using Google's
// Gemini API. It holds no credential: every call builds its own client from
// the request's API key, so concurrent calls for different users never share
// authorization state.
type Generator struct {
	logger    *slog.Logger
	model     string
	prompts   *generation.PromptBuilder
	newClient ClientFactory
}

var _ generation.Generator = (*Generator)(nil)

// NewGenerator creates a Generator with the provided dependencies.
//
// Parameters:
//   - logger: A structured logger for operation logging
//   - model: The Gemini model name, e.g. "gemini-2.0-flash"
//   - prompts: The prompt builder; nil selects the default template
//   - newClient: Factory for per-call model clients
//
// Returns:
//   - A properly initialized Generator or an error wrapping generation.ErrInvalidConfig
func NewGenerator(
	logger *slog.Logger,
	model string,
	prompts *generation.PromptBuilder,
	newClient ClientFactory,
) (*Generator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if model == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}
	if newClient == nil {
		return nil, fmt.Errorf("%w: client factory cannot be nil", generation.ErrInvalidConfig)
	}
	if prompts == nil {
		prompts = generation.DefaultPromptBuilder()
	}

	return &Generator{
		logger:    logger.With("component", "gemini_generator"),
		model:     model,
		prompts:   prompts,
		newClient: newClient,
	}, nil
}

// NewGeneratorFromConfig wires a Generator from the LLM configuration,
// loading the prompt template override when one is configured.
func NewGeneratorFromConfig(logger *slog.Logger, cfg config.LLMConfig, newClient ClientFactory) (*Generator, error) {
	prompts, err := generation.LoadPromptBuilder(cfg.PromptTemplatePath)
	if err != nil {
		return nil, err
	}
	return NewGenerator(logger, cfg.ModelName, prompts, newClient)
}

// Generate creates flashcards from the request's source text with a single
// Gemini call. There are no retries.
//
// Parameters:
//   - ctx: Context for the operation; its deadline bounds the provider call
//   - req: The generation request, including the caller's API key
//
// Returns:
//   - The decoded cards, in the order the model returned them
//   - An error wrapping one of generation.ErrInvalidRequest,
//     generation.ErrProviderFailure or generation.ErrMalformedOutput
func (g *Generator) Generate(ctx context.Context, req generation.Request) (*generation.Result, error) {
	log := logger.FromContextOrDefault(ctx, g.logger)

	if err := req.Validate(); err != nil {
		log.DebugContext(ctx, "rejected generation request", "error", err)
		return nil, err
	}

	prompt, err := g.prompts.Build(req.SourceText, req.CardCount, req.TargetLanguage)
	if err != nil {
		return nil, err
	}

	client, err := g.newClient(ctx, req.Credential)
	if err != nil {
		log.ErrorContext(ctx, "failed to create Gemini client", "error", err)
		return nil, mapProviderError(err)
	}

	log.InfoContext(ctx, "making Gemini API call",
		"model", g.model,
		"request", req,
		"prompt_length", len(prompt))

	start := time.Now()
	resp, err := client.GenerateContent(ctx, g.model, genai.Text(prompt), generateContentConfig())
	elapsed := time.Since(start)
	if err != nil {
		mapped := mapProviderError(err)
		log.WarnContext(ctx, "Gemini API call failed",
			"error", mapped,
			"duration_ms", elapsed.Milliseconds())
		return nil, mapped
	}

	text, err := responseText(resp)
	if err != nil {
		log.WarnContext(ctx, "Gemini API returned no usable content", "error", err)
		return nil, err
	}

	result, err := decodeResult(text)
	if err != nil {
		log.WarnContext(ctx, "failed to decode Gemini response",
			"error", err,
			"response_length", len(text),
			"looks_like_json_object", isJSONObject(text))
		return nil, err
	}

	log.InfoContext(ctx, "Gemini API call successful",
		"requested_cards", req.CardCount,
		"returned_cards", len(result.Cards),
		"response_length", len(text),
		"duration_ms", elapsed.Milliseconds())

	return result, nil
}
