package gemini

import (
	"context"
	"fmt"
	"net/http"

	"google.golang.org/genai"
)

// ModelClient is the subset of the genai Models service used by Generator.
// *genai.Models satisfies it.
type ModelClient interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// ClientFactory returns a ModelClient authorized with apiKey. Each call must
// return an independent handle so that no credential is shared between calls.
type ClientFactory func(ctx context.Context, apiKey string) (ModelClient, error)

// NewClientFactory returns a ClientFactory backed by genai.NewClient using the
// Gemini API backend. The HTTP client only pools connections; the API key is
// held by each genai client. A nil httpClient lets genai create its own.
func NewClientFactory(httpClient *http.Client) ClientFactory {
	return func(ctx context.Context, apiKey string) (ModelClient, error) {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:     apiKey,
			Backend:    genai.BackendGeminiAPI,
			HTTPClient: httpClient,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		return client.Models, nil
	}
}
