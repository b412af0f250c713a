package gemini_test

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/phrazzld/flashdeck/internal/platform/gemini"
	"google.golang.org/genai"
)

// recordedCall captures one GenerateContent invocation.
type recordedCall struct {
	APIKey string
	Model  string
	Prompt string
	Config *genai.GenerateContentConfig
}

// fakeModelClient is bound to the API key it was created with, like a real
// genai client, and answers with a canned response.
type fakeModelClient struct {
	apiKey  string
	respond func(call recordedCall) (*genai.GenerateContentResponse, error)
	record  func(call recordedCall)
}

func (c *fakeModelClient) GenerateContent(
	ctx context.Context,
	model string,
	contents []*genai.Content,
	config *genai.GenerateContentConfig,
) (*genai.GenerateContentResponse, error) {
	call := recordedCall{APIKey: c.apiKey, Model: model, Config: config}
	for _, content := range contents {
		for _, part := range content.Parts {
			call.Prompt += part.Text
		}
	}
	c.record(call)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return c.respond(call)
}

// fakeProvider hands out fakeModelClients and records every call made through them.
type fakeProvider struct {
	mu        sync.Mutex
	calls     []recordedCall
	factories atomic.Int32
	respond   func(call recordedCall) (*genai.GenerateContentResponse, error)
}

func newFakeProvider(respond func(call recordedCall) (*genai.GenerateContentResponse, error)) *fakeProvider {
	return &fakeProvider{respond: respond}
}

func (p *fakeProvider) Factory() gemini.ClientFactory {
	return func(_ context.Context, apiKey string) (gemini.ModelClient, error) {
		p.factories.Add(1)
		return &fakeModelClient{apiKey: apiKey, respond: p.respond, record: p.record}, nil
	}
}

func (p *fakeProvider) record(call recordedCall) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, call)
}

func (p *fakeProvider) Calls() []recordedCall {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]recordedCall, len(p.calls))
	copy(out, p.calls)
	return out
}

// textResponse builds a single-candidate response carrying text.
func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{
				Content: &genai.Content{
					Role:  "model",
					Parts: []*genai.Part{{Text: text}},
				},
				FinishReason: genai.FinishReasonStop,
			},
		},
	}
}

func staticText(text string) func(recordedCall) (*genai.GenerateContentResponse, error) {
	return func(recordedCall) (*genai.GenerateContentResponse, error) {
		return textResponse(text), nil
	}
}
