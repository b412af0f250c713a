package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/flashdeck/internal/generation"
)

// MockGenerator implements generation.Generator for testing
type MockGenerator struct {
	// GenerateFn allows test cases to mock the Generate behavior
	GenerateFn func(ctx context.Context, req generation.Request) (*generation.Result, error)

	// Default response values
	Result *generation.Result
	Err    error

	mu       sync.Mutex
	requests []generation.Request
}

var _ generation.Generator = (*MockGenerator)(nil)

// Generate implements the generation.Generator interface
func (m *MockGenerator) Generate(ctx context.Context, req generation.Request) (*generation.Result, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	if m.GenerateFn != nil {
		return m.GenerateFn(ctx, req)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Result == nil {
		return &generation.Result{}, nil
	}
	return m.Result, nil
}

// Requests returns a copy of every request received so far.
func (m *MockGenerator) Requests() []generation.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]generation.Request(nil), m.requests...)
}
