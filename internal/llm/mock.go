package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockResponse is one scripted answer: either content or an error.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockProvider serves scripted responses in order, then defers to
// Fallback. It backs the "mock" provider and the tests of everything
// above the provider boundary.
type MockProvider struct {
	// Fallback answers once the script is exhausted. Without one the
	// provider reports itself unavailable.
	Fallback func(req Request) MockResponse

	// Calls records every request received, in order.
	Calls []Request

	mu     sync.Mutex
	script []MockResponse
}

func NewMockProvider(script ...MockResponse) *MockProvider {
	return &MockProvider{script: script}
}

func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	r, ok := m.next(req)
	if !ok {
		return nil, &ErrProviderUnavailable{}
	}
	if r.Err != nil {
		return nil, r.Err
	}
	return &Response{Content: r.Content, Usage: r.Usage, Model: "mock", StopReason: "end"}, nil
}

func (m *MockProvider) next(req Request) (MockResponse, bool) {
	m.mu.Lock()
	m.Calls = append(m.Calls, req)
	if len(m.script) > 0 {
		r := m.script[0]
		m.script = m.script[1:]
		m.mu.Unlock()
		return r, true
	}
	fallback := m.Fallback
	m.mu.Unlock()

	if fallback == nil {
		return MockResponse{}, false
	}
	return fallback(req), true
}

func (m *MockProvider) ModelID() string { return "mock" }

// AddResponse appends r to the script.
func (m *MockProvider) AddResponse(r MockResponse) {
	m.mu.Lock()
	m.script = append(m.script, r)
	m.mu.Unlock()
}

func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
