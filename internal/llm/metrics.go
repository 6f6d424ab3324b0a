package llm

import (
	"context"
	"time"
)

// Recorder receives one observation per provider attempt. Outcome is "ok"
// or the Kind of the failure.
type Recorder interface {
	ObserveLLMRequest(provider, outcome string, latency time.Duration)
}

type metricsProvider struct {
	inner    Provider
	provider string
	rec      Recorder
}

// WithMetrics wraps a Provider so every attempt is reported to rec.
func WithMetrics(p Provider, provider string, rec Recorder) Provider {
	return &metricsProvider{inner: p, provider: provider, rec: rec}
}

func (m *metricsProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := m.inner.Generate(ctx, req)
	outcome := "ok"
	if err != nil {
		outcome = KindOf(err).String()
	}
	m.rec.ObserveLLMRequest(m.provider, outcome, time.Since(start))
	return resp, err
}

func (m *metricsProvider) ModelID() string {
	return m.inner.ModelID()
}
