// Package metrics exposes Prometheus collectors for LLM calls, bank size
// and auto-fill batches.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/abhisek/quizbank/internal/quiz"
)

// Collector owns a private registry so several instances can coexist in
// one process.
type Collector struct {
	reg *prometheus.Registry

	llmRequests *prometheus.CounterVec
	llmLatency  *prometheus.HistogramVec
	bankItems   *prometheus.GaugeVec
	batches     *prometheus.CounterVec
}

func New() *Collector {
	c := &Collector{
		reg: prometheus.NewRegistry(),
		llmRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "quizbank_llm_requests_total",
			Help: "LLM requests by provider and outcome kind.",
		}, []string{"provider", "kind"}),
		llmLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "quizbank_llm_request_seconds",
			Help:    "LLM request latency.",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 40, 80},
		}, []string{"provider"}),
		bankItems: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "quizbank_bank_items",
			Help: "Saved questions per level.",
		}, []string{"level"}),
		batches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "quizbank_autofill_batches_total",
			Help: "Auto-fill batches by outcome.",
		}, []string{"outcome"}),
	}
	c.reg.MustRegister(
		c.llmRequests, c.llmLatency, c.bankItems, c.batches,
		collectors.NewGoCollector(),
	)
	return c
}

// ObserveLLMRequest records one attempt. outcome is "ok" or an error kind.
func (c *Collector) ObserveLLMRequest(provider, outcome string, latency time.Duration) {
	c.llmRequests.WithLabelValues(provider, outcome).Inc()
	c.llmLatency.WithLabelValues(provider).Observe(latency.Seconds())
}

func (c *Collector) AutoFillBatch(outcome string) {
	c.batches.WithLabelValues(outcome).Inc()
}

// BankChanged sets the per-level gauges. Levels missing from counts are
// reported as zero.
func (c *Collector) BankChanged(counts map[quiz.Level]int) {
	for _, l := range quiz.Levels() {
		c.bankItems.WithLabelValues(string(l)).Set(float64(counts[l]))
	}
}

func (c *Collector) Registry() *prometheus.Registry { return c.reg }

// Handler serves /metrics and /healthz.
func (c *Collector) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	mux.Handle("/metrics", promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{}))
	return mux
}

// Serve listens on addr until ctx is done.
func (c *Collector) Serve(ctx context.Context, addr string, logger zerolog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           c.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", addr).Msg("metrics server listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
