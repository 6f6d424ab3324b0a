package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int    // max results (0 = unlimited)
	Purpose string // exact match when non-empty
	Level   string // exact match when non-empty
	Batch   string // prefix match when non-empty
	After   int64  // id > After
	From    time.Time
	To      time.Time

	// FailedOnly keeps unsuccessful attempts.
	FailedOnly bool
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	Level        string
	BatchID      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorKind    string
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a stored LLM request event.
type LLMEvent struct {
	ID        int
	Timestamp time.Time
	LLMRequestEventData
}

// PurposeUsage aggregates token usage for one purpose.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates token usage for one model, for cost estimates.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// LevelOutcome counts attempts and failures for one difficulty level.
// Levels are as recorded; requests without a level report "".
type LevelOutcome struct {
	Level        string
	Calls        int
	Failures     int
	Batches      int
	AvgLatencyMs int64

	// FailuresByKind maps an error kind to its count.
	FailuresByKind map[string]int
}

// EventRepo provides append and query access to the LLM request log.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns nil when the event does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error)

	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)
	LLMOutcomesByLevel(ctx context.Context) ([]LevelOutcome, error)
}

// NopEventRepo discards events. Backends without an event log use it.
type NopEventRepo struct{}

func (NopEventRepo) AppendLLMRequest(context.Context, LLMRequestEventData) error { return nil }

func (NopEventRepo) QueryLLMEvents(context.Context, QueryOpts) ([]LLMEvent, error) {
	return nil, nil
}

func (NopEventRepo) GetLLMEvent(context.Context, int) (*LLMEvent, error) { return nil, nil }

func (NopEventRepo) LLMUsageByPurpose(context.Context) ([]PurposeUsage, error) { return nil, nil }

func (NopEventRepo) LLMUsageByModel(context.Context) ([]ModelUsage, error) { return nil, nil }

func (NopEventRepo) LLMOutcomesByLevel(context.Context) ([]LevelOutcome, error) { return nil, nil }
