package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/abhisek/quizbank/ent"
	"github.com/abhisek/quizbank/ent/llmrequestevent"
	"github.com/abhisek/quizbank/ent/predicate"
)

// eventRepo implements EventRepo on the ent client.
type eventRepo struct {
	client *ent.Client
	seq    *sequenceCounter
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	seq, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}
	_, err = r.client.LLMRequestEvent.Create().
		SetSequence(seq).
		SetTimestamp(time.Now().UTC()).
		SetProvider(data.Provider).
		SetModel(data.Model).
		SetPurpose(data.Purpose).
		SetLevel(data.Level).
		SetBatchID(data.BatchID).
		SetInputTokens(data.InputTokens).
		SetOutputTokens(data.OutputTokens).
		SetLatencyMs(data.LatencyMs).
		SetSuccess(data.Success).
		SetErrorKind(data.ErrorKind).
		SetErrorMessage(data.ErrorMessage).
		SetRequestBody(data.RequestBody).
		SetResponseBody(data.ResponseBody).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error) {
	var where []predicate.LLMRequestEvent
	if opts.Purpose != "" {
		where = append(where, llmrequestevent.PurposeEQ(opts.Purpose))
	}
	if opts.Level != "" {
		where = append(where, llmrequestevent.LevelEQ(opts.Level))
	}
	if opts.Batch != "" {
		where = append(where, llmrequestevent.BatchIDHasPrefix(opts.Batch))
	}
	if opts.FailedOnly {
		where = append(where, llmrequestevent.Success(false))
	}
	if opts.After > 0 {
		where = append(where, llmrequestevent.IDGT(int(opts.After)))
	}
	if !opts.From.IsZero() {
		where = append(where, llmrequestevent.TimestampGTE(opts.From.UTC()))
	}
	if !opts.To.IsZero() {
		where = append(where, llmrequestevent.TimestampLTE(opts.To.UTC()))
	}

	q := r.client.LLMRequestEvent.Query().
		Where(where...).
		Order(llmrequestevent.ByID(entsql.OrderDesc()))
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}

	rows, err := q.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query LLM events: %w", err)
	}
	events := make([]LLMEvent, 0, len(rows))
	for _, row := range rows {
		events = append(events, toLLMEvent(row))
	}
	return events, nil
}

func (r *eventRepo) GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error) {
	row, err := r.client.LLMRequestEvent.Get(ctx, id)
	if ent.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get LLM event %d: %w", id, err)
	}
	e := toLLMEvent(row)
	return &e, nil
}

// usageRow is the scan target shared by the group-by aggregates.
type usageRow struct {
	Purpose      string  `json:"purpose"`
	Model        string  `json:"model"`
	Level        string  `json:"level"`
	ErrorKind    string  `json:"error_kind"`
	Calls        int     `json:"calls"`
	InputTokens  int     `json:"input_tokens"`
	OutputTokens int     `json:"output_tokens"`
	AvgLatency   float64 `json:"avg_latency"`
	Failures     int     `json:"failures"`
	Batches      int     `json:"batches"`
}

var (
	aggCalls        = ent.As(ent.Count(), "calls")
	aggInputTokens  = ent.As(ent.Sum(llmrequestevent.FieldInputTokens), "input_tokens")
	aggOutputTokens = ent.As(ent.Sum(llmrequestevent.FieldOutputTokens), "output_tokens")
	aggAvgLatency   = ent.As(ent.Mean(llmrequestevent.FieldLatencyMs), "avg_latency")
)

// aggFailures counts unsuccessful attempts in the group.
func aggFailures(s *entsql.Selector) string {
	return entsql.As(
		fmt.Sprintf("SUM(CASE WHEN %s THEN 0 ELSE 1 END)", s.C(llmrequestevent.FieldSuccess)),
		"failures")
}

// aggBatches counts distinct non-empty batch ids in the group.
func aggBatches(s *entsql.Selector) string {
	return entsql.As(
		entsql.Count(entsql.Distinct(fmt.Sprintf("NULLIF(%s, '')", s.C(llmrequestevent.FieldBatchID)))),
		"batches")
}

func (r *eventRepo) LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error) {
	var rows []usageRow
	err := r.client.LLMRequestEvent.Query().
		Order(llmrequestevent.ByPurpose()).
		GroupBy(llmrequestevent.FieldPurpose).
		Aggregate(aggCalls, aggInputTokens, aggOutputTokens, aggAvgLatency).
		Scan(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("usage by purpose: %w", err)
	}
	out := make([]PurposeUsage, 0, len(rows))
	for _, row := range rows {
		out = append(out, PurposeUsage{
			Purpose:      row.Purpose,
			Calls:        row.Calls,
			InputTokens:  row.InputTokens,
			OutputTokens: row.OutputTokens,
			AvgLatencyMs: int64(row.AvgLatency),
		})
	}
	return out, nil
}

func (r *eventRepo) LLMUsageByModel(ctx context.Context) ([]ModelUsage, error) {
	var rows []usageRow
	err := r.client.LLMRequestEvent.Query().
		Order(llmrequestevent.ByModel()).
		GroupBy(llmrequestevent.FieldModel).
		Aggregate(aggCalls, aggInputTokens, aggOutputTokens).
		Scan(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("usage by model: %w", err)
	}
	out := make([]ModelUsage, 0, len(rows))
	for _, row := range rows {
		out = append(out, ModelUsage{
			Model:        row.Model,
			Calls:        row.Calls,
			InputTokens:  row.InputTokens,
			OutputTokens: row.OutputTokens,
		})
	}
	return out, nil
}

func (r *eventRepo) LLMOutcomesByLevel(ctx context.Context) ([]LevelOutcome, error) {
	var rows []usageRow
	err := r.client.LLMRequestEvent.Query().
		Order(llmrequestevent.ByLevel()).
		GroupBy(llmrequestevent.FieldLevel).
		Aggregate(aggCalls, aggFailures, aggBatches, aggAvgLatency).
		Scan(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("outcomes by level: %w", err)
	}
	out := make([]LevelOutcome, 0, len(rows))
	index := make(map[string]int, len(rows))
	for _, row := range rows {
		index[row.Level] = len(out)
		out = append(out, LevelOutcome{
			Level:          row.Level,
			Calls:          row.Calls,
			Failures:       row.Failures,
			Batches:        row.Batches,
			AvgLatencyMs:   int64(row.AvgLatency),
			FailuresByKind: map[string]int{},
		})
	}

	var kinds []usageRow
	err = r.client.LLMRequestEvent.Query().
		Where(llmrequestevent.Success(false)).
		GroupBy(llmrequestevent.FieldLevel, llmrequestevent.FieldErrorKind).
		Aggregate(aggCalls).
		Scan(ctx, &kinds)
	if err != nil {
		return nil, fmt.Errorf("failures by kind: %w", err)
	}
	for _, k := range kinds {
		kind := k.ErrorKind
		if kind == "" {
			kind = "unknown"
		}
		if i, ok := index[k.Level]; ok {
			out[i].FailuresByKind[kind] += k.Calls
		}
	}
	return out, nil
}

func toLLMEvent(e *ent.LLMRequestEvent) LLMEvent {
	return LLMEvent{
		ID:        e.ID,
		Timestamp: e.Timestamp,
		LLMRequestEventData: LLMRequestEventData{
			Provider:     e.Provider,
			Model:        e.Model,
			Purpose:      e.Purpose,
			Level:        e.Level,
			BatchID:      e.BatchID,
			InputTokens:  e.InputTokens,
			OutputTokens: e.OutputTokens,
			LatencyMs:    e.LatencyMs,
			Success:      e.Success,
			ErrorKind:    e.ErrorKind,
			ErrorMessage: e.ErrorMessage,
			RequestBody:  e.RequestBody,
			ResponseBody: e.ResponseBody,
		},
	}
}
