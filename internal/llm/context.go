package llm

import (
	"context"
	"errors"
)

type tagKey struct{}

// Tag labels a request in the event log and the debug log.
type Tag struct {
	// Purpose is "manual", "autofill" or "batch-gen".
	Purpose string
	// Level is the difficulty tier the request was made for.
	Level string
	// Batch groups the attempts of one batch generation.
	Batch string
}

// WithTag replaces the request tag. Empty fields of t keep the value
// already present in ctx.
func WithTag(ctx context.Context, t Tag) context.Context {
	cur := TagFrom(ctx)
	if t.Purpose != "" {
		cur.Purpose = t.Purpose
	}
	if t.Level != "" {
		cur.Level = t.Level
	}
	if t.Batch != "" {
		cur.Batch = t.Batch
	}
	return context.WithValue(ctx, tagKey{}, cur)
}

// WithPurpose sets only the purpose label.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return WithTag(ctx, Tag{Purpose: purpose})
}

func TagFrom(ctx context.Context) Tag {
	t, _ := ctx.Value(tagKey{}).(Tag)
	return t
}

// PurposeFrom returns the purpose label, "unknown" when unset.
func PurposeFrom(ctx context.Context) string {
	if p := TagFrom(ctx).Purpose; p != "" {
		return p
	}
	return "unknown"
}

type stopKey struct{}

// ErrStopped is returned when a stop signal fires before or between
// attempts.
var ErrStopped = errors.New("generation stopped")

// WithStop attaches a stop signal to a context whose own cancellation has
// been detached. The provider call in flight keeps running, but decorators
// make no new attempt once stop is closed.
func WithStop(ctx context.Context, stop <-chan struct{}) context.Context {
	return context.WithValue(ctx, stopKey{}, stop)
}

// StopFrom returns the stop signal, nil when none is attached.
func StopFrom(ctx context.Context) <-chan struct{} {
	stop, _ := ctx.Value(stopKey{}).(<-chan struct{})
	return stop
}

// Stopped reports whether the stop signal in ctx has fired.
func Stopped(ctx context.Context) bool {
	select {
	case <-StopFrom(ctx):
		return true
	default:
		return false
	}
}
