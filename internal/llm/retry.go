package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"regexp"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

// retryHintPattern matches the wait hint some providers embed in error
// text, e.g. "Please retry in 3.5s."
var retryHintPattern = regexp.MustCompile(`(?i)retry in (\d+(?:\.\d+)?)s`)

// RetryConfig configures the retry decorator.
type RetryConfig struct {
	// MaxRetries is the number of attempts allowed after the first one.
	MaxRetries int `env:"QUIZBANK_MAX_RETRIES" envDefault:"5"`

	Policy RetryPolicy
}

// RetryPolicy computes how long to wait before the next attempt.
type RetryPolicy struct {
	// Base is multiplied by 2^attempt.
	Base time.Duration `env:"QUIZBANK_RETRY_BASE" envDefault:"1s"`

	// MaxJitter bounds the uniform random delay added to the exponential
	// schedule.
	MaxJitter time.Duration `env:"QUIZBANK_RETRY_JITTER" envDefault:"1s"`

	// HintBuffer is added on top of a server supplied wait hint.
	HintBuffer time.Duration `env:"QUIZBANK_RETRY_HINT_BUFFER" envDefault:"1s"`
}

// DefaultRetryConfig matches the documented schedule: 5 retries,
// 2^attempt seconds plus up to one second of jitter, server hints plus one
// second.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries: 5,
		Policy: RetryPolicy{
			Base:       time.Second,
			MaxJitter:  time.Second,
			HintBuffer: time.Second,
		},
	}
}

// Wait returns the delay after the given 0-based failed attempt. A
// "retry in <n>s" hint in the error text takes precedence over the
// exponential schedule.
func (p RetryPolicy) Wait(attempt int, lastErr error) time.Duration {
	if hint, ok := ServerRetryHint(lastErr); ok {
		return hint + p.HintBuffer
	}

	var rl *ErrRateLimit
	if errors.As(lastErr, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter + p.HintBuffer
	}

	wait := time.Duration(float64(p.Base) * math.Pow(2, float64(attempt)))
	if p.MaxJitter > 0 {
		wait += time.Duration(rand.Int64N(int64(p.MaxJitter)))
	}
	return wait
}

// ServerRetryHint extracts the "retry in <n>s" duration from err's message.
func ServerRetryHint(err error) (time.Duration, bool) {
	if err == nil {
		return 0, false
	}
	m := retryHintPattern.FindStringSubmatch(err.Error())
	if m == nil {
		return 0, false
	}
	secs, perr := strconv.ParseFloat(m[1], 64)
	if perr != nil {
		return 0, false
	}
	return time.Duration(secs * float64(time.Second)), true
}

// RetryProvider is a decorator that retries rate-limit and overload errors.
type RetryProvider struct {
	inner  Provider
	config RetryConfig
	logger zerolog.Logger
}

// WithRetry wraps a Provider with retry logic.
func WithRetry(p Provider, cfg RetryConfig, logger zerolog.Logger) Provider {
	return &RetryProvider{
		inner:  p,
		config: cfg,
		logger: logger.With().Str("component", "llm_retry").Logger(),
	}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	var lastErr error

	stop := StopFrom(ctx)

	for attempt := 0; attempt <= r.config.MaxRetries; attempt++ {
		if Stopped(ctx) {
			r.logger.Debug().Int("attempt", attempt+1).Msg("stop requested, not retrying")
			return nil, ErrStopped
		}

		resp, err := r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if !shouldRetry(err) {
			return nil, err
		}

		// No sleep after the final attempt.
		if attempt == r.config.MaxRetries {
			break
		}

		wait := r.config.Policy.Wait(attempt, err)
		r.logger.Warn().
			Err(err).
			Int("attempt", attempt+1).
			Dur("wait", wait).
			Str("kind", KindOf(err).String()).
			Msg("retrying generation")

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-stop:
			timer.Stop()
			return nil, ErrStopped
		case <-timer.C:
		}
	}

	if lastErr == nil {
		return nil, ErrRetriesExhausted
	}
	return nil, lastErr
}

func (r *RetryProvider) ModelID() string {
	return r.inner.ModelID()
}

// shouldRetry reports whether err is transient.
func shouldRetry(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return KindOf(err).Retryable()
}
