// Package autofill drives repeated batch generation for one level until the
// bank holds a target number of items or the user stops it.
package autofill

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/abhisek/quizbank/internal/bank"
	"github.com/abhisek/quizbank/internal/generator"
	"github.com/abhisek/quizbank/internal/llm"
	"github.com/abhisek/quizbank/internal/quiz"
	"github.com/rs/zerolog"
)

// ErrAlreadyRunning is returned by Run while another run is active.
var ErrAlreadyRunning = errors.New("auto-fill is already running")

const (
	StatusTargetReached = "target reached"
	StatusStopped       = "stopped by user"
)

// State is the controller lifecycle.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateStopping
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	}
	return "idle"
}

// Generator produces one batch.
type Generator interface {
	GenerateBatch(ctx context.Context, cfg generator.Config, credential string) ([]quiz.QuizItem, error)
}

// Bank is the part of the question bank the loop needs.
type Bank interface {
	Count(level quiz.Level) int
	Merge(ctx context.Context, level quiz.Level, batch []quiz.QuizItem) (bank.MergeResult, error)
}

// Recorder counts batches by outcome ("merged", "no_new_items",
// "discarded" or an llm.Kind).
type Recorder interface {
	AutoFillBatch(outcome string)
}

// Config paces the loop.
type Config struct {
	BatchCap       int
	Pause          time.Duration
	RateLimitPause time.Duration
	OverloadPause  time.Duration
	ErrorPause     time.Duration
}

func DefaultConfig() Config {
	return Config{
		BatchCap:       10,
		Pause:          5 * time.Second,
		RateLimitPause: 60 * time.Second,
		OverloadPause:  10 * time.Second,
		ErrorPause:     5 * time.Second,
	}
}

// PauseFor returns the wait after a failed batch.
func (c Config) PauseFor(err error) time.Duration {
	switch llm.KindOf(err) {
	case llm.KindRateLimited:
		return c.RateLimitPause
	case llm.KindOverloaded:
		return c.OverloadPause
	}
	return c.ErrorPause
}

// Progress is a snapshot for display. It is not persisted.
type Progress struct {
	Level    quiz.Level
	Current  int
	Target   int
	Status   string
	Stopping bool

	// Remaining is the time left in the current pause, zero otherwise.
	Remaining time.Duration
}

// Reason tells why a run ended.
type Reason int

const (
	ReasonTargetReached Reason = iota
	ReasonStopped
)

func (r Reason) String() string {
	if r == ReasonStopped {
		return StatusStopped
	}
	return StatusTargetReached
}

// Result summarizes a finished run.
type Result struct {
	Level   quiz.Level
	Count   int
	Target  int
	Reason  Reason
	Batches int
	Added   int
}

// Deps are the collaborators of a Controller.
type Deps struct {
	Generator Generator
	Bank      Bank

	// Credential is read before every batch so a key entered mid-run is
	// picked up.
	Credential func(ctx context.Context) (string, error)

	Sleeper Sleeper
	Logger  zerolog.Logger
	Metrics Recorder
}

// Controller runs at most one auto-fill loop at a time.
type Controller struct {
	cfg  Config
	deps Deps

	mu     sync.Mutex
	state  State
	cancel context.CancelFunc
}

func New(cfg Config, deps Deps) *Controller {
	if cfg.BatchCap <= 0 {
		cfg.BatchCap = DefaultConfig().BatchCap
	}
	if deps.Sleeper == nil {
		deps.Sleeper = RealSleeper{}
	}
	deps.Logger = deps.Logger.With().Str("component", "autofill").Logger()
	return &Controller{cfg: cfg, deps: deps}
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Stop asks the active run to end at its next checkpoint. A call that is
// already in flight completes but its result is discarded.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateRunning {
		c.state = StateStopping
		c.cancel()
	}
}

func (c *Controller) stopping() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == StateStopping
}

// Run fills level up to target. Cancelling ctx has the same effect as Stop.
// report receives every progress snapshot and may be nil.
func (c *Controller) Run(ctx context.Context, level quiz.Level, target int, report func(Progress)) (Result, error) {
	if !level.Valid() {
		return Result{}, fmt.Errorf("auto-fill: unknown level %q", level)
	}

	c.mu.Lock()
	if c.state != StateIdle {
		c.mu.Unlock()
		return Result{}, ErrAlreadyRunning
	}
	runCtx, cancel := context.WithCancel(ctx)
	c.state, c.cancel = StateRunning, cancel
	c.mu.Unlock()

	defer func() {
		cancel()
		c.mu.Lock()
		c.state, c.cancel = StateIdle, nil
		c.mu.Unlock()
	}()

	r := &run{c: c, ctx: runCtx, level: level, target: target, report: report}
	res := r.loop()
	c.deps.Logger.Info().
		Str("level", string(level)).
		Int("count", res.Count).
		Int("target", target).
		Int("batches", res.Batches).
		Int("added", res.Added).
		Str("reason", res.Reason.String()).
		Msg("auto-fill finished")
	return res, nil
}

// run is the state of one Run call.
type run struct {
	c      *Controller
	ctx    context.Context
	level  quiz.Level
	target int
	report func(Progress)

	res Result
}

func (r *run) emit(status string, remaining time.Duration) {
	if r.report == nil {
		return
	}
	r.report(Progress{
		Level:     r.level,
		Current:   r.c.deps.Bank.Count(r.level),
		Target:    r.target,
		Status:    status,
		Stopping:  r.c.stopping() || r.ctx.Err() != nil,
		Remaining: remaining,
	})
}

func (r *run) finish(reason Reason) Result {
	r.res.Level = r.level
	r.res.Target = r.target
	r.res.Count = r.c.deps.Bank.Count(r.level)
	r.res.Reason = reason
	r.emit(reason.String(), 0)
	return r.res
}

func (r *run) loop() Result {
	cfg, deps := r.c.cfg, r.c.deps
	log := deps.Logger.With().Str("level", string(r.level)).Logger()

	for {
		if r.ctx.Err() != nil {
			return r.finish(ReasonStopped)
		}

		need := r.target - deps.Bank.Count(r.level)
		if need <= 0 {
			return r.finish(ReasonTargetReached)
		}
		n := min(need, cfg.BatchCap)
		r.emit(fmt.Sprintf("generating %d questions", n), 0)

		batch, err := r.generate(n)
		if r.ctx.Err() != nil {
			// The result of a call that outlived a stop request is dropped.
			r.record("discarded")
			return r.finish(ReasonStopped)
		}
		r.res.Batches++

		if err != nil {
			kind := llm.KindOf(err)
			r.record(kind.String())
			wait := cfg.PauseFor(err)
			log.Warn().Err(err).Str("kind", kind.String()).Dur("pause", wait).Msg("batch failed")
			if !r.countdown(failureStatus(kind, err), wait) {
				return r.finish(ReasonStopped)
			}
			continue
		}

		merged, err := deps.Bank.Merge(r.ctx, r.level, batch)
		r.res.Added += merged.Added
		status := fmt.Sprintf("added %d new, %d duplicates", merged.Added, merged.Skipped)
		switch {
		case err != nil:
			log.Warn().Err(err).Msg("batch merged in memory only")
			status += " (not saved: " + err.Error() + ")"
			r.record(llm.KindStorageWriteFailure.String())
		case merged.Added == 0:
			r.record("no_new_items")
		default:
			r.record("merged")
		}
		r.emit(status, 0)

		if deps.Bank.Count(r.level) >= r.target {
			continue
		}
		if !r.countdown("next batch", cfg.Pause) {
			return r.finish(ReasonStopped)
		}
	}
}

// generate runs one batch on a context detached from cancellation so a
// stop request never aborts a call halfway. The run's done channel rides
// along as the llm stop signal, so no retry starts after a stop.
func (r *run) generate(n int) ([]quiz.QuizItem, error) {
	deps := r.c.deps
	callCtx := llm.WithStop(context.WithoutCancel(r.ctx), r.ctx.Done())
	callCtx = llm.WithPurpose(callCtx, "autofill")

	var cred string
	if deps.Credential != nil {
		var err error
		if cred, err = deps.Credential(callCtx); err != nil {
			return nil, err
		}
	}
	return deps.Generator.GenerateBatch(callCtx, generator.Config{Level: r.level, Count: n}, cred)
}

// countdown pauses for d, reporting once per second. It returns false when
// the run was stopped during the pause.
func (r *run) countdown(status string, d time.Duration) bool {
	for remaining := d; remaining > 0; remaining -= time.Second {
		r.emit(fmt.Sprintf("%s in %ds", status, int((remaining+time.Second-1)/time.Second)), remaining)
		if err := r.c.deps.Sleeper.Sleep(r.ctx, min(remaining, time.Second)); err != nil {
			return false
		}
	}
	return r.ctx.Err() == nil
}

func (r *run) record(outcome string) {
	if r.c.deps.Metrics != nil {
		r.c.deps.Metrics.AutoFillBatch(outcome)
	}
}

func failureStatus(kind llm.Kind, err error) string {
	switch kind {
	case llm.KindRateLimited:
		return "rate limited, retrying"
	case llm.KindOverloaded:
		return "model overloaded, retrying"
	case llm.KindMissingCredential:
		return "API key is not set, retrying"
	}
	return fmt.Sprintf("error: %v; retrying", err)
}
