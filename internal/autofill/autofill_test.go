package autofill

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/abhisek/quizbank/internal/bank"
	"github.com/abhisek/quizbank/internal/generator"
	"github.com/abhisek/quizbank/internal/llm"
	"github.com/abhisek/quizbank/internal/quiz"
	"github.com/abhisek/quizbank/internal/store"
	"github.com/rs/zerolog"
)

// fakeGenerator returns unique items unless a scripted error is queued.
type fakeGenerator struct {
	mu     sync.Mutex
	counts []int
	errs   []error
	seq    int

	// onCall runs inside GenerateBatch with the 1-based call number.
	onCall func(call int)
}

func (g *fakeGenerator) GenerateBatch(ctx context.Context, cfg generator.Config, credential string) ([]quiz.QuizItem, error) {
	g.mu.Lock()
	g.counts = append(g.counts, cfg.Count)
	call := len(g.counts)
	var err error
	if len(g.errs) > 0 {
		err, g.errs = g.errs[0], g.errs[1:]
	}
	g.mu.Unlock()

	if g.onCall != nil {
		g.onCall(call)
	}
	if err != nil {
		return nil, err
	}

	items := make([]quiz.QuizItem, cfg.Count)
	for i := range items {
		g.mu.Lock()
		g.seq++
		n := g.seq
		g.mu.Unlock()
		items[i] = quiz.QuizItem{ID: quiz.NewID(), Level: cfg.Level, Question: fmt.Sprintf("q%d", n)}
	}
	return items, nil
}

func (g *fakeGenerator) calls() []int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]int(nil), g.counts...)
}

// fakeSleeper records pauses without waiting.
type fakeSleeper struct {
	mu    sync.Mutex
	total time.Duration
	// onSleep may cancel the run.
	onSleep func(total time.Duration)
}

func (s *fakeSleeper) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	s.total += d
	total := s.total
	s.mu.Unlock()
	if s.onSleep != nil {
		s.onSleep(total)
	}
	return ctx.Err()
}

type recorder struct {
	mu       sync.Mutex
	outcomes []string
}

func (r *recorder) AutoFillBatch(outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, outcome)
}

func newController(t *testing.T, gen Generator, sleeper Sleeper, cap int) (*Controller, *bank.Bank, *store.MemoryKV) {
	t.Helper()
	kv := store.NewMemoryKV()
	b := bank.Load(context.Background(), kv, cap, zerolog.Nop())
	c := New(DefaultConfig(), Deps{
		Generator:  gen,
		Bank:       b,
		Credential: func(context.Context) (string, error) { return "key", nil },
		Sleeper:    sleeper,
		Logger:     zerolog.Nop(),
	})
	return c, b, kv
}

func TestRun_ReachesTargetInCappedBatches(t *testing.T) {
	gen := &fakeGenerator{}
	c, b, _ := newController(t, gen, &fakeSleeper{}, 1000)

	var reports []Progress
	res, err := c.Run(context.Background(), quiz.LevelBeginner, 15, func(p Progress) {
		reports = append(reports, p)
	})
	if err != nil {
		t.Fatal(err)
	}

	if calls := gen.calls(); len(calls) != 2 || calls[0] != 10 || calls[1] != 5 {
		t.Fatalf("batch sizes = %v, want [10 5]", calls)
	}
	if res.Reason != ReasonTargetReached || res.Count != 15 || b.Count(quiz.LevelBeginner) != 15 {
		t.Fatalf("unexpected result %+v", res)
	}
	last := reports[len(reports)-1]
	if last.Status != StatusTargetReached || last.Current != 15 || last.Target != 15 {
		t.Errorf("last report = %+v", last)
	}
	if c.State() != StateIdle {
		t.Errorf("state after run = %s", c.State())
	}
}

func TestRun_AlreadyAtTarget(t *testing.T) {
	gen := &fakeGenerator{}
	c, b, _ := newController(t, gen, &fakeSleeper{}, 1000)
	b.Merge(context.Background(), quiz.LevelExpert, []quiz.QuizItem{{Question: "a"}, {Question: "b"}})

	res, _ := c.Run(context.Background(), quiz.LevelExpert, 2, nil)
	if res.Reason != ReasonTargetReached || len(gen.calls()) != 0 {
		t.Fatalf("expected no calls, got %v (%+v)", gen.calls(), res)
	}
}

func TestRun_PausesByErrorKind(t *testing.T) {
	gen := &fakeGenerator{errs: []error{
		&llm.ErrRateLimit{Err: errors.New("quota")},
		&llm.ErrOverloaded{Err: errors.New("503")},
		&llm.ErrInvalidResponse{Err: errors.New("not an array")},
	}}
	sleeper := &fakeSleeper{}
	rec := &recorder{}
	c, _, _ := newController(t, gen, sleeper, 1000)
	c.deps.Metrics = rec

	var statuses []string
	res, err := c.Run(context.Background(), quiz.LevelBeginner, 3, func(p Progress) {
		statuses = append(statuses, p.Status)
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Reason != ReasonTargetReached || res.Count != 3 {
		t.Fatalf("the loop must keep going after failures: %+v", res)
	}
	if want := 60*time.Second + 10*time.Second + 5*time.Second; sleeper.total != want {
		t.Errorf("total pause = %s, want %s", sleeper.total, want)
	}
	if !containsPrefix(statuses, "rate limited, retrying in 60s") {
		t.Errorf("missing rate-limit countdown in %v", statuses)
	}
	want := []string{"rate_limited", "overloaded", "invalid_response_format", "merged"}
	if strings.Join(rec.outcomes, ",") != strings.Join(want, ",") {
		t.Errorf("outcomes = %v, want %v", rec.outcomes, want)
	}
}

func TestRun_CountdownReportsEachSecond(t *testing.T) {
	gen := &fakeGenerator{}
	c, _, _ := newController(t, gen, &fakeSleeper{}, 1000)
	c.cfg.BatchCap = 1

	var remaining []time.Duration
	c.Run(context.Background(), quiz.LevelBeginner, 2, func(p Progress) {
		if p.Remaining > 0 {
			remaining = append(remaining, p.Remaining)
		}
	})
	want := []time.Duration{5 * time.Second, 4 * time.Second, 3 * time.Second, 2 * time.Second, time.Second}
	if fmt.Sprint(remaining) != fmt.Sprint(want) {
		t.Errorf("countdown = %v, want %v", remaining, want)
	}
}

func TestRun_StopDuringPause(t *testing.T) {
	gen := &fakeGenerator{}
	sleeper := &fakeSleeper{}
	c, b, _ := newController(t, gen, sleeper, 1000)
	sleeper.onSleep = func(total time.Duration) {
		if total == 2*time.Second {
			c.Stop()
		}
	}

	var last Progress
	res, _ := c.Run(context.Background(), quiz.LevelBeginner, 100, func(p Progress) { last = p })

	if len(gen.calls()) != 1 {
		t.Fatalf("expected exactly one call before the stop, got %d", len(gen.calls()))
	}
	if res.Reason != ReasonStopped || b.Count(quiz.LevelBeginner) != 10 {
		t.Fatalf("unexpected result %+v", res)
	}
	if last.Status != StatusStopped || !last.Stopping {
		t.Errorf("last report = %+v", last)
	}
}

func TestRun_StopDuringCallDiscardsResult(t *testing.T) {
	gen := &fakeGenerator{}
	c, b, _ := newController(t, gen, &fakeSleeper{}, 1000)
	gen.onCall = func(call int) {
		if call == 2 {
			c.Stop()
		}
	}

	res, _ := c.Run(context.Background(), quiz.LevelBeginner, 100, nil)
	if len(gen.calls()) != 2 {
		t.Fatalf("expected 2 calls, got %d", len(gen.calls()))
	}
	if b.Count(quiz.LevelBeginner) != 10 || res.Count != 10 {
		t.Fatalf("in-flight batch must be discarded, count = %d", b.Count(quiz.LevelBeginner))
	}
}

func TestRun_StopDuringRetryWaitMakesNoNewCalls(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.Fallback = func(llm.Request) llm.MockResponse {
		return llm.MockResponse{Err: &llm.ErrRateLimit{Err: errors.New("429 please retry in 0.3s")}}
	}
	retrying := llm.WithRetry(mock, llm.RetryConfig{MaxRetries: 5}, zerolog.Nop())
	gen := generator.New(func(context.Context, string) (llm.Provider, error) {
		return retrying, nil
	}, zerolog.Nop())
	c, b, _ := newController(t, gen, RealSleeper{}, 1000)

	time.AfterFunc(100*time.Millisecond, c.Stop)

	done := make(chan Result, 1)
	go func() {
		res, _ := c.Run(context.Background(), quiz.LevelBeginner, 10, nil)
		done <- res
	}()

	var res Result
	select {
	case res = <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("run did not end after stop")
	}
	if res.Reason != ReasonStopped || b.Count(quiz.LevelBeginner) != 0 {
		t.Fatalf("unexpected result %+v", res)
	}

	calls := mock.CallCount()
	time.Sleep(500 * time.Millisecond)
	if calls != 1 || mock.CallCount() != calls {
		t.Fatalf("calls = %d then %d, want 1 and none after stop", calls, mock.CallCount())
	}
}

func TestRun_ParentCancelReportsStopping(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gen := &fakeGenerator{}
	sleeper := &fakeSleeper{onSleep: func(time.Duration) { cancel() }}
	c, _, _ := newController(t, gen, sleeper, 1000)

	var last Progress
	res, _ := c.Run(ctx, quiz.LevelBeginner, 100, func(p Progress) { last = p })
	if res.Reason != ReasonStopped {
		t.Fatalf("unexpected result %+v", res)
	}
	if last.Status != StatusStopped || !last.Stopping {
		t.Errorf("last report = %+v, want stopping", last)
	}
}

func TestRun_ParentContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	gen := &fakeGenerator{}
	c, _, _ := newController(t, gen, &fakeSleeper{}, 1000)
	res, _ := c.Run(ctx, quiz.LevelBeginner, 5, nil)
	if res.Reason != ReasonStopped || len(gen.calls()) != 0 {
		t.Fatalf("cancelled run must not call the generator: %+v", res)
	}
}

func TestRun_AlreadyRunning(t *testing.T) {
	gen := &fakeGenerator{}
	c, _, _ := newController(t, gen, &fakeSleeper{}, 1000)

	var second error
	gen.onCall = func(int) {
		_, second = c.Run(context.Background(), quiz.LevelExpert, 1, nil)
	}
	c.Run(context.Background(), quiz.LevelBeginner, 1, nil)
	if !errors.Is(second, ErrAlreadyRunning) {
		t.Fatalf("expected ErrAlreadyRunning, got %v", second)
	}
}

func TestRun_NoNewItemsKeepsLooping(t *testing.T) {
	dup := &dupGenerator{}
	sleeper := &fakeSleeper{}
	c, _, _ := newController(t, dup, sleeper, 1000)
	sleeper.onSleep = func(total time.Duration) {
		if total >= 15*time.Second {
			c.Stop()
		}
	}

	res, _ := c.Run(context.Background(), quiz.LevelBeginner, 5, nil)
	if res.Count != 1 || dup.calls < 3 {
		t.Fatalf("expected repeated attempts with no progress, got %+v after %d calls", res, dup.calls)
	}
}

// dupGenerator always returns the same question.
type dupGenerator struct{ calls int }

func (d *dupGenerator) GenerateBatch(_ context.Context, cfg generator.Config, _ string) ([]quiz.QuizItem, error) {
	d.calls++
	return []quiz.QuizItem{{Level: cfg.Level, Question: "same"}}, nil
}

func TestRun_StorageFailureDoesNotStop(t *testing.T) {
	gen := &fakeGenerator{}
	c, b, kv := newController(t, gen, &fakeSleeper{}, 1000)
	kv.FailWrites = true

	var statuses []string
	res, _ := c.Run(context.Background(), quiz.LevelBeginner, 12, func(p Progress) {
		statuses = append(statuses, p.Status)
	})
	if res.Reason != ReasonTargetReached || b.Count(quiz.LevelBeginner) != 12 {
		t.Fatalf("unexpected result %+v", res)
	}
	if !containsPrefix(statuses, "added 10 new, 0 duplicates (not saved") {
		t.Errorf("expected storage warning in %v", statuses)
	}
}

func TestPauseFor(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		err  error
		want time.Duration
	}{
		{&llm.ErrRateLimit{}, 60 * time.Second},
		{errors.New("googleapi: Error 429: RESOURCE_EXHAUSTED"), 60 * time.Second},
		{&llm.ErrOverloaded{}, 10 * time.Second},
		{llm.ErrEmptyResponse, 5 * time.Second},
		{errors.New("boom"), 5 * time.Second},
	}
	for _, tt := range tests {
		if got := cfg.PauseFor(tt.err); got != tt.want {
			t.Errorf("PauseFor(%v) = %s, want %s", tt.err, got, tt.want)
		}
	}
}

func containsPrefix(list []string, prefix string) bool {
	for _, s := range list {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}
