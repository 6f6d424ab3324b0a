// Package trivia is the application root: it owns the question bank, the
// generation client and the auto-fill controller, and lets at most one
// generation run at a time.
package trivia

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"

	"github.com/abhisek/quizbank/internal/autofill"
	"github.com/abhisek/quizbank/internal/bank"
	"github.com/abhisek/quizbank/internal/config"
	"github.com/abhisek/quizbank/internal/generator"
	"github.com/abhisek/quizbank/internal/llm"
	"github.com/abhisek/quizbank/internal/quiz"
	"github.com/abhisek/quizbank/internal/session"
	"github.com/abhisek/quizbank/internal/store"
)

// ErrBusy is returned when a generation or auto-fill is already running.
var ErrBusy = errors.New("another generation is in progress")

// offlineCredential satisfies the credential check for the mock provider.
const offlineCredential = "offline"

// Metrics is implemented by metrics.Collector.
type Metrics interface {
	llm.Recorder
	autofill.Recorder
	bank.Observer
}

// Deps are the collaborators handed in by the command layer.
type Deps struct {
	KV     store.KV
	Events store.EventRepo
	Logger zerolog.Logger

	// Metrics may be nil.
	Metrics Metrics

	// Factory overrides provider construction. Nil builds providers from
	// the LLM config.
	Factory generator.ProviderFactory

	// Sleeper overrides the auto-fill pause clock.
	Sleeper autofill.Sleeper
}

// Batch is the outcome of one manual generation.
type Batch struct {
	Level quiz.Level

	// Items is the full generated batch, duplicates included, in the order
	// the model returned it.
	Items []quiz.QuizItem
	Merge bank.MergeResult

	// SaveErr is set when the bank kept the batch in memory but could not
	// persist it.
	SaveErr error
}

type Service struct {
	cfg    *config.Config
	bank   *bank.Bank
	gen    *generator.Client
	fill   *autofill.Controller
	sem    *semaphore.Weighted
	logger zerolog.Logger
}

// New loads the bank from deps.KV and wires the generator and auto-fill
// controller.
func New(ctx context.Context, cfg *config.Config, deps Deps) *Service {
	logger := deps.Logger.With().Str("component", "trivia").Logger()

	b := bank.Load(ctx, deps.KV, cfg.Bank.Cap, deps.Logger)

	factory := deps.Factory
	if factory == nil {
		opts := llm.Options{
			Logger:       deps.Logger,
			Events:       deps.Events,
			MockFallback: generator.Synthetic(),
		}
		if deps.Metrics != nil {
			opts.Metrics = deps.Metrics
		}
		llmCfg := cfg.LLM
		factory = func(ctx context.Context, credential string) (llm.Provider, error) {
			return llm.NewProvider(ctx, llmCfg, credential, opts)
		}
	}
	gen := generator.New(factory, deps.Logger)

	s := &Service{
		cfg:    cfg,
		bank:   b,
		gen:    gen,
		sem:    semaphore.NewWeighted(1),
		logger: logger,
	}

	afDeps := autofill.Deps{
		Generator:  gen,
		Bank:       b,
		Credential: s.Credential,
		Sleeper:    deps.Sleeper,
		Logger:     deps.Logger,
	}
	if deps.Metrics != nil {
		afDeps.Metrics = deps.Metrics
		b.SetObserver(deps.Metrics)
	}
	s.fill = autofill.New(autofill.Config{
		BatchCap:       cfg.AutoFill.BatchSize,
		Pause:          cfg.AutoFill.Pause,
		RateLimitPause: cfg.AutoFill.RateLimitPause,
		OverloadPause:  cfg.AutoFill.OverloadPause,
		ErrorPause:     cfg.AutoFill.ErrorPause,
	}, afDeps)

	return s
}

func (s *Service) Bank() *bank.Bank { return s.bank }

// Credential returns the API key to use: the stored key, then the
// provider's environment variable. The mock provider needs none.
func (s *Service) Credential(ctx context.Context) (string, error) {
	key, err := s.bank.Credential(ctx)
	if err != nil {
		return "", err
	}
	if key != "" {
		return key, nil
	}
	if key = llm.DiscoverKey(s.cfg.LLM.Provider); key != "" {
		return key, nil
	}
	if s.cfg.LLM.Provider == "mock" {
		return offlineCredential, nil
	}
	return "", nil
}

// Generate runs one manual generation, merges the survivors into the bank
// and returns the whole batch for a new challenge.
func (s *Service) Generate(ctx context.Context, cfg generator.Config) (Batch, error) {
	if !s.sem.TryAcquire(1) {
		return Batch{}, ErrBusy
	}
	defer s.sem.Release(1)

	cred, err := s.Credential(ctx)
	if err != nil {
		return Batch{}, err
	}

	items, err := s.gen.GenerateBatch(llm.WithPurpose(ctx, "manual"), cfg, cred)
	if err != nil {
		s.logger.Warn().Err(err).Str("level", string(cfg.Level)).Str("kind", llm.KindOf(err).String()).Msg("generation failed")
		return Batch{}, err
	}

	merged, err := s.bank.Merge(ctx, cfg.Level, items)
	out := Batch{Level: cfg.Level, Items: items, Merge: merged}
	if err != nil {
		out.SaveErr = err
	}
	return out, nil
}

// StartAutoFill blocks until the level holds target items or the run is
// stopped via StopAutoFill or ctx.
func (s *Service) StartAutoFill(ctx context.Context, level quiz.Level, target int, report func(autofill.Progress)) (autofill.Result, error) {
	if !s.sem.TryAcquire(1) {
		return autofill.Result{}, ErrBusy
	}
	defer s.sem.Release(1)
	return s.fill.Run(ctx, level, target, report)
}

func (s *Service) StopAutoFill() { s.fill.Stop() }

func (s *Service) AutoFillState() autofill.State { return s.fill.State() }

// Challenge plays a freshly generated batch.
func (s *Service) Challenge(b Batch) (*session.Session, error) {
	return session.NewChallenge(b.Items)
}

// Review samples saved items of level. A non-positive n uses the
// configured review size.
func (s *Service) Review(level quiz.Level, n int) (*session.Session, error) {
	if n <= 0 {
		n = s.cfg.Bank.ReviewSize
	}
	sess, err := session.NewReview(s.bank.Items(level), n)
	if err != nil {
		return nil, fmt.Errorf("review %s: %w", level, err)
	}
	return sess, nil
}

// Import loads items into the bank. It is refused while a generation runs.
func (s *Service) Import(ctx context.Context, items []quiz.QuizItem, mode bank.ImportMode) (map[quiz.Level]bank.MergeResult, error) {
	if !s.sem.TryAcquire(1) {
		return nil, ErrBusy
	}
	defer s.sem.Release(1)
	return s.bank.Import(ctx, items, mode)
}

// Reset clears the bank and stored key. It is refused while a generation
// runs.
func (s *Service) Reset(ctx context.Context) error {
	if !s.sem.TryAcquire(1) {
		return ErrBusy
	}
	defer s.sem.Release(1)
	return s.bank.Reset(ctx)
}
