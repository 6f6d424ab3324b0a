// Package bank holds the question bank: every saved quiz item, grouped by
// level, capped per level and persisted as one flat JSON array.
package bank

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/abhisek/quizbank/internal/quiz"
	"github.com/abhisek/quizbank/internal/store"
	"github.com/rs/zerolog"
)

// DefaultCap is the per-level item limit when none is configured.
const DefaultCap = 1000

// StorageWriteError reports that the bank changed in memory but could not
// be persisted. The in-memory state is kept.
type StorageWriteError struct {
	Err error
}

func (e *StorageWriteError) Error() string {
	return fmt.Sprintf("save question bank: %v", e.Err)
}

func (e *StorageWriteError) Unwrap() error { return e.Err }

// Is makes every StorageWriteError match store.ErrWriteFailed.
func (e *StorageWriteError) Is(target error) bool { return target == store.ErrWriteFailed }

// MergeResult summarizes one merge.
type MergeResult struct {
	Added   int
	Skipped int // duplicates dropped from the batch
	Evicted int // oldest items removed to honor the cap
	Total   int // items at the level afterwards
}

// Observer is told the per-level counts after every mutation.
type Observer interface {
	BankChanged(counts map[quiz.Level]int)
}

// Bank is safe for concurrent use.
type Bank struct {
	mu     sync.RWMutex
	kv     store.KV
	cap    int
	levels map[quiz.Level][]quiz.QuizItem
	logger zerolog.Logger

	observer Observer
}

// Load reads the bank from kv. A missing or unreadable entry yields an
// empty bank; the error is only logged.
func Load(ctx context.Context, kv store.KV, cap int, logger zerolog.Logger) *Bank {
	if cap <= 0 {
		cap = DefaultCap
	}
	b := &Bank{
		kv:     kv,
		cap:    cap,
		levels: make(map[quiz.Level][]quiz.QuizItem),
		logger: logger.With().Str("component", "bank").Logger(),
	}

	raw, ok, err := kv.Get(ctx, store.KeyBank)
	switch {
	case err != nil:
		b.logger.Warn().Err(err).Msg("could not read question bank, starting empty")
		return b
	case !ok:
		return b
	}

	var items []quiz.QuizItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		b.logger.Warn().Err(err).Msg("stored question bank is malformed, starting empty")
		return b
	}
	for _, it := range items {
		if !it.Level.Valid() {
			continue
		}
		b.levels[it.Level] = append(b.levels[it.Level], it)
	}
	b.logger.Debug().Int("items", len(items)).Msg("question bank loaded")
	return b
}

// SetObserver registers o and reports the current counts to it.
func (b *Bank) SetObserver(o Observer) {
	b.mu.Lock()
	b.observer = o
	counts := b.countsLocked()
	b.mu.Unlock()
	if o != nil {
		o.BankChanged(counts)
	}
}

// Cap returns the per-level limit.
func (b *Bank) Cap() int {
	return b.cap
}

// Items returns a copy of the items at level, oldest first.
func (b *Bank) Items(level quiz.Level) []quiz.QuizItem {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]quiz.QuizItem(nil), b.levels[level]...)
}

func (b *Bank) Count(level quiz.Level) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.levels[level])
}

// Counts returns the number of items per level, including empty levels.
func (b *Bank) Counts() map[quiz.Level]int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.countsLocked()
}

func (b *Bank) countsLocked() map[quiz.Level]int {
	counts := make(map[quiz.Level]int, len(quiz.Levels()))
	for _, l := range quiz.Levels() {
		counts[l] = len(b.levels[l])
	}
	return counts
}

// All returns every item in level order, each level oldest first. This is
// also the persisted layout.
func (b *Bank) All() []quiz.QuizItem {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.flattenLocked()
}

// Export is All under the name the file export uses.
func (b *Bank) Export() []quiz.QuizItem {
	return b.All()
}

func (b *Bank) flattenLocked() []quiz.QuizItem {
	out := make([]quiz.QuizItem, 0)
	for _, l := range quiz.Levels() {
		out = append(out, b.levels[l]...)
	}
	return out
}

// Merge appends the non-duplicate items of batch to level, evicts the
// oldest items beyond the cap and persists the bank. Items are compared by
// trimmed question text against the same level and earlier batch items.
// Batch items are filed under level regardless of their own Level field.
func (b *Bank) Merge(ctx context.Context, level quiz.Level, batch []quiz.QuizItem) (MergeResult, error) {
	if !level.Valid() {
		return MergeResult{}, fmt.Errorf("merge: unknown level %q", level)
	}

	b.mu.Lock()
	res := b.mergeLocked(level, batch)
	err := b.persistLocked(ctx)
	counts, obs := b.countsLocked(), b.observer
	b.mu.Unlock()

	b.notify(obs, counts)
	b.logger.Debug().
		Str("level", string(level)).
		Int("added", res.Added).
		Int("skipped", res.Skipped).
		Int("evicted", res.Evicted).
		Int("total", res.Total).
		Msg("merged batch")
	return res, err
}

func (b *Bank) mergeLocked(level quiz.Level, batch []quiz.QuizItem) MergeResult {
	existing := b.levels[level]
	seen := make(map[string]struct{}, len(existing)+len(batch))
	for _, it := range existing {
		seen[quiz.QuestionKey(it.Question)] = struct{}{}
	}

	var res MergeResult
	merged := append([]quiz.QuizItem(nil), existing...)
	for _, it := range batch {
		key := quiz.QuestionKey(it.Question)
		if _, dup := seen[key]; dup {
			res.Skipped++
			continue
		}
		seen[key] = struct{}{}
		it.Level = level
		if it.ID == "" {
			it.ID = quiz.NewID()
		}
		merged = append(merged, it)
		res.Added++
	}

	if over := len(merged) - b.cap; over > 0 {
		merged = merged[over:]
		res.Evicted = over
	}
	b.levels[level] = merged
	res.Total = len(merged)
	return res
}

// ImportMode selects how imported items combine with the bank.
type ImportMode int

const (
	// ImportMerge merges each level like a generated batch.
	ImportMerge ImportMode = iota
	// ImportReplace discards the bank first.
	ImportReplace
)

// Import adds file items grouped by their own level. Items with an unknown
// level are ignored.
func (b *Bank) Import(ctx context.Context, items []quiz.QuizItem, mode ImportMode) (map[quiz.Level]MergeResult, error) {
	grouped := make(map[quiz.Level][]quiz.QuizItem)
	for _, it := range items {
		if it.Level.Valid() {
			grouped[it.Level] = append(grouped[it.Level], it)
		}
	}

	b.mu.Lock()
	if mode == ImportReplace {
		b.levels = make(map[quiz.Level][]quiz.QuizItem)
	}
	results := make(map[quiz.Level]MergeResult, len(grouped))
	for _, l := range quiz.Levels() {
		if batch, ok := grouped[l]; ok {
			results[l] = b.mergeLocked(l, batch)
		}
	}
	err := b.persistLocked(ctx)
	counts, obs := b.countsLocked(), b.observer
	b.mu.Unlock()

	b.notify(obs, counts)
	return results, err
}

// Reset clears every item and the stored credential.
func (b *Bank) Reset(ctx context.Context) error {
	b.mu.Lock()
	b.levels = make(map[quiz.Level][]quiz.QuizItem)
	err := b.kv.Delete(ctx, store.KeyBank, store.KeyCredential)
	counts, obs := b.countsLocked(), b.observer
	b.mu.Unlock()

	b.notify(obs, counts)
	if err != nil {
		return &StorageWriteError{Err: err}
	}
	b.logger.Info().Msg("question bank reset")
	return nil
}

// Credential returns the stored API key, or "" when none is set.
func (b *Bank) Credential(ctx context.Context) (string, error) {
	v, _, err := b.kv.Get(ctx, store.KeyCredential)
	if err != nil {
		return "", fmt.Errorf("read credential: %w", err)
	}
	return v, nil
}

// SetCredential stores key. An empty key removes the credential.
func (b *Bank) SetCredential(ctx context.Context, key string) error {
	var err error
	if key == "" {
		err = b.kv.Delete(ctx, store.KeyCredential)
	} else {
		err = b.kv.Put(ctx, store.KeyCredential, key)
	}
	if err != nil {
		return &StorageWriteError{Err: err}
	}
	return nil
}

func (b *Bank) persistLocked(ctx context.Context) error {
	data, err := json.Marshal(b.flattenLocked())
	if err != nil {
		return &StorageWriteError{Err: err}
	}
	// A started write is never abandoned halfway.
	if err := b.kv.Put(context.WithoutCancel(ctx), store.KeyBank, string(data)); err != nil {
		b.logger.Warn().Err(err).Msg("question bank kept in memory only")
		return &StorageWriteError{Err: err}
	}
	return nil
}

func (b *Bank) notify(o Observer, counts map[quiz.Level]int) {
	if o != nil {
		o.BankChanged(counts)
	}
}
