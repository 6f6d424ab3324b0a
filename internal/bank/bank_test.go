package bank

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/abhisek/quizbank/internal/quiz"
	"github.com/abhisek/quizbank/internal/store"
	"github.com/rs/zerolog"
)

func item(level quiz.Level, question string) quiz.QuizItem {
	return quiz.QuizItem{
		ID:       quiz.NewID(),
		Level:    level,
		Question: question,
		Option1:  "a", Option2: "b", Option3: "c", Option4: "d",
	}
}

func items(level quiz.Level, questions ...string) []quiz.QuizItem {
	out := make([]quiz.QuizItem, len(questions))
	for i, q := range questions {
		out[i] = item(level, q)
	}
	return out
}

func questions(in []quiz.QuizItem) []string {
	out := make([]string, len(in))
	for i, it := range in {
		out[i] = it.Question
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func newBank(t *testing.T, cap int) (*Bank, *store.MemoryKV) {
	t.Helper()
	kv := store.NewMemoryKV()
	return Load(context.Background(), kv, cap, zerolog.Nop()), kv
}

func TestLoad_MissingAndMalformed(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()

	b := Load(ctx, kv, 0, zerolog.Nop())
	if len(b.All()) != 0 || b.Cap() != DefaultCap {
		t.Fatalf("expected empty bank with default cap, got %d items cap %d", len(b.All()), b.Cap())
	}

	kv.Put(ctx, store.KeyBank, "{not json")
	if b := Load(ctx, kv, 10, zerolog.Nop()); len(b.All()) != 0 {
		t.Fatal("malformed bank must load as empty")
	}
}

func TestLoad_GroupsByLevel(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	stored := []quiz.QuizItem{
		item(quiz.LevelExpert, "e1"),
		item(quiz.LevelBeginner, "b1"),
		item(quiz.LevelExpert, "e2"),
		item("mythic", "ignored"),
	}
	data, _ := json.Marshal(stored)
	kv.Put(ctx, store.KeyBank, string(data))

	b := Load(ctx, kv, 10, zerolog.Nop())
	if got := questions(b.Items(quiz.LevelExpert)); !equal(got, []string{"e1", "e2"}) {
		t.Errorf("expert = %v", got)
	}
	if b.Count(quiz.LevelBeginner) != 1 {
		t.Errorf("beginner count = %d", b.Count(quiz.LevelBeginner))
	}
	if got := questions(b.All()); !equal(got, []string{"b1", "e1", "e2"}) {
		t.Errorf("All() = %v, want level order", got)
	}
}

func TestMerge_DedupAndPersist(t *testing.T) {
	ctx := context.Background()
	b, kv := newBank(t, 100)

	res, err := b.Merge(ctx, quiz.LevelBeginner, items(quiz.LevelBeginner, "Q1", "Q2", " Q1 "))
	if err != nil {
		t.Fatal(err)
	}
	if res.Added != 2 || res.Skipped != 1 || res.Total != 2 {
		t.Errorf("first merge = %+v", res)
	}

	res, err = b.Merge(ctx, quiz.LevelBeginner, items(quiz.LevelBeginner, "Q2  ", "Q3", "q3"))
	if err != nil {
		t.Fatal(err)
	}
	if res.Added != 2 || res.Skipped != 1 {
		t.Errorf("second merge = %+v", res)
	}
	if got := questions(b.Items(quiz.LevelBeginner)); !equal(got, []string{"Q1", "Q2", "Q3", "q3"}) {
		t.Errorf("beginner = %v", got)
	}

	raw, ok, _ := kv.Get(ctx, store.KeyBank)
	if !ok {
		t.Fatal("bank not persisted")
	}
	var persisted []quiz.QuizItem
	if err := json.Unmarshal([]byte(raw), &persisted); err != nil {
		t.Fatal(err)
	}
	if len(persisted) != 4 {
		t.Errorf("persisted %d items, want 4", len(persisted))
	}
}

func TestMerge_SameLevelOnly(t *testing.T) {
	ctx := context.Background()
	b, _ := newBank(t, 100)

	b.Merge(ctx, quiz.LevelBeginner, items(quiz.LevelBeginner, "Shared?"))
	res, _ := b.Merge(ctx, quiz.LevelExpert, items(quiz.LevelExpert, "Shared?"))
	if res.Added != 1 {
		t.Fatalf("same question at another level must be kept, got %+v", res)
	}
}

func TestMerge_FilesUnderRequestedLevel(t *testing.T) {
	b, _ := newBank(t, 100)
	b.Merge(context.Background(), quiz.LevelAdvanced, items(quiz.LevelBeginner, "x"))
	if b.Count(quiz.LevelAdvanced) != 1 || b.Items(quiz.LevelAdvanced)[0].Level != quiz.LevelAdvanced {
		t.Fatal("batch items must be filed under the merge level")
	}
}

func TestMerge_NeverDuplicatesWithinLevel(t *testing.T) {
	ctx := context.Background()
	batches := [][]string{
		{"a", "b", "a", " b"},
		{"b", "c", "c ", "d"},
		{"a", "e", "\te"},
	}
	b, _ := newBank(t, 100)
	for _, batch := range batches {
		b.Merge(ctx, quiz.LevelIntermediate, items(quiz.LevelIntermediate, batch...))
	}

	seen := map[string]bool{}
	for _, it := range b.Items(quiz.LevelIntermediate) {
		key := quiz.QuestionKey(it.Question)
		if seen[key] {
			t.Fatalf("duplicate question %q", key)
		}
		seen[key] = true
	}
	if len(seen) != 5 {
		t.Errorf("expected 5 unique questions, got %d", len(seen))
	}
}

func TestMerge_EvictsOldestToCap(t *testing.T) {
	ctx := context.Background()
	const cap = 5
	b, _ := newBank(t, cap)

	var all []string
	for batch := 0; batch < 4; batch++ {
		var qs []string
		for i := 0; i < 3; i++ {
			qs = append(qs, fmt.Sprintf("q%d-%d", batch, i))
		}
		all = append(all, qs...)
		res, err := b.Merge(ctx, quiz.LevelExpert, items(quiz.LevelExpert, qs...))
		if err != nil {
			t.Fatal(err)
		}
		if res.Total > cap {
			t.Fatalf("level grew past cap: %d", res.Total)
		}
	}

	got := questions(b.Items(quiz.LevelExpert))
	if want := all[len(all)-cap:]; !equal(got, want) {
		t.Errorf("kept %v, want the %d most recent %v", got, cap, want)
	}
}

func TestMerge_StorageFailureKeepsMemory(t *testing.T) {
	ctx := context.Background()
	b, kv := newBank(t, 10)
	kv.FailWrites = true

	res, err := b.Merge(ctx, quiz.LevelBeginner, items(quiz.LevelBeginner, "kept"))
	var swe *StorageWriteError
	if !errors.As(err, &swe) {
		t.Fatalf("expected StorageWriteError, got %v", err)
	}
	if !errors.Is(err, store.ErrWriteFailed) {
		t.Error("StorageWriteError must match store.ErrWriteFailed")
	}
	if res.Added != 1 || b.Count(quiz.LevelBeginner) != 1 {
		t.Error("in-memory state must keep the merge")
	}
}

func TestImport(t *testing.T) {
	ctx := context.Background()
	b, _ := newBank(t, 2)
	b.Merge(ctx, quiz.LevelBeginner, items(quiz.LevelBeginner, "old"))

	file := append(items(quiz.LevelBeginner, "old", "new1"), items(quiz.LevelExpert, "e1", "e2", "e3")...)

	results, err := b.Import(ctx, file, ImportMerge)
	if err != nil {
		t.Fatal(err)
	}
	if results[quiz.LevelBeginner].Skipped != 1 {
		t.Errorf("beginner result = %+v", results[quiz.LevelBeginner])
	}
	if got := questions(b.Items(quiz.LevelExpert)); !equal(got, []string{"e2", "e3"}) {
		t.Errorf("expert after capped import = %v", got)
	}

	_, err = b.Import(ctx, items(quiz.LevelAdvanced, "only"), ImportReplace)
	if err != nil {
		t.Fatal(err)
	}
	if got := questions(b.All()); !equal(got, []string{"only"}) {
		t.Errorf("after replace = %v", got)
	}
}

func TestResetAndCredential(t *testing.T) {
	ctx := context.Background()
	b, kv := newBank(t, 10)

	if key, err := b.Credential(ctx); err != nil || key != "" {
		t.Fatalf("Credential() = %q, %v", key, err)
	}
	if err := b.SetCredential(ctx, "secret"); err != nil {
		t.Fatal(err)
	}
	if key, _ := b.Credential(ctx); key != "secret" {
		t.Fatalf("Credential() = %q", key)
	}
	b.Merge(ctx, quiz.LevelBeginner, items(quiz.LevelBeginner, "q"))

	if err := b.Reset(ctx); err != nil {
		t.Fatal(err)
	}
	if len(b.All()) != 0 {
		t.Error("reset must clear items")
	}
	for _, k := range []string{store.KeyBank, store.KeyCredential} {
		if _, ok, _ := kv.Get(ctx, k); ok {
			t.Errorf("%s survived reset", k)
		}
	}

	b.SetCredential(ctx, "again")
	if err := b.SetCredential(ctx, ""); err != nil {
		t.Fatal(err)
	}
	if key, _ := b.Credential(ctx); key != "" {
		t.Error("empty key must clear the credential")
	}
}

type countingObserver struct {
	last  map[quiz.Level]int
	calls int
}

func (o *countingObserver) BankChanged(counts map[quiz.Level]int) {
	o.last = counts
	o.calls++
}

func TestObserver(t *testing.T) {
	ctx := context.Background()
	b, _ := newBank(t, 10)
	obs := &countingObserver{}
	b.SetObserver(obs)
	if obs.calls != 1 || obs.last[quiz.LevelExpert] != 0 {
		t.Fatalf("expected initial report, got %+v", obs)
	}

	b.Merge(ctx, quiz.LevelExpert, items(quiz.LevelExpert, "x", "y"))
	if obs.last[quiz.LevelExpert] != 2 {
		t.Errorf("expert count = %d", obs.last[quiz.LevelExpert])
	}
}
