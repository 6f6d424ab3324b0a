package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/abhisek/quizbank/ent/llmrequestevent"
	"github.com/alicebob/miniredis/v2"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	for _, table := range []string{"kvs", "llm_request_events", "global_sequence"} {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Fatalf("table %s: %v", table, err)
		}
	}
}

func testKV(t *testing.T, kv KV) {
	t.Helper()
	ctx := context.Background()

	if _, ok, err := kv.Get(ctx, KeyBank); err != nil || ok {
		t.Fatalf("Get(missing) = ok %v, err %v", ok, err)
	}

	if err := kv.Put(ctx, KeyBank, `[]`); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := kv.Put(ctx, KeyBank, `[{"id":"a"}]`); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if err := kv.Put(ctx, KeyCredential, "secret"); err != nil {
		t.Fatalf("put credential: %v", err)
	}

	v, ok, err := kv.Get(ctx, KeyBank)
	if err != nil || !ok {
		t.Fatalf("get: ok %v, err %v", ok, err)
	}
	if v != `[{"id":"a"}]` {
		t.Errorf("value = %q", v)
	}

	if err := kv.Delete(ctx, KeyBank, KeyCredential, "never-set"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	for _, k := range []string{KeyBank, KeyCredential} {
		if _, ok, _ := kv.Get(ctx, k); ok {
			t.Errorf("%s still present after delete", k)
		}
	}
}

func TestSQLiteKV(t *testing.T) {
	testKV(t, openTestStore(t))
}

func TestMemoryKV(t *testing.T) {
	testKV(t, NewMemoryKV())
}

func TestMemoryKV_FailWrites(t *testing.T) {
	kv := NewMemoryKV()
	kv.FailWrites = true
	if err := kv.Put(context.Background(), KeyBank, "x"); !errors.Is(err, ErrWriteFailed) {
		t.Fatalf("expected ErrWriteFailed, got %v", err)
	}
}

func TestRedisKV(t *testing.T) {
	mr := miniredis.RunT(t)
	kv, err := OpenRedis(context.Background(), RedisConfig{Addr: mr.Addr(), Prefix: "qb:"})
	if err != nil {
		t.Fatalf("open redis: %v", err)
	}
	t.Cleanup(func() { kv.Close() })

	testKV(t, kv)

	if err := kv.Put(context.Background(), KeyCredential, "k"); err != nil {
		t.Fatal(err)
	}
	if !mr.Exists("qb:" + KeyCredential) {
		t.Error("expected prefixed key in redis")
	}
}

func TestRedisKV_WriteFailure(t *testing.T) {
	mr := miniredis.RunT(t)
	kv, err := OpenRedis(context.Background(), RedisConfig{Addr: mr.Addr()})
	if err != nil {
		t.Fatalf("open redis: %v", err)
	}
	t.Cleanup(func() { kv.Close() })

	mr.Close()
	err = kv.Put(context.Background(), KeyBank, "[]")
	if !errors.Is(err, ErrWriteFailed) {
		t.Fatalf("expected ErrWriteFailed, got %v", err)
	}
}

func TestLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "batch-gen", Level: "beginner", BatchID: "b1", InputTokens: 100, OutputTokens: 50, LatencyMs: 200, Success: true, RequestBody: "req", ResponseBody: "resp"},
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "autofill", Level: "expert", BatchID: "b2", InputTokens: 10, OutputTokens: 0, LatencyMs: 100, ErrorKind: "rate_limited", ErrorMessage: "rate limited"},
		{Provider: "gemini", Model: "gemini-2.5-pro", Purpose: "autofill", Level: "expert", BatchID: "b2", InputTokens: 30, OutputTokens: 20, LatencyMs: 300, Success: true},
	}
	for _, e := range events {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	all, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d events, want 3", len(all))
	}
	if all[0].Model != "gemini-2.5-pro" {
		t.Errorf("expected newest first, got %s", all[0].Model)
	}

	limited, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "autofill", Limit: 1})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(limited) != 1 || limited[0].Purpose != "autofill" {
		t.Fatalf("unexpected filtered result: %+v", limited)
	}

	failed, err := repo.QueryLLMEvents(ctx, QueryOpts{FailedOnly: true})
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(failed) != 1 || failed[0].ErrorKind != "rate_limited" || failed[0].Level != "expert" {
		t.Fatalf("unexpected failed events: %+v", failed)
	}

	batch, err := repo.QueryLLMEvents(ctx, QueryOpts{Batch: "b2", Level: "expert"})
	if err != nil {
		t.Fatalf("query batch: %v", err)
	}
	if len(batch) != 2 {
		t.Fatalf("got %d events for batch b2, want 2", len(batch))
	}

	first, err := repo.GetLLMEvent(ctx, all[2].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if first == nil || first.RequestBody != "req" || first.ResponseBody != "resp" || !first.Success || first.BatchID != "b1" {
		t.Fatalf("unexpected event: %+v", first)
	}
	if first.Timestamp.IsZero() {
		t.Error("expected timestamp")
	}

	missing, err := repo.GetLLMEvent(ctx, 9999)
	if err != nil || missing != nil {
		t.Fatalf("GetLLMEvent(missing) = %v, %v", missing, err)
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage by purpose: %v", err)
	}
	if len(byPurpose) != 2 || byPurpose[0].Purpose != "autofill" || byPurpose[0].Calls != 2 || byPurpose[0].InputTokens != 40 {
		t.Fatalf("unexpected purpose usage: %+v", byPurpose)
	}
	if byPurpose[0].AvgLatencyMs != 200 {
		t.Errorf("avg latency = %d, want 200", byPurpose[0].AvgLatencyMs)
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("usage by model: %v", err)
	}
	if len(byModel) != 2 || byModel[0].Model != "gemini-2.5-flash" || byModel[0].OutputTokens != 50 {
		t.Fatalf("unexpected model usage: %+v", byModel)
	}
}

func TestLLMOutcomesByLevel(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, e := range []LLMRequestEventData{
		{Provider: "mock", Model: "m", Purpose: "autofill", Level: "expert", BatchID: "b1", LatencyMs: 100, ErrorKind: "rate_limited"},
		{Provider: "mock", Model: "m", Purpose: "autofill", Level: "expert", BatchID: "b1", LatencyMs: 100, ErrorKind: "rate_limited"},
		{Provider: "mock", Model: "m", Purpose: "autofill", Level: "expert", BatchID: "b1", LatencyMs: 400, Success: true},
		{Provider: "mock", Model: "m", Purpose: "manual", Level: "beginner", BatchID: "b2", LatencyMs: 50, Success: true},
		{Provider: "mock", Model: "m", Purpose: "manual", Level: "beginner", BatchID: "b3", LatencyMs: 50, ErrorKind: "invalid_response_format"},
	} {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	out, err := repo.LLMOutcomesByLevel(ctx)
	if err != nil {
		t.Fatalf("outcomes: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("got %d levels, want 2: %+v", len(out), out)
	}

	beginner, expert := out[0], out[1]
	if beginner.Level != "beginner" || beginner.Calls != 2 || beginner.Failures != 1 || beginner.Batches != 2 {
		t.Errorf("unexpected beginner outcome: %+v", beginner)
	}
	if beginner.FailuresByKind["invalid_response_format"] != 1 {
		t.Errorf("beginner failures by kind = %v", beginner.FailuresByKind)
	}
	if expert.Calls != 3 || expert.Failures != 2 || expert.Batches != 1 || expert.AvgLatencyMs != 200 {
		t.Errorf("unexpected expert outcome: %+v", expert)
	}
	if expert.FailuresByKind["rate_limited"] != 2 {
		t.Errorf("expert failures by kind = %v", expert.FailuresByKind)
	}
}

func TestEventSequenceIsMonotonic(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := repo.AppendLLMRequest(ctx, LLMRequestEventData{Provider: "mock", Model: "m", Purpose: "manual", Success: true}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	rows, err := s.Client().LLMRequestEvent.Query().
		Order(llmrequestevent.ByID()).
		All(ctx)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	for i, row := range rows {
		if want := int64(i + 1); row.Sequence != want {
			t.Errorf("row %d sequence = %d, want %d", i, row.Sequence, want)
		}
	}
}

func TestSQLiteKV_OverwriteKeepsOneRow(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for _, v := range []string{"a", "b", "c"} {
		if err := s.Put(ctx, KeyBank, v); err != nil {
			t.Fatalf("put %s: %v", v, err)
		}
	}
	n, err := s.Client().KV.Query().Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Errorf("rows = %d, want 1", n)
	}
	if v, _, _ := s.Get(ctx, KeyBank); v != "c" {
		t.Errorf("value = %q, want c", v)
	}
}

func TestDefaultDBPath(t *testing.T) {
	dir := t.TempDir()

	t.Setenv("QUIZBANK_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)
	p, err := DefaultDBPath()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "quizbank", "quizbank.db"); p != want {
		t.Errorf("path = %q, want %q", p, want)
	}

	override := filepath.Join(dir, "custom", "x.db")
	t.Setenv("QUIZBANK_DB", override)
	p, err = DefaultDBPath()
	if err != nil {
		t.Fatal(err)
	}
	if p != override {
		t.Errorf("path = %q, want %q", p, override)
	}
}
