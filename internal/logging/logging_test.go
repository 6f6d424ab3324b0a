package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"warn", zerolog.WarnLevel},
		{"", zerolog.InfoLevel},
		{"nonsense", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriter(&buf, "info", false)
	logger.Debug().Msg("hidden")
	logger.Info().Str("component", "bank").Msg("merged")

	var line map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line); err != nil {
		t.Fatalf("expected exactly one JSON line, got %q: %v", buf.String(), err)
	}
	if line["message"] != "merged" || line["component"] != "bank" || line["app"] != "quizbank" {
		t.Errorf("unexpected log line: %v", line)
	}
}

func TestNewFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	logger, closer, err := NewFile(dir, "info")
	if err != nil {
		t.Fatal(err)
	}
	logger.Info().Msg("hello")
	closer.Close()

	data, err := os.ReadFile(filepath.Join(dir, "quizbank.log"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte(`"hello"`)) {
		t.Errorf("log file missing message: %q", data)
	}
}

func TestContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriter(&buf, "info", false)

	ctx := IntoContext(context.Background(), logger)
	l := FromContext(ctx)
	l.Info().Msg("via context")
	if !bytes.Contains(buf.Bytes(), []byte("via context")) {
		t.Error("expected logger from context to write to buffer")
	}

	// Missing logger is a no-op, not a panic.
	nop := FromContext(context.Background())
	nop.Info().Msg("dropped")
}
