package llm

import (
	"errors"
	"testing"
	"time"

	"google.golang.org/genai"
)

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-2.5-flash"},
		{"gemini-pro", "gemini-2.5-pro"},
		{"gemini-2.0-flash", "gemini-2.0-flash"}, // Pass-through
	}
	for _, tt := range tests {
		got := ResolveModel("gemini", tt.input)
		if got != tt.expected {
			t.Errorf("ResolveModel(gemini, %q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestBuildGeminiSchema_QuizBatch(t *testing.T) {
	def := map[string]any{
		"type": "array",
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"question":    map[string]any{"type": "string"},
				"correct_idx": map[string]any{"type": "integer"},
				"is_japan":    map[string]any{"type": "boolean"},
				"level":       map[string]any{"type": "string", "enum": []any{"beginner", "expert"}},
			},
			"required": []any{"question", "correct_idx"},
		},
	}

	schema := buildGeminiSchema(def)

	if schema.Type != genai.TypeArray {
		t.Fatalf("expected ARRAY type, got %s", schema.Type)
	}
	item := schema.Items
	if item == nil || item.Type != genai.TypeObject {
		t.Fatalf("expected OBJECT items, got %+v", item)
	}
	if len(item.Properties) != 4 {
		t.Fatalf("expected 4 properties, got %d", len(item.Properties))
	}
	if item.Properties["correct_idx"].Type != genai.TypeInteger {
		t.Errorf("expected INTEGER for correct_idx, got %s", item.Properties["correct_idx"].Type)
	}
	if item.Properties["is_japan"].Type != genai.TypeBoolean {
		t.Errorf("expected BOOLEAN for is_japan, got %s", item.Properties["is_japan"].Type)
	}
	if len(item.Properties["level"].Enum) != 2 {
		t.Errorf("expected 2 enum values, got %d", len(item.Properties["level"].Enum))
	}
	if len(item.Required) != 2 {
		t.Errorf("expected 2 required fields, got %d", len(item.Required))
	}
}

func TestMapGeminiError(t *testing.T) {
	quota := genai.APIError{
		Code:    429,
		Message: "You exceeded your current quota. Please retry in 3.5s.",
		Status:  "RESOURCE_EXHAUSTED",
		Details: []map[string]any{
			{"@type": "type.googleapis.com/google.rpc.RetryInfo", "retryDelay": "3s"},
		},
	}
	err := mapGeminiError(quota)
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got %T", err)
	}
	if rl.RetryAfter != 3*time.Second {
		t.Errorf("expected RetryAfter 3s, got %s", rl.RetryAfter)
	}
	// The message hint still wins over RetryAfter.
	if got := DefaultRetryConfig().Policy.Wait(0, err); got != 4500*time.Millisecond {
		t.Errorf("expected 4.5s wait, got %s", got)
	}

	overloaded := genai.APIError{Code: 503, Message: "The model is overloaded.", Status: "UNAVAILABLE"}
	if KindOf(mapGeminiError(overloaded)) != KindOverloaded {
		t.Errorf("expected overloaded kind")
	}

	bad := genai.APIError{Code: 400, Message: "API key not valid", Status: "INVALID_ARGUMENT"}
	if k := KindOf(mapGeminiError(bad)); k != KindUnclassified {
		t.Errorf("expected unclassified, got %s", k)
	}
}
