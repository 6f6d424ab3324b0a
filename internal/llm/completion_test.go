package llm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompletionFinish(t *testing.T) {
	schemaReq := Request{Schema: testSchema()}
	valid := `[{"question":"Q","correct_idx":1}]`

	t.Run("empty", func(t *testing.T) {
		_, err := completion{}.finish(schemaReq)
		assert.ErrorIs(t, err, ErrEmptyResponse)
	})

	t.Run("fenced json", func(t *testing.T) {
		resp, err := completion{
			text:  "```json\n" + valid + "\n```",
			model: "m",
			usage: Usage{InputTokens: 3, OutputTokens: 4},
		}.finish(schemaReq)
		require.NoError(t, err)
		assert.JSONEq(t, valid, string(resp.Content))
		assert.Equal(t, "end", resp.StopReason)
		assert.Equal(t, 7, resp.Usage.TotalTokens)
		assert.Equal(t, "m", resp.Model)
	})

	t.Run("truncated payload", func(t *testing.T) {
		_, err := completion{text: `[{"question":"Q",`, truncated: true}.finish(schemaReq)
		var mt *ErrMaxTokensExceeded
		require.True(t, errors.As(err, &mt), "got %v", err)
		assert.Equal(t, `[{"question":"Q",`, string(mt.Content))
	})

	t.Run("invalid payload", func(t *testing.T) {
		_, err := completion{text: `{"nope":true}`}.finish(schemaReq)
		var inv *ErrInvalidResponse
		assert.True(t, errors.As(err, &inv), "got %v", err)
	})

	t.Run("plain text without schema", func(t *testing.T) {
		resp, err := completion{text: "hello", truncated: true}.finish(Request{})
		require.NoError(t, err)
		assert.Equal(t, "hello", string(resp.Content))
		assert.Equal(t, "max_tokens", resp.StopReason)
	})
}

func TestMapStatus(t *testing.T) {
	cause := errors.New("boom")
	tests := []struct {
		code int
		want Kind
	}{
		{429, KindRateLimited},
		{503, KindOverloaded},
		{529, KindOverloaded},
		{500, KindUnclassified},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, KindOf(mapStatus(tt.code, cause)), "status %d", tt.code)
	}
}

func TestResolveModel(t *testing.T) {
	assert.Equal(t, "gpt-4.1-mini", ResolveModel("openai", "gpt-mini"))
	assert.Equal(t, "claude-haiku-4-5-20251001", ResolveModel("anthropic", "claude-haiku"))
	assert.Equal(t, "google/gemini-2.5-flash", ResolveModel("openrouter", "google/gemini-2.5-flash"))
}
