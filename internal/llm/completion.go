package llm

import (
	"encoding/json"
	"net/http"
)

// completion is a provider's raw answer before it is checked against the
// request. Every SDK adapter converts its result into one of these.
type completion struct {
	text      string
	truncated bool
	usage     Usage
	model     string
}

// finish turns c into a Response for req. Blank text is ErrEmptyResponse.
// A payload that fails the schema because the model ran out of tokens is
// reported as *ErrMaxTokensExceeded so the retry policy can tell the two
// apart.
func (c completion) finish(req Request) (*Response, error) {
	if c.text == "" {
		return nil, ErrEmptyResponse
	}

	stop := "end"
	if c.truncated {
		stop = "max_tokens"
	}

	content := json.RawMessage(c.text)
	if req.Schema != nil {
		var err error
		if content, err = normalizeContent(req, c.text); err != nil {
			if c.truncated {
				return nil, &ErrMaxTokensExceeded{Content: []byte(c.text)}
			}
			return nil, err
		}
	}

	if c.usage.TotalTokens == 0 {
		c.usage.TotalTokens = c.usage.InputTokens + c.usage.OutputTokens
	}
	return &Response{Content: content, Usage: c.usage, Model: c.model, StopReason: stop}, nil
}

// mapStatus converts an HTTP status into the typed error for its kind.
func mapStatus(code int, err error) error {
	switch code {
	case http.StatusTooManyRequests:
		return &ErrRateLimit{Err: err}
	case http.StatusServiceUnavailable, statusOverloaded:
		return &ErrOverloaded{Err: err}
	}
	return &ErrProviderUnavailable{StatusCode: code, Err: err}
}

// statusOverloaded is the non-standard status Anthropic uses for
// "overloaded_error".
const statusOverloaded = 529
