package llm

// modelAliases maps each provider's friendly model names to the IDs sent
// on the wire. Names not listed are passed through unchanged.
var modelAliases = map[string]map[string]string{
	"gemini": {
		"gemini-flash":      "gemini-2.5-flash",
		"gemini-flash-lite": "gemini-2.5-flash-lite",
		"gemini-pro":        "gemini-2.5-pro",
	},
	"openai": {
		"gpt-mini": "gpt-4.1-mini",
		"gpt":      "gpt-4.1",
	},
	"anthropic": {
		"claude-sonnet": "claude-sonnet-4-20250514",
		"claude-haiku":  "claude-haiku-4-5-20251001",
	},
}

// ResolveModel returns the model ID for name under provider.
func ResolveModel(provider, name string) string {
	if id, ok := modelAliases[provider][name]; ok {
		return id
	}
	return name
}

// ModelCost holds per-million-token pricing for a model in USD.
type ModelCost struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// Cost is the USD price of one request.
func (c ModelCost) Cost(inputTokens, outputTokens int) float64 {
	return (float64(inputTokens)*c.InputPerMTok + float64(outputTokens)*c.OutputPerMTok) / 1e6
}

// LookupCost returns the pricing for a model ID, or nil if unknown. The
// cost report skips models without a price.
func LookupCost(modelID string) *ModelCost {
	c, ok := modelCosts[modelID]
	if !ok {
		return nil
	}
	return &c
}

// Prices as of 2026-02. OpenRouter reports the upstream model with a
// vendor prefix.
var modelCosts = map[string]ModelCost{
	"gemini-2.0-flash":      {0.1, 0.4},
	"gemini-2.5-flash":      {0.3, 2.5},
	"gemini-2.5-flash-lite": {0.1, 0.4},
	"gemini-2.5-pro":        {1.25, 10},

	"gpt-4.1":      {2, 8},
	"gpt-4.1-mini": {0.4, 1.6},
	"gpt-4o-mini":  {0.15, 0.6},

	"claude-haiku-4-5-20251001": {1, 5},
	"claude-sonnet-4-20250514":  {3, 15},

	"google/gemini-2.5-flash": {0.3, 2.5},
	"openai/gpt-4.1-mini":     {0.4, 1.6},
}
