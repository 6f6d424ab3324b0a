// Package generator asks the generation service for batches of quiz items.
package generator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/abhisek/quizbank/internal/llm"
	"github.com/abhisek/quizbank/internal/quiz"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DefaultCount is used when Config.Count is not positive.
const DefaultCount = 10

// ErrInvalidLevel is returned for a Config whose Level is unknown.
var ErrInvalidLevel = errors.New("invalid level")

// Config describes one generation request.
type Config struct {
	Level quiz.Level
	Count int

	// Topic focuses the batch. Blank picks one of Topics at random.
	Topic string
}

// ProviderFactory builds a provider for a credential.
type ProviderFactory func(ctx context.Context, credential string) (llm.Provider, error)

// Client generates quiz batches. Providers are built lazily and cached per
// credential.
type Client struct {
	factory ProviderFactory
	logger  zerolog.Logger

	// Intn picks the random topic; tests replace it.
	Intn func(n int) int

	MaxTokens   int
	Temperature float64

	mu        sync.Mutex
	providers map[string]llm.Provider
}

func New(factory ProviderFactory, logger zerolog.Logger) *Client {
	return &Client{
		factory:     factory,
		logger:      logger.With().Str("component", "generator").Logger(),
		Intn:        rand.IntN,
		MaxTokens:   8192,
		Temperature: 0.9,
		providers:   make(map[string]llm.Provider),
	}
}

// rawItem mirrors BatchSchema. Ids are assigned locally.
type rawItem struct {
	Level               string `json:"level"`
	Question            string `json:"question"`
	Option1             string `json:"option1"`
	Option2             string `json:"option2"`
	Option3             string `json:"option3"`
	Option4             string `json:"option4"`
	CorrectIdx          int    `json:"correct_idx"`
	Explanation         string `json:"explanation"`
	AdvancedExplanation string `json:"advanced_explanation"`
	WikiLink            string `json:"wiki_link"`
	IsJapan             bool   `json:"is_japan"`
}

// GenerateBatch requests cfg.Count items. It has no side effects beyond the
// network call: nothing is merged or persisted here.
func (c *Client) GenerateBatch(ctx context.Context, cfg Config, credential string) ([]quiz.QuizItem, error) {
	if strings.TrimSpace(credential) == "" {
		return nil, llm.ErrMissingCredential
	}
	if !cfg.Level.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidLevel, cfg.Level)
	}
	count := cfg.Count
	if count <= 0 {
		count = DefaultCount
	}
	topic := strings.TrimSpace(cfg.Topic)
	if topic == "" {
		topic = Topics[c.Intn(len(Topics))]
	}

	p, err := c.provider(ctx, credential)
	if err != nil {
		return nil, err
	}

	tag := llm.Tag{Level: string(cfg.Level), Batch: uuid.NewString()}
	if llm.TagFrom(ctx).Purpose == "" {
		tag.Purpose = "batch-gen"
	}
	ctx = llm.WithTag(ctx, tag)
	resp, err := p.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildUserMessage(cfg.Level, count, topic)}},
		Schema:      BatchSchema,
		MaxTokens:   c.MaxTokens,
		Temperature: c.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("generate %s batch: %w", cfg.Level, err)
	}

	items, dropped, err := parseBatch(resp.Content, cfg.Level)
	if err != nil {
		return nil, err
	}
	if dropped > 0 {
		c.logger.Warn().Int("dropped", dropped).Msg("discarded malformed questions")
	}

	c.logger.Debug().
		Str("level", string(cfg.Level)).
		Str("topic", topic).
		Str("batch", tag.Batch).
		Int("requested", count).
		Int("received", len(items)).
		Msg("batch generated")
	return items, nil
}

func (c *Client) provider(ctx context.Context, credential string) (llm.Provider, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if p, ok := c.providers[credential]; ok {
		return p, nil
	}
	p, err := c.factory(ctx, credential)
	if err != nil {
		return nil, err
	}
	c.providers[credential] = p
	return p, nil
}

// parseBatch decodes the model output. Every item is stamped with level and
// a fresh id; items that fail validation are dropped.
func parseBatch(content []byte, level quiz.Level) ([]quiz.QuizItem, int, error) {
	text := llm.StripCodeFence(string(content))
	if text == "" {
		return nil, 0, llm.ErrEmptyResponse
	}

	var raw []rawItem
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, 0, &llm.ErrInvalidResponse{
			Content: json.RawMessage(text),
			Err:     fmt.Errorf("expected a JSON array of questions: %w", err),
		}
	}

	items := make([]quiz.QuizItem, 0, len(raw))
	for _, r := range raw {
		it := quiz.QuizItem{
			ID:                  quiz.NewID(),
			Level:               level,
			Question:            strings.TrimSpace(r.Question),
			Option1:             strings.TrimSpace(r.Option1),
			Option2:             strings.TrimSpace(r.Option2),
			Option3:             strings.TrimSpace(r.Option3),
			Option4:             strings.TrimSpace(r.Option4),
			CorrectIdx:          r.CorrectIdx,
			Explanation:         strings.TrimSpace(r.Explanation),
			AdvancedExplanation: strings.TrimSpace(r.AdvancedExplanation),
			WikiLink:            strings.TrimSpace(r.WikiLink),
			IsJapan:             r.IsJapan,
		}
		if it.Validate() != nil {
			continue
		}
		items = append(items, it)
	}
	return items, len(raw) - len(items), nil
}
