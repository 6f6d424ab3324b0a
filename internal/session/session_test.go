package session

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizbank/internal/quiz"
)

func item(q string, correct int) quiz.QuizItem {
	return quiz.QuizItem{
		ID:                  quiz.NewID(),
		Level:               quiz.LevelIntermediate,
		Question:            q,
		Option1:             "A",
		Option2:             "B",
		Option3:             "C",
		Option4:             "D",
		CorrectIdx:          correct,
		Explanation:         "because " + q,
		AdvancedExplanation: "more on " + q,
		WikiLink:            "https://en.wikipedia.org/wiki/Trivia",
	}
}

func batch(n int) []quiz.QuizItem {
	out := make([]quiz.QuizItem, n)
	for i := range out {
		out[i] = item(fmt.Sprintf("Q%d", i), i%quiz.NumOptions)
	}
	return out
}

func TestNewChallengeKeepsOrder(t *testing.T) {
	b := batch(5)
	s, err := NewChallenge(b)
	require.NoError(t, err)

	assert.Equal(t, ProvenanceNew, s.Provenance)
	assert.Equal(t, quiz.LevelIntermediate, s.Level)
	assert.Equal(t, 5, s.Len())

	for i := range b {
		cur, ok := s.Current()
		require.True(t, ok)
		assert.Equal(t, b[i].Question, cur.Question)
		if i < len(b)-1 {
			assert.True(t, s.Advance())
		}
	}
	assert.False(t, s.Advance())
	assert.True(t, s.Finished())
}

func TestNewChallengeEmpty(t *testing.T) {
	_, err := NewChallenge(nil)
	assert.ErrorIs(t, err, ErrEmptySession)
}

func TestNewChallengeCopiesBatch(t *testing.T) {
	b := batch(2)
	s, err := NewChallenge(b)
	require.NoError(t, err)

	b[0].Question = "mutated"
	cur, _ := s.Current()
	assert.Equal(t, "Q0", cur.Question)
}

func TestNewReview(t *testing.T) {
	items := batch(25)

	tests := []struct {
		name string
		n    int
		want int
	}{
		{"default size", 0, DefaultReviewSize},
		{"explicit", 3, 3},
		{"more than available", 40, 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewReview(items, tt.n)
			require.NoError(t, err)
			assert.Equal(t, ProvenanceReview, s.Provenance)
			assert.Equal(t, tt.want, s.Len())

			seen := map[string]bool{}
			for {
				cur, ok := s.Current()
				require.True(t, ok)
				assert.False(t, seen[cur.ID], "item %s drawn twice", cur.ID)
				seen[cur.ID] = true
				if !s.Advance() {
					break
				}
			}
			assert.Len(t, seen, tt.want)
		})
	}
}

func TestNewReviewEmpty(t *testing.T) {
	_, err := NewReview(nil, 10)
	assert.ErrorIs(t, err, ErrNothingToReview)
}

func TestSelectScoring(t *testing.T) {
	s, err := NewChallenge([]quiz.QuizItem{item("Capital of Japan in 710?", 2)})
	require.NoError(t, err)

	fb, err := s.Select(2)
	require.NoError(t, err)
	assert.True(t, fb.Correct)
	assert.Equal(t, 2, fb.CorrectIdx)
	assert.Equal(t, "because Capital of Japan in 710?", fb.Explanation)
	assert.Equal(t, "more on Capital of Japan in 710?", fb.AdvancedExplanation)
	assert.Equal(t, PhaseFeedback, s.Phase())

	score, total := s.Result()
	assert.Equal(t, 1, score)
	assert.Equal(t, 1, total)
}

func TestSelectWrongRevealsCorrect(t *testing.T) {
	s, err := NewChallenge([]quiz.QuizItem{item("Q", 2)})
	require.NoError(t, err)

	fb, err := s.Select(0)
	require.NoError(t, err)
	assert.False(t, fb.Correct)
	assert.Equal(t, 0, fb.Selected)
	assert.Equal(t, 2, fb.CorrectIdx)

	score, _ := s.Result()
	assert.Zero(t, score)
}

func TestSelectTwice(t *testing.T) {
	s, err := NewChallenge(batch(2))
	require.NoError(t, err)

	_, err = s.Select(0)
	require.NoError(t, err)
	_, err = s.Select(0)
	assert.ErrorIs(t, err, ErrAlreadyAnswered)

	score, _ := s.Result()
	assert.Equal(t, 1, score, "second selection must not change the score")
	assert.Len(t, s.Answers(), 1)
}

func TestSelectInvalidChoice(t *testing.T) {
	s, err := NewChallenge(batch(1))
	require.NoError(t, err)

	for _, idx := range []int{-1, quiz.NumOptions, 99} {
		_, err := s.Select(idx)
		assert.True(t, errors.Is(err, ErrInvalidChoice), "idx %d: %v", idx, err)
	}
	assert.Equal(t, PhaseQuestion, s.Phase())

	_, err = s.Select(0)
	assert.NoError(t, err)
}

func TestSelectAfterFinish(t *testing.T) {
	s, err := NewChallenge(batch(1))
	require.NoError(t, err)
	assert.False(t, s.Advance())

	_, ok := s.Current()
	assert.False(t, ok)
	_, err = s.Select(0)
	assert.ErrorIs(t, err, ErrSessionFinished)
	assert.False(t, s.Advance())
}

func TestFullPlayThrough(t *testing.T) {
	b := batch(4) // correct indices 0,1,2,3
	s, err := NewChallenge(b)
	require.NoError(t, err)

	picks := []int{0, 0, 2, 1}
	for i, p := range picks {
		_, err := s.Select(p)
		require.NoError(t, err)
		more := s.Advance()
		assert.Equal(t, i < len(picks)-1, more)
	}

	score, total := s.Result()
	assert.Equal(t, 2, score)
	assert.Equal(t, 4, total)

	answers := s.Answers()
	require.Len(t, answers, 4)
	for i, a := range answers {
		assert.Equal(t, b[i].ID, a.Item.ID)
		assert.Equal(t, picks[i], a.Selected)
	}
}

func TestSkipUnanswered(t *testing.T) {
	s, err := NewChallenge(batch(3))
	require.NoError(t, err)

	assert.True(t, s.Advance())
	_, err = s.Select(1)
	require.NoError(t, err)
	assert.True(t, s.Advance())
	assert.False(t, s.Advance())

	score, total := s.Result()
	assert.Equal(t, 1, score)
	assert.Equal(t, 3, total)
	assert.Len(t, s.Answers(), 1)
}

func TestSummary(t *testing.T) {
	s, err := NewChallenge(batch(3))
	require.NoError(t, err)

	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	s.startedAt = start
	s.now = func() time.Time { return start.Add(90 * time.Second) }

	_, _ = s.Select(0) // correct
	s.Advance()
	_, _ = s.Select(3) // wrong
	s.Advance()
	s.Advance()

	sum := s.Summary()
	assert.Equal(t, ProvenanceNew, sum.Provenance)
	assert.Equal(t, 90*time.Second, sum.Duration)
	assert.Equal(t, 3, sum.Total)
	assert.Equal(t, 2, sum.Answered)
	assert.Equal(t, 1, sum.Correct)
	assert.InDelta(t, 0.5, sum.Accuracy, 1e-9)
	require.Len(t, sum.Missed, 1)
	assert.Equal(t, "Q1", sum.Missed[0].Item.Question)
}

func TestProvenanceString(t *testing.T) {
	assert.Equal(t, "new", ProvenanceNew.String())
	assert.Equal(t, "review", ProvenanceReview.String())
}
