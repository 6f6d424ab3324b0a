// Package session runs a single play-through of quiz items: one selection
// per question, scored, then advance.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/quizbank/internal/quiz"
)

// DefaultReviewSize is the number of items drawn for a review session.
const DefaultReviewSize = 10

var (
	ErrEmptySession    = errors.New("no questions to play")
	ErrNothingToReview = errors.New("nothing to review")
	ErrAlreadyAnswered = errors.New("question already answered")
	ErrInvalidChoice   = errors.New("invalid choice")
	ErrSessionFinished = errors.New("session finished")
)

// Provenance records where the session's items came from.
type Provenance int

const (
	ProvenanceNew    Provenance = iota // a freshly generated batch
	ProvenanceReview                   // drawn from the saved bank
)

func (p Provenance) String() string {
	if p == ProvenanceReview {
		return "review"
	}
	return "new"
}

// Phase is where the session is in its question/feedback cycle.
type Phase int

const (
	PhaseQuestion Phase = iota // waiting for a selection
	PhaseFeedback              // answer revealed, waiting for Advance
	PhaseFinished
)

// Feedback is revealed after a selection.
type Feedback struct {
	Selected            int
	CorrectIdx          int
	Correct             bool
	Explanation         string
	AdvancedExplanation string
	WikiLink            string
}

// Answer is one entry of the session log.
type Answer struct {
	Item     quiz.QuizItem
	Selected int
	Correct  bool
}

// Session is not safe for concurrent use; the UI drives it from one
// goroutine.
type Session struct {
	Provenance Provenance
	Level      quiz.Level

	items   []quiz.QuizItem
	cursor  int
	phase   Phase
	score   int
	answers []Answer

	startedAt time.Time
	endedAt   time.Time
	now       func() time.Time
}

func newSession(items []quiz.QuizItem, prov Provenance) *Session {
	s := &Session{
		Provenance: prov,
		items:      items,
		now:        time.Now,
	}
	if len(items) > 0 {
		s.Level = items[0].Level
	}
	s.startedAt = s.now()
	return s
}

// NewChallenge plays exactly batch, in order.
func NewChallenge(batch []quiz.QuizItem) (*Session, error) {
	if len(batch) == 0 {
		return nil, ErrEmptySession
	}
	return newSession(append([]quiz.QuizItem(nil), batch...), ProvenanceNew), nil
}

// NewReview plays a uniform random sample of up to n saved items. A
// non-positive n means DefaultReviewSize.
func NewReview(items []quiz.QuizItem, n int) (*Session, error) {
	if len(items) == 0 {
		return nil, ErrNothingToReview
	}
	if n <= 0 {
		n = DefaultReviewSize
	}
	return newSession(quiz.Sample(items, n), ProvenanceReview), nil
}

// Len returns the number of questions in the session.
func (s *Session) Len() int { return len(s.items) }

// Index returns the 0-based position of the current question.
func (s *Session) Index() int { return s.cursor }

func (s *Session) Phase() Phase { return s.phase }

// Current returns the question being played. ok is false once finished.
func (s *Session) Current() (item quiz.QuizItem, ok bool) {
	if s.phase == PhaseFinished {
		return quiz.QuizItem{}, false
	}
	return s.items[s.cursor], true
}

// Select answers the current question with the 0-based option idx.
func (s *Session) Select(idx int) (Feedback, error) {
	switch s.phase {
	case PhaseFinished:
		return Feedback{}, ErrSessionFinished
	case PhaseFeedback:
		return Feedback{}, ErrAlreadyAnswered
	}
	if idx < 0 || idx >= quiz.NumOptions {
		return Feedback{}, fmt.Errorf("%w: %d", ErrInvalidChoice, idx)
	}

	it := s.items[s.cursor]
	correct := idx == it.CorrectIdx
	if correct {
		s.score++
	}
	s.answers = append(s.answers, Answer{Item: it, Selected: idx, Correct: correct})
	s.phase = PhaseFeedback

	return Feedback{
		Selected:            idx,
		CorrectIdx:          it.CorrectIdx,
		Correct:             correct,
		Explanation:         it.Explanation,
		AdvancedExplanation: it.AdvancedExplanation,
		WikiLink:            it.WikiLink,
	}, nil
}

// Advance moves to the next question. Moving past the last one ends the
// session and returns false. Unanswered questions may be skipped.
func (s *Session) Advance() bool {
	if s.phase == PhaseFinished {
		return false
	}
	s.cursor++
	if s.cursor >= len(s.items) {
		s.cursor = len(s.items) - 1
		s.phase = PhaseFinished
		s.endedAt = s.now()
		return false
	}
	s.phase = PhaseQuestion
	return true
}

func (s *Session) Finished() bool { return s.phase == PhaseFinished }

// Result returns the score and the number of questions.
func (s *Session) Result() (score, total int) {
	return s.score, len(s.items)
}

// Answers returns the selections made so far, in order.
func (s *Session) Answers() []Answer {
	return append([]Answer(nil), s.answers...)
}
