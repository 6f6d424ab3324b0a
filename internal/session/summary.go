package session

import (
	"time"

	"github.com/abhisek/quizbank/internal/quiz"
)

// Summary holds the data displayed on the summary screen.
type Summary struct {
	Provenance Provenance
	Level      quiz.Level
	Duration   time.Duration
	Total      int
	Answered   int
	Correct    int
	Accuracy   float64

	// Missed lists the wrongly answered items for a quick recap.
	Missed []Answer
}

// Summary builds the end-of-session report. It may be called before the
// session is finished; Duration then runs up to now.
func (s *Session) Summary() Summary {
	end := s.endedAt
	if end.IsZero() {
		end = s.now()
	}

	sum := Summary{
		Provenance: s.Provenance,
		Level:      s.Level,
		Duration:   end.Sub(s.startedAt),
		Total:      len(s.items),
		Answered:   len(s.answers),
		Correct:    s.score,
	}
	if sum.Answered > 0 {
		sum.Accuracy = float64(sum.Correct) / float64(sum.Answered)
	}
	for _, a := range s.answers {
		if !a.Correct {
			sum.Missed = append(sum.Missed, a)
		}
	}
	return sum
}
