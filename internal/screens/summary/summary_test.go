package summary

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizbank/internal/quiz"
	"github.com/abhisek/quizbank/internal/session"
)

func missed(q string) session.Answer {
	return session.Answer{
		Item: quiz.QuizItem{
			Question:   q,
			Option1:    "Kyoto",
			Option2:    "Tokyo",
			Option3:    "Osaka",
			Option4:    "Nara",
			CorrectIdx: 1,
		},
		Selected: 0,
	}
}

func testSummary() session.Summary {
	return session.Summary{
		Provenance: session.ProvenanceNew,
		Level:      quiz.LevelBeginner,
		Duration:   2*time.Minute + 5*time.Second,
		Total:      10,
		Answered:   10,
		Correct:    8,
		Accuracy:   0.8,
		Missed:     []session.Answer{missed("Capital of Japan?"), missed("Largest city in Japan?")},
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testSummary())
	if s.Title() != "Session Summary" {
		t.Errorf("Title = %q, want %q", s.Title(), "Session Summary")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	s := New(testSummary())
	view := s.View(80, 24)
	for _, want := range []string{"Challenge complete!", "2:05", "Accuracy: 80%", "Capital of Japan?", "B) Tokyo"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSummaryScreen_ReviewAndPerfect(t *testing.T) {
	sum := testSummary()
	sum.Provenance = session.ProvenanceReview
	sum.Correct, sum.Accuracy, sum.Missed = 10, 1, nil

	view := New(sum).View(80, 24)
	if !strings.Contains(view, "Review complete!") {
		t.Error("expected review title")
	}
	if !strings.Contains(view, "Perfect score!") {
		t.Error("expected perfect score line")
	}
}

func TestSummaryScreen_Skipped(t *testing.T) {
	sum := testSummary()
	sum.Answered = 7
	view := New(sum).View(100, 24)
	if !strings.Contains(view, "Skipped: 3") {
		t.Error("expected skipped count")
	}
}

func TestSummaryScreen_MissedCapped(t *testing.T) {
	sum := testSummary()
	sum.Missed = nil
	for range maxMissed + 2 {
		sum.Missed = append(sum.Missed, missed("Q"))
	}
	view := New(sum).View(80, 40)
	if !strings.Contains(view, "and 2 more") {
		t.Error("expected overflow line")
	}
}

func TestSummaryScreen_Navigation_Enter(t *testing.T) {
	s := New(testSummary())
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Error("expected a command on Enter (pop)")
	}
}

func TestSummaryScreen_Navigation_Esc(t *testing.T) {
	s := New(testSummary())
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Error("expected a command on Esc (pop)")
	}
}

func TestSummaryScreen_KeyHints(t *testing.T) {
	s := New(testSummary())
	hints := s.KeyHints()
	if len(hints) != 2 {
		t.Errorf("KeyHints length = %d, want 2", len(hints))
	}
}
