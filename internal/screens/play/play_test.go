package play

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizbank/internal/quiz"
	"github.com/abhisek/quizbank/internal/router"
	"github.com/abhisek/quizbank/internal/screens/summary"
	"github.com/abhisek/quizbank/internal/session"
)

func item(q string, correct int) quiz.QuizItem {
	return quiz.QuizItem{
		ID:                  q,
		Level:               quiz.LevelBeginner,
		Question:            q,
		Option1:             "Red",
		Option2:             "White",
		Option3:             "Blue",
		Option4:             "Green",
		CorrectIdx:          correct,
		Explanation:         "The flag is white with a red disc.",
		AdvancedExplanation: "Adopted as the national flag in 1999.",
		WikiLink:            "https://en.wikipedia.org/wiki/Flag_of_Japan",
	}
}

func newScreen(t *testing.T, items ...quiz.QuizItem) *PlayScreen {
	t.Helper()
	s, err := session.NewChallenge(items)
	if err != nil {
		t.Fatalf("NewChallenge: %v", err)
	}
	return New(s, "")
}

func key(s string) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: rune(s[0]), Text: s}
}

func replaced(t *testing.T, cmd tea.Cmd) router.ReplaceScreenMsg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	return msg
}

func TestAnswerByLetterAndNumber(t *testing.T) {
	tests := []struct {
		key     string
		correct bool
	}{
		{"b", true},
		{"B", true},
		{"2", true},
		{"a", false},
		{"4", false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			p := newScreen(t, item("Flag color?", 1))
			p.Update(key(tt.key))
			if p.feedback == nil {
				t.Fatal("expected feedback after answering")
			}
			if p.feedback.Correct != tt.correct {
				t.Errorf("Correct = %v, want %v", p.feedback.Correct, tt.correct)
			}
		})
	}
}

func TestAnswerWithCursor(t *testing.T) {
	p := newScreen(t, item("Flag color?", 2))
	p.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	p.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	p.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if p.feedback == nil || !p.feedback.Correct {
		t.Fatal("expected a correct answer at cursor 2")
	}
}

func TestFeedbackView(t *testing.T) {
	p := newScreen(t, item("Flag color?", 1))
	p.Update(key("a"))

	view := p.View(100, 30)
	for _, want := range []string{"Not quite.", "B) White", "white with a red disc", "Flag_of_Japan"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if strings.Contains(view, "1999") {
		t.Error("advanced explanation shown before toggle")
	}

	p.Update(key("m"))
	if !strings.Contains(p.View(100, 30), "1999") {
		t.Error("advanced explanation hidden after toggle")
	}
}

func TestSecondAnswerIgnored(t *testing.T) {
	p := newScreen(t, item("Q1", 0), item("Q2", 0))
	p.Update(key("a"))
	p.Update(key("b"))
	if score, _ := p.sess.Result(); score != 1 {
		t.Errorf("score = %d, want 1", score)
	}
}

func TestPlayThroughEndsOnSummary(t *testing.T) {
	p := newScreen(t, item("Q1", 0), item("Q2", 3))

	p.Update(key("a"))
	_, cmd := p.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd != nil {
		t.Fatal("advancing to Q2 should not emit a command")
	}
	if it, _ := p.sess.Current(); it.Question != "Q2" {
		t.Fatalf("current = %q, want Q2", it.Question)
	}
	if p.feedback != nil {
		t.Error("feedback should reset on a new question")
	}

	p.Update(key("c"))
	_, cmd = p.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	msg := replaced(t, cmd)
	if _, ok := msg.Screen.(*summary.SummaryScreen); !ok {
		t.Errorf("replacement = %T, want *summary.SummaryScreen", msg.Screen)
	}
}

func TestQuitConfirm(t *testing.T) {
	p := newScreen(t, item("Q1", 0), item("Q2", 0))

	if !p.HandlesEscape() {
		t.Fatal("play screen should own Esc")
	}

	p.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if !p.confirmQuit {
		t.Fatal("Esc should ask for confirmation")
	}
	if !strings.Contains(p.View(80, 24), "End session early?") {
		t.Error("confirm prompt not rendered")
	}

	p.Update(key("n"))
	if p.confirmQuit {
		t.Fatal("N should cancel the prompt")
	}

	p.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	_, cmd := p.Update(key("y"))
	replaced(t, cmd)
}

func TestTitleByProvenance(t *testing.T) {
	p := newScreen(t, item("Q1", 0))
	if p.Title() != "Challenge" {
		t.Errorf("Title = %q", p.Title())
	}

	s, err := session.NewReview([]quiz.QuizItem{item("Q1", 0)}, 5)
	if err != nil {
		t.Fatal(err)
	}
	if New(s, "").Title() != "Review" {
		t.Error("review session should be titled Review")
	}
}

func TestNoticeShown(t *testing.T) {
	s, _ := session.NewChallenge([]quiz.QuizItem{item("Q1", 0)})
	p := New(s, "Not saved: disk full")
	if !strings.Contains(p.View(100, 30), "Not saved: disk full") {
		t.Error("notice not rendered")
	}
}
