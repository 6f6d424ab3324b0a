// Package play is the question-by-question screen for a quiz session.
package play

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizbank/internal/quiz"
	"github.com/abhisek/quizbank/internal/router"
	"github.com/abhisek/quizbank/internal/screen"
	"github.com/abhisek/quizbank/internal/screens/summary"
	"github.com/abhisek/quizbank/internal/session"
	"github.com/abhisek/quizbank/internal/ui/components"
	"github.com/abhisek/quizbank/internal/ui/layout"
	"github.com/abhisek/quizbank/internal/ui/theme"
)

// PlayScreen drives one session.
type PlayScreen struct {
	sess     *session.Session
	choices  components.Choices
	feedback *session.Feedback

	showAdvanced bool
	confirmQuit  bool

	// notice is shown above the question, e.g. a save warning.
	notice string
}

var _ screen.Screen = (*PlayScreen)(nil)
var _ screen.KeyHintProvider = (*PlayScreen)(nil)
var _ screen.EscapeHandler = (*PlayScreen)(nil)

// New starts playing s. notice may be empty.
func New(s *session.Session, notice string) *PlayScreen {
	p := &PlayScreen{sess: s, notice: notice}
	p.loadQuestion()
	return p
}

func (p *PlayScreen) loadQuestion() {
	p.feedback = nil
	p.showAdvanced = false
	if it, ok := p.sess.Current(); ok {
		opts := it.Options()
		p.choices = components.NewChoices(opts[:])
	}
}

func (p *PlayScreen) Init() tea.Cmd { return nil }

func (p *PlayScreen) Title() string {
	if p.sess.Provenance == session.ProvenanceReview {
		return "Review"
	}
	return "Challenge"
}

func (p *PlayScreen) HandlesEscape() bool { return true }

func (p *PlayScreen) KeyHints() []layout.KeyHint {
	switch {
	case p.confirmQuit:
		return []layout.KeyHint{
			{Key: "Y", Description: "End session"},
			{Key: "N", Description: "Keep going"},
		}
	case p.feedback != nil:
		hints := []layout.KeyHint{{Key: "Enter", Description: "Next"}}
		if p.feedback.AdvancedExplanation != "" {
			hints = append(hints, layout.KeyHint{Key: "M", Description: "More"})
		}
		return append(hints, layout.KeyHint{Key: "Esc", Description: "Quit"})
	}
	return []layout.KeyHint{
		{Key: "A-D / 1-4", Description: "Answer"},
		{Key: "↑↓ Enter", Description: "Choose"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (p *PlayScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return p, nil
	}
	key := kmsg.String()

	if p.confirmQuit {
		switch key {
		case "y", "Y":
			p.confirmQuit = false
			return p, p.finish()
		case "n", "N", "esc":
			p.confirmQuit = false
		}
		return p, nil
	}

	if key == "esc" {
		p.confirmQuit = true
		return p, nil
	}

	if p.feedback != nil {
		switch key {
		case "m", "M":
			p.showAdvanced = !p.showAdvanced
		case "enter", "space", "right", "n":
			if !p.sess.Advance() {
				return p, p.finish()
			}
			p.loadQuestion()
		}
		return p, nil
	}

	switch key {
	case "1", "a", "A":
		return p.answer(0)
	case "2", "b", "B":
		return p.answer(1)
	case "3", "c", "C":
		return p.answer(2)
	case "4", "d", "D":
		return p.answer(3)
	case "enter":
		return p.answer(p.choices.Cursor)
	}

	var cmd tea.Cmd
	p.choices, cmd = p.choices.Update(msg)
	return p, cmd
}

func (p *PlayScreen) answer(idx int) (screen.Screen, tea.Cmd) {
	fb, err := p.sess.Select(idx)
	if err != nil {
		return p, nil
	}
	p.feedback = &fb
	p.choices.Cursor = idx
	p.choices.Reveal(fb.Selected, fb.CorrectIdx)
	return p, nil
}

// finish swaps this screen for the summary.
func (p *PlayScreen) finish() tea.Cmd {
	return router.Swap(summary.New(p.sess.Summary()))
}

func (p *PlayScreen) View(width, height int) string {
	if p.confirmQuit {
		return renderQuitConfirm(width)
	}

	it, ok := p.sess.Current()
	if !ok {
		return ""
	}
	score, total := p.sess.Result()
	cw := min(width-4, 76)

	var b strings.Builder

	info := fmt.Sprintf("%s  ·  Question %d/%d  ·  Score %d", it.Level.Label(), p.sess.Index()+1, total, score)
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(info))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", cw)))
	b.WriteString("\n")
	if p.notice != "" {
		b.WriteString(theme.Warning.Render(p.notice))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(lipgloss.NewStyle().Width(cw).Foreground(theme.Text).Bold(true).Render(it.Question))
	b.WriteString("\n\n")
	b.WriteString(p.choices.View())

	if p.feedback != nil {
		b.WriteString("\n")
		b.WriteString(p.renderFeedback(it, cw))
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}

func (p *PlayScreen) renderFeedback(it quiz.QuizItem, cw int) string {
	fb := p.feedback
	var b strings.Builder

	if fb.Correct {
		b.WriteString(theme.Correct.Render("Correct!"))
	} else {
		b.WriteString(theme.Incorrect.Render("Not quite."))
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(
			fmt.Sprintf("  The answer is %s) %s", components.OptionLabels[fb.CorrectIdx], it.CorrectOption())))
	}
	b.WriteString("\n\n")

	text := lipgloss.NewStyle().Width(cw).Foreground(theme.Text)
	if fb.Explanation != "" {
		b.WriteString(text.Render(fb.Explanation))
		b.WriteString("\n")
	}
	if p.showAdvanced && fb.AdvancedExplanation != "" {
		b.WriteString("\n")
		b.WriteString(text.Foreground(theme.TextDim).Render(fb.AdvancedExplanation))
		b.WriteString("\n")
	}
	if fb.WikiLink != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Underline(true).Render(fb.WikiLink))
		b.WriteString("\n")
	}
	return b.String()
}

func renderQuitConfirm(width int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(center.Foreground(theme.Text).Bold(true).Render("End session early?"))
	b.WriteString("\n\n")
	b.WriteString(center.Foreground(theme.Success).Render("[Y] Yes, show my score"))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.Primary).Render("[N] No, keep going"))
	return b.String()
}
