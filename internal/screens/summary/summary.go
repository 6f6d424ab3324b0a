package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizbank/internal/router"
	"github.com/abhisek/quizbank/internal/screen"
	"github.com/abhisek/quizbank/internal/session"
	"github.com/abhisek/quizbank/internal/ui/components"
	"github.com/abhisek/quizbank/internal/ui/layout"
	"github.com/abhisek/quizbank/internal/ui/theme"
)

// maxMissed caps the recap list.
const maxMissed = 5

// SummaryScreen displays the session summary.
type SummaryScreen struct {
	summary session.Summary
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

func New(summary session.Summary) *SummaryScreen {
	return &SummaryScreen{summary: summary}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, router.Back()
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder

	title := "Challenge complete!"
	if sum.Provenance == session.ProvenanceReview {
		title = "Review complete!"
	}
	b.WriteString(center.Foreground(theme.Primary).Bold(true).Render(title))
	b.WriteString("\n\n")

	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60
	b.WriteString(center.Foreground(theme.TextDim).Render(
		fmt.Sprintf("%s  ·  Duration %d:%02d", sum.Level.Label(), mins, secs)))
	b.WriteString("\n\n")

	statsLine := fmt.Sprintf("Questions: %d        Correct: %d        Accuracy: %.0f%%",
		sum.Total, sum.Correct, sum.Accuracy*100)
	if sum.Answered < sum.Total {
		statsLine += fmt.Sprintf("        Skipped: %d", sum.Total-sum.Answered)
	}
	b.WriteString(center.Foreground(theme.Text).Render(statsLine))
	b.WriteString("\n\n")

	if len(sum.Missed) == 0 {
		if sum.Answered > 0 {
			b.WriteString(center.Foreground(theme.Success).Bold(true).Render("Perfect score!"))
			b.WriteString("\n")
		}
		return b.String()
	}

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Missed")))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	cw := min(width-8, 60)
	for i, a := range sum.Missed {
		if i == maxMissed {
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.TextDim).Render(
					fmt.Sprintf("…and %d more", len(sum.Missed)-maxMissed))))
			b.WriteString("\n")
			break
		}
		q := lipgloss.NewStyle().Width(cw).Foreground(theme.Text).Render(a.Item.Question)
		ans := lipgloss.NewStyle().Width(cw).Foreground(theme.Success).Render(
			fmt.Sprintf("  %s) %s", components.OptionLabels[a.Item.CorrectIdx], a.Item.CorrectOption()))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, q+"\n"+ans))
		b.WriteString("\n\n")
	}

	return b.String()
}
