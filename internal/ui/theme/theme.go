// Package theme holds the palette and shared styles of the TUI.
package theme

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizbank/internal/quiz"
)

// Palette
var (
	Primary   = lipgloss.Color("#6366F1") // indigo
	Secondary = lipgloss.Color("#14B8A6") // teal
	Accent    = lipgloss.Color("#F59E0B") // amber
	Success   = lipgloss.Color("#22C55E")
	Error     = lipgloss.Color("#F43F5E")
	Text      = lipgloss.Color("#F8FAFC")
	TextDim   = lipgloss.Color("#94A3B8")
	BgDark    = lipgloss.Color("#0F172A")
	BgCard    = lipgloss.Color("#1E293B")
	Border    = lipgloss.Color("#334155")

	// Highlight fills the selected menu button.
	Highlight = lipgloss.Color("#FACC15")
)

// levelColors runs from easiest to hardest.
var levelColors = []lipgloss.Style{
	lipgloss.NewStyle().Foreground(Success),
	lipgloss.NewStyle().Foreground(Secondary),
	lipgloss.NewStyle().Foreground(Accent),
	lipgloss.NewStyle().Foreground(Error),
}

// ForLevel returns the bold style of a difficulty tier. Unknown levels get
// plain text.
func ForLevel(l quiz.Level) lipgloss.Style {
	r := l.Rank()
	if r < 0 || r >= len(levelColors) {
		return lipgloss.NewStyle().Foreground(Text).Bold(true)
	}
	return levelColors[r].Bold(true)
}

var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	Warning = lipgloss.NewStyle().
		Foreground(Accent)
)
