// Package screen defines what the router stacks and the optional hooks a
// screen can implement.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizbank/internal/ui/layout"
)

// Screen is one page of the TUI. View renders the body only; the app
// draws the header and footer around it.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View(width, height int) string
	Title() string
}

// KeyHintProvider replaces the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// EscapeHandler is implemented by screens that handle Esc themselves,
// e.g. to confirm before leaving. The app then forwards Esc instead of
// popping the screen.
type EscapeHandler interface {
	HandlesEscape() bool
}

// RefreshMsg asks the active screen to reload what it displays. The router
// sends it to the screen revealed by a pop.
type RefreshMsg struct{}
