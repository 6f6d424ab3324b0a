package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizbank/internal/ui/theme"
)

const (
	minContentWidth = 20
	maxContentWidth = 64

	// frameChrome is the outer border (2) plus inner padding (4).
	frameChrome = 6
)

// ContentWidth is the width shared by every card inside a frame so that
// stacked cards line up.
func ContentWidth(frameWidth int) int {
	return max(minContentWidth, min(maxContentWidth, frameWidth-frameChrome))
}

// CabinetFrame centers content inside a double border filling the area.
func CabinetFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width-2).
		Height(height-2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// Card boxes content at content width cw.
func Card(content string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw-2).
		Padding(0, 1).
		Render(content)
}
