package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizbank/internal/ui/theme"
)

// Ratio returns current/target clamped to [0, 1]. A non-positive target
// counts as reached.
func Ratio(current, target int) float64 {
	if target <= 0 {
		return 1
	}
	r := float64(current) / float64(target)
	return max(0, min(r, 1))
}

// Gauge renders a bar filled to current/target followed by the counts,
// e.g. "████░░░░  40/100". The whole gauge is at most width cells wide.
func Gauge(current, target, width int) string {
	label := fmt.Sprintf("  %d/%d", current, target)
	barWidth := max(width-len(label), 4)
	filled := int(float64(barWidth) * Ratio(current, target))

	fill := lipgloss.NewStyle().Foreground(theme.Secondary).Render(strings.Repeat("█", filled))
	rest := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("░", barWidth-filled))
	return fill + rest + lipgloss.NewStyle().Foreground(theme.TextDim).Render(label)
}
