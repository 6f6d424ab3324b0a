package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizbank/internal/ui/theme"
)

const bannerArt = `
  ██████╗ ██╗   ██╗██╗███████╗██████╗  █████╗ ███╗   ██╗██╗  ██╗
 ██╔═══██╗██║   ██║██║╚══███╔╝██╔══██╗██╔══██╗████╗  ██║██║ ██╔╝
 ██║   ██║██║   ██║██║  ███╔╝ ██████╔╝███████║██╔██╗ ██║█████╔╝
 ██║▄▄ ██║██║   ██║██║ ███╔╝  ██╔══██╗██╔══██║██║╚██╗██║██╔═██╗
 ╚██████╔╝╚██████╔╝██║███████╗██████╔╝██║  ██║██║ ╚████║██║  ██╗
  ╚══▀▀═╝  ╚═════╝ ╚═╝╚══════╝╚═════╝ ╚═╝  ╚═╝╚═╝  ╚═══╝╚═╝  ╚═╝`

const bannerCompact = "Q U I Z B A N K"

// RenderBanner returns the banner styled in the primary color, falling
// back to plain letters below 68 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 68 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
