package home

import (
	"charm.land/lipgloss/v2"

	"github.com/anirudh/quizdeck/internal/ui/theme"
)

const bannerArt = `
  ██████╗ ██╗   ██╗██╗███████╗██████╗ ███████╗ ██████╗██╗  ██╗
 ██╔═══██╗██║   ██║██║╚══███╔╝██╔══██╗██╔════╝██╔════╝██║ ██╔╝
 ██║   ██║██║   ██║██║  ███╔╝ ██║  ██║█████╗  ██║     █████╔╝
 ██║▄▄ ██║██║   ██║██║ ███╔╝  ██║  ██║██╔══╝  ██║     ██╔═██╗
 ╚██████╔╝╚██████╔╝██║███████╗██████╔╝███████╗╚██████╗██║  ██╗
  ╚══▀▀═╝  ╚═════╝ ╚═╝╚══════╝╚═════╝ ╚══════╝ ╚═════╝╚═╝  ╚═╝`

const bannerCompact = "Q U I Z D E C K"

// renderBanner returns the QUIZDECK banner styled in the primary color.
// Uses a compact fallback for narrow terminals.
func renderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 64 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
