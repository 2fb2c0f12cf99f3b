package components

import (
	"charm.land/lipgloss/v2"

	"github.com/anirudh/quizdeck/internal/ui/theme"
)

// ContentWidth returns the uniform inner width used for card sections.
// All boxes are rendered at this width so they visually align.
func ContentWidth(frameWidth int) int {
	// Leave room for outer border (2) + inner padding (4)
	w := frameWidth - 6
	if w > 72 {
		w = 72
	}
	if w < 24 {
		w = 24
	}
	return w
}

// CenterFrame wraps content in a double-border frame, centering it within
// the given dimensions.
func CenterFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// CardBox wraps content in a rounded-border card at the given content width.
func CardBox(content string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(1, 2).
		Render(content)
}
