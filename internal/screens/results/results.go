// Package results renders the end-of-quiz summary with the per-concept
// performance breakdown.
package results

import (
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/anirudh/quizdeck/internal/analytics"
	"github.com/anirudh/quizdeck/internal/router"
	"github.com/anirudh/quizdeck/internal/screen"
	"github.com/anirudh/quizdeck/internal/ui/layout"
	"github.com/anirudh/quizdeck/internal/ui/theme"
)

// Data carries everything the results screen needs from a finished
// play-through.
type Data struct {
	Title       string
	Score       int
	Correct     int
	Total       int
	Performance []analytics.ConceptPerformance
}

// ResultsScreen displays the play-through summary.
type ResultsScreen struct {
	data    Data
	restart func() tea.Msg
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)

// New creates a results screen. The restart message is delivered to the
// screen below after this one pops.
func New(data Data, restart func() tea.Msg) *ResultsScreen {
	return &ResultsScreen{data: data, restart: restart}
}

func (r *ResultsScreen) Init() tea.Cmd {
	return nil
}

func (r *ResultsScreen) Title() string {
	return "Results"
}

func (r *ResultsScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Enter", Description: "Back"},
	}
	if r.restart != nil {
		hints = append(hints, layout.KeyHint{Key: "R", Description: "Play again"})
	}
	return hints
}

func (r *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return r, nil
	}

	switch kmsg.String() {
	case "enter":
		return r, func() tea.Msg { return router.PopScreenMsg{} }
	case "r", "R":
		if r.restart == nil {
			return r, nil
		}
		return r, tea.Sequence(
			func() tea.Msg { return router.PopScreenMsg{} },
			func() tea.Msg { return r.restart() },
		)
	}
	return r, nil
}

func (r *ResultsScreen) View(width, height int) string {
	d := r.data

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render(d.Title + " — complete!"))
	b.WriteString("\n\n")

	accuracy := 0
	if d.Total > 0 {
		accuracy = 100 * d.Correct / d.Total
	}
	statsLine := fmt.Sprintf("Score: %d        Correct: %d/%d        Accuracy: %d%%",
		d.Score, d.Correct, d.Total, accuracy)
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(statsLine))
	b.WriteString("\n\n")

	if len(d.Performance) > 0 {
		divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
			strings.Repeat("─", min(width-8, 60)))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("Concepts")))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
		b.WriteString("\n\n")

		for _, cp := range d.Performance {
			line := fmt.Sprintf("  %-24s %d/%d correct    %3d%%  %s",
				cp.Concept.Label, cp.Correct, cp.Total, cp.Percentage(), bandLabel(cp.Band()))
			style := lipgloss.NewStyle().Foreground(bandColor(cp.Band()))
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				style.Render(line)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func bandLabel(band analytics.Band) string {
	switch band {
	case analytics.BandStrong:
		return "strong"
	case analytics.BandModerate:
		return "needs review"
	default:
		return "weak"
	}
}

// bandColor maps a performance band to its theme color.
func bandColor(band analytics.Band) color.Color {
	switch band {
	case analytics.BandStrong:
		return theme.Success
	case analytics.BandModerate:
		return theme.Accent
	default:
		return theme.Error
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
