package conceptplayer

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/anirudh/quizdeck/internal/playback"
	"github.com/anirudh/quizdeck/internal/ui/components"
	"github.com/anirudh/quizdeck/internal/ui/theme"
)

func (c *ConceptScreen) View(width, height int) string {
	if c.atResults() {
		return c.renderResults(width, height)
	}

	switch c.session.Stage() {
	case playback.StageExplanation:
		return c.renderExplanation(width, height)
	case playback.StageSubExplanation:
		return c.renderSubExplanation(width, height)
	}
	return c.renderQuestion(width, height)
}

func (c *ConceptScreen) renderExplanation(width, height int) string {
	concept := c.session.CurrentConcept()
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(theme.Title.Render(concept.Name))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Text).
		Width(cw - 8).
		Render(concept.Explanation))

	card := components.CardBox(b.String(), cw)
	frame := c.renderPosition(width) + "\n\n" + card
	return components.CenterFrame(frame, width, height)
}

func (c *ConceptScreen) renderSubExplanation(width, height int) string {
	sub := c.session.CurrentSubExplanation()
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(theme.Subtitle.Render(c.session.CurrentConcept().Name))
	b.WriteString("\n")
	b.WriteString(theme.Title.Render(sub.Title))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Text).
		Width(cw - 8).
		Render(sub.Explanation))

	card := components.CardBox(b.String(), cw)
	frame := c.renderPosition(width) + "\n\n" + card
	return components.CenterFrame(frame, width, height)
}

func (c *ConceptScreen) renderQuestion(width, height int) string {
	q := c.session.CurrentQuestion()

	var b strings.Builder
	b.WriteString("  " + c.renderPosition(width))
	b.WriteString("\n\n")
	b.WriteString("  " + lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(q.Text))
	b.WriteString("\n\n")

	for _, line := range strings.Split(strings.TrimRight(c.options.View(), "\n"), "\n") {
		b.WriteString("  " + line + "\n")
	}

	if c.session.Revealed() && q.Explanation != "" {
		b.WriteString("\n  " + lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Width(min(width-4, 76)).
			Render(q.Explanation) + "\n")
	}

	return b.String()
}

func (c *ConceptScreen) renderResults(width, height int) string {
	res := c.session.Results()
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(theme.Title.Render("Deck complete!"))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Render(fmt.Sprintf(
		"Answered: %d/%d    Correct: %d    Score: %d",
		res.Answered, c.session.TotalQuestions(), res.Correct, res.TotalScore)))
	b.WriteString("\n")
	b.WriteString(theme.Body.Render(fmt.Sprintf("Accuracy: %d%%", res.AccuracyPct)))

	card := components.CardBox(b.String(), cw)
	return components.CenterFrame(card, width, height)
}

// renderPosition shows where the learner is within the deck.
func (c *ConceptScreen) renderPosition(width int) string {
	pos := fmt.Sprintf("Concept %d of %d", c.session.ConceptIndex()+1, c.session.ConceptCount())
	if total := c.session.TotalQuestions(); total > 0 {
		pos += fmt.Sprintf("   ·   %d/%d answered", c.session.AnswerCount(), total)
	}
	return theme.Hint.Render(pos)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
