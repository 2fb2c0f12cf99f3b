package player

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/anirudh/quizdeck/internal/playback"
	"github.com/anirudh/quizdeck/internal/ui/components"
	"github.com/anirudh/quizdeck/internal/ui/theme"
)

func (p *PlayerScreen) View(width, height int) string {
	switch p.session.Phase() {
	case playback.PhaseNotStarted:
		return p.renderIntro(width, height)
	case playback.PhaseCompleted:
		return p.renderComplete(width, height)
	}
	return p.renderQuestion(width, height)
}

func (p *PlayerScreen) renderIntro(width, height int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(theme.Title.Render(p.session.Title()))
	b.WriteString("\n\n")
	if desc := p.session.Description(); desc != "" {
		b.WriteString(theme.Subtitle.Render(desc))
		b.WriteString("\n\n")
	}
	b.WriteString(theme.Body.Render(fmt.Sprintf("%d questions", p.session.Len())))
	b.WriteString("\n\n")
	b.WriteString(theme.Hint.Render("Press Enter to start"))

	card := components.CardBox(b.String(), cw)
	return components.CenterFrame(card, width, height)
}

func (p *PlayerScreen) renderQuestion(width, height int) string {
	q := p.session.Current()

	var b strings.Builder

	progress := components.NewProgressBar(
		fmt.Sprintf("Question %d of %d", p.session.Index()+1, p.session.Len()),
		float64(p.session.Index())/float64(p.session.Len()),
		false,
		min(width-4, 60),
	)
	b.WriteString("  " + progress.View())
	b.WriteString("\n\n")

	b.WriteString("  " + lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(q.Text))
	b.WriteString("\n\n")
	b.WriteString(indent(p.main.View(), 2))

	for i, sub := range q.SubQuestions {
		b.WriteString("\n")
		b.WriteString("  " + lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
			Render(fmt.Sprintf("Follow-up %d: %s", i+1, sub.Text)))
		b.WriteString("\n\n")
		b.WriteString(indent(p.subs[i].View(), 2))
	}

	if p.session.Revealed() && p.lastAnswer != nil {
		b.WriteString("\n")
		b.WriteString(p.renderReveal(q.Explanation, q.Citations, width))
	}

	return b.String()
}

// renderReveal shows the verdict banner, score, and explanation after submit.
func (p *PlayerScreen) renderReveal(explanation, citations string, width int) string {
	a := p.lastAnswer

	verdict := theme.Incorrect.Render("✗ Incorrect")
	if a.IsCorrect {
		verdict = theme.Correct.Render("✓ Correct")
	}

	score := lipgloss.NewStyle().Foreground(theme.Accent).
		Render(fmt.Sprintf("%+d points", a.TotalScore()))

	var b strings.Builder
	b.WriteString("  " + verdict + "   " + score + "\n")
	if explanation != "" {
		b.WriteString("\n  " + lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Width(min(width-4, 76)).
			Render(explanation) + "\n")
	}
	if citations != "" {
		b.WriteString("  " + theme.Hint.Render(citations) + "\n")
	}
	return b.String()
}

func (p *PlayerScreen) renderComplete(width, height int) string {
	content := theme.Title.Render("Quiz complete!") + "\n\n" +
		theme.Hint.Render("Press any key to go back")
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

func indent(s string, n int) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, line := range lines {
		lines[i] = pad + line
	}
	return strings.Join(lines, "\n") + "\n"
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
