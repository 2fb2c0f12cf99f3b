package library

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/anirudh/quizdeck/internal/store"
	"github.com/anirudh/quizdeck/internal/ui/theme"
)

func (l *LibraryScreen) View(width, height int) string {
	switch l.mode {
	case modeMove:
		return l.renderMove(width)
	case modeConfirmDelete:
		return l.renderConfirm(width, height)
	case modeComments:
		return l.renderComments(width)
	case modeFolderInput:
		return l.renderFolderInput(width)
	}
	return l.renderBrowse(width)
}

func (l *LibraryScreen) renderBrowse(width int) string {
	var b strings.Builder

	b.WriteString("  " + theme.Hint.Render(l.breadcrumb()))
	b.WriteString("\n\n")

	if l.errMsg != "" {
		b.WriteString("  " + theme.Incorrect.Render(l.errMsg) + "\n\n")
	}

	if len(l.rows) == 0 {
		b.WriteString("  " + lipgloss.NewStyle().Foreground(theme.TextDim).
			Render("Nothing here yet. Save a quiz with `quizdeck create` or press N for a folder."))
		b.WriteString("\n")
		return b.String()
	}

	for i, r := range l.rows {
		prefix := "    "
		if i == l.cursor {
			prefix = "  ▸ "
		}

		var line string
		if r.folder != nil {
			line = l.folderLine(prefix, r.folder, i == l.cursor)
		} else {
			line = l.quizLine(prefix, r.quiz, i == l.cursor)
		}
		b.WriteString(line + "\n")
	}

	if l.status != "" {
		b.WriteString("\n  " + theme.Hint.Render(l.status) + "\n")
	}

	return b.String()
}

func (l *LibraryScreen) folderLine(prefix string, f *store.FolderNode, selected bool) string {
	color := theme.Primary
	if f.Color != "" {
		color = lipgloss.Color(f.Color)
	}
	icon := lipgloss.NewStyle().Foreground(color).Render("▣")
	label := fmt.Sprintf("%s  (%d)", f.Name, f.QuizCount)
	if selected {
		return prefix + icon + " " + theme.Selected.Render(label)
	}
	return prefix + icon + " " + theme.Unselected.Render(label)
}

func (l *LibraryScreen) quizLine(prefix string, q *store.QuizSummary, selected bool) string {
	kind := "quiz"
	if q.Type == store.TypeConcept {
		kind = "deck"
	}
	label := fmt.Sprintf("%-40s %s · %d questions", truncate(q.Title, 40), kind, q.QuestionCount)
	if selected {
		return prefix + theme.Selected.Render(label)
	}
	return prefix + theme.Unselected.Render(label)
}

func (l *LibraryScreen) renderMove(width int) string {
	q := l.selectedQuiz()
	title := ""
	if q != nil {
		title = q.Title
	}

	var b strings.Builder
	b.WriteString("  " + lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
		Render("Move \""+truncate(title, 50)+"\" to:"))
	b.WriteString("\n\n")

	targets := []string{"(no folder)"}
	for _, f := range l.moveTargets {
		targets = append(targets, f.Name)
	}

	for i, name := range targets {
		prefix := "    "
		style := theme.Unselected
		if i == l.moveCursor {
			prefix = "  ▸ "
			style = theme.Selected
		}
		b.WriteString(prefix + style.Render(name) + "\n")
	}
	return b.String()
}

func (l *LibraryScreen) renderConfirm(width, height int) string {
	content := theme.Body.Render(
		fmt.Sprintf("Delete \"%s\"?", truncate(l.pendingDelete.Title, 50))) +
		"\n\n" +
		theme.Hint.Render("This also removes its comments.  Y to delete, N to keep.")
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

func (l *LibraryScreen) renderComments(width int) string {
	var b strings.Builder
	b.WriteString("  " + lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
		Render("Notes on \""+truncate(l.commentQuiz.Title, 50)+"\""))
	b.WriteString("\n\n")

	if len(l.comments) == 0 {
		b.WriteString("  " + theme.Hint.Render("No notes yet.") + "\n")
	}
	for _, c := range l.comments {
		stamp := c.CreatedAt.Format("2006-01-02 15:04")
		b.WriteString("  " + lipgloss.NewStyle().Foreground(theme.TextDim).Render(stamp))
		b.WriteString("  " + theme.Body.Render(c.Body) + "\n")
	}

	b.WriteString("\n  " + l.commentInput.View() + "\n")
	return b.String()
}

func (l *LibraryScreen) renderFolderInput(width int) string {
	prompt := "New folder name:"
	if l.renameFolder != nil {
		prompt = "Rename \"" + l.renameFolder.Name + "\" to:"
	}
	return "  " + lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(prompt) +
		"\n\n  " + l.folderInput.View() + "\n"
}

// breadcrumb renders the folder descent, root first.
func (l *LibraryScreen) breadcrumb() string {
	parts := []string{"Library"}
	for _, f := range l.path {
		parts = append(parts, f.Name)
	}
	return strings.Join(parts, " / ")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}
