// Package generate drives model-assisted quiz drafting: topic in, validated
// playable quiz out, saved to the library or played immediately.
package generate

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/anirudh/quizdeck/internal/quiz"
	"github.com/anirudh/quizdeck/internal/quizgen"
	"github.com/anirudh/quizdeck/internal/router"
	"github.com/anirudh/quizdeck/internal/screen"
	"github.com/anirudh/quizdeck/internal/screens/player"
	"github.com/anirudh/quizdeck/internal/store"
	"github.com/anirudh/quizdeck/internal/ui/components"
	"github.com/anirudh/quizdeck/internal/ui/layout"
	"github.com/anirudh/quizdeck/internal/ui/theme"
)

type state int

const (
	stateTopic state = iota
	stateCount
	stateWaiting
	statePreview
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// draftedMsg carries the outcome of a draft request.
type draftedMsg struct {
	Quiz *quiz.Quiz
	Err  error
}

// savedMsg carries the outcome of saving the draft.
type savedMsg struct {
	Err error
}

// spinnerTickMsg animates the waiting view.
type spinnerTickMsg time.Time

// GenerateScreen walks through drafting a quiz with the configured provider.
type GenerateScreen struct {
	store     *store.Store
	generator *quizgen.Generator

	state      state
	topicInput components.TextInput
	countInput components.TextInput

	drafted *quiz.Quiz
	errMsg  string
	frame   int
	saved   bool
}

var _ screen.Screen = (*GenerateScreen)(nil)
var _ screen.KeyHintProvider = (*GenerateScreen)(nil)

// New creates the generate screen. The generator may be nil when no provider
// is configured; the screen explains how to set one up.
func New(st *store.Store, gen *quizgen.Generator) *GenerateScreen {
	return &GenerateScreen{
		store:      st,
		generator:  gen,
		topicInput: components.NewTextInput("Topic, e.g. the French Revolution", false, 200),
	}
}

func (g *GenerateScreen) Init() tea.Cmd {
	return g.topicInput.Init()
}

func (g *GenerateScreen) Title() string {
	return "Generate"
}

func (g *GenerateScreen) KeyHints() []layout.KeyHint {
	switch g.state {
	case stateWaiting:
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	case statePreview:
		return []layout.KeyHint{
			{Key: "P", Description: "Play now"},
			{Key: "S", Description: "Save to library"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Next"},
		{Key: "Esc", Description: "Back"},
	}
}

func (g *GenerateScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case draftedMsg:
		if msg.Err != nil {
			g.errMsg = msg.Err.Error()
			g.state = stateTopic
			return g, nil
		}
		g.drafted = msg.Quiz
		g.state = statePreview
		return g, nil

	case savedMsg:
		if msg.Err != nil {
			g.errMsg = msg.Err.Error()
			return g, nil
		}
		g.saved = true
		return g, nil

	case spinnerTickMsg:
		if g.state != stateWaiting {
			return g, nil
		}
		g.frame = (g.frame + 1) % len(spinnerFrames)
		return g, spinnerTick()

	case tea.KeyMsg:
		return g.handleKey(msg)
	}
	return g, nil
}

func (g *GenerateScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch g.state {
	case stateTopic:
		if g.generator == nil {
			return g, nil
		}
		if msg.String() == "enter" {
			if strings.TrimSpace(g.topicInput.Value()) == "" {
				return g, nil
			}
			g.countInput = components.NewTextInput(strconv.Itoa(quizgen.DefaultQuestionCount), true, 2)
			g.state = stateCount
			return g, g.countInput.Init()
		}
		var cmd tea.Cmd
		g.topicInput, cmd = g.topicInput.Update(msg)
		return g, cmd

	case stateCount:
		if msg.String() == "enter" {
			g.state = stateWaiting
			g.errMsg = ""
			return g, tea.Batch(g.draft(), spinnerTick())
		}
		var cmd tea.Cmd
		g.countInput, cmd = g.countInput.Update(msg)
		return g, cmd

	case statePreview:
		switch msg.String() {
		case "p", "P":
			q := *g.drafted
			return g, func() tea.Msg {
				return router.PushScreenMsg{Screen: player.New(q)}
			}
		case "s", "S":
			if !g.saved {
				return g, g.save()
			}
		}
	}
	return g, nil
}

func (g *GenerateScreen) draft() tea.Cmd {
	topic := strings.TrimSpace(g.topicInput.Value())
	count, _ := g.countInput.NumericValue()
	return func() tea.Msg {
		drafted, err := g.generator.Draft(context.Background(), quizgen.DraftRequest{
			Topic:     topic,
			Questions: count,
		})
		return draftedMsg{Quiz: drafted, Err: err}
	}
}

func (g *GenerateScreen) save() tea.Cmd {
	q := *g.drafted
	return func() tea.Msg {
		_, err := g.store.SaveQuiz(context.Background(), q, nil)
		return savedMsg{Err: err}
	}
}

func spinnerTick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}

func (g *GenerateScreen) View(width, height int) string {
	if g.generator == nil {
		content := theme.Body.Render("No model provider is configured.") + "\n\n" +
			theme.Hint.Render("Set QUIZDECK_ANTHROPIC_API_KEY, QUIZDECK_OPENAI_API_KEY,\nor QUIZDECK_GEMINI_API_KEY and try again.")
		return lipgloss.NewStyle().
			Width(width).
			Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Render(content)
	}

	var b strings.Builder

	switch g.state {
	case stateTopic:
		b.WriteString("  " + lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
			Render("What should the quiz cover?"))
		b.WriteString("\n\n  " + g.topicInput.View() + "\n")
		if g.errMsg != "" {
			b.WriteString("\n  " + theme.Incorrect.Render(g.errMsg) + "\n")
		}

	case stateCount:
		b.WriteString("  " + lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
			Render("How many questions?"))
		b.WriteString("\n\n  " + g.countInput.View() + "\n")

	case stateWaiting:
		content := spinnerFrames[g.frame] + "  Drafting with " + g.generator.ModelID() + "..."
		return lipgloss.NewStyle().
			Width(width).
			Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.Text).
			Render(content)

	case statePreview:
		b.WriteString("  " + theme.Correct.Render("Draft ready"))
		b.WriteString("\n\n")
		b.WriteString(fmt.Sprintf("  %s\n  %d questions\n",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(g.drafted.Title),
			len(g.drafted.Questions)))
		if g.drafted.Description != "" {
			b.WriteString("  " + theme.Hint.Render(g.drafted.Description) + "\n")
		}
		if g.saved {
			b.WriteString("\n  " + theme.Correct.Render("Saved to library") + "\n")
		}
		if g.errMsg != "" {
			b.WriteString("\n  " + theme.Incorrect.Render(g.errMsg) + "\n")
		}
	}

	return b.String()
}
