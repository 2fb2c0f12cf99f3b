// Package creator imports quiz and concept-deck JSON files into the library,
// surfacing authoring errors before anything is saved.
package creator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/anirudh/quizdeck/internal/concepts"
	"github.com/anirudh/quizdeck/internal/quiz"
	"github.com/anirudh/quizdeck/internal/router"
	"github.com/anirudh/quizdeck/internal/screen"
	"github.com/anirudh/quizdeck/internal/store"
	"github.com/anirudh/quizdeck/internal/ui/components"
	"github.com/anirudh/quizdeck/internal/ui/layout"
	"github.com/anirudh/quizdeck/internal/ui/theme"
)

type state int

const (
	statePath state = iota
	stateDeckTitle
	statePreview
	stateSaved
)

// parsedMsg carries the outcome of loading and validating a file.
type parsedMsg struct {
	Quiz *quiz.Quiz
	Deck *concepts.Deck
	Err  error
}

// savedMsg carries the outcome of persisting the parsed document.
type savedMsg struct {
	ID  string
	Err error
}

// CreatorScreen walks through importing an authoring file.
type CreatorScreen struct {
	store *store.Store

	state      state
	pathInput  components.TextInput
	titleInput components.TextInput

	parsedQuiz *quiz.Quiz
	parsedDeck *concepts.Deck
	doneButton components.Button

	errLines []string
}

var _ screen.Screen = (*CreatorScreen)(nil)
var _ screen.KeyHintProvider = (*CreatorScreen)(nil)

// New creates the creator screen backed by the given store.
func New(st *store.Store) *CreatorScreen {
	return &CreatorScreen{
		store:     st,
		pathInput: components.NewTextInput("path/to/quiz.json", false, 200),
	}
}

func (c *CreatorScreen) Init() tea.Cmd {
	return c.pathInput.Init()
}

func (c *CreatorScreen) Title() string {
	return "Create"
}

func (c *CreatorScreen) KeyHints() []layout.KeyHint {
	switch c.state {
	case statePreview:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Save to library"},
			{Key: "Esc", Description: "Back"},
		}
	case stateSaved:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Done"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Load"},
		{Key: "Esc", Description: "Back"},
	}
}

func (c *CreatorScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case parsedMsg:
		return c.handleParsed(msg)

	case savedMsg:
		if msg.Err != nil {
			c.errLines = []string{msg.Err.Error()}
			c.state = statePath
			return c, nil
		}
		c.state = stateSaved
		c.doneButton = components.NewButton("Done", true, func() tea.Cmd {
			return func() tea.Msg { return router.PopScreenMsg{} }
		})
		return c, nil

	case tea.KeyMsg:
		return c.handleKey(msg)
	}
	return c, nil
}

func (c *CreatorScreen) handleParsed(msg parsedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		c.errLines = explainError(msg.Err)
		return c, nil
	}

	c.errLines = nil
	c.parsedQuiz = msg.Quiz
	c.parsedDeck = msg.Deck

	if c.parsedDeck != nil {
		// Decks carry no title of their own; ask for one before saving.
		c.titleInput = components.NewTextInput("Deck title", false, 120)
		c.state = stateDeckTitle
		return c, c.titleInput.Init()
	}
	c.state = statePreview
	return c, nil
}

func (c *CreatorScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch c.state {
	case statePath:
		if msg.String() == "enter" {
			path := strings.TrimSpace(c.pathInput.Value())
			if path == "" {
				return c, nil
			}
			return c, parseFile(path)
		}
		var cmd tea.Cmd
		c.pathInput, cmd = c.pathInput.Update(msg)
		return c, cmd

	case stateDeckTitle:
		if msg.String() == "enter" {
			if strings.TrimSpace(c.titleInput.Value()) == "" {
				return c, nil
			}
			c.state = statePreview
			return c, nil
		}
		var cmd tea.Cmd
		c.titleInput, cmd = c.titleInput.Update(msg)
		return c, cmd

	case statePreview:
		if msg.String() == "enter" {
			return c, c.save()
		}
		return c, nil

	case stateSaved:
		var cmd tea.Cmd
		c.doneButton, cmd = c.doneButton.Update(msg)
		return c, cmd
	}
	return c, nil
}

func (c *CreatorScreen) save() tea.Cmd {
	q := c.parsedQuiz
	d := c.parsedDeck
	title := strings.TrimSpace(c.titleInput.Value())
	return func() tea.Msg {
		ctx := context.Background()
		if d != nil {
			id, err := c.store.SaveDeck(ctx, title, "", *d, nil)
			return savedMsg{ID: id, Err: err}
		}
		id, err := c.store.SaveQuiz(ctx, *q, nil)
		return savedMsg{ID: id, Err: err}
	}
}

// parseFile reads and validates an authoring file. A top-level "concepts" key
// marks a concept deck; everything else is treated as a flat quiz.
func parseFile(path string) tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return parsedMsg{Err: err}
		}

		var probe map[string]json.RawMessage
		if err := json.Unmarshal(data, &probe); err != nil {
			return parsedMsg{Err: &quiz.SyntaxError{Err: err}}
		}

		if _, ok := probe["concepts"]; ok {
			deck, err := concepts.Parse(data)
			return parsedMsg{Deck: deck, Err: err}
		}

		q, err := quiz.Parse(data)
		return parsedMsg{Quiz: q, Err: err}
	}
}

// explainError turns a parse failure into display lines, keeping the
// syntax / validation distinction visible.
func explainError(err error) []string {
	var syn *quiz.SyntaxError
	if errors.As(err, &syn) {
		return []string{"The file is not valid JSON:", syn.Err.Error()}
	}

	var val *quiz.ValidationError
	if errors.As(err, &val) {
		lines := []string{"The document is well-formed but not playable:"}
		return append(lines, val.Problems...)
	}

	return []string{err.Error()}
}

func (c *CreatorScreen) View(width, height int) string {
	var b strings.Builder

	switch c.state {
	case statePath:
		b.WriteString("  " + lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
			Render("Import a quiz or concept deck from a JSON file"))
		b.WriteString("\n\n  " + c.pathInput.View() + "\n")

		for i, line := range c.errLines {
			style := theme.Incorrect
			if i > 0 {
				style = lipgloss.NewStyle().Foreground(theme.TextDim)
			}
			b.WriteString("\n  " + style.Render(line))
		}
		b.WriteString("\n")

	case stateDeckTitle:
		b.WriteString("  " + lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
			Render("Name this concept deck"))
		b.WriteString("\n\n  " + c.titleInput.View() + "\n")

	case statePreview:
		b.WriteString("  " + lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
			Render("Ready to save"))
		b.WriteString("\n\n")
		if c.parsedDeck != nil {
			b.WriteString(fmt.Sprintf("  %s\n  %d concepts, %d questions\n",
				theme.Body.Render(strings.TrimSpace(c.titleInput.Value())),
				len(c.parsedDeck.Concepts), c.parsedDeck.TotalQuestions()))
		} else {
			b.WriteString(fmt.Sprintf("  %s\n  %d questions\n",
				theme.Body.Render(c.parsedQuiz.Title), len(c.parsedQuiz.Questions)))
			if c.parsedQuiz.Description != "" {
				b.WriteString("  " + theme.Hint.Render(c.parsedQuiz.Description) + "\n")
			}
		}

	case stateSaved:
		return lipgloss.NewStyle().
			Width(width).
			Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Render(theme.Correct.Render("Saved to library") + "\n\n" +
				c.doneButton.View())
	}

	return b.String()
}
