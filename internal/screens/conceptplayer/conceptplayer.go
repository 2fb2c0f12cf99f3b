// Package conceptplayer drives a concept-deck play-through: explanation and
// sub-explanation pages interleaved with their questions, ending in a
// results view.
package conceptplayer

import (
	tea "charm.land/bubbletea/v2"

	"github.com/anirudh/quizdeck/internal/concepts"
	"github.com/anirudh/quizdeck/internal/playback"
	"github.com/anirudh/quizdeck/internal/quiz"
	"github.com/anirudh/quizdeck/internal/router"
	"github.com/anirudh/quizdeck/internal/screen"
	"github.com/anirudh/quizdeck/internal/ui/components"
	"github.com/anirudh/quizdeck/internal/ui/layout"
)

// ConceptScreen presents a concept deck.
type ConceptScreen struct {
	title   string
	session *playback.ConceptSession
	options components.OptionList
}

var _ screen.Screen = (*ConceptScreen)(nil)
var _ screen.KeyHintProvider = (*ConceptScreen)(nil)

// New creates a concept player for the given deck.
func New(title string, deck concepts.Deck) *ConceptScreen {
	s := &ConceptScreen{
		title:   title,
		session: playback.NewConceptSession(deck),
	}
	s.syncQuestion()
	return s
}

// atResults also covers decks with no concepts at all, which have nothing to
// traverse.
func (c *ConceptScreen) atResults() bool {
	return c.session.Stage() == playback.StageResults || c.session.ConceptCount() == 0
}

func (c *ConceptScreen) Init() tea.Cmd {
	return nil
}

func (c *ConceptScreen) Title() string {
	return c.title
}

func (c *ConceptScreen) KeyHints() []layout.KeyHint {
	if c.atResults() {
		return []layout.KeyHint{
			{Key: "R", Description: "Start over"},
			{Key: "←", Description: "Back"},
			{Key: "Enter", Description: "Done"},
		}
	}
	switch c.session.Stage() {
	case playback.StageExplanation, playback.StageSubExplanation:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Continue"},
			{Key: "←", Description: "Back"},
		}
	}
	if c.session.Revealed() {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Continue"},
			{Key: "←", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choose"},
		{Key: "Enter", Description: "Submit"},
		{Key: "←", Description: "Back"},
	}
}

func (c *ConceptScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	key := kmsg.String()

	if c.atResults() {
		switch key {
		case "r", "R":
			c.session.Restart()
			c.syncQuestion()
			return c, nil
		case "left", "h":
			if c.session.ConceptCount() > 0 {
				c.session.Back()
				c.syncQuestion()
			}
			return c, nil
		case "enter", "esc":
			return c, func() tea.Msg { return router.PopScreenMsg{} }
		}
		return c, nil
	}

	if key == "left" || key == "h" {
		c.session.Back()
		c.syncQuestion()
		return c, nil
	}

	switch c.session.Stage() {
	case playback.StageExplanation, playback.StageSubExplanation:
		if key == "enter" {
			_ = c.session.Continue()
			c.syncQuestion()
		}
		return c, nil
	}

	return c.handleQuestionKey(kmsg)
}

func (c *ConceptScreen) handleQuestionKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if c.session.Revealed() {
		if msg.String() == "enter" {
			_ = c.session.Advance()
			c.syncQuestion()
		}
		return c, nil
	}

	if msg.String() == "enter" && c.options.HasChosen() {
		if _, err := c.session.Submit(); err == nil {
			c.options.Reveal(correctIndex(c.session.CurrentQuestion().Options))
		}
		return c, nil
	}

	before := c.options.Chosen
	c.options, _ = c.options.Update(msg)
	if c.options.Chosen != before && c.options.Chosen >= 0 {
		_ = c.session.Select(c.options.Chosen)
	}
	return c, nil
}

// syncQuestion rebuilds the option list for the current question, restoring
// reveal state for revisited slots.
func (c *ConceptScreen) syncQuestion() {
	stage := c.session.Stage()
	if stage != playback.StageQuestions && stage != playback.StageSubQuestions {
		c.options = components.OptionList{}
		return
	}

	q := c.session.CurrentQuestion()
	c.options = components.NewOptionList("", questionOptionTexts(q))
	if sel := c.session.Selected(); sel >= 0 {
		c.options.Chosen = sel
		c.options.Cursor = sel
	}
	if c.session.Revealed() {
		c.options.Reveal(correctIndex(q.Options))
	}
}

func questionOptionTexts(q concepts.Question) []string {
	texts := make([]string, len(q.Options))
	for i, o := range q.Options {
		texts[i] = o.Text
	}
	return texts
}

func correctIndex(opts []quiz.Option) int {
	for i, o := range opts {
		if o.IsCorrect {
			return i
		}
	}
	return -1
}
