package player

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/anirudh/quizdeck/internal/analytics"
	"github.com/anirudh/quizdeck/internal/playback"
	"github.com/anirudh/quizdeck/internal/quiz"
	"github.com/anirudh/quizdeck/internal/router"
	"github.com/anirudh/quizdeck/internal/screen"
	"github.com/anirudh/quizdeck/internal/screens/results"
	"github.com/anirudh/quizdeck/internal/ui/components"
	"github.com/anirudh/quizdeck/internal/ui/layout"
)

// revealPause is how long the answer reveal stays up before auto-advancing.
const revealPause = 2 * time.Second

// PlayerScreen drives one quiz play-through.
type PlayerScreen struct {
	session *playback.QuizSession

	main  components.OptionList
	subs  []components.OptionList
	focus int // 0 is the main question, i>0 is sub-question i-1

	lastAnswer *quiz.Answer
}

var _ screen.Screen = (*PlayerScreen)(nil)
var _ screen.KeyHintProvider = (*PlayerScreen)(nil)

// New creates a player for the given quiz, starting at the intro view.
func New(q quiz.Quiz) *PlayerScreen {
	return &PlayerScreen{session: playback.NewQuizSession(q)}
}

func (p *PlayerScreen) Init() tea.Cmd {
	return nil
}

func (p *PlayerScreen) Title() string {
	return p.session.Title()
}

func (p *PlayerScreen) KeyHints() []layout.KeyHint {
	switch p.session.Phase() {
	case playback.PhaseNotStarted:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Start"},
			{Key: "Esc", Description: "Back"},
		}
	case playback.PhaseInProgress:
		if p.session.Revealed() {
			return []layout.KeyHint{
				{Key: "any key", Description: "Continue"},
			}
		}
		hints := []layout.KeyHint{
			{Key: "↑↓", Description: "Choose"},
			{Key: "Enter", Description: "Pick / Submit"},
		}
		if len(p.subs) > 0 {
			hints = append(hints, layout.KeyHint{Key: "Tab", Description: "Next part"})
		}
		return hints
	default:
		return []layout.KeyHint{
			{Key: "any key", Description: "Results"},
		}
	}
}

func (p *PlayerScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case revealTickMsg:
		if p.session.Phase() == playback.PhaseInProgress && p.session.Revealed() {
			return p.advance()
		}
		return p, nil

	case restartMsg:
		p.session.Restart()
		p.lastAnswer = nil
		return p, nil

	case tea.KeyMsg:
		return p.handleKey(msg)
	}
	return p, nil
}

func (p *PlayerScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch p.session.Phase() {
	case playback.PhaseNotStarted:
		if msg.String() == "enter" {
			if err := p.session.Start(); err != nil {
				return p, nil
			}
			p.buildQuestion()
		}
		return p, nil

	case playback.PhaseCompleted:
		return p, func() tea.Msg { return router.PopScreenMsg{} }
	}

	if p.session.Revealed() {
		return p.advance()
	}

	switch msg.String() {
	case "tab":
		p.setFocus(p.focus + 1)
		return p, nil
	case "shift+tab":
		p.setFocus(p.focus - 1)
		return p, nil
	case "enter":
		if p.focusedChosen() && p.session.CanSubmit() {
			return p.submit()
		}
	}

	p.forwardToFocused(msg)
	return p, nil
}

// forwardToFocused routes a key to the focused option list and mirrors the
// resulting choice into the session.
func (p *PlayerScreen) forwardToFocused(msg tea.Msg) {
	if p.focus == 0 {
		before := p.main.Chosen
		p.main, _ = p.main.Update(msg)
		if p.main.Chosen != before && p.main.Chosen >= 0 {
			_ = p.session.Select(p.main.Chosen)
			p.focusNextUnchosen()
		}
		return
	}

	i := p.focus - 1
	before := p.subs[i].Chosen
	p.subs[i], _ = p.subs[i].Update(msg)
	if p.subs[i].Chosen != before && p.subs[i].Chosen >= 0 {
		_ = p.session.SelectSub(i, p.subs[i].Chosen)
		p.focusNextUnchosen()
	}
}

func (p *PlayerScreen) submit() (screen.Screen, tea.Cmd) {
	answer, err := p.session.Submit()
	if err != nil {
		return p, nil
	}
	p.lastAnswer = &answer

	q := p.session.Current()
	p.main.Reveal(correctIndex(q.Options))
	for i := range p.subs {
		p.subs[i].Reveal(correctIndex(q.SubQuestions[i].Options))
	}

	return p, tea.Tick(revealPause, func(t time.Time) tea.Msg {
		return revealTickMsg(t)
	})
}

func (p *PlayerScreen) advance() (screen.Screen, tea.Cmd) {
	if err := p.session.Advance(); err != nil {
		return p, nil
	}
	if p.session.Phase() == playback.PhaseCompleted {
		return p, p.pushResults()
	}
	p.buildQuestion()
	return p, nil
}

func (p *PlayerScreen) pushResults() tea.Cmd {
	data := results.Data{
		Title:       p.session.Title(),
		Score:       p.session.TotalScore(),
		Correct:     p.session.CorrectCount(),
		Total:       p.session.Len(),
		Performance: analytics.Compute(p.session.Quiz(), p.session.Answers()),
	}
	restart := func() tea.Msg { return restartMsg{} }
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: results.New(data, restart)}
	}
}

// buildQuestion rebuilds the option lists for the current question.
func (p *PlayerScreen) buildQuestion() {
	q := p.session.Current()
	p.main = components.NewOptionList("", optionTexts(q.Options))
	p.subs = make([]components.OptionList, len(q.SubQuestions))
	for i, sub := range q.SubQuestions {
		p.subs[i] = components.NewOptionList("", optionTexts(sub.Options))
	}
	p.lastAnswer = nil
	p.setFocus(0)
}

func (p *PlayerScreen) setFocus(focus int) {
	n := 1 + len(p.subs)
	p.focus = ((focus % n) + n) % n
	p.main.Focused = p.focus == 0
	for i := range p.subs {
		p.subs[i].Focused = p.focus == i+1
	}
}

// focusNextUnchosen moves focus to the next block missing a choice, if any.
func (p *PlayerScreen) focusNextUnchosen() {
	if !p.main.HasChosen() {
		p.setFocus(0)
		return
	}
	for i := range p.subs {
		if !p.subs[i].HasChosen() {
			p.setFocus(i + 1)
			return
		}
	}
}

func (p *PlayerScreen) focusedChosen() bool {
	if p.focus == 0 {
		return p.main.HasChosen()
	}
	return p.subs[p.focus-1].HasChosen()
}

func optionTexts(opts []quiz.Option) []string {
	texts := make([]string, len(opts))
	for i, o := range opts {
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
