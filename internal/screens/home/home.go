// Package home is the landing screen: banner, library stats, and the main
// navigation menu.
package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/anirudh/quizdeck/internal/quizgen"
	"github.com/anirudh/quizdeck/internal/router"
	"github.com/anirudh/quizdeck/internal/screen"
	"github.com/anirudh/quizdeck/internal/screens/creator"
	"github.com/anirudh/quizdeck/internal/screens/generate"
	"github.com/anirudh/quizdeck/internal/screens/library"
	"github.com/anirudh/quizdeck/internal/store"
	"github.com/anirudh/quizdeck/internal/ui/components"
	"github.com/anirudh/quizdeck/internal/ui/theme"
)

// HomeScreen is the main entry screen of the application.
type HomeScreen struct {
	menu       components.Menu
	menuLabels []string

	quizCount   int
	deckCount   int
	folderCount int
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a HomeScreen wired to the given store and generator. The
// generator may be nil when no provider is configured.
func New(st *store.Store, gen *quizgen.Generator) *HomeScreen {
	var quizCount, deckCount, folderCount int
	if st != nil {
		ctx := context.Background()
		if summaries, err := st.ListQuizzes(ctx, nil); err == nil {
			for _, s := range summaries {
				if s.Type == store.TypeConcept {
					deckCount++
				} else {
					quizCount++
				}
			}
		}
		if folders, err := st.ListFolders(ctx); err == nil {
			folderCount = len(folders)
		}
	}

	menuLabels := []string{"LIBRARY", "CREATE QUIZ", "GENERATE QUIZ", "EXIT"}

	items := []components.MenuItem{
		{Label: menuLabels[0], Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: library.New(st)}
			}
		}},
		{Label: menuLabels[1], Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: creator.New(st)}
			}
		}},
		{Label: menuLabels[2], Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: generate.New(st, gen)}
			}
		}},
		{Label: menuLabels[3], Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		menu:        components.NewMenu(items),
		menuLabels:  menuLabels,
		quizCount:   quizCount,
		deckCount:   deckCount,
		folderCount: folderCount,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var sections []string

	sections = append(sections, renderBanner(cw))

	stats := fmt.Sprintf("%d quizzes   ·   %d decks   ·   %d folders",
		h.quizCount, h.deckCount, h.folderCount)
	sections = append(sections, components.CardBox(theme.Subtitle.Render(stats), cw))

	sections = append(sections, renderMenu(h.menuLabels, h.menu.Selected, cw))

	content := strings.Join(sections, "\n\n")
	return components.CenterFrame(content, width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

// renderMenu renders the menu labels as stacked rows inside a card.
func renderMenu(labels []string, selected int, cw int) string {
	var b strings.Builder
	for i, label := range labels {
		marker := "  "
		style := theme.Unselected
		if i == selected {
			marker = "▸ "
			style = theme.Selected
		}
		b.WriteString(marker + style.Render(label))
		if i < len(labels)-1 {
			b.WriteString("\n")
		}
	}
	return components.CardBox(b.String(), cw)
}
