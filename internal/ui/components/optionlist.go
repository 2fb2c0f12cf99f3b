package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/anirudh/quizdeck/internal/ui/theme"
)

// OptionList renders answer options for a question. Selection is tracked
// internally; reveal state is set from outside once the answer is graded.
type OptionList struct {
	Prompt       string
	Options      []string
	Cursor       int
	Chosen       int
	Revealed     bool
	CorrectIndex int
	Focused      bool
}

// NewOptionList creates an option list with nothing chosen.
func NewOptionList(prompt string, options []string) OptionList {
	return OptionList{
		Prompt:       prompt,
		Options:      options,
		Cursor:       0,
		Chosen:       -1,
		CorrectIndex: -1,
		Focused:      true,
	}
}

// Init returns nil.
func (o OptionList) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation and choosing.
func (o OptionList) Update(msg tea.Msg) (OptionList, tea.Cmd) {
	if o.Revealed || !o.Focused {
		return o, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return o, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if o.Cursor > 0 {
			o.Cursor--
		}
	case "down", "j":
		if o.Cursor < len(o.Options)-1 {
			o.Cursor++
		}
	case "enter", " ":
		o.Chosen = o.Cursor
	}

	return o, nil
}

// Reveal locks the list and highlights the correct option.
func (o *OptionList) Reveal(correctIndex int) {
	o.Revealed = true
	o.CorrectIndex = correctIndex
}

// HasChosen reports whether an option has been picked.
func (o OptionList) HasChosen() bool {
	return o.Chosen >= 0
}

// View renders the option list.
func (o OptionList) View() string {
	var s string
	if o.Prompt != "" {
		s = lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(o.Prompt) + "\n\n"
	}

	for i, opt := range o.Options {
		label := optionLabel(i)
		prefix := "  "
		if i == o.Cursor && o.Focused && !o.Revealed {
			prefix = "▸ "
		}

		marker := " "
		if i == o.Chosen {
			marker = "●"
		}

		line := fmt.Sprintf("%s%s %s)  %s", prefix, marker, label, opt)

		switch {
		case o.Revealed && i == o.CorrectIndex:
			s += theme.Correct.Render(line) + "\n"
		case o.Revealed && i == o.Chosen:
			s += theme.Incorrect.Render(line) + "\n"
		case o.Revealed:
			s += lipgloss.NewStyle().Foreground(theme.TextDim).Render(line) + "\n"
		case i == o.Cursor && o.Focused:
			s += theme.Selected.Render(line) + "\n"
		case i == o.Chosen:
			s += lipgloss.NewStyle().Foreground(theme.Secondary).Render(line) + "\n"
		default:
			s += theme.Unselected.Render(line) + "\n"
		}
	}

	return s
}

// optionLabel maps an option index to its display letter.
func optionLabel(i int) string {
	return string(rune('A' + i))
}
