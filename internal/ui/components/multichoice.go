package components

import (
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/PPRAMANIK62/word-quest/internal/ui/theme"
)

// ChoiceMadeMsg is emitted when the learner picks an option.
type ChoiceMadeMsg struct {
	Index int
	Value string
}

// MultiChoice is a numbered option selector. Options are picked with the
// number keys, or with the arrows and Enter.
type MultiChoice struct {
	Options  []string
	Selected int
	chosen   int
	correct  int
}

// NewMultiChoice creates a selector over options.
func NewMultiChoice(options []string) MultiChoice {
	return MultiChoice{
		Options: options,
		chosen:  -1,
		correct: -1,
	}
}

// Update handles keyboard navigation and selection. Once an option has been
// chosen further keys are ignored.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.chosen >= 0 || len(m.Options) == 0 {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
		return m, nil
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
		return m, nil
	case "enter":
		return m.choose(m.Selected)
	}

	if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(m.Options) {
		return m.choose(n - 1)
	}
	return m, nil
}

func (m MultiChoice) choose(i int) (MultiChoice, tea.Cmd) {
	m.Selected = i
	m.chosen = i
	value := m.Options[i]
	return m, func() tea.Msg { return ChoiceMadeMsg{Index: i, Value: value} }
}

// Chosen returns the picked index, or -1.
func (m MultiChoice) Chosen() int {
	return m.chosen
}

// Reveal marks the option equal to answer as the correct one so View can
// color the result.
func (m *MultiChoice) Reveal(answer string) {
	for i, opt := range m.Options {
		if opt == answer {
			m.correct = i
			return
		}
	}
}

// View renders the options.
func (m MultiChoice) View() string {
	var b strings.Builder
	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Selected && m.chosen < 0 {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d)  %s", prefix, i+1, opt)

		style := theme.Unselected
		switch {
		case m.correct >= 0 && i == m.correct:
			style = theme.Correct
		case m.chosen >= 0 && i == m.chosen:
			style = theme.Incorrect
		case m.chosen >= 0:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == m.Selected:
			style = theme.Selected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
