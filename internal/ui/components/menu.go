package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/PPRAMANIK62/word-quest/internal/ui/theme"
)

// MenuItem is one menu entry.
type MenuItem struct {
	Label    string
	Hint     string // dim text after the label, e.g. "3 due"
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical list of actions. The cursor never rests on a disabled
// item unless every item is disabled.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu returns a menu with the cursor on the first enabled item.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items, Selected: -1}
	if next := m.step(+1); next >= 0 {
		m.Selected = next
	} else {
		m.Selected = 0
	}
	return m
}

// step returns the next enabled index from the cursor in direction dir, or
// -1 when there is none.
func (m Menu) step(dir int) int {
	for i := m.Selected + dir; i >= 0 && i < len(m.Items); i += dir {
		if !m.Items[i].Disabled {
			return i
		}
	}
	return -1
}

// Update moves the cursor with up/down or j/k and runs the selected action on
// enter. Digits 1-9 run the item at that position.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	switch s := key.String(); s {
	case "up", "k":
		if i := m.step(-1); i >= 0 {
			m.Selected = i
		}
	case "down", "j":
		if i := m.step(+1); i >= 0 {
			m.Selected = i
		}
	case "enter":
		return m, m.run(m.Selected)
	default:
		if len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
			if i := int(s[0] - '1'); i < len(m.Items) && !m.Items[i].Disabled {
				m.Selected = i
				return m, m.run(i)
			}
		}
	}
	return m, nil
}

func (m Menu) run(i int) tea.Cmd {
	if i < 0 || i >= len(m.Items) {
		return nil
	}
	item := m.Items[i]
	if item.Disabled || item.Action == nil {
		return nil
	}
	return item.Action()
}

// View renders the menu with disabled items dimmed.
func (m Menu) View() string {
	hint := lipgloss.NewStyle().Foreground(theme.TextDim)
	disabled := lipgloss.NewStyle().Foreground(theme.Border)

	var b strings.Builder
	for i, item := range m.Items {
		switch {
		case item.Disabled:
			b.WriteString(disabled.Render("    " + item.Label))
		case i == m.Selected:
			b.WriteString(theme.Selected.Render("  ▸ " + item.Label))
		default:
			b.WriteString(theme.Unselected.Render("    " + item.Label))
		}
		if item.Hint != "" {
			b.WriteString("  " + hint.Render(item.Hint))
		}
		b.WriteString("\n")
	}
	return b.String()
}
