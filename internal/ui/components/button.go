package components

import (
	tea "charm.land/bubbletea/v2"

	"github.com/PPRAMANIK62/word-quest/internal/ui/theme"
)

// Button emits Msg when enter or space is pressed while it is focused.
type Button struct {
	Label   string
	Focused bool
	Msg     tea.Msg
}

// Update returns a command carrying b.Msg on a press.
func (b Button) Update(msg tea.Msg) (Button, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok || !b.Focused || b.Msg == nil {
		return b, nil
	}
	switch key.String() {
	case "enter", "space":
		out := b.Msg
		return b, func() tea.Msg { return out }
	}
	return b, nil
}

// View renders the button.
func (b Button) View() string {
	if b.Focused {
		return theme.ButtonActive.Render("▸ " + b.Label)
	}
	return theme.ButtonInactive.Render("  " + b.Label)
}
