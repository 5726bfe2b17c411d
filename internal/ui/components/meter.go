package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/PPRAMANIK62/word-quest/internal/ui/theme"
)

// Meter is a labelled horizontal bar for a ratio between 0 and 1.
type Meter struct {
	Label string
	Ratio float64

	// Width is the total rendered width, label and caption included.
	Width int

	// Fill defaults to theme.Secondary.
	Fill color.Color

	// Caption follows the bar. Empty shows the ratio as a percentage.
	Caption string
}

// View renders the meter.
func (m Meter) View() string {
	var label string
	if m.Label != "" {
		label = lipgloss.NewStyle().Foreground(theme.Text).Render(m.Label) + "  "
	}
	caption := m.Caption
	if caption == "" {
		caption = fmt.Sprintf("%d%%", int(m.clamped()*100))
	}
	caption = "  " + caption

	cells := max(m.Width-lipgloss.Width(label)-lipgloss.Width(caption), 4)
	filled := int(float64(cells) * m.clamped())

	fill := m.Fill
	if fill == nil {
		fill = theme.Secondary
	}
	return label +
		lipgloss.NewStyle().Foreground(fill).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("░", cells-filled)) +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(caption)
}

func (m Meter) clamped() float64 {
	return min(max(m.Ratio, 0), 1)
}
