// Package layout draws the frame around screens: a header with the learner's
// status, the screen content, and a footer of key hints.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/PPRAMANIK62/word-quest/internal/ui/theme"
)

// Frame heights, borders included.
const (
	HeaderHeight = 3
	FooterHeight = 3
)

// Terminal size thresholds.
const (
	MinWidth  = 80
	MinHeight = 24

	compactWidth  = 100
	compactHeight = 30
)

// KeyHint is a key binding shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// Status is the learner summary shown on the right of the header.
type Status struct {
	Points int
	Due    int // words due for review
}

func IsCompactWidth(width int) bool { return width < compactWidth }
func IsCompactHeight(height int) bool { return height < compactHeight }

// IsTooSmall reports whether the terminal cannot fit a question screen.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// ContentHeight returns the rows left for a screen inside the frame.
func ContentHeight(total int) int {
	return max(total-HeaderHeight-FooterHeight, 0)
}

// RenderMinSizeMessage asks the learner to enlarge the terminal.
func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Text).
		Render(fmt.Sprintf("WordQuest needs at least %d×%d.\nThis window is %d×%d.", MinWidth, MinHeight, width, height))
}

var barStyle = lipgloss.NewStyle().
	Background(theme.BgCard).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(theme.Border)

// RenderHeader renders the app name, the screen title centered, and the
// learner status.
func RenderHeader(title string, st Status, width int) string {
	brand := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  WordQuest")
	center := lipgloss.NewStyle().Foreground(theme.Text).Render(title)

	due := lipgloss.NewStyle().Foreground(theme.TextDim)
	if st.Due > 0 {
		due = due.Foreground(theme.Warning)
	}
	status := lipgloss.NewStyle().Foreground(theme.Accent).Render(fmt.Sprintf("★ %d pts", st.Points)) +
		"   " + due.Render(fmt.Sprintf("↻ %d due", st.Due))

	return barStyle.Width(width).Render(spread(width-4, brand, center, status))
}

// spread places center in the middle of width with left and right at the
// edges, keeping at least one space between them.
func spread(width int, left, center, right string) string {
	lw, cw, rw := lipgloss.Width(left), lipgloss.Width(center), lipgloss.Width(right)
	gapL := max((width-cw)/2-lw, 1)
	gapR := max(width-lw-gapL-cw-rw, 1)
	return left + strings.Repeat(" ", gapL) + center + strings.Repeat(" ", gapR) + right
}

// RenderFooter renders the key hints.
func RenderFooter(hints []KeyHint, width int) string {
	key := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	desc := lipgloss.NewStyle().Foreground(theme.TextDim)

	var b strings.Builder
	b.WriteString("  ")
	for i, h := range hints {
		if i > 0 {
			b.WriteString("   ")
		}
		b.WriteString(key.Render(h.Key) + " " + desc.Render(h.Description))
	}
	return barStyle.Width(width).Render(b.String())
}

// RenderFrame stacks header, content and footer, giving the content
// whatever height the bars leave.
func RenderFrame(header, content, footer string, width, height int) string {
	rows := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().Width(width).Height(rows).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}
