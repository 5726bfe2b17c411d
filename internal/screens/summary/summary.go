package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/PPRAMANIK62/word-quest/internal/router"
	"github.com/PPRAMANIK62/word-quest/internal/screen"
	"github.com/PPRAMANIK62/word-quest/internal/session"
	"github.com/PPRAMANIK62/word-quest/internal/ui/components"
	"github.com/PPRAMANIK62/word-quest/internal/ui/layout"
	"github.com/PPRAMANIK62/word-quest/internal/ui/theme"
)

// maxMistakes caps the mistakes listed on screen.
const maxMistakes = 5

// SummaryScreen displays the session summary.
type SummaryScreen struct {
	summary *session.Summary
	button  components.Button
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(summary *session.Summary) *SummaryScreen {
	return &SummaryScreen{
		summary: summary,
		button:  components.Button{Label: "Continue", Focused: true, Msg: router.PopScreenMsg{}},
	}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.button, cmd = s.button.Update(msg)
	return s, cmd
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	if sum == nil {
		return ""
	}

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("Session complete!"))
	b.WriteString("\n\n")

	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Duration: %d:%02d    Policy: %s", mins, secs, sum.Policy)))
	b.WriteString("\n\n")

	statsLine := fmt.Sprintf("Questions: %d    Correct: %d    Best streak: %d    Points: +%d",
		sum.TotalQuestions, sum.TotalCorrect, sum.BestStreak, sum.Points)
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(statsLine))
	b.WriteString("\n\n")

	bar := components.Meter{Label: "Accuracy", Ratio: sum.Accuracy, Width: min(width-8, 60), Fill: theme.LevelColor(int(sum.Accuracy * 5))}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n\n")

	wordsLine := fmt.Sprintf("Words reviewed: %d    Newly learned: %d", sum.WordsReviewed, sum.WordsLearned)
	wordsStyle := lipgloss.NewStyle().Foreground(theme.Text)
	if sum.WordsLearned > 0 {
		wordsStyle = wordsStyle.Foreground(theme.Success)
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, wordsStyle.Render(wordsLine)))
	b.WriteString("\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", max(min(width-8, 60), 0)))

	if len(sum.Badges) > 0 {
		b.WriteString(section("Badges", divider, width))
		for _, a := range sum.Badges {
			line := fmt.Sprintf("  %s %s %s badge — %s",
				a.Type.Icon(),
				a.Rarity.DisplayName(),
				a.Type.DisplayName(),
				a.Reason)
			style := lipgloss.NewStyle().Foreground(theme.RarityColor(string(a.Rarity)))
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
			b.WriteString("\n")
		}
	}

	if len(sum.Mistakes) > 0 {
		b.WriteString(section("To review", divider, width))
		for i, m := range sum.Mistakes {
			if i == maxMistakes {
				more := fmt.Sprintf("  ... and %d more", len(sum.Mistakes)-maxMistakes)
				b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
					lipgloss.NewStyle().Foreground(theme.TextDim).Render(more)))
				b.WriteString("\n")
				break
			}
			given := m.UserAnswer
			if given == "" {
				given = "(no answer)"
			}
			line := fmt.Sprintf("  %s  ✗ %s", m.Expected, given)
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.Text).Render(line)))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.button.View()))
	return b.String()
}

func section(title, divider string, width int) string {
	return "\n" +
		lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(title)) +
		"\n" +
		lipgloss.PlaceHorizontal(width, lipgloss.Center, divider) +
		"\n\n"
}
