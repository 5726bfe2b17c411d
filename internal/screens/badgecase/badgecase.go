package badgecase

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/PPRAMANIK62/word-quest/internal/badges"
	"github.com/PPRAMANIK62/word-quest/internal/screen"
	"github.com/PPRAMANIK62/word-quest/internal/store"
	"github.com/PPRAMANIK62/word-quest/internal/ui/layout"
	"github.com/PPRAMANIK62/word-quest/internal/ui/theme"
)

type badgesLoadedMsg struct {
	Records []store.BadgeEventRecord
	Err     error
}

// BadgeCaseScreen displays every badge the learner has earned, one tab per
// badge type.
type BadgeCaseScreen struct {
	events       store.EventRepo
	all          []store.BadgeEventRecord
	selectedType int // index into badges.AllBadgeTypes
	scrollOffset int
	loaded       bool
	errMsg       string
}

var _ screen.Screen = (*BadgeCaseScreen)(nil)
var _ screen.KeyHintProvider = (*BadgeCaseScreen)(nil)

// New creates a new BadgeCaseScreen.
func New(events store.EventRepo) *BadgeCaseScreen {
	return &BadgeCaseScreen{events: events}
}

func (s *BadgeCaseScreen) Init() tea.Cmd {
	return func() tea.Msg {
		records, err := s.events.RecentBadges(context.Background(), 0)
		return badgesLoadedMsg{Records: records, Err: err}
	}
}

func (s *BadgeCaseScreen) Title() string {
	return "Badges"
}

func (s *BadgeCaseScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Switch type"},
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *BadgeCaseScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case badgesLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.all = msg.Records
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		types := badges.AllBadgeTypes()
		switch msg.String() {
		case "tab", "right", "l":
			s.selectedType = (s.selectedType + 1) % len(types)
			s.scrollOffset = 0
		case "shift+tab", "left", "h":
			s.selectedType = (s.selectedType - 1 + len(types)) % len(types)
			s.scrollOffset = 0
		case "up", "k":
			if s.scrollOffset > 0 {
				s.scrollOffset--
			}
		case "down", "j":
			if s.scrollOffset < len(s.filtered())-1 {
				s.scrollOffset++
			}
		}
	}
	return s, nil
}

func (s *BadgeCaseScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading badges...")
	}

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Width(width).Align(lipgloss.Center).Foreground(theme.Text).
		Render(fmt.Sprintf("\nTotal: %d badges\n", len(s.all))))
	b.WriteString("\n")

	types := badges.AllBadgeTypes()
	tabs := make([]string, 0, len(types))
	for i, t := range types {
		label := fmt.Sprintf("%s %s (%d)", t.Icon(), t.DisplayName(), s.countByType(t))
		style := lipgloss.NewStyle().Foreground(theme.TextDim)
		if i == s.selectedType {
			style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		}
		tabs = append(tabs, style.Render(label))
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(tabs, "     ")))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", max(min(width-8, 60), 0)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	filtered := s.filtered()
	if len(filtered) == 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("No badges of this type yet"))
		return b.String()
	}

	maxVisible := max(height-10, 3)
	start := s.scrollOffset
	end := min(start+maxVisible, len(filtered))

	for _, rec := range filtered[start:end] {
		subject := rec.Reason
		if rec.Word != "" {
			subject = rec.Word
		}
		line := fmt.Sprintf("  %-10s %-30s %s",
			badges.Rarity(rec.Rarity).DisplayName(), subject, rec.Timestamp.Local().Format("Jan 02, 2006"))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.RarityColor(rec.Rarity)).Render(line)))
		b.WriteString("\n")
	}

	if end < len(filtered) {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render(fmt.Sprintf("... %d more", len(filtered)-end)))
	}

	return b.String()
}

func (s *BadgeCaseScreen) filtered() []store.BadgeEventRecord {
	selected := string(badges.AllBadgeTypes()[s.selectedType])
	var out []store.BadgeEventRecord
	for _, r := range s.all {
		if r.BadgeType == selected {
			out = append(out, r)
		}
	}
	return out
}

func (s *BadgeCaseScreen) countByType(t badges.BadgeType) int {
	n := 0
	for _, r := range s.all {
		if r.BadgeType == string(t) {
			n++
		}
	}
	return n
}
