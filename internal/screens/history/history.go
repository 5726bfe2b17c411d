package history

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

// sessionLimit caps how many past sessions are listed.
const sessionLimit = 50

type historyLoadedMsg struct {
	Sessions []store.SessionSummaryRecord
	Badges   map[string][]store.BadgeEventRecord // sessionID → badges
	Err      error
}

// HistoryScreen displays past sessions and the badges they earned.
type HistoryScreen struct {
	events   store.EventRepo
	sessions []store.SessionSummaryRecord
	badges   map[string][]store.BadgeEventRecord
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(events store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		events:   events,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		sessions, err := s.events.QuerySessions(ctx, store.QueryOpts{Limit: sessionLimit})
		if err != nil {
			return historyLoadedMsg{Err: err}
		}

		bySession := make(map[string][]store.BadgeEventRecord)
		all, err := s.events.RecentBadges(ctx, 0)
		if err != nil {
			return historyLoadedMsg{Sessions: sessions, Badges: bySession}
		}
		for _, b := range all {
			bySession[b.SessionID] = append(bySession[b.SessionID], b)
		}
		return historyLoadedMsg{Sessions: sessions, Badges: bySession}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
			s.badges = msg.Badges
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
		case "enter":
			if len(s.sessions) > 0 {
				s.expanded[s.selected] = !s.expanded[s.selected]
			}
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.sessions) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No sessions yet. Start practicing!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, rec := range s.sessions {
		var accuracy float64
		if rec.Questions > 0 {
			accuracy = float64(rec.CorrectAnswers) / float64(rec.Questions) * 100
		}

		badgeStr := ""
		if n := len(s.badges[rec.SessionID]); n > 0 {
			badgeStr = fmt.Sprintf("  %d badge", n)
			if n > 1 {
				badgeStr += "s"
			}
		}

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %d:%02d  %d questions  %.0f%% accuracy  +%d pts%s",
			prefix, rec.Timestamp.Local().Format("Jan 02, 2006"),
			rec.DurationSecs/60, rec.DurationSecs%60,
			rec.Questions, accuracy, rec.Points, badgeStr)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(s.renderDetails(rec, width))
		}
	}

	return b.String()
}

func (s *HistoryScreen) renderDetails(rec store.SessionSummaryRecord, width int) string {
	var b strings.Builder
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		dim.Render(fmt.Sprintf("    Policy: %s    Correct: %d/%d", rec.Policy, rec.CorrectAnswers, rec.Questions))))
	b.WriteString("\n")

	earned := s.badges[rec.SessionID]
	if len(earned) == 0 {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			dim.Italic(true).Render("    No badges this session")))
		b.WriteString("\n")
		return b.String()
	}
	for _, e := range earned {
		t := badges.BadgeType(e.BadgeType)
		r := badges.Rarity(e.Rarity)
		line := fmt.Sprintf("    %s %s %s badge: %s", t.Icon(), r.DisplayName(), t.DisplayName(), e.Reason)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.RarityColor(e.Rarity)).Render(line)))
		b.WriteString("\n")
	}
	return b.String()
}
