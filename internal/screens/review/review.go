package review

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/PPRAMANIK62/word-quest/internal/mastery"
	"github.com/PPRAMANIK62/word-quest/internal/router"
	"github.com/PPRAMANIK62/word-quest/internal/screen"
	sessionscreen "github.com/PPRAMANIK62/word-quest/internal/screens/session"
	sess "github.com/PPRAMANIK62/word-quest/internal/session"
	"github.com/PPRAMANIK62/word-quest/internal/spacedrep"
	"github.com/PPRAMANIK62/word-quest/internal/ui/components"
	"github.com/PPRAMANIK62/word-quest/internal/ui/layout"
	"github.com/PPRAMANIK62/word-quest/internal/ui/theme"
	"github.com/PPRAMANIK62/word-quest/internal/vocab"
)

// Display limits.
const (
	forecastDays = 7
	maxMistakes  = 5
)

// Deps are the collaborators the review screen reads from.
type Deps struct {
	Entries sess.EntrySource
	Records sess.RecordSource
	UserID  string
	Limit   int // due words listed; 0 lists all
	Now     func() time.Time

	// Session starts a review-only practice session.
	Session sessionscreen.Deps
}

type queueLoadedMsg struct {
	Due      []mastery.Record
	Mistakes []mastery.Record
	Forecast []int
	Words    map[string]vocab.Entry
	Err      error
}

// ReviewScreen shows the spaced-repetition queue: words due now, words with
// many mistakes, and how many words fall due over the coming week.
type ReviewScreen struct {
	deps   Deps
	now    time.Time
	data   queueLoadedMsg
	loaded bool
	offset int
}

var _ screen.Screen = (*ReviewScreen)(nil)
var _ screen.KeyHintProvider = (*ReviewScreen)(nil)
var _ screen.Refresher = (*ReviewScreen)(nil)

// New creates a ReviewScreen.
func New(deps Deps) *ReviewScreen {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &ReviewScreen{deps: deps}
}

func (s *ReviewScreen) Init() tea.Cmd {
	return s.load()
}

// Refresh reloads the queue after a review session ends.
func (s *ReviewScreen) Refresh() tea.Cmd {
	return s.load()
}

func (s *ReviewScreen) load() tea.Cmd {
	now := s.deps.Now()
	s.now = now
	return func() tea.Msg {
		ctx := context.Background()
		records, err := s.deps.Records.All(ctx, s.deps.UserID)
		if err != nil {
			return queueLoadedMsg{Err: err}
		}
		entries, err := s.deps.Entries.AllEntries(ctx)
		if err != nil {
			return queueLoadedMsg{Err: err}
		}
		words := make(map[string]vocab.Entry, len(entries))
		for _, e := range entries {
			words[e.ID] = e
		}
		return queueLoadedMsg{
			Due:      spacedrep.DueQueue(records, now, s.deps.Limit),
			Mistakes: spacedrep.Mistakes(records),
			Forecast: spacedrep.Forecast(records, now, forecastDays),
			Words:    words,
		}
	}
}

func (s *ReviewScreen) Title() string {
	return "Review Queue"
}

func (s *ReviewScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "↑↓", Description: "Scroll"}}
	if len(s.data.Due) > 0 {
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Start review"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (s *ReviewScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case queueLoadedMsg:
		s.data = msg
		s.loaded = true
		s.offset = 0
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.offset > 0 {
				s.offset--
			}
		case "down", "j":
			if s.offset < len(s.data.Due)-1 {
				s.offset++
			}
		case "enter":
			if len(s.data.Due) == 0 {
				return s, nil
			}
			next := sessionscreen.New(s.deps.Session, sessionscreen.Options{ReviewOnly: true})
			return s, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
		}
	}
	return s, nil
}

func (s *ReviewScreen) View(width, height int) string {
	if s.data.Err != nil {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.data.Err))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading review queue...")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(s.renderDue(width, height))
	b.WriteString(s.renderMistakes(width))
	b.WriteString(s.renderForecast(width))
	return b.String()
}

func (s *ReviewScreen) word(id string) string {
	if e, ok := s.data.Words[id]; ok {
		return fmt.Sprintf("%s (%s)", e.TargetWord, e.SourceWord)
	}
	return id
}

func (s *ReviewScreen) renderDue(width, height int) string {
	var b strings.Builder
	due := s.data.Due
	b.WriteString(heading(fmt.Sprintf("Due now: %d", len(due)), width))

	if len(due) == 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("Nothing to review. Come back later!"))
		b.WriteString("\n")
		return b.String()
	}

	maxVisible := max(height/2-4, 3)
	end := min(s.offset+maxVisible, len(due))
	for i := s.offset; i < end; i++ {
		r := &due[i]
		status := "due"
		color := theme.Warning
		if spacedrep.Status(r, s.now) == spacedrep.ReviewOverdue {
			status = fmt.Sprintf("overdue %.0fd", spacedrep.OverdueDays(r, s.now))
			color = theme.Error
		}
		line := fmt.Sprintf("  %-32s %-10s %s",
			s.word(r.VocabularyID), mastery.LevelLabel(r.Level),
			lipgloss.NewStyle().Foreground(color).Render(status))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.LevelColor(r.Level)).Render(line)))
		b.WriteString("\n")
	}
	if end < len(due) {
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render(fmt.Sprintf("... %d more", len(due)-end)))
		b.WriteString("\n")
	}
	return b.String()
}

func (s *ReviewScreen) renderMistakes(width int) string {
	if len(s.data.Mistakes) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(heading("Frequent mistakes", width))
	for i, r := range s.data.Mistakes {
		if i == maxMistakes {
			break
		}
		line := fmt.Sprintf("  %-32s %d/%d correct", s.word(r.VocabularyID), r.CorrectAnswers, r.TotalAttempts)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Text).Render(line)))
		b.WriteString("\n")
	}
	return b.String()
}

func (s *ReviewScreen) renderForecast(width int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(heading("Next 7 days", width))

	peak := 1
	for _, n := range s.data.Forecast {
		peak = max(peak, n)
	}
	for i, n := range s.data.Forecast {
		label := s.now.AddDate(0, 0, i).Format("Mon")
		if i == 0 {
			label = "Today"
		}
		meter := components.Meter{
			Label:   fmt.Sprintf("%-6s", label),
			Ratio:   float64(n) / float64(peak),
			Width:   36,
			Caption: fmt.Sprintf("%3d", n),
		}
		if i == 0 && n > 0 {
			meter.Fill = theme.Warning
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, meter.View()))
		b.WriteString("\n")
	}
	return b.String()
}

func heading(title string, width int) string {
	return lipgloss.NewStyle().
		Width(width).Align(lipgloss.Center).Foreground(theme.Primary).Bold(true).
		Render(title) + "\n\n"
}
