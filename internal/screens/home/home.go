package home

import (
	"context"
	"fmt"
	"image/color"
	"log/slog"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/PPRAMANIK62/word-quest/internal/mastery"
	"github.com/PPRAMANIK62/word-quest/internal/router"
	"github.com/PPRAMANIK62/word-quest/internal/screen"
	"github.com/PPRAMANIK62/word-quest/internal/screens/badgecase"
	"github.com/PPRAMANIK62/word-quest/internal/screens/history"
	"github.com/PPRAMANIK62/word-quest/internal/screens/lessons"
	"github.com/PPRAMANIK62/word-quest/internal/screens/review"
	sessionscreen "github.com/PPRAMANIK62/word-quest/internal/screens/session"
	sess "github.com/PPRAMANIK62/word-quest/internal/session"
	"github.com/PPRAMANIK62/word-quest/internal/spacedrep"
	"github.com/PPRAMANIK62/word-quest/internal/store"
	"github.com/PPRAMANIK62/word-quest/internal/ui/components"
	"github.com/PPRAMANIK62/word-quest/internal/ui/layout"
	"github.com/PPRAMANIK62/word-quest/internal/ui/theme"
)

// Deps wires the home screen to storage and the screens it opens.
type Deps struct {
	Session     sessionscreen.Deps
	Vocab       store.VocabRepo
	Records     sess.RecordSource
	Events      store.EventRepo
	UserID      string
	ReviewLimit int
	Logger      *slog.Logger
	Now         func() time.Time
}

// Stats summarizes the learner's progress for the home screen.
type Stats struct {
	Words    int
	Lessons  int
	Learned  int
	Mastered int
	Due      int
	Points   int
	Badges   int
}

type statsLoadedMsg struct {
	Stats Stats
	Err   error
}

// Menu rows, in display order.
const (
	itemPractice = iota
	itemReviewDue
	itemLessons
	itemQueue
	itemHistory
	itemBadges
	itemQuit
)

// HomeScreen is the main menu.
type HomeScreen struct {
	deps   Deps
	stats  Stats
	menu   components.Menu
	loaded bool
	errMsg string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)
var _ screen.Refresher = (*HomeScreen)(nil)
var _ screen.StatusProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps Deps) *HomeScreen {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	h := &HomeScreen{deps: deps}
	h.menu = components.NewMenu(h.items())
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadStats()
}

// Refresh reloads the stats when the learner comes back from another screen.
func (h *HomeScreen) Refresh() tea.Cmd {
	return h.loadStats()
}

// Status returns the header counters.
func (h *HomeScreen) Status() layout.Status {
	return layout.Status{Points: h.stats.Points, Due: h.stats.Due}
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) loadStats() tea.Cmd {
	deps := h.deps
	now := deps.Now()
	return func() tea.Msg {
		st, err := LoadStats(context.Background(), deps, now)
		return statsLoadedMsg{Stats: st, Err: err}
	}
}

// LoadStats gathers the home screen counters.
func LoadStats(ctx context.Context, deps Deps, now time.Time) (Stats, error) {
	var st Stats

	entries, err := deps.Vocab.AllEntries(ctx)
	if err != nil {
		return st, fmt.Errorf("load vocabulary: %w", err)
	}
	st.Words = len(entries)

	ls, err := deps.Vocab.Lessons(ctx)
	if err != nil {
		return st, fmt.Errorf("load lessons: %w", err)
	}
	st.Lessons = len(ls)

	records, err := deps.Records.All(ctx, deps.UserID)
	if err != nil {
		return st, fmt.Errorf("load progress: %w", err)
	}
	for i := range records {
		if mastery.IsLearned(&records[i]) {
			st.Learned++
		}
		if records[i].Level == mastery.MaxLevel {
			st.Mastered++
		}
	}
	st.Due = len(spacedrep.DueQueue(records, now, 0))

	if st.Points, err = deps.Events.TotalPoints(ctx); err != nil {
		return st, fmt.Errorf("load points: %w", err)
	}
	if _, st.Badges, err = deps.Events.BadgeCounts(ctx); err != nil {
		return st, fmt.Errorf("load badges: %w", err)
	}
	return st, nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		h.loaded = true
		if msg.Err != nil {
			h.deps.Logger.Error("load home stats", "error", msg.Err)
			h.errMsg = msg.Err.Error()
			return h, nil
		}
		h.errMsg = ""
		h.stats = msg.Stats
		selected := h.menu.Selected
		h.menu = components.NewMenu(h.items())
		if selected < len(h.menu.Items) && !h.menu.Items[selected].Disabled {
			h.menu.Selected = selected
		}
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func push(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

func (h *HomeScreen) items() []components.MenuItem {
	d := h.deps
	st := h.stats
	items := make([]components.MenuItem, itemQuit+1)

	items[itemPractice] = components.MenuItem{
		Label:    "Practice",
		Hint:     plural(st.Words, "word"),
		Disabled: h.loaded && st.Words == 0,
		Action: func() tea.Cmd {
			return push(sessionscreen.New(d.Session, sessionscreen.Options{}))
		},
	}
	items[itemReviewDue] = components.MenuItem{
		Label:    "Review due words",
		Hint:     fmt.Sprintf("%d due", st.Due),
		Disabled: st.Due == 0,
		Action: func() tea.Cmd {
			return push(sessionscreen.New(d.Session, sessionscreen.Options{ReviewOnly: true}))
		},
	}
	items[itemLessons] = components.MenuItem{
		Label:    "Lessons",
		Hint:     plural(st.Lessons, "lesson"),
		Disabled: h.loaded && st.Lessons == 0,
		Action: func() tea.Cmd {
			return push(lessons.New(d.Vocab, d.Session))
		},
	}
	items[itemQueue] = components.MenuItem{
		Label: "Review queue",
		Action: func() tea.Cmd {
			return push(review.New(review.Deps{
				Entries: d.Vocab,
				Records: d.Records,
				UserID:  d.UserID,
				Limit:   d.ReviewLimit,
				Now:     d.Now,
				Session: d.Session,
			}))
		},
	}
	items[itemHistory] = components.MenuItem{
		Label: "History",
		Action: func() tea.Cmd {
			return push(history.New(d.Events))
		},
	}
	items[itemBadges] = components.MenuItem{
		Label: "Badges",
		Hint:  fmt.Sprintf("%d earned", st.Badges),
		Action: func() tea.Cmd {
			return push(badgecase.New(d.Events))
		},
	}
	items[itemQuit] = components.MenuItem{
		Label:  "Quit",
		Action: func() tea.Cmd { return tea.Quit },
	}
	return items
}

func (h *HomeScreen) View(width, height int) string {
	compact := layout.IsCompactWidth(width) || layout.IsCompactHeight(height+layout.HeaderHeight+layout.FooterHeight)

	var sections []string
	sections = append(sections, renderTitle(width, compact))

	switch {
	case h.errMsg != "":
		sections = append(sections, lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render("Could not load progress: "+h.errMsg))
	case !h.loaded:
		sections = append(sections, lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("Loading..."))
	case h.stats.Words == 0:
		sections = append(sections, lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Warning).
			Render("No vocabulary yet. Import a pack with `wordquest import <file>`."))
	default:
		sections = append(sections, renderStats(h.stats, width))
	}

	menu := theme.Card.Render(h.menu.View())
	sections = append(sections, lipgloss.PlaceHorizontal(width, lipgloss.Center, menu))

	gap := "\n\n"
	if compact {
		gap = "\n"
	}
	return strings.Join(sections, gap)
}

func renderTitle(width int, compact bool) string {
	title := theme.Title.Width(width).Render("W O R D Q U E S T")
	if compact {
		return title
	}
	sub := theme.Subtitle.Width(width).Render("Learn a word a day, keep it for life")
	return "\n" + title + "\n" + sub
}

func renderStats(st Stats, width int) string {
	cell := func(value int, label string, fg color.Color) string {
		return lipgloss.NewStyle().Bold(true).Foreground(fg).Render(fmt.Sprintf("%d", value)) +
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(" "+label)
	}
	line := strings.Join([]string{
		cell(st.Learned, fmt.Sprintf("of %d learned", st.Words), theme.Success),
		cell(st.Mastered, "mastered", theme.Accent),
		cell(st.Due, "due", theme.Warning),
		cell(st.Badges, "badges", theme.Secondary),
	}, "   ")
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, line)
}
