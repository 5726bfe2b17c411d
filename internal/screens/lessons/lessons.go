package lessons

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/PPRAMANIK62/word-quest/internal/router"
	"github.com/PPRAMANIK62/word-quest/internal/screen"
	sessionscreen "github.com/PPRAMANIK62/word-quest/internal/screens/session"
	"github.com/PPRAMANIK62/word-quest/internal/ui/components"
	"github.com/PPRAMANIK62/word-quest/internal/ui/layout"
	"github.com/PPRAMANIK62/word-quest/internal/ui/theme"
	"github.com/PPRAMANIK62/word-quest/internal/vocab"
)

// LessonSource lists imported lessons.
type LessonSource interface {
	Lessons(ctx context.Context) ([]vocab.Lesson, error)
}

type lessonsLoadedMsg struct {
	Lessons []vocab.Lesson
	Err     error
}

// LessonsScreen lets the learner practice a single lesson.
type LessonsScreen struct {
	source  LessonSource
	session sessionscreen.Deps
	lessons []vocab.Lesson
	menu    components.Menu
	loaded  bool
	errMsg  string
}

var _ screen.Screen = (*LessonsScreen)(nil)
var _ screen.KeyHintProvider = (*LessonsScreen)(nil)

// New creates a LessonsScreen that starts sessions with deps.
func New(source LessonSource, deps sessionscreen.Deps) *LessonsScreen {
	return &LessonsScreen{source: source, session: deps}
}

func (s *LessonsScreen) Init() tea.Cmd {
	return func() tea.Msg {
		ls, err := s.source.Lessons(context.Background())
		return lessonsLoadedMsg{Lessons: ls, Err: err}
	}
}

func (s *LessonsScreen) Title() string {
	return "Lessons"
}

func (s *LessonsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Practice"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *LessonsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case lessonsLoadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.lessons = msg.Lessons
		s.menu = components.NewMenu(s.items())
		return s, nil
	}

	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *LessonsScreen) items() []components.MenuItem {
	items := make([]components.MenuItem, 0, len(s.lessons))
	for _, l := range s.lessons {
		hint := fmt.Sprintf("%s  level %d", strings.Repeat("★", max(l.Difficulty, 1)), l.Difficulty)
		if l.EstimatedMinutes > 0 {
			hint += fmt.Sprintf("  ~%d min", l.EstimatedMinutes)
		}
		items = append(items, components.MenuItem{
			Label: l.Title,
			Hint:  hint,
			Action: func() tea.Cmd {
				next := sessionscreen.New(s.session, sessionscreen.Options{LessonID: l.ID})
				return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
			},
		})
	}
	return items
}

func (s *LessonsScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading lessons...")
	}
	if len(s.lessons) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No lessons imported. Run `wordquest import <pack>` first.")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.menu.View()))

	if sel := s.menu.Selected; sel >= 0 && sel < len(s.lessons) && s.lessons[sel].Description != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render(s.lessons[sel].Description))
	}
	return b.String()
}
