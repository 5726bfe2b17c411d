package app

import (
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/PPRAMANIK62/word-quest/internal/router"
	"github.com/PPRAMANIK62/word-quest/internal/screen"
	"github.com/PPRAMANIK62/word-quest/internal/screens/home"
	sessionscreen "github.com/PPRAMANIK62/word-quest/internal/screens/session"
	"github.com/PPRAMANIK62/word-quest/internal/ui/layout"
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router  *router.Router
	status  screen.StatusProvider
	pending tea.Cmd // Init commands of screens pushed before the program started
	width   int
	height  int
}

// newAppModel creates an AppModel rooted at the given screen. The header
// counters come from root when it provides them.
func newAppModel(root screen.Screen) AppModel {
	m := AppModel{router: router.New(root)}
	if sp, ok := root.(screen.StatusProvider); ok {
		m.status = sp
	}
	return m
}

func (m AppModel) Init() tea.Cmd {
	if m.pending != nil {
		return m.pending
	}
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

// Options select the screen the app opens on.
type Options struct {
	// LessonID starts a practice session for that lesson on top of the
	// home screen.
	LessonID string
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if ei, ok := m.router.Active().(screen.EscapeInterceptor); ok && ei.InterceptsEscape() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	var st layout.Status
	if m.status != nil {
		st = m.status.Status()
	}
	header := layout.RenderHeader(title, st, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	content := m.router.View(m.width, layout.ContentHeight(m.height))
	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if kp, ok := active.(screen.KeyHintProvider); ok {
		return kp.KeyHints()
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program on the home screen.
func Run(deps home.Deps, opts Options) error {
	root := home.New(deps)
	m := newAppModel(root)
	if opts.LessonID != "" {
		start := sessionscreen.New(deps.Session, sessionscreen.Options{LessonID: opts.LessonID})
		m.pending = tea.Batch(root.Init(), m.router.Push(start))
	}

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}
