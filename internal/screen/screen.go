package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/PPRAMANIK62/word-quest/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Refresher is implemented by screens whose data can go stale while another
// screen is on top of them. Refresh is called when they become active again.
type Refresher interface {
	Refresh() tea.Cmd
}

// StatusProvider is implemented by screens that supply the header's points
// and due-word counters.
type StatusProvider interface {
	Status() layout.Status
}

// EscapeInterceptor is implemented by screens that handle Esc themselves,
// e.g. to confirm before abandoning work. While InterceptsEscape reports
// true the app forwards Esc instead of popping the screen.
type EscapeInterceptor interface {
	InterceptsEscape() bool
}
