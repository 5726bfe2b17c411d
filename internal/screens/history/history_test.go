package history

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PPRAMANIK62/word-quest/internal/store"
)

// fakeEvents serves canned query results; other methods panic if called.
type fakeEvents struct {
	store.EventRepo
	sessions []store.SessionSummaryRecord
	badges   []store.BadgeEventRecord
	err      error
}

func (f *fakeEvents) QuerySessions(_ context.Context, opts store.QueryOpts) ([]store.SessionSummaryRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	if opts.Limit > 0 && len(f.sessions) > opts.Limit {
		return f.sessions[:opts.Limit], nil
	}
	return f.sessions, nil
}

func (f *fakeEvents) RecentBadges(_ context.Context, _ int) ([]store.BadgeEventRecord, error) {
	return f.badges, nil
}

var day = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func loaded(t *testing.T, events *fakeEvents) *HistoryScreen {
	t.Helper()
	s := New(events)
	msg := s.Init()()
	scr, _ := s.Update(msg)
	return scr.(*HistoryScreen)
}

func key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestHistory_Loading(t *testing.T) {
	s := New(&fakeEvents{})
	assert.Equal(t, "History", s.Title())
	assert.Contains(t, s.View(80, 24), "Loading history")
}

func TestHistory_Empty(t *testing.T) {
	s := loaded(t, &fakeEvents{})
	assert.Contains(t, s.View(80, 24), "No sessions yet")
}

func TestHistory_Error(t *testing.T) {
	s := loaded(t, &fakeEvents{err: errors.New("db locked")})
	assert.Contains(t, s.View(80, 24), "db locked")
}

func TestHistory_ListAndExpand(t *testing.T) {
	events := &fakeEvents{
		sessions: []store.SessionSummaryRecord{
			{SessionID: "s2", Policy: "linear", Questions: 10, CorrectAnswers: 8, DurationSecs: 125, Points: 26, Timestamp: day},
			{SessionID: "s1", Policy: "linear", Questions: 4, CorrectAnswers: 1, DurationSecs: 40, Points: 15, Timestamp: day.Add(-24 * time.Hour)},
		},
		badges: []store.BadgeEventRecord{
			{BadgeEventData: store.BadgeEventData{BadgeType: "session", Rarity: "rare", SessionID: "s2", Reason: "80% accuracy"}},
		},
	}
	s := loaded(t, events)

	view := s.View(120, 30)
	assert.Contains(t, view, "10 questions")
	assert.Contains(t, view, "80% accuracy")
	assert.Contains(t, view, "2:05")
	assert.Contains(t, view, "+26 pts")
	assert.Contains(t, view, "1 badge")
	assert.NotContains(t, view, "Policy:")

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	view = s.View(120, 30)
	assert.Contains(t, view, "Policy: linear")
	assert.Contains(t, view, "Rare Session badge: 80% accuracy")

	s.Update(key('j'))
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	view = s.View(120, 30)
	assert.Contains(t, view, "No badges this session")
	require.Equal(t, 1, s.selected)

	// Navigation stops at the last row.
	s.Update(key('j'))
	assert.Equal(t, 1, s.selected)
}

func TestHistory_SelectedMarker(t *testing.T) {
	events := &fakeEvents{sessions: []store.SessionSummaryRecord{
		{SessionID: "a", Questions: 2, Timestamp: day},
		{SessionID: "b", Questions: 3, Timestamp: day},
	}}
	s := loaded(t, events)
	lines := strings.Split(s.View(100, 20), "\n")
	var marked []string
	for _, l := range lines {
		if strings.Contains(l, "> ") {
			marked = append(marked, l)
		}
	}
	require.Len(t, marked, 1)
	assert.Contains(t, marked[0], "2 questions")
}
