package review

import (
	"context"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PPRAMANIK62/word-quest/internal/mastery"
	"github.com/PPRAMANIK62/word-quest/internal/router"
	"github.com/PPRAMANIK62/word-quest/internal/vocab"
)

var testNow = time.Date(2026, 4, 6, 10, 0, 0, 0, time.UTC)

type memVocab struct{ entries []vocab.Entry }

func (m *memVocab) Entries(_ context.Context, _ string) ([]vocab.Entry, error) { return m.entries, nil }
func (m *memVocab) AllEntries(_ context.Context) ([]vocab.Entry, error)        { return m.entries, nil }

type memRecords struct{ records []mastery.Record }

func (m *memRecords) All(_ context.Context, _ string) ([]mastery.Record, error) {
	return m.records, nil
}

func testScreen(records ...mastery.Record) *ReviewScreen {
	entries := []vocab.Entry{
		{ID: "es.1.1", SourceWord: "cat", TargetWord: "gato"},
		{ID: "es.1.2", SourceWord: "dog", TargetWord: "perro"},
		{ID: "es.1.3", SourceWord: "house", TargetWord: "casa"},
	}
	return New(Deps{
		Entries: &memVocab{entries: entries},
		Records: &memRecords{records: records},
		UserID:  "local",
		Now:     func() time.Time { return testNow },
	})
}

func load(t *testing.T, s *ReviewScreen) *ReviewScreen {
	t.Helper()
	scr, _ := s.Update(s.Init()())
	return scr.(*ReviewScreen)
}

func TestReview_Loading(t *testing.T) {
	s := testScreen()
	assert.Equal(t, "Review Queue", s.Title())
	assert.Contains(t, s.View(100, 30), "Loading review queue")
}

func TestReview_NothingDue(t *testing.T) {
	s := load(t, testScreen(mastery.Record{
		VocabularyID: "es.1.1", Level: 2, TotalAttempts: 3, CorrectAnswers: 3,
		NextReviewAt: testNow.Add(48 * time.Hour),
	}))

	view := s.View(100, 30)
	assert.Contains(t, view, "Due now: 0")
	assert.Contains(t, view, "Nothing to review")

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Nil(t, cmd)
	for _, h := range s.KeyHints() {
		assert.NotEqual(t, "Enter", h.Key)
	}
}

func TestReview_DueAndMistakes(t *testing.T) {
	s := load(t, testScreen(
		mastery.Record{VocabularyID: "es.1.1", Level: 1, TotalAttempts: 5, CorrectAnswers: 1,
			LastReviewedAt: testNow.Add(-48 * time.Hour), NextReviewAt: testNow.Add(-24 * time.Hour)},
		mastery.Record{VocabularyID: "es.1.2", Level: 3, TotalAttempts: 4, CorrectAnswers: 4,
			NextReviewAt: testNow.Add(-time.Minute)},
		mastery.Record{VocabularyID: "es.1.3", Level: 2, TotalAttempts: 2, CorrectAnswers: 2,
			NextReviewAt: testNow.Add(30 * time.Hour)},
	))

	view := s.View(120, 40)
	assert.Contains(t, view, "Due now: 2")
	assert.Contains(t, view, "gato (cat)")
	assert.Contains(t, view, "perro (dog)")
	assert.Contains(t, view, "Frequent mistakes")
	assert.Contains(t, view, "1/5 correct")
	assert.Contains(t, view, "Today")

	require.Len(t, s.data.Forecast, forecastDays)
	assert.Equal(t, 2, s.data.Forecast[0])
	assert.Equal(t, 1, s.data.Forecast[1])
}

func TestReview_EnterStartsReviewSession(t *testing.T) {
	s := load(t, testScreen(mastery.Record{
		VocabularyID: "es.1.1", Level: 1, TotalAttempts: 1, CorrectAnswers: 1,
		NextReviewAt: testNow.Add(-time.Hour),
	}))

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	push, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	assert.Equal(t, "Review", push.Screen.Title())
}

func TestReview_RefreshReloads(t *testing.T) {
	records := &memRecords{}
	s := New(Deps{
		Entries: &memVocab{},
		Records: records,
		Now:     func() time.Time { return testNow },
	})
	s = load(t, s)
	assert.Empty(t, s.data.Due)

	records.records = []mastery.Record{{VocabularyID: "x", Level: 1, NextReviewAt: testNow.Add(-time.Hour)}}
	scr, _ := s.Update(s.Refresh()())
	assert.Len(t, scr.(*ReviewScreen).data.Due, 1)
	assert.Contains(t, s.View(100, 30), "Due now: 1")
}
