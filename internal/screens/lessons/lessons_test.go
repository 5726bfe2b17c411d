package lessons

import (
	"context"
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PPRAMANIK62/word-quest/internal/router"
	sessionscreen "github.com/PPRAMANIK62/word-quest/internal/screens/session"
	"github.com/PPRAMANIK62/word-quest/internal/vocab"
)

type fakeLessons struct {
	lessons []vocab.Lesson
	err     error
}

func (f fakeLessons) Lessons(_ context.Context) ([]vocab.Lesson, error) {
	return f.lessons, f.err
}

func load(t *testing.T, src LessonSource) *LessonsScreen {
	t.Helper()
	s := New(src, sessionscreen.Deps{})
	scr, _ := s.Update(s.Init()())
	return scr.(*LessonsScreen)
}

func TestLessons_List(t *testing.T) {
	s := load(t, fakeLessons{lessons: []vocab.Lesson{
		{ID: "es.1", Title: "Basics", Description: "Everyday nouns", Difficulty: 1, EstimatedMinutes: 5},
		{ID: "es.2", Title: "Food", Difficulty: 2},
	}})

	view := s.View(100, 30)
	assert.Contains(t, view, "Basics")
	assert.Contains(t, view, "Food")
	assert.Contains(t, view, "~5 min")
	assert.Contains(t, view, "Everyday nouns")
}

func TestLessons_EnterStartsLessonSession(t *testing.T) {
	s := load(t, fakeLessons{lessons: []vocab.Lesson{
		{ID: "es.1", Title: "Basics", Difficulty: 1},
		{ID: "es.2", Title: "Food", Difficulty: 2},
	}})

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)

	push, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	assert.Equal(t, "Practice", push.Screen.Title())
}

func TestLessons_Empty(t *testing.T) {
	s := load(t, fakeLessons{})
	assert.Contains(t, s.View(100, 30), "No lessons imported")
}

func TestLessons_Error(t *testing.T) {
	s := load(t, fakeLessons{err: errors.New("no such table")})
	assert.Contains(t, s.View(100, 30), "no such table")
}
