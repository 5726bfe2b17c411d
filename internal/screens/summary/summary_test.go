package summary

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/PPRAMANIK62/word-quest/internal/badges"
	"github.com/PPRAMANIK62/word-quest/internal/router"
	"github.com/PPRAMANIK62/word-quest/internal/session"
)

func testSummary() *session.Summary {
	return &session.Summary{
		SessionID:      "s-1",
		Policy:         "linear",
		Duration:       4*time.Minute + 12*time.Second,
		TotalQuestions: 8,
		TotalCorrect:   6,
		Accuracy:       0.75,
		Points:         session.Points(0.75),
		WordsReviewed:  7,
		WordsLearned:   2,
		BestStreak:     5,
		Badges: []badges.Award{
			{Type: badges.BadgeStreak, Rarity: badges.RarityCommon, Reason: "5 correct in a row!"},
		},
		Mistakes: []session.Answer{
			{QuestionID: "q1", UserAnswer: "perro", Expected: "gato"},
			{QuestionID: "q2", UserAnswer: "", Expected: "casa"},
		},
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testSummary())
	if s.Title() != "Session Summary" {
		t.Errorf("Title = %q, want %q", s.Title(), "Session Summary")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	s := New(testSummary())
	view := s.View(100, 30)
	for _, want := range []string{"Session complete!", "Points: +25", "5 correct in a row!", "gato", "(no answer)", "4:12"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSummaryScreen_MistakesCapped(t *testing.T) {
	sum := testSummary()
	sum.Mistakes = nil
	for i := 0; i < maxMistakes+3; i++ {
		sum.Mistakes = append(sum.Mistakes, session.Answer{Expected: "word", UserAnswer: "x"})
	}
	view := New(sum).View(100, 40)
	if !strings.Contains(view, "and 3 more") {
		t.Error("expected overflow line for mistakes")
	}
}

func TestSummaryScreen_NilSummary(t *testing.T) {
	if view := New(nil).View(80, 24); view != "" {
		t.Errorf("View() = %q, want empty", view)
	}
}

func TestSummaryScreen_Navigation_Enter(t *testing.T) {
	s := New(testSummary())
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on Enter (pop)")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Errorf("cmd() = %T, want router.PopScreenMsg", cmd())
	}
}

func TestSummaryScreen_KeyHints(t *testing.T) {
	s := New(testSummary())
	hints := s.KeyHints()
	if len(hints) != 2 {
		t.Errorf("KeyHints length = %d, want 2", len(hints))
	}
}
