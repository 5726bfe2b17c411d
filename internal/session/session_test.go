package session

import (
	"errors"
	"testing"
	"time"

	"github.com/PPRAMANIK62/word-quest/internal/exercise"
	"github.com/PPRAMANIK62/word-quest/internal/vocab"
)

var start = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func testEntries() []vocab.Entry {
	return []vocab.Entry{
		{ID: "es.1.1", LessonID: "es.1", SourceWord: "cat", TargetWord: "gato"},
		{ID: "es.1.2", LessonID: "es.1", SourceWord: "dog", TargetWord: "perro"},
		{ID: "es.1.3", LessonID: "es.1", SourceWord: "house", TargetWord: "casa"},
		{ID: "es.1.4", LessonID: "es.1", SourceWord: "water", TargetWord: "agua"},
		{ID: "es.2.1", LessonID: "es.2", SourceWord: "mother", TargetWord: "madre"},
		{ID: "es.2.2", LessonID: "es.2", SourceWord: "father", TargetWord: "padre"},
	}
}

func testQuestions() []exercise.Question {
	var qs []exercise.Question
	for i, e := range testEntries()[:3] {
		qs = append(qs, exercise.Question{
			ID:      "q" + string(rune('1'+i)),
			Type:    exercise.TypeTranslateFromSource,
			Entry:   e,
			Prompt:  `Translate: "` + e.SourceWord + `"`,
			Answer:  e.TargetWord,
			Options: []string{e.TargetWord, "x", "y", "z"},
		})
	}
	return qs
}

func TestNew_GeneratesID(t *testing.T) {
	s := New("", testQuestions(), start)
	if s.ID == "" {
		t.Fatal("New() left ID empty")
	}
	if other := New("", nil, start); other.ID == s.ID {
		t.Errorf("two sessions share ID %q", s.ID)
	}
	if got := New("fixed", nil, start).ID; got != "fixed" {
		t.Errorf("ID = %q, want fixed", got)
	}
}

func TestSubmit_GradesAndAdvances(t *testing.T) {
	s := New("s1", testQuestions(), start)

	if q := s.Current(); q == nil || q.ID != "q1" {
		t.Fatalf("Current() = %v, want q1", q)
	}

	a, err := s.Submit("  GATO! ", start.Add(4*time.Second))
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if !a.Correct {
		t.Error("expected normalized answer to be correct")
	}
	if a.QuestionID != "q1" || a.Expected != "gato" || a.UserAnswer != "  GATO! " {
		t.Errorf("answer = %+v", a)
	}
	if a.Attempts != 1 {
		t.Errorf("Attempts = %d, want 1", a.Attempts)
	}
	if a.ElapsedSeconds != 4 {
		t.Errorf("ElapsedSeconds = %v, want 4", a.ElapsedSeconds)
	}
	if s.Index() != 1 || s.Current().ID != "q2" {
		t.Errorf("session did not advance, index = %d", s.Index())
	}
}

func TestSubmit_ElapsedFromShown(t *testing.T) {
	s := New("s1", testQuestions(), start)
	s.Shown(start.Add(10 * time.Second))
	a, _ := s.Submit("gato", start.Add(13*time.Second))
	if a.ElapsedSeconds != 3 {
		t.Errorf("ElapsedSeconds = %v, want 3", a.ElapsedSeconds)
	}

	// Clock going backwards never yields negative elapsed time.
	a, _ = s.Submit("perro", start)
	if a.ElapsedSeconds != 0 {
		t.Errorf("ElapsedSeconds = %v, want 0", a.ElapsedSeconds)
	}
}

func TestSubmit_AfterDone(t *testing.T) {
	s := New("s1", testQuestions()[:1], start)
	if _, err := s.Submit("gato", start); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if !s.Done() {
		t.Fatal("expected Done() after last answer")
	}
	if s.Current() != nil {
		t.Error("Current() should be nil when done")
	}
	if _, err := s.Submit("gato", start); !errors.Is(err, ErrFinished) {
		t.Errorf("Submit() error = %v, want ErrFinished", err)
	}
}

func TestAnswersAreNotMutated(t *testing.T) {
	s := New("s1", testQuestions(), start)
	first, _ := s.Submit("wrong", start)
	s.Submit("perro", start)
	s.Submit("casa", start)
	if s.Answers[0] != first {
		t.Errorf("first answer changed: %+v vs %+v", s.Answers[0], first)
	}
}

func TestCounters(t *testing.T) {
	s := New("s1", testQuestions(), start)
	if s.Accuracy() != 0 {
		t.Errorf("Accuracy() on empty session = %v, want 0", s.Accuracy())
	}
	s.Submit("gato", start)
	s.Submit("nope", start)
	s.Submit("casa", start)

	if s.Correct() != 2 {
		t.Errorf("Correct() = %d, want 2", s.Correct())
	}
	if got, want := s.Accuracy(), 2.0/3.0; got != want {
		t.Errorf("Accuracy() = %v, want %v", got, want)
	}
	if s.BestStreak() != 1 {
		t.Errorf("BestStreak() = %d, want 1", s.BestStreak())
	}
}

func TestFinish_Idempotent(t *testing.T) {
	s := New("s1", testQuestions(), start)
	if s.Duration() != 0 {
		t.Errorf("Duration() while open = %v, want 0", s.Duration())
	}
	s.Finish(start.Add(2 * time.Minute))
	s.Finish(start.Add(5 * time.Minute))
	if s.Duration() != 2*time.Minute {
		t.Errorf("Duration() = %v, want 2m", s.Duration())
	}
}

func TestPoints(t *testing.T) {
	tests := []struct {
		accuracy float64
		want     int
	}{
		{0, 10},
		{0.5, 20},
		{0.66, 23},
		{0.99, 29},
		{1.0, 30},
		{-1, 10},
	}
	for _, tt := range tests {
		if got := Points(tt.accuracy); got != tt.want {
			t.Errorf("Points(%v) = %d, want %d", tt.accuracy, got, tt.want)
		}
	}
}

func TestBuildSummary(t *testing.T) {
	s := New("s1", testQuestions(), start)
	s.Submit("gato", start)
	s.Submit("gato", start)
	s.Submit("casa", start)
	s.Finish(start.Add(90 * time.Second))

	sum := BuildSummary(s, "linear", 2, nil)
	if sum.TotalQuestions != 3 || sum.TotalCorrect != 2 {
		t.Errorf("totals = %d/%d, want 2/3", sum.TotalCorrect, sum.TotalQuestions)
	}
	if sum.Points != Points(2.0/3.0) {
		t.Errorf("Points = %d, want %d", sum.Points, Points(2.0/3.0))
	}
	if sum.WordsReviewed != 3 || sum.WordsLearned != 2 {
		t.Errorf("reviewed/learned = %d/%d, want 3/2", sum.WordsReviewed, sum.WordsLearned)
	}
	if len(sum.Mistakes) != 1 || sum.Mistakes[0].QuestionID != "q2" {
		t.Errorf("Mistakes = %+v", sum.Mistakes)
	}
	if sum.Duration != 90*time.Second || sum.Policy != "linear" {
		t.Errorf("Duration/Policy = %v/%q", sum.Duration, sum.Policy)
	}
}
