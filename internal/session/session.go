package session

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/PPRAMANIK62/word-quest/internal/exercise"
)

// ErrFinished is returned when answering a session with no questions left.
var ErrFinished = errors.New("session has no questions left")

// Answer is a learner's graded response to one question. Answers are
// created once and never mutated.
type Answer struct {
	QuestionID     string
	UserAnswer     string
	Expected       string
	Correct        bool
	ElapsedSeconds float64 // since the question was shown
	Attempts       int
	AnsweredAt     time.Time
}

// Session is one run through a batch of questions.
type Session struct {
	ID        string
	Questions []exercise.Question
	Answers   []Answer
	StartedAt time.Time
	EndedAt   time.Time

	index   int
	shownAt time.Time
}

// New starts a session over questions at now. An empty id gets a fresh
// UUID.
func New(id string, questions []exercise.Question, now time.Time) *Session {
	if id == "" {
		id = uuid.New().String()
	}
	return &Session{
		ID:        id,
		Questions: questions,
		StartedAt: now,
		shownAt:   now,
	}
}

// Current returns the question awaiting an answer, or nil when done.
func (s *Session) Current() *exercise.Question {
	if s.index >= len(s.Questions) {
		return nil
	}
	return &s.Questions[s.index]
}

// Index returns the zero-based position of the current question.
func (s *Session) Index() int { return s.index }

// Shown marks the current question as displayed at now. Elapsed time for
// the next answer is measured from here.
func (s *Session) Shown(now time.Time) {
	s.shownAt = now
}

// Submit grades userAnswer against the current question and advances.
func (s *Session) Submit(userAnswer string, now time.Time) (Answer, error) {
	q := s.Current()
	if q == nil {
		return Answer{}, ErrFinished
	}

	elapsed := now.Sub(s.shownAt).Seconds()
	if elapsed < 0 {
		elapsed = 0
	}
	a := Answer{
		QuestionID:     q.ID,
		UserAnswer:     userAnswer,
		Expected:       q.Answer,
		Correct:        exercise.ValidateAnswer(userAnswer, q.Answer),
		ElapsedSeconds: elapsed,
		Attempts:       1,
		AnsweredAt:     now,
	}
	s.Answers = append(s.Answers, a)
	s.index++
	s.shownAt = now
	return a, nil
}

// Done reports whether every question has been answered.
func (s *Session) Done() bool {
	return s.index >= len(s.Questions)
}

// Finish closes the session at now. Unanswered questions are dropped.
func (s *Session) Finish(now time.Time) {
	if s.EndedAt.IsZero() {
		s.EndedAt = now
	}
}

// Correct returns the number of correct answers so far.
func (s *Session) Correct() int {
	n := 0
	for _, a := range s.Answers {
		if a.Correct {
			n++
		}
	}
	return n
}

// Accuracy returns the correct ratio over answered questions.
func (s *Session) Accuracy() float64 {
	if len(s.Answers) == 0 {
		return 0
	}
	return float64(s.Correct()) / float64(len(s.Answers))
}

// BestStreak returns the longest run of consecutive correct answers.
func (s *Session) BestStreak() int {
	best, cur := 0, 0
	for _, a := range s.Answers {
		if a.Correct {
			cur++
			best = max(best, cur)
		} else {
			cur = 0
		}
	}
	return best
}

// Duration returns the time between start and finish, or zero while the
// session is open.
func (s *Session) Duration() time.Duration {
	if s.EndedAt.IsZero() {
		return 0
	}
	return s.EndedAt.Sub(s.StartedAt)
}

// Question returns the question with the given ID, or nil.
func (s *Session) Question(id string) *exercise.Question {
	for i := range s.Questions {
		if s.Questions[i].ID == id {
			return &s.Questions[i]
		}
	}
	return nil
}
