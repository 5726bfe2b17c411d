package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/PPRAMANIK62/word-quest/internal/badges"
	"github.com/PPRAMANIK62/word-quest/internal/diagnosis"
	"github.com/PPRAMANIK62/word-quest/internal/mastery"
	"github.com/PPRAMANIK62/word-quest/internal/store"
	"github.com/PPRAMANIK62/word-quest/internal/vocab"
)

// EventLog persists session and answer events.
type EventLog interface {
	AppendSessionEvent(ctx context.Context, data store.SessionEventData) error
	AppendAnswerEvent(ctx context.Context, data store.AnswerEventData) error
}

// RecorderConfig wires a Recorder. Diagnosis, Badges, Events and Logger are
// optional.
type RecorderConfig struct {
	Mastery   *mastery.Service
	Diagnosis *diagnosis.Service
	Badges    *badges.Service
	Events    EventLog
	Logger    *slog.Logger

	// Pool is the vocabulary the session drew from, for diagnosis.
	Pool []vocab.Entry

	// LessonDifficulty maps lesson IDs to difficulty, for mastery badge rarity.
	LessonDifficulty map[string]int
}

// Outcome is everything that happened when one answer was applied.
type Outcome struct {
	Answer    Answer
	Record    mastery.Record
	Change    *mastery.LevelChange
	Diagnosis *diagnosis.Result // nil for correct answers
	Badges    []badges.Award
}

// Recorder applies a session's answers to the progress store and the event
// log.
type Recorder struct {
	cfg     RecorderConfig
	logger  *slog.Logger
	streak  *badges.StreakTracker
	learned int
}

// NewRecorder creates a Recorder. cfg.Mastery is required.
func NewRecorder(cfg RecorderConfig) *Recorder {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{cfg: cfg, logger: logger, streak: badges.NewStreakTracker()}
}

// Start records the session start and resets per-session counters.
func (r *Recorder) Start(ctx context.Context, s *Session) error {
	r.streak = badges.NewStreakTracker()
	r.learned = 0
	if r.cfg.Badges != nil {
		r.cfg.Badges.ResetSession()
	}
	if r.cfg.Events == nil {
		return nil
	}
	err := r.cfg.Events.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID: s.ID,
		Action:    store.SessionActionStart,
		Policy:    r.cfg.Mastery.Policy().Name(),
		Questions: len(s.Questions),
	})
	if err != nil {
		return fmt.Errorf("record session start: %w", err)
	}
	return nil
}

// Record applies a graded answer from s: the mastery record is advanced
// through the policy, wrong answers are diagnosed, badges are awarded, and
// the answer is logged.
func (r *Recorder) Record(ctx context.Context, s *Session, a Answer) (*Outcome, error) {
	q := s.Question(a.QuestionID)
	if q == nil {
		return nil, fmt.Errorf("record answer: unknown question %q", a.QuestionID)
	}
	entry := q.Entry

	prior, err := r.cfg.Mastery.Get(ctx, entry.ID)
	if err != nil {
		return nil, fmt.Errorf("record answer: %w", err)
	}
	next, change, err := r.cfg.Mastery.RecordAnswer(ctx, entry.ID, entry.TargetWord, a.Correct, a.AnsweredAt)
	if err != nil {
		return nil, fmt.Errorf("record answer: %w", err)
	}

	out := &Outcome{Answer: a, Record: next, Change: change}

	if !a.Correct && r.cfg.Diagnosis != nil {
		var hist diagnosis.History
		if prior != nil {
			hist = diagnosis.History{Accuracy: prior.Accuracy(), Attempts: prior.TotalAttempts}
		}
		out.Diagnosis = r.cfg.Diagnosis.Diagnose(q, a.UserAnswer, r.cfg.Pool, hist)
	}

	if change != nil && change.Learned() {
		r.learned++
	}

	if milestone := r.streak.Record(a.Correct); milestone > 0 && r.cfg.Badges != nil {
		out.Badges = append(out.Badges, *r.cfg.Badges.AwardStreak(ctx, milestone, s.ID))
	}
	if change != nil && change.Trigger == mastery.TriggerMastered && r.cfg.Badges != nil {
		award := r.cfg.Badges.AwardMastery(ctx, entry.ID, entry.TargetWord, r.cfg.LessonDifficulty[entry.LessonID], s.ID)
		out.Badges = append(out.Badges, *award)
	}

	if r.cfg.Events != nil {
		data := store.AnswerEventData{
			SessionID:     s.ID,
			QuestionID:    q.ID,
			VocabularyID:  entry.ID,
			QuestionType:  string(q.Type),
			Prompt:        q.Prompt,
			Expected:      a.Expected,
			LearnerAnswer: a.UserAnswer,
			Correct:       a.Correct,
			ElapsedSecs:   a.ElapsedSeconds,
			Attempts:      a.Attempts,
			LevelAfter:    next.Level,
		}
		if prior != nil {
			data.LevelBefore = prior.Level
		}
		if out.Diagnosis != nil {
			data.Diagnosis = string(out.Diagnosis.Category)
		}
		if err := r.cfg.Events.AppendAnswerEvent(ctx, data); err != nil {
			r.logger.Warn("persist answer event failed", "session", s.ID, "question", q.ID, "err", err)
		}
	}

	r.logger.Debug("answer recorded",
		"session", s.ID, "vocabulary", entry.ID, "correct", a.Correct,
		"level", next.Level, "next_review", next.NextReviewAt.Format(time.RFC3339))
	return out, nil
}

// Finish closes s at now, awards the session badge and records the session
// end.
func (r *Recorder) Finish(ctx context.Context, s *Session, now time.Time) (*Summary, error) {
	s.Finish(now)

	if len(s.Answers) > 0 && r.cfg.Badges != nil {
		r.cfg.Badges.AwardSession(ctx, s.Accuracy(), s.ID)
	}

	var awards []badges.Award
	if r.cfg.Badges != nil {
		awards = r.cfg.Badges.SessionBadges
	}
	sum := BuildSummary(s, r.cfg.Mastery.Policy().Name(), r.learned, awards)

	if r.cfg.Events != nil {
		err := r.cfg.Events.AppendSessionEvent(ctx, store.SessionEventData{
			SessionID:      s.ID,
			Action:         store.SessionActionEnd,
			Policy:         sum.Policy,
			Questions:      sum.TotalQuestions,
			CorrectAnswers: sum.TotalCorrect,
			DurationSecs:   int(sum.Duration.Seconds()),
			Points:         sum.Points,
		})
		if err != nil {
			return sum, fmt.Errorf("record session end: %w", err)
		}
	}
	return sum, nil
}
