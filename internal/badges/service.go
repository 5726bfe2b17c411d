package badges

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/PPRAMANIK62/word-quest/internal/store"
)

// EventSink persists badge awards.
type EventSink interface {
	AppendBadgeEvent(ctx context.Context, data store.BadgeEventData) error
}

// Service creates badge awards and records them.
type Service struct {
	events EventSink
	logger *slog.Logger
	now    func() time.Time

	// SessionBadges accumulates badges awarded during the current session.
	SessionBadges []Award
}

// NewService creates a badge service. events may be nil, in which case
// awards are only kept in memory.
func NewService(events EventSink, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{events: events, logger: logger, now: time.Now}
}

// AwardMastery awards a mastery badge for a word that reached the top level.
func (s *Service) AwardMastery(ctx context.Context, vocabularyID, word string, difficulty int, sessionID string) *Award {
	return s.award(ctx, &Award{
		Type:         BadgeMastery,
		Rarity:       DifficultyRarity(difficulty),
		VocabularyID: vocabularyID,
		Word:         word,
		SessionID:    sessionID,
		Reason:       fmt.Sprintf("Mastered %s", word),
	})
}

// AwardStreak awards a streak badge for consecutive correct answers.
func (s *Service) AwardStreak(ctx context.Context, streakLength int, sessionID string) *Award {
	return s.award(ctx, &Award{
		Type:      BadgeStreak,
		Rarity:    StreakRarity(streakLength),
		SessionID: sessionID,
		Reason:    fmt.Sprintf("%d correct in a row!", streakLength),
	})
}

// AwardSession awards a session-completion badge.
func (s *Service) AwardSession(ctx context.Context, accuracy float64, sessionID string) *Award {
	return s.award(ctx, &Award{
		Type:      BadgeSession,
		Rarity:    SessionRarity(accuracy),
		SessionID: sessionID,
		Reason:    fmt.Sprintf("Session complete (%.0f%% accuracy)", accuracy*100),
	})
}

// ResetSession clears the session badge accumulator. Called at session start.
func (s *Service) ResetSession() {
	s.SessionBadges = nil
}

func (s *Service) award(ctx context.Context, a *Award) *Award {
	a.AwardedAt = s.now()
	s.persist(ctx, a)
	s.SessionBadges = append(s.SessionBadges, *a)
	return a
}

// persist records the award. A failed write is logged; the award still
// counts for the running session.
func (s *Service) persist(ctx context.Context, a *Award) {
	if s.events == nil {
		return
	}
	err := s.events.AppendBadgeEvent(ctx, store.BadgeEventData{
		BadgeType:    string(a.Type),
		Rarity:       string(a.Rarity),
		SessionID:    a.SessionID,
		VocabularyID: a.VocabularyID,
		Word:         a.Word,
		Reason:       a.Reason,
	})
	if err != nil {
		s.logger.Warn("persist badge failed", "type", a.Type, "session", a.SessionID, "err", err)
	}
}
