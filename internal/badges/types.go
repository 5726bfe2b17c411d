package badges

import "time"

// BadgeType identifies the category of achievement.
type BadgeType string

const (
	BadgeMastery BadgeType = "mastery"
	BadgeStreak  BadgeType = "streak"
	BadgeSession BadgeType = "session"
)

// AllBadgeTypes returns all badge types in display order.
func AllBadgeTypes() []BadgeType {
	return []BadgeType{BadgeMastery, BadgeStreak, BadgeSession}
}

// DisplayName returns a human-readable label for the badge type.
func (t BadgeType) DisplayName() string {
	switch t {
	case BadgeMastery:
		return "Mastery"
	case BadgeStreak:
		return "Streak"
	case BadgeSession:
		return "Session"
	default:
		return string(t)
	}
}

// Icon returns the display icon for the badge type.
func (t BadgeType) Icon() string {
	switch t {
	case BadgeMastery:
		return "💎"
	case BadgeStreak:
		return "⚡"
	case BadgeSession:
		return "🏆"
	default:
		return "✦"
	}
}

// Award represents a single badge earned.
type Award struct {
	Type         BadgeType
	Rarity       Rarity
	VocabularyID string // empty for session/streak badges
	Word         string // empty for session/streak badges
	SessionID    string
	Reason       string // e.g. "Mastered gato"
	AwardedAt    time.Time
}
