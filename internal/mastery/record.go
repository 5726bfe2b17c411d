package mastery

import "time"

// MaxLevel is the highest mastery level a word can reach.
const MaxLevel = 5

// Level-up thresholds.
const (
	PromoteAccuracy = 0.8
	PromoteAttempts = 3
)

// Record is the persisted mastery state for one (user, word) pair.
type Record struct {
	UserID         string
	VocabularyID   string
	TotalAttempts  int
	CorrectAnswers int
	Level          int // 0..MaxLevel
	LastReviewedAt time.Time
	NextReviewAt   time.Time
}

// Accuracy returns the correct-answer ratio.
func (r *Record) Accuracy() float64 {
	if r.TotalAttempts == 0 {
		return 0.0
	}
	return float64(r.CorrectAnswers) / float64(r.TotalAttempts)
}

// Mistakes returns the number of incorrect answers on record.
func (r *Record) Mistakes() int {
	return r.TotalAttempts - r.CorrectAnswers
}

// IsLearned reports whether the word has been answered correctly enough to
// leave level 0.
func IsLearned(r *Record) bool {
	return r != nil && r.Level >= 1
}

var levelLabels = [...]string{"New", "Seen", "Familiar", "Practiced", "Strong", "Mastered"}

// LevelLabel returns the display name for a mastery level.
func LevelLabel(level int) string {
	if level < 0 || level >= len(levelLabels) {
		return "Unknown"
	}
	return levelLabels[level]
}
