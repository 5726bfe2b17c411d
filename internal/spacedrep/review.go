package spacedrep

import (
	"time"

	"github.com/PPRAMANIK62/word-quest/internal/mastery"
)

// GraceFraction is the share of a word's review interval it may sit past due
// before it counts as overdue.
const GraceFraction = 0.5

// IsDue returns true if the word is due for review (at or past the review date).
func IsDue(r *mastery.Record, now time.Time) bool {
	return !now.Before(r.NextReviewAt)
}

// OverdueDays returns how many days past due the word is. Returns 0 if not yet due.
func OverdueDays(r *mastery.Record, now time.Time) float64 {
	if now.Before(r.NextReviewAt) {
		return 0
	}
	return now.Sub(r.NextReviewAt).Hours() / 24.0
}

// IntervalDays returns the length of the word's current review interval.
func IntervalDays(r *mastery.Record) float64 {
	if r.LastReviewedAt.IsZero() || !r.NextReviewAt.After(r.LastReviewedAt) {
		return 1
	}
	return r.NextReviewAt.Sub(r.LastReviewedAt).Hours() / 24.0
}

// IsOverdue returns true if the word has been due for longer than its grace
// period.
func IsOverdue(r *mastery.Record, now time.Time) bool {
	if !IsDue(r, now) {
		return false
	}
	grace := time.Duration(IntervalDays(r) * GraceFraction * 24 * float64(time.Hour))
	return now.After(r.NextReviewAt.Add(grace))
}

// ReviewStatus describes a word's review status for display.
type ReviewStatus string

const (
	ReviewNotDue  ReviewStatus = "not_due"
	ReviewDue     ReviewStatus = "due"
	ReviewOverdue ReviewStatus = "overdue"
)

// Status returns the review status for UI display.
func Status(r *mastery.Record, now time.Time) ReviewStatus {
	switch {
	case IsOverdue(r, now):
		return ReviewOverdue
	case IsDue(r, now):
		return ReviewDue
	default:
		return ReviewNotDue
	}
}

// DaysUntilReview returns the number of days until the next review.
// Returns 0 if already due.
func DaysUntilReview(r *mastery.Record, now time.Time) int {
	if IsDue(r, now) {
		return 0
	}
	return int(r.NextReviewAt.Sub(now).Hours()/24.0) + 1
}
