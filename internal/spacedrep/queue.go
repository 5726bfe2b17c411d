package spacedrep

import (
	"sort"
	"time"

	"github.com/PPRAMANIK62/word-quest/internal/mastery"
)

// Thresholds for the recent-mistakes list.
const (
	MistakeAccuracy    = 0.7
	MistakeMinAttempts = 3
)

// DueQueue returns the learned words (level > 0) whose review date has
// passed, most overdue first. Ties are broken by vocabulary ID. A limit of
// zero or less returns every due word. The input is not modified.
func DueQueue(records []mastery.Record, now time.Time, limit int) []mastery.Record {
	var due []mastery.Record
	for i := range records {
		if records[i].Level > 0 && IsDue(&records[i], now) {
			due = append(due, records[i])
		}
	}

	sort.SliceStable(due, func(i, j int) bool {
		if !due[i].NextReviewAt.Equal(due[j].NextReviewAt) {
			return due[i].NextReviewAt.Before(due[j].NextReviewAt)
		}
		return due[i].VocabularyID < due[j].VocabularyID
	})

	if limit > 0 && len(due) > limit {
		due = due[:limit]
	}
	return due
}

// Mistakes returns words answered at least MistakeMinAttempts times with
// accuracy under MistakeAccuracy, most mistakes first.
func Mistakes(records []mastery.Record) []mastery.Record {
	var out []mastery.Record
	for i := range records {
		r := &records[i]
		if r.TotalAttempts >= MistakeMinAttempts && r.Accuracy() < MistakeAccuracy {
			out = append(out, *r)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Mistakes() != out[j].Mistakes() {
			return out[i].Mistakes() > out[j].Mistakes()
		}
		return out[i].VocabularyID < out[j].VocabularyID
	})
	return out
}

// Forecast counts learned words falling due on each of the next days days.
// Index 0 holds everything due by the end of today, including overdue words.
func Forecast(records []mastery.Record, now time.Time, days int) []int {
	if days <= 0 {
		return nil
	}
	counts := make([]int, days)
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	for i := range records {
		r := &records[i]
		if r.Level == 0 {
			continue
		}
		day := 0
		if r.NextReviewAt.After(now) {
			day = int(r.NextReviewAt.Sub(start).Hours() / 24.0)
		}
		if day < days {
			counts[day]++
		}
	}
	return counts
}
