package session

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/PPRAMANIK62/word-quest/internal/exercise"
	"github.com/PPRAMANIK62/word-quest/internal/mastery"
	"github.com/PPRAMANIK62/word-quest/internal/spacedrep"
	"github.com/PPRAMANIK62/word-quest/internal/vocab"
)

// EntrySource loads imported vocabulary.
type EntrySource interface {
	Entries(ctx context.Context, lessonID string) ([]vocab.Entry, error)
	AllEntries(ctx context.Context) ([]vocab.Entry, error)
}

// RecordSource loads a user's mastery records.
type RecordSource interface {
	All(ctx context.Context, userID string) ([]mastery.Record, error)
}

// Planner builds a session's vocabulary pool: due words first, then words
// never answered, then the weakest of the rest.
type Planner struct {
	Entries EntrySource
	Records RecordSource
	UserID  string
}

// NewPlanner creates a Planner for one user.
func NewPlanner(entries EntrySource, records RecordSource, userID string) *Planner {
	return &Planner{Entries: entries, Records: records, UserID: userID}
}

// PlanOptions controls BuildPlan.
type PlanOptions struct {
	LessonID   string // empty for every imported word
	Size       int    // raised to exercise.MinPoolSize when smaller
	ReviewOnly bool   // only due words
}

// BuildPlan selects the words for a session at now.
func (p *Planner) BuildPlan(ctx context.Context, opts PlanOptions, now time.Time) (*Plan, error) {
	var (
		entries []vocab.Entry
		err     error
	)
	if opts.LessonID != "" {
		entries, err = p.Entries.Entries(ctx, opts.LessonID)
	} else {
		entries, err = p.Entries.AllEntries(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("load vocabulary: %w", err)
	}

	records, err := p.Records.All(ctx, p.UserID)
	if err != nil {
		return nil, fmt.Errorf("load progress: %w", err)
	}

	return planFrom(entries, records, opts, now), nil
}

func planFrom(entries []vocab.Entry, records []mastery.Record, opts PlanOptions, now time.Time) *Plan {
	size := max(opts.Size, exercise.MinPoolSize)

	byID := make(map[string]vocab.Entry, len(entries))
	for _, e := range entries {
		byID[e.ID] = e
	}
	known := make(map[string]mastery.Record, len(records))
	for _, r := range records {
		if _, ok := byID[r.VocabularyID]; ok {
			known[r.VocabularyID] = r
		}
	}

	plan := &Plan{}
	used := make(map[string]bool)
	add := func(e vocab.Entry, c PlanCategory) {
		if len(plan.Slots) >= size || used[e.ID] {
			return
		}
		used[e.ID] = true
		plan.Slots = append(plan.Slots, PlanSlot{Entry: e, Category: c})
	}

	scoped := make([]mastery.Record, 0, len(known))
	for _, r := range known {
		scoped = append(scoped, r)
	}
	for _, r := range spacedrep.DueQueue(scoped, now, 0) {
		add(byID[r.VocabularyID], CategoryReview)
	}
	if opts.ReviewOnly {
		// Due words only, padded up to the smallest pool the generators accept.
		if len(plan.Slots) == 0 || len(plan.Slots) >= exercise.MinPoolSize {
			return plan
		}
		size = exercise.MinPoolSize
	}

	for _, e := range entries {
		if _, seen := known[e.ID]; !seen {
			add(e, CategoryNew)
		}
	}

	sort.Slice(scoped, func(i, j int) bool {
		a, b := scoped[i], scoped[j]
		if a.Level != b.Level {
			return a.Level < b.Level
		}
		if a.Accuracy() != b.Accuracy() {
			return a.Accuracy() < b.Accuracy()
		}
		return a.VocabularyID < b.VocabularyID
	})
	for _, r := range scoped {
		add(byID[r.VocabularyID], CategoryPractice)
	}
	return plan
}
