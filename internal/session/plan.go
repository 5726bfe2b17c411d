package session

import (
	"github.com/PPRAMANIK62/word-quest/internal/vocab"
)

// PlanCategory represents the reason a word was included in the plan.
type PlanCategory string

const (
	CategoryReview   PlanCategory = "review"   // due for spaced review
	CategoryNew      PlanCategory = "new"      // never answered
	CategoryPractice PlanCategory = "practice" // answered but still weak
)

// PlanSlot is a single word in the session plan.
type PlanSlot struct {
	Entry    vocab.Entry
	Category PlanCategory
}

// Plan is the ordered vocabulary pool for a session.
type Plan struct {
	Slots []PlanSlot
}

// Entries returns the planned entries in plan order.
func (p *Plan) Entries() []vocab.Entry {
	out := make([]vocab.Entry, len(p.Slots))
	for i, s := range p.Slots {
		out[i] = s.Entry
	}
	return out
}

// Count returns the number of slots in a category.
func (p *Plan) Count(c PlanCategory) int {
	n := 0
	for _, s := range p.Slots {
		if s.Category == c {
			n++
		}
	}
	return n
}

// DefaultPoolSize is the default number of words planned for a session.
const DefaultPoolSize = 10

// DefaultQuestionCount is the default number of questions in a session.
const DefaultQuestionCount = 10
