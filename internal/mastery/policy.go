package mastery

import (
	"fmt"
	"time"
)

// Policy computes the next mastery record from the prior one (nil when the
// word has never been answered) and a single graded outcome. Implementations
// are pure and safe for concurrent use.
type Policy interface {
	ComputeNext(prior *Record, correct bool, now time.Time) Record
	Name() string
}

// Policy names accepted by PolicyByName.
const (
	PolicyLinear      = "linear"
	PolicyExponential = "exponential"
)

// PolicyNames lists every selectable policy.
func PolicyNames() []string {
	return []string{PolicyLinear, PolicyExponential}
}

// PolicyByName returns the named policy. There is no fallback: an unknown
// name is an error.
func PolicyByName(name string) (Policy, error) {
	switch name {
	case PolicyLinear:
		return LinearPolicy{}, nil
	case PolicyExponential:
		return ExponentialPolicy{}, nil
	}
	return nil, fmt.Errorf("unknown review policy %q (want %q or %q)", name, PolicyLinear, PolicyExponential)
}

// day is the scheduling unit. Reviews step in fixed 24h periods, not
// calendar days, so a DST change never shifts a review by an hour.
const day = 24 * time.Hour

// LinearPolicy schedules the next review (level+1) days out, or one day
// after the first answer.
type LinearPolicy struct{}

func (LinearPolicy) Name() string { return PolicyLinear }

func (LinearPolicy) ComputeNext(prior *Record, correct bool, now time.Time) Record {
	next := step(prior, correct, now)
	days := 1
	if prior != nil {
		days = next.Level + 1
	}
	next.NextReviewAt = now.Add(time.Duration(days) * day)
	return next
}

// ExponentialPolicy schedules 2^level days after a correct answer, using the
// level held before the answer (a missing or zero level counts as 1), and one
// day after an incorrect answer.
type ExponentialPolicy struct{}

func (ExponentialPolicy) Name() string { return PolicyExponential }

func (ExponentialPolicy) ComputeNext(prior *Record, correct bool, now time.Time) Record {
	next := step(prior, correct, now)
	days := 1
	if correct {
		level := 1
		if prior != nil && prior.Level > 0 {
			level = prior.Level
		}
		days = 1 << level
	}
	next.NextReviewAt = now.Add(time.Duration(days) * day)
	return next
}

// step applies the counter and level rules shared by every policy. The
// returned record has NextReviewAt unset.
func step(prior *Record, correct bool, now time.Time) Record {
	if prior == nil {
		r := Record{TotalAttempts: 1, LastReviewedAt: now}
		if correct {
			r.CorrectAnswers = 1
			r.Level = 1
		}
		return r
	}

	r := *prior
	r.TotalAttempts++
	if correct {
		r.CorrectAnswers++
	}
	r.LastReviewedAt = now

	switch {
	case correct && r.Accuracy() >= PromoteAccuracy && r.TotalAttempts >= PromoteAttempts:
		r.Level = min(r.Level+1, MaxLevel)
	case !correct && r.Level > 0:
		r.Level--
	}
	return r
}
