package exercise

import (
	"strings"

	"github.com/PPRAMANIK62/word-quest/internal/vocab"
)

// CheckRenderable is the presentation-layer guard: an option-bearing
// question with no options cannot be shown and yields *EmptyOptionsError.
func CheckRenderable(q *Question) error {
	if q.Type.HasOptions() && len(q.Options) == 0 {
		return &EmptyOptionsError{QuestionID: q.ID, Type: q.Type}
	}
	return nil
}

// Check verifies the structural rules every generated question obeys.
// It returns a *ValidationError, or *EmptyOptionsError for the specific
// case of a choice question with no options.
func Check(q *Question) error {
	if err := CheckRenderable(q); err != nil {
		return err
	}
	if q.ID == "" {
		return &ValidationError{Message: "id is empty"}
	}
	if strings.TrimSpace(q.Prompt) == "" {
		return &ValidationError{QuestionID: q.ID, Message: "prompt is empty"}
	}
	if strings.TrimSpace(q.Answer) == "" {
		return &ValidationError{QuestionID: q.ID, Message: "answer is empty"}
	}

	switch {
	case q.Type.HasOptions():
		if len(q.Options) != OptionCount {
			return &ValidationError{QuestionID: q.ID, Message: "must have exactly 4 options"}
		}
		answers := 0
		for i, opt := range q.Options {
			if opt == q.Answer {
				answers++
			}
			if containsNormalized(q.Options[:i], opt) {
				return &ValidationError{QuestionID: q.ID, Message: "options are not distinct"}
			}
		}
		if answers != 1 {
			return &ValidationError{QuestionID: q.ID, Message: "answer must appear exactly once in options"}
		}
	case q.Type == TypeFillInBlank:
		if len(q.Options) != 0 {
			return &ValidationError{QuestionID: q.ID, Message: "fill-in-the-blank must not have options"}
		}
		if !strings.Contains(q.Prompt, vocab.BlankMarker) {
			return &ValidationError{QuestionID: q.ID, Message: "prompt has no blank"}
		}
	default:
		return &ValidationError{QuestionID: q.ID, Message: "unknown question type " + string(q.Type)}
	}
	return nil
}
