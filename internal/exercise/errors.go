package exercise

import "fmt"

// InsufficientDataError is returned when a generator's input pool is too
// small or lacks the material it needs.
type InsufficientDataError struct {
	Generator string // which generator refused, e.g. "multiple_choice"
	Need      int
	Have      int
	What      string // what was counted, e.g. "vocabulary entries"
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("%s: need at least %d %s, have %d", e.Generator, e.Need, e.What, e.Have)
}

// EmptyOptionsError signals that an option-bearing question reached the
// presentation layer without choices. Generated questions never have this
// shape, so seeing it means the question data is corrupt.
type EmptyOptionsError struct {
	QuestionID string
	Type       QuestionType
}

func (e *EmptyOptionsError) Error() string {
	return fmt.Sprintf("question %s (%s) has no answer options", e.QuestionID, e.Type)
}

// ValidationError describes a question that breaks a structural rule.
type ValidationError struct {
	QuestionID string
	Message    string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("question %s: %s", e.QuestionID, e.Message)
}
