package exercise

import (
	"fmt"

	"github.com/PPRAMANIK62/word-quest/internal/vocab"
)

// QuestionType identifies how a question is posed and answered.
type QuestionType string

const (
	TypeMultipleChoice      QuestionType = "multiple_choice"
	TypeFillInBlank         QuestionType = "fill_in_blank"
	TypeTranslateToSource   QuestionType = "translate_to_source"
	TypeTranslateFromSource QuestionType = "translate_from_source"
)

// HasOptions reports whether questions of this type carry answer choices.
func (t QuestionType) HasOptions() bool {
	return t == TypeMultipleChoice || t == TypeTranslateToSource || t == TypeTranslateFromSource
}

// Label returns a short human-readable name for the question type.
func (t QuestionType) Label() string {
	switch t {
	case TypeMultipleChoice:
		return "Multiple choice"
	case TypeFillInBlank:
		return "Fill in the blank"
	case TypeTranslateToSource:
		return "Translate back"
	case TypeTranslateFromSource:
		return "Translate"
	default:
		return string(t)
	}
}

// Direction selects which side of an entry a translation question asks for.
type Direction string

const (
	// ToSource shows the target-language word and asks for the source word.
	ToSource Direction = "to_source"

	// FromSource shows the source word and asks for its translation.
	FromSource Direction = "from_source"
)

// ParseDirection converts a flag value into a Direction.
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case ToSource, FromSource:
		return Direction(s), nil
	}
	return "", fmt.Errorf("unknown translation direction %q (want %q or %q)", s, ToSource, FromSource)
}

// Question is a single generated exercise item. Questions are created per
// session and never mutated.
type Question struct {
	// ID is unique within a generated batch.
	ID string `json:"id"`

	Type QuestionType `json:"type"`

	// Entry is the vocabulary item the question was built from.
	Entry vocab.Entry `json:"vocabulary"`

	Prompt string `json:"prompt"`
	Answer string `json:"answer"`

	// Options holds exactly 4 distinct choices, one equal to Answer, for
	// multiple-choice and translation questions. Empty for fill-in-the-blank.
	Options []string `json:"options,omitempty"`

	Hint        string `json:"hint,omitempty"`
	Explanation string `json:"explanation,omitempty"`
}

// OptionCount is the number of choices on option-bearing questions.
const OptionCount = 4

// MinPoolSize is the smallest vocabulary pool that can supply one correct
// option and three distractors.
const MinPoolSize = OptionCount

const (
	prefixMultipleChoice = "mc"
	prefixFillInBlank    = "fib"
	prefixTranslation    = "trans"
)

func questionID(prefix, entryID string, stamp int64, index int) string {
	return fmt.Sprintf("%s_%s_%d_%d", prefix, entryID, stamp, index)
}
