package diagnosis

import (
	"strings"

	"github.com/PPRAMANIK62/word-quest/internal/exercise"
	"github.com/PPRAMANIK62/word-quest/internal/vocab"
)

// Classifier is a rule-based error classifier.
// Returns a category and confidence (0.0–1.0), or ("", 0) if the rule doesn't apply.
type Classifier interface {
	Name() string
	Classify(input *ClassifyInput) (ErrorCategory, float64)
}

// DefaultClassifiers returns classifiers in priority order.
// Confusion outranks typo: an answer that is exactly another known word is a
// mix-up even when it happens to be spelled close to the expected one.
func DefaultClassifiers() []Classifier {
	return []Classifier{
		&BlankClassifier{},
		&ConfusionClassifier{},
		&TypoClassifier{},
		&SlipClassifier{},
	}
}

// RunClassifiers executes rule-based classifiers in order.
// Returns the first match, or ("", 0, "") if no rules apply.
func RunClassifiers(classifiers []Classifier, input *ClassifyInput) (ErrorCategory, float64, string) {
	for _, c := range classifiers {
		cat, conf := c.Classify(input)
		if cat != "" {
			return cat, conf, c.Name()
		}
	}
	return "", 0, ""
}

// BlankClassifier flags answers with no word content.
type BlankClassifier struct{}

func (c *BlankClassifier) Name() string { return "blank" }

func (c *BlankClassifier) Classify(input *ClassifyInput) (ErrorCategory, float64) {
	if strings.TrimSpace(exercise.Normalize(input.LearnerAnswer)) == "" {
		return CategoryBlank, 1.0
	}
	return "", 0
}

// TypoThreshold is the minimum similarity for a wrong answer to count as a typo.
const TypoThreshold = 0.8

// TypoClassifier flags answers that are nearly the expected spelling.
type TypoClassifier struct{}

func (c *TypoClassifier) Name() string { return "typo" }

func (c *TypoClassifier) Classify(input *ClassifyInput) (ErrorCategory, float64) {
	if input.similarity >= TypoThreshold {
		return CategoryTypo, input.similarity
	}
	return "", 0
}

// ConfusionClassifier flags answers that are the matching word of a
// different pool entry.
type ConfusionClassifier struct{}

func (c *ConfusionClassifier) Name() string { return "confusion" }

func (c *ConfusionClassifier) Classify(input *ClassifyInput) (ErrorCategory, float64) {
	if e := findConfused(input); e != nil {
		input.confused = e
		return CategoryConfusion, 0.9
	}
	return "", 0
}

// SlipAccuracyThreshold is the minimum historical accuracy (exclusive) for a
// wrong answer to be classified as a slip.
const SlipAccuracyThreshold = 0.80

// slipMinAttempts keeps a single lucky first answer from counting as history.
const slipMinAttempts = 3

// SlipClassifier flags wrong answers on words the learner usually gets right.
type SlipClassifier struct{}

func (c *SlipClassifier) Name() string { return "slip" }

func (c *SlipClassifier) Classify(input *ClassifyInput) (ErrorCategory, float64) {
	if input.Attempts >= slipMinAttempts && input.WordAccuracy > SlipAccuracyThreshold {
		return CategorySlip, 0.7
	}
	return "", 0
}

// findConfused returns the pool entry, other than the question's own, whose
// answer-side word equals the learner's answer.
func findConfused(input *ClassifyInput) *vocab.Entry {
	q := input.Question
	answer := exercise.Normalize(input.LearnerAnswer)
	if answer == "" {
		return nil
	}

	field := answerField(q.Type)
	for i := range input.Pool {
		e := &input.Pool[i]
		if e.ID == q.Entry.ID {
			continue
		}
		if exercise.Normalize(field(e)) == answer {
			return e
		}
	}
	return nil
}

// answerField returns the side of an entry a question type asks for.
func answerField(t exercise.QuestionType) func(*vocab.Entry) string {
	switch t {
	case exercise.TypeFillInBlank, exercise.TypeTranslateToSource:
		return func(e *vocab.Entry) string { return e.SourceWord }
	default:
		return func(e *vocab.Entry) string { return e.TargetWord }
	}
}
