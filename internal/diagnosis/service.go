package diagnosis

import (
	"fmt"

	"github.com/PPRAMANIK62/word-quest/internal/exercise"
	"github.com/PPRAMANIK62/word-quest/internal/vocab"
)

// Service explains wrong answers. It never changes whether an answer was
// graded correct.
type Service struct {
	classifiers []Classifier
}

// NewService creates a diagnosis service with the default classifiers.
func NewService() *Service {
	return &Service{classifiers: DefaultClassifiers()}
}

// History carries the word's record before the answer was applied.
type History struct {
	Accuracy float64
	Attempts int
}

// Diagnose classifies a wrong answer to q.
func (s *Service) Diagnose(q *exercise.Question, learnerAnswer string, pool []vocab.Entry, hist History) *Result {
	input := &ClassifyInput{
		Question:      q,
		LearnerAnswer: learnerAnswer,
		Pool:          pool,
		WordAccuracy:  hist.Accuracy,
		Attempts:      hist.Attempts,
		similarity:    exercise.Similarity(learnerAnswer, q.Answer),
	}

	res := &Result{
		Category:   CategoryUnclassified,
		Similarity: input.similarity,
		Classifier: "none",
		Expected:   q.Answer,
	}
	if cat, conf, name := RunClassifiers(s.classifiers, input); cat != "" {
		res.Category = cat
		res.Confidence = conf
		res.Classifier = name
		res.Confused = input.confused
	}
	return res
}

// Feedback returns a one-line explanation for the learner.
func (r *Result) Feedback() string {
	switch r.Category {
	case CategoryBlank:
		return fmt.Sprintf("No answer given. The answer is %q.", r.Expected)
	case CategoryConfusion:
		if r.Confused != nil {
			return fmt.Sprintf("%q is %q, not %q. Easy to mix up!", r.Confused.TargetWord, r.Confused.SourceWord, r.Expected)
		}
	case CategoryTypo:
		return fmt.Sprintf("Almost! Check the spelling: %q.", r.Expected)
	case CategorySlip:
		return fmt.Sprintf("You usually get this one. The answer is %q.", r.Expected)
	}
	return fmt.Sprintf("The correct answer is %q.", r.Expected)
}
