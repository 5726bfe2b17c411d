package diagnosis

import (
	"github.com/PPRAMANIK62/word-quest/internal/exercise"
	"github.com/PPRAMANIK62/word-quest/internal/vocab"
)

// ErrorCategory classifies a wrong answer.
type ErrorCategory string

const (
	CategoryBlank        ErrorCategory = "blank"
	CategoryConfusion    ErrorCategory = "confusion"
	CategoryTypo         ErrorCategory = "typo"
	CategorySlip         ErrorCategory = "slip"
	CategoryUnclassified ErrorCategory = "unclassified"
)

// ClassifyInput holds the context for classification.
type ClassifyInput struct {
	Question      *exercise.Question
	LearnerAnswer string
	Pool          []vocab.Entry // words the session drew from
	WordAccuracy  float64       // historical accuracy for this word (0.0–1.0)
	Attempts      int           // historical attempts for this word

	similarity float64
	confused   *vocab.Entry
}

// Result is the output of classifying a wrong answer.
type Result struct {
	Category   ErrorCategory
	Similarity float64      // Similarity of the answer to the expected one
	Confused   *vocab.Entry // set only for CategoryConfusion
	Confidence float64      // 0.0–1.0
	Classifier string       // which classifier produced this result
	Expected   string
}
