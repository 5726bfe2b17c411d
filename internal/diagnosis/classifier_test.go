package diagnosis

import (
	"testing"

	"github.com/PPRAMANIK62/word-quest/internal/exercise"
	"github.com/PPRAMANIK62/word-quest/internal/vocab"
)

func testPool() []vocab.Entry {
	return []vocab.Entry{
		{ID: "1", SourceWord: "gato", TargetWord: "cat"},
		{ID: "2", SourceWord: "perro", TargetWord: "dog"},
		{ID: "3", SourceWord: "casa", TargetWord: "house"},
		{ID: "4", SourceWord: "agua", TargetWord: "water"},
	}
}

func testQuestion(qtype exercise.QuestionType) *exercise.Question {
	pool := testPool()
	q := &exercise.Question{ID: "q1", Type: qtype, Entry: pool[0], Answer: "cat"}
	if qtype == exercise.TypeTranslateToSource || qtype == exercise.TypeFillInBlank {
		q.Answer = "gato"
	}
	return q
}

func TestBlankClassifier(t *testing.T) {
	c := &BlankClassifier{}
	for _, answer := range []string{"", "   ", "?!", " ¿ ? "} {
		cat, conf := c.Classify(&ClassifyInput{LearnerAnswer: answer})
		if cat != CategoryBlank || conf != 1.0 {
			t.Errorf("Classify(%q) = %q, %f, want blank, 1.0", answer, cat, conf)
		}
	}
	if cat, _ := c.Classify(&ClassifyInput{LearnerAnswer: "x"}); cat != "" {
		t.Errorf("Classify(\"x\") = %q, want empty", cat)
	}
}

func TestTypoClassifier(t *testing.T) {
	c := &TypoClassifier{}
	cat, conf := c.Classify(&ClassifyInput{similarity: 0.8})
	if cat != CategoryTypo || conf != 0.8 {
		t.Errorf("got %q, %f, want typo at threshold", cat, conf)
	}
	if cat, _ := c.Classify(&ClassifyInput{similarity: 0.79}); cat != "" {
		t.Errorf("got %q below threshold, want empty", cat)
	}
}

func TestConfusionClassifier(t *testing.T) {
	tests := []struct {
		name   string
		qtype  exercise.QuestionType
		answer string
		want   string // confused entry id, "" for no match
	}{
		{"mc picks other target", exercise.TypeMultipleChoice, "dog", "2"},
		{"case and punctuation ignored", exercise.TypeTranslateFromSource, "House!", "3"},
		{"to source picks other source", exercise.TypeTranslateToSource, "perro", "2"},
		{"fill in blank", exercise.TypeFillInBlank, "agua", "4"},
		{"wrong side does not match", exercise.TypeMultipleChoice, "perro", ""},
		{"own word is not confusion", exercise.TypeMultipleChoice, "cat", ""},
		{"unknown word", exercise.TypeMultipleChoice, "bird", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := &ClassifyInput{
				Question:      testQuestion(tt.qtype),
				LearnerAnswer: tt.answer,
				Pool:          testPool(),
			}
			cat, _ := (&ConfusionClassifier{}).Classify(input)
			if tt.want == "" {
				if cat != "" {
					t.Errorf("got %q, want no match", cat)
				}
				return
			}
			if cat != CategoryConfusion {
				t.Fatalf("got %q, want confusion", cat)
			}
			if input.confused == nil || input.confused.ID != tt.want {
				t.Errorf("confused = %+v, want entry %s", input.confused, tt.want)
			}
		})
	}
}

func TestSlipClassifier(t *testing.T) {
	c := &SlipClassifier{}
	tests := []struct {
		accuracy float64
		attempts int
		want     ErrorCategory
	}{
		{0.9, 10, CategorySlip},
		{0.80, 10, ""},
		{1.0, 2, ""},
		{0.5, 10, ""},
	}
	for _, tt := range tests {
		cat, _ := c.Classify(&ClassifyInput{WordAccuracy: tt.accuracy, Attempts: tt.attempts})
		if cat != tt.want {
			t.Errorf("Classify(acc %.2f, %d attempts) = %q, want %q", tt.accuracy, tt.attempts, cat, tt.want)
		}
	}
}

func TestRunClassifiers_FirstMatchWins(t *testing.T) {
	input := &ClassifyInput{LearnerAnswer: "", WordAccuracy: 0.95, Attempts: 10}
	cat, _, name := RunClassifiers(DefaultClassifiers(), input)
	if cat != CategoryBlank || name != "blank" {
		t.Errorf("got %q from %q, want blank", cat, name)
	}
}

func TestRunClassifiers_NoMatch(t *testing.T) {
	input := &ClassifyInput{
		Question:      testQuestion(exercise.TypeMultipleChoice),
		LearnerAnswer: "bird",
		Pool:          testPool(),
	}
	cat, conf, name := RunClassifiers(DefaultClassifiers(), input)
	if cat != "" || conf != 0 || name != "" {
		t.Errorf("got (%q, %f, %q), want empty", cat, conf, name)
	}
}
