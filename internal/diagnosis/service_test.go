package diagnosis

import (
	"strings"
	"testing"

	"github.com/PPRAMANIK62/word-quest/internal/exercise"
)

func TestService_Diagnose(t *testing.T) {
	svc := NewService()

	tests := []struct {
		name       string
		qtype      exercise.QuestionType
		answer     string
		hist       History
		want       ErrorCategory
		classifier string
	}{
		{"blank", exercise.TypeTranslateToSource, "  ", History{}, CategoryBlank, "blank"},
		{"confusion", exercise.TypeMultipleChoice, "dog", History{}, CategoryConfusion, "confusion"},
		{"typo", exercise.TypeTranslateToSource, "gatto", History{}, CategoryTypo, "typo"},
		{"slip", exercise.TypeTranslateToSource, "mesa", History{Accuracy: 0.9, Attempts: 10}, CategorySlip, "slip"},
		{"unclassified", exercise.TypeTranslateToSource, "mesa", History{Accuracy: 0.5, Attempts: 10}, CategoryUnclassified, "none"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := testQuestion(tt.qtype)
			res := svc.Diagnose(q, tt.answer, testPool(), tt.hist)
			if res.Category != tt.want {
				t.Errorf("Category = %q, want %q", res.Category, tt.want)
			}
			if res.Classifier != tt.classifier {
				t.Errorf("Classifier = %q, want %q", res.Classifier, tt.classifier)
			}
			if res.Expected != q.Answer {
				t.Errorf("Expected = %q, want %q", res.Expected, q.Answer)
			}
			if res.Feedback() == "" {
				t.Error("Feedback() is empty")
			}
		})
	}
}

func TestService_SimilarityAlwaysReported(t *testing.T) {
	res := NewService().Diagnose(testQuestion(exercise.TypeTranslateToSource), "gatto", testPool(), History{})
	want := exercise.Similarity("gatto", "gato")
	if res.Similarity != want {
		t.Errorf("Similarity = %f, want %f", res.Similarity, want)
	}
}

func TestResult_FeedbackMentionsConfusedWord(t *testing.T) {
	res := NewService().Diagnose(testQuestion(exercise.TypeMultipleChoice), "dog", testPool(), History{})
	msg := res.Feedback()
	if !strings.Contains(msg, "perro") || !strings.Contains(msg, "cat") {
		t.Errorf("Feedback() = %q, want it to mention perro and cat", msg)
	}
}
