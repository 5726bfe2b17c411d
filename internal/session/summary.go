package session

import (
	"math"
	"time"

	"github.com/PPRAMANIK62/word-quest/internal/badges"
)

// Summary holds the data displayed on the summary screen.
type Summary struct {
	SessionID      string
	Policy         string
	Duration       time.Duration
	TotalQuestions int
	TotalCorrect   int
	Accuracy       float64
	Points         int
	WordsReviewed  int
	WordsLearned   int
	BestStreak     int
	Badges         []badges.Award
	Mistakes       []Answer
}

// Points returns the score for a finished session: 10 for finishing plus up
// to 20 for accuracy.
func Points(accuracy float64) int {
	if accuracy < 0 {
		accuracy = 0
	}
	return 10 + int(math.Floor(accuracy*20))
}

// BuildSummary creates a Summary from a finished session.
func BuildSummary(s *Session, policy string, wordsLearned int, awards []badges.Award) *Summary {
	reviewed := make(map[string]bool)
	var mistakes []Answer
	for _, a := range s.Answers {
		if q := s.Question(a.QuestionID); q != nil {
			reviewed[q.Entry.ID] = true
		}
		if !a.Correct {
			mistakes = append(mistakes, a)
		}
	}

	acc := s.Accuracy()
	return &Summary{
		SessionID:      s.ID,
		Policy:         policy,
		Duration:       s.Duration(),
		TotalQuestions: len(s.Answers),
		TotalCorrect:   s.Correct(),
		Accuracy:       acc,
		Points:         Points(acc),
		WordsReviewed:  len(reviewed),
		WordsLearned:   wordsLearned,
		BestStreak:     s.BestStreak(),
		Badges:         append([]badges.Award(nil), awards...),
		Mistakes:       mistakes,
	}
}
