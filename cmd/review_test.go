package cmd

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/PPRAMANIK62/word-quest/internal/mastery"
)

func TestPrintReview(t *testing.T) {
	now := time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)
	records := []mastery.Record{
		{VocabularyID: "es.1.1", Level: 2, TotalAttempts: 6, CorrectAnswers: 2, NextReviewAt: now.Add(-time.Hour)},
		{VocabularyID: "es.1.2", Level: 1, TotalAttempts: 1, CorrectAnswers: 1, NextReviewAt: now.Add(-2 * time.Hour)},
		{VocabularyID: "es.1.3", Level: 3, TotalAttempts: 3, CorrectAnswers: 3, NextReviewAt: now.Add(time.Hour)},
	}

	var out bytes.Buffer
	printReview(&out, records, quizPool(), 1, now)
	text := out.String()

	// Most overdue first, cut at the limit.
	assert.Contains(t, text, "perro")
	assert.Contains(t, text, "... and 1 more")
	assert.Contains(t, text, "2 due.")
	assert.NotContains(t, text, "casa")

	assert.Contains(t, text, "Frequent mistakes")
	assert.Contains(t, text, "2/6 correct")
}

func TestPrintReview_NothingDue(t *testing.T) {
	var out bytes.Buffer
	printReview(&out, nil, quizPool(), 0, time.Now())
	assert.Equal(t, "No words due for review.\n", out.String())
}
