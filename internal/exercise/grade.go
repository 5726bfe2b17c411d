package exercise

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// nonWord matches everything that is not a letter, mark, digit, underscore,
// or whitespace.
var nonWord = regexp.MustCompile(`[^\p{L}\p{M}\p{N}_\s]`)

// Normalize lowercases s, trims surrounding whitespace, then strips
// punctuation and symbols. Whitespace left next to a stripped mark stays, so
// "hola ." does not normalize to "hola". It is the comparison form used by
// ValidateAnswer and by option distinctness.
func Normalize(s string) string {
	return nonWord.ReplaceAllString(strings.TrimSpace(strings.ToLower(s)), "")
}

// ValidateAnswer reports whether the learner's answer matches the expected
// one exactly after normalization. There is no partial credit.
func ValidateAnswer(user, correct string) bool {
	return Normalize(user) == Normalize(correct)
}

// Similarity scores how close user is to correct on a 0 to 1 scale using
// edit distance over lowercased, trimmed text. Punctuation counts. Two empty
// strings are identical.
func Similarity(user, correct string) float64 {
	a := strings.ToLower(strings.TrimSpace(user))
	b := strings.ToLower(strings.TrimSpace(correct))
	if a == b {
		return 1.0
	}

	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if longest == 0 {
		return 1.0
	}

	score := float64(longest-Levenshtein(a, b)) / float64(longest)
	return min(max(score, 0), 1)
}

// Levenshtein returns the minimum number of single-rune insertions,
// deletions, and substitutions that turn a into b.
func Levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}
