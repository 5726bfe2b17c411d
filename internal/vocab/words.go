package vocab

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// BlankMarker replaces the target word in fill-in-the-blank prompts.
const BlankMarker = "______"

// wordSpans returns the byte ranges of every case-insensitive, whole-word
// occurrence of word in sentence. Word characters are Unicode letters,
// digits, and underscore, so accented words match as a unit.
func wordSpans(sentence, word string) [][]int {
	word = strings.TrimSpace(word)
	if word == "" || sentence == "" {
		return nil
	}
	re, err := regexp.Compile("(?i)" + regexp.QuoteMeta(word))
	if err != nil {
		return nil
	}

	var spans [][]int
	for _, loc := range re.FindAllStringIndex(sentence, -1) {
		if isWordRune(lastRune(sentence[:loc[0]])) || isWordRune(firstRune(sentence[loc[1]:])) {
			continue
		}
		spans = append(spans, loc)
	}
	return spans
}

// ContainsWord reports whether word appears as a whole word in sentence,
// ignoring case.
func ContainsWord(sentence, word string) bool {
	return len(wordSpans(sentence, word)) > 0
}

// BlankWord replaces every whole-word occurrence of word in sentence with
// BlankMarker. The second result is false when no occurrence was found, in
// which case the sentence is returned unchanged.
func BlankWord(sentence, word string) (string, bool) {
	spans := wordSpans(sentence, word)
	if len(spans) == 0 {
		return sentence, false
	}

	var b strings.Builder
	prev := 0
	for _, s := range spans {
		b.WriteString(sentence[prev:s[0]])
		b.WriteString(BlankMarker)
		prev = s[1]
	}
	b.WriteString(sentence[prev:])
	return b.String(), true
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r)
}

func firstRune(s string) rune {
	if s == "" {
		return utf8.RuneError
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r
}

func lastRune(s string) rune {
	if s == "" {
		return utf8.RuneError
	}
	r, _ := utf8.DecodeLastRuneInString(s)
	return r
}
