package vocab

import "fmt"

// LintIssue flags an entry that imports fine but makes a poor exercise.
type LintIssue struct {
	EntryID    string
	SourceWord string
	Message    string
}

func (i LintIssue) String() string {
	return fmt.Sprintf("%s (%s): %s", i.EntryID, i.SourceWord, i.Message)
}

// Lint reports entries whose example sentences cannot back a
// fill-in-the-blank question: a single missing sentence, or a source
// sentence that does not contain the word itself (e.g. an inflected form).
func Lint(entries []Entry) []LintIssue {
	var issues []LintIssue
	for _, e := range entries {
		switch {
		case e.ExampleSource == "" && e.ExampleTarget == "":
			// No examples at all is allowed; the entry just skips
			// fill-in-the-blank.
		case e.ExampleSource == "" || e.ExampleTarget == "":
			issues = append(issues, LintIssue{
				EntryID:    e.ID,
				SourceWord: e.SourceWord,
				Message:    "only one example sentence is present",
			})
		case !ContainsWord(e.ExampleSource, e.SourceWord):
			issues = append(issues, LintIssue{
				EntryID:    e.ID,
				SourceWord: e.SourceWord,
				Message:    fmt.Sprintf("example %q does not contain the word", e.ExampleSource),
			})
		}
	}
	return issues
}
