package vocab

import (
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

// ValidationError lists every structural problem found in a pack.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid vocabulary pack: %s", strings.Join(e.Problems, "; "))
}

// Validate checks the pack for structural problems. It returns a
// *ValidationError describing all of them, or nil.
func (p *Pack) Validate() error {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if strings.TrimSpace(p.Name) == "" {
		add("name is empty")
	}
	if !semver.IsValid(canonicalVersion(p.Version)) {
		add("version %q is not a semantic version", p.Version)
	}
	if strings.TrimSpace(p.Language.Code) == "" {
		add("language code is empty")
	}
	if len(p.Lessons) == 0 {
		add("pack has no lessons")
	}

	lessonIDs := make(map[string]bool)
	entryIDs := make(map[string]bool)
	total := 0
	for i, l := range p.Lessons {
		if strings.TrimSpace(l.Title) == "" {
			add("lesson %d: title is empty", i+1)
		}
		if l.Difficulty < 1 || l.Difficulty > 5 {
			add("lesson %q: difficulty %d outside 1-5", l.Title, l.Difficulty)
		}
		if l.ID != "" {
			if lessonIDs[l.ID] {
				add("lesson %q: duplicate id %q", l.Title, l.ID)
			}
			lessonIDs[l.ID] = true
		}
		for j, e := range l.Entries {
			total++
			if strings.TrimSpace(e.SourceWord) == "" {
				add("lesson %q entry %d: source word is empty", l.Title, j+1)
			}
			if strings.TrimSpace(e.TargetWord) == "" {
				add("lesson %q entry %d: target word is empty", l.Title, j+1)
			}
			if e.ID != "" {
				if entryIDs[e.ID] {
					add("lesson %q entry %d: duplicate id %q", l.Title, j+1, e.ID)
				}
				entryIDs[e.ID] = true
			}
		}
	}
	if len(p.Lessons) > 0 && total == 0 {
		add("pack has no vocabulary")
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

// CompareVersions compares two pack versions. The result is -1, 0, or +1.
// A leading "v" is optional.
func CompareVersions(a, b string) int {
	return semver.Compare(canonicalVersion(a), canonicalVersion(b))
}

func canonicalVersion(v string) string {
	v = strings.TrimSpace(v)
	if v != "" && !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}
