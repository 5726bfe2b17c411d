package vocab

import "fmt"

// Entry is a single vocabulary item: a source-language word, its
// translation, and optional supporting material.
type Entry struct {
	ID            string `json:"id"`
	LessonID      string `json:"lesson_id,omitempty"`
	SourceWord    string `json:"source_word"`
	TargetWord    string `json:"target_word"`
	Pronunciation string `json:"pronunciation,omitempty"`
	WordType      string `json:"word_type,omitempty"`
	ExampleSource string `json:"example_source,omitempty"`
	ExampleTarget string `json:"example_target,omitempty"`
	AudioURL      string `json:"audio_url,omitempty"`
}

// HasExamples reports whether both example sentences are present.
func (e Entry) HasExamples() bool {
	return e.ExampleSource != "" && e.ExampleTarget != ""
}

// Lesson groups entries under a title and difficulty.
type Lesson struct {
	ID               string  `json:"id"`
	Title            string  `json:"title"`
	Description      string  `json:"description,omitempty"`
	OrderIndex       int     `json:"order_index"`
	Difficulty       int     `json:"difficulty_level"`
	EstimatedMinutes int     `json:"estimated_minutes,omitempty"`
	Entries          []Entry `json:"vocabulary"`
}

// Language identifies the target language of a pack.
type Language struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	NativeName string `json:"native_name,omitempty"`
	Flag       string `json:"flag_emoji,omitempty"`
}

// Pack is an importable vocabulary bundle for one language.
type Pack struct {
	Name     string   `json:"name"`
	Version  string   `json:"version"`
	Language Language `json:"language"`
	Lessons  []Lesson `json:"lessons"`
}

// Entries returns every entry across all lessons, in lesson order.
func (p *Pack) Entries() []Entry {
	var out []Entry
	for _, l := range p.Lessons {
		out = append(out, l.Entries...)
	}
	return out
}

// assignIDs fills in lesson and entry IDs that the pack author left blank
// and links every entry to its lesson.
func (p *Pack) assignIDs() {
	for i := range p.Lessons {
		l := &p.Lessons[i]
		if l.ID == "" {
			l.ID = fmt.Sprintf("%s.%d", p.Language.Code, l.OrderIndex)
		}
		for j := range l.Entries {
			e := &l.Entries[j]
			if e.ID == "" {
				e.ID = fmt.Sprintf("%s.%d", l.ID, j+1)
			}
			e.LessonID = l.ID
		}
	}
}
