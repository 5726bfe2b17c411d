package vocab

import "testing"

func TestBlankWord(t *testing.T) {
	tests := []struct {
		sentence string
		word     string
		want     string
		found    bool
	}{
		{"Hello, how are you?", "hello", "______, how are you?", true},
		{"The cat sat on the cat mat.", "cat", "The ______ sat on the ______ mat.", true},
		{"Concatenate the strings.", "cat", "Concatenate the strings.", false},
		{"She eats apples.", "eat", "She eats apples.", false},
		{"Un café, por favor.", "café", "Un ______, por favor.", true},
		{"Cafés are open.", "café", "Cafés are open.", false},
		{"Use a.b here", "a.b", "Use ______ here", true},
		{"la la land", "la", "______ ______ land", true},
		{"", "word", "", false},
		{"Some sentence", "", "Some sentence", false},
	}

	for _, tt := range tests {
		got, found := BlankWord(tt.sentence, tt.word)
		if got != tt.want || found != tt.found {
			t.Errorf("BlankWord(%q, %q) = (%q, %v), want (%q, %v)",
				tt.sentence, tt.word, got, found, tt.want, tt.found)
		}
	}
}

func TestContainsWord(t *testing.T) {
	if !ContainsWord("My Mother cooks well.", "mother") {
		t.Error("expected case-insensitive whole-word match")
	}
	if ContainsWord("Grandmother visits.", "mother") {
		t.Error("expected no match inside a longer word")
	}
}

func TestLint(t *testing.T) {
	entries := []Entry{
		{ID: "1", SourceWord: "hello", ExampleSource: "Hello there.", ExampleTarget: "Hola."},
		{ID: "2", SourceWord: "thanks", ExampleSource: "Thank you very much.", ExampleTarget: "Muchas gracias."},
		{ID: "3", SourceWord: "please"},
		{ID: "4", SourceWord: "dog", ExampleSource: "The dog barks."},
	}

	issues := Lint(entries)
	if len(issues) != 2 {
		t.Fatalf("Lint() returned %d issues, want 2: %v", len(issues), issues)
	}
	if issues[0].EntryID != "2" {
		t.Errorf("issues[0].EntryID = %q, want %q", issues[0].EntryID, "2")
	}
	if issues[1].EntryID != "4" {
		t.Errorf("issues[1].EntryID = %q, want %q", issues[1].EntryID, "4")
	}
}
