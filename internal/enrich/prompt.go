package enrich

import (
	"fmt"
	"strings"

	"github.com/PPRAMANIK62/word-quest/internal/llm"
	"github.com/PPRAMANIK62/word-quest/internal/vocab"
)

const systemPrompt = `You write short example sentences for a vocabulary learning app.

Rules:
- Write one simple sentence in the source language that uses the source word exactly as given, as a whole word.
- Write its natural translation in the target language, using the target word.
- Keep both sentences under 12 words and suitable for beginners.
- Do not add quotes, notes, or transliteration.`

// ExampleSchema is the JSON schema for example sentence responses.
var ExampleSchema = &llm.Schema{
	Name:        "vocabulary-example",
	Description: "An example sentence pair for one vocabulary entry",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"example_source": map[string]any{
				"type":        "string",
				"minLength":   1,
				"description": "Sentence in the source language containing the source word",
			},
			"example_target": map[string]any{
				"type":        "string",
				"minLength":   1,
				"description": "Translation of the sentence in the target language",
			},
		},
		"required":             []any{"example_source", "example_target"},
		"additionalProperties": false,
	},
}

// exampleOutput is the raw LLM response.
type exampleOutput struct {
	ExampleSource string `json:"example_source"`
	ExampleTarget string `json:"example_target"`
}

func buildUserMessage(e vocab.Entry, language string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Target language: %s\n", language)
	fmt.Fprintf(&b, "Source word: %s\n", e.SourceWord)
	fmt.Fprintf(&b, "Target word: %s\n", e.TargetWord)
	if e.WordType != "" {
		fmt.Fprintf(&b, "Word type: %s\n", e.WordType)
	}
	return strings.TrimRight(b.String(), "\n")
}
