// Package llm talks to hosted language models. Every provider answers a
// single-turn Prompt, optionally constrained to a JSON schema, and the
// middleware in chain.go adds retries, throttling and usage recording.
package llm

import (
	"context"
	"strings"
)

// Provider completes single-turn prompts.
type Provider interface {
	Complete(ctx context.Context, p Prompt) (*Completion, error)

	// Model is the model identifier requests are sent to.
	Model() string
}

// Prompt is one request to a model.
type Prompt struct {
	System string
	User   string

	// Schema, when set, asks the provider for JSON output and the reply is
	// checked against it before it is returned.
	Schema *Schema

	MaxTokens   int
	Temperature float64
}

// defaultMaxTokens applies when a Prompt leaves MaxTokens at zero.
const defaultMaxTokens = 512

func (p Prompt) maxTokens() int {
	if p.MaxTokens > 0 {
		return p.MaxTokens
	}
	return defaultMaxTokens
}

// Completion is a model reply.
type Completion struct {
	// Text is the reply body. It is valid JSON when the prompt had a schema.
	Text  string
	Model string
	Usage Usage
}

// Usage counts the tokens billed for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Total returns input plus output tokens.
func (u Usage) Total() int { return u.InputTokens + u.OutputTokens }

// finish turns raw provider output into a Completion, rejecting truncated
// replies and replies that do not match the prompt's schema.
func finish(p Prompt, text, model string, usage Usage, truncated bool) (*Completion, error) {
	if truncated {
		return nil, ErrTruncated
	}
	text = stripFences(text)
	if p.Schema != nil {
		if err := p.Schema.Check([]byte(text)); err != nil {
			return nil, err
		}
	}
	return &Completion{Text: text, Model: model, Usage: usage}, nil
}

// stripFences removes a markdown code fence some models wrap JSON in.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "```"))
}

// modelID maps a friendly alias to a provider model ID. Unknown names are
// used as given.
func modelID(name string, aliases map[string]string) string {
	if id, ok := aliases[name]; ok {
		return id
	}
	return name
}
