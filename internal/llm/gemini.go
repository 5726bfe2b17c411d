package llm

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

var geminiAliases = map[string]string{
	"gemini-flash": "gemini-2.0-flash",
	"gemini-pro":   "gemini-2.0-pro",
}

// Gemini completes prompts with the Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
}

var _ Provider = (*Gemini)(nil)

// NewGemini creates a Gemini provider.
func NewGemini(ctx context.Context, cfg GeminiConfig) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini API key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Gemini{client: client, model: modelID(cfg.Model, geminiAliases)}, nil
}

func (g *Gemini) Model() string { return g.model }

func (g *Gemini) Complete(ctx context.Context, p Prompt) (*Completion, error) {
	conf := &genai.GenerateContentConfig{MaxOutputTokens: int32(p.maxTokens())}
	if p.Temperature > 0 {
		t := float32(p.Temperature)
		conf.Temperature = &t
	}
	if p.System != "" {
		conf.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: p.System}}}
	}
	if p.Schema != nil {
		conf.ResponseMIMEType = "application/json"
		conf.ResponseSchema = geminiSchema(p.Schema.Definition)
	}

	contents := []*genai.Content{{Role: "user", Parts: []*genai.Part{{Text: p.User}}}}
	result, err := g.client.Models.GenerateContent(ctx, g.model, contents, conf)
	if err != nil {
		return nil, classify(geminiStatus(err), err)
	}

	var usage Usage
	if m := result.UsageMetadata; m != nil {
		usage = Usage{InputTokens: int(m.PromptTokenCount), OutputTokens: int(m.CandidatesTokenCount)}
	}
	truncated := len(result.Candidates) > 0 && result.Candidates[0].FinishReason == "MAX_TOKENS"
	return finish(p, result.Text(), g.model, usage, truncated)
}

func geminiStatus(err error) int {
	var ptr *genai.APIError
	if errors.As(err, &ptr) {
		return ptr.Code
	}
	var val genai.APIError
	if errors.As(err, &val) {
		return val.Code
	}
	return 0
}

// geminiSchema converts a JSON Schema definition into the subset genai
// understands. Keywords it has no field for are dropped; the reply is still
// checked against the full definition.
func geminiSchema(def map[string]any) *genai.Schema {
	s := &genai.Schema{}
	if t, ok := def["type"].(string); ok {
		s.Type = geminiTypes[t]
	}
	if d, ok := def["description"].(string); ok {
		s.Description = d
	}
	if props, ok := def["properties"].(map[string]any); ok {
		s.Properties = make(map[string]*genai.Schema, len(props))
		for name, v := range props {
			if sub, ok := v.(map[string]any); ok {
				s.Properties[name] = geminiSchema(sub)
			}
		}
	}
	if items, ok := def["items"].(map[string]any); ok {
		s.Items = geminiSchema(items)
	}
	s.Required = stringList(def["required"])
	s.Enum = stringList(def["enum"])
	return s
}

var geminiTypes = map[string]genai.Type{
	"string":  genai.TypeString,
	"number":  genai.TypeNumber,
	"integer": genai.TypeInteger,
	"boolean": genai.TypeBoolean,
	"array":   genai.TypeArray,
	"object":  genai.TypeObject,
}

func stringList(v any) []string {
	switch vs := v.(type) {
	case []string:
		return vs
	case []any:
		var out []string
		for _, x := range vs {
			if s, ok := x.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
