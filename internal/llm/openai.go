package llm

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

const openRouterBaseURL = "https://openrouter.ai/api/v1"

var openaiAliases = map[string]string{
	"gpt-4o":      "gpt-4o",
	"gpt-4o-mini": "gpt-4o-mini",
}

// OpenAI completes prompts with the chat completions API. It also serves
// OpenRouter and other OpenAI-compatible endpoints.
type OpenAI struct {
	client *openai.Client
	model  string
}

var _ Provider = (*OpenAI)(nil)

// NewOpenAI creates an OpenAI provider.
func NewOpenAI(cfg OpenAIConfig) (*OpenAI, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai API key is required")
	}
	return newOpenAICompatible(cfg.APIKey, cfg.BaseURL, modelID(cfg.Model, openaiAliases)), nil
}

// NewOpenRouter creates a provider for the OpenRouter API. Model IDs are
// passed through unchanged.
func NewOpenRouter(cfg OpenRouterConfig) (*OpenAI, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openrouter API key is required")
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = openRouterBaseURL
	}
	return newOpenAICompatible(cfg.APIKey, baseURL, cfg.Model), nil
}

func newOpenAICompatible(key, baseURL, model string) *OpenAI {
	conf := openai.DefaultConfig(key)
	if baseURL != "" {
		conf.BaseURL = baseURL
	}
	return &OpenAI{client: openai.NewClientWithConfig(conf), model: model}
}

func (o *OpenAI) Model() string { return o.model }

func (o *OpenAI) Complete(ctx context.Context, p Prompt) (*Completion, error) {
	req := openai.ChatCompletionRequest{
		Model:               o.model,
		MaxCompletionTokens: p.maxTokens(),
		Temperature:         float32(p.Temperature),
	}
	if p.System != "" {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: p.System})
	}
	req.Messages = append(req.Messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: p.User})

	if p.Schema != nil {
		def, err := p.Schema.definitionJSON()
		if err != nil {
			return nil, err
		}
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:        p.Schema.Name,
				Description: p.Schema.Description,
				Schema:      def,
				Strict:      true,
			},
		}
	}

	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, classifyOpenAI(err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: openai reply has no choices", ErrUnavailable)
	}

	choice := resp.Choices[0]
	usage := Usage{InputTokens: resp.Usage.PromptTokens, OutputTokens: resp.Usage.CompletionTokens}
	return finish(p, choice.Message.Content, resp.Model, usage, choice.FinishReason == openai.FinishReasonLength)
}

func classifyOpenAI(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return classify(apiErr.HTTPStatusCode, err)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return classify(reqErr.HTTPStatusCode, err)
	}
	return classify(0, err)
}
