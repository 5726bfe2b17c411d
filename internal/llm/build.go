package llm

import (
	"context"
	"fmt"
	"log/slog"
)

// New builds the configured provider. Each attempt made by Retry is
// throttled and recorded separately.
func New(ctx context.Context, cfg Config, sink UsageSink, logger *slog.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		base Provider
		err  error
	)
	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = NewAnthropic(cfg.Anthropic)
	case ProviderOpenAI:
		base, err = NewOpenAI(cfg.OpenAI)
	case ProviderGemini:
		base, err = NewGemini(ctx, cfg.Gemini)
	case ProviderOpenRouter:
		base, err = NewOpenRouter(cfg.OpenRouter)
	case ProviderFake:
		base = NewFake()
	}
	if err != nil {
		return nil, fmt.Errorf("init %s provider: %w", cfg.Provider, err)
	}

	return Wrap(base,
		Retry(cfg.Retry),
		Throttle(cfg.RateLimit),
		Record(cfg.Provider, sink, logger),
	), nil
}
