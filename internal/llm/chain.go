package llm

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"time"

	"golang.org/x/time/rate"

	"github.com/PPRAMANIK62/word-quest/internal/store"
)

// Middleware decorates a Provider.
type Middleware func(Provider) Provider

// Wrap applies middleware to p. The first middleware is the outermost.
func Wrap(p Provider, mw ...Middleware) Provider {
	for i := len(mw) - 1; i >= 0; i-- {
		p = mw[i](p)
	}
	return p
}

// decorated overrides Complete and keeps the inner Model.
type decorated struct {
	Provider
	complete func(ctx context.Context, p Prompt) (*Completion, error)
}

func (d decorated) Complete(ctx context.Context, p Prompt) (*Completion, error) {
	return d.complete(ctx, p)
}

type purposeKey struct{}

// WithPurpose labels the requests made with ctx in usage records.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

func purposeOf(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok {
		return v
	}
	return "unknown"
}

// Retry retries transient failures with jittered exponential backoff. A
// reply that fails its schema gets one more try.
func Retry(cfg RetryConfig) Middleware {
	attempts := max(cfg.MaxAttempts, 1)
	return func(next Provider) Provider {
		return decorated{Provider: next, complete: func(ctx context.Context, p Prompt) (*Completion, error) {
			var schemaRetried bool
			for attempt := 0; ; attempt++ {
				c, err := next.Complete(ctx, p)
				if err == nil {
					return c, nil
				}

				var se *SchemaError
				switch {
				case errors.As(err, &se) && !schemaRetried:
					schemaRetried = true
				case !transient(err):
					return nil, err
				}
				if attempt+1 >= attempts {
					return nil, err
				}

				t := time.NewTimer(cfg.wait(attempt, err))
				select {
				case <-ctx.Done():
					t.Stop()
					return nil, ctx.Err()
				case <-t.C:
				}
			}
		}}
	}
}

func (cfg RetryConfig) wait(attempt int, err error) time.Duration {
	var rl *RateLimitError
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}
	mult := cfg.Multiplier
	if mult < 1 {
		mult = 1
	}
	d := float64(cfg.InitialWait)
	for range attempt {
		d *= mult
	}
	if cfg.MaxWait > 0 {
		d = min(d, float64(cfg.MaxWait))
	}
	// ±20% jitter
	d *= 0.8 + 0.4*rand.Float64()
	return time.Duration(d)
}

// Throttle spaces requests with a token bucket. A non-positive rate
// disables it.
func Throttle(cfg RateLimitConfig) Middleware {
	if cfg.RequestsPerSecond <= 0 {
		return func(next Provider) Provider { return next }
	}
	limiter := rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), max(cfg.Burst, 1))
	return func(next Provider) Provider {
		return decorated{Provider: next, complete: func(ctx context.Context, p Prompt) (*Completion, error) {
			if err := limiter.Wait(ctx); err != nil {
				return nil, err
			}
			return next.Complete(ctx, p)
		}}
	}
}

// UsageSink persists one record per request.
type UsageSink interface {
	AppendLLMRequest(ctx context.Context, data store.LLMRequestEventData) error
}

// Record logs every request and appends it to sink, which may be nil. A
// sink failure is logged and does not fail the request.
func Record(provider string, sink UsageSink, logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next Provider) Provider {
		return decorated{Provider: next, complete: func(ctx context.Context, p Prompt) (*Completion, error) {
			start := time.Now()
			c, err := next.Complete(ctx, p)

			ev := store.LLMRequestEventData{
				Provider:  provider,
				Model:     next.Model(),
				Purpose:   purposeOf(ctx),
				LatencyMs: time.Since(start).Milliseconds(),
				Success:   err == nil,
			}
			if c != nil {
				ev.Model = c.Model
				ev.InputTokens = c.Usage.InputTokens
				ev.OutputTokens = c.Usage.OutputTokens
			}
			log := logger.With("provider", ev.Provider, "model", ev.Model, "purpose", ev.Purpose, "latency_ms", ev.LatencyMs)
			if err != nil {
				ev.ErrorMessage = err.Error()
				log.Warn("llm request failed", "err", err)
			} else {
				log.Debug("llm request", "input_tokens", ev.InputTokens, "output_tokens", ev.OutputTokens)
			}

			if sink != nil {
				if serr := sink.AppendLLMRequest(ctx, ev); serr != nil {
					logger.Warn("record llm request", "err", serr)
				}
			}
			return c, err
		}}
	}
}
