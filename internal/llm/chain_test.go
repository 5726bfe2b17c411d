package llm

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/PPRAMANIK62/word-quest/internal/store"
)

type memSink struct {
	events []store.LLMRequestEventData
	err    error
}

func (m *memSink) AppendLLMRequest(_ context.Context, d store.LLMRequestEventData) error {
	m.events = append(m.events, d)
	return m.err
}

func quiet() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fastRetry keeps backoff short enough for tests.
var fastRetry = RetryConfig{MaxAttempts: 3, InitialWait: time.Millisecond, MaxWait: 5 * time.Millisecond, Multiplier: 2}

func TestWrap_Order(t *testing.T) {
	var order []string
	tag := func(name string) Middleware {
		return func(next Provider) Provider {
			return decorated{Provider: next, complete: func(ctx context.Context, p Prompt) (*Completion, error) {
				order = append(order, name)
				return next.Complete(ctx, p)
			}}
		}
	}

	p := Wrap(NewFake(Reply{Text: "ok"}), tag("outer"), tag("inner"))
	if _, err := p.Complete(context.Background(), Prompt{}); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if len(order) != 2 || order[0] != "outer" || order[1] != "inner" {
		t.Errorf("order = %v, want [outer inner]", order)
	}
	if p.Model() != "fake" {
		t.Errorf("Model() = %q, want the inner model", p.Model())
	}
}

func TestRetry(t *testing.T) {
	tests := []struct {
		name      string
		replies   []Reply
		wantErr   error
		wantCalls int
	}{
		{"first try", []Reply{{Text: "ok"}}, nil, 1},
		{"transient then success", []Reply{{Err: ErrUnavailable}, {Err: &RateLimitError{}}, {Text: "ok"}}, nil, 3},
		{"gives up", []Reply{{Err: ErrUnavailable}, {Err: ErrUnavailable}, {Err: ErrUnavailable}, {Text: "ok"}}, ErrUnavailable, 3},
		{"truncated is final", []Reply{{Err: ErrTruncated}, {Text: "ok"}}, ErrTruncated, 1},
		{"rejected is final", []Reply{{Err: ErrRejected}, {Text: "ok"}}, ErrRejected, 1},
		{"unknown is final", []Reply{{Err: io.ErrUnexpectedEOF}, {Text: "ok"}}, io.ErrUnexpectedEOF, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := NewFake(tt.replies...)
			_, err := Retry(fastRetry)(fake).Complete(context.Background(), Prompt{})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			if got := len(fake.Prompts()); got != tt.wantCalls {
				t.Errorf("calls = %d, want %d", got, tt.wantCalls)
			}
		})
	}
}

func TestRetry_SchemaFailureRetriedOnce(t *testing.T) {
	fake := NewFake(Reply{Text: `{}`}, Reply{Text: `{}`}, Reply{Text: `{"source":"a","target":"b"}`})
	cfg := fastRetry
	cfg.MaxAttempts = 5

	_, err := Retry(cfg)(fake).Complete(context.Background(), Prompt{Schema: pairSchema})
	var se *SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("error = %v, want *SchemaError", err)
	}
	if got := len(fake.Prompts()); got != 2 {
		t.Errorf("calls = %d, want 2", got)
	}
}

func TestRetry_StopsOnCancel(t *testing.T) {
	fake := NewFake(Reply{Err: ErrUnavailable}, Reply{Text: "ok"})
	cfg := RetryConfig{MaxAttempts: 2, InitialWait: time.Hour}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := Retry(cfg)(fake).Complete(ctx, Prompt{}); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("error = %v, want deadline exceeded", err)
	}
}

func TestRetryConfig_Wait(t *testing.T) {
	cfg := RetryConfig{InitialWait: 100 * time.Millisecond, MaxWait: 300 * time.Millisecond, Multiplier: 2}

	if got := cfg.wait(0, &RateLimitError{RetryAfter: 7 * time.Second}); got != 7*time.Second {
		t.Errorf("wait with Retry-After = %v, want 7s", got)
	}
	for attempt, base := range []time.Duration{100 * time.Millisecond, 200 * time.Millisecond, 300 * time.Millisecond, 300 * time.Millisecond} {
		got := cfg.wait(attempt, ErrUnavailable)
		lo, hi := base*8/10, base*12/10
		if got < lo || got > hi {
			t.Errorf("wait(%d) = %v, want within [%v, %v]", attempt, got, lo, hi)
		}
	}
}

func TestThrottle(t *testing.T) {
	fake := NewFake(Reply{Text: "a"}, Reply{Text: "b"})
	if p := Throttle(RateLimitConfig{})(fake); p != Provider(fake) {
		t.Error("disabled throttle should return the provider unchanged")
	}

	p := Throttle(RateLimitConfig{RequestsPerSecond: 0.001, Burst: 1})(fake)
	if _, err := p.Complete(context.Background(), Prompt{}); err != nil {
		t.Fatalf("first Complete() error = %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := p.Complete(ctx, Prompt{}); err == nil {
		t.Fatal("expected the limiter to refuse a request it cannot serve before the deadline")
	}
	if got := len(fake.Prompts()); got != 1 {
		t.Errorf("calls = %d, want 1", got)
	}
}

func TestRecord(t *testing.T) {
	sink := &memSink{}
	p := Record(ProviderFake, sink, quiet())(NewFake(
		Reply{Text: "ok", Usage: Usage{InputTokens: 12, OutputTokens: 7}},
		Reply{Err: errors.New("boom")},
	))

	ctx := WithPurpose(context.Background(), "enrich")
	if _, err := p.Complete(ctx, Prompt{}); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if _, err := p.Complete(context.Background(), Prompt{}); err == nil {
		t.Fatal("expected the scripted error")
	}

	if len(sink.events) != 2 {
		t.Fatalf("events = %d, want 2", len(sink.events))
	}
	ok, failed := sink.events[0], sink.events[1]
	if !ok.Success || ok.Purpose != "enrich" || ok.Model != "fake" || ok.InputTokens != 12 || ok.OutputTokens != 7 {
		t.Errorf("success event = %+v", ok)
	}
	if failed.Success || failed.Purpose != "unknown" || failed.ErrorMessage != "boom" {
		t.Errorf("failure event = %+v", failed)
	}
}

func TestRecord_SinkFailureIgnored(t *testing.T) {
	p := Record(ProviderFake, &memSink{err: errors.New("db closed")}, nil)(NewFake(Reply{Text: "ok"}))
	if _, err := p.Complete(context.Background(), Prompt{}); err != nil {
		t.Errorf("Complete() error = %v", err)
	}
}

func TestNew(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = ProviderFake
	p, err := New(context.Background(), cfg, nil, quiet())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if p.Model() != "fake" {
		t.Errorf("Model() = %q, want fake", p.Model())
	}

	cfg.Provider = ProviderOpenRouter
	cfg.OpenRouter.APIKey = "sk-or"
	p, err = New(context.Background(), cfg, nil, quiet())
	if err != nil {
		t.Fatalf("New(openrouter) error = %v", err)
	}
	if p.Model() != DefaultConfig().OpenRouter.Model {
		t.Errorf("Model() = %q", p.Model())
	}

	cfg.Provider = ProviderAnthropic
	if _, err := New(context.Background(), cfg, nil, nil); err == nil {
		t.Error("expected error for missing anthropic key")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		cfg     Config
		wantErr bool
	}{
		{Config{}, true},
		{Config{Provider: "llama"}, true},
		{Config{Provider: ProviderFake}, false},
		{Config{Provider: ProviderGemini}, true},
		{Config{Provider: ProviderGemini, Gemini: GeminiConfig{APIKey: "k"}}, false},
		{Config{Provider: ProviderOpenAI, OpenAI: OpenAIConfig{APIKey: "k"}}, false},
	}
	for _, tt := range tests {
		if err := tt.cfg.Validate(); (err != nil) != tt.wantErr {
			t.Errorf("Validate(%q) error = %v, wantErr %v", tt.cfg.Provider, err, tt.wantErr)
		}
	}
}

func TestConfig_Discover(t *testing.T) {
	for _, k := range []string{"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(k, "")
	}

	cfg := DefaultConfig()
	if cfg.Discover() {
		t.Fatal("Discover() = true with no keys set")
	}

	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")
	t.Setenv("OPENROUTER_API_KEY", "sk-or")
	if !cfg.Discover() {
		t.Fatal("Discover() = false with a key set")
	}
	if cfg.Provider != ProviderAnthropic || cfg.Anthropic.APIKey != "sk-ant" {
		t.Errorf("discovered %q with key %q", cfg.Provider, cfg.Anthropic.APIKey)
	}

	explicit := Config{Provider: ProviderFake}
	if !explicit.Discover() || explicit.Provider != ProviderFake {
		t.Errorf("Discover() overrode explicit provider: %q", explicit.Provider)
	}
}
