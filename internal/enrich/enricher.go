// Package enrich fills in missing example sentences with an LLM so entries
// can be used for fill-in-the-blank exercises.
package enrich

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/PPRAMANIK62/word-quest/internal/llm"
	"github.com/PPRAMANIK62/word-quest/internal/vocab"
)

// ErrWordMissing is returned when a generated sentence does not contain the
// source word as a whole word.
var ErrWordMissing = errors.New("generated sentence does not contain the word")

// Updater saves example sentences for an entry.
type Updater interface {
	UpdateExamples(ctx context.Context, entryID, source, target string) error
}

// Config controls the Enricher.
type Config struct {
	// Concurrency is the number of entries enriched in parallel.
	Concurrency int

	// Timeout bounds each LLM request.
	Timeout time.Duration

	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the recommended settings.
func DefaultConfig() Config {
	return Config{
		Concurrency: 4,
		Timeout:     30 * time.Second,
		MaxTokens:   256,
		Temperature: 0.7,
	}
}

// Result describes what happened to one entry.
type Result struct {
	Entry vocab.Entry
	Err   error // nil when the entry was updated
}

// Report summarizes an enrichment run.
type Report struct {
	Updated  int
	Rejected int // sentences that failed the whole-word check
	Failed   int
	Results  []Result
}

// Enricher generates example sentences for entries that lack them.
type Enricher struct {
	provider llm.Provider
	updater  Updater
	config   Config
	logger   *slog.Logger
}

// New creates an Enricher. logger may be nil.
func New(provider llm.Provider, updater Updater, cfg Config, logger *slog.Logger) *Enricher {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	return &Enricher{provider: provider, updater: updater, config: cfg, logger: logger}
}

// Missing returns the entries without both example sentences, at most limit
// of them (limit <= 0 means all).
func Missing(entries []vocab.Entry, limit int) []vocab.Entry {
	var out []vocab.Entry
	for _, e := range entries {
		if e.HasExamples() {
			continue
		}
		out = append(out, e)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// Run enriches entries concurrently. Per-entry failures are collected in
// the report; only cancellation of ctx aborts the run.
func (en *Enricher) Run(ctx context.Context, entries []vocab.Entry, language string) (*Report, error) {
	report := &Report{Results: make([]Result, len(entries))}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(en.config.Concurrency)

	for i, e := range entries {
		g.Go(func() error {
			err := en.enrichOne(gctx, e, language)
			if errors.Is(err, context.Canceled) {
				return err
			}

			mu.Lock()
			defer mu.Unlock()
			report.Results[i] = Result{Entry: e, Err: err}
			switch {
			case err == nil:
				report.Updated++
			case errors.Is(err, ErrWordMissing):
				report.Rejected++
			default:
				report.Failed++
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return report, err
	}
	return report, nil
}

func (en *Enricher) enrichOne(ctx context.Context, e vocab.Entry, language string) error {
	ctx = llm.WithPurpose(ctx, "enrich")
	if en.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, en.config.Timeout)
		defer cancel()
	}

	c, err := en.provider.Complete(ctx, llm.Prompt{
		System:      systemPrompt,
		User:        buildUserMessage(e, language),
		Schema:      ExampleSchema,
		MaxTokens:   en.config.MaxTokens,
		Temperature: en.config.Temperature,
	})
	if err != nil {
		return fmt.Errorf("generate examples for %s: %w", e.ID, err)
	}

	var out exampleOutput
	if err := json.Unmarshal([]byte(c.Text), &out); err != nil {
		return fmt.Errorf("parse examples for %s: %w", e.ID, err)
	}
	if !vocab.ContainsWord(out.ExampleSource, e.SourceWord) {
		en.logger.Debug("rejected generated example", "entry", e.ID, "word", e.SourceWord, "sentence", out.ExampleSource)
		return fmt.Errorf("%s: %w", e.ID, ErrWordMissing)
	}

	if err := en.updater.UpdateExamples(ctx, e.ID, out.ExampleSource, out.ExampleTarget); err != nil {
		return fmt.Errorf("save examples for %s: %w", e.ID, err)
	}
	en.logger.Info("enriched entry", "entry", e.ID, "word", e.SourceWord)
	return nil
}
