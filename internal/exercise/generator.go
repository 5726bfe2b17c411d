package exercise

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/PPRAMANIK62/word-quest/internal/vocab"
)

// Generator builds randomized exercise questions from a vocabulary pool.
// It is safe for concurrent use; the random source is guarded by a mutex.
type Generator struct {
	mu     sync.Mutex
	rng    *rand.Rand
	now    func() time.Time
	logger *slog.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithRand sets the random source used for every shuffle and sample.
func WithRand(r *rand.Rand) Option {
	return func(g *Generator) { g.rng = r }
}

// WithSeed uses a PCG source seeded with seed, for reproducible output.
func WithSeed(seed uint64) Option {
	return WithRand(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// WithClock sets the clock used to stamp question IDs.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// WithLogger sets the logger for degraded-generation warnings.
func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) { g.logger = l }
}

// New creates a Generator. Without options it uses an unseeded source, the
// system clock, and slog.Default().
func New(opts ...Option) *Generator {
	g := &Generator{
		rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = slog.Default()
	}
	return g
}

// MultipleChoice builds up to count questions asking for the translation of
// a source word. Each question has the target word plus three distractor
// translations drawn without replacement from the rest of the pool.
func (g *Generator) MultipleChoice(pool []vocab.Entry, count int) ([]Question, error) {
	if len(pool) < MinPoolSize {
		return nil, &InsufficientDataError{
			Generator: string(TypeMultipleChoice),
			Need:      MinPoolSize,
			Have:      len(pool),
			What:      "vocabulary entries",
		}
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	stamp := g.now().UnixMilli()
	targets := g.shuffled(pool)
	questions := make([]Question, 0, min(max(count, 0), len(targets)))

	for i := 0; i < count && i < len(targets); i++ {
		target := targets[i]
		options, ok := g.options(pool, target, target.TargetWord, targetWord)
		if !ok {
			continue
		}

		q := Question{
			ID:      questionID(prefixMultipleChoice, target.ID, stamp, i),
			Type:    TypeMultipleChoice,
			Entry:   target,
			Prompt:  fmt.Sprintf(`What is the translation of "%s"?`, target.SourceWord),
			Answer:  target.TargetWord,
			Options: options,
		}
		if target.ExampleSource != "" {
			q.Hint = fmt.Sprintf(`Hint: "%s"`, target.ExampleSource)
		}
		if target.ExampleTarget != "" {
			q.Explanation = fmt.Sprintf(`Example: "%s"`, target.ExampleTarget)
		}
		questions = append(questions, q)
	}
	return questions, nil
}

// FillInBlank builds up to count questions that blank the source word out
// of its source-language example sentence. Only entries with both example
// sentences qualify. Entries whose sentence does not contain the word as a
// whole word are skipped rather than emitted without a blank.
func (g *Generator) FillInBlank(pool []vocab.Entry, count int) ([]Question, error) {
	var candidates []vocab.Entry
	for _, e := range pool {
		if e.HasExamples() {
			candidates = append(candidates, e)
		}
	}
	if len(candidates) == 0 {
		return nil, &InsufficientDataError{
			Generator: string(TypeFillInBlank),
			Need:      1,
			Have:      0,
			What:      "entries with both example sentences",
		}
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	stamp := g.now().UnixMilli()
	var questions []Question
	for i, target := range g.shuffled(candidates) {
		if len(questions) >= count {
			break
		}
		sentence, ok := vocab.BlankWord(target.ExampleSource, target.SourceWord)
		if !ok {
			g.logger.Debug("skipping fill-in-blank entry",
				"entry", target.ID, "word", target.SourceWord, "reason", "word not in example")
			continue
		}

		q := Question{
			ID:     questionID(prefixFillInBlank, target.ID, stamp, i),
			Type:   TypeFillInBlank,
			Entry:  target,
			Prompt: fmt.Sprintf(`Fill in the blank: "%s"`, sentence),
			Answer: target.SourceWord,
			Hint:   fmt.Sprintf(`Translation: "%s"`, target.TargetWord),

			Explanation: fmt.Sprintf(`Full sentence: "%s"`, target.ExampleTarget),
		}
		questions = append(questions, q)
	}

	if len(questions) == 0 && count > 0 {
		return nil, &InsufficientDataError{
			Generator: string(TypeFillInBlank),
			Need:      1,
			Have:      0,
			What:      "entries whose example sentence contains the word",
		}
	}
	return questions, nil
}

// Translation builds up to count translation questions in the given
// direction, with options sampled the same way as MultipleChoice.
func (g *Generator) Translation(pool []vocab.Entry, count int, dir Direction) ([]Question, error) {
	if dir != ToSource && dir != FromSource {
		return nil, fmt.Errorf("translation: unknown direction %q", dir)
	}

	qtype := TypeTranslateFromSource
	if dir == ToSource {
		qtype = TypeTranslateToSource
	}
	if len(pool) < MinPoolSize {
		return nil, &InsufficientDataError{
			Generator: string(qtype),
			Need:      MinPoolSize,
			Have:      len(pool),
			What:      "vocabulary entries",
		}
	}

	prompt, answer := sourceWord, targetWord
	if dir == ToSource {
		prompt, answer = targetWord, sourceWord
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	stamp := g.now().UnixMilli()
	targets := g.shuffled(pool)
	questions := make([]Question, 0, min(max(count, 0), len(targets)))

	for i := 0; i < count && i < len(targets); i++ {
		target := targets[i]
		options, ok := g.options(pool, target, answer(target), answer)
		if !ok {
			continue
		}

		q := Question{
			ID:      questionID(prefixTranslation, target.ID, stamp, i),
			Type:    qtype,
			Entry:   target,
			Prompt:  fmt.Sprintf(`Translate: "%s"`, prompt(target)),
			Answer:  answer(target),
			Options: options,
		}
		if target.ExampleSource != "" {
			q.Hint = fmt.Sprintf(`Example: "%s"`, target.ExampleSource)
		}
		if target.ExampleTarget != "" {
			q.Explanation = fmt.Sprintf(`In context: "%s"`, target.ExampleTarget)
		}
		questions = append(questions, q)
	}
	return questions, nil
}

// Mixed builds a shuffled batch drawing ceil(total/3) questions from each of
// the multiple-choice, fill-in-the-blank, and translation generators. A
// failing generator is logged and skipped, so the batch may hold fewer than
// total questions.
func (g *Generator) Mixed(pool []vocab.Entry, total int) ([]Question, error) {
	if len(pool) < MinPoolSize {
		return nil, &InsufficientDataError{
			Generator: "mixed",
			Need:      MinPoolSize,
			Have:      len(pool),
			What:      "vocabulary entries",
		}
	}
	if total <= 0 {
		return []Question{}, nil
	}

	perType := (total + 2) / 3
	sources := []struct {
		name string
		gen  func() ([]Question, error)
	}{
		{string(TypeMultipleChoice), func() ([]Question, error) { return g.MultipleChoice(pool, perType) }},
		{string(TypeFillInBlank), func() ([]Question, error) { return g.FillInBlank(pool, perType) }},
		{"translation", func() ([]Question, error) { return g.Translation(pool, perType, FromSource) }},
	}

	var questions []Question
	for _, src := range sources {
		qs, err := src.gen()
		if err != nil {
			g.logger.Warn("exercise generator failed", "generator", src.name, "err", err)
			continue
		}
		questions = append(questions, qs...)
	}

	g.mu.Lock()
	g.rng.Shuffle(len(questions), func(i, j int) {
		questions[i], questions[j] = questions[j], questions[i]
	})
	g.mu.Unlock()

	if len(questions) > total {
		questions = questions[:total]
	}
	return questions, nil
}

// options samples distractors for target from pool and returns them
// shuffled together with answer. Distractors never repeat an option already
// chosen (compared in Normalize form, so no distractor grades as correct);
// false means the pool could not
// supply enough distinct ones. Caller must hold g.mu.
func (g *Generator) options(pool []vocab.Entry, target vocab.Entry, answer string, field func(vocab.Entry) string) ([]string, bool) {
	others := make([]vocab.Entry, 0, len(pool)-1)
	for _, e := range pool {
		if e.ID != target.ID {
			others = append(others, e)
		}
	}
	g.shuffleEntries(others)

	opts := make([]string, 0, OptionCount)
	opts = append(opts, answer)
	for _, e := range others {
		if len(opts) == OptionCount {
			break
		}
		candidate := field(e)
		if strings.TrimSpace(candidate) == "" || containsNormalized(opts, candidate) {
			continue
		}
		opts = append(opts, candidate)
	}
	if len(opts) < OptionCount {
		return nil, false
	}

	g.rng.Shuffle(len(opts), func(i, j int) { opts[i], opts[j] = opts[j], opts[i] })
	return opts, true
}

// shuffled returns a shuffled copy of entries. Caller must hold g.mu.
func (g *Generator) shuffled(entries []vocab.Entry) []vocab.Entry {
	out := make([]vocab.Entry, len(entries))
	copy(out, entries)
	g.shuffleEntries(out)
	return out
}

func (g *Generator) shuffleEntries(entries []vocab.Entry) {
	g.rng.Shuffle(len(entries), func(i, j int) {
		entries[i], entries[j] = entries[j], entries[i]
	})
}

func sourceWord(e vocab.Entry) string { return e.SourceWord }
func targetWord(e vocab.Entry) string { return e.TargetWord }

// containsNormalized reports whether any entry of list grades the same as s.
func containsNormalized(list []string, s string) bool {
	n := Normalize(s)
	for _, v := range list {
		if Normalize(v) == n {
			return true
		}
	}
	return false
}
