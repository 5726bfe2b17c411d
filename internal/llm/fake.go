package llm

import (
	"context"
	"fmt"
	"sync"
)

// Reply is one scripted Fake answer.
type Reply struct {
	Text  string
	Usage Usage
	Err   error
}

// Fake is a scripted Provider for tests and offline runs. Replies are used
// in order; when they run out Complete returns ErrUnavailable.
type Fake struct {
	mu      sync.Mutex
	replies []Reply
	prompts []Prompt
}

var _ Provider = (*Fake)(nil)

// NewFake creates a Fake with the given replies queued.
func NewFake(replies ...Reply) *Fake {
	return &Fake{replies: replies}
}

// Queue appends replies.
func (f *Fake) Queue(replies ...Reply) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replies = append(f.replies, replies...)
}

// Prompts returns the prompts received so far.
func (f *Fake) Prompts() []Prompt {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Prompt(nil), f.prompts...)
}

func (f *Fake) Model() string { return "fake" }

// Complete pops the next reply. Text replies go through the same schema
// check as real providers.
func (f *Fake) Complete(ctx context.Context, p Prompt) (*Completion, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f.mu.Lock()
	f.prompts = append(f.prompts, p)
	if len(f.replies) == 0 {
		f.mu.Unlock()
		return nil, fmt.Errorf("%w: fake has no replies left", ErrUnavailable)
	}
	r := f.replies[0]
	f.replies = f.replies[1:]
	f.mu.Unlock()

	if r.Err != nil {
		return nil, r.Err
	}
	return finish(p, r.Text, f.Model(), r.Usage, false)
}
