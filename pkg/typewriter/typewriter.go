// Package typewriter reveals text one character at a time on a timer.
package typewriter

import (
	"context"
	"sync"
	"time"
)

// DefaultDelay is the pause between two revealed characters.
const DefaultDelay = 30 * time.Millisecond

// Typewriter runs at most one reveal at a time. Starting a new reveal cancels
// the previous one so two prompts never type over each other.
type Typewriter struct {
	delay time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	seq    uint64
}

func New(delay time.Duration) *Typewriter {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Typewriter{delay: delay}
}

func (t *Typewriter) Delay() time.Duration {
	return t.delay
}

// Reveal calls emit with a growing prefix of text, one rune per tick, and
// returns once the full text was emitted. It returns the context error if ctx
// is done or the reveal was superseded by another Reveal or by Stop.
func (t *Typewriter) Reveal(ctx context.Context, text string, emit func(prefix string)) error {
	ctx, cancel := context.WithCancel(ctx)

	t.mu.Lock()
	if t.cancel != nil {
		t.cancel()
	}
	t.cancel = cancel
	t.seq++
	seq := t.seq
	t.mu.Unlock()

	defer func() {
		t.mu.Lock()
		if t.seq == seq {
			t.cancel = nil
		}
		t.mu.Unlock()
		cancel()
	}()

	runes := []rune(text)
	if len(runes) == 0 {
		return ctx.Err()
	}

	ticker := time.NewTicker(t.delay)
	defer ticker.Stop()

	for i := 1; i <= len(runes); i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
		emit(string(runes[:i]))
	}
	return nil
}

// Stop cancels the active reveal, if any.
func (t *Typewriter) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
}

// Active reports whether a reveal is running.
func (t *Typewriter) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cancel != nil
}

// Duration is how long revealing text takes at the configured delay.
func (t *Typewriter) Duration(text string) time.Duration {
	return time.Duration(len([]rune(text))) * t.delay
}
