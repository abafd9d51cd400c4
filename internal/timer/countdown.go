// Package timer runs the per-habit countdown.
package timer

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Step is how much time one tick removes
const Step = time.Second

// TickSource returns a channel of ticks and a function that stops it
type TickSource func() (<-chan time.Time, func())

// SecondTicker is the wall-clock tick source
func SecondTicker() (<-chan time.Time, func()) {
	t := time.NewTicker(Step)
	return t.C, t.Stop
}

// Countdown counts a fixed duration down to zero in whole seconds. It can be
// driven by Start, which consumes a TickSource, or manually through Tick.
type Countdown struct {
	mu        sync.Mutex
	total     time.Duration
	remaining time.Duration
	paused    bool
	started   bool
	finished  bool

	source  TickSource
	updates chan time.Duration
	done    chan struct{}
}

// Option configures a Countdown
type Option func(*Countdown)

// WithTickSource replaces the wall-clock ticker
func WithTickSource(src TickSource) Option {
	return func(c *Countdown) { c.source = src }
}

// New creates a stopped countdown of total
func New(total time.Duration, opts ...Option) *Countdown {
	c := &Countdown{
		total:     total,
		remaining: total,
		source:    SecondTicker,
		updates:   make(chan time.Duration, 1),
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	if total <= 0 {
		c.remaining = 0
		c.finished = true
		close(c.done)
	}
	return c
}

// Updates delivers the remaining time after each tick. Slow readers only
// see the latest value.
func (c *Countdown) Updates() <-chan time.Duration { return c.updates }

// Done is closed when the countdown reaches zero
func (c *Countdown) Done() <-chan struct{} { return c.done }

// Start consumes ticks until the countdown finishes or ctx is cancelled.
// Calling Start on a running countdown is a no-op.
func (c *Countdown) Start(ctx context.Context) {
	c.mu.Lock()
	if c.started || c.finished {
		c.mu.Unlock()
		return
	}
	c.started = true
	c.paused = false
	c.mu.Unlock()

	ticks, stop := c.source()
	go func() {
		defer stop()
		defer func() {
			c.mu.Lock()
			c.started = false
			c.mu.Unlock()
		}()
		for {
			select {
			case <-ctx.Done():
				return
			case <-c.done:
				return
			case <-ticks:
				if _, finished := c.Tick(); finished {
					return
				}
			}
		}
	}()
}

// Tick removes one Step unless paused and reports the remaining time and
// whether the countdown has finished.
func (c *Countdown) Tick() (time.Duration, bool) {
	c.mu.Lock()
	if c.finished {
		c.mu.Unlock()
		return 0, true
	}
	if c.paused {
		rem := c.remaining
		c.mu.Unlock()
		return rem, false
	}

	c.remaining -= Step
	if c.remaining < 0 {
		c.remaining = 0
	}
	rem := c.remaining
	finished := rem == 0
	if finished {
		c.finished = true
		close(c.done)
	}
	c.mu.Unlock()

	c.publish(rem)
	return rem, finished
}

func (c *Countdown) publish(rem time.Duration) {
	select {
	case <-c.updates:
	default:
	}
	select {
	case c.updates <- rem:
	default:
	}
}

// Pause stops the countdown from advancing
func (c *Countdown) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.paused = true
}

// Resume continues a paused countdown
func (c *Countdown) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.paused = false
}

// Toggle flips between paused and running and returns the new paused state
func (c *Countdown) Toggle() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.paused = !c.paused
	return c.paused
}

// Reset restores the full duration and pauses. A finished countdown stays finished.
func (c *Countdown) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.finished {
		return
	}
	c.remaining = c.total
	c.paused = true
}

// Remaining returns the time left
func (c *Countdown) Remaining() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

// Total returns the configured duration
func (c *Countdown) Total() time.Duration { return c.total }

// Paused reports whether the countdown is paused
func (c *Countdown) Paused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.paused
}

// Finished reports whether the countdown reached zero
func (c *Countdown) Finished() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.finished
}

// Progress returns the elapsed fraction in [0, 1]
func (c *Countdown) Progress() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.total <= 0 {
		return 1
	}
	return float64(c.total-c.remaining) / float64(c.total)
}

// FormatDuration renders seconds as HH:MM:SS
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
}
