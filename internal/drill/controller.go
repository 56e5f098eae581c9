// Package drill implements the selection/reveal/mark-known state machine
// that any front end drives:
//
//	INIT --SelectNext--> FRONT --Reveal--> BACK
//	BACK --MarkKnown-->   FRONT | EXHAUSTED
//	BACK --MarkUnknown--> FRONT | EXHAUSTED
//	EXHAUSTED --Restart--> FRONT
//
// Exhaustion is an expected signal, not an error.
package drill

import (
	"math/rand/v2"

	"github.com/ordkort/ordkort/internal/deck"
)

// Controller owns the current-card pointer and the guess counters. All
// methods are synchronous and must be called from a single goroutine.
type Controller struct {
	store      *deck.Store
	intn       func(n int) int
	current    *deck.Entry
	guessed    int
	correct    int
	exhausted  bool
	persistErr error
}

// Option configures a Controller.
type Option func(*Controller)

// WithRand overrides the random index source. Tests use this for a
// deterministic card order.
func WithRand(intn func(n int) int) Option {
	return func(c *Controller) { c.intn = intn }
}

// New creates a Controller over the given store.
func New(store *deck.Store, opts ...Option) *Controller {
	c := &Controller{store: store, intn: rand.IntN}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SelectNext picks a pending word uniformly at random, makes it current and
// increments the guessed counter. ok is false when the pool is exhausted, in
// which case the caller shows the completion state.
func (c *Controller) SelectNext() (deck.Entry, bool) {
	if c.store.Remaining() == 0 {
		c.current = nil
		c.exhausted = true
		return deck.Entry{}, false
	}
	c.exhausted = false
	e := c.store.At(c.intn(c.store.Remaining()))
	c.current = &e
	c.guessed++
	return e, true
}

// Current returns the most recently selected card, if any.
func (c *Controller) Current() (deck.Entry, bool) {
	if c.current == nil {
		return deck.Entry{}, false
	}
	return *c.current, true
}

// Reveal returns the translation of the current card. ok is false when no
// card is selected; duplicate reveal events are harmless.
func (c *Controller) Reveal() (string, bool) {
	if c.current == nil {
		return "", false
	}
	return c.current.Target, true
}

// MarkKnown records the current card as learned: it leaves the pool, the
// pool is persisted and the next card is selected. A call with no current
// card is ignored so duplicate UI events cannot double-count.
//
// Removal and persistence are decoupled: when the progress write fails the
// removal stands, the session continues in memory and the next MarkKnown
// re-attempts the write.
func (c *Controller) MarkKnown() {
	if c.current == nil {
		return
	}
	c.correct++
	removed := c.store.Remove(*c.current)
	c.current = nil
	if !removed {
		// The pool no longer holds the card. Should not happen under correct
		// sequencing; treat as exhausted rather than fail.
		c.exhausted = true
		return
	}
	c.persistErr = c.store.Persist()
	c.SelectNext()
}

// MarkUnknown advances to the next card without touching the pool or the
// correct counter. The skipped word stays eligible for re-selection.
func (c *Controller) MarkUnknown() {
	c.SelectNext()
}

// Restart reseeds the pool from the canonical list, zeroes the counters and
// selects the first card of the fresh session.
func (c *Controller) Restart() (deck.Entry, bool) {
	c.store.Reset()
	c.guessed = 0
	c.correct = 0
	c.current = nil
	c.exhausted = false
	c.persistErr = nil
	return c.SelectNext()
}

// Counters reports total selections and total known marks. correct never
// exceeds guessed.
func (c *Controller) Counters() (guessed, correct int) {
	return c.guessed, c.correct
}

// Exhausted reports whether the last selection found the pool empty.
func (c *Controller) Exhausted() bool { return c.exhausted }

// Remaining returns the number of words left in the pool.
func (c *Controller) Remaining() int { return c.store.Remaining() }

// PersistErr returns the most recent progress-write failure, or nil. A later
// successful write clears it.
func (c *Controller) PersistErr() error { return c.persistErr }
