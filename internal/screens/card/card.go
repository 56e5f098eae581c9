// Package card is the drilling screen: one flashcard at a time, front first,
// back after a reveal. The back is revealed by a typed guess, the enter key
// or the auto-flip timer; y / n then decide whether the word leaves the pool.
package card

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/ordkort/ordkort/internal/deck"
	"github.com/ordkort/ordkort/internal/drill"
	"github.com/ordkort/ordkort/internal/hints"
	"github.com/ordkort/ordkort/internal/history"
	"github.com/ordkort/ordkort/internal/router"
	"github.com/ordkort/ordkort/internal/screen"
	"github.com/ordkort/ordkort/internal/screens/summary"
	"github.com/ordkort/ordkort/internal/ui/components"
	"github.com/ordkort/ordkort/internal/ui/layout"

	"github.com/google/uuid"
)

const hintPollInterval = 250 * time.Millisecond

// CardScreen implements screen.Screen for an active drill session.
type CardScreen struct {
	ctrl      *drill.Controller
	recorder  history.Recorder
	hints     *hints.Service
	flipDelay time.Duration

	sessionID string
	startedAt time.Time
	poolStart int

	revealed bool
	flipSeq  int
	example  string
	input    components.TextInput
}

var _ screen.Screen = (*CardScreen)(nil)
var _ screen.KeyHintProvider = (*CardScreen)(nil)
var _ screen.CounterProvider = (*CardScreen)(nil)

// New creates a new CardScreen over the given word store. hints may be nil
// when no LLM provider is configured.
func New(store *deck.Store, recorder history.Recorder, hintSvc *hints.Service, flipDelay time.Duration) *CardScreen {
	return &CardScreen{
		ctrl:      drill.New(store),
		recorder:  recorder,
		hints:     hintSvc,
		flipDelay: flipDelay,
		sessionID: uuid.New().String(),
		startedAt: time.Now(),
		input:     components.NewTextInput("Type your guess...", 40),
	}
}

func (c *CardScreen) Init() tea.Cmd {
	c.poolStart = c.ctrl.Remaining()
	c.ctrl.SelectNext()

	cmds := []tea.Cmd{c.recordStart(), c.input.Init()}
	if !c.ctrl.Exhausted() {
		cmds = append(cmds, c.flipCmd())
	}
	return tea.Batch(cmds...)
}

func (c *CardScreen) Title() string {
	return "Drill"
}

func (c *CardScreen) KeyHints() []layout.KeyHint {
	if c.ctrl.Exhausted() {
		return []layout.KeyHint{
			{Key: "R", Description: "Start over"},
			{Key: "Esc", Description: "Finish"},
		}
	}
	if c.revealed {
		return []layout.KeyHint{
			{Key: "Y", Description: "I knew it"},
			{Key: "N", Description: "Not yet"},
			{Key: "Esc", Description: "End session"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Reveal"},
		{Key: "Esc", Description: "End session"},
	}
}

// Counters renders the header readout.
func (c *CardScreen) Counters() string {
	guessed, correct := c.ctrl.Counters()
	return fmt.Sprintf("guessed %d   known %d   left %d", guessed, correct, c.ctrl.Remaining())
}

func (c *CardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case flipMsg:
		if msg.Seq == c.flipSeq && !c.revealed && !c.ctrl.Exhausted() {
			return c, c.reveal()
		}
		return c, nil

	case hintTickMsg:
		return c.handleHintTick()

	case sessionEndMsg:
		return c.endSession()

	case tea.KeyMsg:
		return c.handleKey(msg)
	}

	if !c.revealed && !c.ctrl.Exhausted() {
		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		return c, cmd
	}
	return c, nil
}

func (c *CardScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if c.ctrl.Exhausted() {
		switch key {
		case "r", "R":
			c.ctrl.Restart()
			return c, c.nextCard()
		case "esc", "enter":
			return c, func() tea.Msg { return sessionEndMsg{} }
		}
		return c, nil
	}

	if key == "esc" {
		return c, func() tea.Msg { return sessionEndMsg{} }
	}

	if c.revealed {
		switch key {
		case "y", "Y":
			c.recordAnswer(true)
			c.ctrl.MarkKnown()
			return c, c.nextCard()
		case "n", "N":
			c.recordAnswer(false)
			c.ctrl.MarkUnknown()
			return c, c.nextCard()
		}
		return c, nil
	}

	// Front side: enter reveals, everything else feeds the guess input.
	if key == "enter" {
		if guess := strings.TrimSpace(c.input.Value()); guess != "" {
			target, _ := c.ctrl.Reveal()
			c.input.Submit(strings.EqualFold(guess, target))
		}
		return c, c.reveal()
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return c, cmd
}

// reveal flips the current card to its back.
func (c *CardScreen) reveal() tea.Cmd {
	if c.revealed {
		return nil
	}
	c.revealed = true
	c.flipSeq++ // cancel any pending auto-flip

	if c.hints == nil {
		return nil
	}
	if cur, ok := c.ctrl.Current(); ok {
		c.hints.Request(context.Background(), cur)
		if sentence, ok := c.hints.Get(cur); ok {
			c.example = sentence
			return nil
		}
		return hintTickCmd()
	}
	return nil
}

// nextCard resets per-card state after the controller advanced.
func (c *CardScreen) nextCard() tea.Cmd {
	c.revealed = false
	c.example = ""
	c.flipSeq++
	c.input.Reset()

	if c.ctrl.Exhausted() {
		return nil
	}
	return c.flipCmd()
}

func (c *CardScreen) handleHintTick() (screen.Screen, tea.Cmd) {
	if !c.revealed || c.hints == nil {
		return c, nil
	}
	cur, ok := c.ctrl.Current()
	if !ok {
		return c, nil
	}
	if sentence, ok := c.hints.Get(cur); ok {
		c.example = sentence
		return c, nil
	}
	return c, hintTickCmd()
}

// flipCmd schedules the auto-reveal for the current card.
func (c *CardScreen) flipCmd() tea.Cmd {
	seq := c.flipSeq
	return tea.Tick(c.flipDelay, func(time.Time) tea.Msg {
		return flipMsg{Seq: seq}
	})
}

func hintTickCmd() tea.Cmd {
	return tea.Tick(hintPollInterval, func(t time.Time) tea.Msg {
		return hintTickMsg(t)
	})
}

func (c *CardScreen) recordStart() tea.Cmd {
	return func() tea.Msg {
		_ = c.recorder.SessionStarted(context.Background(), history.SessionStart{
			ID:        c.sessionID,
			StartedAt: c.startedAt,
			PoolStart: c.poolStart,
		})
		return nil
	}
}

func (c *CardScreen) recordAnswer(known bool) {
	cur, ok := c.ctrl.Current()
	if !ok {
		return
	}
	_ = c.recorder.CardAnswered(context.Background(), history.Answer{
		SessionID:  c.sessionID,
		Source:     cur.Source,
		Target:     cur.Target,
		Known:      known,
		AnsweredAt: time.Now(),
	})
}

// endSession closes the history row and hands over to the summary screen.
func (c *CardScreen) endSession() (screen.Screen, tea.Cmd) {
	guessed, correct := c.ctrl.Counters()
	poolEnd := c.ctrl.Remaining()

	_ = c.recorder.SessionEnded(context.Background(), history.SessionEnd{
		ID:         c.sessionID,
		EndedAt:    time.Now(),
		CardsShown: guessed,
		CardsKnown: correct,
		PoolEnd:    poolEnd,
	})

	result := summary.Result{
		CardsShown: guessed,
		CardsKnown: correct,
		PoolEnd:    poolEnd,
		Completed:  c.ctrl.Exhausted(),
		Duration:   time.Since(c.startedAt),
	}
	return c, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: summary.New(result)}
	}
}
