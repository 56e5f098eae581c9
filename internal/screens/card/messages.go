package card

import "time"

// flipMsg auto-reveals the card back. Seq guards against stale timers: a
// manual reveal or card advance bumps the screen's sequence so an old timer
// firing afterwards is ignored.
type flipMsg struct {
	Seq int
}

// hintTickMsg polls the example-sentence cache while the back is showing.
type hintTickMsg time.Time

// sessionEndMsg triggers the end-of-session flow.
type sessionEndMsg struct{}
