package card

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/ordkort/ordkort/internal/deck"
	"github.com/ordkort/ordkort/internal/history"
	"github.com/ordkort/ordkort/internal/router"
	"github.com/ordkort/ordkort/internal/screen"
	"github.com/ordkort/ordkort/internal/screens/summary"
)

// mockRecorder implements history.Recorder for testing.
type mockRecorder struct {
	starts  []history.SessionStart
	ends    []history.SessionEnd
	answers []history.Answer
}

func (m *mockRecorder) SessionStarted(_ context.Context, s history.SessionStart) error {
	m.starts = append(m.starts, s)
	return nil
}
func (m *mockRecorder) SessionEnded(_ context.Context, s history.SessionEnd) error {
	m.ends = append(m.ends, s)
	return nil
}
func (m *mockRecorder) CardAnswered(_ context.Context, a history.Answer) error {
	m.answers = append(m.answers, a)
	return nil
}
func (m *mockRecorder) LLMRequestLogged(context.Context, history.LLMRequest) error {
	return nil
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testStore(t *testing.T, entries []deck.Entry) *deck.Store {
	t.Helper()
	dir := t.TempDir()
	deckPath := filepath.Join(dir, "words.csv")
	if err := deck.WriteFile(deckPath, deck.DefaultHeader, entries); err != nil {
		t.Fatalf("write deck: %v", err)
	}
	s, err := deck.Open(deckPath, filepath.Join(dir, "progress.csv"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return s
}

func testCardScreen(t *testing.T, entries []deck.Entry) (*CardScreen, *mockRecorder) {
	t.Helper()
	rec := &mockRecorder{}
	c := New(testStore(t, entries), rec, nil, 3*time.Second)
	c.Init()
	return c, rec
}

func singleCard() []deck.Entry {
	return []deck.Entry{{Source: "hej", Target: "hello"}}
}

func twoCards() []deck.Entry {
	return []deck.Entry{
		{Source: "hej", Target: "hello"},
		{Source: "tack", Target: "thanks"},
	}
}

func TestCardScreen_Title(t *testing.T) {
	c, _ := testCardScreen(t, singleCard())
	if c.Title() != "Drill" {
		t.Errorf("Title = %q, want %q", c.Title(), "Drill")
	}
}

func TestCardScreen_InitSelectsCard(t *testing.T) {
	c, _ := testCardScreen(t, twoCards())

	if _, ok := c.ctrl.Current(); !ok {
		t.Fatal("expected a current card after Init")
	}
	guessed, correct := c.ctrl.Counters()
	if guessed != 1 || correct != 0 {
		t.Errorf("counters = (%d, %d), want (1, 0)", guessed, correct)
	}
	if c.revealed {
		t.Error("expected card to start on its front")
	}
}

func TestCardScreen_EnterReveals(t *testing.T) {
	c, _ := testCardScreen(t, singleCard())

	var scr screen.Screen = c
	scr, _ = scr.Update(specialKey(tea.KeyEnter))
	cs := scr.(*CardScreen)

	if !cs.revealed {
		t.Error("expected enter to reveal the card back")
	}
}

func TestCardScreen_AutoFlip(t *testing.T) {
	c, _ := testCardScreen(t, singleCard())

	var scr screen.Screen = c
	scr, _ = scr.Update(flipMsg{Seq: c.flipSeq})
	cs := scr.(*CardScreen)

	if !cs.revealed {
		t.Error("expected the flip timer to reveal the card")
	}
}

func TestCardScreen_StaleFlipIgnored(t *testing.T) {
	c, _ := testCardScreen(t, twoCards())
	stale := c.flipSeq

	// Reveal and advance; both bump the flip sequence.
	var scr screen.Screen = c
	scr, _ = scr.Update(specialKey(tea.KeyEnter))
	scr, _ = scr.Update(keyPress('n'))
	cs := scr.(*CardScreen)
	if cs.revealed {
		t.Fatal("expected front side after advancing")
	}

	scr, _ = cs.Update(flipMsg{Seq: stale})
	cs = scr.(*CardScreen)
	if cs.revealed {
		t.Error("expected the stale flip timer to be ignored")
	}
}

func TestCardScreen_MarkKnown(t *testing.T) {
	c, rec := testCardScreen(t, singleCard())

	var scr screen.Screen = c
	scr, _ = scr.Update(specialKey(tea.KeyEnter))
	scr, _ = scr.Update(keyPress('y'))
	cs := scr.(*CardScreen)

	if !cs.ctrl.Exhausted() {
		t.Error("expected exhaustion after the only card was marked known")
	}
	if cs.ctrl.Remaining() != 0 {
		t.Errorf("remaining = %d, want 0", cs.ctrl.Remaining())
	}
	if len(rec.answers) != 1 {
		t.Fatalf("answers = %d, want 1", len(rec.answers))
	}
	if !rec.answers[0].Known {
		t.Error("expected the answer to be recorded as known")
	}
	if rec.answers[0].Source != "hej" {
		t.Errorf("answer source = %q, want %q", rec.answers[0].Source, "hej")
	}
}

func TestCardScreen_MarkUnknownKeepsCard(t *testing.T) {
	c, rec := testCardScreen(t, singleCard())

	var scr screen.Screen = c
	scr, _ = scr.Update(specialKey(tea.KeyEnter))
	scr, _ = scr.Update(keyPress('n'))
	cs := scr.(*CardScreen)

	if cs.ctrl.Exhausted() {
		t.Error("expected the pool to survive a not-known mark")
	}
	if cs.ctrl.Remaining() != 1 {
		t.Errorf("remaining = %d, want 1", cs.ctrl.Remaining())
	}
	guessed, correct := cs.ctrl.Counters()
	if guessed != 2 || correct != 0 {
		t.Errorf("counters = (%d, %d), want (2, 0)", guessed, correct)
	}
	if len(rec.answers) != 1 || rec.answers[0].Known {
		t.Errorf("expected one not-known answer, got %+v", rec.answers)
	}
}

func TestCardScreen_MarkBeforeRevealIgnored(t *testing.T) {
	c, rec := testCardScreen(t, singleCard())

	// On the front, y and n feed the guess input instead of marking.
	var scr screen.Screen = c
	scr, _ = scr.Update(keyPress('y'))
	cs := scr.(*CardScreen)

	if cs.ctrl.Remaining() != 1 {
		t.Errorf("remaining = %d, want 1", cs.ctrl.Remaining())
	}
	if len(rec.answers) != 0 {
		t.Errorf("answers = %d, want 0", len(rec.answers))
	}
	if cs.input.Value() != "y" {
		t.Errorf("input = %q, want %q", cs.input.Value(), "y")
	}
}

func TestCardScreen_EscEndsSession(t *testing.T) {
	c, rec := testCardScreen(t, twoCards())

	var scr screen.Screen = c
	scr, cmd := scr.Update(specialKey(tea.KeyEscape))
	if cmd == nil {
		t.Fatal("expected a command from esc")
	}
	msg := cmd()
	if _, ok := msg.(sessionEndMsg); !ok {
		t.Fatalf("expected sessionEndMsg, got %T", msg)
	}

	_, cmd = scr.Update(msg)
	if cmd == nil {
		t.Fatal("expected a command from the session end")
	}
	replace, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	if _, ok := replace.Screen.(*summary.SummaryScreen); !ok {
		t.Errorf("expected a summary screen, got %T", replace.Screen)
	}

	if len(rec.ends) != 1 {
		t.Fatalf("session ends = %d, want 1", len(rec.ends))
	}
	if rec.ends[0].CardsShown != 1 || rec.ends[0].PoolEnd != 2 {
		t.Errorf("session end = %+v, want 1 shown, pool 2", rec.ends[0])
	}
}

func TestCardScreen_RestartAfterExhausted(t *testing.T) {
	c, _ := testCardScreen(t, singleCard())

	var scr screen.Screen = c
	scr, _ = scr.Update(specialKey(tea.KeyEnter))
	scr, _ = scr.Update(keyPress('y'))
	cs := scr.(*CardScreen)
	if !cs.ctrl.Exhausted() {
		t.Fatal("expected exhaustion")
	}

	scr, _ = cs.Update(keyPress('r'))
	cs = scr.(*CardScreen)

	if cs.ctrl.Exhausted() {
		t.Error("expected a fresh pool after restart")
	}
	if cs.ctrl.Remaining() != 1 {
		t.Errorf("remaining = %d, want 1", cs.ctrl.Remaining())
	}
	guessed, correct := cs.ctrl.Counters()
	if guessed != 1 || correct != 0 {
		t.Errorf("counters = (%d, %d), want (1, 0)", guessed, correct)
	}
}

func TestCardScreen_KeyHints(t *testing.T) {
	c, _ := testCardScreen(t, singleCard())

	front := c.KeyHints()
	if len(front) == 0 {
		t.Fatal("expected key hints on the front")
	}

	var scr screen.Screen = c
	scr, _ = scr.Update(specialKey(tea.KeyEnter))
	cs := scr.(*CardScreen)

	back := cs.KeyHints()
	if len(back) == 0 {
		t.Fatal("expected key hints on the back")
	}
	if front[0].Key == back[0].Key {
		t.Error("expected different hints for front and back")
	}
}

func TestCardScreen_Counters(t *testing.T) {
	c, _ := testCardScreen(t, twoCards())
	got := c.Counters()
	want := "guessed 1   known 0   left 2"
	if got != want {
		t.Errorf("Counters = %q, want %q", got, want)
	}
}

func TestCardScreen_View(t *testing.T) {
	c, _ := testCardScreen(t, singleCard())

	front := c.View(80, 24)
	if !strings.Contains(front, "hej") {
		t.Error("expected the front to show the word")
	}
	if strings.Contains(front, "hello") {
		t.Error("expected the front to hide the translation")
	}

	var scr screen.Screen = c
	scr, _ = scr.Update(specialKey(tea.KeyEnter))
	cs := scr.(*CardScreen)

	back := cs.View(80, 24)
	if !strings.Contains(back, "hello") {
		t.Error("expected the back to show the translation")
	}
}

func TestCardScreen_ExhaustedView(t *testing.T) {
	c, _ := testCardScreen(t, singleCard())

	var scr screen.Screen = c
	scr, _ = scr.Update(specialKey(tea.KeyEnter))
	scr, _ = scr.Update(keyPress('y'))
	cs := scr.(*CardScreen)

	view := cs.View(80, 24)
	if !strings.Contains(view, "All words learned!") {
		t.Error("expected the completion message")
	}
}
