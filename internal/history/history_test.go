package history

import (
	"context"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases, so
		// journal_mode is not asserted here.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestSessionLifecycle(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	started := time.Now().UTC().Truncate(time.Second)

	err := s.SessionStarted(ctx, SessionStart{ID: "s1", StartedAt: started, PoolStart: 40})
	if err != nil {
		t.Fatalf("session started: %v", err)
	}

	for i, known := range []bool{true, false, true} {
		err := s.CardAnswered(ctx, Answer{
			SessionID:  "s1",
			Source:     "hej",
			Target:     "hello",
			Known:      known,
			AnsweredAt: started.Add(time.Duration(i) * time.Second),
		})
		if err != nil {
			t.Fatalf("card answered: %v", err)
		}
	}

	err = s.SessionEnded(ctx, SessionEnd{
		ID: "s1", EndedAt: started.Add(time.Minute),
		CardsShown: 3, CardsKnown: 2, PoolEnd: 38,
	})
	if err != nil {
		t.Fatalf("session ended: %v", err)
	}

	stats, err := s.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Sessions != 1 || stats.Answers != 3 || stats.Known != 2 {
		t.Errorf("stats = %+v, want 1 session, 3 answers, 2 known", stats)
	}
	if stats.Accuracy < 0.66 || stats.Accuracy > 0.67 {
		t.Errorf("accuracy = %f, want ~0.667", stats.Accuracy)
	}

	recent, err := s.RecentSessions(ctx, 5)
	if err != nil {
		t.Fatalf("recent sessions: %v", err)
	}
	if len(recent) != 1 {
		t.Fatalf("recent sessions = %d, want 1", len(recent))
	}
	got := recent[0]
	if !got.Finished || got.CardsShown != 3 || got.CardsKnown != 2 || got.PoolEnd != 38 {
		t.Errorf("recent[0] = %+v, want finished session with 3 shown / 2 known / pool 38", got)
	}
}

func TestUnfinishedSession(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	err := s.SessionStarted(ctx, SessionStart{ID: "s1", StartedAt: time.Now(), PoolStart: 10})
	if err != nil {
		t.Fatalf("session started: %v", err)
	}

	recent, err := s.RecentSessions(ctx, 5)
	if err != nil {
		t.Fatalf("recent sessions: %v", err)
	}
	if len(recent) != 1 || recent[0].Finished {
		t.Errorf("recent = %+v, want one unfinished session", recent)
	}
}

func TestLLMRequestLogged(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	err := s.LLMRequestLogged(ctx, LLMRequest{
		Provider: "anthropic", Model: "claude-haiku", Purpose: "example",
		InputTokens: 20, OutputTokens: 15, LatencyMs: 120, Success: true,
		RequestedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("llm request logged: %v", err)
	}

	var count int
	if err := s.DB().QueryRow(`SELECT COUNT(*) FROM llm_requests`).Scan(&count); err != nil {
		t.Fatalf("count llm_requests: %v", err)
	}
	if count != 1 {
		t.Errorf("llm_requests count = %d, want 1", count)
	}
}

func TestWipe(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_ = s.SessionStarted(ctx, SessionStart{ID: "s1", StartedAt: time.Now()})
	_ = s.CardAnswered(ctx, Answer{SessionID: "s1", Source: "hej", Target: "hello", AnsweredAt: time.Now()})

	if err := s.Wipe(ctx); err != nil {
		t.Fatalf("wipe: %v", err)
	}
	stats, err := s.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Sessions != 0 || stats.Answers != 0 {
		t.Errorf("stats after wipe = %+v, want zeroes", stats)
	}
}
