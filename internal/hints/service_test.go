package hints

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ordkort/ordkort/internal/deck"
	"github.com/ordkort/ordkort/internal/llm"
)

// waitFor polls the cache until the sentence arrives or the deadline passes.
func waitFor(t *testing.T, s *Service, e deck.Entry) (string, bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if sentence, ok := s.Get(e); ok {
			return sentence, true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return "", false
}

func TestRequestCachesSentence(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Text: "Hej, hur mår du? (Hello, how are you?)"},
	)
	s := NewService(mock, DefaultConfig())
	word := deck.Entry{Source: "hej", Target: "hello"}

	s.Request(context.Background(), word)

	sentence, ok := waitFor(t, s, word)
	if !ok {
		t.Fatal("sentence never arrived")
	}
	if sentence != "Hej, hur mår du? (Hello, how are you?)" {
		t.Errorf("sentence = %q", sentence)
	}
	if mock.CallCount() != 1 {
		t.Errorf("Generate calls = %d, want 1", mock.CallCount())
	}
}

func TestRequestDeduplicates(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Text: "Tack för hjälpen. (Thanks for the help.)"},
	)
	s := NewService(mock, DefaultConfig())
	word := deck.Entry{Source: "tack", Target: "thanks"}

	s.Request(context.Background(), word)
	if _, ok := waitFor(t, s, word); !ok {
		t.Fatal("sentence never arrived")
	}

	// Re-requesting a cached word must not hit the provider again.
	s.Request(context.Background(), word)
	time.Sleep(20 * time.Millisecond)
	if mock.CallCount() != 1 {
		t.Errorf("Generate calls = %d, want 1", mock.CallCount())
	}
}

func TestRequestIncludesWord(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: "ok"})
	s := NewService(mock, DefaultConfig())
	word := deck.Entry{Source: "bra", Target: "good"}

	s.Request(context.Background(), word)
	if _, ok := waitFor(t, s, word); !ok {
		t.Fatal("sentence never arrived")
	}

	req := mock.Calls[0]
	if req.System == "" {
		t.Error("request carries no system prompt")
	}
	if want := "Word: bra\nTranslation: good"; req.Prompt != want {
		t.Errorf("prompt = %q, want %q", req.Prompt, want)
	}
}

func TestFailureLeavesNoCacheEntry(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}},
	)
	s := NewService(mock, DefaultConfig())
	word := deck.Entry{Source: "hej", Target: "hello"}

	s.Request(context.Background(), word)

	deadline := time.Now().Add(time.Second)
	for mock.CallCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	time.Sleep(20 * time.Millisecond)

	if _, ok := s.Get(word); ok {
		t.Error("failed generation left a cache entry")
	}
}
