// Package hints generates short example sentences for the card back. The
// sentences are a garnish on top of the drill: requests run asynchronously,
// results are cached per word and any failure simply leaves the card without
// an example line.
package hints

import (
	"context"
	"fmt"
	"sync"

	"github.com/ordkort/ordkort/internal/deck"
	"github.com/ordkort/ordkort/internal/llm"
)

const systemPrompt = `You are a language tutor. Given a vocabulary word and ` +
	`its translation, reply with exactly one short, natural example sentence ` +
	`using the word, followed by its translation in parentheses. No preamble, ` +
	`no quotes, no extra lines.`

// Config tunes example-sentence generation.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the generation defaults.
func DefaultConfig() Config {
	return Config{MaxTokens: 100, Temperature: 0.7}
}

// Service produces example sentences asynchronously. Results land in a
// per-word cache that the card screen polls; a word is only requested once
// per process regardless of how often it comes up.
type Service struct {
	provider llm.Provider
	cfg      Config

	mu       sync.Mutex
	cache    map[deck.Entry]string
	inflight map[deck.Entry]bool
}

// NewService creates an example-sentence service over the given provider.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{
		provider: provider,
		cfg:      cfg,
		cache:    make(map[deck.Entry]string),
		inflight: make(map[deck.Entry]bool),
	}
}

// Request starts async generation for the given word. Duplicate requests
// while one is in flight, and requests for already-cached words, are no-ops.
func (s *Service) Request(ctx context.Context, e deck.Entry) {
	s.mu.Lock()
	if _, ok := s.cache[e]; ok || s.inflight[e] {
		s.mu.Unlock()
		return
	}
	s.inflight[e] = true
	s.mu.Unlock()

	go func() {
		sentence, err := s.generate(ctx, e)
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.inflight, e)
		if err != nil {
			// Failed words may be re-requested on their next selection.
			return
		}
		s.cache[e] = sentence
	}()
}

// Get returns the cached example sentence for the given word, if generation
// has completed.
func (s *Service) Get(e deck.Entry) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sentence, ok := s.cache[e]
	return sentence, ok
}

func (s *Service) generate(ctx context.Context, e deck.Entry) (string, error) {
	ctx = llm.WithPurpose(ctx, "example-sentence")

	req := llm.Request{
		System:      systemPrompt,
		Prompt:      fmt.Sprintf("Word: %s\nTranslation: %s", e.Source, e.Target),
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return "", fmt.Errorf("example sentence: %w", err)
	}
	return resp.Text, nil
}
