package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ordkort/ordkort/internal/app"
	"github.com/ordkort/ordkort/internal/deck"
	"github.com/ordkort/ordkort/internal/hints"
	"github.com/ordkort/ordkort/internal/history"
	"github.com/ordkort/ordkort/internal/llm"
	"github.com/spf13/cobra"
)

const defaultFlipDelay = 3 * time.Second

// runApp opens the deck and history store, builds dependencies, and launches
// the TUI.
func runApp(cmd *cobra.Command) error {
	deckPath, err := resolveDeckPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve deck path: %w", err)
	}
	progressPath, err := resolveProgressPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve progress path: %w", err)
	}

	store, err := deck.Open(deckPath, progressPath)
	if err != nil {
		if errors.Is(err, deck.ErrDeckUnavailable) {
			return fmt.Errorf("no usable word list at %s\n\nPut a two-column CSV there (word,translation with a header row)\nor import one: ordkort import <file>", deckPath)
		}
		return fmt.Errorf("open deck: %w", err)
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve database path: %w", err)
	}
	hist, err := history.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer hist.Close()

	flipDelay, _ := cmd.Flags().GetDuration("flip")
	if !cmd.Flags().Changed("flip") {
		if v := os.Getenv("ORDKORT_FLIP_DELAY"); v != "" {
			if d, err := time.ParseDuration(v); err == nil {
				flipDelay = d
			}
		}
	}
	if flipDelay <= 0 {
		flipDelay = defaultFlipDelay
	}

	opts := app.Options{
		Store:     store,
		Recorder:  hist,
		Reader:    hist,
		FlipDelay: flipDelay,
	}

	// Example sentences are optional — the drill works without a provider.
	provider, err := llm.NewProviderFromEnv(hist)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Example sentences will be unavailable.")
	} else if provider != nil {
		opts.Hints = hints.NewService(provider, hints.DefaultConfig())
	}

	return app.Run(opts)
}
