package cmd

import (
	"github.com/ordkort/ordkort/internal/deck"
	"github.com/ordkort/ordkort/internal/history"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ordkort",
	Short: "Vocabulary flashcards in the terminal",
	Long:  "Ordkort — drill vocabulary with flashcards until every word sticks.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("deck", "", "Path to the word list CSV (overrides ORDKORT_DECK)")
	rootCmd.PersistentFlags().String("progress", "", "Path to the progress CSV (overrides ORDKORT_PROGRESS)")
	rootCmd.PersistentFlags().String("db", "", "Path to the history SQLite file (overrides ORDKORT_DB)")
	rootCmd.Flags().Duration("flip", defaultFlipDelay, "Delay before the card auto-reveals its back")

	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// resolveDeckPath returns the word list path using --deck (highest priority),
// then ORDKORT_DECK, then the default lookup.
func resolveDeckPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("deck"); p != "" {
		return p, nil
	}
	return deck.DefaultDeckPath()
}

// resolveProgressPath returns the progress file path using --progress, then
// ORDKORT_PROGRESS, then the default XDG path.
func resolveProgressPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("progress"); p != "" {
		return p, nil
	}
	return deck.DefaultProgressPath()
}

// resolveDBPath returns the history database path using --db, then
// ORDKORT_DB, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, nil
	}
	return history.DefaultPath()
}
