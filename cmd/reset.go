package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/ordkort/ordkort/internal/deck"
	"github.com/ordkort/ordkort/internal/history"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset drilling progress",
	Long:  "Reseed the pending pool from the full word list. With --history, also wipe the recorded session history.",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		wipeHistory, _ := cmd.Flags().GetBool("history")

		if !yes {
			fmt.Print("Reset progress? All words become pending again [y/N]: ")
			reader := bufio.NewReader(os.Stdin)
			line, _ := reader.ReadString('\n')
			if !strings.EqualFold(strings.TrimSpace(line), "y") {
				fmt.Println("Aborted.")
				return nil
			}
		}

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
			return fmt.Errorf("open deck: %w", err)
		}
		store.Reset()
		if err := store.Persist(); err != nil {
			return fmt.Errorf("write progress: %w", err)
		}
		fmt.Printf("Progress reset — %d words pending.\n", store.Remaining())

		if wipeHistory {
			dbPath, err := resolveDBPath(cmd)
			if err != nil {
				return fmt.Errorf("resolve database path: %w", err)
			}
			hist, err := history.Open(dbPath)
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer hist.Close()
			if err := hist.Wipe(cmd.Context()); err != nil {
				return fmt.Errorf("wipe history: %w", err)
			}
			fmt.Println("History wiped.")
		}
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	resetCmd.Flags().Bool("history", false, "Also wipe the session history database")
}
