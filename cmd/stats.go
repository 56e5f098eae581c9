package cmd

import (
	"fmt"

	"github.com/ordkort/ordkort/internal/history"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show drilling statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		hist, err := history.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open history: %w", err)
		}
		defer hist.Close()

		ctx := cmd.Context()
		stats, err := hist.Stats(ctx)
		if err != nil {
			return fmt.Errorf("load stats: %w", err)
		}

		fmt.Printf("Sessions:       %d\n", stats.Sessions)
		fmt.Printf("Cards answered: %d\n", stats.Answers)
		fmt.Printf("Known:          %d\n", stats.Known)
		fmt.Printf("Accuracy:       %.0f%%\n", stats.Accuracy*100)

		recent, err := hist.RecentSessions(ctx, limit)
		if err != nil {
			return fmt.Errorf("load sessions: %w", err)
		}
		if len(recent) == 0 {
			return nil
		}

		fmt.Println("\nRecent sessions:")
		for _, s := range recent {
			when := s.StartedAt.Local().Format("2006-01-02 15:04")
			if s.Finished {
				fmt.Printf("  %s  %d shown, %d known, %d left\n",
					when, s.CardsShown, s.CardsKnown, s.PoolEnd)
			} else {
				fmt.Printf("  %s  unfinished\n", when)
			}
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().Int("limit", 10, "Number of recent sessions to list")
}
