package cmd

import (
	"fmt"

	"github.com/ordkort/ordkort/internal/deck"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a word list from a CSV or Excel file",
	Long:  "Read word/translation pairs from the first two columns of a CSV or .xlsx file and write them as the canonical word list.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sheet, _ := cmd.Flags().GetString("sheet")

		header, entries, err := deck.ImportFile(args[0], sheet)
		if err != nil {
			return fmt.Errorf("import %s: %w", args[0], err)
		}
		if len(entries) == 0 {
			return fmt.Errorf("no word/translation pairs found in %s", args[0])
		}

		out, _ := cmd.Flags().GetString("out")
		if out == "" {
			out, err = resolveDeckPath(cmd)
			if err != nil {
				return fmt.Errorf("resolve deck path: %w", err)
			}
		}

		if err := deck.WriteFile(out, header, entries); err != nil {
			return fmt.Errorf("write word list: %w", err)
		}
		fmt.Printf("Imported %d words to %s\n", len(entries), out)
		return nil
	},
}

func init() {
	importCmd.Flags().String("sheet", "", "Worksheet name for Excel files (default: first sheet)")
	importCmd.Flags().String("out", "", "Destination CSV (default: the deck path)")
}
