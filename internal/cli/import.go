package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/flashdeck/internal/excel"
)

func newImportCmd(app *App) *cobra.Command {
	cfg := excel.DefaultImportConfig()

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import cards into a set from an .xlsx or .csv file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.SetName == "" {
				return fmt.Errorf("--set is required")
			}
			cfg.FilePath = args[0]

			result, err := excel.ImportCards(cfg)
			if err != nil {
				return err
			}

			cmd.Println(headerStyle.Render(fmt.Sprintf("Imported into %q", cfg.SetName)))
			cmd.Printf("  processed: %d\n  created:   %d\n  updated:   %d\n  skipped:   %d\n",
				result.TotalProcessed, result.Created, result.Updated, result.Skipped)
			for _, e := range result.Errors {
				cmd.Println(mutedStyle.Render("  " + e))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&cfg.SetName, "set", "", "target card set (created if missing)")
	cmd.Flags().StringVar(&cfg.WordColumn, "word-col", cfg.WordColumn, "column with the word")
	cmd.Flags().StringVar(&cfg.AnswerColumn, "answer-col", cfg.AnswerColumn, "column with the answer")
	cmd.Flags().StringVar(&cfg.SheetName, "sheet", cfg.SheetName, "sheet name for Excel files")
	cmd.Flags().IntVar(&cfg.StartRow, "start-row", cfg.StartRow, "first data row (1-based)")
	return cmd
}
