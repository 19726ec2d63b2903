package cli

import (
	"fmt"
	"log"
	"time"

	"patriot-quiz-bot/internal/config"
	"patriot-quiz-bot/internal/infra/sheets"
	"github.com/spf13/cobra"
)

// NewSetupSheetCmd verifies the results spreadsheet and repairs its
// header row. The repair clears existing rows when the header does not
// match, so this is also the way to reset the sheet.
func NewSetupSheetCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "setup-sheet",
		Short: "Verify the results spreadsheet and repair its header row",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if cfg.Sheets.SpreadsheetID == "" {
				return fmt.Errorf("sheets spreadsheet_id not configured")
			}
			sink, err := sheets.NewResultSink(cmd.Context(), cfg.Sheets.CredentialsFile, cfg.Sheets.SpreadsheetID, time.Minute)
			if err != nil {
				return err
			}
			results, err := sink.AllResults(cmd.Context())
			if err != nil {
				return err
			}
			log.Printf("sheet %s ready, %d result rows", cfg.Sheets.SpreadsheetID, len(results))
			return nil
		},
	}
}
