package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var indexCmd = &cobra.Command{
	Use:   "index [corpus-dir]",
	Short: "Index a corpus of filings",
	Long: `Walks the corpus tree <corpus-dir>/<company>/<period>/<files> and
indexes every recognised document. Documents already indexed are
skipped, so rerunning after adding files only processes the new ones.
Unreadable documents are reported and skipped; they never abort the run.`,
	Args: cobra.ExactArgs(1),
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	report, err := ingestService.Ingest(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("indexing failed: %w", err)
	}

	cmd.Println(report.Summary())
	if len(report.Failures) > 0 {
		cmd.Println()
		cmd.Println("Failed documents:")
		for _, f := range report.Failures {
			cmd.Printf("  %s: %s\n", f.Path, f.Reason)
		}
	}
	return nil
}
