package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var retrieveTopK int

var retrieveCmd = &cobra.Command{
	Use:   "retrieve [question]",
	Short: "Show the passages a question would retrieve",
	Long: `Runs similarity retrieval without answer synthesis and prints the
matched passages with their scores and origins. Useful for inspecting
what the index knows before asking.`,
	Args: cobra.ExactArgs(1),
	RunE: runRetrieve,
}

func init() {
	retrieveCmd.Flags().IntVarP(&retrieveTopK, "top", "n", 3, "number of passages to retrieve")
	rootCmd.AddCommand(retrieveCmd)
}

func runRetrieve(cmd *cobra.Command, args []string) error {
	if retrieveService == nil {
		return errors.New("retrieve service not configured")
	}

	retrievals, err := retrieveService.Retrieve(cmd.Context(), args[0], retrieveTopK)
	if err != nil {
		return fmt.Errorf("retrieval failed: %w", err)
	}

	if len(retrievals) == 0 {
		cmd.Println("No passages found.")
		return nil
	}

	for i, r := range retrievals {
		cmd.Printf("[%d] %.4f  %s\n", i+1, r.Score, r.Passage.Metadata.Citation())
		cmd.Printf("    %s\n\n", r.Passage.Text)
	}
	return nil
}
