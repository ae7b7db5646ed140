package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var resetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset [corpus-dir]",
	Short: "Clear the index, optionally re-indexing a corpus",
	Long: `Removes every stored passage. Required after changing the embedding
model, which invalidates all stored vectors. With a corpus directory
argument, the corpus is re-indexed immediately after the clear.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReset,
}

func init() {
	resetCmd.Flags().BoolVar(&resetYes, "yes", false, "skip the confirmation prompt")
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, args []string) error {
	if indexStore == nil {
		return errors.New("index store not configured")
	}

	if !resetYes {
		cmd.Print("This removes all indexed passages. Continue? [y/N] ")
		var response string
		fmt.Fscanln(cmd.InOrStdin(), &response) //nolint:errcheck
		if response != "y" && response != "Y" {
			cmd.Println("Aborted.")
			return nil
		}
	}

	if err := indexStore.Clear(cmd.Context()); err != nil {
		return fmt.Errorf("clearing index: %w", err)
	}
	cmd.Println("Index cleared.")

	if len(args) == 1 {
		return runIndex(cmd, args)
	}
	return nil
}
