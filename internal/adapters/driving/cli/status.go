package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show index status",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if indexStore == nil {
		return errors.New("index store not configured")
	}

	count, err := indexStore.Count(cmd.Context())
	if err != nil {
		return fmt.Errorf("reading index: %w", err)
	}

	cmd.Printf("Indexed passages: %d\n", count)
	return nil
}
