// Package cli implements the command line interface. Commands talk to
// the core exclusively through the driving ports; services are injected
// by main before Execute runs.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/finsight-labs/finsight-cli/internal/core/ports/driven"
	"github.com/finsight-labs/finsight-cli/internal/core/ports/driving"
	"github.com/finsight-labs/finsight-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Injected services. nil until main wires them.
var (
	ingestService   driving.IngestService
	answerService   driving.AnswerService
	retrieveService driving.RetrieveService
	indexStore      driven.IndexStore
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "finsight",
	Short: "Grounded question answering over financial filings",
	Long: `finsight indexes a corpus of financial filings (10-K, 10-Q, annual
reports) and answers questions about them with citations.

The corpus layout is <root>/<company>/<period>/<files>. Answers are
grounded strictly in the indexed documents; when nothing relevant is
indexed, finsight says so instead of guessing.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}

// Execute runs the root command. The context is cancelled on
// interrupt so long-running commands like watch shut down cleanly.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// SetVersion sets the version string printed by the version command.
func SetVersion(v string) {
	version = v
}

// SetIngestService injects the ingestion service.
func SetIngestService(s driving.IngestService) {
	ingestService = s
}

// SetAnswerService injects the answer service.
func SetAnswerService(s driving.AnswerService) {
	answerService = s
}

// SetRetrieveService injects the retrieval service.
func SetRetrieveService(s driving.RetrieveService) {
	retrieveService = s
}

// SetIndexStore injects the index store used by status and reset.
func SetIndexStore(s driven.IndexStore) {
	indexStore = s
}
