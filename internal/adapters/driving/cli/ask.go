package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/finsight-labs/finsight-cli/internal/routing"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about the indexed filings",
	Long: `Retrieves the most relevant passages from the indexed filings and
synthesizes a cited answer. The answer is grounded strictly in the
corpus; questions about live market data cannot be answered here.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := args[0]

	if answerService == nil {
		return errors.New("answer service not configured")
	}

	switch routing.Classify(question) {
	case routing.ResponderMarketNews:
		cmd.Println("Note: this looks like a live market data question; answers come only from the indexed filings.")
	case routing.ResponderAnalytics:
		cmd.Println("Note: this looks like a forecasting question; answers come only from the indexed filings.")
	case routing.ResponderFilings:
	}

	answer, err := answerService.Answer(cmd.Context(), question)
	if err != nil {
		return fmt.Errorf("answering failed: %w", err)
	}

	cmd.Println(answer)
	return nil
}
