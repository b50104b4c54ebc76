package cmd

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var wordsCmd = &cobra.Command{
	Use:   "words <amount>",
	Short: "Spell an amount in Indian words",
	Long: `Print an amount with lakh/crore grouping and in words.

Paise are truncated unless --fraction round is given.

Examples:
  gst-invoice words 1234567
  gst-invoice words 59000.60 --fraction round`,
	Args: cobra.ExactArgs(1),
	RunE: runWords,
}

func init() {
	rootCmd.AddCommand(wordsCmd)
}

// WordsResult is the JSON output of the words command
type WordsResult struct {
	Amount    decimal.Decimal `json:"amount"`
	Formatted string          `json:"formatted"`
	Words     string          `json:"words"`
}

func runWords(cmd *cobra.Command, args []string) error {
	amount, err := decimal.NewFromString(args[0])
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", args[0], err)
	}

	formatter, err := cfg.Formatter()
	if err != nil {
		return err
	}

	result := WordsResult{
		Amount:    amount,
		Formatted: formatter.FormatCurrency(amount),
		Words:     formatter.AmountInWords(amount),
	}

	if outputFormat == "json" {
		return writeJSON(cmd.OutOrStdout(), result)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s\n", result.Formatted, result.Words)
	return nil
}
