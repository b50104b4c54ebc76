package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rezonia/gst-invoice/internal/validation"
)

var (
	strictValidation bool
)

var validateCmd = &cobra.Command{
	Use:   "validate [files...]",
	Short: "Validate invoice files",
	Long: `Validate one or more invoice JSON files before rendering.

Checks performed:
  - GSTIN format and its state prefix
  - HSN/SAC codes of 4 to 8 digits
  - Non-negative quantities and rates
  - Known state codes, dates and party names (warnings)

Examples:
  gst-invoice validate invoice.json
  gst-invoice validate invoices/ --strict -f table`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().BoolVar(&strictValidation, "strict", false, "Treat warnings as errors")
}

// ValidationResult holds the result of validating a single file
type ValidationResult struct {
	File     string   `json:"file"`
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

func runValidate(cmd *cobra.Command, args []string) error {
	files, err := collectFiles(args, ".json")
	if err != nil {
		return err
	}

	if len(files) == 0 {
		return fmt.Errorf("no files found to validate")
	}

	results := make([]*ValidationResult, 0, len(files))
	allValid := true

	for _, file := range files {
		result := validateFile(file)
		results = append(results, result)

		if !result.Valid {
			allValid = false
		}
	}

	if outputFormat == "json" {
		if err := writeJSON(cmd.OutOrStdout(), results); err != nil {
			return err
		}
	} else {
		out := cmd.OutOrStdout()
		for _, r := range results {
			if r.Valid {
				fmt.Fprintf(out, "✓ %s: VALID\n", r.File)
			} else {
				fmt.Fprintf(out, "✗ %s: INVALID\n", r.File)
				for _, e := range r.Errors {
					fmt.Fprintf(out, "  - %s\n", e)
				}
			}
			for _, w := range r.Warnings {
				fmt.Fprintf(out, "  ⚠ %s\n", w)
			}
		}
	}

	if !allValid {
		return fmt.Errorf("validation failed for some files")
	}

	return nil
}

func validateFile(path string) *ValidationResult {
	result := &ValidationResult{File: path}

	data, err := readInvoice(path)
	if err != nil {
		result.Errors = []string{err.Error()}
		return result
	}

	report := validation.Invoice(&data)
	if strictValidation {
		report = report.Strict()
	}

	result.Valid = report.Valid()
	result.Errors = report.ErrorMessages()
	result.Warnings = report.WarningMessages()
	return result
}
