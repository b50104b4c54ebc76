package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rezonia/gst-invoice/internal/archive"
	ierr "github.com/rezonia/gst-invoice/internal/errors"
	"github.com/rezonia/gst-invoice/internal/validation"
)

var (
	outputFile       string
	instructionsOnly bool
	archiveOutput    bool
	validateFirst    bool
)

var generateCmd = &cobra.Command{
	Use:   "generate <invoice.json>",
	Short: "Render an invoice to PDF",
	Long: `Compute tax for an invoice and render it.

The input is an invoice JSON document ("-" reads stdin). By default a PDF is
written next to the input; --instructions prints the laid-out drawing
instructions as JSON instead.

Examples:
  gst-invoice generate invoice.json
  gst-invoice generate invoice.json -o out/INV-7.pdf --archive
  cat invoice.json | gst-invoice generate - --instructions > layout.json`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output PDF path (default: <input>.pdf)")
	generateCmd.Flags().BoolVar(&instructionsOnly, "instructions", false, "Print drawing instructions as JSON instead of a PDF")
	generateCmd.Flags().BoolVar(&archiveOutput, "archive", false, "Also store the PDF in the configured archive")
	generateCmd.Flags().BoolVar(&validateFirst, "validate", false, "Refuse invoices with validation errors")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	input := args[0]

	data, err := readInvoice(input)
	if err != nil {
		return err
	}

	if validateFirst {
		if err := validation.Invoice(&data).Err(); err != nil {
			return err
		}
	}

	enc, err := newEncoder()
	if err != nil {
		return err
	}
	asm, err := newAssembler(enc)
	if err != nil {
		return err
	}

	start := time.Now()
	result := asm.Generate(data)
	printVerbose("Rendered %s: %d page(s), %d instructions in %v\n",
		result.Invoice.Number, result.Document.PageCount(), result.Document.Len(), time.Since(start))

	if instructionsOnly {
		return writeJSON(cmd.OutOrStdout(), result.Document)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	out, err := enc.Encode(ctx, result.Document)
	if err != nil {
		log.Errorw("pdf encoding failed", "invoice", result.Invoice.Number, "error", err)
		return err
	}

	path := outputFile
	if path == "" {
		path = defaultOutput(input, result.Invoice.Number)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	if archiveOutput {
		store, err := archive.New(ctx, cfg.Archive)
		if err != nil {
			return err
		}
		if store == nil {
			return fmt.Errorf("--archive needs archive.kind set to local or s3")
		}
		key := archive.Key(result.Invoice.Number, result.Invoice.IssueDate)
		location, err := store.Put(ctx, key, out)
		if ierr.IsConflict(err) {
			return fmt.Errorf("not archived: %s (the PDF was written to %s)", ierr.Hint(err), path)
		}
		if err != nil {
			return err
		}
		log.Infow("invoice archived", "invoice", result.Invoice.Number, "key", key, "location", location)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (%d page(s), grand total %s)\n",
		result.Invoice.Number, path, result.Document.PageCount(),
		asm.Formatter().FormatCurrency(result.Invoice.Tax.GrandTotal))
	return nil
}

// defaultOutput puts the PDF beside the input, or in the working directory
// for stdin
func defaultOutput(input, number string) string {
	if input == "-" {
		return archive.FileName(number)
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".pdf"
}

