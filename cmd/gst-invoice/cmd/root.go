package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rezonia/gst-invoice/internal/config"
	"github.com/rezonia/gst-invoice/internal/logger"
)

var (
	version = "1.0.0"

	// Global flags
	verbose      bool
	outputFormat string
	cfgFile      string

	cfg *config.Configuration
	log *logger.Logger
)

var rootCmd = &cobra.Command{
	Use:   "gst-invoice",
	Short: "Compute GST and render Indian tax invoices",
	Long: `gst-invoice computes CGST/SGST or IGST for an invoice, lays it out as a
paginated tax invoice and writes it as PDF.

Configuration is read from gst-invoice.yaml (or --config), then from
GSTINVOICE_* environment variables, then from flags.

Examples:
  # Render an invoice to PDF
  gst-invoice generate invoice.json -o invoice.pdf

  # Show the tax split for a sale from Maharashtra to Karnataka
  gst-invoice tax --subtotal 50000 --company-state 27 --customer-state 29

  # Spell an amount
  gst-invoice words 1234567.50

  # Check invoices before rendering
  gst-invoice validate invoices/*.json --strict`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	defer func() {
		if log != nil {
			log.Sync()
		}
	}()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "json", "Output format (json, table)")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: ./gst-invoice.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error) (env: GSTINVOICE_LOG_LEVEL)")
	rootCmd.PersistentFlags().String("page", "A4", "Page size (A4, A5, Letter) (env: GSTINVOICE_PAGE_SIZE)")
	rootCmd.PersistentFlags().String("policy", "same_as_company", "Intra-state rule (same_as_company, fixed_reference) (env: GSTINVOICE_TAX_POLICY)")
	rootCmd.PersistentFlags().String("reference-state", "27", "Reference state for the fixed_reference policy (env: GSTINVOICE_TAX_REFERENCE_STATE)")
	rootCmd.PersistentFlags().String("fraction", "truncate", "Paise handling in words (truncate, round) (env: GSTINVOICE_WORDS_FRACTION)")
	rootCmd.PersistentFlags().String("font", "", "TrueType font embedded in PDFs (env: GSTINVOICE_PDF_FONT_FILE)")

	cobra.OnInitialize(initConfig)
}

func initConfig() {
	pf := rootCmd.PersistentFlags()
	bindings := []config.Binding{
		{Key: "log.level", Flag: pf.Lookup("log-level")},
		{Key: "page.size", Flag: pf.Lookup("page")},
		{Key: "tax.policy", Flag: pf.Lookup("policy")},
		{Key: "tax.reference_state", Flag: pf.Lookup("reference-state")},
		{Key: "words.fraction", Flag: pf.Lookup("fraction")},
		{Key: "pdf.font_file", Flag: pf.Lookup("font")},
	}
	bindings = append(bindings, serveBindings()...)

	var err error
	cfg, err = config.Load(cfgFile, bindings...)
	cobra.CheckErr(err)

	log, err = logger.NewLogger(cfg.Log.Level)
	cobra.CheckErr(err)

	printVerbose("Config: page=%s policy=%s fraction=%s\n", cfg.Page.Size, cfg.Tax.Policy, cfg.Words.Fraction)
}

func printVerbose(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}
