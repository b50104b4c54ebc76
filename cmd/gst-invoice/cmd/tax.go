package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rezonia/gst-invoice/internal/gst"
	"github.com/rezonia/gst-invoice/internal/model"
)

var (
	taxSubtotal      string
	taxCustomerState string
	taxCompanyState  string
	taxCGST          string
	taxSGST          string
	taxIGST          string
)

var taxCmd = &cobra.Command{
	Use:   "tax",
	Short: "Compute the GST breakdown for a subtotal",
	Long: `Compute CGST + SGST (intra-state) or IGST (inter-state) for a subtotal.

Unknown customer states are treated as inter-state; an unknown company state
falls back to 27 (Maharashtra).

Examples:
  gst-invoice tax --subtotal 50000 --customer-state 27 --company-state 27
  gst-invoice tax --subtotal 50000 --customer-state 29 --company-state 27 -f table
  gst-invoice tax --subtotal 1000 --customer-state 7 --igst 12`,
	RunE: runTax,
}

func init() {
	rootCmd.AddCommand(taxCmd)

	taxCmd.Flags().StringVar(&taxSubtotal, "subtotal", "", "Taxable value")
	taxCmd.Flags().StringVar(&taxCustomerState, "customer-state", "", "Customer state code")
	taxCmd.Flags().StringVar(&taxCompanyState, "company-state", gst.DefaultStateCode, "Company state code")
	taxCmd.Flags().StringVar(&taxCGST, "cgst", "", "Override CGST percent")
	taxCmd.Flags().StringVar(&taxSGST, "sgst", "", "Override SGST percent")
	taxCmd.Flags().StringVar(&taxIGST, "igst", "", "Override IGST percent")
	_ = taxCmd.MarkFlagRequired("subtotal")
}

func parseRate(name, value string) (*decimal.Decimal, error) {
	if value == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s %q: %w", name, value, err)
	}
	return &d, nil
}

func runTax(cmd *cobra.Command, args []string) error {
	subtotal, err := decimal.NewFromString(taxSubtotal)
	if err != nil {
		return fmt.Errorf("invalid --subtotal %q: %w", taxSubtotal, err)
	}

	var overrides model.RateOverrides
	if overrides.CGST, err = parseRate("cgst", taxCGST); err != nil {
		return err
	}
	if overrides.SGST, err = parseRate("sgst", taxSGST); err != nil {
		return err
	}
	if overrides.IGST, err = parseRate("igst", taxIGST); err != nil {
		return err
	}

	engine, err := cfg.Tax.Engine()
	if err != nil {
		return err
	}
	formatter, err := cfg.Formatter()
	if err != nil {
		return err
	}

	tax := engine.ComputeWithOverrides(subtotal, taxCustomerState, taxCompanyState, &overrides)
	printVerbose("Policy: %s, customer=%q company=%q\n", tax.Policy, tax.CustomerState, tax.CompanyState)

	if outputFormat == "json" {
		return writeJSON(cmd.OutOrStdout(), tax)
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	supply := "Inter-State"
	if tax.IsIntraState {
		supply = "Intra-State"
	}
	fmt.Fprintf(tw, "Supply\t%s (%s -> %s)\n", supply, stateLabel(tax.CompanyState), stateLabel(tax.CustomerState))
	fmt.Fprintf(tw, "Subtotal\t%s\n", formatter.FormatCurrency(tax.Subtotal))
	if tax.IsIntraState {
		fmt.Fprintf(tw, "CGST @ %s%%\t%s\n", tax.CGSTRate, formatter.FormatCurrency(tax.CGSTAmount))
		fmt.Fprintf(tw, "SGST @ %s%%\t%s\n", tax.SGSTRate, formatter.FormatCurrency(tax.SGSTAmount))
	} else {
		fmt.Fprintf(tw, "IGST @ %s%%\t%s\n", tax.IGSTRate, formatter.FormatCurrency(tax.IGSTAmount))
	}
	fmt.Fprintf(tw, "Total GST\t%s\n", formatter.FormatCurrency(tax.TotalGST))
	fmt.Fprintf(tw, "Grand Total\t%s\n", formatter.FormatCurrency(tax.GrandTotal))
	fmt.Fprintf(tw, "In Words\t%s\n", formatter.AmountInWords(tax.GrandTotal))
	return tw.Flush()
}

func stateLabel(code string) string {
	if code == "" {
		return "unknown"
	}
	return fmt.Sprintf("%s (%s)", gst.StateName(code), code)
}
