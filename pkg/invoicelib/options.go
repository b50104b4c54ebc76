package invoicelib

import (
	"context"

	"github.com/shopspring/decimal"
)

// TaxCalculator computes the GST split for a subtotal
type TaxCalculator interface {
	Compute(subtotal decimal.Decimal, customerStateCode, companyStateCode string) TaxBreakdown
	ComputeWithOverrides(subtotal decimal.Decimal, customerStateCode, companyStateCode string, overrides *RateOverrides) TaxBreakdown
}

// InvoiceGenerator turns invoice data into finished PDFs
type InvoiceGenerator interface {
	// Generate renders one invoice
	Generate(ctx context.Context, data InvoiceDocument) (*Output, error)

	// GenerateBatch renders several invoices concurrently
	GenerateBatch(ctx context.Context, data []InvoiceDocument) ([]*Output, error)
}

// Output is a generated invoice with its PDF
type Output struct {
	Invoice       InvoiceDocument
	AmountInWords string
	PDF           []byte
	Pages         int
	Warnings      []string
}

// Options configures a Generator
type Options struct {
	// Page
	PageSize string  // A4, A5 or Letter (default: A4)
	Margin   float64 // Millimetres (default: 10)

	// Tax
	Policy         string // same_as_company or fixed_reference
	ReferenceState string // Used by fixed_reference (default: 27)
	Rates          RateTable

	// Formatting
	Fraction       string // truncate or round paise in words
	CurrencySymbol string // Empty picks "₹" with a font file, "Rs. " otherwise

	// PDF
	FontFile   string // TrueType font for non-Latin glyphs
	FontFamily string
	Title      string

	// Validation
	ValidateBeforeRender bool // Reject invoices with validation errors
	StrictValidation     bool // Treat warnings as errors
}

// DefaultOptions returns default generator options
func DefaultOptions() Options {
	return Options{
		PageSize:       "A4",
		Margin:         10,
		Policy:         string(PolicySameAsCompany),
		ReferenceState: DefaultStateCode,
		Rates:          DefaultRates,
		Fraction:       "truncate",
	}
}
