package invoicelib

import (
	"context"
	"encoding/json"
	"io"

	"github.com/rezonia/gst-invoice/internal/assembler"
	"github.com/rezonia/gst-invoice/internal/config"
	"github.com/rezonia/gst-invoice/internal/model"
	"github.com/rezonia/gst-invoice/internal/pdf"
	"github.com/rezonia/gst-invoice/internal/render"
	"github.com/rezonia/gst-invoice/internal/validation"
)

// Generator implements InvoiceGenerator with the PDF encoder
type Generator struct {
	assembler *assembler.Assembler
	encoder   *pdf.Encoder
	options   Options
}

var _ InvoiceGenerator = (*Generator)(nil)

// NewGenerator creates a generator with the given options. Options are
// checked with the same rules as the configuration file.
func NewGenerator(opts Options) (*Generator, error) {
	cfg := config.Default()
	cfg.Page.Size = opts.PageSize
	cfg.Page.Margin = opts.Margin
	cfg.Tax.Policy = opts.Policy
	cfg.Tax.ReferenceState = opts.ReferenceState
	cfg.Tax.CGST = opts.Rates.CGST.String()
	cfg.Tax.SGST = opts.Rates.SGST.String()
	cfg.Tax.IGST = opts.Rates.IGST.String()
	cfg.Words.Fraction = opts.Fraction
	cfg.Currency.Symbol = opts.CurrencySymbol
	cfg.PDF.FontFile = opts.FontFile
	cfg.PDF.FontFamily = opts.FontFamily

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	encOpts := []pdf.Option{}
	if opts.FontFile != "" {
		encOpts = append(encOpts, pdf.WithFontFile(opts.FontFamily, opts.FontFile))
	}
	if opts.Title != "" {
		encOpts = append(encOpts, pdf.WithTitle(opts.Title))
	}
	encoder, err := pdf.NewEncoder(encOpts...)
	if err != nil {
		return nil, err
	}

	engine, err := cfg.Tax.Engine()
	if err != nil {
		return nil, err
	}
	formatter, err := cfg.Formatter()
	if err != nil {
		return nil, err
	}
	page, err := cfg.PageLayout()
	if err != nil {
		return nil, err
	}

	renderer := render.New(
		render.WithPage(page),
		render.WithMetrics(encoder.Measurer()),
		render.WithFormatter(formatter),
	)

	return &Generator{
		assembler: assembler.New(
			assembler.WithEngine(engine),
			assembler.WithFormatter(formatter),
			assembler.WithRenderer(renderer),
		),
		encoder: encoder,
		options: opts,
	}, nil
}

// NewDefaultGenerator creates a generator with default options
func NewDefaultGenerator() *Generator {
	// default options have no font file and always validate
	gen, _ := NewGenerator(DefaultOptions())
	return gen
}

// Engine returns the tax engine
func (g *Generator) Engine() TaxCalculator {
	return g.assembler.Engine()
}

// Instructions lays the invoice out without encoding it
func (g *Generator) Instructions(data InvoiceDocument) *Document {
	return g.assembler.Generate(data).Document
}

// Generate validates (when enabled), lays out and encodes one invoice
func (g *Generator) Generate(ctx context.Context, data InvoiceDocument) (*Output, error) {
	report := validation.Invoice(&data)
	if g.options.StrictValidation {
		report = report.Strict()
	}
	if g.options.ValidateBeforeRender {
		if err := report.Err(); err != nil {
			return nil, err
		}
	}

	result := g.assembler.Generate(data)
	out, err := g.encoder.Encode(ctx, result.Document)
	if err != nil {
		return nil, err
	}

	return &Output{
		Invoice:       result.Invoice,
		AmountInWords: result.Words,
		PDF:           out,
		Pages:         result.Document.PageCount(),
		Warnings:      report.WarningMessages(),
	}, nil
}

// GenerateJSON decodes an invoice JSON document from r and generates it
func (g *Generator) GenerateJSON(ctx context.Context, r io.Reader) (*Output, error) {
	var data InvoiceDocument
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, model.NewParseError("input", "", "invalid invoice JSON", err)
	}
	return g.Generate(ctx, data)
}

// GenerateBatch generates multiple invoices concurrently. Results keep the
// input order; the first error is returned alongside the partial results.
func (g *Generator) GenerateBatch(ctx context.Context, data []InvoiceDocument) ([]*Output, error) {
	results := make([]*Output, len(data))
	errCh := make(chan error, len(data))

	for i, inv := range data {
		go func(idx int, inv InvoiceDocument) {
			result, err := g.Generate(ctx, inv)
			if err != nil {
				errCh <- err
				return
			}
			results[idx] = result
			errCh <- nil
		}(i, inv)
	}

	// Wait for all goroutines
	var firstErr error
	for range data {
		if err := <-errCh; err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return results, firstErr
}
