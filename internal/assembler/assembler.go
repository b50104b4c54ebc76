// Package assembler turns a caller-supplied invoice data object into a
// finished draw.Document: defaults, line amounts, one tax computation, the
// amount in words and the section-by-section render.
//
// Example usage:
//
//	a := assembler.New(assembler.WithEngine(gst.NewEngine()))
//	result := a.Generate(data)
//	fmt.Println(result.Document.PageCount())
package assembler

import (
	"strings"

	"github.com/samber/lo"

	"github.com/rezonia/gst-invoice/internal/amount"
	"github.com/rezonia/gst-invoice/internal/draw"
	"github.com/rezonia/gst-invoice/internal/gst"
	"github.com/rezonia/gst-invoice/internal/model"
	"github.com/rezonia/gst-invoice/internal/render"
)

// Placeholders used when the caller leaves a field empty
const (
	DefaultCompanyName   = "Your Company"
	DefaultCustomerName  = "Customer"
	DefaultInvoiceNumber = "INV-DRAFT"
)

// Result is a generated invoice
type Result struct {
	Invoice  model.InvoiceDocument
	Words    string
	Document *draw.Document
}

// Assembler orchestrates tax, formatting and rendering
type Assembler struct {
	engine    *gst.Engine
	formatter amount.Formatter
	renderer  *render.Renderer
}

// Option configures the assembler
type Option func(*Assembler)

// WithEngine sets the tax engine
func WithEngine(e *gst.Engine) Option {
	return func(a *Assembler) {
		if e != nil {
			a.engine = e
		}
	}
}

// WithFormatter sets the formatter used for the amount in words
func WithFormatter(f amount.Formatter) Option {
	return func(a *Assembler) {
		a.formatter = f
	}
}

// WithRenderer sets the document renderer
func WithRenderer(r *render.Renderer) Option {
	return func(a *Assembler) {
		if r != nil {
			a.renderer = r
		}
	}
}

// New creates an assembler with the default engine, formatter and A4
// renderer
func New(opts ...Option) *Assembler {
	a := &Assembler{
		engine:    gst.NewEngine(),
		formatter: amount.NewFormatter(),
		renderer:  render.New(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Engine returns the tax engine
func (a *Assembler) Engine() *gst.Engine {
	return a.engine
}

// Formatter returns the amount formatter
func (a *Assembler) Formatter() amount.Formatter {
	return a.formatter
}

// Renderer returns the document renderer
func (a *Assembler) Renderer() *render.Renderer {
	return a.renderer
}

// Prepare applies defaults and computes line amounts, totals and tax on a
// copy of data. The caller's value is not modified.
func (a *Assembler) Prepare(data model.InvoiceDocument) model.InvoiceDocument {
	inv := data
	inv.Items = lo.Map(data.Items, func(li model.LineItem, _ int) model.LineItem {
		return li
	})
	inv.Company.AddressLines = append([]string(nil), data.Company.AddressLines...)
	inv.Customer.AddressLines = append([]string(nil), data.Customer.AddressLines...)

	inv.Number = orDefault(inv.Number, DefaultInvoiceNumber)
	inv.Company.Name = orDefault(inv.Company.Name, DefaultCompanyName)
	inv.Customer.Name = orDefault(inv.Customer.Name, DefaultCustomerName)

	inv.CalculateTotals()

	tax := a.engine.ComputeWithOverrides(inv.Subtotal, inv.Customer.StateCode, inv.Company.StateCode, inv.Rates)
	inv.Tax = &tax
	return inv
}

// Generate prepares data and renders it. Identical input yields an identical
// instruction list.
func (a *Assembler) Generate(data model.InvoiceDocument) *Result {
	inv := a.Prepare(data)
	words := a.formatter.AmountInWords(inv.Tax.GrandTotal)

	return &Result{
		Invoice:  inv,
		Words:    words,
		Document: a.renderer.Render(&inv, words),
	}
}

func orDefault(s, def string) string {
	s = strings.TrimSpace(s)
	return lo.Ternary(s == "", def, s)
}
