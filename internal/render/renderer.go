// Package render lays out an invoice section by section and records the
// result as a draw.Document.
//
// Sections are drawn in a fixed order: title band, seller and invoice
// details, bill-to, line items with tax and total rows, amount in words,
// declaration and signature, notes, and a footer on every page. A section
// that does not fit the remaining space moves to a new page; the item table
// repeats its header after a break.
package render

import (
	"github.com/rezonia/gst-invoice/internal/amount"
	"github.com/rezonia/gst-invoice/internal/draw"
	"github.com/rezonia/gst-invoice/internal/layout"
	"github.com/rezonia/gst-invoice/internal/logger"
	"github.com/rezonia/gst-invoice/internal/model"
)

const (
	pad          = 1.5
	titleHeight  = 12.0
	headerHeight = 7.0
	rowHeight    = 6.0
	footerHeight = 8.0

	signatureWidth  = 40.0
	signatureHeight = 15.0
	logoWidth       = 30.0

	declarationLines = 4
)

// Captions
const (
	Title              = "TAX INVOICE"
	FooterCaption      = "This is a computer generated invoice."
	DefaultDeclaration = "We declare that this invoice shows the actual price of the goods described and that all particulars are true and correct."
	SignatoryCaption   = "Authorised Signatory"
	WordsCaption       = "Amount Chargeable (in words)"
	ErrorsOmitted      = "E & O.E"
)

// Fonts sets the family and the point sizes used by each text role
type Fonts struct {
	Family  string
	Title   float64
	Heading float64
	Body    float64
	Small   float64
}

// DefaultFonts uses the Helvetica core font
var DefaultFonts = Fonts{Family: "Helvetica", Title: 14, Heading: 9, Body: 8, Small: 7}

func (f Fonts) title() layout.Font { return layout.Font{Family: f.Family, Style: "B", Size: f.Title} }
func (f Fonts) heading() layout.Font {
	return layout.Font{Family: f.Family, Style: "B", Size: f.Heading}
}
func (f Fonts) body() layout.Font  { return layout.Font{Family: f.Family, Size: f.Body} }
func (f Fonts) small() layout.Font { return layout.Font{Family: f.Family, Size: f.Small} }

// Renderer turns a computed invoice into drawing instructions. It holds no
// per-document state and is safe for concurrent use when its Metrics is.
type Renderer struct {
	page      layout.Page
	metrics   layout.Metrics
	formatter amount.Formatter
	fonts     Fonts
	log       *logger.Logger
}

// Option configures the renderer
type Option func(*Renderer)

// WithPage sets the page geometry
func WithPage(p layout.Page) Option {
	return func(r *Renderer) {
		r.page = p
	}
}

// WithMetrics sets the text measurement source
func WithMetrics(m layout.Metrics) Option {
	return func(r *Renderer) {
		if m != nil {
			r.metrics = m
		}
	}
}

// WithFormatter sets the currency formatter
func WithFormatter(f amount.Formatter) Option {
	return func(r *Renderer) {
		r.formatter = f
	}
}

// WithFonts sets the font family and sizes
func WithFonts(f Fonts) Option {
	return func(r *Renderer) {
		r.fonts = f
	}
}

// WithLogger sets the logger used for skipped images
func WithLogger(l *logger.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.log = l
		}
	}
}

// New creates a renderer for A4 pages with approximate Helvetica metrics
func New(opts ...Option) *Renderer {
	r := &Renderer{
		page:      layout.A4,
		metrics:   layout.ApproxMetrics{},
		formatter: amount.NewFormatter(),
		fonts:     DefaultFonts,
		log:       logger.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Page returns the configured page geometry
func (r *Renderer) Page() layout.Page {
	return r.page
}

// Metrics returns the measurement source
func (r *Renderer) Metrics() layout.Metrics {
	return r.metrics
}

// Render lays out inv, whose totals and Tax must already be computed.
// amountInWords is printed verbatim in the words box.
func (r *Renderer) Render(inv *model.InvoiceDocument, amountInWords string) *draw.Document {
	p := &pass{
		Renderer: r,
		inv:      inv,
		words:    amountInWords,
		rec:      draw.NewRecorder(r.page),
		cursor:   layout.NewCursor(r.page, layout.WithReservedBottom(footerHeight)),
		cols:     layout.ItemColumns(r.page.UsableWidth()),
	}

	p.titleBand()
	p.parties()
	p.billTo()
	p.itemTable()
	p.wordsBox()
	p.declarationAndSignature()
	p.notes()
	p.footer()

	return p.rec.Document()
}

// pass holds the state of one render
type pass struct {
	*Renderer

	inv    *model.InvoiceDocument
	words  string
	rec    *draw.Recorder
	cursor *layout.Cursor
	cols   layout.Columns
}

// ensure reserves h on the current page, breaking if needed, and returns
// the y at which the block starts
func (p *pass) ensure(h float64) float64 {
	p.cursor.Ensure(h)
	p.rec.SetPage(p.cursor.PageIndex())
	return p.cursor.Y()
}

// text draws s truncated to the box width less padding
func (p *pass) text(x, y, w, h float64, s string, font layout.Font, align layout.Align, color draw.Color) {
	inner := w - 2*pad
	if inner < 0 {
		inner = 0
	}
	s = layout.Truncate(s, inner, layout.MeasureWith(p.metrics, font))
	p.rec.Text(x+pad, y, inner, h, s, font, align, color)
}

func (p *pass) stroke(x, y, w, h float64) {
	p.rec.Rect(x, y, w, h, nil, &draw.Border)
}
