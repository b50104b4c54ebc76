// Package pdf turns a laid-out draw.Document into PDF bytes with gofpdf and
// inspects finished files with pdfcpu.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/rezonia/gst-invoice/internal/draw"
	"github.com/rezonia/gst-invoice/internal/layout"
	"github.com/rezonia/gst-invoice/internal/model"
)

// DefaultCreator is written into the document information dictionary
const DefaultCreator = "gst-invoice"

// fonts resolves layout fonts to what gofpdf has registered. With no UTF-8
// font the core Helvetica family is used through a cp1252 translator.
type fonts struct {
	family string
	data   []byte
}

func (f fonts) utf8() bool {
	return len(f.data) > 0
}

func (f fonts) register(pdf *gofpdf.Fpdf) {
	if !f.utf8() {
		return
	}
	for _, style := range []string{"", "B", "I", "BI"} {
		pdf.AddUTF8FontFromBytes(f.family, style, f.data)
	}
}

func (f fonts) resolve(font layout.Font) string {
	if f.utf8() {
		return f.family
	}
	if font.Family == "" {
		return "Helvetica"
	}
	return font.Family
}

func (f fonts) translator(pdf *gofpdf.Fpdf) func(string) string {
	if f.utf8() {
		return func(s string) string { return s }
	}
	return pdf.UnicodeTranslatorFromDescriptor("")
}

type Encoder struct {
	fonts        fonts
	creator      string
	title        string
	creationDate time.Time
	compress     bool
}

type Option func(*Encoder) error

// WithFontFile embeds a TrueType font for all text, enabling glyphs outside
// cp1252 such as the rupee sign
func WithFontFile(family, path string) Option {
	return func(e *Encoder) error {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read font %s: %w", path, err)
		}
		return WithFontBytes(family, data)(e)
	}
}

// WithFontBytes is WithFontFile for an in-memory font
func WithFontBytes(family string, data []byte) Option {
	return func(e *Encoder) error {
		if len(data) == 0 {
			return fmt.Errorf("empty font data")
		}
		if family == "" {
			family = "InvoiceSans"
		}
		e.fonts = fonts{family: family, data: data}
		return nil
	}
}

func WithCreator(creator string) Option {
	return func(e *Encoder) error {
		e.creator = creator
		return nil
	}
}

func WithTitle(title string) Option {
	return func(e *Encoder) error {
		e.title = title
		return nil
	}
}

// WithCreationDate pins the document date; by default gofpdf uses the
// current time
func WithCreationDate(t time.Time) Option {
	return func(e *Encoder) error {
		e.creationDate = t
		return nil
	}
}

func WithCompression(on bool) Option {
	return func(e *Encoder) error {
		e.compress = on
		return nil
	}
}

func NewEncoder(opts ...Option) (*Encoder, error) {
	e := &Encoder{
		creator:  DefaultCreator,
		compress: true,
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// UTF8 reports whether a TrueType font was configured
func (e *Encoder) UTF8() bool {
	return e.fonts.utf8()
}

func (e *Encoder) newPDF(page layout.Page) *gofpdf.Fpdf {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           gofpdf.SizeType{Wd: page.Width, Ht: page.Height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCellMargin(0)
	pdf.SetCompression(e.compress)
	e.fonts.register(pdf)
	return pdf
}

// Encode writes every page of doc. Nothing is laid out here: coordinates,
// truncation and page breaks were fixed by the renderer.
func (e *Encoder) Encode(ctx context.Context, doc *draw.Document) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, model.NewRenderError("pdf", "no document to encode", nil)
	}

	pdf := e.newPDF(doc.Page())
	pdf.SetCreator(e.creator, true)
	if e.title != "" {
		pdf.SetTitle(e.title, true)
	}
	if !e.creationDate.IsZero() {
		pdf.SetCreationDate(e.creationDate)
	}
	tr := e.fonts.translator(pdf)

	images := 0
	for i := 0; i < doc.PageCount(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		pdf.AddPage()

		for _, ins := range doc.OnPage(i) {
			switch v := ins.(type) {
			case draw.Rect:
				e.rect(pdf, v)
			case draw.Line:
				pdf.SetDrawColor(rgb(v.Color))
				pdf.SetLineWidth(v.Width)
				pdf.Line(v.X1, v.Y1, v.X2, v.Y2)
			case draw.Text:
				pdf.SetFont(e.fonts.resolve(v.Font), v.Font.Style, v.Font.Size)
				pdf.SetTextColor(rgb(v.Color))
				pdf.SetXY(v.X, v.Y)
				pdf.CellFormat(v.W, v.H, tr(v.Text), "", 0, string(v.Align), false, 0, "")
			case draw.Image:
				images++
				name := fmt.Sprintf("%s-%d", v.Name, images)
				opts := gofpdf.ImageOptions{ImageType: "PNG"}
				pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(v.PNG))
				pdf.ImageOptions(name, v.X, v.Y, v.W, v.H, false, opts, 0, "")
			}
		}

		if pdf.Err() {
			return nil, model.NewRenderError("pdf", fmt.Sprintf("draw page %d", i+1), pdf.Error())
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, model.NewRenderError("pdf", "write document", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *Encoder) rect(pdf *gofpdf.Fpdf, r draw.Rect) {
	style := ""
	if r.Filled() {
		pdf.SetFillColor(rgb(*r.Fill))
		style += "F"
	}
	if r.Stroked() {
		pdf.SetDrawColor(rgb(*r.Stroke))
		pdf.SetLineWidth(r.LineWidth)
		style += "D"
	}
	if style == "" {
		return
	}
	pdf.Rect(r.X, r.Y, r.W, r.H, style)
}

func rgb(c draw.Color) (int, int, int) {
	return int(c.R), int(c.G), int(c.B)
}
