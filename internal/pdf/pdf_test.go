package pdf_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/gst-invoice/internal/assembler"
	"github.com/rezonia/gst-invoice/internal/draw"
	"github.com/rezonia/gst-invoice/internal/layout"
	"github.com/rezonia/gst-invoice/internal/model"
	"github.com/rezonia/gst-invoice/internal/pdf"
	"github.com/rezonia/gst-invoice/internal/render"
)

func smallPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 4))
	for x := 0; x < 8; x++ {
		img.Set(x, 2, color.Black)
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func twoPageDocument(t *testing.T) *draw.Document {
	rec := draw.NewRecorder(layout.A4)
	font := layout.Font{Family: "Helvetica", Size: 9}

	rec.Rect(10, 10, 190, 12, &draw.TitleFill, &draw.Border)
	rec.Text(11.5, 10, 187, 12, "TAX INVOICE", font.Bold(), layout.AlignCenter, draw.White)
	rec.Line(10, 30, 200, 30, draw.Border, 0.2)
	rec.Image(10, 40, 40, 15, "signature", smallPNG(t))

	rec.SetPage(1)
	rec.Text(11.5, 10, 100, 6, "Page 2 of 2", font, layout.AlignRight, draw.Muted)
	return rec.Document()
}

func TestEncode_PageCount(t *testing.T) {
	enc, err := pdf.NewEncoder(pdf.WithTitle("INV-1"), pdf.WithCreationDate(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	out, err := enc.Encode(context.Background(), twoPageDocument(t))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))

	info, err := pdf.Inspect(out)
	require.NoError(t, err)
	assert.True(t, info.Valid, info.Error)
	assert.Equal(t, 2, info.Pages)
	assert.Equal(t, len(out), info.Size)
}

func TestEncode_Cancelled(t *testing.T) {
	enc, err := pdf.NewEncoder()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = enc.Encode(ctx, twoPageDocument(t))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEncode_NilDocument(t *testing.T) {
	enc, err := pdf.NewEncoder()
	require.NoError(t, err)

	_, err = enc.Encode(context.Background(), nil)
	var re *model.RenderError
	assert.ErrorAs(t, err, &re)
}

func TestEncode_CorruptImage(t *testing.T) {
	rec := draw.NewRecorder(layout.A4)
	rec.Image(10, 10, 20, 20, "logo", []byte("not a png"))

	enc, err := pdf.NewEncoder()
	require.NoError(t, err)

	_, err = enc.Encode(context.Background(), rec.Document())
	var re *model.RenderError
	assert.ErrorAs(t, err, &re)
}

func TestNewEncoder_MissingFont(t *testing.T) {
	_, err := pdf.NewEncoder(pdf.WithFontFile("Noto", "/nonexistent/font.ttf"))
	assert.Error(t, err)

	_, err = pdf.NewEncoder(pdf.WithFontBytes("Noto", nil))
	assert.Error(t, err)
}

func TestMeasurer(t *testing.T) {
	enc, err := pdf.NewEncoder()
	require.NoError(t, err)
	m := enc.Measurer()

	body := layout.Font{Family: "Helvetica", Size: 9}

	assert.Zero(t, m.Measure("", body))
	assert.Greater(t, m.Measure("WWWW", body), m.Measure("iiii", body))
	assert.InDelta(t, 2*m.Measure("Invoice", body), m.Measure("Invoice", body.Sized(18)), 1e-9)
	assert.Greater(t, m.Measure("Invoice", body.Bold()), m.Measure("Invoice", body))

	// close to the approximation the renderer falls back to
	approx := layout.ApproxMetrics{}.Measure("Consulting services", body)
	assert.InEpsilon(t, approx, m.Measure("Consulting services", body), 0.15)
}

func TestMeasurer_Concurrent(t *testing.T) {
	enc, err := pdf.NewEncoder()
	require.NoError(t, err)
	m := enc.Measurer()
	want := m.Measure("Total", layout.Font{Family: "Helvetica", Style: "B", Size: 8})

	done := make(chan float64, 16)
	for i := 0; i < 16; i++ {
		go func(i int) {
			m.Measure(fmt.Sprintf("row %d", i), layout.Font{Family: "Helvetica", Size: 7})
			done <- m.Measure("Total", layout.Font{Family: "Helvetica", Style: "B", Size: 8})
		}(i)
	}
	for i := 0; i < 16; i++ {
		assert.Equal(t, want, <-done)
	}
}

func TestInspect_NotAPDF(t *testing.T) {
	info, err := pdf.Inspect([]byte("hello"))
	assert.Error(t, err)
	assert.False(t, info.Valid)
}

// A long item table on a short page splits across two PDF pages.
func TestEncode_PaginatedInvoice(t *testing.T) {
	enc, err := pdf.NewEncoder()
	require.NoError(t, err)

	short := layout.Page{Name: "short", Width: 210, Height: 140, Margin: 10}
	a := assembler.New(assembler.WithRenderer(render.New(
		render.WithPage(short),
		render.WithMetrics(enc.Measurer()),
	)))

	data := model.InvoiceDocument{
		Number:    "INV-2024-001",
		IssueDate: model.NewDate(2024, 4, 1),
		DueDate:   model.NewDate(2024, 4, 30),
		Company: model.Party{
			Name:         "Acme Traders Pvt Ltd",
			AddressLines: []string{"12 MG Road", "Pune 411001"},
			StateCode:    "27",
			GSTIN:        "27AAPFU0939F1ZV",
		},
		Customer: model.Party{
			Name:         "Globex Retail LLP",
			AddressLines: []string{"45 Residency Road", "Bengaluru 560025"},
			StateCode:    "27",
			GSTIN:        "27AAACG1234K1Z5",
		},
	}
	for i := 0; i < 12; i++ {
		data.Items = append(data.Items, model.LineItem{
			Description: fmt.Sprintf("Consulting services phase %d", i+1),
			HSNSAC:      "998311",
			Quantity:    decimal.NewFromInt(1),
			Rate:        decimal.NewFromInt(10000),
			Unit:        "Nos",
		})
	}

	result := a.Generate(data)
	require.Equal(t, 2, result.Document.PageCount())

	out, err := enc.Encode(context.Background(), result.Document)
	require.NoError(t, err)

	pages, err := pdf.PageCount(out)
	require.NoError(t, err)
	assert.Equal(t, 2, pages)
}

// A 16-bit PNG signature is embedded instead of failing the document.
func TestEncode_SixteenBitSignature(t *testing.T) {
	img := image.NewRGBA64(image.Rect(0, 0, 80, 30))
	for x := 0; x < 80; x++ {
		img.Set(x, 15, color.RGBA64{A: 0xffff})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	data := model.InvoiceDocument{
		Number:    "INV-16",
		Company:   model.Party{Name: "Acme Traders", StateCode: "27"},
		Customer:  model.Party{Name: "Globex", StateCode: "29"},
		Signature: model.ImageRef("data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())),
		Items: []model.LineItem{
			{Description: "Design", Quantity: decimal.NewFromInt(1), Rate: decimal.NewFromInt(500)},
		},
	}

	result := assembler.New().Generate(data)
	require.Len(t, draw.All[draw.Image](result.Document), 1)

	enc, err := pdf.NewEncoder()
	require.NoError(t, err)
	out, err := enc.Encode(context.Background(), result.Document)
	require.NoError(t, err)

	pages, err := pdf.PageCount(out)
	require.NoError(t, err)
	assert.Equal(t, 1, pages)
}
