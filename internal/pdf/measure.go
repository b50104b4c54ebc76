package pdf

import (
	"sync"

	"github.com/jung-kurt/gofpdf"

	"github.com/rezonia/gst-invoice/internal/layout"
)

// Measurer implements layout.Metrics with the font metrics gofpdf will use
// when encoding, so truncation decisions match the output exactly. It is safe
// for concurrent use.
type Measurer struct {
	mu    sync.Mutex
	pdf   *gofpdf.Fpdf
	fonts fonts
	tr    func(string) string
}

// Measurer returns metrics for the encoder's fonts
func (e *Encoder) Measurer() *Measurer {
	pdf := e.newPDF(layout.A4)
	return &Measurer{
		pdf:   pdf,
		fonts: e.fonts,
		tr:    e.fonts.translator(pdf),
	}
}

// Measure implements layout.Metrics
func (m *Measurer) Measure(text string, font layout.Font) float64 {
	if text == "" {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.pdf.SetFont(m.fonts.resolve(font), font.Style, font.Size)
	return m.pdf.GetStringWidth(m.tr(text))
}
