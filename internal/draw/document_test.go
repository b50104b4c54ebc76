package draw_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/gst-invoice/internal/draw"
	"github.com/rezonia/gst-invoice/internal/layout"
)

var body = layout.Font{Family: "Helvetica", Size: 8}

func sampleDocument() *draw.Document {
	rec := draw.NewRecorder(layout.A4)
	rec.Rect(10, 10, 190, 12, &draw.TitleFill, nil)
	rec.Text(10, 10, 190, 12, "TAX INVOICE", body.Bold(), layout.AlignCenter, draw.White)
	rec.Line(10, 30, 200, 30, draw.Border, 0.2)
	rec.SetPage(1)
	rec.Image(150, 40, 40, 15, "signature", []byte{0x89, 'P', 'N', 'G'})
	rec.Text(10, 280, 190, 5, "Page 2 of 2", body, layout.AlignRight, draw.Muted)
	return rec.Document()
}

func TestRecorder_Document(t *testing.T) {
	doc := sampleDocument()

	assert.Equal(t, 5, doc.Len())
	assert.Equal(t, 2, doc.PageCount())
	assert.Equal(t, layout.A4, doc.Page())
	assert.Len(t, doc.OnPage(0), 3)
	assert.Len(t, doc.OnPage(1), 2)
	assert.Equal(t, []string{"TAX INVOICE"}, doc.Texts(0))
	assert.Equal(t, []string{"Page 2 of 2"}, doc.Texts(1))

	kinds := make([]draw.Kind, 0, doc.Len())
	for _, ins := range doc.Instructions() {
		kinds = append(kinds, ins.Kind())
	}
	assert.Equal(t, []draw.Kind{draw.KindRect, draw.KindText, draw.KindLine, draw.KindImage, draw.KindText}, kinds)
}

func TestRecorder_SkipsEmptyText(t *testing.T) {
	rec := draw.NewRecorder(layout.A4)
	rec.Text(0, 0, 10, 5, "", body, layout.AlignLeft, draw.Black)
	assert.Equal(t, 0, rec.Document().Len())
}

func TestDocument_IsImmutable(t *testing.T) {
	rec := draw.NewRecorder(layout.A4)
	fill := draw.BandFill
	rec.Rect(0, 0, 10, 10, &fill, nil)
	doc := rec.Document()

	// later recording and caller mutation do not leak into the frozen document
	rec.Rect(0, 10, 10, 10, nil, &draw.Border)
	fill.R = 0
	list := doc.Instructions()
	list[0] = draw.Line{}

	require.Equal(t, 1, doc.Len())
	rect, ok := doc.Instructions()[0].(draw.Rect)
	require.True(t, ok)
	assert.Equal(t, uint8(245), rect.Fill.R)
}

func TestAll(t *testing.T) {
	doc := sampleDocument()

	rects := draw.All[draw.Rect](doc)
	require.Len(t, rects, 1)
	assert.True(t, rects[0].Filled())
	assert.False(t, rects[0].Stroked())

	images := draw.All[draw.Image](doc)
	require.Len(t, images, 1)
	assert.Equal(t, "signature", images[0].Name)
	assert.Equal(t, 1, images[0].Page)
}

func TestDocument_JSON(t *testing.T) {
	doc := sampleDocument()

	data, err := json.Marshal(doc)
	require.NoError(t, err)

	var raw struct {
		Pages        int              `json:"pages"`
		Instructions []map[string]any `json:"instructions"`
	}
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, 2, raw.Pages)
	require.Len(t, raw.Instructions, 5)
	assert.Equal(t, "rect", raw.Instructions[0]["kind"])
	assert.Equal(t, "TAX INVOICE", raw.Instructions[1]["text"])

	var decoded draw.Document
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, doc.Instructions(), decoded.Instructions())
	assert.Equal(t, doc.PageCount(), decoded.PageCount())
}

func TestDocument_UnmarshalUnknownKind(t *testing.T) {
	var doc draw.Document
	err := json.Unmarshal([]byte(`{"pages":1,"instructions":[{"kind":"circle"}]}`), &doc)
	assert.Error(t, err)
}
