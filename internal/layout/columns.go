package layout

import (
	"github.com/shopspring/decimal"
)

// widthPlaces is the precision of a non-absorbing column, 0.01 mm
const widthPlaces = 2

// Align is a horizontal text alignment inside a cell
type Align string

const (
	AlignLeft   Align = "L"
	AlignCenter Align = "C"
	AlignRight  Align = "R"
)

// ColumnDef declares one table column. Widths are proportional to Weight.
// The column marked Absorb takes the rounding remainder.
type ColumnDef struct {
	Key    string
	Title  string
	Weight float64
	Align  Align
	Absorb bool
}

// Columns is a resolved set of widths whose sum equals the table width
// exactly
type Columns struct {
	defs   []ColumnDef
	widths []decimal.Decimal
	total  decimal.Decimal
}

// NewColumns distributes width over defs by weight. Every column except the
// absorbing one is truncated to 0.01 mm; the absorbing column (the first
// Absorb column, or the widest when none is marked) receives the remainder so
// the widths sum to width with no drift.
func NewColumns(width float64, defs ...ColumnDef) Columns {
	c := Columns{
		defs:   append([]ColumnDef(nil), defs...),
		widths: make([]decimal.Decimal, len(defs)),
		total:  decimal.NewFromFloat(width),
	}
	if len(defs) == 0 {
		return c
	}
	if c.total.IsNegative() {
		c.total = decimal.Zero
	}

	absorb := absorbingColumn(defs)

	totalWeight := decimal.Zero
	for _, d := range defs {
		if d.Weight > 0 {
			totalWeight = totalWeight.Add(decimal.NewFromFloat(d.Weight))
		}
	}

	used := decimal.Zero
	for i, d := range defs {
		if i == absorb {
			continue
		}
		w := decimal.Zero
		if d.Weight > 0 && totalWeight.IsPositive() {
			w = c.total.Mul(decimal.NewFromFloat(d.Weight)).
				Div(totalWeight).
				Truncate(widthPlaces)
		}
		c.widths[i] = w
		used = used.Add(w)
	}
	c.widths[absorb] = c.total.Sub(used)

	return c
}

func absorbingColumn(defs []ColumnDef) int {
	widest := 0
	for i, d := range defs {
		if d.Absorb {
			return i
		}
		if d.Weight > defs[widest].Weight {
			widest = i
		}
	}
	return widest
}

// Len returns the number of columns
func (c Columns) Len() int {
	return len(c.defs)
}

// Def returns the definition of column i
func (c Columns) Def(i int) ColumnDef {
	return c.defs[i]
}

// Width returns the width of column i
func (c Columns) Width(i int) float64 {
	return c.widths[i].InexactFloat64()
}

// Widths returns all widths in order
func (c Columns) Widths() []float64 {
	out := make([]float64, len(c.widths))
	for i := range c.widths {
		out[i] = c.Width(i)
	}
	return out
}

// Sum returns the exact sum of all widths
func (c Columns) Sum() decimal.Decimal {
	sum := decimal.Zero
	for _, w := range c.widths {
		sum = sum.Add(w)
	}
	return sum
}

// Total returns the width the columns were fitted to
func (c Columns) Total() decimal.Decimal {
	return c.total
}

// Offset returns the x offset of column i from the table's left edge
func (c Columns) Offset(i int) float64 {
	off := decimal.Zero
	for j := 0; j < i && j < len(c.widths); j++ {
		off = off.Add(c.widths[j])
	}
	return off.InexactFloat64()
}

// Span returns the combined width of columns from..to inclusive
func (c Columns) Span(from, to int) float64 {
	span := decimal.Zero
	for j := from; j <= to && j < len(c.widths); j++ {
		if j >= 0 {
			span = span.Add(c.widths[j])
		}
	}
	return span.InexactFloat64()
}

// Index returns the position of the column with key, or -1
func (c Columns) Index(key string) int {
	for i, d := range c.defs {
		if d.Key == key {
			return i
		}
	}
	return -1
}

// Item table column keys
const (
	ColSerial      = "serial"
	ColDescription = "description"
	ColHSN         = "hsn_sac"
	ColQuantity    = "quantity"
	ColUnit        = "unit"
	ColRate        = "rate"
	ColAmount      = "amount"
)

// ItemColumnDefs is the standard seven-column line-item table
var ItemColumnDefs = []ColumnDef{
	{Key: ColSerial, Title: "#", Weight: 12, Align: AlignCenter},
	{Key: ColDescription, Title: "Description", Weight: 58, Align: AlignLeft, Absorb: true},
	{Key: ColHSN, Title: "HSN/SAC", Weight: 20, Align: AlignCenter},
	{Key: ColQuantity, Title: "Qty", Weight: 16, Align: AlignRight},
	{Key: ColUnit, Title: "Unit", Weight: 14, Align: AlignCenter},
	{Key: ColRate, Title: "Rate", Weight: 30, Align: AlignRight},
	{Key: ColAmount, Title: "Amount", Weight: 40, Align: AlignRight},
}

// ItemColumns fits the line-item table to width
func ItemColumns(width float64) Columns {
	return NewColumns(width, ItemColumnDefs...)
}
