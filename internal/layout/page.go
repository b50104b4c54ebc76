// Package layout places invoice content on fixed-size pages: page geometry,
// column widths that exactly fill the usable width, deterministic text
// truncation, row banding and a paginating vertical cursor.
//
// All lengths are millimetres; font sizes are points.
package layout

import (
	"fmt"
	"strings"
)

// PointsToMM converts a typographic point to millimetres
const PointsToMM = 25.4 / 72

// Page describes a physical page and its uniform margin
type Page struct {
	Name   string  `json:"name"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Margin float64 `json:"margin"`
}

// Standard page presets with a 10 mm margin
var (
	A4     = Page{Name: "A4", Width: 210, Height: 297, Margin: 10}
	A5     = Page{Name: "A5", Width: 148, Height: 210, Margin: 10}
	Letter = Page{Name: "Letter", Width: 215.9, Height: 279.4, Margin: 10}
)

// PageFor returns the preset named name (case-insensitive)
func PageFor(name string) (Page, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "", "A4":
		return A4, nil
	case "A5":
		return A5, nil
	case "LETTER":
		return Letter, nil
	default:
		return Page{}, fmt.Errorf("unknown page size: %s", name)
	}
}

// WithMargin returns a copy of p using margin m
func (p Page) WithMargin(m float64) Page {
	p.Margin = m
	return p
}

// UsableWidth is the width between the left and right margins
func (p Page) UsableWidth() float64 {
	return p.Width - 2*p.Margin
}

// UsableHeight is the height between the top and bottom margins
func (p Page) UsableHeight() float64 {
	return p.Height - 2*p.Margin
}

// Left edge of the content area
func (p Page) Left() float64 { return p.Margin }

// Right edge of the content area
func (p Page) Right() float64 { return p.Width - p.Margin }

// Top edge of the content area
func (p Page) Top() float64 { return p.Margin }

// Bottom edge of the content area
func (p Page) Bottom() float64 { return p.Height - p.Margin }

// Font selects a face and a size in points
type Font struct {
	Family string  `json:"family"`
	Style  string  `json:"style,omitempty"` // "", "B", "I", "BI"
	Size   float64 `json:"size"`
}

// Bold returns the bold variant of f
func (f Font) Bold() Font {
	f.Style = "B"
	return f
}

// Sized returns f at size pt
func (f Font) Sized(pt float64) Font {
	f.Size = pt
	return f
}

// LineHeight is the vertical advance of one line set in f
func (f Font) LineHeight() float64 {
	return f.Size * PointsToMM * 1.4
}
