// Package draw defines the backend-agnostic drawing instructions a laid-out
// invoice is reduced to. A Document is an immutable, ordered instruction
// list; adapters such as internal/pdf encode it with a concrete library.
package draw

import (
	"github.com/rezonia/gst-invoice/internal/layout"
)

// Kind tags an instruction variant
type Kind string

const (
	KindRect  Kind = "rect"
	KindLine  Kind = "line"
	KindText  Kind = "text"
	KindImage Kind = "image"
)

// Color is an RGB colour
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Palette
var (
	Black      = Color{0, 0, 0}
	White      = Color{255, 255, 255}
	Border     = Color{120, 120, 120}
	BandFill   = Color{245, 245, 245}
	HeaderFill = Color{225, 230, 240}
	TitleFill  = Color{41, 65, 122}
	Muted      = Color{90, 90, 90}
)

// Instruction is one drawing operation on one page
type Instruction interface {
	Kind() Kind
	PageIndex() int
}

// Rect fills and/or strokes a rectangle. X, Y is the top-left corner.
type Rect struct {
	Page      int     `json:"page"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	W         float64 `json:"w"`
	H         float64 `json:"h"`
	Fill      *Color  `json:"fill,omitempty"`
	Stroke    *Color  `json:"stroke,omitempty"`
	LineWidth float64 `json:"line_width,omitempty"`
}

func (Rect) Kind() Kind       { return KindRect }
func (r Rect) PageIndex() int { return r.Page }
func (r Rect) Filled() bool   { return r.Fill != nil }
func (r Rect) Stroked() bool  { return r.Stroke != nil }

// Line draws a straight segment
type Line struct {
	Page  int     `json:"page"`
	X1    float64 `json:"x1"`
	Y1    float64 `json:"y1"`
	X2    float64 `json:"x2"`
	Y2    float64 `json:"y2"`
	Color Color   `json:"color"`
	Width float64 `json:"width"`
}

func (Line) Kind() Kind       { return KindLine }
func (l Line) PageIndex() int { return l.Page }

// Text sets a single line of text inside the box X, Y, W, H, vertically
// centred and aligned horizontally by Align. Text is already truncated to W.
type Text struct {
	Page  int          `json:"page"`
	X     float64      `json:"x"`
	Y     float64      `json:"y"`
	W     float64      `json:"w"`
	H     float64      `json:"h"`
	Text  string       `json:"text"`
	Font  layout.Font  `json:"font"`
	Align layout.Align `json:"align"`
	Color Color        `json:"color"`
}

func (Text) Kind() Kind       { return KindText }
func (t Text) PageIndex() int { return t.Page }

// Image places a PNG scaled into the box X, Y, W, H
type Image struct {
	Page int     `json:"page"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	W    float64 `json:"w"`
	H    float64 `json:"h"`
	Name string  `json:"name"`
	PNG  []byte  `json:"png"`
}

func (Image) Kind() Kind       { return KindImage }
func (i Image) PageIndex() int { return i.Page }
