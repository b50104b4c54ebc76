package draw

import (
	"encoding/json"
	"fmt"

	"github.com/rezonia/gst-invoice/internal/layout"
)

// Document is a finished, immutable instruction list
type Document struct {
	page         layout.Page
	pages        int
	instructions []Instruction
}

// Page returns the page geometry every page shares
func (d *Document) Page() layout.Page { return d.page }

// PageCount returns the number of pages
func (d *Document) PageCount() int { return d.pages }

// Len returns the number of instructions
func (d *Document) Len() int { return len(d.instructions) }

// Instructions returns a copy of the instruction list in drawing order
func (d *Document) Instructions() []Instruction {
	return append([]Instruction(nil), d.instructions...)
}

// OnPage returns the instructions drawn on page i
func (d *Document) OnPage(i int) []Instruction {
	var out []Instruction
	for _, ins := range d.instructions {
		if ins.PageIndex() == i {
			out = append(out, ins)
		}
	}
	return out
}

// All returns every instruction of variant T in order
func All[T Instruction](d *Document) []T {
	var out []T
	for _, ins := range d.instructions {
		if v, ok := ins.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

// Texts returns the text strings drawn on page i, in order
func (d *Document) Texts(page int) []string {
	var out []string
	for _, t := range All[Text](d) {
		if t.Page == page {
			out = append(out, t.Text)
		}
	}
	return out
}

// Recorder accumulates instructions while a document is laid out
type Recorder struct {
	page         layout.Page
	current      int
	maxPage      int
	instructions []Instruction
}

// NewRecorder creates a recorder for pages of geometry page
func NewRecorder(page layout.Page) *Recorder {
	return &Recorder{page: page}
}

// SetPage directs subsequent instructions to page i
func (r *Recorder) SetPage(i int) {
	r.current = i
	if i > r.maxPage {
		r.maxPage = i
	}
}

// CurrentPage returns the page instructions are directed to
func (r *Recorder) CurrentPage() int { return r.current }

// Rect records a rectangle
func (r *Recorder) Rect(x, y, w, h float64, fill, stroke *Color) {
	r.add(Rect{Page: r.current, X: x, Y: y, W: w, H: h, Fill: clone(fill), Stroke: clone(stroke), LineWidth: 0.2})
}

func clone(c *Color) *Color {
	if c == nil {
		return nil
	}
	v := *c
	return &v
}

// Line records a segment
func (r *Recorder) Line(x1, y1, x2, y2 float64, color Color, width float64) {
	r.add(Line{Page: r.current, X1: x1, Y1: y1, X2: x2, Y2: y2, Color: color, Width: width})
}

// Text records a text run
func (r *Recorder) Text(x, y, w, h float64, text string, font layout.Font, align layout.Align, color Color) {
	if text == "" {
		return
	}
	r.add(Text{Page: r.current, X: x, Y: y, W: w, H: h, Text: text, Font: font, Align: align, Color: color})
}

// Image records an image placement
func (r *Recorder) Image(x, y, w, h float64, name string, png []byte) {
	r.add(Image{Page: r.current, X: x, Y: y, W: w, H: h, Name: name, PNG: png})
}

func (r *Recorder) add(ins Instruction) {
	r.instructions = append(r.instructions, ins)
}

// Document freezes the recorded instructions
func (r *Recorder) Document() *Document {
	return &Document{
		page:         r.page,
		pages:        r.maxPage + 1,
		instructions: append([]Instruction(nil), r.instructions...),
	}
}

type documentJSON struct {
	Page         layout.Page       `json:"page"`
	Pages        int               `json:"pages"`
	Instructions []json.RawMessage `json:"instructions"`
}

type taggedJSON struct {
	Kind Kind `json:"kind"`
}

// MarshalJSON writes instructions with a "kind" tag
func (d *Document) MarshalJSON() ([]byte, error) {
	out := documentJSON{
		Page:         d.page,
		Pages:        d.pages,
		Instructions: make([]json.RawMessage, 0, len(d.instructions)),
	}
	for _, ins := range d.instructions {
		raw, err := marshalTagged(ins)
		if err != nil {
			return nil, err
		}
		out.Instructions = append(out.Instructions, raw)
	}
	return json.Marshal(out)
}

func marshalTagged(ins Instruction) ([]byte, error) {
	body, err := json.Marshal(ins)
	if err != nil {
		return nil, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, err
	}
	kind, _ := json.Marshal(ins.Kind())
	fields["kind"] = kind
	return json.Marshal(fields)
}

// UnmarshalJSON restores a document written by MarshalJSON
func (d *Document) UnmarshalJSON(b []byte) error {
	var in documentJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}

	d.page = in.Page
	d.pages = in.Pages
	d.instructions = make([]Instruction, 0, len(in.Instructions))

	for i, raw := range in.Instructions {
		var tag taggedJSON
		if err := json.Unmarshal(raw, &tag); err != nil {
			return err
		}
		ins, err := decodeInstruction(tag.Kind, raw)
		if err != nil {
			return fmt.Errorf("instruction %d: %w", i, err)
		}
		d.instructions = append(d.instructions, ins)
	}
	return nil
}

func decodeInstruction(kind Kind, raw []byte) (Instruction, error) {
	switch kind {
	case KindRect:
		var v Rect
		err := json.Unmarshal(raw, &v)
		return v, err
	case KindLine:
		var v Line
		err := json.Unmarshal(raw, &v)
		return v, err
	case KindText:
		var v Text
		err := json.Unmarshal(raw, &v)
		return v, err
	case KindImage:
		var v Image
		err := json.Unmarshal(raw, &v)
		return v, err
	default:
		return nil, fmt.Errorf("unknown instruction kind %q", kind)
	}
}
