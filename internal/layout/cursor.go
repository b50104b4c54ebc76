package layout

// DefaultGap is the vertical space left between sections
const DefaultGap = 3.0

// Position is a point in the document's vertical flow
type Position struct {
	Page int
	Y    float64
}

// Before reports whether p precedes q
func (p Position) Before(q Position) bool {
	if p.Page != q.Page {
		return p.Page < q.Page
	}
	return p.Y < q.Y
}

// Cursor tracks the vertical flow of a document across pages. Its position
// only moves forward.
type Cursor struct {
	page    Page
	gap     float64
	reserve float64

	pos     Position
	onBreak func(c *Cursor)
}

// CursorOption configures a Cursor
type CursorOption func(*Cursor)

// WithGap sets the inter-section gap
func WithGap(gap float64) CursorOption {
	return func(c *Cursor) {
		if gap >= 0 {
			c.gap = gap
		}
	}
}

// WithReservedBottom keeps h millimetres above the bottom margin free, for
// a footer drawn after the flow is complete
func WithReservedBottom(h float64) CursorOption {
	return func(c *Cursor) {
		if h >= 0 {
			c.reserve = h
		}
	}
}

// NewCursor starts at the top margin of the first page
func NewCursor(page Page, opts ...CursorOption) *Cursor {
	c := &Cursor{
		page: page,
		gap:  DefaultGap,
		pos:  Position{Page: 0, Y: page.Top()},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Page returns the page geometry
func (c *Cursor) Page() Page { return c.page }

// Y returns the vertical position on the current page
func (c *Cursor) Y() float64 { return c.pos.Y }

// PageIndex returns the zero-based current page
func (c *Cursor) PageIndex() int { return c.pos.Page }

// Pages returns how many pages the flow has touched
func (c *Cursor) Pages() int { return c.pos.Page + 1 }

// Position returns the current position
func (c *Cursor) Position() Position { return c.pos }

// Limit is the lowest y content may reach on any page
func (c *Cursor) Limit() float64 {
	return c.page.Bottom() - c.reserve
}

// Remaining returns the free height left on the current page
func (c *Cursor) Remaining() float64 {
	return c.Limit() - c.pos.Y
}

// Fits reports whether a block of height h fits on the current page
func (c *Cursor) Fits(h float64) bool {
	return c.pos.Y+h <= c.Limit()
}

// AtTop reports whether nothing has been placed on the current page
func (c *Cursor) AtTop() bool {
	return c.pos.Y <= c.page.Top()
}

// Advance moves down by h. Negative heights are ignored.
func (c *Cursor) Advance(h float64) {
	if h > 0 {
		c.pos.Y += h
	}
}

// Gap moves down by the inter-section gap
func (c *Cursor) Gap() {
	c.Advance(c.gap)
}

// Section advances past a finished section of height h plus the gap
func (c *Cursor) Section(h float64) {
	c.Advance(h)
	c.Gap()
}

// Ensure starts a new page when a block of height h does not fit in the
// remaining space. A block taller than a whole page is placed at the top of
// a fresh page and allowed to overflow. It reports whether a break happened.
func (c *Cursor) Ensure(h float64) bool {
	if c.Fits(h) || c.AtTop() {
		return false
	}
	c.NewPage()
	return true
}

// NewPage moves to the top of the next page and runs the page-break hook
func (c *Cursor) NewPage() {
	c.pos = Position{Page: c.pos.Page + 1, Y: c.page.Top()}
	if c.onBreak != nil {
		c.onBreak(c)
	}
}

// OnPageBreak installs fn to run after every page break (for repeating a
// table header) and returns a function restoring the previous hook
func (c *Cursor) OnPageBreak(fn func(c *Cursor)) (restore func()) {
	prev := c.onBreak
	c.onBreak = fn
	return func() {
		c.onBreak = prev
	}
}

// Rows counts body rows of one table for banding
type Rows struct {
	n int
}

// Next returns the zero-based index of the next row and whether it is banded
func (r *Rows) Next() (int, bool) {
	i := r.n
	r.n++
	return i, Band(i)
}

// Count returns how many rows have been issued
func (r *Rows) Count() int { return r.n }

// Band reports whether the zero-based body row index receives the
// alternate background. Only the index decides; content never does.
func Band(rowIndex int) bool {
	return rowIndex%2 == 0
}
