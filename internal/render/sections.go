package render

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rezonia/gst-invoice/internal/amount"
	"github.com/rezonia/gst-invoice/internal/draw"
	"github.com/rezonia/gst-invoice/internal/gst"
	"github.com/rezonia/gst-invoice/internal/layout"
	"github.com/rezonia/gst-invoice/internal/model"
)

// DateFormat is how invoice dates are printed
const DateFormat = "02 Jan 2006"

// line is one row of text inside a bordered box
type line struct {
	text string
	font layout.Font
}

func linesHeight(lines []line) float64 {
	h := 2 * pad
	for _, l := range lines {
		h += l.font.LineHeight()
	}
	return h
}

// drawLines sets lines top-down inside the box at x, y of width w
func (p *pass) drawLines(x, y, w float64, lines []line, align layout.Align) {
	y += pad
	for _, l := range lines {
		lh := l.font.LineHeight()
		p.text(x, y, w, lh, l.text, l.font, align, draw.Black)
		y += lh
	}
}

func (p *pass) titleBand() {
	page := p.page
	y := p.ensure(titleHeight)

	p.rec.Rect(page.Left(), y, page.UsableWidth(), titleHeight, &draw.TitleFill, nil)

	if !p.inv.Company.Logo.IsEmpty() {
		img, err := DecodeImage(p.inv.Company.Logo)
		if err != nil {
			p.log.Warnw("company logo skipped", "invoice", p.inv.Number, "error", err)
		} else {
			w, h := fitBox(img.Width, img.Height, logoWidth, titleHeight-2)
			p.rec.Image(page.Left()+pad, y+(titleHeight-h)/2, w, h, "logo", img.PNG)
		}
	}

	p.text(page.Left(), y, page.UsableWidth(), titleHeight, Title, p.fonts.title(), layout.AlignCenter, draw.White)
	p.cursor.Section(titleHeight)
}

// parties draws the seller box and the invoice details box side by side at
// equal height
func (p *pass) parties() {
	page := p.page
	half := page.UsableWidth() / 2

	from := p.partyLines("From", p.inv.Company)
	meta := p.metaLines()

	h := linesHeight(from)
	if mh := linesHeight(meta); mh > h {
		h = mh
	}

	y := p.ensure(h)
	p.stroke(page.Left(), y, half, h)
	p.stroke(page.Left()+half, y, half, h)
	p.drawLines(page.Left(), y, half, from, layout.AlignLeft)
	p.drawLines(page.Left()+half, y, half, meta, layout.AlignLeft)

	p.cursor.Section(h)
}

func (p *pass) billTo() {
	page := p.page
	lines := p.partyLines("Bill To", p.inv.Customer)
	h := linesHeight(lines)

	y := p.ensure(h)
	p.stroke(page.Left(), y, page.UsableWidth(), h)
	p.drawLines(page.Left(), y, page.UsableWidth(), lines, layout.AlignLeft)

	p.cursor.Section(h)
}

func (p *pass) partyLines(caption string, party model.Party) []line {
	lines := []line{
		{caption, p.fonts.small()},
		{party.Name, p.fonts.heading()},
	}
	for _, a := range party.AddressLines {
		if strings.TrimSpace(a) != "" {
			lines = append(lines, line{a, p.fonts.body()})
		}
	}
	if party.GSTIN != "" {
		lines = append(lines, line{"GSTIN: " + party.GSTIN, p.fonts.body()})
	}
	lines = append(lines, line{"State: " + stateLabel(party.StateCode), p.fonts.body()})
	return lines
}

func (p *pass) metaLines() []line {
	body := p.fonts.body()
	lines := []line{
		{"Invoice Details", p.fonts.small()},
		{"Invoice No: " + p.inv.Number, p.fonts.heading()},
		{"Invoice Date: " + formatDate(p.inv.IssueDate), body},
		{"Due Date: " + formatDate(p.inv.DueDate), body},
		{"Place of Supply: " + stateLabel(p.inv.Customer.StateCode), body},
	}
	if tax := p.inv.Tax; tax != nil {
		kind := "Inter-State (IGST)"
		if tax.IsIntraState {
			kind = "Intra-State (CGST + SGST)"
		}
		lines = append(lines, line{"Tax Type: " + kind, body})
	}
	return lines
}

func stateLabel(code string) string {
	normalized, ok := gst.NormalizeStateCode(code)
	if !ok {
		return "-"
	}
	return fmt.Sprintf("%s (%s)", gst.States[normalized], normalized)
}

func formatDate(d model.Date) string {
	if d.IsZero() {
		return "-"
	}
	return d.Format(DateFormat)
}

// itemTable draws the header, one banded row per item, the tax rows and the
// totals row. The header is repeated at the top of every continuation page.
func (p *pass) itemTable() {
	p.ensure(headerHeight + rowHeight)
	p.tableHeader()

	restore := p.cursor.OnPageBreak(func(c *layout.Cursor) {
		p.rec.SetPage(c.PageIndex())
		p.tableHeader()
	})
	defer restore()

	var rows layout.Rows
	for i, item := range p.inv.Items {
		_, banded := rows.Next()
		p.row(banded, false, []string{
			fmt.Sprintf("%d", i+1),
			item.Description,
			item.HSNSAC,
			formatQuantity(item.Quantity),
			item.Unit,
			amount.FormatNumber(item.Rate),
			amount.FormatNumber(item.Amount),
		})
	}

	if tax := p.inv.Tax; tax != nil {
		if tax.IsIntraState {
			p.taxRow("CGST", tax.CGSTRate, tax.CGSTAmount)
			p.taxRow("SGST", tax.SGSTRate, tax.SGSTAmount)
		} else {
			p.taxRow("IGST", tax.IGSTRate, tax.IGSTAmount)
		}
	}

	p.totalsRow()
	p.cursor.Gap()
}

func (p *pass) tableHeader() {
	y := p.cursor.Y()
	x := p.page.Left()
	font := p.fonts.body().Bold()

	p.rec.Rect(x, y, p.page.UsableWidth(), headerHeight, &draw.HeaderFill, nil)
	for i := 0; i < p.cols.Len(); i++ {
		cx, w := x+p.cols.Offset(i), p.cols.Width(i)
		p.stroke(cx, y, w, headerHeight)
		p.text(cx, y, w, headerHeight, p.cols.Def(i).Title, font, layout.AlignCenter, draw.Black)
	}
	p.cursor.Advance(headerHeight)
}

// row draws one body row with a cell per column
func (p *pass) row(banded, bold bool, cells []string) {
	y := p.ensure(rowHeight)
	x := p.page.Left()
	font := p.fonts.body()
	if bold {
		font = font.Bold()
	}

	if banded {
		p.rec.Rect(x, y, p.page.UsableWidth(), rowHeight, &draw.BandFill, nil)
	}
	for i := 0; i < p.cols.Len() && i < len(cells); i++ {
		def := p.cols.Def(i)
		cx, w := x+p.cols.Offset(i), p.cols.Width(i)
		p.stroke(cx, y, w, rowHeight)
		p.text(cx, y, w, rowHeight, cells[i], font, def.Align, draw.Black)
	}
	p.cursor.Advance(rowHeight)
}

// spanRow draws a label spanning every column but the last, and a value in
// the amount column
func (p *pass) spanRow(label, value string, bold bool, fill *draw.Color) {
	y := p.ensure(rowHeight)
	x := p.page.Left()
	last := p.cols.Len() - 1
	font := p.fonts.body()
	if bold {
		font = font.Bold()
	}

	if fill != nil {
		p.rec.Rect(x, y, p.page.UsableWidth(), rowHeight, fill, nil)
	}

	labelW := p.cols.Span(0, last-1)
	p.stroke(x, y, labelW, rowHeight)
	p.text(x, y, labelW, rowHeight, label, font, layout.AlignRight, draw.Black)

	vx, vw := x+p.cols.Offset(last), p.cols.Width(last)
	p.stroke(vx, y, vw, rowHeight)
	p.text(vx, y, vw, rowHeight, value, font, layout.AlignRight, draw.Black)

	p.cursor.Advance(rowHeight)
}

func (p *pass) taxRow(name string, rate, amt decimal.Decimal) {
	p.spanRow(fmt.Sprintf("%s @ %s%%", name, rate.String()), amount.FormatNumber(amt), false, nil)
}

// totalsRow shows the summed quantity under the quantity column and the
// grand total under the amount column
func (p *pass) totalsRow() {
	y := p.ensure(rowHeight)
	x := p.page.Left()
	font := p.fonts.body().Bold()

	qty := p.cols.Index(layout.ColQuantity)
	last := p.cols.Len() - 1

	grand := p.inv.Subtotal
	if p.inv.Tax != nil {
		grand = p.inv.Tax.GrandTotal
	}

	p.rec.Rect(x, y, p.page.UsableWidth(), rowHeight, &draw.HeaderFill, nil)

	cells := []struct {
		from, to int
		text     string
	}{
		{0, qty - 1, "Total"},
		{qty, qty, formatQuantity(p.inv.TotalQuantity)},
		{qty + 1, last - 1, ""},
		{last, last, p.formatter.FormatCurrency(grand)},
	}
	for _, c := range cells {
		cx, w := x+p.cols.Offset(c.from), p.cols.Span(c.from, c.to)
		p.stroke(cx, y, w, rowHeight)
		p.text(cx, y, w, rowHeight, c.text, font, layout.AlignRight, draw.Black)
	}
	p.cursor.Advance(rowHeight)
}

func formatQuantity(q decimal.Decimal) string {
	return q.String()
}

func (p *pass) wordsBox() {
	page := p.page
	small, bold := p.fonts.small(), p.fonts.body().Bold()
	h := 2*pad + small.LineHeight() + bold.LineHeight()

	y := p.ensure(h)
	p.stroke(page.Left(), y, page.UsableWidth(), h)
	p.text(page.Left(), y+pad, page.UsableWidth(), small.LineHeight(), WordsCaption, small, layout.AlignLeft, draw.Muted)
	p.text(page.Left(), y+pad, page.UsableWidth(), small.LineHeight(), ErrorsOmitted, small, layout.AlignRight, draw.Muted)
	p.text(page.Left(), y+pad+small.LineHeight(), page.UsableWidth(), bold.LineHeight(), p.words, bold, layout.AlignLeft, draw.Black)

	p.cursor.Section(h)
}

func (p *pass) declarationAndSignature() {
	page := p.page
	leftW := page.UsableWidth() * 0.6
	rightW := page.UsableWidth() - leftW
	small, heading := p.fonts.small(), p.fonts.body().Bold()

	declaration := strings.TrimSpace(p.inv.Declaration)
	if declaration == "" {
		declaration = DefaultDeclaration
	}
	wrapped := layout.Wrap(declaration, leftW-2*pad, declarationLines, layout.MeasureWith(p.metrics, small))

	left := []line{{"Declaration", heading}}
	for _, l := range wrapped {
		left = append(left, line{l, small})
	}

	h := linesHeight(left)
	rightH := 2*pad + heading.LineHeight() + signatureHeight + small.LineHeight()
	if rightH > h {
		h = rightH
	}

	var sig *DecodedImage
	if !p.inv.Signature.IsEmpty() {
		img, err := DecodeImage(p.inv.Signature)
		if err != nil {
			p.log.Warnw("signature image skipped", "invoice", p.inv.Number, "error", err)
		} else {
			sig = img
		}
	}

	y := p.ensure(h)
	rx := page.Left() + leftW

	p.stroke(page.Left(), y, leftW, h)
	p.drawLines(page.Left(), y, leftW, left, layout.AlignLeft)

	p.stroke(rx, y, rightW, h)
	p.text(rx, y+pad, rightW, heading.LineHeight(), "for "+p.inv.Company.Name, heading, layout.AlignRight, draw.Black)
	if sig != nil {
		w, ih := fitBox(sig.Width, sig.Height, signatureWidth, signatureHeight)
		ix := rx + (rightW-w)/2
		iy := y + pad + heading.LineHeight() + (signatureHeight-ih)/2
		p.rec.Image(ix, iy, w, ih, "signature", sig.PNG)
	}
	p.text(rx, y+h-pad-small.LineHeight(), rightW, small.LineHeight(), SignatoryCaption, small, layout.AlignRight, draw.Black)

	p.cursor.Section(h)
}

func (p *pass) notes() {
	notes := strings.Join(strings.Fields(p.inv.Notes), " ")
	if notes == "" {
		return
	}

	body := p.fonts.body()
	h := body.LineHeight() + pad
	y := p.ensure(h)
	p.text(p.page.Left(), y, p.page.UsableWidth(), h, "Notes: "+notes, body, layout.AlignLeft, draw.Black)
	p.cursor.Section(h)
}

// footer draws the caption and page number on every page the flow used
func (p *pass) footer() {
	page := p.page
	small := p.fonts.small()
	pages := p.cursor.Pages()
	y := page.Bottom() - footerHeight + 2

	for i := 0; i < pages; i++ {
		p.rec.SetPage(i)
		p.rec.Line(page.Left(), y, page.Right(), y, draw.Border, 0.2)
		p.text(page.Left(), y+1, page.UsableWidth(), small.LineHeight(), FooterCaption, small, layout.AlignCenter, draw.Muted)
		p.text(page.Left(), y+1, page.UsableWidth(), small.LineHeight(), fmt.Sprintf("Page %d of %d", i+1, pages), small, layout.AlignRight, draw.Muted)
	}
}
