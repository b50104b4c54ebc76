// Package model holds the invoice data object consumed by the engine and the
// values it computes (line amounts, tax breakdown, totals).
package model

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	money "github.com/rezonia/gst-invoice/internal/decimal"
)

// DateLayout is the wire format of invoice dates
const DateLayout = "2006-01-02"

// Date is a calendar date supplied by the caller
type Date struct {
	time.Time
}

// NewDate creates a Date at midnight UTC
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// UnmarshalJSON accepts "2006-01-02", RFC3339, "" and null
func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// MarshalJSON writes the date as "2006-01-02", or "" when unset
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return json.Marshal("")
	}
	return json.Marshal(d.Format(DateLayout))
}

// ImageRef references an image as a data URL ("data:image/png;base64,...")
// or as bare base64 content
type ImageRef string

// IsEmpty reports whether no image was supplied
func (r ImageRef) IsEmpty() bool {
	return strings.TrimSpace(string(r)) == ""
}

// Party is a snapshot of the company or the customer at invoicing time
type Party struct {
	Name         string   `json:"name"`
	AddressLines []string `json:"address_lines,omitempty"`
	StateCode    string   `json:"state_code"`
	GSTIN        string   `json:"gstin,omitempty"`
	Logo         ImageRef `json:"logo,omitempty"`
}

// LineItem represents a single invoice line
type LineItem struct {
	Description string          `json:"description"`
	HSNSAC      string          `json:"hsn_sac,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	Unit        string          `json:"unit,omitempty"`

	// Computed
	Amount decimal.Decimal `json:"amount"`
}

// Calculate computes Amount = round(Quantity * Rate, 2)
func (li *LineItem) Calculate() {
	li.Amount = money.Mul(li.Quantity, li.Rate)
}

// RateOverrides replaces the default GST percentages for one invoice.
// Nil fields keep the engine's rate table.
type RateOverrides struct {
	CGST *decimal.Decimal `json:"cgst,omitempty"`
	SGST *decimal.Decimal `json:"sgst,omitempty"`
	IGST *decimal.Decimal `json:"igst,omitempty"`
}

// IsZero reports whether no override is set
func (o *RateOverrides) IsZero() bool {
	return o == nil || (o.CGST == nil && o.SGST == nil && o.IGST == nil)
}

// TaxBreakdown is the GST split for one invoice
type TaxBreakdown struct {
	Subtotal     decimal.Decimal `json:"subtotal"`
	CGSTRate     decimal.Decimal `json:"cgst_rate"`
	SGSTRate     decimal.Decimal `json:"sgst_rate"`
	IGSTRate     decimal.Decimal `json:"igst_rate"`
	CGSTAmount   decimal.Decimal `json:"cgst_amount"`
	SGSTAmount   decimal.Decimal `json:"sgst_amount"`
	IGSTAmount   decimal.Decimal `json:"igst_amount"`
	TotalGST     decimal.Decimal `json:"total_gst"`
	GrandTotal   decimal.Decimal `json:"grand_total"`
	IsIntraState bool            `json:"is_intra_state"`

	// Resolved jurisdiction codes and the comparison policy that produced
	// IsIntraState
	CustomerState string `json:"customer_state"`
	CompanyState  string `json:"company_state"`
	Policy        string `json:"policy"`
}

// InvoiceDocument is the plain data object rendered into a tax invoice
type InvoiceDocument struct {
	Number      string         `json:"number"`
	IssueDate   Date           `json:"issue_date"`
	DueDate     Date           `json:"due_date"`
	Company     Party          `json:"company"`
	Customer    Party          `json:"customer"`
	Items       []LineItem     `json:"items"`
	Notes       string         `json:"notes,omitempty"`
	Signature   ImageRef       `json:"signature,omitempty"`
	Declaration string         `json:"declaration,omitempty"`
	Rates       *RateOverrides `json:"rates,omitempty"`

	// Computed
	Subtotal      decimal.Decimal `json:"subtotal"`
	TotalQuantity decimal.Decimal `json:"total_quantity"`
	Tax           *TaxBreakdown   `json:"tax,omitempty"`
}

// CalculateTotals computes every line amount, the subtotal and the summed
// quantity
func (d *InvoiceDocument) CalculateTotals() {
	d.Subtotal = money.Zero
	d.TotalQuantity = money.Zero

	for i := range d.Items {
		d.Items[i].Calculate()
		d.Subtotal = d.Subtotal.Add(d.Items[i].Amount)
		d.TotalQuantity = d.TotalQuantity.Add(d.Items[i].Quantity)
	}
}
