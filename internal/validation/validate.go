// Package validation runs business checks over an invoice before it is
// rendered. The renderer itself accepts any input; these checks back the
// validate command and endpoint.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	ierr "github.com/rezonia/gst-invoice/internal/errors"
	"github.com/rezonia/gst-invoice/internal/gst"
	"github.com/rezonia/gst-invoice/internal/model"
)

var (
	gstinPattern = regexp.MustCompile(`^\d{2}[A-Z]{5}\d{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)
	hsnPattern   = regexp.MustCompile(`^\d{4,8}$`)
)

// Report lists blocking errors and advisory warnings
type Report struct {
	Errors   []*model.ValidationError `json:"errors,omitempty"`
	Warnings []*model.ValidationError `json:"warnings,omitempty"`
}

// Valid reports whether there are no errors
func (r Report) Valid() bool {
	return len(r.Errors) == 0
}

// Strict promotes every warning to an error
func (r Report) Strict() Report {
	return Report{Errors: append(append([]*model.ValidationError{}, r.Errors...), r.Warnings...)}
}

func (r Report) ErrorMessages() []string {
	return lo.Map(r.Errors, func(e *model.ValidationError, _ int) string { return message(e) })
}

func (r Report) WarningMessages() []string {
	return lo.Map(r.Warnings, func(e *model.ValidationError, _ int) string { return message(e) })
}

// Err returns nil for a valid report, otherwise the first error marked as a
// validation failure
func (r Report) Err() error {
	if r.Valid() {
		return nil
	}
	return ierr.WithError(r.Errors[0]).
		WithHintf("invoice has %d validation error(s): %s", len(r.Errors), strings.Join(r.ErrorMessages(), "; ")).
		Mark(ierr.ErrValidation)
}

func message(e *model.ValidationError) string {
	return e.Field + ": " + e.Message
}

type checker struct {
	report Report
}

func (c *checker) fail(field string, value any, rule, msg string) {
	c.report.Errors = append(c.report.Errors, model.NewValidationError(field, value, rule, msg))
}

func (c *checker) warn(field string, value any, rule, msg string) {
	c.report.Warnings = append(c.report.Warnings, model.NewValidationError(field, value, rule, msg))
}

// Invoice checks doc without modifying it
func Invoice(doc *model.InvoiceDocument) Report {
	c := &checker{}
	if doc == nil {
		c.fail("invoice", nil, "required", "no invoice data")
		return c.report
	}

	if strings.TrimSpace(doc.Number) == "" {
		c.warn("number", nil, "required", "missing invoice number")
	}
	if doc.IssueDate.IsZero() {
		c.warn("issue_date", nil, "required", "missing issue date")
	}
	if !doc.IssueDate.IsZero() && !doc.DueDate.IsZero() && doc.DueDate.Before(doc.IssueDate.Time) {
		c.warn("due_date", doc.DueDate.Format(model.DateLayout), "after_issue", "due date is before the issue date")
	}

	c.party("company", doc.Company, true)
	c.party("customer", doc.Customer, false)

	if len(doc.Items) == 0 {
		c.warn("items", nil, "required", "invoice has no line items")
	}
	for i, item := range doc.Items {
		c.item(i, item)
	}

	c.rates(doc.Rates)

	return c.report
}

func (c *checker) party(field string, p model.Party, company bool) {
	if strings.TrimSpace(p.Name) == "" {
		c.warn(field+".name", nil, "required", "missing name")
	}

	code, known := gst.NormalizeStateCode(p.StateCode)
	switch {
	case known:
	case company:
		c.warn(field+".state_code", p.StateCode, "state_code",
			fmt.Sprintf("unknown state code, %s is assumed", gst.DefaultStateCode))
	default:
		c.warn(field+".state_code", p.StateCode, "state_code",
			"unknown state code, the sale is treated as inter-state")
	}

	gstin := strings.TrimSpace(p.GSTIN)
	if gstin == "" {
		if company {
			c.warn(field+".gstin", nil, "required", "missing GSTIN")
		}
		return
	}
	if !gstinPattern.MatchString(gstin) {
		c.fail(field+".gstin", gstin, "gstin", "GSTIN must be 15 characters: state code, PAN, entity number, Z, checksum")
		return
	}
	if known && gstin[:2] != code {
		c.fail(field+".gstin", gstin, "gstin_state",
			fmt.Sprintf("GSTIN state %s does not match state code %s", gstin[:2], code))
	}
}

func (c *checker) item(i int, item model.LineItem) {
	field := fmt.Sprintf("items[%d]", i)

	if strings.TrimSpace(item.Description) == "" {
		c.warn(field+".description", nil, "required", "missing description")
	}
	if item.HSNSAC != "" && !hsnPattern.MatchString(item.HSNSAC) {
		c.fail(field+".hsn_sac", item.HSNSAC, "hsn_sac", "HSN/SAC must be 4 to 8 digits")
	}
	if item.Quantity.IsNegative() {
		c.fail(field+".quantity", item.Quantity.String(), "gte=0", "quantity must not be negative")
	}
	if item.Rate.IsNegative() {
		c.fail(field+".rate", item.Rate.String(), "gte=0", "rate must not be negative")
	}
}

func (c *checker) rates(o *model.RateOverrides) {
	if o.IsZero() {
		return
	}
	for _, r := range []struct {
		name string
		v    *decimal.Decimal
	}{{"cgst", o.CGST}, {"sgst", o.SGST}, {"igst", o.IGST}} {
		if r.v != nil && r.v.IsNegative() {
			c.fail("rates."+r.name, r.v.String(), "gte=0", "rate must not be negative")
		}
	}
}
