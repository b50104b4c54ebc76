package validation_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ierr "github.com/rezonia/gst-invoice/internal/errors"
	"github.com/rezonia/gst-invoice/internal/model"
	"github.com/rezonia/gst-invoice/internal/validation"
)

func validInvoice() *model.InvoiceDocument {
	return &model.InvoiceDocument{
		Number:    "INV-001",
		IssueDate: model.NewDate(2024, time.April, 1),
		DueDate:   model.NewDate(2024, time.April, 30),
		Company: model.Party{
			Name:      "Acme Traders",
			StateCode: "27",
			GSTIN:     "27AAPFU0939F1ZV",
		},
		Customer: model.Party{
			Name:      "Globex",
			StateCode: "29",
			GSTIN:     "29ABCDE1234F1Z5",
		},
		Items: []model.LineItem{
			{Description: "Widget", HSNSAC: "8471", Quantity: decimal.NewFromInt(2), Rate: decimal.NewFromInt(100)},
		},
	}
}

func TestInvoice_Valid(t *testing.T) {
	report := validation.Invoice(validInvoice())

	assert.True(t, report.Valid())
	assert.Empty(t, report.Errors)
	assert.Empty(t, report.Warnings)
	assert.NoError(t, report.Err())
}

func TestInvoice_Nil(t *testing.T) {
	report := validation.Invoice(nil)
	assert.False(t, report.Valid())
	assert.Equal(t, []string{"invoice: no invoice data"}, report.ErrorMessages())
}

func TestInvoice_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.InvoiceDocument)
		field  string
	}{
		{"malformed gstin", func(d *model.InvoiceDocument) { d.Company.GSTIN = "27AAPFU0939F1Z" }, "company.gstin"},
		{"lowercase gstin", func(d *model.InvoiceDocument) { d.Customer.GSTIN = "29abcde1234f1z5" }, "customer.gstin"},
		{"gstin state mismatch", func(d *model.InvoiceDocument) { d.Customer.StateCode = "07" }, "customer.gstin"},
		{"short hsn", func(d *model.InvoiceDocument) { d.Items[0].HSNSAC = "847" }, "items[0].hsn_sac"},
		{"alpha hsn", func(d *model.InvoiceDocument) { d.Items[0].HSNSAC = "84AB" }, "items[0].hsn_sac"},
		{"negative quantity", func(d *model.InvoiceDocument) { d.Items[0].Quantity = decimal.NewFromInt(-1) }, "items[0].quantity"},
		{"negative rate", func(d *model.InvoiceDocument) { d.Items[0].Rate = decimal.RequireFromString("-0.01") }, "items[0].rate"},
		{"negative override", func(d *model.InvoiceDocument) {
			v := decimal.NewFromInt(-5)
			d.Rates = &model.RateOverrides{IGST: &v}
		}, "rates.igst"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := validInvoice()
			tt.mutate(doc)

			report := validation.Invoice(doc)
			require.False(t, report.Valid())
			assert.Equal(t, tt.field, report.Errors[0].Field)

			err := report.Err()
			assert.True(t, ierr.IsValidation(err))
			var ve *model.ValidationError
			assert.True(t, ierr.As(err, &ve))
		})
	}
}

func TestInvoice_Warnings(t *testing.T) {
	doc := validInvoice()
	doc.Number = ""
	doc.Customer.Name = " "
	doc.Customer.StateCode = "99"
	doc.Customer.GSTIN = ""
	doc.Company.StateCode = ""
	doc.Company.GSTIN = ""
	doc.DueDate = model.NewDate(2024, time.March, 1)
	doc.Items[0].HSNSAC = ""

	report := validation.Invoice(doc)
	assert.True(t, report.Valid())
	assert.ElementsMatch(t, []string{
		"number: missing invoice number",
		"due_date: due date is before the issue date",
		"company.state_code: unknown state code, 27 is assumed",
		"company.gstin: missing GSTIN",
		"customer.name: missing name",
		"customer.state_code: unknown state code, the sale is treated as inter-state",
	}, report.WarningMessages())

	strict := report.Strict()
	assert.False(t, strict.Valid())
	assert.Len(t, strict.Errors, len(report.Warnings))
	assert.Empty(t, strict.Warnings)
}

func TestInvoice_StateCodeNormalised(t *testing.T) {
	doc := validInvoice()
	doc.Customer.StateCode = "7"
	doc.Customer.GSTIN = "07ABCDE1234F1Z5"

	assert.True(t, validation.Invoice(doc).Valid())
}

func TestInvoice_NoItems(t *testing.T) {
	doc := validInvoice()
	doc.Items = nil

	report := validation.Invoice(doc)
	assert.True(t, report.Valid())
	assert.Equal(t, []string{"items: invoice has no line items"}, report.WarningMessages())
}
