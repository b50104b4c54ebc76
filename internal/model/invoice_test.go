package model_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/gst-invoice/internal/model"
)

func TestInvoice_Creation(t *testing.T) {
	inv := model.InvoiceDocument{
		Number:    "INV-0001",
		IssueDate: model.NewDate(2024, time.January, 15),
		Company: model.Party{
			Name:      "Acme Traders",
			StateCode: "27",
			GSTIN:     "27ABCDE1234F1Z5",
		},
		Customer: model.Party{
			Name:      "Globex Pvt Ltd",
			StateCode: "29",
			GSTIN:     "29FGHIJ5678K1Z2",
		},
	}

	assert.Equal(t, "INV-0001", inv.Number)
	assert.Equal(t, "27", inv.Company.StateCode)
	assert.Equal(t, "29", inv.Customer.StateCode)
	assert.Equal(t, "29", inv.Customer.GSTIN[:2])
	assert.Equal(t, 2024, inv.IssueDate.Year())
}

func TestLineItem_Calculate(t *testing.T) {
	item := model.LineItem{
		Description: "Steel bracket",
		Unit:        "pcs",
		Quantity:    decimal.NewFromInt(10),
		Rate:        decimal.RequireFromString("125.50"),
	}

	item.Calculate()

	// Amount = 10 * 125.50 = 1255.00
	assert.True(t, item.Amount.Equal(decimal.RequireFromString("1255")),
		"Expected amount 1255, got %s", item.Amount.String())
}

func TestLineItem_CalculateRounds(t *testing.T) {
	item := model.LineItem{
		Quantity: decimal.RequireFromString("1.5"),
		Rate:     decimal.RequireFromString("33.333"),
	}

	item.Calculate()

	// 1.5 * 33.333 = 49.9995 -> 50.00
	assert.True(t, item.Amount.Equal(decimal.RequireFromString("50")),
		"Expected amount 50.00, got %s", item.Amount.String())
}

func TestInvoice_CalculateTotals(t *testing.T) {
	inv := model.InvoiceDocument{
		Items: []model.LineItem{
			{Description: "Item 1", Quantity: decimal.NewFromInt(2), Rate: decimal.NewFromInt(10000)},
			{Description: "Item 2", Quantity: decimal.NewFromInt(3), Rate: decimal.NewFromInt(10000)},
		},
	}

	inv.CalculateTotals()

	assert.True(t, inv.Subtotal.Equal(decimal.NewFromInt(50000)),
		"Expected subtotal 50000, got %s", inv.Subtotal.String())
	assert.True(t, inv.TotalQuantity.Equal(decimal.NewFromInt(5)),
		"Expected quantity 5, got %s", inv.TotalQuantity.String())
	assert.True(t, inv.Items[1].Amount.Equal(decimal.NewFromInt(30000)))
}

func TestInvoice_UnmarshalJSON(t *testing.T) {
	payload := `{
		"number": "INV-7",
		"issue_date": "2024-03-01",
		"due_date": "",
		"company": {"name": "Acme", "state_code": "27"},
		"customer": {"name": "Globex", "state_code": "29", "address_lines": ["MG Road", "Bengaluru"]},
		"items": [{"description": "Widget", "hsn_sac": "8471", "quantity": 2, "rate": "99.50", "unit": "nos"}],
		"rates": {"cgst": "6", "sgst": 6}
	}`

	var inv model.InvoiceDocument
	require.NoError(t, json.Unmarshal([]byte(payload), &inv))

	assert.Equal(t, "INV-7", inv.Number)
	assert.Equal(t, time.March, inv.IssueDate.Month())
	assert.True(t, inv.DueDate.IsZero())
	assert.Equal(t, []string{"MG Road", "Bengaluru"}, inv.Customer.AddressLines)
	require.Len(t, inv.Items, 1)
	assert.True(t, inv.Items[0].Rate.Equal(decimal.RequireFromString("99.5")))
	require.NotNil(t, inv.Rates)
	require.NotNil(t, inv.Rates.SGST)
	assert.True(t, inv.Rates.SGST.Equal(decimal.NewFromInt(6)))
	assert.Nil(t, inv.Rates.IGST)
	assert.False(t, inv.Rates.IsZero())
}

func TestDate_RoundTrip(t *testing.T) {
	d := model.NewDate(2024, time.December, 31)
	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-12-31"`, string(b))

	var empty model.Date
	b, err = json.Marshal(empty)
	require.NoError(t, err)
	assert.Equal(t, `""`, string(b))

	require.Error(t, json.Unmarshal([]byte(`"31/12/2024"`), &d))
}

func TestImageRef_IsEmpty(t *testing.T) {
	assert.True(t, model.ImageRef("").IsEmpty())
	assert.True(t, model.ImageRef("   ").IsEmpty())
	assert.False(t, model.ImageRef("data:image/png;base64,AAAA").IsEmpty())
}

func TestParseError(t *testing.T) {
	err := &model.ParseError{
		Source:  "invoice.json",
		Field:   "items[0].quantity",
		Message: "invalid number",
	}

	require.Contains(t, err.Error(), "invoice.json")
	require.Contains(t, err.Error(), "items[0].quantity")
	require.Contains(t, err.Error(), "invalid number")
}

func TestParseError_WithCause(t *testing.T) {
	cause := assert.AnError
	err := model.NewParseError("request", "body", "decode failed", cause)

	require.Contains(t, err.Error(), "request")
	require.ErrorIs(t, err, cause)
}

func TestValidationError(t *testing.T) {
	err := model.NewValidationError("company.gstin", "27ABC", "format", "must be 15 characters")

	require.Contains(t, err.Error(), "company.gstin")
	require.Contains(t, err.Error(), "27ABC")
	require.Contains(t, err.Error(), "15 characters")
}

func TestRenderError(t *testing.T) {
	err := model.NewRenderError("pdf", "encoding failed", assert.AnError)

	require.Contains(t, err.Error(), "[pdf]")
	require.ErrorIs(t, err, assert.AnError)
}
