package server

import (
	"github.com/shopspring/decimal"

	"github.com/rezonia/gst-invoice/internal/draw"
	"github.com/rezonia/gst-invoice/internal/gst"
	"github.com/rezonia/gst-invoice/internal/model"
)

// TaxRequest is the body of the tax endpoint
type TaxRequest struct {
	Subtotal      *decimal.Decimal     `json:"subtotal"`
	CustomerState string               `json:"customer_state"`
	CompanyState  string               `json:"company_state"`
	Rates         *model.RateOverrides `json:"rates,omitempty"`
}

// TaxResponse is the response for the tax endpoint
type TaxResponse struct {
	Tax                 model.TaxBreakdown `json:"tax"`
	GrandTotalFormatted string             `json:"grand_total_formatted"`
	AmountInWords       string             `json:"amount_in_words"`
}

// WordsRequest is the body of the words endpoint
type WordsRequest struct {
	Amount *decimal.Decimal `json:"amount"`
}

// WordsResponse is the response for the words endpoint
type WordsResponse struct {
	Amount    decimal.Decimal `json:"amount"`
	Words     string          `json:"words"`
	Formatted string          `json:"formatted"`
}

// StatesResponse lists the state registry
type StatesResponse struct {
	States []gst.State `json:"states"`
}

// InstructionsResponse is the response for the instructions endpoint
type InstructionsResponse struct {
	Invoice  model.InvoiceDocument `json:"invoice"`
	Words    string                `json:"amount_in_words"`
	Document *draw.Document        `json:"document"`
}

// ValidationResponse is the response for the validate endpoint
type ValidationResponse struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// ErrorResponse is the standard error response
type ErrorResponse struct {
	Error   string         `json:"error"`
	Code    string         `json:"code"`
	Details map[string]any `json:"details,omitempty"`
}
