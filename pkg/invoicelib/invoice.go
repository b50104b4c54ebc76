// Package invoicelib provides a public API for generating GST tax invoices.
//
// It exposes the invoice data types, the GST tax engine and a Generator that
// computes tax, lays the invoice out and encodes it as PDF.
//
// Example usage:
//
//	gen, err := invoicelib.NewGenerator(invoicelib.DefaultOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	out, err := gen.Generate(ctx, data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("invoice.pdf", out.PDF, 0o644)
package invoicelib

import (
	"github.com/rezonia/gst-invoice/internal/draw"
	"github.com/rezonia/gst-invoice/internal/gst"
	"github.com/rezonia/gst-invoice/internal/model"
)

// Re-export core types for public API
type (
	InvoiceDocument = model.InvoiceDocument
	LineItem        = model.LineItem
	Party           = model.Party
	Date            = model.Date
	ImageRef        = model.ImageRef
	RateOverrides   = model.RateOverrides
	TaxBreakdown    = model.TaxBreakdown
	Document        = draw.Document
)

// Re-export tax engine types
type (
	Engine                = gst.Engine
	RateTable             = gst.RateTable
	StateComparisonPolicy = gst.StateComparisonPolicy
	State                 = gst.State
)

// Re-export policy kinds
const (
	PolicySameAsCompany  = gst.PolicySameAsCompany
	PolicyFixedReference = gst.PolicyFixedReference
)

// DefaultStateCode is the company state assumed when none is known
const DefaultStateCode = gst.DefaultStateCode

// Re-export constructors
var (
	NewDate             = model.NewDate
	NewEngine           = gst.NewEngine
	WithPolicy          = gst.WithPolicy
	WithRates           = gst.WithRates
	SameAsCompany       = gst.SameAsCompany
	FixedReferenceState = gst.FixedReferenceState
	ListStates          = gst.ListStates
	DefaultRates        = gst.DefaultRates
)

// Re-export error types
type (
	ParseError      = model.ParseError
	ValidationError = model.ValidationError
	RenderError     = model.RenderError
)
