// Package gst classifies a sale as intra- or inter-state and computes the
// CGST/SGST or IGST split.
//
// Example usage:
//
//	engine := gst.NewEngine()
//	tax := engine.Compute(subtotal, customer.StateCode, company.StateCode)
//	fmt.Println(tax.GrandTotal)
package gst

import (
	"github.com/shopspring/decimal"

	money "github.com/rezonia/gst-invoice/internal/decimal"
	"github.com/rezonia/gst-invoice/internal/model"
)

// RateTable holds GST percentages
type RateTable struct {
	CGST decimal.Decimal
	SGST decimal.Decimal
	IGST decimal.Decimal
}

// DefaultRates is the standard 18% slab: 9% CGST + 9% SGST, or 18% IGST
var DefaultRates = RateTable{
	CGST: decimal.NewFromInt(9),
	SGST: decimal.NewFromInt(9),
	IGST: decimal.NewFromInt(18),
}

// Apply merges per-invoice overrides over the table. Overriding only the
// intra-state halves derives IGST as their sum.
func (r RateTable) Apply(o *model.RateOverrides) RateTable {
	if o.IsZero() {
		return r
	}
	out := r
	if o.CGST != nil {
		out.CGST = *o.CGST
	}
	if o.SGST != nil {
		out.SGST = *o.SGST
	}
	switch {
	case o.IGST != nil:
		out.IGST = *o.IGST
	case o.CGST != nil || o.SGST != nil:
		out.IGST = out.CGST.Add(out.SGST)
	}
	return out
}

// Engine computes tax breakdowns
type Engine struct {
	policy       StateComparisonPolicy
	rates        RateTable
	defaultState string
}

// Option configures the engine
type Option func(*Engine)

// WithPolicy sets the state comparison policy
func WithPolicy(p StateComparisonPolicy) Option {
	return func(e *Engine) {
		e.policy = p
	}
}

// WithRates replaces the rate table
func WithRates(r RateTable) Option {
	return func(e *Engine) {
		e.rates = r
	}
}

// WithDefaultState sets the fallback company jurisdiction
func WithDefaultState(code string) Option {
	return func(e *Engine) {
		if normalized, ok := NormalizeStateCode(code); ok {
			e.defaultState = normalized
		}
	}
}

// NewEngine creates an engine using SameAsCompany and DefaultRates
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		policy:       SameAsCompany(),
		rates:        DefaultRates,
		defaultState: DefaultStateCode,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Policy returns the active state comparison policy
func (e *Engine) Policy() StateComparisonPolicy {
	return e.policy
}

// Rates returns the active rate table
func (e *Engine) Rates() RateTable {
	return e.rates
}

// Compute classifies the sale and splits tax using the engine's rate table
func (e *Engine) Compute(subtotal decimal.Decimal, customerStateCode, companyStateCode string) model.TaxBreakdown {
	return e.ComputeWithOverrides(subtotal, customerStateCode, companyStateCode, nil)
}

// ComputeWithOverrides is Compute with per-invoice rate overrides.
// It never fails: an unknown customer code classifies as inter-state and an
// unknown company code falls back to the default jurisdiction.
func (e *Engine) ComputeWithOverrides(subtotal decimal.Decimal, customerStateCode, companyStateCode string, overrides *model.RateOverrides) model.TaxBreakdown {
	rates := e.rates.Apply(overrides)
	subtotal = money.ClampNonNegative(subtotal)

	customer, _ := NormalizeStateCode(customerStateCode)
	company, ok := NormalizeStateCode(companyStateCode)
	if !ok {
		company = e.defaultState
	}

	tb := model.TaxBreakdown{
		Subtotal:      subtotal,
		CGSTAmount:    money.Zero,
		SGSTAmount:    money.Zero,
		IGSTAmount:    money.Zero,
		CGSTRate:      money.Zero,
		SGSTRate:      money.Zero,
		IGSTRate:      money.Zero,
		IsIntraState:  e.policy.IntraState(customer, company),
		CustomerState: customer,
		CompanyState:  company,
		Policy:        e.policy.String(),
	}

	if tb.IsIntraState {
		tb.CGSTRate = rates.CGST
		tb.SGSTRate = rates.SGST
		tb.CGSTAmount = money.Share(subtotal, rates.CGST)
		tb.SGSTAmount = money.Share(subtotal, rates.SGST)
	} else {
		tb.IGSTRate = rates.IGST
		tb.IGSTAmount = money.Share(subtotal, rates.IGST)
	}

	tb.TotalGST = tb.CGSTAmount.Add(tb.SGSTAmount).Add(tb.IGSTAmount)
	tb.GrandTotal = subtotal.Add(tb.TotalGST)
	return tb
}
