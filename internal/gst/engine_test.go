package gst_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/gst-invoice/internal/gst"
	"github.com/rezonia/gst-invoice/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDec(t *testing.T, expected string, got decimal.Decimal, field string) {
	t.Helper()
	assert.True(t, got.Equal(dec(expected)), "%s: got %s, want %s", field, got.String(), expected)
}

func TestCompute_ScenarioA_SameState(t *testing.T) {
	engine := gst.NewEngine()

	tb := engine.Compute(dec("50000"), "27", "27")

	assert.True(t, tb.IsIntraState)
	assertDec(t, "4500", tb.CGSTAmount, "cgst")
	assertDec(t, "4500", tb.SGSTAmount, "sgst")
	assertDec(t, "0", tb.IGSTAmount, "igst")
	assertDec(t, "9000", tb.TotalGST, "total gst")
	assertDec(t, "59000", tb.GrandTotal, "grand total")
	assertDec(t, "9", tb.CGSTRate, "cgst rate")
	assert.Equal(t, "same_as_company", tb.Policy)
}

func TestCompute_ScenarioB_DifferentStates(t *testing.T) {
	engine := gst.NewEngine()

	tb := engine.Compute(dec("50000"), "29", "27")

	assert.False(t, tb.IsIntraState)
	assertDec(t, "9000", tb.IGSTAmount, "igst")
	assertDec(t, "0", tb.CGSTAmount, "cgst")
	assertDec(t, "0", tb.SGSTAmount, "sgst")
	assertDec(t, "59000", tb.GrandTotal, "grand total")
	assertDec(t, "18", tb.IGSTRate, "igst rate")
}

func TestCompute_SameStatePropertyAcrossSubtotals(t *testing.T) {
	engine := gst.NewEngine()
	tolerance := dec("0.01")

	for _, s := range []string{"0", "0.01", "1", "99.99", "333.33", "1234.56", "100000", "9999999.99"} {
		t.Run(s, func(t *testing.T) {
			subtotal := dec(s)
			tb := engine.Compute(subtotal, "29", "29")

			exact := subtotal.Mul(dec("0.18"))
			diff := tb.CGSTAmount.Add(tb.SGSTAmount).Sub(exact).Abs()
			assert.True(t, diff.LessThanOrEqual(tolerance), "cgst+sgst=%s, exact=%s",
				tb.CGSTAmount.Add(tb.SGSTAmount), exact)
			assert.True(t, tb.IGSTAmount.IsZero())
			assert.True(t, tb.GrandTotal.Equal(subtotal.Add(tb.TotalGST)))
		})
	}
}

func TestCompute_InterStatePropertyAcrossSubtotals(t *testing.T) {
	engine := gst.NewEngine()
	tolerance := dec("0.005")

	for _, s := range []string{"0", "0.01", "1", "99.99", "333.33", "1234.56", "100000"} {
		t.Run(s, func(t *testing.T) {
			subtotal := dec(s)
			tb := engine.Compute(subtotal, "07", "33")

			exact := subtotal.Mul(dec("0.18"))
			assert.True(t, tb.IGSTAmount.Sub(exact).Abs().LessThanOrEqual(tolerance))
			assert.True(t, tb.CGSTAmount.IsZero())
			assert.True(t, tb.SGSTAmount.IsZero())
		})
	}
}

func TestCompute_RoundsHalfUp(t *testing.T) {
	engine := gst.NewEngine()

	// 9% of 10.50 = 0.945 -> 0.95
	tb := engine.Compute(dec("10.50"), "27", "27")
	assertDec(t, "0.95", tb.CGSTAmount, "cgst")
	assertDec(t, "0.95", tb.SGSTAmount, "sgst")
	assertDec(t, "12.40", tb.GrandTotal, "grand total")
}

func TestCompute_UnknownCustomerIsInterState(t *testing.T) {
	engine := gst.NewEngine()

	for _, code := range []string{"", "99", "abc", "270"} {
		tb := engine.Compute(dec("1000"), code, "27")
		assert.False(t, tb.IsIntraState, "customer code %q", code)
		assertDec(t, "180", tb.IGSTAmount, "igst")
		assert.Equal(t, "", tb.CustomerState)
	}
}

func TestCompute_UnknownCompanyFallsBackToDefault(t *testing.T) {
	engine := gst.NewEngine()

	tb := engine.Compute(dec("1000"), "27", "")
	assert.True(t, tb.IsIntraState)
	assert.Equal(t, "27", tb.CompanyState)

	tb = engine.Compute(dec("1000"), "29", "not-a-code")
	assert.False(t, tb.IsIntraState)
	assert.Equal(t, "27", tb.CompanyState)
}

func TestCompute_NormalizesCodes(t *testing.T) {
	engine := gst.NewEngine()

	tb := engine.Compute(dec("1000"), " 7", "07")
	assert.True(t, tb.IsIntraState)
	assert.Equal(t, "07", tb.CustomerState)
}

func TestCompute_FixedReferencePolicy(t *testing.T) {
	engine := gst.NewEngine(gst.WithPolicy(gst.FixedReferenceState("27")))

	// Company code is ignored under the historical policy
	tb := engine.Compute(dec("50000"), "27", "29")
	assert.True(t, tb.IsIntraState)
	assertDec(t, "4500", tb.CGSTAmount, "cgst")

	tb = engine.Compute(dec("50000"), "29", "29")
	assert.False(t, tb.IsIntraState)
	assertDec(t, "9000", tb.IGSTAmount, "igst")

	assert.Equal(t, gst.PolicyFixedReference, engine.Policy().Kind)
	assert.Equal(t, "fixed_reference(27)", tb.Policy)
}

func TestCompute_NegativeSubtotalClamped(t *testing.T) {
	tb := gst.NewEngine().Compute(dec("-10"), "27", "27")
	assert.True(t, tb.Subtotal.IsZero())
	assert.True(t, tb.GrandTotal.IsZero())
}

func TestWithRates(t *testing.T) {
	engine := gst.NewEngine(gst.WithRates(gst.RateTable{
		CGST: dec("2.5"),
		SGST: dec("2.5"),
		IGST: dec("5"),
	}))

	tb := engine.Compute(dec("1000"), "27", "27")
	assertDec(t, "25", tb.CGSTAmount, "cgst")

	tb = engine.Compute(dec("1000"), "29", "27")
	assertDec(t, "50", tb.IGSTAmount, "igst")
}

func TestComputeWithOverrides(t *testing.T) {
	engine := gst.NewEngine()
	six := dec("6")

	overrides := &model.RateOverrides{CGST: &six, SGST: &six}

	tb := engine.ComputeWithOverrides(dec("1000"), "27", "27", overrides)
	assertDec(t, "60", tb.CGSTAmount, "cgst")
	assertDec(t, "60", tb.SGSTAmount, "sgst")

	// IGST derived from the overridden halves
	tb = engine.ComputeWithOverrides(dec("1000"), "29", "27", overrides)
	assertDec(t, "12", tb.IGSTRate, "igst rate")
	assertDec(t, "120", tb.IGSTAmount, "igst")

	// Defaults untouched
	assertDec(t, "9", engine.Rates().CGST, "engine cgst")
}

func TestRateTable_ApplyExplicitIGST(t *testing.T) {
	igst := dec("28")
	r := gst.DefaultRates.Apply(&model.RateOverrides{IGST: &igst})
	assertDec(t, "9", r.CGST, "cgst")
	assertDec(t, "28", r.IGST, "igst")

	r = gst.DefaultRates.Apply(nil)
	assertDec(t, "18", r.IGST, "igst")
}

func TestParsePolicy(t *testing.T) {
	p, err := gst.ParsePolicy("", "")
	require.NoError(t, err)
	assert.Equal(t, gst.PolicySameAsCompany, p.Kind)

	p, err = gst.ParsePolicy("fixed_reference", "29")
	require.NoError(t, err)
	assert.Equal(t, "29", p.Reference)

	p, err = gst.ParsePolicy("fixed_reference", "bogus")
	require.NoError(t, err)
	assert.Equal(t, gst.DefaultStateCode, p.Reference)

	_, err = gst.ParsePolicy("coin_flip", "")
	require.Error(t, err)
}
