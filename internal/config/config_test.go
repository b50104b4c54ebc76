package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/gst-invoice/internal/amount"
	"github.com/rezonia/gst-invoice/internal/config"
	"github.com/rezonia/gst-invoice/internal/gst"
	"github.com/rezonia/gst-invoice/internal/layout"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gst-invoice.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := config.Default()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "A4", cfg.Page.Size)
	assert.Equal(t, "same_as_company", cfg.Tax.Policy)
	assert.Equal(t, "27", cfg.Tax.ReferenceState)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "none", cfg.Archive.Kind)

	page, err := cfg.PageLayout()
	require.NoError(t, err)
	assert.Equal(t, layout.A4, page)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
page:
  size: a5
  margin: 8
tax:
  policy: fixed_reference
  reference_state: "27"
  cgst: "6"
  sgst: "6"
  igst: "12"
words:
  fraction: round
archive:
  kind: local
  dir: /tmp/invoices
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	page, err := cfg.PageLayout()
	require.NoError(t, err)
	assert.Equal(t, 8.0, page.Margin)
	assert.Equal(t, layout.A5.Width, page.Width)

	engine, err := cfg.Tax.Engine()
	require.NoError(t, err)
	assert.Equal(t, gst.PolicyFixedReference, engine.Policy().Kind)
	assert.True(t, engine.Rates().IGST.Equal(decimal.NewFromInt(12)))

	f, err := cfg.Formatter()
	require.NoError(t, err)
	assert.Equal(t, amount.FractionRound, f.Fraction)
	assert.Equal(t, "local", cfg.Archive.Kind)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "tax:\n  policy: fixed_reference\n")
	t.Setenv("GSTINVOICE_TAX_POLICY", "same_as_company")
	t.Setenv("GSTINVOICE_SERVER_ADDRESS", ":9090")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "same_as_company", cfg.Tax.Policy)
	assert.Equal(t, ":9090", cfg.Server.Address)
}

func TestLoad_FlagBinding(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("page-size", "A4", "")
	require.NoError(t, fs.Parse([]string{"--page-size", "letter"}))

	cfg, err := config.Load(writeConfig(t, "log:\n  level: debug\n"),
		config.Binding{Key: "page.size", Flag: fs.Lookup("page-size")},
	)
	require.NoError(t, err)
	assert.Equal(t, "letter", cfg.Page.Size)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown policy", "tax:\n  policy: coin_flip\n"},
		{"unknown page", "page:\n  size: tabloid\n"},
		{"bad rate", "tax:\n  cgst: nine\n"},
		{"negative cgst", "tax:\n  cgst: \"-9\"\n"},
		{"negative igst", "tax:\n  igst: \"-0.5\"\n"},
		{"unregistered reference", "tax:\n  reference_state: \"99\"\n"},
		{"s3 without bucket", "archive:\n  kind: s3\n"},
		{"local without dir", "archive:\n  kind: local\n"},
		{"bad log level", "log:\n  level: loud\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestValidate_NegativeRates(t *testing.T) {
	for _, key := range []string{"cgst", "sgst", "igst"} {
		t.Run(key, func(t *testing.T) {
			cfg := config.Default()
			switch key {
			case "cgst":
				cfg.Tax.CGST = "-9"
			case "sgst":
				cfg.Tax.SGST = "-9"
			case "igst":
				cfg.Tax.IGST = "-9"
			}

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "tax."+key+" must not be negative")

			_, err = cfg.Tax.Engine()
			assert.Error(t, err)
		})
	}

	cfg := config.Default()
	cfg.Tax.CGST = "0"
	assert.NoError(t, cfg.Validate(), "zero is a valid rate")
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestFormatter_Symbol(t *testing.T) {
	cfg := config.Default()

	f, err := cfg.Formatter()
	require.NoError(t, err)
	assert.Equal(t, "Rs. ", f.Symbol)

	cfg.PDF.FontFile = "/fonts/NotoSans-Regular.ttf"
	f, err = cfg.Formatter()
	require.NoError(t, err)
	assert.Equal(t, amount.RupeeSymbol, f.Symbol)

	cfg.Currency.Symbol = "INR "
	f, err = cfg.Formatter()
	require.NoError(t, err)
	assert.Equal(t, "INR ", f.Symbol)
}
