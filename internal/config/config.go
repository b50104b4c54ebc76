package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/rezonia/gst-invoice/internal/amount"
	"github.com/rezonia/gst-invoice/internal/gst"
	"github.com/rezonia/gst-invoice/internal/layout"
)

// EnvPrefix prefixes every environment override, e.g. GSTINVOICE_TAX_POLICY
const EnvPrefix = "GSTINVOICE"

type Configuration struct {
	Log      LogConfig      `mapstructure:"log"`
	Page     PageConfig     `mapstructure:"page"`
	Tax      TaxConfig      `mapstructure:"tax"`
	Words    WordsConfig    `mapstructure:"words"`
	Currency CurrencyConfig `mapstructure:"currency"`
	PDF      PDFConfig      `mapstructure:"pdf"`
	Server   ServerConfig   `mapstructure:"server"`
	Archive  ArchiveConfig  `mapstructure:"archive"`
}

type LogConfig struct {
	Level string `mapstructure:"level" validate:"omitempty,oneof=debug info warn error"`
}

type PageConfig struct {
	Size   string  `mapstructure:"size" validate:"required"`
	Margin float64 `mapstructure:"margin" validate:"gte=0,lte=40"`
}

type TaxConfig struct {
	Policy         string `mapstructure:"policy" validate:"oneof=same_as_company fixed_reference"`
	ReferenceState string `mapstructure:"reference_state" validate:"len=2,numeric"`
	CGST           string `mapstructure:"cgst" validate:"required,numeric"`
	SGST           string `mapstructure:"sgst" validate:"required,numeric"`
	IGST           string `mapstructure:"igst" validate:"required,numeric"`
}

type WordsConfig struct {
	Fraction string `mapstructure:"fraction" validate:"oneof=truncate round"`
}

type CurrencyConfig struct {
	// Symbol overrides the prefix; empty picks "₹" with a UTF-8 font and
	// "Rs. " with the core fonts, which lack the rupee glyph
	Symbol string `mapstructure:"symbol"`
}

type PDFConfig struct {
	FontFile   string `mapstructure:"font_file"`
	FontFamily string `mapstructure:"font_family"`
}

type ServerConfig struct {
	Address      string        `mapstructure:"address" validate:"required"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Debug        bool          `mapstructure:"debug"`
}

type ArchiveConfig struct {
	Kind         string `mapstructure:"kind" validate:"oneof=none local s3"`
	Dir          string `mapstructure:"dir" validate:"required_if=Kind local"`
	Bucket       string `mapstructure:"bucket" validate:"required_if=Kind s3"`
	Region       string `mapstructure:"region"`
	Prefix       string `mapstructure:"prefix"`
	Endpoint     string `mapstructure:"endpoint" validate:"omitempty,url"`
	UsePathStyle bool   `mapstructure:"use_path_style"`

	// Static credentials for S3-compatible services; empty uses the AWS chain
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key" validate:"required_with=AccessKeyID"`
}

// Binding maps a command-line flag onto a configuration key
type Binding struct {
	Key  string
	Flag *pflag.Flag
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("page.size", "A4")
	v.SetDefault("page.margin", 10)
	v.SetDefault("tax.policy", string(gst.PolicySameAsCompany))
	v.SetDefault("tax.reference_state", gst.DefaultStateCode)
	v.SetDefault("tax.cgst", "9")
	v.SetDefault("tax.sgst", "9")
	v.SetDefault("tax.igst", "18")
	v.SetDefault("words.fraction", string(amount.FractionTruncate))
	v.SetDefault("currency.symbol", "")
	v.SetDefault("pdf.font_file", "")
	v.SetDefault("pdf.font_family", "")
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "2m")
	v.SetDefault("server.debug", false)
	v.SetDefault("archive.kind", "none")
	v.SetDefault("archive.dir", "")
	v.SetDefault("archive.bucket", "")
	v.SetDefault("archive.region", "")
	v.SetDefault("archive.prefix", "invoices/")
	v.SetDefault("archive.endpoint", "")
	v.SetDefault("archive.use_path_style", false)
	v.SetDefault("archive.access_key_id", "")
	v.SetDefault("archive.secret_access_key", "")
}

// Load reads defaults, then an optional config file (configFile, or
// gst-invoice.yaml in the usual places), then GSTINVOICE_* environment
// variables (a .env file is loaded first when present), then bound flags
// that were set explicitly.
func Load(configFile string, bindings ...Binding) (*Configuration, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("gst-invoice")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("$HOME/.config/gst-invoice")
		v.AddConfigPath("/etc/gst-invoice")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	for _, b := range bindings {
		if b.Flag == nil {
			continue
		}
		if err := v.BindPFlag(b.Key, b.Flag); err != nil {
			return nil, fmt.Errorf("bind flag %s: %w", b.Key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) || configFile != "" {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Default returns the configuration used when nothing is set
func Default() *Configuration {
	v := viper.New()
	setDefaults(v)
	var config Configuration
	_ = v.Unmarshal(&config)
	return &config
}

func (c Configuration) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := layout.PageFor(c.Page.Size); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if !gst.IsValidStateCode(c.Tax.ReferenceState) {
		return fmt.Errorf("invalid config: tax.reference_state %q is not a registered state code", c.Tax.ReferenceState)
	}
	if _, err := c.Tax.Rates(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// PageLayout resolves the page preset with the configured margin
func (c Configuration) PageLayout() (layout.Page, error) {
	p, err := layout.PageFor(c.Page.Size)
	if err != nil {
		return layout.Page{}, err
	}
	return p.WithMargin(c.Page.Margin), nil
}

// Rates parses the configured percentages; a negative rate is an error
func (t TaxConfig) Rates() (gst.RateTable, error) {
	var r gst.RateTable
	var err error
	if r.CGST, err = parseRate("tax.cgst", t.CGST); err != nil {
		return r, err
	}
	if r.SGST, err = parseRate("tax.sgst", t.SGST); err != nil {
		return r, err
	}
	if r.IGST, err = parseRate("tax.igst", t.IGST); err != nil {
		return r, err
	}
	return r, nil
}

func parseRate(key, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return d, fmt.Errorf("%s: %w", key, err)
	}
	if d.IsNegative() {
		return d, fmt.Errorf("%s must not be negative, got %s", key, value)
	}
	return d, nil
}

// Engine builds the tax engine from the policy and rate settings
func (t TaxConfig) Engine() (*gst.Engine, error) {
	policy, err := gst.ParsePolicy(t.Policy, t.ReferenceState)
	if err != nil {
		return nil, err
	}
	rates, err := t.Rates()
	if err != nil {
		return nil, err
	}
	return gst.NewEngine(gst.WithPolicy(policy), gst.WithRates(rates)), nil
}

// Formatter builds the currency formatter
func (c Configuration) Formatter() (amount.Formatter, error) {
	mode, err := amount.ParseFractionMode(c.Words.Fraction)
	if err != nil {
		return amount.Formatter{}, err
	}

	symbol := c.Currency.Symbol
	if symbol == "" {
		symbol = "Rs. "
		if c.PDF.FontFile != "" {
			symbol = amount.RupeeSymbol
		}
	}
	return amount.Formatter{Symbol: symbol, Fraction: mode}, nil
}
