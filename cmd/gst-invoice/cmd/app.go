package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rezonia/gst-invoice/internal/assembler"
	"github.com/rezonia/gst-invoice/internal/model"
	"github.com/rezonia/gst-invoice/internal/pdf"
	"github.com/rezonia/gst-invoice/internal/render"
)

// newEncoder builds the PDF encoder, embedding the configured font if any
func newEncoder() (*pdf.Encoder, error) {
	var opts []pdf.Option
	if cfg.PDF.FontFile != "" {
		opts = append(opts, pdf.WithFontFile(cfg.PDF.FontFamily, cfg.PDF.FontFile))
	}
	return pdf.NewEncoder(opts...)
}

// newAssembler wires engine, formatter and renderer from the configuration.
// Text is measured with the encoder's font metrics.
func newAssembler(enc *pdf.Encoder) (*assembler.Assembler, error) {
	engine, err := cfg.Tax.Engine()
	if err != nil {
		return nil, err
	}
	formatter, err := cfg.Formatter()
	if err != nil {
		return nil, err
	}
	page, err := cfg.PageLayout()
	if err != nil {
		return nil, err
	}

	renderer := render.New(
		render.WithPage(page),
		render.WithMetrics(enc.Measurer()),
		render.WithFormatter(formatter),
		render.WithLogger(log),
	)

	return assembler.New(
		assembler.WithEngine(engine),
		assembler.WithFormatter(formatter),
		assembler.WithRenderer(renderer),
	), nil
}

// readInvoice decodes an invoice from path, or from stdin when path is "-"
func readInvoice(path string) (model.InvoiceDocument, error) {
	var data model.InvoiceDocument

	var r io.Reader
	if path == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return data, fmt.Errorf("failed to open %s: %w", path, err)
		}
		defer f.Close()
		r = f
	}

	dec := json.NewDecoder(r)
	if err := dec.Decode(&data); err != nil {
		return data, model.NewParseError(path, "", "invalid invoice JSON", err)
	}
	return data, nil
}

// collectFiles expands globs and directories, keeping files with one of exts
func collectFiles(args []string, exts ...string) ([]string, error) {
	var files []string

	for _, arg := range args {
		if arg == "-" {
			files = append(files, arg)
			continue
		}

		matches, err := filepath.Glob(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", arg, err)
		}
		if len(matches) == 0 {
			matches = []string{arg}
		}

		for _, match := range matches {
			info, err := os.Stat(match)
			if err != nil {
				return nil, fmt.Errorf("file not found: %s", match)
			}

			if !info.IsDir() {
				files = append(files, match)
				continue
			}

			err = filepath.Walk(match, func(path string, info os.FileInfo, err error) error {
				if err != nil {
					return err
				}
				if !info.IsDir() && hasExt(path, exts) {
					files = append(files, path)
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
		}
	}

	return files, nil
}

func hasExt(path string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
