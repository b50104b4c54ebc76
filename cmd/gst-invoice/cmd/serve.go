package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rezonia/gst-invoice/internal/archive"
	"github.com/rezonia/gst-invoice/internal/config"
	"github.com/rezonia/gst-invoice/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start an HTTP API server for computing tax and rendering invoices.

The API provides endpoints for:
  - GET  /api/v1/states                 - List state codes
  - POST /api/v1/tax                    - Compute the GST breakdown
  - POST /api/v1/words                  - Spell an amount
  - POST /api/v1/info                   - Inspect a PDF
  - POST /api/v1/invoices/instructions  - Lay out an invoice
  - POST /api/v1/invoices/pdf           - Render an invoice to PDF
  - POST /api/v1/invoices/validate      - Validate an invoice
  - GET  /api/v1/invoices/archive/*key  - Fetch an archived PDF
  - GET  /health                        - Health check

Examples:
  # Start server on default port
  gst-invoice serve

  # Archive every rendered PDF to a local directory
  GSTINVOICE_ARCHIVE_KIND=local GSTINVOICE_ARCHIVE_DIR=./archive gst-invoice serve

  # Start in debug mode
  gst-invoice serve --address :9090 --debug`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("address", ":8080", "Server listen address (env: GSTINVOICE_SERVER_ADDRESS)")
	serveCmd.Flags().Bool("debug", false, "Enable debug mode")
	serveCmd.Flags().Duration("read-timeout", 30*time.Second, "HTTP read timeout")
	serveCmd.Flags().Duration("write-timeout", 2*time.Minute, "HTTP write timeout")
}

// serveBindings maps the serve flags onto server.* configuration keys
func serveBindings() []config.Binding {
	f := serveCmd.Flags()
	return []config.Binding{
		{Key: "server.address", Flag: f.Lookup("address")},
		{Key: "server.debug", Flag: f.Lookup("debug")},
		{Key: "server.read_timeout", Flag: f.Lookup("read-timeout")},
		{Key: "server.write_timeout", Flag: f.Lookup("write-timeout")},
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	// Handle graceful shutdown
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := archive.New(ctx, cfg.Archive)
	if err != nil {
		return err
	}
	enc, err := newEncoder()
	if err != nil {
		return err
	}
	asm, err := newAssembler(enc)
	if err != nil {
		return err
	}

	srv := server.NewServer(&server.Config{
		Address:      cfg.Server.Address,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		Debug:        cfg.Server.Debug,
	},
		server.WithAssembler(asm),
		server.WithEncoder(enc),
		server.WithArchive(store),
		server.WithLogger(log),
	)

	log.Infow("starting server",
		"address", cfg.Server.Address,
		"archive", cfg.Archive.Kind,
		"policy", cfg.Tax.Policy,
		"page", cfg.Page.Size,
	)

	if err := srv.Run(ctx); err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr, "Server stopped")
	return nil
}
