package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/rezonia/gst-invoice/internal/archive"
	"github.com/rezonia/gst-invoice/internal/assembler"
	ierr "github.com/rezonia/gst-invoice/internal/errors"
	"github.com/rezonia/gst-invoice/internal/gst"
	"github.com/rezonia/gst-invoice/internal/logger"
	"github.com/rezonia/gst-invoice/internal/model"
	"github.com/rezonia/gst-invoice/internal/pdf"
	"github.com/rezonia/gst-invoice/internal/validation"
)

// Response headers set by the PDF endpoint
const (
	HeaderArchiveKey      = "X-Archive-Key"
	HeaderArchiveLocation = "X-Archive-Location"
	HeaderPageCount       = "X-Page-Count"
)

// Config holds server configuration
type Config struct {
	Address      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Debug        bool
}

// Server represents the HTTP API server
type Server struct {
	config    *Config
	router    *gin.Engine
	assembler *assembler.Assembler
	encoder   *pdf.Encoder
	archive   archive.Store
	logger    *logger.Logger
}

// Option configures the server
type Option func(*Server)

func WithAssembler(a *assembler.Assembler) Option {
	return func(s *Server) {
		if a != nil {
			s.assembler = a
		}
	}
}

func WithEncoder(e *pdf.Encoder) Option {
	return func(s *Server) {
		if e != nil {
			s.encoder = e
		}
	}
}

// WithArchive stores every generated PDF; a nil store disables archival
func WithArchive(store archive.Store) Option {
	return func(s *Server) {
		s.archive = store
	}
}

func WithLogger(l *logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewServer creates a new API server
func NewServer(config *Config, opts ...Option) *Server {
	if !config.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		config:    config,
		router:    gin.New(),
		assembler: assembler.New(),
		logger:    logger.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.encoder == nil {
		// no options, cannot fail
		s.encoder, _ = pdf.NewEncoder()
	}

	s.router.Use(gin.Recovery())
	if config.Debug {
		s.router.Use(requestLogger(s.logger))
	}
	s.router.Use(errorHandler(s.logger))

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)

	v1 := s.router.Group("/api/v1")
	{
		v1.GET("/states", s.handleStates)
		v1.POST("/tax", s.handleTax)
		v1.POST("/words", s.handleWords)
		v1.POST("/info", s.handleInfo)

		invoices := v1.Group("/invoices")
		invoices.POST("/instructions", s.handleInstructions)
		invoices.POST("/pdf", s.handlePDF)
		invoices.POST("/validate", s.handleValidate)
		invoices.GET("/archive/*key", s.handleArchived)
	}
}

// Run starts the HTTP server and shuts it down gracefully when ctx is done
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.config.Address,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Infow("listening", "address", s.config.Address, "archive", s.archive != nil)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Handler returns the http.Handler for use with custom servers
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleStates(c *gin.Context) {
	c.JSON(http.StatusOK, StatesResponse{States: gst.ListStates()})
}

// bindBody decodes a non-empty JSON body into v
func bindBody(c *gin.Context, v any) error {
	body, err := c.GetRawData()
	if err != nil {
		return ierr.WithError(err).
			WithHint("failed to read request body").
			Mark(ierr.ErrInvalidInput)
	}

	if len(strings.TrimSpace(string(body))) == 0 {
		return ierr.NewError("empty body").
			WithHint("empty request body").
			Mark(ierr.ErrInvalidInput)
	}

	if err := binding.JSON.BindBody(body, v); err != nil {
		return ierr.WithError(model.NewParseError("request", "", "invalid JSON", err)).
			WithHintf("request body is not valid JSON: %v", err).
			Mark(ierr.ErrInvalidInput)
	}
	return nil
}

func (s *Server) handleTax(c *gin.Context) {
	var req TaxRequest
	if err := bindBody(c, &req); err != nil {
		_ = c.Error(err)
		return
	}
	if req.Subtotal == nil {
		_ = c.Error(ierr.NewError("subtotal missing").
			WithHint("subtotal is required").
			Mark(ierr.ErrInvalidInput))
		return
	}

	tax := s.assembler.Engine().ComputeWithOverrides(*req.Subtotal, req.CustomerState, req.CompanyState, req.Rates)
	f := s.assembler.Formatter()

	c.JSON(http.StatusOK, TaxResponse{
		Tax:                 tax,
		GrandTotalFormatted: f.FormatCurrency(tax.GrandTotal),
		AmountInWords:       f.AmountInWords(tax.GrandTotal),
	})
}

func (s *Server) handleWords(c *gin.Context) {
	var req WordsRequest
	if err := bindBody(c, &req); err != nil {
		_ = c.Error(err)
		return
	}
	if req.Amount == nil {
		_ = c.Error(ierr.NewError("amount missing").
			WithHint("amount is required").
			Mark(ierr.ErrInvalidInput))
		return
	}

	f := s.assembler.Formatter()
	c.JSON(http.StatusOK, WordsResponse{
		Amount:    *req.Amount,
		Words:     f.AmountInWords(*req.Amount),
		Formatted: f.FormatCurrency(*req.Amount),
	})
}

func (s *Server) handleInstructions(c *gin.Context) {
	var data model.InvoiceDocument
	if err := bindBody(c, &data); err != nil {
		_ = c.Error(err)
		return
	}

	result := s.assembler.Generate(data)
	c.JSON(http.StatusOK, InstructionsResponse{
		Invoice:  result.Invoice,
		Words:    result.Words,
		Document: result.Document,
	})
}

// handlePDF renders and encodes the invoice. With ?validate=true an invoice
// with validation errors is rejected before rendering.
func (s *Server) handlePDF(c *gin.Context) {
	var data model.InvoiceDocument
	if err := bindBody(c, &data); err != nil {
		_ = c.Error(err)
		return
	}

	if strict, _ := strconv.ParseBool(c.Query("validate")); strict {
		if err := validation.Invoice(&data).Err(); err != nil {
			_ = c.Error(err)
			return
		}
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	result := s.assembler.Generate(data)
	out, err := s.encoder.Encode(ctx, result.Document)
	if err != nil {
		_ = c.Error(ierr.WithError(err).
			WithHint("failed to encode PDF").
			Mark(ierr.ErrRender))
		return
	}

	if s.archive != nil {
		key := archive.Key(result.Invoice.Number, result.Invoice.IssueDate)
		location, err := s.archive.Put(ctx, key, out)
		if err != nil {
			_ = c.Error(err)
			return
		}
		s.logger.Infow("invoice archived", "invoice", result.Invoice.Number, "key", key, "location", location)
		c.Header(HeaderArchiveKey, key)
		c.Header(HeaderArchiveLocation, location)
	}

	c.Header(HeaderPageCount, strconv.Itoa(result.Document.PageCount()))
	c.Header("Content-Disposition", `inline; filename="`+archive.FileName(result.Invoice.Number)+`"`)
	c.Data(http.StatusOK, archive.ContentType, out)
}

func (s *Server) handleValidate(c *gin.Context) {
	var data model.InvoiceDocument
	if err := bindBody(c, &data); err != nil {
		_ = c.Error(err)
		return
	}

	report := validation.Invoice(&data)
	if strict, _ := strconv.ParseBool(c.Query("strict")); strict {
		report = report.Strict()
	}

	c.JSON(http.StatusOK, ValidationResponse{
		Valid:    report.Valid(),
		Errors:   report.ErrorMessages(),
		Warnings: report.WarningMessages(),
	})
}

func (s *Server) handleArchived(c *gin.Context) {
	if s.archive == nil {
		_ = c.Error(ierr.NewError("archive disabled").
			WithHint("invoice archive is not configured").
			Mark(ierr.ErrNotFound))
		return
	}

	key := strings.TrimPrefix(c.Param("key"), "/")
	data, err := s.archive.Get(c.Request.Context(), key)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.Data(http.StatusOK, archive.ContentType, data)
}

// handleInfo inspects an uploaded PDF
func (s *Server) handleInfo(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		_ = c.Error(ierr.WithError(err).
			WithHint("failed to read request body").
			Mark(ierr.ErrInvalidInput))
		return
	}

	if len(body) == 0 {
		_ = c.Error(ierr.NewError("empty body").
			WithHint("empty request body").
			Mark(ierr.ErrInvalidInput))
		return
	}

	info, err := pdf.Inspect(body)
	if err != nil {
		_ = c.Error(ierr.WithError(err).
			WithHint("request body is not a readable PDF").
			Mark(ierr.ErrInvalidInput))
		return
	}
	c.JSON(http.StatusOK, info)
}
