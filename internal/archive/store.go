// Package archive keeps a copy of every generated PDF, on the local
// filesystem or in an S3 bucket.
package archive

import (
	"context"
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/rezonia/gst-invoice/internal/config"
	ierr "github.com/rezonia/gst-invoice/internal/errors"
	"github.com/rezonia/gst-invoice/internal/model"
)

// ContentType of every archived document
const ContentType = "application/pdf"

// Store persists rendered invoices by key
type Store interface {
	// Put stores data under key and returns where it was written. A key
	// that already holds a document is marked conflict.
	Put(ctx context.Context, key string, data []byte) (string, error)

	// Get returns the stored bytes; a missing key is marked not found
	Get(ctx context.Context, key string) ([]byte, error)

	Exists(ctx context.Context, key string) (bool, error)
}

var unsafeKeyChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// FileName turns an invoice number into "<number>.pdf". Characters outside
// [A-Za-z0-9._-] become "-".
func FileName(number string) string {
	name := strings.Trim(unsafeKeyChars.ReplaceAllString(strings.TrimSpace(number), "-"), "-.")
	if name == "" {
		name = "invoice"
	}
	return name + ".pdf"
}

// Key builds "<yyyy>/<mm>/<number>.pdf" for an invoice; an undated invoice
// goes under "undated/"
func Key(number string, issued model.Date) string {
	dir := "undated"
	if !issued.IsZero() {
		dir = issued.Format("2006/01")
	}
	return path.Join(dir, FileName(number))
}

func conflict(key string, cause error) error {
	var b *ierr.ErrorBuilder
	if cause != nil {
		b = ierr.WithError(cause)
	} else {
		b = ierr.NewError("archive key already exists")
	}
	return b.WithHintf("an invoice is already archived as %s", key).
		WithReportableDetails(map[string]any{"key": key}).
		Mark(ierr.ErrConflict)
}

// New builds the store selected by cfg.Kind. Kind "none" returns a nil Store.
func New(ctx context.Context, cfg config.ArchiveConfig) (Store, error) {
	switch cfg.Kind {
	case "", "none":
		return nil, nil
	case "local":
		return NewLocalStore(cfg.Dir)
	case "s3":
		return NewS3Store(ctx, S3Config{
			Bucket:       cfg.Bucket,
			Region:       cfg.Region,
			Prefix:       cfg.Prefix,
			Endpoint:     cfg.Endpoint,
			UsePathStyle: cfg.UsePathStyle,

			AccessKeyID:     cfg.AccessKeyID,
			SecretAccessKey: cfg.SecretAccessKey,
		})
	default:
		return nil, fmt.Errorf("unknown archive kind: %s", cfg.Kind)
	}
}
