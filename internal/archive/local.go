package archive

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	ierr "github.com/rezonia/gst-invoice/internal/errors"
)

// LocalStore writes documents below a root directory
type LocalStore struct {
	root string
}

// NewLocalStore creates root when it does not exist
func NewLocalStore(root string) (*LocalStore, error) {
	if root == "" {
		return nil, fmt.Errorf("archive directory is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create archive directory: %w", err)
	}
	return &LocalStore{root: root}, nil
}

func (s *LocalStore) path(key string) (string, error) {
	full := filepath.Join(s.root, filepath.FromSlash(key))
	rel, err := filepath.Rel(s.root, full)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", ierr.NewError("key escapes the archive directory").
			WithHintf("invalid archive key %q", key).
			Mark(ierr.ErrInvalidInput)
	}
	return full, nil
}

// Put writes through a temporary file so readers never see partial output.
// An existing key is never replaced; the error is marked ErrConflict.
func (s *LocalStore) Put(ctx context.Context, key string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	full, err := s.path(key)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", ierr.WithError(err).WithMessage("create archive directory").Mark(ierr.ErrStorage)
	}

	tmp, err := os.CreateTemp(filepath.Dir(full), ".tmp-*")
	if err != nil {
		return "", ierr.WithError(err).WithMessage("create temp file").Mark(ierr.ErrStorage)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", ierr.WithError(err).WithMessage("write archive file").Mark(ierr.ErrStorage)
	}
	if err := tmp.Close(); err != nil {
		return "", ierr.WithError(err).WithMessage("close archive file").Mark(ierr.ErrStorage)
	}
	// link fails when full exists, so two writers cannot both claim a key
	if err := os.Link(tmp.Name(), full); err != nil {
		if os.IsExist(err) {
			return "", conflict(key, err)
		}
		return "", ierr.WithError(err).WithMessage("move archive file").Mark(ierr.ErrStorage)
	}

	return full, nil
}

func (s *LocalStore) Get(ctx context.Context, key string) ([]byte, error) {
	full, err := s.path(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(full)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ierr.WithError(err).
				WithHintf("archived invoice %s not found", key).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).WithMessage("read archive file").Mark(ierr.ErrStorage)
	}
	return data, nil
}

func (s *LocalStore) Exists(ctx context.Context, key string) (bool, error) {
	full, err := s.path(key)
	if err != nil {
		return false, err
	}

	if _, err := os.Stat(full); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, ierr.WithError(err).WithMessage("stat archive file").Mark(ierr.ErrStorage)
	}
	return true, nil
}
