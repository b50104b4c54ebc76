package errors_test

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	ierr "github.com/rezonia/gst-invoice/internal/errors"
	"github.com/rezonia/gst-invoice/internal/model"
)

func TestHTTPStatusFromErr(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"invalid input", ierr.NewError("bad json").Mark(ierr.ErrInvalidInput), http.StatusBadRequest},
		{"validation", ierr.NewError("missing gstin").Mark(ierr.ErrValidation), http.StatusUnprocessableEntity},
		{"storage", ierr.NewError("s3 down").Mark(ierr.ErrStorage), http.StatusBadGateway},
		{"render", ierr.NewError("encode").Mark(ierr.ErrRender), http.StatusInternalServerError},
		{"conflict", ierr.NewError("key taken").Mark(ierr.ErrConflict), http.StatusConflict},
		{"unmarked", stderrors.New("plain"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ierr.HTTPStatusFromErr(tt.err))
		})
	}
}

func TestBuilder_WrapsCause(t *testing.T) {
	cause := model.NewParseError("body", "items", "not an array", nil)

	err := ierr.WithError(cause).
		WithHint("The request body is not a valid invoice").
		Mark(ierr.ErrInvalidInput)

	assert.True(t, ierr.IsInvalidInput(err))
	assert.False(t, ierr.IsValidation(err))

	var pe *model.ParseError
	assert.True(t, ierr.As(err, &pe))
	assert.Equal(t, "items", pe.Field)

	assert.Equal(t, "The request body is not a valid invoice", ierr.Hint(err))
	assert.Equal(t, ierr.ErrCodeInvalidInput, ierr.Code(err))
}

func TestHint_FallsBackToMessage(t *testing.T) {
	err := fmt.Errorf("boom")
	assert.Equal(t, "boom", ierr.Hint(err))
	assert.Equal(t, ierr.ErrCodeSystem, ierr.Code(err))
}

func TestInternalError(t *testing.T) {
	assert.Equal(t, "not_found: resource not found", ierr.ErrNotFound.Error())
	assert.True(t, ierr.IsNotFound(ierr.NewError("no such key").Mark(ierr.ErrNotFound)))
	assert.True(t, ierr.Is(ierr.WithError(ierr.ErrSystem).WithMessage("ctx").Error(), ierr.ErrSystem))
}

func TestIsConflict(t *testing.T) {
	err := ierr.WithError(os.ErrExist).WithHint("already archived").Mark(ierr.ErrConflict)
	assert.True(t, ierr.IsConflict(err))
	assert.False(t, ierr.IsNotFound(err))
	assert.Equal(t, ierr.ErrCodeConflict, ierr.Code(err))
}

func TestDetails(t *testing.T) {
	err := ierr.NewError("bad rows").
		WithReportableDetails(map[string]any{"errors": 2}).
		Mark(ierr.ErrValidation)

	assert.Equal(t, map[string]any{"errors": float64(2)}, ierr.Details(err))
	assert.Empty(t, ierr.Details(stderrors.New("plain")))
}
