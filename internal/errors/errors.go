package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"
)

const (
	ErrCodeInvalidInput = "invalid_input"
	ErrCodeValidation   = "validation_error"
	ErrCodeRender       = "render_error"
	ErrCodeStorage      = "storage_error"
	ErrCodeNotFound     = "not_found"
	ErrCodeConflict     = "conflict"
	ErrCodeSystem       = "system_error"
)

// Sentinels marked onto errors at service boundaries
var (
	ErrInvalidInput = new(ErrCodeInvalidInput, "invalid input")
	ErrValidation   = new(ErrCodeValidation, "validation error")
	ErrRender       = new(ErrCodeRender, "render error")
	ErrStorage      = new(ErrCodeStorage, "storage error")
	ErrNotFound     = new(ErrCodeNotFound, "resource not found")
	ErrConflict     = new(ErrCodeConflict, "resource already exists")
	ErrSystem       = new(ErrCodeSystem, "system error")
)

// checked in order; the first match wins
var statusCodes = []struct {
	err    error
	status int
}{
	{ErrInvalidInput, http.StatusBadRequest},
	{ErrValidation, http.StatusUnprocessableEntity},
	{ErrNotFound, http.StatusNotFound},
	{ErrConflict, http.StatusConflict},
	{ErrRender, http.StatusInternalServerError},
	{ErrStorage, http.StatusBadGateway},
	{ErrSystem, http.StatusInternalServerError},
}

// InternalError is a coded sentinel
type InternalError struct {
	Code    string // Machine-readable error code
	Message string // Human-readable error message
	Err     error  // Underlying error
}

func (e *InternalError) Error() string {
	if e.Err == nil {
		return e.DisplayError()
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Err.Error())
}

func (e *InternalError) DisplayError() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

// Is matches on the code
func (e *InternalError) Is(target error) bool {
	if target == nil {
		return false
	}

	t, ok := target.(*InternalError)
	if !ok {
		return errors.Is(e.Err, target)
	}

	return e.Code == t.Code
}

func new(code string, message string) *InternalError {
	return &InternalError{
		Code:    code,
		Message: message,
	}
}

func Is(err, reference error) bool {
	return errors.Is(err, reference)
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsInvalidInput checks if an error is an invalid input error
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConflict checks if an error is a conflict error
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// HTTPStatusFromErr maps a marked error to a status code
func HTTPStatusFromErr(err error) int {
	for _, sc := range statusCodes {
		if errors.Is(err, sc.err) {
			return sc.status
		}
	}
	return http.StatusInternalServerError
}

// Code returns the code of the sentinel err is marked with, or system_error
func Code(err error) string {
	for _, sc := range statusCodes {
		if errors.Is(err, sc.err) {
			return sc.err.(*InternalError).Code
		}
	}
	return ErrCodeSystem
}

// Hint returns the user-facing hints attached to err, joined, or the error
// message when none were attached
func Hint(err error) string {
	if hints := errors.FlattenHints(err); hints != "" {
		return hints
	}
	return err.Error()
}

// Details merges every map attached with WithReportableDetails
func Details(err error) map[string]any {
	details := make(map[string]any)

	for _, sdp := range errors.GetAllSafeDetails(err) {
		for _, payload := range sdp.SafeDetails {
			jsonStr, ok := strings.CutPrefix(payload, "__json__:")
			if !ok {
				continue
			}
			var m map[string]any
			if err := json.Unmarshal([]byte(jsonStr), &m); err == nil {
				for k, v := range m {
					details[k] = v
				}
			}
		}
	}

	return details
}
