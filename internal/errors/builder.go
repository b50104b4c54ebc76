package errors

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
)

// ErrorBuilder provides a fluent interface for building errors.
// Mark must be the last call in the chain.
type ErrorBuilder struct {
	err error
}

// NewError starts a new error builder chain
func NewError(msg string) *ErrorBuilder {
	return &ErrorBuilder{err: errors.New(msg)}
}

// WithError starts a builder chain with an existing error
func WithError(err error) *ErrorBuilder {
	return &ErrorBuilder{err: err}
}

// WithMessage adds internal context to the error
func (b *ErrorBuilder) WithMessage(msg string) *ErrorBuilder {
	b.err = errors.WithMessage(b.err, msg)
	return b
}

// WithHint adds a message meant for API and CLI users
func (b *ErrorBuilder) WithHint(hint string) *ErrorBuilder {
	b.err = errors.WithHint(b.err, hint)
	return b
}

// WithHintf is WithHint with formatting
func (b *ErrorBuilder) WithHintf(format string, args ...any) *ErrorBuilder {
	b.err = errors.WithHintf(b.err, format, args...)
	return b
}

// WithReportableDetails adds structured details
func (b *ErrorBuilder) WithReportableDetails(details map[string]any) *ErrorBuilder {
	marshaled, err := json.Marshal(details)
	if err != nil {
		return b
	}
	b.err = errors.WithSafeDetails(b.err, "__json__:%s", errors.Safe(string(marshaled)))
	return b
}

// Mark marks the error with a sentinel and returns it
func (b *ErrorBuilder) Mark(reference error) error {
	b.err = errors.Mark(b.err, reference)
	return b.err
}

// Error returns the error built so far
func (b *ErrorBuilder) Error() error {
	return b.err
}
