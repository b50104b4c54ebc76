package model

import "fmt"

// ParseError represents failures decoding an invoice data object
type ParseError struct {
	Source  string
	Field   string
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %s (%v)", e.Source, e.Field, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Source, e.Field, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// NewParseError creates a new parse error
func NewParseError(source, field, message string, cause error) *ParseError {
	return &ParseError{
		Source:  source,
		Field:   field,
		Message: message,
		Cause:   cause,
	}
}

// ValidationError is one failed business check. Field is a dotted path
// such as "items[2].hsn_sac".
type ValidationError struct {
	Field   string      `json:"field"`
	Value   interface{} `json:"value,omitempty"`
	Rule    string      `json:"rule"`
	Message string      `json:"message"`
}

func (e *ValidationError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("validation failed on %s: %s (value=%v, rule=%s)", e.Field, e.Message, e.Value, e.Rule)
	}
	return fmt.Sprintf("validation failed on %s: %s (rule=%s)", e.Field, e.Message, e.Rule)
}

// NewValidationError creates a new validation error
func NewValidationError(field string, value interface{}, rule, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Rule:    rule,
		Message: message,
	}
}

// RenderError represents failures turning a laid-out document into an
// artifact (image decoding, PDF encoding)
type RenderError struct {
	Stage   string
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("render failed [%s]: %s (%v)", e.Stage, e.Message, e.Cause)
	}
	return fmt.Sprintf("render failed [%s]: %s", e.Stage, e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// NewRenderError creates a new render error
func NewRenderError(stage, message string, cause error) *RenderError {
	return &RenderError{
		Stage:   stage,
		Message: message,
		Cause:   cause,
	}
}
