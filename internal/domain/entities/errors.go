package entities

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind categorizes conversion errors
type ErrorKind string

const (
	// ErrorParseRecoverable marks malformed input that was repaired. It is
	// logged, never returned from a conversion.
	ErrorParseRecoverable ErrorKind = "parse_recoverable"

	ErrorUnknownTemplate             ErrorKind = "unknown_template"
	ErrorEmptyInput                  ErrorKind = "empty_input"
	ErrorPackagingInvariantViolation ErrorKind = "packaging_invariant_violation"
	ErrorPersistenceFailure          ErrorKind = "persistence_failure"
)

// ConvertError provides detailed error information with categorization
type ConvertError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`

	// Template is set for ErrorUnknownTemplate
	Template string `json:"template,omitempty"`

	// PartPath names the offending package part for ErrorPackagingInvariantViolation
	PartPath string `json:"part_path,omitempty"`

	// SlideIndex is the 0-based deck slide index, -1 when not applicable
	SlideIndex int `json:"slide_index"`

	// Source is the display name of the input document involved
	Source string `json:"source,omitempty"`

	Cause error `json:"-"`
}

func (e *ConvertError) Error() string {
	var details []string
	if e.Template != "" {
		details = append(details, fmt.Sprintf("template %q", e.Template))
	}
	if e.Source != "" {
		details = append(details, "source "+e.Source)
	}
	if e.PartPath != "" {
		details = append(details, "part "+e.PartPath)
	}
	if e.SlideIndex >= 0 {
		details = append(details, fmt.Sprintf("slide %d", e.SlideIndex+1))
	}

	msg := fmt.Sprintf("%s error: %s", e.Kind, e.Message)
	if len(details) > 0 {
		msg += " (" + strings.Join(details, ", ") + ")"
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *ConvertError) Unwrap() error {
	return e.Cause
}

// NewConvertError creates an error of the given kind with no slide index
func NewConvertError(kind ErrorKind, message string) *ConvertError {
	return &ConvertError{Kind: kind, Message: message, SlideIndex: -1}
}

// UnknownTemplateError reports a template name absent from the theme table
func UnknownTemplateError(name string) *ConvertError {
	e := NewConvertError(ErrorUnknownTemplate, "unknown template")
	e.Template = name
	return e
}

// EmptyInputError reports that there was nothing to convert
func EmptyInputError(message string) *ConvertError {
	return NewConvertError(ErrorEmptyInput, message)
}

// PackagingError reports a violated package invariant for the given part
func PackagingError(partPath, message string) *ConvertError {
	e := NewConvertError(ErrorPackagingInvariantViolation, message)
	e.PartPath = partPath
	return e
}

// PersistenceError reports a failure to write artifacts
func PersistenceError(message string, cause error) *ConvertError {
	e := NewConvertError(ErrorPersistenceFailure, message)
	e.Cause = cause
	return e
}

// IsKind reports whether any error in err's chain is a ConvertError of the given kind
func IsKind(err error, kind ErrorKind) bool {
	var ce *ConvertError
	if errors.As(err, &ce) {
		return ce.Kind == kind
	}
	return false
}
