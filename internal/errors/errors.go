// Package errors provides unified error handling for the deck generation
// pipeline.
//
// It standardizes error representation across the capture and build paths:
// every failure carries a code, a severity, and a category, so callers can
// decide between recovering at slide granularity and aborting the run.
//
// Propagation contract: everything except setup errors is recovered at
// slide granularity. Extraction failures skip the element, missing
// templates and execution failures skip the slide, content mismatches are
// reconciled with a warning. Only a setup error (unreadable source
// document, unreachable template store) terminates the whole pipeline.
//
// Usage:
//   - Create errors with the constructor functions (TemplateNotFoundError,
//     ExecutionError, ...) or wrap existing errors with Wrap().
//   - Classify with GetAppError()/IsAppError(); IsFatal() reports whether
//     the error must abort the run.
//   - Format for terminal display with CLIErrorHandler in handlers.go.
package errors

import (
	"fmt"
	"time"
)

// ErrorCode represents standardized error codes
type ErrorCode string

const (
	// Pipeline errors
	ErrCodeExtraction       ErrorCode = "EXTRACTION_ERROR"
	ErrCodeTemplateNotFound ErrorCode = "TEMPLATE_NOT_FOUND"
	ErrCodeContentMismatch  ErrorCode = "CONTENT_MISMATCH"
	ErrCodeExecution        ErrorCode = "EXECUTION_ERROR"
	ErrCodeSetup            ErrorCode = "SETUP_ERROR"

	// Validation errors
	ErrCodeValidation   ErrorCode = "VALIDATION_ERROR"
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"

	// Storage errors
	ErrCodeStorageFailure ErrorCode = "STORAGE_FAILURE"
	ErrCodeFileCorrupted  ErrorCode = "FILE_CORRUPTED"

	// System errors
	ErrCodeInternalError ErrorCode = "INTERNAL_ERROR"
)

// ErrorSeverity represents the severity level of an error
type ErrorSeverity string

const (
	SeverityInfo     ErrorSeverity = "info"
	SeverityWarning  ErrorSeverity = "warning"
	SeverityError    ErrorSeverity = "error"
	SeverityCritical ErrorSeverity = "critical"
)

// ErrorCategory represents the category of an error
type ErrorCategory string

const (
	CategoryExtraction ErrorCategory = "extraction"
	CategoryContent    ErrorCategory = "content"
	CategoryExecution  ErrorCategory = "execution"
	CategoryStorage    ErrorCategory = "storage"
	CategoryValidation ErrorCategory = "validation"
	CategorySystem     ErrorCategory = "system"
)

// AppError represents a standardized application error
type AppError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Severity  ErrorSeverity          `json:"severity"`
	Category  ErrorCategory          `json:"category"`
	Cause     error                  `json:"-"`
	Context   map[string]interface{} `json:"context,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Retryable bool                   `json:"retryable"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// IsRetryable returns whether the error is retryable
func (e *AppError) IsRetryable() bool {
	return e.Retryable
}

// IsFatal reports whether the error must abort the whole run rather than
// being recovered at slide granularity
func (e *AppError) IsFatal() bool {
	return e.Code == ErrCodeSetup || e.Severity == SeverityCritical
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// WithDetails adds details to the error
func (e *AppError) WithDetails(details string) *AppError {
	e.Details = details
	return e
}

// NewAppError creates a new application error
func NewAppError(code ErrorCode, message string) *AppError {
	category, severity := categorizeError(code)
	return &AppError{
		Code:      code,
		Message:   message,
		Severity:  severity,
		Category:  category,
		Timestamp: time.Now(),
		Retryable: isRetryable(code),
	}
}

// Wrap wraps an existing error with application error context
func Wrap(err error, code ErrorCode, message string) *AppError {
	category, severity := categorizeError(code)
	return &AppError{
		Code:      code,
		Message:   message,
		Severity:  severity,
		Category:  category,
		Cause:     err,
		Timestamp: time.Now(),
		Retryable: isRetryable(code),
	}
}

// categorizeError determines the category and severity based on error code
func categorizeError(code ErrorCode) (ErrorCategory, ErrorSeverity) {
	switch code {
	case ErrCodeExtraction:
		return CategoryExtraction, SeverityWarning

	case ErrCodeTemplateNotFound, ErrCodeContentMismatch:
		return CategoryContent, SeverityWarning

	case ErrCodeExecution:
		return CategoryExecution, SeverityError

	case ErrCodeSetup:
		return CategorySystem, SeverityCritical

	case ErrCodeValidation, ErrCodeInvalidInput:
		return CategoryValidation, SeverityWarning

	case ErrCodeStorageFailure, ErrCodeFileCorrupted:
		return CategoryStorage, SeverityError

	case ErrCodeInternalError:
		return CategorySystem, SeverityCritical

	default:
		return CategorySystem, SeverityError
	}
}

// isRetryable determines if an error is retryable based on its code
func isRetryable(code ErrorCode) bool {
	switch code {
	case ErrCodeExecution, ErrCodeStorageFailure:
		return true
	default:
		return false
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// GetAppError extracts an AppError from an error, or converts it to one
func GetAppError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return Wrap(err, ErrCodeInternalError, "Internal error occurred")
}

// Common error constructors for frequently used errors

// TemplateNotFoundError reports a slide type absent from the store
func TemplateNotFoundError(slideType string) *AppError {
	return NewAppError(ErrCodeTemplateNotFound, fmt.Sprintf("template '%s' not found", slideType))
}

// ContentMismatchError reports a payload whose length diverges from the
// template's placeholder count
func ContentMismatchError(slideType string, want, got int) *AppError {
	return NewAppError(ErrCodeContentMismatch,
		fmt.Sprintf("template '%s' has %d placeholders but payload has %d entries", slideType, want, got))
}

// ExecutionError reports a remote execution failure for one slide
func ExecutionError(operation string, err error) *AppError {
	return Wrap(err, ErrCodeExecution, fmt.Sprintf("execution failed: %s", operation))
}

// SetupError reports a startup failure that aborts the entire run
func SetupError(operation string, err error) *AppError {
	return Wrap(err, ErrCodeSetup, fmt.Sprintf("setup failed: %s", operation))
}

func ValidationError(message string) *AppError {
	return NewAppError(ErrCodeValidation, message)
}

func StorageError(operation string, err error) *AppError {
	return Wrap(err, ErrCodeStorageFailure, fmt.Sprintf("storage operation failed: %s", operation))
}
