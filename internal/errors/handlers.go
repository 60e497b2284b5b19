// Interface-specific error handling. The pipeline has a single terminal
// surface, so only a CLI handler is provided; it formats AppErrors by
// severity and optionally logs the cause chain for debugging.
package errors

import (
	"fmt"
	"log/slog"
)

// ErrorHandler provides interface-specific error handling
type ErrorHandler interface {
	HandleError(err error) error
	FormatError(err error) string
}

// CLIErrorHandler handles errors for the command-line interface
type CLIErrorHandler struct {
	Verbose bool
	Logger  *slog.Logger
}

// NewCLIErrorHandler creates a new CLI error handler
func NewCLIErrorHandler(verbose bool, logger *slog.Logger) *CLIErrorHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorHandler{
		Verbose: verbose,
		Logger:  logger,
	}
}

// HandleError logs the error and returns a formatted version for display
func (h *CLIErrorHandler) HandleError(err error) error {
	appErr := GetAppError(err)

	if h.Verbose {
		h.Logger.Error("command failed",
			"code", string(appErr.Code),
			"severity", string(appErr.Severity),
			"error", appErr.Error())
		if appErr.Cause != nil {
			h.Logger.Error("caused by", "cause", appErr.Cause)
		}
	}

	return fmt.Errorf("%s", h.FormatError(appErr))
}

// FormatError formats an error for CLI display
func (h *CLIErrorHandler) FormatError(err error) string {
	appErr := GetAppError(err)

	switch appErr.Severity {
	case SeverityCritical:
		return fmt.Sprintf("CRITICAL: %s", appErr.Message)
	case SeverityError:
		return fmt.Sprintf("ERROR: %s", appErr.Message)
	case SeverityWarning:
		return fmt.Sprintf("WARNING: %s", appErr.Message)
	case SeverityInfo:
		return fmt.Sprintf("INFO: %s", appErr.Message)
	default:
		return appErr.Message
	}
}
