package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestConstructorClassification(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		code     ErrorCode
		category ErrorCategory
		fatal    bool
	}{
		{"setup", SetupError("read source", fmt.Errorf("gone")), ErrCodeSetup, CategorySystem, true},
		{"template not found", TemplateNotFoundError("agenda"), ErrCodeTemplateNotFound, CategoryContent, false},
		{"content mismatch", ContentMismatchError("agenda", 2, 5), ErrCodeContentMismatch, CategoryContent, false},
		{"execution", ExecutionError("apply", fmt.Errorf("rejected")), ErrCodeExecution, CategoryExecution, false},
		{"validation", ValidationError("bad tree"), ErrCodeValidation, CategoryValidation, false},
		{"storage", StorageError("write", fmt.Errorf("disk full")), ErrCodeStorageFailure, CategoryStorage, false},
	}

	for _, tt := range tests {
		if tt.err.Code != tt.code {
			t.Errorf("%s: code = %s, want %s", tt.name, tt.err.Code, tt.code)
		}
		if tt.err.Category != tt.category {
			t.Errorf("%s: category = %s, want %s", tt.name, tt.err.Category, tt.category)
		}
		if tt.err.IsFatal() != tt.fatal {
			t.Errorf("%s: IsFatal() = %v, want %v", tt.name, tt.err.IsFatal(), tt.fatal)
		}
	}
}

func TestContentMismatchMessage(t *testing.T) {
	err := ContentMismatchError("agenda", 2, 5)
	if !strings.Contains(err.Message, "2 placeholders") || !strings.Contains(err.Message, "5 entries") {
		t.Errorf("mismatch message should carry both counts, got %q", err.Message)
	}
}

func TestIsRetryable(t *testing.T) {
	if !ExecutionError("apply", fmt.Errorf("x")).IsRetryable() {
		t.Error("execution failures should be retryable")
	}
	if !StorageError("write", fmt.Errorf("x")).IsRetryable() {
		t.Error("storage failures should be retryable")
	}
	if ValidationError("bad").IsRetryable() {
		t.Error("validation failures must not be retryable")
	}
}

func TestWithContextAndDetails(t *testing.T) {
	err := ValidationError("bad tree").
		WithContext("slide_type", "agenda").
		WithDetails("operation 3 has no variant")

	if err.Context["slide_type"] != "agenda" {
		t.Errorf("context not recorded: %v", err.Context)
	}
	if !strings.Contains(err.Error(), "operation 3 has no variant") {
		t.Errorf("details missing from Error(): %q", err.Error())
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := fmt.Errorf("remote rejected batch")
	err := Wrap(cause, ErrCodeExecution, "apply failed")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped cause not reachable through Unwrap")
	}
}

func TestGetAppError(t *testing.T) {
	appErr := TemplateNotFoundError("agenda")
	if got := GetAppError(appErr); got != appErr {
		t.Error("GetAppError should pass an AppError through unchanged")
	}

	plain := fmt.Errorf("something broke")
	converted := GetAppError(plain)
	if converted.Code != ErrCodeInternalError {
		t.Errorf("plain error converted to code %s, want %s", converted.Code, ErrCodeInternalError)
	}
	if !stderrors.Is(converted, plain) {
		t.Error("converted error should keep the original as cause")
	}
}
