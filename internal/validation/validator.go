// Package validation checks captured templates for well-formedness before
// they are stored or indexed.
//
// The load-bearing invariant is the placeholder count: the number of
// length budgets a template carries must equal the number of replace-text
// operations in its tree, in matching order. A template violating it would
// silently misalign generated content during instantiation, so violations
// are rejected at save time and skipped at catalog time.
package validation

import (
	"fmt"
	"strings"

	"deckgen/internal/errors"
	"deckgen/internal/models"
)

// ValidationError represents one template validation failure
type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationResult represents the result of validating a template
type ValidationResult struct {
	Valid    bool              `json:"valid"`
	Errors   []ValidationError `json:"errors,omitempty"`
	Warnings []string          `json:"warnings,omitempty"`
}

func (r *ValidationResult) addError(field, code, message string) {
	r.Valid = false
	r.Errors = append(r.Errors, ValidationError{Field: field, Code: code, Message: message})
}

// ToAppError converts a failed validation into an AppError
func (r *ValidationResult) ToAppError() *errors.AppError {
	if r.Valid {
		return nil
	}
	messages := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		messages[i] = e.Message
	}
	return errors.ValidationError(strings.Join(messages, "; "))
}

// ValidateTemplate checks a template's structure
func ValidateTemplate(t *models.Template) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if strings.TrimSpace(t.SlideType) == "" {
		result.addError("slide_type", "REQUIRED_FIELD_MISSING", "slide type must not be empty")
	}

	if len(t.Operations) == 0 {
		result.addError("operations", "EMPTY_OPERATION_TREE", "operation tree must not be empty")
		return result
	}

	if t.Operations[0].Duplicate == nil {
		result.addError("operations", "MISSING_DUPLICATE",
			"first operation must duplicate the source slide")
	} else if len(t.Operations[0].Duplicate.IDMapping) != 1 {
		result.addError("operations", "INVALID_ID_MAPPING",
			fmt.Sprintf("duplicate operation must map exactly one id, got %d",
				len(t.Operations[0].Duplicate.IDMapping)))
	}

	for i, op := range t.Operations {
		if op.Duplicate == nil && op.ReplaceText == nil {
			result.addError("operations", "EMPTY_OPERATION",
				fmt.Sprintf("operation %d has no variant set", i))
		}
	}

	if got := t.ReplaceCount(); got != len(t.PlaceholderLengths) {
		result.addError("text_sections", "PLACEHOLDER_COUNT_MISMATCH",
			fmt.Sprintf("template has %d replace operations but %d length budgets",
				got, len(t.PlaceholderLengths)))
	}

	for i, n := range t.PlaceholderLengths {
		if n < 0 {
			result.addError("text_sections", "NEGATIVE_LENGTH",
				fmt.Sprintf("length budget %d is negative", i))
		}
	}

	return result
}
