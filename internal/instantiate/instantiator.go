// Package instantiate binds generated content to a stored template,
// producing a finalized operation tree scoped to a freshly generated
// slide id.
package instantiate

import (
	"fmt"
	"log/slog"

	"deckgen/internal/errors"
	"deckgen/internal/extract"
	"deckgen/internal/models"
)

// Instantiate deep-copies the template's operation tree, substitutes a
// fresh slide id for the template's placeholder id, and fills the
// replace-text operations with the payload in captured order.
//
// Reconciliation is strictly positional. A payload shorter than the
// placeholder count leaves the unmatched placeholders with their original
// instructional text and records one warning per missing index; a longer
// payload has its excess entries dropped. Neither case is an error.
//
// The stored template is never mutated; two instantiations of the same
// template share no state.
func Instantiate(t *models.Template, content []string, logger *slog.Logger) (*models.Instance, error) {
	if logger == nil {
		logger = slog.Default()
	}

	oldID := t.PlaceholderID()
	if oldID == "" {
		return nil, errors.ValidationError(
			fmt.Sprintf("template '%s' has no duplicate operation", t.SlideType))
	}

	work := t.Clone()
	newID := extract.NewSlideID()
	remapID(work.Operations, oldID, newID)

	placeholders := work.ReplaceCount()
	if len(content) != placeholders {
		// reconciled below, never fatal
		mismatch := errors.ContentMismatchError(t.SlideType, placeholders, len(content))
		logger.Warn("payload length differs from placeholder count",
			"slide_type", t.SlideType,
			"error", mismatch)
	}

	instance := &models.Instance{
		SlideID:    newID,
		Operations: work.Operations,
	}

	i := 0
	for _, op := range work.Operations {
		if op.ReplaceText == nil {
			continue
		}
		if i < len(content) {
			op.ReplaceText.ReplaceText = content[i]
		} else {
			// placeholder retains its synthetic instructional text
			warning := fmt.Sprintf("slide '%s': no content for placeholder %d", t.SlideType, i)
			instance.Warnings = append(instance.Warnings, warning)
			logger.Warn("placeholder left unfilled",
				"slide_type", t.SlideType,
				"index", i)
		}
		i++
	}

	if dropped := len(content) - placeholders; dropped > 0 {
		warning := fmt.Sprintf("slide '%s': %d excess content entries dropped", t.SlideType, dropped)
		instance.Warnings = append(instance.Warnings, warning)
		logger.Warn("excess content dropped",
			"slide_type", t.SlideType,
			"dropped", dropped)
	}

	return instance, nil
}

// remapID substitutes newID for oldID everywhere the placeholder id
// appears: duplicate-mapping values and replace-scope id lists. The walk
// replaces identifier fields by exact identity, never by substring, so
// text content that happens to contain the id is untouched.
func remapID(ops []models.Operation, oldID, newID string) {
	for _, op := range ops {
		if op.Duplicate != nil {
			for k, v := range op.Duplicate.IDMapping {
				if v == oldID {
					op.Duplicate.IDMapping[k] = newID
				}
			}
		}
		if op.ReplaceText != nil {
			for i, id := range op.ReplaceText.PageObjectIDs {
				if id == oldID {
					op.ReplaceText.PageObjectIDs[i] = newID
				}
			}
		}
	}
}
