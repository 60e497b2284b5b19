// Package extract converts an exemplar slide into a reusable template: an
// ordered operation tree plus the ordered length budget of every text
// placeholder it contains.
package extract

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"deckgen/internal/models"

	"github.com/google/uuid"
)

// instructionFormat is the synthetic replacement text recorded at capture
// time. It is never executed as-is; it briefs the content planner on the
// length budget for the placeholder it occupies.
const instructionFormat = "{CONVERT THE TEXT IDEA OR CONCEPT TO TEXT THAT AT MOST %d CHARACTERS LONG}"

// NewSlideID returns a fresh slide identifier. Ids are unique per call and
// carry no persistent identity.
func NewSlideID() string {
	return "slide-" + uuid.New().String()[:8]
}

// Capture walks a slide's structure in document order and produces its
// template. The first operation duplicates the slide under a placeholder
// id; every non-empty text run of every shape becomes one replace-text
// operation scoped to that placeholder, with its character length appended
// to the template's placeholder budget in the same order.
//
// A shape without text contributes no placeholders; a slide with no
// elements yields a template whose tree holds only the duplicate
// operation. Unknown element kinds contribute nothing.
func Capture(slide models.Slide) *models.Template {
	placeholderID := NewSlideID()

	ops := []models.Operation{{
		Duplicate: &models.DuplicateOp{
			ObjectID:  slide.ObjectID,
			IDMapping: map[string]string{slide.ObjectID: placeholderID},
		},
	}}

	var lengths []int
	for _, el := range slide.Elements {
		switch el.Kind() {
		case models.KindShape:
			for _, run := range el.Shape.TextRuns {
				run = strings.TrimSpace(run)
				if run == "" {
					continue
				}
				// budgets are character counts, not byte counts
				n := utf8.RuneCountInString(run)
				ops = append(ops, models.Operation{
					ReplaceText: &models.ReplaceTextOp{
						ContainsText:  models.Match{Text: run, MatchCase: false},
						ReplaceText:   fmt.Sprintf(instructionFormat, n),
						PageObjectIDs: []string{placeholderID},
					},
				})
				lengths = append(lengths, n)
			}
		case models.KindImage, models.KindLine, models.KindTable, models.KindOther:
			// only shapes carry replaceable text
		}
	}

	return &models.Template{
		Operations:         ops,
		PlaceholderLengths: lengths,
	}
}
