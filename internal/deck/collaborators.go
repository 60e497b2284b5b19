// Package deck orchestrates the capture and build pipelines. The engine
// itself performs no network or file I/O beyond the template store: source
// reading, slide classification, deck planning, and remote execution are
// delegated to collaborator interfaces supplied by the caller.
package deck

import (
	"context"

	"deckgen/internal/models"
)

// SourceReader fetches a source presentation's structure
type SourceReader interface {
	Presentation(ctx context.Context, presentationID string) (*models.Presentation, error)
}

// Classification names and describes one exemplar slide
type Classification struct {
	SlideType   string `yaml:"slide_type" json:"slide_type"`
	Description string `yaml:"slide_description" json:"slide_description"`
}

// SlideClassifier assigns a slide type and free-text description to an
// exemplar slide from its rendered summary block
type SlideClassifier interface {
	Classify(ctx context.Context, slideBrief string) (*Classification, error)
}

// DeckPlanner turns a creative concept into an ordered slide plan. The
// briefing is the catalog-derived system prompt describing available slide
// types and their length budgets.
type DeckPlanner interface {
	Plan(ctx context.Context, concept, briefing string) (*models.DeckPlan, error)
}

// Executor performs the actual document mutations remotely. Apply returns
// the id of the slide the duplicate operation created.
type Executor interface {
	CopyPresentation(ctx context.Context, sourceID, title string) (presentationID string, err error)
	Apply(ctx context.Context, presentationID string, ops []models.Operation) (createdSlideID string, err error)
	Reposition(ctx context.Context, presentationID, slideID string, index int) error
}
