package deck

import (
	"context"
	"log/slog"

	"deckgen/internal/catalog"
	"deckgen/internal/errors"
	"deckgen/internal/instantiate"
	"deckgen/internal/models"
	"deckgen/internal/storage"
)

// Builder runs the deck build pipeline: plan slides from a concept, then
// instantiate and execute each planned slide against a fresh copy of the
// source presentation.
type Builder struct {
	store    *storage.Storage
	planner  DeckPlanner
	executor Executor
	logger   *slog.Logger
}

// NewBuilder creates a build pipeline
func NewBuilder(store *storage.Storage, planner DeckPlanner, executor Executor, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{
		store:    store,
		planner:  planner,
		executor: executor,
		logger:   logger,
	}
}

// BuildResult reports what one build run produced
type BuildResult struct {
	PresentationID string
	SlidesCreated  int
	SlidesSkipped  int
	Warnings       []string
}

// Build turns a creative concept into a finished deck. Planning and
// copying the source presentation are setup steps whose failure aborts the
// run; after that every slide is attempted independently and failures are
// logged and skipped.
//
// Slides are processed sequentially in plan order. The insertion index is
// an explicit local accumulator incremented strictly after a slide's
// operations and repositioning both succeed, so a failed slide never
// shifts the position of the ones after it.
func (b *Builder) Build(ctx context.Context, sourceID, concept, title string) (*BuildResult, error) {
	indexer := catalog.NewIndexer(b.store, b.logger)
	index, err := indexer.Index()
	if err != nil {
		return nil, errors.SetupError("scan template store", err)
	}

	plan, err := b.planner.Plan(ctx, concept, catalog.PlannerBriefing(index))
	if err != nil {
		return nil, errors.SetupError("generate deck plan", err)
	}
	b.logger.Info("deck plan generated", "slides", len(plan.Slides))

	presentationID, err := b.executor.CopyPresentation(ctx, sourceID, title)
	if err != nil {
		return nil, errors.SetupError("copy source presentation", err)
	}

	knownTypes, err := b.store.SlideTypes()
	if err != nil {
		return nil, errors.SetupError("list slide types", err)
	}

	result := &BuildResult{PresentationID: presentationID}
	insertionIndex := 0

	for i, planned := range plan.Slides {
		created, warnings, err := b.buildSlide(ctx, presentationID, planned, insertionIndex, knownTypes)
		result.Warnings = append(result.Warnings, warnings...)
		if err != nil {
			b.logger.Warn("skipping slide",
				"slide", i+1,
				"slide_type", planned.SlideType,
				"error", err)
			result.SlidesSkipped++
			continue
		}
		b.logger.Info("created slide",
			"slide", i+1,
			"slide_type", planned.SlideType,
			"slide_id", created,
			"position", insertionIndex)
		result.SlidesCreated++
		insertionIndex++
	}

	return result, nil
}

// buildSlide attempts one planned slide end to end: look up the template,
// bind the content, execute the operations, position the result
func (b *Builder) buildSlide(ctx context.Context, presentationID string, planned models.PlannedSlide, insertionIndex int, knownTypes []string) (string, []string, error) {
	template, err := b.store.GetTemplate(planned.SlideType)
	if err != nil {
		if suggestion := catalog.Suggest(knownTypes, planned.SlideType); suggestion != "" {
			b.logger.Warn("unknown slide type",
				"slide_type", planned.SlideType,
				"closest_match", suggestion)
		}
		return "", nil, err
	}

	instance, err := instantiate.Instantiate(template, planned.Content, b.logger)
	if err != nil {
		return "", nil, err
	}

	createdID, err := b.executor.Apply(ctx, presentationID, instance.Operations)
	if err != nil {
		return "", instance.Warnings, errors.ExecutionError("apply slide operations", err)
	}

	if err := b.executor.Reposition(ctx, presentationID, createdID, insertionIndex); err != nil {
		return "", instance.Warnings, errors.ExecutionError("reposition slide", err)
	}

	return createdID, instance.Warnings, nil
}
