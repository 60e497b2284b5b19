package deck

import (
	"context"
	"log/slog"

	"deckgen/internal/errors"
	"deckgen/internal/extract"
	"deckgen/internal/models"
	"deckgen/internal/storage"
	"deckgen/internal/validation"
)

// Capturer runs the template capture pipeline: every slide of a source
// presentation is classified, extracted, and stored as a reusable template
type Capturer struct {
	reader     SourceReader
	classifier SlideClassifier
	store      *storage.Storage
	logger     *slog.Logger
}

// NewCapturer creates a capture pipeline
func NewCapturer(reader SourceReader, classifier SlideClassifier, store *storage.Storage, logger *slog.Logger) *Capturer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Capturer{
		reader:     reader,
		classifier: classifier,
		store:      store,
		logger:     logger,
	}
}

// CaptureResult reports what one capture run produced
type CaptureResult struct {
	SlidesCaptured int
	SlidesSkipped  int
	SlideTypes     []string
}

// CaptureAll captures every slide of the source presentation. Failure to
// read the presentation is fatal; everything after that is recovered at
// slide granularity, so one malformed slide never aborts the rest.
func (c *Capturer) CaptureAll(ctx context.Context, presentationID string) (*CaptureResult, error) {
	pres, err := c.reader.Presentation(ctx, presentationID)
	if err != nil {
		return nil, errors.SetupError("read source presentation", err)
	}

	c.logger.Info("capturing templates", "presentation", presentationID, "slides", len(pres.Slides))

	result := &CaptureResult{}
	for i, slide := range pres.Slides {
		slideType, err := c.captureSlide(ctx, i+1, slide)
		if err != nil {
			c.logger.Warn("skipping slide", "slide", i+1, "error", err)
			result.SlidesSkipped++
			continue
		}
		result.SlidesCaptured++
		result.SlideTypes = append(result.SlideTypes, slideType)
	}

	return result, nil
}

// captureSlide handles one slide: classify, extract, validate, store
func (c *Capturer) captureSlide(ctx context.Context, n int, slide models.Slide) (string, error) {
	brief := models.DescribeSlide(n, slide)

	classification, err := c.classifier.Classify(ctx, brief)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeExtraction, "slide classification failed")
	}

	template := extract.Capture(slide)
	template.SlideType = storage.NormalizeType(classification.SlideType)
	template.Description = classification.Description

	if result := validation.ValidateTemplate(template); !result.Valid {
		return "", result.ToAppError()
	}

	if err := c.store.SaveTemplate(template); err != nil {
		return "", err
	}

	c.logger.Info("captured template",
		"slide", n,
		"slide_type", template.SlideType,
		"placeholders", len(template.PlaceholderLengths))
	return template.SlideType, nil
}
