package deck

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"deckgen/internal/models"
)

type fakeReader struct {
	pres *models.Presentation
	err  error
}

func (f *fakeReader) Presentation(_ context.Context, _ string) (*models.Presentation, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.pres, nil
}

type fakeClassifier struct {
	byBrief func(brief string) (*Classification, error)
	briefs  []string
}

func (f *fakeClassifier) Classify(_ context.Context, brief string) (*Classification, error) {
	f.briefs = append(f.briefs, brief)
	return f.byBrief(brief)
}

func textSlide(id string, runs ...string) models.Slide {
	return models.Slide{
		ObjectID: id,
		Elements: []models.SlideElement{
			{ObjectID: id + "-shape", Shape: &models.Shape{TextRuns: runs}},
		},
	}
}

func TestCaptureAll(t *testing.T) {
	store := newTestStore(t)

	reader := &fakeReader{pres: &models.Presentation{
		ID: "src",
		Slides: []models.Slide{
			textSlide("s1", "Q1 Revenue"),
			textSlide("s2", "First", "Second"),
		},
	}}
	n := 0
	classifier := &fakeClassifier{byBrief: func(string) (*Classification, error) {
		n++
		return &Classification{
			SlideType:   fmt.Sprintf("Slide Type %d", n),
			Description: fmt.Sprintf("description %d", n),
		}, nil
	}}

	result, err := NewCapturer(reader, classifier, store, nil).CaptureAll(context.Background(), "src")
	if err != nil {
		t.Fatalf("CaptureAll failed: %v", err)
	}

	if result.SlidesCaptured != 2 || result.SlidesSkipped != 0 {
		t.Errorf("captured=%d skipped=%d, want 2/0", result.SlidesCaptured, result.SlidesSkipped)
	}

	// the classifier receives the rendered slide briefs
	if len(classifier.briefs) != 2 || !strings.Contains(classifier.briefs[0], "Q1 Revenue") {
		t.Errorf("classifier briefs malformed: %v", classifier.briefs)
	}

	// stored under the normalized slide type
	tmpl, err := store.GetTemplate("slide_type_1")
	if err != nil {
		t.Fatalf("captured template not stored: %v", err)
	}
	if tmpl.Description != "description 1" {
		t.Errorf("description = %q", tmpl.Description)
	}
	if len(tmpl.PlaceholderLengths) != 1 || tmpl.PlaceholderLengths[0] != 10 {
		t.Errorf("lengths = %v, want [10]", tmpl.PlaceholderLengths)
	}

	second, err := store.GetTemplate("slide_type_2")
	if err != nil {
		t.Fatalf("second template not stored: %v", err)
	}
	if got := second.ReplaceCount(); got != 2 {
		t.Errorf("second template replace count = %d, want 2", got)
	}
}

func TestCaptureAllContinuesOnClassifierFailure(t *testing.T) {
	store := newTestStore(t)

	reader := &fakeReader{pres: &models.Presentation{
		ID: "src",
		Slides: []models.Slide{
			textSlide("s1", "Alpha"),
			textSlide("s2", "Beta"),
		},
	}}
	classifier := &fakeClassifier{byBrief: func(brief string) (*Classification, error) {
		if strings.Contains(brief, "Alpha") {
			return nil, fmt.Errorf("model timeout")
		}
		return &Classification{SlideType: "beta_slide", Description: "beta"}, nil
	}}

	result, err := NewCapturer(reader, classifier, store, nil).CaptureAll(context.Background(), "src")
	if err != nil {
		t.Fatalf("CaptureAll failed: %v", err)
	}

	if result.SlidesCaptured != 1 || result.SlidesSkipped != 1 {
		t.Errorf("captured=%d skipped=%d, want 1/1", result.SlidesCaptured, result.SlidesSkipped)
	}
	if _, err := store.GetTemplate("beta_slide"); err != nil {
		t.Errorf("surviving slide not stored: %v", err)
	}
}

func TestCaptureAllReaderFailureIsFatal(t *testing.T) {
	store := newTestStore(t)
	reader := &fakeReader{err: fmt.Errorf("document unreadable")}
	classifier := &fakeClassifier{byBrief: func(string) (*Classification, error) {
		return &Classification{SlideType: "x"}, nil
	}}

	_, err := NewCapturer(reader, classifier, store, nil).CaptureAll(context.Background(), "src")
	if err == nil {
		t.Fatal("expected setup error when the source cannot be read")
	}
}
