package instantiate

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"deckgen/internal/extract"
	"deckgen/internal/models"
)

func captureSample(t *testing.T, runs ...string) *models.Template {
	t.Helper()
	slide := models.Slide{
		ObjectID: "src",
		Elements: []models.SlideElement{
			{ObjectID: "e1", Shape: &models.Shape{TextRuns: runs}},
		},
	}
	tmpl := extract.Capture(slide)
	tmpl.SlideType = "sample"
	return tmpl
}

func replacements(instance *models.Instance) []string {
	var out []string
	for _, op := range instance.Operations {
		if op.ReplaceText != nil {
			out = append(out, op.ReplaceText.ReplaceText)
		}
	}
	return out
}

func TestInstantiateEndToEnd(t *testing.T) {
	tmpl := captureSample(t, "Q1 Revenue")

	if len(tmpl.PlaceholderLengths) != 1 || tmpl.PlaceholderLengths[0] != 10 {
		t.Fatalf("capture lengths = %v, want [10]", tmpl.PlaceholderLengths)
	}

	instance, err := Instantiate(tmpl, []string{"Profits soared"}, nil)
	if err != nil {
		t.Fatalf("Instantiate failed: %v", err)
	}

	got := replacements(instance)
	if len(got) != 1 || got[0] != "Profits soared" {
		t.Errorf("replacements = %v, want [Profits soared]", got)
	}
	if instance.SlideID == "" || instance.SlideID == tmpl.PlaceholderID() {
		t.Errorf("instance id %q must be freshly generated", instance.SlideID)
	}
}

func TestInstantiateRemapsIdentifiers(t *testing.T) {
	tmpl := captureSample(t, "Hello")
	oldID := tmpl.PlaceholderID()

	instance, err := Instantiate(tmpl, []string{"Hi"}, nil)
	if err != nil {
		t.Fatalf("Instantiate failed: %v", err)
	}

	dup := instance.Operations[0].Duplicate
	if dup.IDMapping["src"] != instance.SlideID {
		t.Errorf("duplicate maps to %q, want %q", dup.IDMapping["src"], instance.SlideID)
	}
	for _, op := range instance.Operations {
		if op.ReplaceText == nil {
			continue
		}
		for _, id := range op.ReplaceText.PageObjectIDs {
			if id == oldID {
				t.Error("placeholder id survived remapping")
			}
			if id != instance.SlideID {
				t.Errorf("page id %q, want %q", id, instance.SlideID)
			}
		}
	}
}

func TestInstantiateIDRemapIgnoresTextContent(t *testing.T) {
	tmpl := captureSample(t, "Hello")
	oldID := tmpl.PlaceholderID()

	// content that happens to contain the placeholder id must pass
	// through untouched
	payload := "mentioning " + oldID + " in prose"
	instance, err := Instantiate(tmpl, []string{payload}, nil)
	if err != nil {
		t.Fatalf("Instantiate failed: %v", err)
	}

	got := replacements(instance)
	if got[0] != payload {
		t.Errorf("replacement text was rewritten: %q", got[0])
	}
}

func TestInstantiateDistinctInstances(t *testing.T) {
	tmpl := captureSample(t, "Hello", "World")

	first, err := Instantiate(tmpl, []string{"a", "b"}, nil)
	if err != nil {
		t.Fatalf("first Instantiate failed: %v", err)
	}
	second, err := Instantiate(tmpl, []string{"c", "d"}, nil)
	if err != nil {
		t.Fatalf("second Instantiate failed: %v", err)
	}

	if first.SlideID == second.SlideID {
		t.Error("two instantiations produced the same slide id")
	}

	// mutating one finalized tree must not affect the other, nor the
	// stored template
	first.Operations[1].ReplaceText.ReplaceText = "mutated"
	first.Operations[0].Duplicate.IDMapping["src"] = "mutated"

	if second.Operations[1].ReplaceText.ReplaceText != "c" {
		t.Error("mutation leaked between instances")
	}
	if tmpl.Operations[1].ReplaceText.ReplaceText == "mutated" {
		t.Error("mutation leaked into the stored template")
	}
	if tmpl.Operations[0].Duplicate.IDMapping["src"] == "mutated" {
		t.Error("id mutation leaked into the stored template")
	}
}

func TestInstantiateUnderflow(t *testing.T) {
	tmpl := captureSample(t, "one", "two", "three")

	instance, err := Instantiate(tmpl, []string{"filled"}, nil)
	if err != nil {
		t.Fatalf("Instantiate failed: %v", err)
	}

	got := replacements(instance)
	if got[0] != "filled" {
		t.Errorf("first placeholder = %q, want filled", got[0])
	}
	for i, text := range got[1:] {
		if !strings.Contains(text, "CONVERT THE TEXT IDEA") {
			t.Errorf("unfilled placeholder %d lost its synthetic text: %q", i+1, text)
		}
	}

	if len(instance.Warnings) != 2 {
		t.Fatalf("got %d warnings, want one per missing index (2): %v",
			len(instance.Warnings), instance.Warnings)
	}
	if !strings.Contains(instance.Warnings[0], "placeholder 1") {
		t.Errorf("warning should name the missing index, got %q", instance.Warnings[0])
	}
}

func TestInstantiateOverflow(t *testing.T) {
	tmpl := captureSample(t, "one", "two")

	instance, err := Instantiate(tmpl, []string{"a", "b", "c", "d"}, nil)
	if err != nil {
		t.Fatalf("Instantiate failed: %v", err)
	}

	got := replacements(instance)
	if len(got) != 2 {
		t.Fatalf("got %d replacements, want 2", len(got))
	}
	if got[0] != "a" || got[1] != "b" {
		t.Errorf("first entries must remain order-matched, got %v", got)
	}

	if len(instance.Warnings) != 1 || !strings.Contains(instance.Warnings[0], "2 excess") {
		t.Errorf("expected one dropped-content warning, got %v", instance.Warnings)
	}
}

func TestInstantiateLogsMismatchCode(t *testing.T) {
	tmpl := captureSample(t, "one", "two")

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	if _, err := Instantiate(tmpl, []string{"only one"}, logger); err != nil {
		t.Fatalf("Instantiate failed: %v", err)
	}
	if !strings.Contains(buf.String(), "CONTENT_MISMATCH") {
		t.Errorf("mismatch log should carry the content-mismatch code, got:\n%s", buf.String())
	}
}

func TestInstantiateMalformedTemplate(t *testing.T) {
	tmpl := &models.Template{SlideType: "broken"}
	if _, err := Instantiate(tmpl, nil, nil); err == nil {
		t.Fatal("expected error for template without a duplicate operation")
	}
}
