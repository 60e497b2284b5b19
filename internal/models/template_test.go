package models

import "testing"

func sampleTemplate() *Template {
	return &Template{
		SlideType: "title_slide",
		Operations: []Operation{
			{Duplicate: &DuplicateOp{
				ObjectID:  "orig",
				IDMapping: map[string]string{"orig": "slide-abc12345"},
			}},
			{ReplaceText: &ReplaceTextOp{
				ContainsText:  Match{Text: "Hello"},
				ReplaceText:   "placeholder",
				PageObjectIDs: []string{"slide-abc12345"},
			}},
		},
		PlaceholderLengths: []int{5},
		Description:        "A title slide",
	}
}

func TestTemplateClone(t *testing.T) {
	orig := sampleTemplate()
	clone := orig.Clone()

	clone.Operations[0].Duplicate.IDMapping["orig"] = "mutated"
	clone.Operations[1].ReplaceText.PageObjectIDs[0] = "mutated"
	clone.Operations[1].ReplaceText.ReplaceText = "mutated"
	clone.PlaceholderLengths[0] = 99

	if orig.Operations[0].Duplicate.IDMapping["orig"] != "slide-abc12345" {
		t.Error("clone mutation leaked into original id mapping")
	}
	if orig.Operations[1].ReplaceText.PageObjectIDs[0] != "slide-abc12345" {
		t.Error("clone mutation leaked into original page ids")
	}
	if orig.Operations[1].ReplaceText.ReplaceText != "placeholder" {
		t.Error("clone mutation leaked into original replacement text")
	}
	if orig.PlaceholderLengths[0] != 5 {
		t.Error("clone mutation leaked into original lengths")
	}
}

func TestPlaceholderID(t *testing.T) {
	tmpl := sampleTemplate()
	if got := tmpl.PlaceholderID(); got != "slide-abc12345" {
		t.Errorf("PlaceholderID() = %q, want %q", got, "slide-abc12345")
	}

	empty := &Template{}
	if got := empty.PlaceholderID(); got != "" {
		t.Errorf("PlaceholderID() on template without duplicate = %q, want empty", got)
	}
}

func TestReplaceCount(t *testing.T) {
	tmpl := sampleTemplate()
	if got := tmpl.ReplaceCount(); got != 1 {
		t.Errorf("ReplaceCount() = %d, want 1", got)
	}
}

func TestTextSections(t *testing.T) {
	tmpl := &Template{PlaceholderLengths: []int{10, 42}}
	sections := tmpl.TextSections()

	want := []string{"10 char string", "42 char string"}
	if len(sections) != len(want) {
		t.Fatalf("got %d sections, want %d", len(sections), len(want))
	}
	for i := range want {
		if sections[i] != want[i] {
			t.Errorf("section %d = %q, want %q", i, sections[i], want[i])
		}
	}
}

func TestParseTextSection(t *testing.T) {
	n, err := ParseTextSection("17 char string")
	if err != nil {
		t.Fatalf("ParseTextSection failed: %v", err)
	}
	if n != 17 {
		t.Errorf("got %d, want 17", n)
	}

	for _, bad := range []string{"", "char string", "x char string", "17 char strings"} {
		if _, err := ParseTextSection(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}
