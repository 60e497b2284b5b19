package models

import (
	"fmt"
	"strings"
)

// Describe returns a one-line human-readable summary of a slide element.
// Missing fields render fallback text instead of failing, so a partially
// populated element is always describable.
func Describe(el SlideElement) string {
	switch el.Kind() {
	case KindShape:
		preview := "(no text)"
		var runs []string
		for _, run := range el.Shape.TextRuns {
			run = strings.TrimSpace(run)
			if run != "" {
				runs = append(runs, run)
			}
		}
		if len(runs) > 0 {
			preview = strings.Join(runs, " | ")
		}
		shapeType := el.Shape.Type
		if shapeType == "" {
			shapeType = "UNKNOWN"
		}
		return fmt.Sprintf("Shape (%s) [%s] -> text: %s", shapeType, el.ObjectID, preview)
	case KindImage:
		url := el.Image.ContentURL
		if url == "" {
			url = "(no url)"
		}
		return fmt.Sprintf("Image [%s] -> %s", el.ObjectID, url)
	case KindLine:
		lineType := el.Line.Type
		if lineType == "" {
			lineType = "LINE"
		}
		return fmt.Sprintf("Line [%s] -> %s", el.ObjectID, lineType)
	case KindTable:
		return fmt.Sprintf("Table [%s] -> %d rows x %d cols", el.ObjectID, el.Table.Rows, el.Table.Columns)
	default:
		return fmt.Sprintf("Other element [%s]", el.ObjectID)
	}
}

// DescribeSlide renders the numbered summary block for one slide, used to
// brief the slide classifier collaborator. n is the 1-based slide number.
func DescribeSlide(n int, slide Slide) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Slide %d\n\n", n)
	fmt.Fprintf(&b, "# slideId: %s\n\n", slide.ObjectID)

	if len(slide.Elements) == 0 {
		b.WriteString("No page elements on this slide.\n")
		return b.String()
	}

	for i, el := range slide.Elements {
		fmt.Fprintf(&b, "%d. %s\n", i+1, Describe(el))
	}
	return b.String()
}
