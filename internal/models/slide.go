package models

// ElementKind identifies the variant of a slide element. The set is closed:
// adding a kind means adding a variant struct and updating every switch over
// ElementKind, which the compiler will point out.
type ElementKind int

const (
	KindShape ElementKind = iota
	KindImage
	KindLine
	KindTable
	KindOther
)

// String returns the kind name used in logs and descriptions
func (k ElementKind) String() string {
	switch k {
	case KindShape:
		return "shape"
	case KindImage:
		return "image"
	case KindLine:
		return "line"
	case KindTable:
		return "table"
	default:
		return "other"
	}
}

// Shape is a text-bearing element. TextRuns preserves document order; runs
// are stored exactly as they appear in the source slide.
type Shape struct {
	Type     string   `json:"shapeType,omitempty"`
	TextRuns []string `json:"textRuns,omitempty"`
}

// Image is a picture element with an optional content URL
type Image struct {
	ContentURL string `json:"contentUrl,omitempty"`
}

// Line is a connector or divider element
type Line struct {
	Type string `json:"lineType,omitempty"`
}

// Table is a grid element; only its dimensions matter for description
type Table struct {
	Rows    int `json:"rows"`
	Columns int `json:"columns"`
}

// SlideElement is one node of a slide's structure. At most one variant
// pointer is set; an element with none is of kind Other.
type SlideElement struct {
	ObjectID string `json:"objectId"`
	Shape    *Shape `json:"shape,omitempty"`
	Image    *Image `json:"image,omitempty"`
	Line     *Line  `json:"line,omitempty"`
	Table    *Table `json:"table,omitempty"`
}

// Kind returns the variant tag for the element
func (e SlideElement) Kind() ElementKind {
	switch {
	case e.Shape != nil:
		return KindShape
	case e.Image != nil:
		return KindImage
	case e.Line != nil:
		return KindLine
	case e.Table != nil:
		return KindTable
	default:
		return KindOther
	}
}

// Slide is one page of a source presentation with its elements in
// document order
type Slide struct {
	ObjectID string         `json:"objectId"`
	Elements []SlideElement `json:"pageElements,omitempty"`
}

// Presentation is a source document as supplied by the source reader
// collaborator
type Presentation struct {
	ID     string  `json:"presentationId"`
	Title  string  `json:"title,omitempty"`
	Slides []Slide `json:"slides,omitempty"`
}
