package models

// PlannedSlide is one slide of a generated deck plan: the slide type to
// instantiate and the ordered content intended to align positionally with
// that template's placeholders. The content length is not guaranteed to
// match the placeholder count.
type PlannedSlide struct {
	SlideType string   `yaml:"slide_type" json:"slide_type"`
	Content   []string `yaml:"slide_content" json:"slide_content"`
}

// DeckPlan is the full slide sequence returned by the deck planner
// collaborator, in presentation order
type DeckPlan struct {
	Title  string         `yaml:"title,omitempty" json:"title,omitempty"`
	Slides []PlannedSlide `yaml:"slides" json:"slides"`
}

// Instance is the result of binding content to a template: a finalized
// operation tree scoped to a freshly generated slide id. The id has no
// persistent identity; the caller needs it only to position the produced
// slide after the operations execute.
type Instance struct {
	SlideID    string
	Operations []Operation
	Warnings   []string
}
