package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Match selects the text a replace operation applies to. MatchCase is
// always false for captured operations.
type Match struct {
	Text      string `yaml:"text" json:"text"`
	MatchCase bool   `yaml:"matchCase" json:"matchCase"`
}

// DuplicateOp duplicates a source slide, mapping its id to a new one.
// IDMapping holds exactly one entry for slide duplication: source id to
// the id the duplicate will receive.
type DuplicateOp struct {
	ObjectID  string            `yaml:"objectId" json:"objectId"`
	IDMapping map[string]string `yaml:"objectIds" json:"objectIds"`
}

// ReplaceTextOp replaces every occurrence of the matched text on the pages
// listed in PageObjectIDs
type ReplaceTextOp struct {
	ContainsText  Match    `yaml:"containsText" json:"containsText"`
	ReplaceText   string   `yaml:"replaceText" json:"replaceText"`
	PageObjectIDs []string `yaml:"pageObjectIds" json:"pageObjectIds"`
}

// Operation is one structural edit instruction. Exactly one variant is set;
// the yaml/json keys mirror the remote batch-update wire format so an
// operation tree serializes directly into an executable request body.
type Operation struct {
	Duplicate   *DuplicateOp   `yaml:"duplicateObject,omitempty" json:"duplicateObject,omitempty"`
	ReplaceText *ReplaceTextOp `yaml:"replaceAllText,omitempty" json:"replaceAllText,omitempty"`
}

// Clone returns a deep copy of the operation
func (op Operation) Clone() Operation {
	var out Operation
	if op.Duplicate != nil {
		dup := &DuplicateOp{ObjectID: op.Duplicate.ObjectID}
		if op.Duplicate.IDMapping != nil {
			dup.IDMapping = make(map[string]string, len(op.Duplicate.IDMapping))
			for k, v := range op.Duplicate.IDMapping {
				dup.IDMapping[k] = v
			}
		}
		out.Duplicate = dup
	}
	if op.ReplaceText != nil {
		rep := &ReplaceTextOp{
			ContainsText: op.ReplaceText.ContainsText,
			ReplaceText:  op.ReplaceText.ReplaceText,
		}
		if op.ReplaceText.PageObjectIDs != nil {
			rep.PageObjectIDs = append([]string(nil), op.ReplaceText.PageObjectIDs...)
		}
		out.ReplaceText = rep
	}
	return out
}

// Template is a captured, reusable description of one slide's structural
// edit operations plus its ordered placeholder length budgets. A template
// is immutable once stored; instantiation always works on a clone.
type Template struct {
	SlideType          string      `yaml:"slide_type"`
	Operations         []Operation `yaml:"operations"`
	PlaceholderLengths []int       `yaml:"-"`

	// Description is the free-text slide summary, stored as the body of
	// the template file rather than frontmatter.
	Description string `yaml:"-"`

	// FilePath is the path relative to the library root, set on load
	FilePath string `yaml:"-"`
}

// ReplaceCount returns the number of replace-text operations in the tree
func (t *Template) ReplaceCount() int {
	n := 0
	for _, op := range t.Operations {
		if op.ReplaceText != nil {
			n++
		}
	}
	return n
}

// PlaceholderID returns the placeholder slide id the template's operations
// are scoped to: the mapping value of the first duplicate operation.
// Returns "" for a malformed template with no duplicate operation.
func (t *Template) PlaceholderID() string {
	for _, op := range t.Operations {
		if op.Duplicate != nil {
			for _, v := range op.Duplicate.IDMapping {
				return v
			}
		}
	}
	return ""
}

// Clone returns a deep copy of the template's operation tree and lengths
func (t *Template) Clone() *Template {
	out := &Template{
		SlideType:   t.SlideType,
		Description: t.Description,
		FilePath:    t.FilePath,
	}
	if t.Operations != nil {
		out.Operations = make([]Operation, len(t.Operations))
		for i, op := range t.Operations {
			out.Operations[i] = op.Clone()
		}
	}
	if t.PlaceholderLengths != nil {
		out.PlaceholderLengths = append([]int(nil), t.PlaceholderLengths...)
	}
	return out
}

// TextSections renders the ordered placeholder length labels in the
// persisted record format, e.g. "12 char string"
func (t *Template) TextSections() []string {
	sections := make([]string, len(t.PlaceholderLengths))
	for i, n := range t.PlaceholderLengths {
		sections[i] = fmt.Sprintf("%d char string", n)
	}
	return sections
}

// ParseTextSection converts a persisted length label back to its length
func ParseTextSection(label string) (int, error) {
	fields := strings.Fields(label)
	if len(fields) != 3 || fields[1] != "char" || fields[2] != "string" {
		return 0, fmt.Errorf("malformed text section label %q", label)
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, fmt.Errorf("malformed text section label %q: %w", label, err)
	}
	return n, nil
}
