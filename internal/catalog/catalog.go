// Package catalog builds the descriptive index of stored templates that
// conditions the deck planner on available slide types, their order
// semantics, and their length budgets.
package catalog

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"

	"deckgen/internal/storage"
	"deckgen/internal/validation"

	"github.com/natefinch/atomic"
	"github.com/sahilm/fuzzy"
	"gopkg.in/yaml.v3"
)

// Entry is one catalog line: a stored template's type, description, and
// ordered length labels
type Entry struct {
	SlideType    string
	Description  string
	TextSections []string
}

// String renders the entry in the catalog block format
func (e Entry) String() string {
	return fmt.Sprintf("%s: %s: %s", e.SlideType, e.Description, strings.Join(e.TextSections, ", "))
}

// Indexer scans the template store and renders the catalog
type Indexer struct {
	store  *storage.Storage
	logger *slog.Logger
}

// NewIndexer creates an indexer over a template store
func NewIndexer(store *storage.Storage, logger *slog.Logger) *Indexer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Indexer{store: store, logger: logger}
}

// Entries returns one entry per readable stored template. Unreadable files
// are already skipped by the store; templates failing validation are
// skipped here with a warning, never fatal to the scan.
func (ix *Indexer) Entries() ([]Entry, error) {
	templates, err := ix.store.ListTemplates()
	if err != nil {
		return nil, fmt.Errorf("failed to scan templates: %w", err)
	}

	var entries []Entry
	for _, t := range templates {
		if result := validation.ValidateTemplate(t); !result.Valid {
			ix.logger.Warn("skipping invalid template",
				"slide_type", t.SlideType,
				"error", result.ToAppError())
			continue
		}
		entries = append(entries, Entry{
			SlideType:    t.SlideType,
			Description:  t.Description,
			TextSections: t.TextSections(),
		})
	}
	return entries, nil
}

// Index renders the full catalog: one block per template, blank-line
// separated
func (ix *Indexer) Index() (string, error) {
	entries, err := ix.Entries()
	if err != nil {
		return "", err
	}
	blocks := make([]string, len(entries))
	for i, e := range entries {
		blocks[i] = e.String()
	}
	return strings.Join(blocks, "\n\n"), nil
}

// Search fuzzy-filters catalog entries by slide type
func Search(entries []Entry, query string) []Entry {
	types := make([]string, len(entries))
	for i, e := range entries {
		types[i] = e.SlideType
	}
	matches := fuzzy.Find(query, types)
	out := make([]Entry, 0, len(matches))
	for _, m := range matches {
		out = append(out, entries[m.Index])
	}
	return out
}

// Suggest returns the closest known slide type for a miss, or "" when
// nothing matches. Used to enrich template-not-found warnings.
func Suggest(types []string, miss string) string {
	matches := fuzzy.Find(miss, types)
	if len(matches) == 0 {
		return ""
	}
	return types[matches[0].Index]
}

// PlannerBriefing renders the system prompt that conditions the deck
// planner on the catalog
func PlannerBriefing(catalog string) string {
	var b strings.Builder
	b.WriteString("You are a deck planning agent. Your job is to take a creative concept and output an outline of the pitch deck.\n")
	b.WriteString("For each slide specify one of the following slide types and create text that matches the specified text lengths:\n\n")
	b.WriteString(catalog)
	b.WriteString("\n\nIMPORTANT: FOLLOW THE ORDER AND CHARACTER LENGTH OF EACH SLIDE TYPE EXACTLY!\n")
	b.WriteString("IMPORTANT: USE THE DESCRIPTION OF THE SLIDES AS THE BASIS FOR HOW YOU FILL IN THE SLIDE.\n")
	return b.String()
}

// agentConfig is the planner agent configuration file shape
type agentConfig struct {
	Name         string `yaml:"name"`
	SystemPrompt string `yaml:"system_prompt"`
}

// WriteAgentConfig writes a planner agent configuration file containing
// the briefing, atomically
func WriteAgentConfig(path, name, systemPrompt string) error {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(agentConfig{Name: name, SystemPrompt: systemPrompt}); err != nil {
		return fmt.Errorf("failed to encode agent config: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("failed to encode agent config: %w", err)
	}
	if err := atomic.WriteFile(path, bytes.NewReader(buf.Bytes())); err != nil {
		return fmt.Errorf("failed to write agent config: %w", err)
	}
	return nil
}
