// Package cli implements the command-line interface: template library
// management plus the capture and generate pipelines.
package cli

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"deckgen/internal/catalog"
	"deckgen/internal/config"
	"deckgen/internal/deck"
	"deckgen/internal/errors"
	"deckgen/internal/storage"
	"deckgen/internal/ui"
)

// CLI provides the command-line interface. The capture and generate
// commands need external collaborators (source reader, classifier,
// planner, executor); embedding programs wire them through the exported
// fields before calling ExecuteCommand.
type CLI struct {
	store      *storage.Storage
	cfg        *config.Config
	libraryDir string
	logger     *slog.Logger
	handler    *errors.CLIErrorHandler

	Reader     deck.SourceReader
	Classifier deck.SlideClassifier
	Planner    deck.DeckPlanner
	Executor   deck.Executor
}

// NewCLI creates a new CLI instance over the configured library
func NewCLI(logger *slog.Logger, verbose bool) (*CLI, error) {
	if logger == nil {
		logger = slog.Default()
	}

	libraryDir := config.LibraryDir()
	cfg, err := config.Load(libraryDir)
	if err != nil {
		return nil, errors.SetupError("load configuration", err)
	}

	store, err := storage.NewStorage(libraryDir, logger)
	if err != nil {
		return nil, errors.SetupError("initialize template store", err)
	}

	return &CLI{
		store:      store,
		cfg:        cfg,
		libraryDir: libraryDir,
		logger:     logger,
		handler:    errors.NewCLIErrorHandler(verbose, logger),
	}, nil
}

// Store exposes the template store for embedding programs
func (c *CLI) Store() *storage.Storage {
	return c.store
}

// Config exposes the loaded configuration
func (c *CLI) Config() *config.Config {
	return c.cfg
}

// ExecuteCommand processes a CLI command and returns the result
func (c *CLI) ExecuteCommand(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return c.printUsage()
	}

	command := args[0]
	commandArgs := args[1:]

	var err error
	switch command {
	case "init":
		err = c.initLibrary()
	case "capture":
		err = c.capture(ctx, commandArgs)
	case "generate":
		err = c.generate(ctx, commandArgs)
	case "templates", "ls":
		err = c.listTemplates()
	case "show":
		err = c.showTemplate(commandArgs)
	case "delete", "rm":
		err = c.deleteTemplate(commandArgs)
	case "catalog":
		err = c.printCatalog(commandArgs)
	case "help":
		return c.printUsage()
	default:
		err = fmt.Errorf("unknown command: %s. Use 'help' for usage information", command)
	}

	if err != nil {
		return c.handler.HandleError(err)
	}
	return nil
}

// initLibrary creates the library layout and writes the default config
func (c *CLI) initLibrary() error {
	if err := c.store.InitLibrary(); err != nil {
		return errors.SetupError("initialize library", err)
	}
	if err := c.cfg.Save(c.libraryDir); err != nil {
		return errors.SetupError("write configuration", err)
	}
	fmt.Println(ui.StyleSuccess.Render("Initialized template library at " + c.libraryDir))
	return nil
}

// capture runs the template capture pipeline against the source
// presentation
func (c *CLI) capture(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("capture", flag.ContinueOnError)
	presentationID := fs.String("presentation", c.cfg.SourcePresentationID, "source presentation id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *presentationID == "" {
		return errors.NewAppError(errors.ErrCodeInvalidInput,
			"no source presentation configured; pass --presentation or set source_presentation_id")
	}
	if c.Reader == nil || c.Classifier == nil {
		return errors.SetupError("capture",
			fmt.Errorf("source reader and slide classifier collaborators are not configured"))
	}

	capturer := deck.NewCapturer(c.Reader, c.Classifier, c.store, c.logger)
	result, err := capturer.CaptureAll(ctx, *presentationID)
	if err != nil {
		return err
	}

	fmt.Println(ui.StyleSuccess.Render(
		fmt.Sprintf("Captured %d templates (%d slides skipped)", result.SlidesCaptured, result.SlidesSkipped)))
	for _, slideType := range result.SlideTypes {
		fmt.Println("  " + slideType)
	}
	return nil
}

// generate runs the deck build pipeline from a creative concept
func (c *CLI) generate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	concept := fs.String("concept", "", "creative concept text, or path to a file containing it")
	title := fs.String("title", c.cfg.OutputTitle, "title for the generated presentation")
	sourceID := fs.String("presentation", c.cfg.SourcePresentationID, "source presentation id to copy from")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *concept == "" {
		return errors.NewAppError(errors.ErrCodeInvalidInput, "generate requires --concept")
	}
	if c.Planner == nil || c.Executor == nil {
		return errors.SetupError("generate",
			fmt.Errorf("deck planner and executor collaborators are not configured"))
	}

	conceptText := *concept
	if data, err := os.ReadFile(conceptText); err == nil {
		conceptText = string(data)
	}

	builder := deck.NewBuilder(c.store, c.Planner, c.Executor, c.logger)
	result, err := builder.Build(ctx, *sourceID, conceptText, *title)
	if err != nil {
		return err
	}

	fmt.Println(ui.StyleSuccess.Render(
		fmt.Sprintf("Deck created: %s (%d slides, %d skipped)",
			result.PresentationID, result.SlidesCreated, result.SlidesSkipped)))
	for _, warning := range result.Warnings {
		fmt.Println(ui.StyleWarning.Render("  " + warning))
	}
	return nil
}

// listTemplates prints the stored templates
func (c *CLI) listTemplates() error {
	entries, err := c.store.ListMetadata()
	if err != nil {
		return errors.StorageError("list templates", err)
	}

	if len(entries) == 0 {
		fmt.Println(ui.StyleMuted.Render("No templates stored. Run 'deckgen capture' first."))
		return nil
	}

	fmt.Println(ui.StyleHeader.Render(fmt.Sprintf("Templates (%d)", len(entries))))
	for _, e := range entries {
		fmt.Printf("%s  %s\n",
			ui.StyleTitle.Render(e.SlideType),
			ui.StyleMuted.Render(fmt.Sprintf("%d placeholders", len(e.TextSections))))
	}
	return nil
}

// showTemplate prints one stored template in detail
func (c *CLI) showTemplate(args []string) error {
	if len(args) == 0 {
		return errors.NewAppError(errors.ErrCodeInvalidInput, "show requires a slide type")
	}

	template, err := c.store.GetTemplate(args[0])
	if err != nil {
		return err
	}

	var b strings.Builder
	b.WriteString(ui.StyleTitle.Render(template.SlideType) + "\n")
	if template.Description != "" {
		b.WriteString(template.Description + "\n")
	}
	b.WriteString(ui.StyleHeader.Render("Text sections") + "\n")
	for i, section := range template.TextSections() {
		b.WriteString(fmt.Sprintf("  %d. %s\n", i+1, section))
	}
	b.WriteString(ui.StyleHeader.Render("Operations") + "\n")
	for _, op := range template.Operations {
		switch {
		case op.Duplicate != nil:
			b.WriteString(fmt.Sprintf("  duplicate %s\n", op.Duplicate.ObjectID))
		case op.ReplaceText != nil:
			b.WriteString(fmt.Sprintf("  replace %q\n", op.ReplaceText.ContainsText.Text))
		}
	}
	fmt.Println(ui.StyleBlock.Render(strings.TrimRight(b.String(), "\n")))
	return nil
}

// deleteTemplate removes a stored template
func (c *CLI) deleteTemplate(args []string) error {
	if len(args) == 0 {
		return errors.NewAppError(errors.ErrCodeInvalidInput, "delete requires a slide type")
	}
	if err := c.store.DeleteTemplate(args[0]); err != nil {
		return err
	}
	fmt.Println(ui.StyleSuccess.Render("Deleted template " + storage.NormalizeType(args[0])))
	return nil
}

// printCatalog prints the summary index, optionally filtered, and
// optionally exports the planner agent config
func (c *CLI) printCatalog(args []string) error {
	fs := flag.NewFlagSet("catalog", flag.ContinueOnError)
	find := fs.String("find", "", "fuzzy-filter catalog entries by slide type")
	agentConfig := fs.String("agent-config", "", "export the planner agent config to this path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	indexer := catalog.NewIndexer(c.store, c.logger)
	entries, err := indexer.Entries()
	if err != nil {
		return errors.StorageError("scan templates", err)
	}

	if *find != "" {
		entries = catalog.Search(entries, *find)
	}

	blocks := make([]string, len(entries))
	for i, e := range entries {
		blocks[i] = e.String()
	}
	index := strings.Join(blocks, "\n\n")
	fmt.Println(index)

	if *agentConfig != "" {
		briefing := catalog.PlannerBriefing(index)
		if err := catalog.WriteAgentConfig(*agentConfig, c.cfg.PlannerName, briefing); err != nil {
			return errors.StorageError("write agent config", err)
		}
		fmt.Println(ui.StyleSuccess.Render("Planner agent config written to " + *agentConfig))
	}
	return nil
}

// printUsage prints CLI usage information
func (c *CLI) printUsage() error {
	fmt.Print(`deckgen - slide template capture and deck generation

USAGE:
    deckgen <command> [options]

COMMANDS:
    init                     Initialize the template library
    capture [--presentation <id>]
                             Capture templates from the source presentation
    generate --concept <text|file> [--title <title>]
                             Generate a deck from a creative concept
    templates, ls            List stored templates
    show <slide-type>        Show one template in detail
    delete, rm <slide-type>  Delete a stored template
    catalog [--find <query>] [--agent-config <path>]
                             Print the template catalog
    help                     Show this help

STORAGE:
    Default directory: ~/.deckgen
    Override with: DECKGEN_DIR=<path>
`)
	return nil
}
