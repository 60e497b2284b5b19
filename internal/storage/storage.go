// Package storage persists captured slide templates as YAML-frontmatter
// markdown files keyed by normalized slide type.
package storage

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"deckgen/internal/errors"
	"deckgen/internal/models"

	"github.com/natefinch/atomic"
	"gopkg.in/yaml.v3"
)

// Storage handles all file system operations for slide templates
type Storage struct {
	rootPath string
	cache    *MetadataCache
	logger   *slog.Logger
}

// NewStorage creates a new storage instance. The library root defaults to
// ~/.deckgen when rootPath is empty.
func NewStorage(rootPath string, logger *slog.Logger) (*Storage, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if rootPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		rootPath = filepath.Join(homeDir, ".deckgen")
	}

	cache := NewMetadataCache(rootPath)
	if err := cache.Load(); err != nil {
		// cache is optional
		logger.Warn("failed to load metadata cache", "error", err)
	}

	return &Storage{
		rootPath: rootPath,
		cache:    cache,
		logger:   logger,
	}, nil
}

// InitLibrary creates the directory structure for a template library
func (s *Storage) InitLibrary() error {
	dirs := []string{
		s.rootPath,
		filepath.Join(s.rootPath, "templates"),
		filepath.Join(s.rootPath, ".deckgen"),
		filepath.Join(s.rootPath, ".deckgen", "cache"),
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// GetBaseDir returns the root path of the storage
func (s *Storage) GetBaseDir() string {
	return s.rootPath
}

// NormalizeType converts a slide type to its storage key: lowercase with
// spaces replaced by underscores and slashes stripped
func NormalizeType(slideType string) string {
	key := strings.ReplaceAll(slideType, " ", "_")
	key = strings.ReplaceAll(key, "/", "")
	return strings.ToLower(key)
}

// templatePath returns the library-relative path for a slide type
func templatePath(slideType string) string {
	return filepath.Join("templates", NormalizeType(slideType)+".md")
}

// SaveTemplate persists a template under its normalized slide type.
// Last write wins; there is no versioning.
func (s *Storage) SaveTemplate(template *models.Template) error {
	relPath := templatePath(template.SlideType)
	fullPath := filepath.Join(s.rootPath, relPath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	content, err := serializeTemplate(template)
	if err != nil {
		return fmt.Errorf("failed to serialize template: %w", err)
	}

	if err := atomic.WriteFile(fullPath, bytes.NewReader(content)); err != nil {
		return errors.StorageError(fmt.Sprintf("write template '%s'", template.SlideType), err)
	}

	template.FilePath = relPath
	return nil
}

// GetTemplate loads the template stored for a slide type. A missing entry
// is a TemplateNotFound error, recovered per slide by callers.
func (s *Storage) GetTemplate(slideType string) (*models.Template, error) {
	relPath := templatePath(slideType)
	fullPath := filepath.Join(s.rootPath, relPath)

	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		return nil, errors.TemplateNotFoundError(slideType)
	}

	return s.loadTemplate(relPath)
}

// DeleteTemplate removes a stored template
func (s *Storage) DeleteTemplate(slideType string) error {
	fullPath := filepath.Join(s.rootPath, templatePath(slideType))
	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		return errors.TemplateNotFoundError(slideType)
	}
	return os.Remove(fullPath)
}

// loadTemplate reads and parses one template file by library-relative path
func (s *Storage) loadTemplate(relPath string) (*models.Template, error) {
	fullPath := filepath.Join(s.rootPath, relPath)

	file, err := os.Open(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open template file: %w", err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read template file: %w", err)
	}

	template, err := parseTemplateFile(content)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeFileCorrupted,
			fmt.Sprintf("template file '%s' is corrupted", relPath))
	}

	template.FilePath = relPath
	return template, nil
}

// ListTemplates returns all templates in the library. Malformed entries
// are skipped with a warning, never fatal to the scan.
func (s *Storage) ListTemplates() ([]*models.Template, error) {
	templatesDir := filepath.Join(s.rootPath, "templates")

	var templates []*models.Template
	err := filepath.Walk(templatesDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if !info.IsDir() && strings.HasSuffix(path, ".md") {
			relPath, _ := filepath.Rel(s.rootPath, path)
			template, err := s.loadTemplate(relPath)
			if err != nil {
				s.logger.Warn("skipping unreadable template", "path", relPath, "error", err)
				return nil
			}
			templates = append(templates, template)
		}

		return nil
	})

	return templates, err
}

// ListMetadata returns the metadata of all stored templates, served from
// the cache when file modification times allow it
func (s *Storage) ListMetadata() ([]*TemplateMetadata, error) {
	templatesDir := filepath.Join(s.rootPath, "templates")

	var entries []*TemplateMetadata
	existingFiles := make(map[string]bool)
	cacheModified := false

	err := filepath.Walk(templatesDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if !info.IsDir() && strings.HasSuffix(path, ".md") {
			relPath, _ := filepath.Rel(s.rootPath, path)
			existingFiles[relPath] = true

			if cached, valid := s.cache.Get(relPath, info); valid {
				entries = append(entries, cached)
				return nil
			}

			template, err := s.loadTemplate(relPath)
			if err != nil {
				s.logger.Warn("skipping unreadable template", "path", relPath, "error", err)
				return nil
			}

			s.cache.Set(relPath, info, template)
			cacheModified = true
			entries = append(entries, newMetadata(relPath, info, template))
		}

		return nil
	})

	s.cache.Cleanup(existingFiles)

	if cacheModified {
		if err := s.cache.Save(); err != nil {
			s.logger.Warn("failed to save metadata cache", "error", err)
		}
	}

	return entries, err
}

// SlideTypes returns the normalized slide types of all stored templates
func (s *Storage) SlideTypes() ([]string, error) {
	entries, err := s.ListMetadata()
	if err != nil {
		return nil, err
	}
	types := make([]string, 0, len(entries))
	for _, e := range entries {
		types = append(types, e.SlideType)
	}
	return types, nil
}

// Helper functions

// templateFrontmatter is the persisted record shape: slide type, ordered
// length labels, and the operation tree. The description travels as the
// markdown body below the frontmatter.
type templateFrontmatter struct {
	SlideType    string             `yaml:"slide_type"`
	TextSections []string           `yaml:"text_sections"`
	Operations   []models.Operation `yaml:"operations"`
}

func parseTemplateFile(content []byte) (*models.Template, error) {
	scanner := bufio.NewScanner(bytes.NewReader(content))

	if !scanner.Scan() || scanner.Text() != "---" {
		return nil, fmt.Errorf("missing frontmatter delimiter")
	}

	var frontmatterLines []string
	for scanner.Scan() {
		line := scanner.Text()
		if line == "---" {
			break
		}
		frontmatterLines = append(frontmatterLines, line)
	}

	frontmatter := strings.Join(frontmatterLines, "\n")
	var record templateFrontmatter
	if err := yaml.Unmarshal([]byte(frontmatter), &record); err != nil {
		return nil, fmt.Errorf("failed to parse frontmatter: %w", err)
	}

	lengths := make([]int, len(record.TextSections))
	for i, label := range record.TextSections {
		n, err := models.ParseTextSection(label)
		if err != nil {
			return nil, fmt.Errorf("failed to parse text sections: %w", err)
		}
		lengths[i] = n
	}

	var contentLines []string
	for scanner.Scan() {
		contentLines = append(contentLines, scanner.Text())
	}
	description := strings.Join(contentLines, "\n")
	description = strings.TrimSpace(description)

	return &models.Template{
		SlideType:          record.SlideType,
		Operations:         record.Operations,
		PlaceholderLengths: lengths,
		Description:        description,
	}, nil
}

// serializeTemplate converts a template to YAML frontmatter + markdown body
func serializeTemplate(template *models.Template) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("---\n")

	record := templateFrontmatter{
		SlideType:    NormalizeType(template.SlideType),
		TextSections: template.TextSections(),
		Operations:   template.Operations,
	}
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(record); err != nil {
		return nil, fmt.Errorf("failed to encode frontmatter: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode frontmatter: %w", err)
	}

	buf.WriteString("---\n")

	if template.Description != "" {
		buf.WriteString("\n")
		buf.WriteString(template.Description)
		if !strings.HasSuffix(template.Description, "\n") {
			buf.WriteString("\n")
		}
	}

	return buf.Bytes(), nil
}
