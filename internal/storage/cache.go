package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"deckgen/internal/models"
)

// TemplateMetadata represents cached metadata for a stored template:
// everything the catalog needs without re-parsing the operation tree
type TemplateMetadata struct {
	SlideType    string    `json:"slide_type"`
	Description  string    `json:"description"`
	TextSections []string  `json:"text_sections"`
	FilePath     string    `json:"file_path"`
	ModTime      time.Time `json:"mod_time"`
}

// MetadataCache handles caching of template metadata
type MetadataCache struct {
	cacheDir  string
	cacheFile string
	metadata  map[string]*TemplateMetadata
	mu        sync.RWMutex // protects metadata map
}

// NewMetadataCache creates a new metadata cache
func NewMetadataCache(baseDir string) *MetadataCache {
	cacheDir := filepath.Join(baseDir, ".deckgen", "cache")
	return &MetadataCache{
		cacheDir:  cacheDir,
		cacheFile: filepath.Join(cacheDir, "metadata.json"),
		metadata:  make(map[string]*TemplateMetadata),
	}
}

// Load loads the metadata cache from disk
func (c *MetadataCache) Load() error {
	if err := os.MkdirAll(c.cacheDir, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	if _, err := os.Stat(c.cacheFile); os.IsNotExist(err) {
		return nil // no cache file exists yet
	}

	data, err := os.ReadFile(c.cacheFile)
	if err != nil {
		return fmt.Errorf("failed to read cache file: %w", err)
	}

	c.mu.Lock()
	if err := json.Unmarshal(data, &c.metadata); err != nil {
		// corrupted cache starts fresh
		c.metadata = make(map[string]*TemplateMetadata)
	}
	c.mu.Unlock()

	return nil
}

// Save saves the metadata cache to disk
func (c *MetadataCache) Save() error {
	c.mu.RLock()
	data, err := json.MarshalIndent(c.metadata, "", "  ")
	c.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to marshal cache: %w", err)
	}

	if err := os.WriteFile(c.cacheFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}

	return nil
}

// Get retrieves metadata for a file, checking if the cache entry is still
// valid against the file's modification time
func (c *MetadataCache) Get(relPath string, fileInfo os.FileInfo) (*TemplateMetadata, bool) {
	c.mu.RLock()
	cached, exists := c.metadata[relPath]
	c.mu.RUnlock()
	if !exists {
		return nil, false
	}

	if !fileInfo.ModTime().Equal(cached.ModTime) {
		return nil, false
	}

	return cached, true
}

// Set stores metadata in the cache
func (c *MetadataCache) Set(relPath string, fileInfo os.FileInfo, template *models.Template) {
	c.mu.Lock()
	c.metadata[relPath] = newMetadata(relPath, fileInfo, template)
	c.mu.Unlock()
}

// Cleanup removes cache entries for files that no longer exist
func (c *MetadataCache) Cleanup(existingFiles map[string]bool) {
	c.mu.Lock()
	for relPath := range c.metadata {
		if !existingFiles[relPath] {
			delete(c.metadata, relPath)
		}
	}
	c.mu.Unlock()
}

// newMetadata builds the cache entry for a parsed template
func newMetadata(relPath string, fileInfo os.FileInfo, template *models.Template) *TemplateMetadata {
	return &TemplateMetadata{
		SlideType:    template.SlideType,
		Description:  template.Description,
		TextSections: template.TextSections(),
		FilePath:     relPath,
		ModTime:      fileInfo.ModTime(),
	}
}
