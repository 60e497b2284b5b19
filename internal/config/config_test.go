package config

import (
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.OutputTitle != "Generated Presentation" {
		t.Errorf("default output title = %q", cfg.OutputTitle)
	}
	if cfg.PlannerName != "deck_planner" {
		t.Errorf("default planner name = %q", cfg.PlannerName)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()

	cfg := DefaultConfig()
	cfg.SourcePresentationID = "pres-123"
	cfg.OutputTitle = "Quarterly Review"
	if err := cfg.Save(dir); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.SourcePresentationID != "pres-123" {
		t.Errorf("source presentation id = %q", loaded.SourcePresentationID)
	}
	if loaded.OutputTitle != "Quarterly Review" {
		t.Errorf("output title = %q", loaded.OutputTitle)
	}
}

func TestLibraryDirOverride(t *testing.T) {
	t.Setenv("DECKGEN_DIR", "/tmp/custom-lib")
	if got := LibraryDir(); got != "/tmp/custom-lib" {
		t.Errorf("LibraryDir() = %q, want the env override", got)
	}
}
