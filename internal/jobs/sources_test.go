package jobs

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSourcesFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sources.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write sources file: %v", err)
	}
	return path
}

func TestLoadSources_FiltersDisabled(t *testing.T) {
	path := writeSourcesFile(t, `
sources:
  - name: mahl
    url: https://example.com/mahl.json
    state: MN
    enabled: true
  - name: stale-feed
    url: https://example.com/old.json
    enabled: false
`)

	sources, err := LoadSources(path)
	if err != nil {
		t.Fatalf("LoadSources() error: %v", err)
	}
	if len(sources) != 1 {
		t.Fatalf("expected 1 enabled source, got %d", len(sources))
	}
	if sources[0].Name != "mahl" {
		t.Errorf("Name = %q, want mahl", sources[0].Name)
	}
	if sources[0].State != "MN" {
		t.Errorf("State = %q, want MN", sources[0].State)
	}
}

func TestLoadSources_RequiresNameAndURL(t *testing.T) {
	path := writeSourcesFile(t, `
sources:
  - name: incomplete
    enabled: true
`)

	if _, err := LoadSources(path); err == nil {
		t.Fatal("expected error for source without url")
	}
}

func TestLoadSources_MissingFile(t *testing.T) {
	if _, err := LoadSources(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadSources_BadYAML(t *testing.T) {
	path := writeSourcesFile(t, "sources: [not: closed")

	if _, err := LoadSources(path); err == nil {
		t.Fatal("expected error for malformed yaml")
	}
}
