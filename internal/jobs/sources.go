package jobs

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Source is one discovery feed from the sources file.
type Source struct {
	Name    string `yaml:"name"`
	URL     string `yaml:"url"`
	State   string `yaml:"state,omitempty"`
	Enabled bool   `yaml:"enabled"`
}

type sourcesFile struct {
	Sources []Source `yaml:"sources"`
}

// LoadSources reads the discovery sources YAML. Disabled sources are
// filtered out here so callers only see what should run.
func LoadSources(path string) ([]Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sources file: %w", err)
	}

	var file sourcesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse sources file: %w", err)
	}

	enabled := make([]Source, 0, len(file.Sources))
	for _, source := range file.Sources {
		if source.Name == "" || source.URL == "" {
			return nil, fmt.Errorf("source entries need both name and url")
		}
		if source.Enabled {
			enabled = append(enabled, source)
		}
	}
	return enabled, nil
}
