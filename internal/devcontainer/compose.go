package devcontainer

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// composeFile is the part of a compose file needed to list its services.
// Service bodies are kept as raw nodes; only the keys matter.
type composeFile struct {
	Services map[string]yaml.Node `yaml:"services"`
}

// ComposeServices returns the sorted service names defined in a compose
// file.
func ComposeServices(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read compose file: %w", err)
	}

	var cf composeFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("failed to parse compose file %s: %w", path, err)
	}

	names := make([]string, 0, len(cf.Services))
	for name := range cf.Services {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
