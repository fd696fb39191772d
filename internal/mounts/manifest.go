package mounts

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/frappe-mounts/internal/model"
)

const (
	// ComposeVersion is the schema version marker written to the manifest.
	ComposeVersion = "3.8"

	// FallbackEnv is the single environment entry written when no mounts
	// resolved, so the service block is never empty.
	FallbackEnv = "DYNAMIC_MOUNTS_LOADED=false"

	// generatorName appears in the header comment.
	generatorName = "frappe-mounts"
)

// composeManifest is the generated fragment. Docker Compose merges it over
// the base file, so it only names the service and what it adds.
type composeManifest struct {
	Version  singleQuoted              `yaml:"version"`
	Services map[string]composeService `yaml:"services"`
}

// composeService carries exactly one of Volumes or Environment.
type composeService struct {
	Volumes     []string `yaml:"volumes,omitempty"`
	Environment []string `yaml:"environment,omitempty"`
}

// singleQuoted forces 'x' quoting so the version keeps its familiar form.
type singleQuoted string

func (s singleQuoted) MarshalYAML() (interface{}, error) {
	return &yaml.Node{
		Kind:  yaml.ScalarNode,
		Style: yaml.SingleQuotedStyle,
		Value: string(s),
	}, nil
}

// RenderManifest builds the compose fragment for serviceName. Each mount
// becomes a "source:target" volume entry in the given order; an empty list
// yields the FallbackEnv environment entry instead. inputName is only used
// in the header comment.
func RenderManifest(serviceName, inputName string, mounts []model.ResolvedMount) ([]byte, error) {
	var svc composeService
	if len(mounts) == 0 {
		svc.Environment = []string{FallbackEnv}
	} else {
		for _, m := range mounts {
			svc.Volumes = append(svc.Volumes, m.Bind())
		}
	}

	manifest := composeManifest{
		Version:  ComposeVersion,
		Services: map[string]composeService{serviceName: svc},
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# This file is generated from %s via %s\n", filepath.Base(inputName), generatorName)
	buf.WriteString("# DO NOT EDIT - it is rewritten on every run\n")

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&manifest); err != nil {
		return nil, fmt.Errorf("failed to serialize compose manifest: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to serialize compose manifest: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteManifest writes data to outputPath, creating parent directories and
// replacing any previous file.
func WriteManifest(outputPath string, data []byte) error {
	dir := filepath.Dir(outputPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write compose manifest to %s: %w", outputPath, err)
	}
	return nil
}
