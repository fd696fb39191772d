package mounts

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/frappe-mounts/internal/model"
)

// parsedManifest mirrors the generated document for structural assertions.
type parsedManifest struct {
	Version  string `yaml:"version"`
	Services map[string]struct {
		Volumes     []string `yaml:"volumes"`
		Environment []string `yaml:"environment"`
	} `yaml:"services"`
}

func parseManifest(t *testing.T, data []byte) parsedManifest {
	t.Helper()
	var m parsedManifest
	require.NoError(t, yaml.Unmarshal(data, &m), "generated manifest must be valid YAML")
	return m
}

// TestRenderManifest_Volumes verifies one "source:target" entry per mount,
// in order, under the configured service.
func TestRenderManifest_Volumes(t *testing.T) {
	mounts := []model.ResolvedMount{
		{Source: "/host/hr", Target: "/workspace/development/frappe-bench/apps/hr"},
		{Source: "../apps/crm", Target: "/workspace/development/frappe-bench/apps/crm"},
	}

	data, err := RenderManifest("frappe", "frappe-apps.json", mounts)
	require.NoError(t, err)
	out := string(data)

	assert.True(t, strings.HasPrefix(out, "# This file is generated from frappe-apps.json via frappe-mounts\n"))
	assert.Contains(t, out, "version: '3.8'\n")
	assert.Contains(t, out, "services:\n  frappe:\n    volumes:\n")
	assert.Contains(t, out, "      - /host/hr:/workspace/development/frappe-bench/apps/hr\n")
	assert.Contains(t, out, "      - ../apps/crm:/workspace/development/frappe-bench/apps/crm\n")
	assert.NotContains(t, out, FallbackEnv)

	m := parseManifest(t, data)
	assert.Equal(t, "3.8", m.Version)
	require.Contains(t, m.Services, "frappe")
	assert.Equal(t, []string{
		"/host/hr:/workspace/development/frappe-bench/apps/hr",
		"../apps/crm:/workspace/development/frappe-bench/apps/crm",
	}, m.Services["frappe"].Volumes)
	assert.Empty(t, m.Services["frappe"].Environment)
}

// TestRenderManifest_Fallback verifies an empty list emits the marker
// environment entry and no volumes.
func TestRenderManifest_Fallback(t *testing.T) {
	for _, mounts := range [][]model.ResolvedMount{nil, {}} {
		data, err := RenderManifest("frappe", "frappe-apps.json", mounts)
		require.NoError(t, err)

		out := string(data)
		assert.Contains(t, out, "    environment:\n      - DYNAMIC_MOUNTS_LOADED=false\n")
		assert.NotContains(t, out, "volumes:")

		m := parseManifest(t, data)
		assert.Equal(t, []string{FallbackEnv}, m.Services["frappe"].Environment)
		assert.Empty(t, m.Services["frappe"].Volumes)
	}
}

// TestRenderManifest_ServiceName verifies the service key is configurable
// and the header only uses the input's base name.
func TestRenderManifest_ServiceName(t *testing.T) {
	data, err := RenderManifest("backend", "/repo/.devcontainer/frappe-apps.json", nil)
	require.NoError(t, err)

	m := parseManifest(t, data)
	assert.Contains(t, m.Services, "backend")
	assert.NotContains(t, m.Services, "frappe")
	assert.Contains(t, string(data), "generated from frappe-apps.json via")
}

// TestRenderManifest_Deterministic verifies identical input renders
// byte-identical output, keeping the generated file diff-friendly.
func TestRenderManifest_Deterministic(t *testing.T) {
	mounts := []model.ResolvedMount{{Source: "/a", Target: "/b"}}

	first, err := RenderManifest("frappe", "frappe-apps.json", mounts)
	require.NoError(t, err)
	second, err := RenderManifest("frappe", "frappe-apps.json", mounts)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

// TestWriteManifest_Overwrites verifies prior content is replaced, not merged.
func TestWriteManifest_Overwrites(t *testing.T) {
	out := filepath.Join(t.TempDir(), "nested", "docker-compose.mounts.yml")

	require.NoError(t, WriteManifest(out, []byte("old content that is much longer than the new one\n")))
	require.NoError(t, WriteManifest(out, []byte("new\n")))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "new\n", string(data))
}

// TestWriteManifest_Failure verifies a write into an impossible location
// is reported.
func TestWriteManifest_Failure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	err := WriteManifest(filepath.Join(blocker, "docker-compose.mounts.yml"), []byte("x"))
	assert.Error(t, err)
}
