package devcontainer

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseCompose = `services:
  frappe:
    image: docker.io/frappe/bench:latest
  mariadb:
    image: docker.io/mariadb:10.6
`

// checkFixture lays out a .devcontainer directory with a base compose
// file and returns the wiring for it.
func checkFixture(t *testing.T) Wiring {
	t.Helper()
	dir := filepath.Join(t.TempDir(), ".devcontainer")
	writeFile(t, filepath.Join(dir, "docker-compose.yml"), baseCompose)
	return Wiring{
		DevContainerPath: filepath.Join(dir, "devcontainer.json"),
		FragmentPath:     filepath.Join(dir, "docker-compose.mounts.yml"),
		Service:          "frappe",
	}
}

func fields(findings []Finding) []string {
	out := make([]string, 0, len(findings))
	for _, f := range findings {
		out = append(out, string(f.Severity)+" "+f.Field)
	}
	return out
}

func TestCheckWiring_Complete(t *testing.T) {
	w := checkFixture(t)
	raw := &RawDevContainer{
		DockerComposeFile: []interface{}{"docker-compose.yml", "./docker-compose.mounts.yml"},
		Service:           "frappe",
		RunServices:       []string{"frappe", "mariadb"},
		InitializeCommand: "frappe-mounts",
	}

	assert.Empty(t, CheckWiring(raw, w))
}

func TestCheckWiring_Findings(t *testing.T) {
	tests := []struct {
		name string
		raw  RawDevContainer
		want []string
	}{
		{
			name: "compose file unset",
			raw:  RawDevContainer{InitializeCommand: "frappe-mounts"},
			want: []string{"error dockerComposeFile"},
		},
		{
			name: "fragment not listed",
			raw: RawDevContainer{
				DockerComposeFile: "docker-compose.yml",
				InitializeCommand: "frappe-mounts",
			},
			want: []string{"error dockerComposeFile"},
		},
		{
			name: "fragment before base",
			raw: RawDevContainer{
				DockerComposeFile: []interface{}{"docker-compose.mounts.yml", "docker-compose.yml"},
				InitializeCommand: []interface{}{"frappe-mounts", "--no-diagnostics"},
			},
			want: []string{"warning dockerComposeFile"},
		},
		{
			name: "only the fragment",
			raw: RawDevContainer{
				DockerComposeFile: "docker-compose.mounts.yml",
				InitializeCommand: "frappe-mounts",
			},
			want: []string{"error dockerComposeFile"},
		},
		{
			name: "base compose file missing",
			raw: RawDevContainer{
				DockerComposeFile: []interface{}{"compose/missing.yml", "docker-compose.mounts.yml"},
				InitializeCommand: "frappe-mounts",
			},
			want: []string{"warning dockerComposeFile", "error dockerComposeFile"},
		},
		{
			name: "attached to another service",
			raw: RawDevContainer{
				DockerComposeFile: []interface{}{"docker-compose.yml", "docker-compose.mounts.yml"},
				Service:           "mariadb",
				InitializeCommand: "frappe-mounts",
			},
			want: []string{"warning service"},
		},
		{
			name: "service not started",
			raw: RawDevContainer{
				DockerComposeFile: []interface{}{"docker-compose.yml", "docker-compose.mounts.yml"},
				RunServices:       []string{"mariadb"},
				InitializeCommand: "frappe-mounts",
			},
			want: []string{"error runServices"},
		},
		{
			name: "generator not run",
			raw: RawDevContainer{
				DockerComposeFile: []interface{}{"docker-compose.yml", "docker-compose.mounts.yml"},
				InitializeCommand: map[string]interface{}{"deps": "npm ci"},
			},
			want: []string{"warning initializeCommand"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := checkFixture(t)
			assert.Equal(t, tt.want, fields(CheckWiring(&tt.raw, w)))
		})
	}
}

func TestCheckWiring_ServiceUndefined(t *testing.T) {
	w := checkFixture(t)
	w.Service = "backend"
	raw := &RawDevContainer{
		DockerComposeFile: []interface{}{"docker-compose.yml", "docker-compose.mounts.yml"},
		InitializeCommand: "frappe-mounts --service backend",
	}

	findings := CheckWiring(raw, w)
	require.Len(t, findings, 1)
	assert.Equal(t, SeverityError, findings[0].Severity)
	assert.Contains(t, findings[0].Message, `"backend"`)
	assert.True(t, HasErrors(findings))
}

func TestCheckWiring_FragmentElsewhere(t *testing.T) {
	w := checkFixture(t)
	w.FragmentPath = filepath.Join(filepath.Dir(w.DevContainerPath), "..", "generated", "mounts.yml")
	raw := &RawDevContainer{
		DockerComposeFile: []interface{}{"docker-compose.yml", "../generated/mounts.yml"},
		InitializeCommand: "frappe-mounts",
	}

	assert.Equal(t, "../generated/mounts.yml", w.FragmentRef())
	assert.Empty(t, CheckWiring(raw, w))
}

func TestHasErrors(t *testing.T) {
	assert.False(t, HasErrors(nil))
	assert.False(t, HasErrors([]Finding{{Severity: SeverityWarning}}))
	assert.True(t, HasErrors([]Finding{{Severity: SeverityWarning}, {Severity: SeverityError}}))
}
