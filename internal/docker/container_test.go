package docker

import (
	"path/filepath"
	"testing"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/mount"
	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/frappe-mounts/internal/model"
)

// TestServiceFilter verifies the label filters sent to the daemon.
func TestServiceFilter(t *testing.T) {
	args := ServiceFilter("frappe", "")
	assert.Equal(t, []string{"com.docker.compose.service=frappe"}, args.Get("label"))

	args = ServiceFilter("frappe", "bench")
	assert.ElementsMatch(t, []string{
		"com.docker.compose.service=frappe",
		"com.docker.compose.project=bench",
	}, args.Get("label"))
}

// TestToServiceContainer verifies name cleanup, project extraction and
// that only bind mounts are kept, sorted by destination.
func TestToServiceContainer(t *testing.T) {
	summary := container.Summary{
		ID:     "abc123",
		Names:  []string{"/bench-frappe-1"},
		Labels: map[string]string{
			LabelComposeService:    "frappe",
			LabelComposeProject:    "bench",
			LabelComposeWorkingDir: "/repo/.devcontainer",
		},
		Mounts: []container.MountPoint{
			{Type: mount.TypeBind, Source: "/home/dev/hrms", Destination: "/workspace/development/frappe-bench/apps/hrms"},
			{Type: mount.TypeVolume, Name: "sites", Source: "/var/lib/docker/volumes/sites/_data", Destination: "/workspace/sites"},
			{Type: mount.TypeBind, Source: "/home/dev/erpnext", Destination: "/workspace/development/frappe-bench/apps/erpnext"},
		},
	}

	sc := toServiceContainer(summary)

	assert.Equal(t, "abc123", sc.ID)
	assert.Equal(t, "bench-frappe-1", sc.Name)
	assert.Equal(t, "bench", sc.Project)
	assert.Equal(t, "/repo/.devcontainer", sc.WorkingDir)
	assert.Equal(t, []model.ResolvedMount{
		{Source: "/home/dev/erpnext", Target: "/workspace/development/frappe-bench/apps/erpnext"},
		{Source: "/home/dev/hrms", Target: "/workspace/development/frappe-bench/apps/hrms"},
	}, sc.Binds)
}

// TestToServiceContainer_NoNames verifies a container without names does
// not panic.
func TestToServiceContainer_NoNames(t *testing.T) {
	sc := toServiceContainer(container.Summary{ID: "x"})
	assert.Empty(t, sc.Name)
	assert.Empty(t, sc.Binds)
}

// TestNormalizeSource covers absolute, relative and home-relative sources.
func TestNormalizeSource(t *testing.T) {
	assert.Equal(t, "/host/hr", NormalizeSource("/host/hr/", "/repo/.devcontainer"))
	assert.Equal(t, "/repo/apps/hr", NormalizeSource("../apps/hr", "/repo/.devcontainer"))
	assert.Equal(t, "/repo/.devcontainer/hr", NormalizeSource("./hr", "/repo/.devcontainer"))

	home, err := homedir.Dir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}
	assert.Equal(t, filepath.Join(home, "apps", "hr"), NormalizeSource("~/apps/hr", "/repo"))
}

// TestCompareMounts verifies each state in desired order.
func TestCompareMounts(t *testing.T) {
	desired := []model.ResolvedMount{
		{Source: "../apps/hrms", Target: "/workspace/development/frappe-bench/apps/hrms"},
		{Source: "/home/dev/erpnext", Target: "/workspace/development/frappe-bench/apps/erpnext"},
		{Source: "/home/dev/crm", Target: "/workspace/development/frappe-bench/apps/crm"},
	}
	binds := []model.ResolvedMount{
		{Source: "/home/dev/erpnext-old", Target: "/workspace/development/frappe-bench/apps/erpnext"},
		{Source: "/repo/apps/hrms", Target: "/workspace/development/frappe-bench/apps/hrms/"},
	}

	statuses := CompareMounts(desired, binds, "/repo/.devcontainer")
	require.Len(t, statuses, 3)

	assert.Equal(t, BindActive, statuses[0].State)
	assert.Equal(t, "/repo/apps/hrms", statuses[0].ActualSource)

	assert.Equal(t, BindMismatch, statuses[1].State)
	assert.Equal(t, "/home/dev/erpnext-old", statuses[1].ActualSource)

	assert.Equal(t, BindMissing, statuses[2].State)
	assert.Empty(t, statuses[2].ActualSource)
	assert.Equal(t, desired[2], statuses[2].Mount)
}

// TestCompareMounts_Empty verifies no desired mounts yields no statuses.
func TestCompareMounts_Empty(t *testing.T) {
	assert.Empty(t, CompareMounts(nil, []model.ResolvedMount{{Source: "/a", Target: "/b"}}, "/"))
}
