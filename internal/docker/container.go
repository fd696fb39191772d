package docker

import (
	"context"
	"sort"
	"strings"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/mount"

	"github.com/shinji-kodama/frappe-mounts/internal/model"
)

// ServiceContainer is a compose-created container and its bind mounts.
type ServiceContainer struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Project string `json:"project,omitempty"`
	State   string `json:"state"`

	// WorkingDir is the directory Compose resolved relative paths against.
	WorkingDir string `json:"workingDir,omitempty"`

	// Binds lists the container's bind mounts as host source to container
	// destination, sorted by destination.
	Binds []model.ResolvedMount `json:"binds"`
}

// FindServiceContainers lists every container (running or not) that
// Compose created for service, optionally limited to one project.
func FindServiceContainers(ctx context.Context, cli *Client, service, project string) ([]ServiceContainer, error) {
	containers, err := cli.inner.ContainerList(ctx, container.ListOptions{
		All:     true,
		Filters: ServiceFilter(service, project),
	})
	if err != nil {
		return nil, model.WrapCLIError(model.ExitDockerNotRunning, "failed to list Docker containers", err)
	}

	result := make([]ServiceContainer, 0, len(containers))
	for _, c := range containers {
		result = append(result, toServiceContainer(c))
	}
	return result, nil
}

// toServiceContainer maps the Docker API summary to our type. Non-bind
// mounts (named volumes, tmpfs) are dropped.
func toServiceContainer(c container.Summary) ServiceContainer {
	name := ""
	if len(c.Names) > 0 {
		// Docker reports names with a leading "/".
		name = strings.TrimPrefix(c.Names[0], "/")
	}

	sc := ServiceContainer{
		ID:         c.ID,
		Name:       name,
		Project:    c.Labels[LabelComposeProject],
		State:      string(c.State),
		WorkingDir: c.Labels[LabelComposeWorkingDir],
	}
	for _, mp := range c.Mounts {
		if mp.Type != mount.TypeBind {
			continue
		}
		sc.Binds = append(sc.Binds, model.ResolvedMount{Source: mp.Source, Target: mp.Destination})
	}
	sort.Slice(sc.Binds, func(i, j int) bool {
		return sc.Binds[i].Target < sc.Binds[j].Target
	})
	return sc
}
