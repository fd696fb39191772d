package docker

import (
	"github.com/docker/docker/api/types/filters"
)

// Labels that Docker Compose attaches to every container it creates.
// frappe-mounts never sets labels itself; it only reads these.
const (
	// LabelComposeService holds the service name from the compose file.
	LabelComposeService = "com.docker.compose.service"

	// LabelComposeProject holds the compose project name.
	LabelComposeProject = "com.docker.compose.project"

	// LabelComposeWorkingDir holds the directory compose was run from.
	LabelComposeWorkingDir = "com.docker.compose.project.working_dir"
)

// ServiceFilter matches the containers of one compose service. An empty
// project matches the service in every project.
func ServiceFilter(service, project string) filters.Args {
	args := filters.NewArgs(filters.Arg("label", LabelComposeService+"="+service))
	if project != "" {
		args.Add("label", LabelComposeProject+"="+project)
	}
	return args
}
