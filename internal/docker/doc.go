// Package docker provides the read-only Docker Engine API access used by
// the status command of the frappe-mounts CLI.
//
// This package handles:
//   - Docker client initialization with automatic socket detection
//     (Linux, macOS, Windows)
//   - Discovery of the containers Docker Compose created for a service,
//     via the com.docker.compose.* labels Compose attaches to them
//   - Comparison of the binds a container actually has against the mounts
//     derived from frappe-apps.json
//
// The package uses github.com/docker/docker/client as the underlying
// Docker SDK, with version negotiation enabled for broad compatibility.
// It never starts, stops or modifies containers.
package docker
