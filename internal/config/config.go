// Package config holds the generator settings for frappe-mounts.
//
// Values are layered: built-in defaults, then FRAPPE_MOUNTS_* environment
// variables (via github.com/kelseyhightower/envconfig), then command-line
// flags applied by the cli package. The resulting Config is passed
// explicitly into mounts.Plan and mounts.Run; nothing reads process-wide globals.
package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is the prefix for environment overrides, e.g.
// FRAPPE_MOUNTS_SERVICE=frappe.
const EnvPrefix = "FRAPPE_MOUNTS"

const (
	// DefaultInput is the mount list read by default.
	DefaultInput = "frappe-apps.json"

	// DefaultOutput is the generated compose fragment.
	DefaultOutput = "docker-compose.mounts.yml"

	// DefaultService must match the service name in the base compose file.
	DefaultService = "frappe"

	// DefaultAppBase is where apps live inside the frappe container.
	DefaultAppBase = "/workspace/development/frappe-bench/apps"

	// DefaultListLimit caps the shallow directory listing in diagnostics.
	DefaultListLimit = 20
)

// Config is the complete set of generator settings.
type Config struct {
	// InputPath is the JSONC mount list.
	InputPath string `envconfig:"INPUT" default:"frappe-apps.json"`

	// OutputPath is where the compose fragment is written.
	OutputPath string `envconfig:"OUTPUT" default:"docker-compose.mounts.yml"`

	// ServiceName is the compose service that receives the volumes.
	ServiceName string `envconfig:"SERVICE" default:"frappe"`

	// AppBase is joined with a record's "app" to derive a missing target.
	AppBase string `envconfig:"APP_BASE" default:"/workspace/development/frappe-bench/apps"`

	// ListLimit is the maximum number of directory entries shown per source.
	ListLimit int `envconfig:"LIST_LIMIT" default:"20"`

	// Diagnostics enables the per-mount path report on stdout.
	Diagnostics bool `envconfig:"DIAGNOSTICS" default:"true"`
}

// Default returns the built-in configuration without consulting the
// environment.
func Default() Config {
	return Config{
		InputPath:   DefaultInput,
		OutputPath:  DefaultOutput,
		ServiceName: DefaultService,
		AppBase:     DefaultAppBase,
		ListLimit:   DefaultListLimit,
		Diagnostics: true,
	}
}

// FromEnv returns the defaults overlaid with FRAPPE_MOUNTS_* variables.
func FromEnv() (Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to read %s_* environment: %w", EnvPrefix, err)
	}
	return cfg, nil
}

// Validate rejects configurations the generator cannot work with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.InputPath) == "" {
		return fmt.Errorf("input path must not be empty")
	}
	if strings.TrimSpace(c.OutputPath) == "" {
		return fmt.Errorf("output path must not be empty")
	}
	if strings.TrimSpace(c.ServiceName) == "" {
		return fmt.Errorf("service name must not be empty")
	}
	if strings.ContainsAny(c.ServiceName, " \t:") {
		return fmt.Errorf("invalid service name %q", c.ServiceName)
	}
	if strings.TrimSpace(c.AppBase) == "" {
		return fmt.Errorf("app base directory must not be empty")
	}
	if c.ListLimit <= 0 {
		return fmt.Errorf("list limit must be positive, got %d", c.ListLimit)
	}
	return nil
}
