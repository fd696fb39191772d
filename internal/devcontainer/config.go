package devcontainer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"

	"github.com/shinji-kodama/frappe-mounts/internal/model"
)

// RawDevContainer holds the devcontainer.json fields that decide whether
// the mount fragment is applied. Other fields are ignored.
type RawDevContainer struct {
	Name string `json:"name"`

	// DockerComposeFile is a string or an array of strings, relative to
	// the devcontainer.json directory.
	DockerComposeFile interface{} `json:"dockerComposeFile,omitempty"`

	// Service is the compose service the editor attaches to.
	Service string `json:"service,omitempty"`

	// RunServices lists the services to start. Empty means all of them.
	RunServices []string `json:"runServices,omitempty"`

	// InitializeCommand runs on the host before the containers are
	// created. It may be a string, an array of arguments, or an object of
	// named commands.
	InitializeCommand interface{} `json:"initializeCommand,omitempty"`
}

// LoadConfig reads and decodes a devcontainer.json file.
//
// Returns a CLIError with ExitDevContainerNotFound if the file does not
// exist.
func LoadConfig(devcontainerPath string) (*RawDevContainer, error) {
	data, err := os.ReadFile(devcontainerPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, model.WrapCLIError(
				model.ExitDevContainerNotFound,
				fmt.Sprintf("devcontainer.json not found: %s", devcontainerPath),
				err,
			)
		}
		return nil, fmt.Errorf("failed to read devcontainer.json: %w", err)
	}

	var raw RawDevContainer
	if err := json.Unmarshal(jsonc.ToJSON(data), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse devcontainer.json at %s: %w", devcontainerPath, err)
	}
	return &raw, nil
}

// GetComposeFiles returns dockerComposeFile as a slice, or nil when it is
// not set. Non-string array elements are dropped.
func GetComposeFiles(raw *RawDevContainer) []string {
	switch v := raw.DockerComposeFile.(type) {
	case string:
		return []string{v}
	case []interface{}:
		files := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				files = append(files, s)
			}
		}
		return files
	default:
		return nil
	}
}

// InitializeCommands flattens initializeCommand into one command line per
// entry. Array forms are joined with spaces; object forms yield one line
// per named command.
func InitializeCommands(raw *RawDevContainer) []string {
	return flattenCommand(raw.InitializeCommand)
}

func flattenCommand(v interface{}) []string {
	switch c := v.(type) {
	case string:
		return []string{c}
	case []interface{}:
		args := make([]string, 0, len(c))
		for _, a := range c {
			if s, ok := a.(string); ok {
				args = append(args, s)
			}
		}
		if len(args) == 0 {
			return nil
		}
		return []string{strings.Join(args, " ")}
	case map[string]interface{}:
		var lines []string
		for _, sub := range c {
			lines = append(lines, flattenCommand(sub)...)
		}
		return lines
	default:
		return nil
	}
}

// FindDevContainerJSON looks for devcontainer.json in dir, the way the
// generated fragment usually sits next to it, then in the two standard
// project locations:
//  1. <dir>/devcontainer.json
//  2. <dir>/.devcontainer/devcontainer.json
//  3. <dir>/.devcontainer.json
func FindDevContainerJSON(dir string) (string, error) {
	candidates := []string{
		filepath.Join(dir, "devcontainer.json"),
		filepath.Join(dir, ".devcontainer", "devcontainer.json"),
		filepath.Join(dir, ".devcontainer.json"),
	}

	for _, path := range candidates {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}

	return "", model.NewCLIError(
		model.ExitDevContainerNotFound,
		fmt.Sprintf("devcontainer.json not found in %s", dir),
	)
}
