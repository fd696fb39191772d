package devcontainer

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"
)

// AddComposeFile appends fragment to the dockerComposeFile entry of a
// devcontainer.json document. A string entry is turned into an array.
// changed is false, and the input returned unchanged, when fragment is
// already listed.
//
// The result is re-encoded as plain JSON with 2-space indentation, so
// comments in the original are lost. Key order follows encoding/json's
// map ordering.
func AddComposeFile(rawJSON []byte, fragment string) (out []byte, changed bool, err error) {
	var configMap map[string]interface{}
	if err := json.Unmarshal(jsonc.ToJSON(rawJSON), &configMap); err != nil {
		return nil, false, fmt.Errorf("failed to parse devcontainer.json: %w", err)
	}

	files, changed := appendComposeFile(configMap["dockerComposeFile"], fragment)
	if !changed {
		return rawJSON, false, nil
	}
	configMap["dockerComposeFile"] = files

	result, err := json.MarshalIndent(configMap, "", "  ")
	if err != nil {
		return nil, false, fmt.Errorf("failed to serialize devcontainer.json: %w", err)
	}
	return append(result, '\n'), true, nil
}

// appendComposeFile normalizes dockerComposeFile to an array and appends
// fragment as the last entry unless it is already present.
func appendComposeFile(existing interface{}, fragment string) ([]interface{}, bool) {
	var files []interface{}
	switch v := existing.(type) {
	case string:
		files = []interface{}{v}
	case []interface{}:
		files = v
	default:
		files = []interface{}{}
	}

	for _, f := range files {
		if s, ok := f.(string); ok && s == fragment {
			return files, false
		}
	}
	return append(files, fragment), true
}

// WriteConfig replaces the devcontainer.json at path, keeping its file
// mode.
func WriteConfig(path string, data []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(path, data, mode); err != nil {
		return fmt.Errorf("failed to write devcontainer.json to %s: %w", path, err)
	}
	return nil
}
