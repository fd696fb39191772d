package devcontainer

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddComposeFile(t *testing.T) {
	in := []byte(`{
  // comment
  "name": "Frappe Bench",
  "dockerComposeFile": "docker-compose.yml",
  "service": "frappe",
}`)

	out, changed, err := AddComposeFile(in, "docker-compose.mounts.yml")
	require.NoError(t, err)
	assert.True(t, changed)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &got))
	assert.Equal(t, []interface{}{"docker-compose.yml", "docker-compose.mounts.yml"}, got["dockerComposeFile"])
	assert.Equal(t, "Frappe Bench", got["name"])
	assert.Equal(t, "frappe", got["service"])
	assert.NotContains(t, string(out), "// comment")
}

func TestAddComposeFile_AlreadyListed(t *testing.T) {
	in := []byte(`{"dockerComposeFile": ["docker-compose.yml", "docker-compose.mounts.yml"]}`)

	out, changed, err := AddComposeFile(in, "docker-compose.mounts.yml")
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, in, out)
}

func TestAddComposeFile_Unset(t *testing.T) {
	out, changed, err := AddComposeFile([]byte(`{"name": "x"}`), "docker-compose.mounts.yml")
	require.NoError(t, err)
	assert.True(t, changed)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &got))
	assert.Equal(t, []interface{}{"docker-compose.mounts.yml"}, got["dockerComposeFile"])
}

func TestAddComposeFile_Malformed(t *testing.T) {
	_, _, err := AddComposeFile([]byte(`{`), "docker-compose.mounts.yml")
	assert.Error(t, err)
}

func TestWriteConfig_KeepsMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "devcontainer.json")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o600))

	require.NoError(t, WriteConfig(path, []byte(`{"name": "new"}`)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"name": "new"}`, string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
