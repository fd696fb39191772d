// Package mounts turns frappe-apps.json into docker-compose.mounts.yml.
//
// The pipeline is strictly linear:
//
//	LoadRecords -> DeriveAll -> Inspect -> RenderManifest -> WriteManifest
//
// Each stage degrades gracefully: a missing, malformed, or wrongly shaped
// input yields zero mounts, an unusable record is dropped, and a path that
// cannot be inspected is reported inline. Only the final write is fatal.
//
// JSONC (JSON with Comments) is supported via github.com/tidwall/jsonc and
// the manifest is serialized with gopkg.in/yaml.v3.
package mounts
