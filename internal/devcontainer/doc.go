// Package devcontainer reads devcontainer.json and checks that it applies
// the generated mount fragment.
//
// docker-compose.mounts.yml has no effect on its own: devcontainer.json
// must list it in dockerComposeFile after the base compose file, attach to
// (or at least start) the service that receives the mounts, and regenerate
// it from initializeCommand. CheckWiring reports each of these as a
// Finding; AddComposeFile repairs the most common omission.
//
// devcontainer.json is JSONC, so comments and trailing commas are removed
// with github.com/tidwall/jsonc before decoding.
package devcontainer
