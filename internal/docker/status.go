package docker

import (
	"path/filepath"

	"github.com/mitchellh/go-homedir"

	"github.com/shinji-kodama/frappe-mounts/internal/model"
)

// BindState is the outcome of comparing one desired mount with a container.
type BindState string

const (
	// BindActive means the container has exactly this bind.
	BindActive BindState = "active"

	// BindMismatch means the target is bound, but from another source.
	BindMismatch BindState = "mismatch"

	// BindMissing means nothing is bound at the target.
	BindMissing BindState = "missing"
)

// MountStatus is the comparison result for one desired mount.
type MountStatus struct {
	Mount model.ResolvedMount `json:"mount"`
	State BindState           `json:"state"`

	// ActualSource is the host path currently bound at the target, set
	// for BindActive and BindMismatch.
	ActualSource string `json:"actualSource,omitempty"`
}

// NormalizeSource turns a source as written in frappe-apps.json into the
// absolute host path Compose would bind: "~" is expanded and relative
// paths are resolved against baseDir, the directory holding the compose
// file.
func NormalizeSource(source, baseDir string) string {
	expanded, err := homedir.Expand(source)
	if err != nil {
		expanded = source
	}
	if !filepath.IsAbs(expanded) {
		expanded = filepath.Join(baseDir, expanded)
	}
	return filepath.Clean(expanded)
}

// CompareMounts reports, in desired order, whether each desired mount is
// present among the container's binds. Sources are normalized against
// baseDir before comparing.
func CompareMounts(desired []model.ResolvedMount, binds []model.ResolvedMount, baseDir string) []MountStatus {
	byTarget := make(map[string]string, len(binds))
	for _, b := range binds {
		byTarget[filepath.Clean(b.Target)] = filepath.Clean(b.Source)
	}

	statuses := make([]MountStatus, 0, len(desired))
	for _, m := range desired {
		st := MountStatus{Mount: m, State: BindMissing}
		if actual, ok := byTarget[filepath.Clean(m.Target)]; ok {
			st.ActualSource = actual
			if actual == NormalizeSource(m.Source, baseDir) {
				st.State = BindActive
			} else {
				st.State = BindMismatch
			}
		}
		statuses = append(statuses, st)
	}
	return statuses
}
