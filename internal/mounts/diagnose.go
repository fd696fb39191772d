package mounts

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/mitchellh/go-homedir"

	"github.com/shinji-kodama/frappe-mounts/internal/model"
)

// MountReport pairs a resolved mount with what was found on the host.
type MountReport struct {
	Mount  model.ResolvedMount `json:"mount"`
	Source model.PathReport    `json:"source"`

	// Target is the container path checked as if it were a host path.
	// It is for reference only.
	Target model.PathReport `json:"target"`
}

// Inspect reports on the source and target of every mount. Sources that
// are directories get a shallow listing capped at listLimit.
func Inspect(mounts []model.ResolvedMount, listLimit int) []MountReport {
	reports := make([]MountReport, 0, len(mounts))
	for _, m := range mounts {
		reports = append(reports, MountReport{
			Mount:  m,
			Source: InspectPath(m.Source, listLimit),
			Target: InspectPath(m.Target, 0),
		})
	}
	return reports
}

// InspectPath stats path and never fails. A leading "~" is expanded for
// the checks only. listLimit <= 0 disables the directory listing.
func InspectPath(path string, listLimit int) model.PathReport {
	expanded, err := homedir.Expand(path)
	if err != nil {
		// "~user" forms are not supported; check the path literally.
		expanded = path
	}

	r := model.PathReport{
		Path:     path,
		Expanded: expanded,
		Resolved: resolvePath(expanded),
	}

	info, err := os.Stat(expanded)
	if err != nil {
		return r
	}
	r.Exists = true
	r.IsDir = info.IsDir()
	r.IsFile = info.Mode().IsRegular()

	if r.IsDir && listLimit > 0 {
		l := ListShallow(expanded, listLimit)
		r.Listing = &l
	}
	return r
}

// resolvePath returns the absolute, symlink-free form of path. A path that
// does not exist yet still resolves to its absolute form; any other
// failure yields model.UnavailableMarker.
func resolvePath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return model.UnavailableMarker
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return abs
		}
		return model.UnavailableMarker
	}
	return resolved
}

// ListShallow enumerates the immediate children of dir in name order,
// keeping at most limit names. Read errors are captured in Listing.Err.
func ListShallow(dir string, limit int) model.Listing {
	// os.ReadDir returns entries sorted by filename.
	entries, err := os.ReadDir(dir)
	if err != nil {
		return model.Listing{Err: err.Error()}
	}

	var l model.Listing
	for i, e := range entries {
		if i >= limit {
			l.Remaining = len(entries) - limit
			break
		}
		l.Entries = append(l.Entries, e.Name())
	}
	return l
}

// WriteReports prints the human-readable diagnostics for reports to w.
func WriteReports(w io.Writer, reports []MountReport) {
	for i, r := range reports {
		fmt.Fprintf(w, "[%d/%d] %s\n", i+1, len(reports), r.Mount)
		writePathReport(w, "source", r.Source)
		writePathReport(w, "target (host path, for reference only)", r.Target)
	}
}

func writePathReport(w io.Writer, label string, r model.PathReport) {
	if r.Expanded != r.Path {
		fmt.Fprintf(w, "  %s: %s (expanded: %s)\n", label, r.Path, r.Expanded)
	} else {
		fmt.Fprintf(w, "  %s: %s\n", label, r.Path)
	}
	fmt.Fprintf(w, "    exists=%s dir=%s file=%s\n", yesNo(r.Exists), yesNo(r.IsDir), yesNo(r.IsFile))
	fmt.Fprintf(w, "    resolved: %s\n", r.Resolved)
	if r.Listing != nil {
		fmt.Fprintf(w, "    entries: %s\n", r.Listing)
	}
}

var (
	yesColor = color.New(color.FgGreen)
	noColor  = color.New(color.FgRed)
)

// yesNo renders a boolean marker. Colours are dropped automatically when
// stdout is not a terminal or NO_COLOR is set.
func yesNo(b bool) string {
	if b {
		return yesColor.Sprint("yes")
	}
	return noColor.Sprint("no")
}
