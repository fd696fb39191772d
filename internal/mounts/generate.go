package mounts

import (
	"fmt"
	"io"

	"github.com/shinji-kodama/frappe-mounts/internal/config"
	"github.com/shinji-kodama/frappe-mounts/internal/model"
)

// Result describes one generator run.
type Result struct {
	InputPath  string `json:"input"`
	InputFound bool   `json:"inputFound"`

	// LoadErr is the parse, shape or read failure that emptied the mount
	// set. It is reported, never returned.
	LoadErr error `json:"-"`

	Records int                   `json:"records"`
	Mounts  []model.ResolvedMount `json:"mounts"`
	Skipped []SkippedRecord       `json:"skipped,omitempty"`
	Reports []MountReport         `json:"diagnostics,omitempty"`

	OutputPath string `json:"output"`
	Written    bool   `json:"written"`
	Manifest   []byte `json:"-"`
}

// Plan runs every stage except the final write. Human-facing progress and
// diagnostics go to out; pass io.Discard to silence them.
func Plan(cfg config.Config, out io.Writer) (*Result, error) {
	res := &Result{
		InputPath:  cfg.InputPath,
		OutputPath: cfg.OutputPath,
	}

	records, found, err := LoadRecords(cfg.InputPath)
	res.InputFound = found
	switch {
	case !found:
		fmt.Fprintf(out, "%s not found; no dynamic mounts will be configured\n", cfg.InputPath)
	case err != nil:
		res.LoadErr = err
		fmt.Fprintf(out, "Warning: %v; continuing without dynamic mounts\n", err)
	default:
		res.Records = len(records)
		fmt.Fprintf(out, "Loaded %d record(s) from %s\n", len(records), cfg.InputPath)
	}

	d := DeriveAll(records, cfg.AppBase)
	res.Mounts = d.Mounts
	res.Skipped = d.Skipped

	if cfg.Diagnostics && len(res.Mounts) > 0 {
		res.Reports = Inspect(res.Mounts, cfg.ListLimit)
		WriteReports(out, res.Reports)
	}

	manifest, err := RenderManifest(cfg.ServiceName, cfg.InputPath, res.Mounts)
	if err != nil {
		return nil, err
	}
	res.Manifest = manifest
	return res, nil
}

// Run executes the full pipeline and overwrites cfg.OutputPath. The only
// error it returns is a failed write (or an impossible render failure),
// wrapped as a CLIError with ExitOutputWriteFailed.
func Run(cfg config.Config, out io.Writer) (*Result, error) {
	res, err := Plan(cfg, out)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitGeneralError, "failed to render compose manifest", err)
	}

	if err := WriteManifest(cfg.OutputPath, res.Manifest); err != nil {
		return res, model.WrapCLIError(model.ExitOutputWriteFailed, "failed to write compose manifest", err)
	}
	res.Written = true

	fmt.Fprintf(out, "Wrote %d mount(s) to %s\n", len(res.Mounts), cfg.OutputPath)
	return res, nil
}
