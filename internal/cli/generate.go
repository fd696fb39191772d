package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/frappe-mounts/internal/model"
	"github.com/shinji-kodama/frappe-mounts/internal/mounts"
)

// generateFlags holds the flags specific to generation.
type generateFlags struct {
	stdout        bool // --stdout: print the manifest instead of writing it
	noDiagnostics bool // --no-diagnostics: skip the per-mount path report
}

// addGenerateFlags registers the generate flags on cmd. The root command
// and the generate subcommand share them.
func addGenerateFlags(cmd *cobra.Command, flags *generateFlags) {
	cmd.Flags().BoolVar(&flags.stdout, "stdout", false, "Print the manifest to stdout instead of writing the output file")
	cmd.Flags().BoolVar(&flags.noDiagnostics, "no-diagnostics", false, "Skip the per-mount host path report")
}

// NewGenerateCommand creates the "generate" cobra command.
func NewGenerateCommand() *cobra.Command {
	flags := &generateFlags{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write docker-compose.mounts.yml from frappe-apps.json",
		Long: `Read the mount list, derive a source:target bind for every usable record,
report what exists on the host for each one, and overwrite the compose
fragment.

Records missing a source, or missing both target and app, are skipped.
A missing or malformed mount list produces a fragment with
DYNAMIC_MOUNTS_LOADED=false instead of failing.

Examples:
  frappe-mounts generate
  frappe-mounts generate -i .devcontainer/frappe-apps.json -o .devcontainer/docker-compose.mounts.yml
  frappe-mounts generate --stdout --no-diagnostics`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, flags)
		},
	}

	addGenerateFlags(cmd, flags)
	return cmd
}

// runGenerate loads the configuration and runs the pipeline.
func runGenerate(cmd *cobra.Command, flags *generateFlags) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if flags.noDiagnostics {
		cfg.Diagnostics = false
	}

	// Progress and diagnostics go to stdout, except where stdout carries
	// the manifest or JSON.
	var progress io.Writer = cmd.OutOrStdout()
	switch {
	case IsJSONOutput():
		progress = io.Discard
	case flags.stdout:
		progress = cmd.ErrOrStderr()
	}

	var res *mounts.Result
	if flags.stdout {
		res, err = mounts.Plan(cfg, progress)
		if err != nil {
			return model.WrapCLIError(model.ExitGeneralError, "failed to render compose manifest", err)
		}
	} else {
		res, err = mounts.Run(cfg, progress)
		if err != nil {
			return err
		}
	}

	for _, s := range res.Skipped {
		VerboseLog("Skipped record #%d: %s", s.Index, s.Reason)
	}

	switch {
	case IsJSONOutput():
		return printJSON(cmd, newGenerateJSON(res))
	case flags.stdout:
		_, err := cmd.OutOrStdout().Write(res.Manifest)
		return err
	}
	return nil
}

// generateJSON is the --json shape of a generate run.
type generateJSON struct {
	Input       string                 `json:"input"`
	InputFound  bool                   `json:"inputFound"`
	LoadError   string                 `json:"loadError,omitempty"`
	Records     int                    `json:"records"`
	Mounts      []model.ResolvedMount  `json:"mounts"`
	Skipped     []mounts.SkippedRecord `json:"skipped"`
	Diagnostics []mounts.MountReport   `json:"diagnostics,omitempty"`
	Output      string                 `json:"output"`
	Written     bool                   `json:"written"`
	Manifest    string                 `json:"manifest,omitempty"`
}

func newGenerateJSON(res *mounts.Result) generateJSON {
	out := generateJSON{
		Input:       res.InputPath,
		InputFound:  res.InputFound,
		Records:     res.Records,
		Mounts:      res.Mounts,
		Skipped:     res.Skipped,
		Diagnostics: res.Reports,
		Output:      res.OutputPath,
		Written:     res.Written,
	}
	if res.LoadErr != nil {
		out.LoadError = res.LoadErr.Error()
	}
	if !res.Written {
		out.Manifest = string(res.Manifest)
	}
	// Empty lists encode as [] rather than null.
	if out.Mounts == nil {
		out.Mounts = []model.ResolvedMount{}
	}
	if out.Skipped == nil {
		out.Skipped = []mounts.SkippedRecord{}
	}
	return out
}

