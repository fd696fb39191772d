package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/shinji-kodama/frappe-mounts/internal/devcontainer"
	"github.com/shinji-kodama/frappe-mounts/internal/model"
)

// checkFlags holds the flag values for the check command.
type checkFlags struct {
	// devcontainer is an explicit devcontainer.json path.
	devcontainer string

	// fix appends the fragment to dockerComposeFile when it is missing.
	fix bool
}

// NewCheckCommand creates the "check" cobra command.
func NewCheckCommand() *cobra.Command {
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify that devcontainer.json applies the generated mounts",
		Long: `Check that devcontainer.json lists the generated compose fragment after
the base compose file, that the base file defines the service, that the
service is started, and that initializeCommand regenerates the fragment.

devcontainer.json is looked up next to the output file, then under the
current directory (.devcontainer/devcontainer.json, .devcontainer.json).

--fix appends the fragment to dockerComposeFile. The file is rewritten as
plain JSON, so its comments are lost.

Examples:
  frappe-mounts check
  frappe-mounts check --devcontainer .devcontainer/devcontainer.json
  frappe-mounts check --fix`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.devcontainer, "devcontainer", "", "Path to devcontainer.json")
	cmd.Flags().BoolVar(&flags.fix, "fix", false, "Add the fragment to dockerComposeFile if it is missing")

	return cmd
}

// checkJSON is the --json shape of the check command.
type checkJSON struct {
	DevContainer string                 `json:"devcontainer"`
	Fragment     string                 `json:"fragment"`
	Service      string                 `json:"service"`
	Fixed        bool                   `json:"fixed"`
	Findings     []devcontainer.Finding `json:"findings"`
}

func runCheck(cmd *cobra.Command, flags *checkFlags) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	path, err := locateDevContainer(flags.devcontainer, cfg.OutputPath)
	if err != nil {
		return err
	}
	VerboseLog("Checking %s", path)

	w := devcontainer.Wiring{
		DevContainerPath: path,
		FragmentPath:     cfg.OutputPath,
		Service:          cfg.ServiceName,
	}

	fixed := false
	if flags.fix {
		fixed, err = fixComposeFiles(w)
		if err != nil {
			return err
		}
	}

	raw, err := devcontainer.LoadConfig(path)
	if err != nil {
		return model.WrapCLIError(model.ExitWiringInvalid, "failed to load devcontainer.json", err)
	}
	findings := devcontainer.CheckWiring(raw, w)

	if IsJSONOutput() {
		if findings == nil {
			findings = []devcontainer.Finding{}
		}
		if err := printJSON(cmd, checkJSON{
			DevContainer: path,
			Fragment:     w.FragmentRef(),
			Service:      w.Service,
			Fixed:        fixed,
			Findings:     findings,
		}); err != nil {
			return err
		}
	} else {
		if fixed {
			fmt.Fprintf(cmd.OutOrStdout(), "Added %q to dockerComposeFile in %s\n", w.FragmentRef(), path)
		}
		printFindings(cmd.OutOrStdout(), path, findings)
	}

	if devcontainer.HasErrors(findings) {
		return model.NewCLIError(model.ExitWiringInvalid,
			fmt.Sprintf("%s does not apply the generated mounts to %q", path, w.Service))
	}
	return nil
}

// locateDevContainer returns explicit when set, otherwise searches next to
// the output file and then under the working directory.
func locateDevContainer(explicit, outputPath string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", model.WrapCLIError(model.ExitDevContainerNotFound,
				fmt.Sprintf("devcontainer.json not found: %s", explicit), err)
		}
		return explicit, nil
	}

	if path, err := devcontainer.FindDevContainerJSON(filepath.Dir(outputPath)); err == nil {
		return path, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", model.WrapCLIError(model.ExitGeneralError, "failed to get current directory", err)
	}
	return devcontainer.FindDevContainerJSON(cwd)
}

// fixComposeFiles appends the fragment to dockerComposeFile in place.
func fixComposeFiles(w devcontainer.Wiring) (bool, error) {
	data, err := os.ReadFile(w.DevContainerPath)
	if err != nil {
		return false, model.WrapCLIError(model.ExitGeneralError, "failed to read devcontainer.json", err)
	}

	out, changed, err := devcontainer.AddComposeFile(data, w.FragmentRef())
	if err != nil {
		return false, model.WrapCLIError(model.ExitWiringInvalid, "failed to update devcontainer.json", err)
	}
	if !changed {
		VerboseLog("%s already lists %s", w.DevContainerPath, w.FragmentRef())
		return false, nil
	}

	if err := devcontainer.WriteConfig(w.DevContainerPath, out); err != nil {
		return false, model.WrapCLIError(model.ExitOutputWriteFailed, "failed to update devcontainer.json", err)
	}
	return true, nil
}

// printFindings writes one line per finding, or an OK line.
func printFindings(w io.Writer, path string, findings []devcontainer.Finding) {
	if len(findings) == 0 {
		fmt.Fprintf(w, "%s %s applies the generated mounts\n", color.GreenString("ok"), path)
		return
	}

	for _, f := range findings {
		label := color.YellowString(string(f.Severity))
		if f.Severity == devcontainer.SeverityError {
			label = color.RedString(string(f.Severity))
		}
		fmt.Fprintf(w, "%s %s\n", label, f)
	}
}
