package cli

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/shinji-kodama/frappe-mounts/internal/docker"
	"github.com/shinji-kodama/frappe-mounts/internal/model"
	"github.com/shinji-kodama/frappe-mounts/internal/mounts"
)

// statusFlags holds the flag values for the status command.
type statusFlags struct {
	// project limits the lookup to one compose project.
	project string
}

// NewStatusCommand creates the "status" cobra command.
func NewStatusCommand() *cobra.Command {
	flags := &statusFlags{}

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Compare frappe-apps.json with the binds of running containers",
		Long: `Derive the desired mounts from the mount list and compare them with the
bind mounts of every container Compose created for the service.

Each desired mount is reported as:
  active    the container binds this source at the target
  mismatch  the target is bound from a different source
  missing   nothing is bound at the target (rebuild the container)

Examples:
  frappe-mounts status
  frappe-mounts status --project frappe_docker_devcontainer
  frappe-mounts status --json`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.project, "project", "", "Only inspect containers of this compose project")

	return cmd
}

// containerStatus is one container and how its binds compare with the
// desired mounts.
type containerStatus struct {
	Container docker.ServiceContainer `json:"container"`
	Mounts    []docker.MountStatus    `json:"mounts"`
}

// statusJSON is the --json shape of the status command.
type statusJSON struct {
	Service    string                `json:"service"`
	Input      string                `json:"input"`
	LoadError  string                `json:"loadError,omitempty"`
	Desired    []model.ResolvedMount `json:"desired"`
	Containers []containerStatus     `json:"containers"`
}

func runStatus(cmd *cobra.Command, flags *statusFlags) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	result := statusJSON{
		Service: cfg.ServiceName,
		Input:   cfg.InputPath,
	}

	records, found, err := mounts.LoadRecords(cfg.InputPath)
	switch {
	case !found:
		VerboseLog("%s not found; no mounts are desired", cfg.InputPath)
	case err != nil:
		result.LoadError = err.Error()
		if !IsJSONOutput() {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
		}
	}
	result.Desired = mounts.DeriveAll(records, cfg.AppBase).Mounts
	if result.Desired == nil {
		result.Desired = []model.ResolvedMount{}
	}

	// Compose resolves relative bind sources against the project working
	// directory. Containers carry it as a label; the manifest's directory
	// is the fallback.
	absOutput, err := filepath.Abs(cfg.OutputPath)
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to resolve output path", err)
	}
	baseDir := filepath.Dir(absOutput)
	VerboseLog("Resolving relative sources against %s", baseDir)

	cli, err := docker.NewClient()
	if err != nil {
		return err
	}
	defer func() { _ = cli.Close() }()

	if err := cli.Ping(cmd.Context()); err != nil {
		return err
	}
	VerboseLog("Connected to Docker daemon")

	containers, err := docker.FindServiceContainers(cmd.Context(), cli, cfg.ServiceName, flags.project)
	if err != nil {
		return err
	}
	VerboseLog("Found %d container(s) for service %q", len(containers), cfg.ServiceName)

	result.Containers = compareContainers(result.Desired, containers, baseDir)

	if IsJSONOutput() {
		return printJSON(cmd, result)
	}
	printStatusText(cmd.OutOrStdout(), cfg.ServiceName, result.Containers)
	return nil
}

// compareContainers compares the desired mounts with every container.
// Relative sources resolve against the container's compose working
// directory when known, else against baseDir.
func compareContainers(desired []model.ResolvedMount, containers []docker.ServiceContainer, baseDir string) []containerStatus {
	out := make([]containerStatus, 0, len(containers))
	for _, c := range containers {
		dir := baseDir
		if c.WorkingDir != "" {
			dir = c.WorkingDir
		}
		out = append(out, containerStatus{
			Container: c,
			Mounts:    docker.CompareMounts(desired, c.Binds, dir),
		})
	}
	return out
}

// printStatusText writes one block per container:
//
//	bench-frappe-1 (running)
//	  active    ../apps/hrms -> /workspace/development/frappe-bench/apps/hrms
//	  missing   /home/dev/crm -> /workspace/development/frappe-bench/apps/crm
func printStatusText(w io.Writer, service string, containers []containerStatus) {
	if len(containers) == 0 {
		fmt.Fprintf(w, "No containers found for service %q.\n", service)
		return
	}

	for i, cs := range containers {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s (%s)\n", cs.Container.Name, cs.Container.State)
		if len(cs.Mounts) == 0 {
			fmt.Fprintln(w, "  no dynamic mounts configured")
			continue
		}
		for _, ms := range cs.Mounts {
			fmt.Fprintf(w, "  %s %s\n", stateLabel(ms.State), ms.Mount)
			if ms.State == docker.BindMismatch {
				fmt.Fprintf(w, "            bound from %s\n", ms.ActualSource)
			}
		}
	}
}

// stateLabel pads and colors a bind state for the text table.
func stateLabel(s docker.BindState) string {
	label := fmt.Sprintf("%-9s", s)
	switch s {
	case docker.BindActive:
		return color.GreenString(label)
	case docker.BindMismatch:
		return color.YellowString(label)
	default:
		return color.RedString(label)
	}
}
