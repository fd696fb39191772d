// Package cli implements the cobra-based CLI commands for frappe-mounts.
//
// The root command runs the generator directly, so the usual invocation
// from a devcontainer initializeCommand is just `frappe-mounts`. The
// generate, status and check subcommands live in their own files.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/frappe-mounts/internal/config"
	"github.com/shinji-kodama/frappe-mounts/internal/model"
)

// Global flag variables shared across all subcommands. They are rebound
// (and so reset to their defaults) every time NewRootCommand runs.
var (
	// jsonOutput switches command output to JSON for machine consumption.
	jsonOutput bool

	// verbose enables [verbose] trace lines on stderr.
	verbose bool

	// settings holds the generator flags shared by every command.
	settings configFlags
)

// configFlags mirrors config.Config. A flag only overrides the
// environment/default value when it was set explicitly.
type configFlags struct {
	input     string
	output    string
	service   string
	appBase   string
	listLimit int
}

// version, commit, and date are set at build time via ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// NewRootCommand creates and configures the root cobra command.
func NewRootCommand() *cobra.Command {
	genFlags := &generateFlags{}

	rootCmd := &cobra.Command{
		Use:   "frappe-mounts",
		Short: "Generate docker-compose bind mounts for local Frappe apps",
		Long: `frappe-mounts reads a commented JSON list of host directories
(frappe-apps.json) and writes docker-compose.mounts.yml, a compose fragment
that binds each directory into the frappe service container.

Running the root command is the same as running "frappe-mounts generate".`,

		Args: cobra.NoArgs,

		// SilenceUsage and SilenceErrors leave error output to Execute,
		// which formats it as text or JSON.
		SilenceUsage:  true,
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, genFlags)
		},
	}

	defaults := config.Default()
	pf := rootCmd.PersistentFlags()
	pf.BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	pf.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	pf.StringVarP(&settings.input, "input", "i", defaults.InputPath, "Mount list to read (env "+config.EnvPrefix+"_INPUT)")
	pf.StringVarP(&settings.output, "output", "o", defaults.OutputPath, "Compose fragment to write (env "+config.EnvPrefix+"_OUTPUT)")
	pf.StringVar(&settings.service, "service", defaults.ServiceName, "Compose service receiving the mounts (env "+config.EnvPrefix+"_SERVICE)")
	pf.StringVar(&settings.appBase, "app-base", defaults.AppBase, "Container directory for app-derived targets (env "+config.EnvPrefix+"_APP_BASE)")
	pf.IntVar(&settings.listLimit, "list-limit", defaults.ListLimit, "Maximum directory entries shown per source (env "+config.EnvPrefix+"_LIST_LIMIT)")

	addGenerateFlags(rootCmd, genFlags)

	rootCmd.AddCommand(NewGenerateCommand())
	rootCmd.AddCommand(NewStatusCommand())
	rootCmd.AddCommand(NewCheckCommand())

	return rootCmd
}

// loadConfig layers defaults, FRAPPE_MOUNTS_* variables and explicitly
// set flags, then validates the result.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return config.Config{}, model.WrapCLIError(model.ExitInvalidConfig, "invalid environment configuration", err)
	}

	flags := cmd.Flags()
	if flags.Changed("input") {
		cfg.InputPath = settings.input
	}
	if flags.Changed("output") {
		cfg.OutputPath = settings.output
	}
	if flags.Changed("service") {
		cfg.ServiceName = settings.service
	}
	if flags.Changed("app-base") {
		cfg.AppBase = settings.appBase
	}
	if flags.Changed("list-limit") {
		cfg.ListLimit = settings.listLimit
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, model.WrapCLIError(model.ExitInvalidConfig, "invalid configuration", err)
	}

	VerboseLog("Input: %s", cfg.InputPath)
	VerboseLog("Output: %s", cfg.OutputPath)
	VerboseLog("Service: %s, app base: %s", cfg.ServiceName, cfg.AppBase)
	return cfg, nil
}

// Execute runs the root command and exits with the code carried by a
// CLIError, or 1 for any other error.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(int(handleError(err)))
	}
}

// handleError prints err and returns the exit code it maps to.
func handleError(err error) model.ExitCode {
	var cliErr *model.CLIError
	if errors.As(err, &cliErr) {
		printError(cliErr.Message, cliErr.Err)
		return cliErr.Code
	}
	printError(err.Error(), nil)
	return model.ExitGeneralError
}

// printError writes the error to stderr as text or, with --json, as a
// JSON object.
func printError(message string, underlying error) {
	if jsonOutput {
		errObj := map[string]interface{}{
			"message": message,
		}
		if underlying != nil {
			errObj["detail"] = underlying.Error()
		}
		data, _ := json.MarshalIndent(map[string]interface{}{"error": errObj}, "", "  ")
		fmt.Fprintln(os.Stderr, string(data))
		return
	}

	if underlying != nil {
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", message, underlying)
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", message)
	}
}

// VerboseLog prints a message to stderr only when verbose mode is enabled.
func VerboseLog(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[verbose] "+format+"\n", args...)
	}
}

// IsJSONOutput returns whether the --json flag is set.
func IsJSONOutput() bool {
	return jsonOutput
}

// printJSON writes v to the command's stdout as indented JSON.
func printJSON(cmd *cobra.Command, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to encode JSON output", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
