// Package model defines the domain types for the frappe-mounts CLI.
//
// Every value here is transient: mount records are parsed fresh from
// frappe-apps.json on each run and discarded once the manifest is written.
package model

import (
	"fmt"
	"strings"
)

// MountSpec is one record of frappe-apps.json. All three fields are
// optional; an empty string means the field was absent or not a string.
type MountSpec struct {
	// Source is the host path to bind into the container.
	Source string `json:"source,omitempty"`

	// Target is the path inside the container.
	Target string `json:"target,omitempty"`

	// App is a short app name used to derive a default Target when
	// Target is omitted.
	App string `json:"app,omitempty"`
}

// ResolvedMount is a concrete bind mount derived from a MountSpec.
// Both fields are always non-empty.
type ResolvedMount struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// Bind returns the compose short-syntax volume string "source:target".
func (m ResolvedMount) Bind() string {
	return m.Source + ":" + m.Target
}

// String satisfies fmt.Stringer for log and diagnostic output.
func (m ResolvedMount) String() string {
	return fmt.Sprintf("%s -> %s", m.Source, m.Target)
}

// UnavailableMarker is printed in place of a resolved absolute path when
// resolution fails (permission denied, symlink loop, ...).
const UnavailableMarker = "unavailable"

// Listing is a shallow, sorted, capped enumeration of a directory's
// immediate children.
type Listing struct {
	// Entries holds at most the configured limit of names, sorted.
	Entries []string `json:"entries,omitempty"`

	// Remaining is the number of entries omitted because of the limit.
	Remaining int `json:"remaining,omitempty"`

	// Err is the inline error message when the directory could not be read.
	Err string `json:"error,omitempty"`
}

// String renders the listing for diagnostics, e.g. "a, b, ... (+5 more)".
func (l Listing) String() string {
	if l.Err != "" {
		return "<error: " + l.Err + ">"
	}
	if len(l.Entries) == 0 {
		return "(empty)"
	}
	s := strings.Join(l.Entries, ", ")
	if l.Remaining > 0 {
		s += fmt.Sprintf(", ... (+%d more)", l.Remaining)
	}
	return s
}

// PathReport summarises what was found on the host at a given path.
type PathReport struct {
	// Path is the path as written in frappe-apps.json.
	Path string `json:"path"`

	// Expanded is Path after "~" expansion. Equal to Path when nothing
	// was expanded.
	Expanded string `json:"expanded"`

	Exists bool `json:"exists"`
	IsDir  bool `json:"isDir"`
	IsFile bool `json:"isFile"`

	// Resolved is the absolute, symlink-free form of Expanded, or
	// UnavailableMarker.
	Resolved string `json:"resolved"`

	// Listing is only populated for directories.
	Listing *Listing `json:"listing,omitempty"`
}

// ExitCode defines the process exit codes of the CLI.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitInvalidConfig indicates flags or FRAPPE_MOUNTS_* variables
	// produced an unusable configuration.
	ExitInvalidConfig ExitCode = 2

	// ExitDockerNotRunning indicates the Docker daemon is not accessible.
	ExitDockerNotRunning ExitCode = 3

	// ExitOutputWriteFailed indicates the generated manifest could not
	// be written.
	ExitOutputWriteFailed ExitCode = 4

	// ExitDevContainerNotFound indicates no devcontainer.json was found
	// to check.
	ExitDevContainerNotFound ExitCode = 5

	// ExitWiringInvalid indicates devcontainer.json does not apply the
	// generated manifest to the service.
	ExitWiringInvalid ExitCode = 6
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}

// ShapeError reports that the mount file parsed as JSON but its root value
// is not an array.
type ShapeError struct {
	// Path is the file that was parsed. Empty when parsing raw bytes.
	Path string

	// Got is the JSON kind found at the root ("object", "string", ...).
	Got string
}

func (e *ShapeError) Error() string {
	msg := "expected top-level array"
	if e.Got != "" {
		msg += ", got " + e.Got
	}
	if e.Path != "" {
		return e.Path + ": " + msg
	}
	return msg
}

// ParseError reports malformed JSON after comment stripping.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to parse %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("failed to parse mount list: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
