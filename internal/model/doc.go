// Package model defines the domain types and value objects for the
// frappe-mounts CLI.
//
// This package contains pure data structures with no external dependencies:
// the input record (MountSpec), the derived bind mount (ResolvedMount), and
// the diagnostic summaries (PathReport, Listing).
//
// The package also defines exit codes (ExitCode), a custom error type
// (CLIError) that carries exit codes for proper OS process exit handling,
// and the two load failures of the mount file (ShapeError, ParseError).
package model
