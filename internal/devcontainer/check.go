package devcontainer

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

// GeneratorCommand is the program initializeCommand is expected to run.
const GeneratorCommand = "frappe-mounts"

// Severity grades a Finding.
type Severity string

const (
	// SeverityError means the fragment will not reach the service.
	SeverityError Severity = "error"

	// SeverityWarning means the fragment works but may go stale or apply
	// somewhere unexpected.
	SeverityWarning Severity = "warning"
)

// Finding is one wiring problem in devcontainer.json.
type Finding struct {
	Severity Severity `json:"severity"`

	// Field is the devcontainer.json field at fault.
	Field string `json:"field"`

	Message string `json:"message"`
}

func (f Finding) String() string {
	return fmt.Sprintf("%s: %s", f.Field, f.Message)
}

// Wiring describes where the generated fragment lives and which service
// it targets.
type Wiring struct {
	// DevContainerPath is the devcontainer.json being checked. Relative
	// compose paths are resolved against its directory.
	DevContainerPath string

	// FragmentPath is the generated manifest (the configured output path).
	FragmentPath string

	// Service is the compose service receiving the mounts.
	Service string
}

// FragmentRef returns the fragment path as it should appear in
// dockerComposeFile: relative to devcontainer.json, slash separated.
func (w Wiring) FragmentRef() string {
	dir := filepath.Dir(w.DevContainerPath)
	fragment := absPath(w.FragmentPath, "")
	if rel, err := filepath.Rel(absPath(dir, ""), fragment); err == nil {
		return filepath.ToSlash(rel)
	}
	return filepath.ToSlash(fragment)
}

// CheckWiring reports every reason the fragment would not be applied to
// w.Service by raw. An empty result means the wiring is complete.
func CheckWiring(raw *RawDevContainer, w Wiring) []Finding {
	var findings []Finding
	add := func(sev Severity, field, format string, args ...interface{}) {
		findings = append(findings, Finding{Severity: sev, Field: field, Message: fmt.Sprintf(format, args...)})
	}

	dir := filepath.Dir(w.DevContainerPath)
	fragment := absPath(w.FragmentPath, "")
	ref := w.FragmentRef()

	files := GetComposeFiles(raw)
	if len(files) == 0 {
		add(SeverityError, "dockerComposeFile", "not set; add the base compose file followed by %q", ref)
	} else {
		fragmentIdx := -1
		var bases []string
		for i, f := range files {
			if absPath(f, dir) == fragment {
				fragmentIdx = i
				continue
			}
			bases = append(bases, f)
		}

		switch {
		case fragmentIdx < 0:
			add(SeverityError, "dockerComposeFile", "does not list %q", ref)
		case len(bases) > 0 && fragmentIdx == 0:
			add(SeverityWarning, "dockerComposeFile", "%q is listed before %q; list it after the file that defines %q", ref, bases[0], w.Service)
		}

		findings = append(findings, checkServiceDefined(bases, dir, w.Service)...)
	}

	if raw.Service != "" && raw.Service != w.Service {
		add(SeverityWarning, "service", "devcontainer attaches to %q but mounts are generated for %q", raw.Service, w.Service)
	}

	if len(raw.RunServices) > 0 && !slices.Contains(raw.RunServices, w.Service) {
		add(SeverityError, "runServices", "does not start %q", w.Service)
	}

	if !runsGenerator(InitializeCommands(raw)) {
		add(SeverityWarning, "initializeCommand", "does not run %s; %q will not be regenerated", GeneratorCommand, ref)
	}

	return findings
}

// checkServiceDefined verifies that some base compose file defines
// service. Unreadable files produce warnings.
func checkServiceDefined(bases []string, dir, service string) []Finding {
	if len(bases) == 0 {
		return []Finding{{
			Severity: SeverityError,
			Field:    "dockerComposeFile",
			Message:  fmt.Sprintf("lists no base compose file defining %q", service),
		}}
	}

	var findings []Finding
	for _, f := range bases {
		services, err := ComposeServices(absPath(f, dir))
		if err != nil {
			findings = append(findings, Finding{
				Severity: SeverityWarning,
				Field:    "dockerComposeFile",
				Message:  fmt.Sprintf("cannot read %q: %v", f, err),
			})
			continue
		}
		if slices.Contains(services, service) {
			return findings
		}
	}

	return append(findings, Finding{
		Severity: SeverityError,
		Field:    "dockerComposeFile",
		Message:  fmt.Sprintf("no listed compose file defines service %q", service),
	})
}

// HasErrors reports whether any finding is an error.
func HasErrors(findings []Finding) bool {
	for _, f := range findings {
		if f.Severity == SeverityError {
			return true
		}
	}
	return false
}

func runsGenerator(commands []string) bool {
	for _, c := range commands {
		if strings.Contains(c, GeneratorCommand) {
			return true
		}
	}
	return false
}

// absPath resolves p against base (or the working directory when base is
// empty) and cleans it.
func absPath(p, base string) string {
	if !filepath.IsAbs(p) {
		if base == "" {
			if abs, err := filepath.Abs(p); err == nil {
				return abs
			}
		} else {
			p = filepath.Join(absPath(base, ""), p)
		}
	}
	return filepath.Clean(p)
}
