// Package warnings models the non-fatal tier of maintenance diagnostics.
// A Warning is reported on stderr and never stops the run; fatal failures
// travel as ordinary errors instead.
package warnings

import "fmt"

// Warning codes.
const (
	CodeConfigModeUnrecognized = "CONFIG_MODE_UNRECOGNIZED"
	CodeDryRunFailed           = "DRY_RUN_FAILED"
	CodeElogDirMissing         = "ELOG_DIR_MISSING"
)

// Source labels where a warning originates.
const (
	SourceInternal           = "internal"
	SourceExternalDependency = "external dependency"
)

// Warning represents a non-fatal diagnostic raised during a maintenance run.
type Warning struct {
	Code    string
	Subject string
	Message string
	Fix     string
	Source  string
}

func (w Warning) String() string {
	s := "WARNING " + w.Code + ": " + w.Message + "\n"
	s += fmt.Sprintf("  source: %s\n", w.sourceOrDefault())
	s += "  subject: " + w.Subject
	if w.Fix != "" {
		s += "\n  fix: " + w.Fix
	}
	return s
}

func (w Warning) sourceOrDefault() string {
	if w.Source == "" {
		return SourceInternal
	}
	return w.Source
}
