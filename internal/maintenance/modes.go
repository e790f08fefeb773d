package maintenance

import (
	"fmt"
	"strings"

	"github.com/portup-dev/portup/internal/messages"
)

// UpgradeMode selects the upgrade strategy for a maintenance run.
type UpgradeMode string

// Supported upgrade modes.
const (
	// UpgradeSecurity applies only updates fixing affected security
	// advisories.
	UpgradeSecurity UpgradeMode = "security"
	// UpgradeFull updates @world after a successful dry run.
	UpgradeFull UpgradeMode = "full"
)

// ParseUpgradeMode converts a flag or config value into an UpgradeMode.
// An unknown value is an error: running the wrong upgrade strategy is
// worse than refusing to run.
func ParseUpgradeMode(raw string) (UpgradeMode, error) {
	switch mode := UpgradeMode(raw); mode {
	case UpgradeSecurity, UpgradeFull:
		return mode, nil
	default:
		return "", fmt.Errorf(messages.MaintInvalidUpgradeModeFmt, raw)
	}
}

// ConfigUpdateMode selects how pending configuration changes are handled.
type ConfigUpdateMode string

// Supported config update modes.
const (
	ConfigMerge       ConfigUpdateMode = "merge"
	ConfigInteractive ConfigUpdateMode = "interactive"
	ConfigDispatch    ConfigUpdateMode = "dispatch"
	ConfigIgnore      ConfigUpdateMode = "ignore"
)

// ParseConfigUpdateMode converts a flag or config value into a
// ConfigUpdateMode. Unlike the upgrade mode an unknown value is not
// fatal; the caller warns and leaves configuration changes untouched.
func ParseConfigUpdateMode(raw string) (ConfigUpdateMode, bool) {
	switch mode := ConfigUpdateMode(raw); mode {
	case ConfigMerge, ConfigInteractive, ConfigDispatch, ConfigIgnore:
		return mode, true
	default:
		return "", false
	}
}

// SplitEmergeOpts splits a whitespace-joined emerge options string into
// individual arguments, for the legacy single-string flag form.
func SplitEmergeOpts(raw string) []string {
	return strings.Fields(raw)
}
