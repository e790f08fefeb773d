// Package config loads and validates the portup configuration file.
package config

import (
	"fmt"

	"github.com/portup-dev/portup/internal/messages"
)

// Upgrade mode values accepted by maintenance.upgrade_mode.
const (
	UpgradeModeSecurity = "security"
	UpgradeModeFull     = "full"
)

// Config update mode values accepted by maintenance.config_update_mode.
const (
	ConfigUpdateMerge       = "merge"
	ConfigUpdateInteractive = "interactive"
	ConfigUpdateDispatch    = "dispatch"
	ConfigUpdateIgnore      = "ignore"
)

// Config is the full portup configuration.
type Config struct {
	Maintenance Maintenance `toml:"maintenance"`
	Paths       Paths       `toml:"paths"`
}

// Maintenance holds the default run options. CLI flags override these.
type Maintenance struct {
	UpgradeMode      string   `toml:"upgrade_mode"`
	EmergeOpts       []string `toml:"emerge_opts"`
	ConfigUpdateMode string   `toml:"config_update_mode"`
	RestartDaemons   bool     `toml:"restart_daemons"`
	Clean            bool     `toml:"clean"`
}

// Paths holds filesystem locations used by the orchestrator.
type Paths struct {
	LogDir        string   `toml:"log_dir"`
	ElogDir       string   `toml:"elog_dir"`
	LockFile      string   `toml:"lock_file"`
	ConfigProtect []string `toml:"config_protect"`
}

// Default returns the compiled-in configuration used when no config file
// exists.
func Default() *Config {
	return &Config{
		Maintenance: Maintenance{
			UpgradeMode:      UpgradeModeSecurity,
			ConfigUpdateMode: ConfigUpdateMerge,
		},
		Paths: Paths{
			LogDir:        "/var/log/portup",
			ElogDir:       "/var/log/portage/elog",
			LockFile:      "/run/portup.lock",
			ConfigProtect: []string{"/etc"},
		},
	}
}

// Validate ensures the config is complete and consistent.
// source identifies the config file in error messages.
func (c *Config) Validate(source string) error {
	switch c.Maintenance.UpgradeMode {
	case UpgradeModeSecurity, UpgradeModeFull:
	default:
		return fmt.Errorf(messages.ConfigUpgradeModeInvalidFmt, source)
	}
	switch c.Maintenance.ConfigUpdateMode {
	case ConfigUpdateMerge, ConfigUpdateInteractive, ConfigUpdateDispatch, ConfigUpdateIgnore:
	default:
		return fmt.Errorf(messages.ConfigUpdateModeInvalidFmt, source)
	}
	for _, opt := range c.Maintenance.EmergeOpts {
		if opt == "" {
			return fmt.Errorf(messages.ConfigEmergeOptEmptyFmt, source)
		}
	}
	if c.Paths.LogDir == "" {
		return fmt.Errorf(messages.ConfigLogDirRequiredFmt, source)
	}
	if c.Paths.ElogDir == "" {
		return fmt.Errorf(messages.ConfigElogDirRequiredFmt, source)
	}
	if c.Paths.LockFile == "" {
		return fmt.Errorf(messages.ConfigLockFileRequiredFmt, source)
	}
	for _, dir := range c.Paths.ConfigProtect {
		if dir == "" {
			return fmt.Errorf(messages.ConfigProtectDirRequiredFmt, source)
		}
	}
	return nil
}

// applyDefaults fills unset fields with compiled-in defaults so a partial
// config file stays valid.
func (c *Config) applyDefaults() {
	defaults := Default()
	if c.Maintenance.UpgradeMode == "" {
		c.Maintenance.UpgradeMode = defaults.Maintenance.UpgradeMode
	}
	if c.Maintenance.ConfigUpdateMode == "" {
		c.Maintenance.ConfigUpdateMode = defaults.Maintenance.ConfigUpdateMode
	}
	if c.Paths.LogDir == "" {
		c.Paths.LogDir = defaults.Paths.LogDir
	}
	if c.Paths.ElogDir == "" {
		c.Paths.ElogDir = defaults.Paths.ElogDir
	}
	if c.Paths.LockFile == "" {
		c.Paths.LockFile = defaults.Paths.LockFile
	}
	if len(c.Paths.ConfigProtect) == 0 {
		c.Paths.ConfigProtect = defaults.Paths.ConfigProtect
	}
}
