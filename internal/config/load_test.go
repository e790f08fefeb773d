package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Maintenance.UpgradeMode != UpgradeModeSecurity {
		t.Fatalf("expected default upgrade mode, got %q", cfg.Maintenance.UpgradeMode)
	}
	if cfg.Paths.LogDir != "/var/log/portup" {
		t.Fatalf("expected default log dir, got %q", cfg.Paths.LogDir)
	}
	if len(cfg.Paths.ConfigProtect) != 1 || cfg.Paths.ConfigProtect[0] != "/etc" {
		t.Fatalf("expected default config protect, got %v", cfg.Paths.ConfigProtect)
	}
}

func TestLoadFullConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[maintenance]
upgrade_mode = "full"
emerge_opts = ["--keep-going", "--verbose"]
config_update_mode = "dispatch"
restart_daemons = true
clean = true

[paths]
log_dir = "/tmp/portup-logs"
elog_dir = "/tmp/elog"
lock_file = "/tmp/portup.lock"
config_protect = ["/etc", "/usr/share/config"]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Maintenance.UpgradeMode != UpgradeModeFull {
		t.Fatalf("upgrade mode = %q", cfg.Maintenance.UpgradeMode)
	}
	if len(cfg.Maintenance.EmergeOpts) != 2 || cfg.Maintenance.EmergeOpts[1] != "--verbose" {
		t.Fatalf("emerge opts = %v", cfg.Maintenance.EmergeOpts)
	}
	if !cfg.Maintenance.RestartDaemons || !cfg.Maintenance.Clean {
		t.Fatalf("expected restart and clean enabled")
	}
	if cfg.Paths.LogDir != "/tmp/portup-logs" {
		t.Fatalf("log dir = %q", cfg.Paths.LogDir)
	}
}

func TestParsePartialConfigGetsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("[maintenance]\nupgrade_mode = \"full\"\n"), "test")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Maintenance.ConfigUpdateMode != ConfigUpdateMerge {
		t.Fatalf("expected default config update mode, got %q", cfg.Maintenance.ConfigUpdateMode)
	}
	if cfg.Paths.LockFile != "/run/portup.lock" {
		t.Fatalf("expected default lock file, got %q", cfg.Paths.LockFile)
	}
}

func TestParseInvalidUpgradeMode(t *testing.T) {
	_, err := Parse([]byte("[maintenance]\nupgrade_mode = \"fast\"\n"), "test")
	if err == nil || !errors.Is(err, ErrConfigValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !strings.Contains(err.Error(), "upgrade_mode") {
		t.Fatalf("expected upgrade_mode in error, got %v", err)
	}
}

func TestParseInvalidConfigUpdateMode(t *testing.T) {
	_, err := Parse([]byte("[maintenance]\nconfig_update_mode = \"auto\"\n"), "test")
	if err == nil || !errors.Is(err, ErrConfigValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestParseUnknownKeyRejected(t *testing.T) {
	_, err := Parse([]byte("[maintenance]\nupdate_mode = \"full\"\n"), "test")
	if err == nil || !errors.Is(err, ErrConfigValidation) {
		t.Fatalf("expected strict decode failure, got %v", err)
	}
	if !strings.Contains(err.Error(), "unrecognized keys") {
		t.Fatalf("expected unrecognized keys message, got %v", err)
	}
}

func TestParseSyntaxError(t *testing.T) {
	_, err := Parse([]byte("maintenance = [["), "broken.toml")
	if err == nil || errors.Is(err, ErrConfigValidation) {
		t.Fatalf("expected syntax error outside validation sentinel, got %v", err)
	}
}

func TestParseLenientIgnoresValidation(t *testing.T) {
	cfg, err := ParseLenient([]byte("[maintenance]\nupgrade_mode = \"fast\"\n"), "test")
	if err != nil {
		t.Fatalf("ParseLenient: %v", err)
	}
	if cfg.Maintenance.UpgradeMode != "fast" {
		t.Fatalf("expected raw mode preserved, got %q", cfg.Maintenance.UpgradeMode)
	}
}

func TestResolveConfigPathExplicitWins(t *testing.T) {
	path, err := ResolveConfigPath("/tmp/custom.toml")
	if err != nil {
		t.Fatalf("ResolveConfigPath: %v", err)
	}
	if path != "/tmp/custom.toml" {
		t.Fatalf("expected explicit path, got %q", path)
	}
}

func TestUserConfigPath(t *testing.T) {
	orig := homedirExpand
	homedirExpand = func(path string) (string, error) {
		return strings.Replace(path, "~", "/home/tester", 1), nil
	}
	t.Cleanup(func() { homedirExpand = orig })

	path, err := UserConfigPath()
	if err != nil {
		t.Fatalf("UserConfigPath: %v", err)
	}
	if path != "/home/tester/.config/portup/config.toml" {
		t.Fatalf("unexpected user config path %q", path)
	}
}
