package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"

	"github.com/portup-dev/portup/internal/messages"
)

// SystemConfigPath is the canonical system-wide config location.
const SystemConfigPath = "/etc/portup/config.toml"

var homedirExpand = homedir.Expand

// ResolveConfigPath picks the config file for this run. An explicit path
// wins; otherwise the system config is preferred and the per-user config
// is the fallback. The returned path may not exist — Load treats a
// missing file as "use defaults".
func ResolveConfigPath(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if _, err := os.Stat(SystemConfigPath); err == nil {
		return SystemConfigPath, nil
	}
	user, err := UserConfigPath()
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(user); err == nil {
		return user, nil
	}
	return SystemConfigPath, nil
}

// UserConfigPath returns the per-user config location under the home
// directory.
func UserConfigPath() (string, error) {
	path, err := homedirExpand(filepath.Join("~", ".config", "portup", "config.toml"))
	if err != nil {
		return "", fmt.Errorf(messages.ConfigResolveUserConfigErrFmt, err)
	}
	return path, nil
}
