package messages

// Config messages for configuration loading and validation.
const (
	// ConfigReadFileFmt formats config read errors.
	ConfigReadFileFmt      = "read config file %s: %w"
	ConfigInvalidConfigFmt = "invalid config %s: %w"
	// ConfigUnrecognizedKeysFmt reports keys rejected by strict decoding.
	ConfigUnrecognizedKeysFmt = "%s contains unrecognized keys: %v."
	ConfigValidationGuidance  = "Fix the reported key in the config file and run portup again."

	ConfigUpgradeModeInvalidFmt   = "%s: maintenance.upgrade_mode must be \"security\" or \"full\""
	ConfigUpdateModeInvalidFmt    = "%s: maintenance.config_update_mode must be one of merge, interactive, dispatch, ignore"
	ConfigLogDirRequiredFmt       = "%s: paths.log_dir must not be empty"
	ConfigElogDirRequiredFmt      = "%s: paths.elog_dir must not be empty"
	ConfigLockFileRequiredFmt     = "%s: paths.lock_file must not be empty"
	ConfigProtectDirRequiredFmt   = "%s: paths.config_protect entries must not be empty"
	ConfigResolveUserConfigErrFmt = "resolve user config path: %w"
	ConfigEmergeOptEmptyFmt       = "%s: maintenance.emerge_opts entries must not be empty"
)
