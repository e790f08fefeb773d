package messages

// CLI messages for user-facing commands and prompts.
const (
	// RootUse is the CLI command name.
	RootUse = "portup"
	// RootShort is the short description for the root command.
	RootShort = "Portage maintenance orchestrator"
	RootLong  = "portup sequences Portage maintenance: tree sync, security or world upgrade,\nconfiguration reconciliation, cleanup, service restart checks, and log review."

	RootFlagConfig = "Path to the portup config file"

	// VersionCommitFmt formats the commit hash for version display.
	VersionCommitFmt = "commit %s"
	VersionBuildFmt  = "built %s"
	VersionFullFmt   = "%s (%s)"
	VersionTemplate  = "{{.Version}}\n"

	// RunUse is the run command name.
	RunUse   = "run"
	RunShort = "Run the full maintenance sequence"

	RunFlagMode          = "Upgrade strategy: security or full"
	RunFlagEmergeOpt     = "Extra emerge argument for the world upgrade (repeatable)"
	RunFlagEmergeOpts    = "Extra emerge arguments as a single whitespace-separated string"
	RunFlagConfigUpdate  = "Config reconciliation policy: merge, interactive, dispatch, or ignore"
	RunFlagDaemonRestart = "Restart services with pending upgrades instead of only listing them"
	RunFlagClean         = "Remove orphaned packages, rebuild reverse deps, and purge stale distfiles"
	RunFlagInteractive   = "Collect run options through an interactive wizard"

	RunCompleted            = "portup completed its tasks"
	RunLogFileHintFmt       = "log file can be found at: %s"
	RunWarningSummaryHdrFmt = "the run raised %d warning(s), summarized below:"

	// ReportUse is the report command usage.
	ReportUse   = "report [log-file]"
	ReportShort = "Summarize a portup run log"

	ReportNoLogsFmt = "no run logs found under %s"

	// PendingUse is the pending command name.
	PendingUse   = "pending"
	PendingShort = "Preview pending configuration file updates"

	PendingNoneFound   = "no pending configuration updates"
	PendingHeaderFmt   = "pending update for %s (%s)\n"
	PendingScanErrFmt  = "scan pending config updates: %w"
	PendingCountFmt    = "%d pending configuration update(s)\n"
	PendingDiffErrFmt  = "diff %s: %w"
	PendingReadErrFmt  = "read %s: %w"
	PendingNewFileNote = "(new file)"

	// LogsUse is the logs command name.
	LogsUse   = "logs"
	LogsShort = "Print package-manager log entries from the last 24 hours"
)
