package messages

// Maintenance messages: stage banners, progress lines, and the log markers
// the report parser keys on. Marker strings are part of the log format —
// changing them breaks parsing of existing run logs.
const (
	// SectionSync names the tree sync stage in run logs.
	SectionSync    = "TREE SYNC"
	SectionPretend = "PRETEND UPDATE"
	SectionUpdate  = "UPDATE SYSTEM"
	SectionConfig  = "CONFIG RECONCILE"
	SectionCleanup = "CLEANUP"
	SectionRestart = "RESTART CHECK"
	SectionElog    = "LOG REVIEW"
	SectionNews    = "NEWS"

	// MaintUpdateKindFmt records which upgrade strategy ran; the report
	// parser reads the second token ("world" or "security").
	MaintUpdateKindFmt = "updating: %s"
	MaintUpdateWorld   = "world"
	MaintUpdateGLSA    = "security"

	MaintSyncStart = "syncing the package tree"

	MaintPretendStart  = "running a dry-run of the world upgrade"
	MaintPretendOK     = "dry run completed without errors, updating"
	MaintPretendFailed = "dry run reported problems, skipping the world upgrade"

	MaintWorldUpdateOK    = "world update was successful"
	MaintSecurityUpdateOK = "security update was successful"

	MaintNoAdvisories          = "no affected advisories, nothing to fix"
	MaintAdvisoriesFoundFmt    = "%d affected advisories, fixing"
	MaintInvalidUpgradeModeFmt = "invalid upgrade mode %q (valid modes: security, full)"

	MaintConfigMerge       = "merging configuration changes automatically"
	MaintConfigInteractive = "merging configuration changes interactively"
	MaintConfigDispatch    = "merging configuration changes with dispatch-conf"
	MaintConfigIgnore      = "leaving configuration changes untouched"

	MaintCleanupDisabled = "cleanup is disabled, skipping"
	MaintCleanupStart    = "removing orphaned packages, rebuilding reverse deps, purging distfiles"

	MaintRestartApply = "restarting services with pending upgrades"
	MaintRestartList  = "listing services with pending upgrades"

	MaintElogDirMissingFmt = "log directory %s does not exist, nothing to review"
	MaintElogScanStartFmt  = "reviewing log entries under %s from the last 24 hours"
	MaintNewsStart         = "checking for unread news items"

	// ElogBlockHeaderFmt delimits one printed log file.
	ElogBlockHeaderFmt = "======== %s ========"
	ElogBlockFooter    = "========================"
	ElogReadDirErrFmt  = "read log directory %s: %w"
	ElogReadFileErrFmt = "read log file %s: %w"
)

// Shell runner messages.
const (
	ShellCreateLogDirErrFmt  = "create log directory %s: %w"
	ShellCreateLogFileErrFmt = "create log file %s: %w"
	ShellStartCommandErrFmt  = "start %s: %w"
	ShellCommandFailedFmt    = "%s exited with an error: %w"
)

// Lock messages.
const (
	LockOpenErrFmt    = "open lock file %s: %w"
	LockHeldFmt       = "another maintenance run is active (lock %s is held)"
	LockAcquireErrFmt = "acquire lock %s: %w"
)
