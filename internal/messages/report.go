package messages

// Report messages for run log parsing and rendering.
const (
	ReportOpenLogErrFmt = "open run log %s: %w"
	ReportScanLogErrFmt = "scan run log %s: %w"

	ReportTitleFmt = "maintenance report for %s\n"

	ReportPretendOK        = "dry run completed without errors"
	ReportPretendFailed    = "dry run exited with errors"
	ReportPretendNotRun    = "dry run was not part of this run"
	ReportWorldOK          = "full update was successful"
	ReportWorldFailed      = "full update was NOT successful"
	ReportSecurityOK       = "security update was successful"
	ReportSecurityFailed   = "security update was NOT successful"
	ReportNoAdvisories     = "no security advisories affected this system"
	ReportUpdateNotRun     = "no update stage was found in this log"
	ReportPackagesHeader   = "package changes:"
	ReportNoPackages       = "no package changes were recorded"
	ReportPackageLineFmt   = "  %-12s %-40s %s\n"
	ReportBlockedByFmt     = "blocked by %s"
	ReportVersionChangeFmt = "%s -> %s"
)

// Wizard messages.
const (
	WizardRequiresTerminal  = "the wizard requires an interactive terminal; pass run options as flags instead"
	WizardUpgradeModeTitle  = "Which upgrade strategy should this run use?"
	WizardEmergeOptsTitle   = "Extra emerge arguments for the world upgrade (optional)"
	WizardConfigModeTitle   = "How should modified configuration files be handled?"
	WizardCleanTitle        = "Remove orphaned packages and purge stale distfiles?"
	WizardRestartTitle      = "Restart services with pending upgrades?"
	WizardSaveDefaultsTitle = "Save these answers as defaults in the config file?"

	WizardCancelled = "wizard cancelled, no maintenance was run"

	WizardParseConfigFailedFmt = "existing config is not valid TOML: %w"
	WizardWriteConfigErrFmt    = "write config %s: %w"
	WizardSavedDefaultsFmt     = "saved defaults to %s\n"
)
