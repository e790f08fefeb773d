// Package maintenance orchestrates a full system maintenance run: tree
// sync, the selected upgrade, configuration reconciliation, cleanup, the
// restart check and review of recent build logs and news.
package maintenance

import (
	"context"
	"time"

	"github.com/portup-dev/portup/internal/elog"
	"github.com/portup-dev/portup/internal/messages"
	"github.com/portup-dev/portup/internal/warnings"
)

// Portage is the set of system tool actions a maintenance run performs.
// portage.Tools implements it; tests substitute fakes.
type Portage interface {
	SyncTree(ctx context.Context) error
	PretendWorldUpdate(ctx context.Context) error
	WorldUpdate(ctx context.Context, extra []string) error
	AffectedAdvisories(ctx context.Context) ([]string, error)
	FixAdvisories(ctx context.Context) error
	MergeConfigs(ctx context.Context) error
	InteractiveMergeConfigs(ctx context.Context) error
	DispatchConfigs(ctx context.Context) error
	Depclean(ctx context.Context) error
	RevdepRebuild(ctx context.Context) error
	CleanDistfiles(ctx context.Context) error
	RestartServices(ctx context.Context) error
	ListPendingRestarts(ctx context.Context) error
	ReadNews(ctx context.Context) error
}

// Logger receives stage markers and progress lines. *shell.Runner
// satisfies it.
type Logger interface {
	Section(name string)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
}

// Options are the resolved settings for one maintenance run. They are
// assembled once from config file and flags, then never mutated.
type Options struct {
	Mode       UpgradeMode
	EmergeOpts []string

	// ConfigMode is kept as the raw string: an unrecognized value is a
	// warning at the config stage, not an upfront failure.
	ConfigMode string

	RestartDaemons bool
	Clean          bool
	ElogDir        string
}

// reviewElog is replaceable in tests.
var reviewElog = func(log Logger, dir string, now time.Time) (bool, error) {
	return elog.Review(elog.RealSystem{}, log, dir, now)
}

// Run executes the maintenance stages in order. It returns the warnings
// accumulated along the way; a non-nil error means the run stopped early.
func Run(ctx context.Context, log Logger, pkg Portage, opts Options) ([]warnings.Warning, error) {
	if _, err := ParseUpgradeMode(string(opts.Mode)); err != nil {
		return nil, err
	}

	var warns []warnings.Warning

	log.Section(messages.SectionSync)
	log.Infof(messages.MaintSyncStart)
	if err := pkg.SyncTree(ctx); err != nil {
		return warns, err
	}

	if err := upgrade(ctx, log, pkg, opts, &warns); err != nil {
		return warns, err
	}

	log.Section(messages.SectionConfig)
	if err := reconcileConfigs(ctx, log, pkg, opts.ConfigMode, &warns); err != nil {
		return warns, err
	}

	log.Section(messages.SectionCleanup)
	if err := cleanup(ctx, log, pkg, opts.Clean); err != nil {
		return warns, err
	}

	log.Section(messages.SectionRestart)
	if err := restartCheck(ctx, log, pkg, opts.RestartDaemons); err != nil {
		return warns, err
	}

	log.Section(messages.SectionElog)
	log.Infof(messages.MaintElogScanStartFmt, opts.ElogDir)
	missing, err := reviewElog(log, opts.ElogDir, time.Now())
	if err != nil {
		return warns, err
	}
	if missing {
		warns = append(warns, warnings.Warning{
			Code:    warnings.CodeElogDirMissing,
			Subject: opts.ElogDir,
			Message: "the build log directory does not exist",
			Fix:     "set paths.elog_dir to where PORTAGE_ELOG_SYSTEM writes log files",
		})
	}

	log.Section(messages.SectionNews)
	log.Infof(messages.MaintNewsStart)
	if err := pkg.ReadNews(ctx); err != nil {
		return warns, err
	}

	return warns, nil
}

// upgrade runs the security or full strategy selected by opts.Mode.
func upgrade(ctx context.Context, log Logger, pkg Portage, opts Options, warns *[]warnings.Warning) error {
	if opts.Mode == UpgradeSecurity {
		log.Section(messages.SectionUpdate)
		log.Infof(messages.MaintUpdateKindFmt, messages.MaintUpdateGLSA)
		ids, err := pkg.AffectedAdvisories(ctx)
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			log.Infof(messages.MaintNoAdvisories)
			return nil
		}
		log.Infof(messages.MaintAdvisoriesFoundFmt, len(ids))
		if err := pkg.FixAdvisories(ctx); err != nil {
			return err
		}
		log.Infof(messages.MaintSecurityUpdateOK)
		return nil
	}

	log.Section(messages.SectionPretend)
	log.Infof(messages.MaintPretendStart)
	if err := pkg.PretendWorldUpdate(ctx); err != nil {
		log.Warnf(messages.MaintPretendFailed)
		*warns = append(*warns, warnings.Warning{
			Code:    warnings.CodeDryRunFailed,
			Subject: "emerge --pretend",
			Message: "the world update dry run reported problems, the update was skipped",
			Fix:     "resolve the conflicts emerge printed above, then run portup again",
			Source:  warnings.SourceExternalDependency,
		})
		return nil
	}
	log.Infof(messages.MaintPretendOK)

	log.Section(messages.SectionUpdate)
	log.Infof(messages.MaintUpdateKindFmt, messages.MaintUpdateWorld)
	if err := pkg.WorldUpdate(ctx, opts.EmergeOpts); err != nil {
		return err
	}
	log.Infof(messages.MaintWorldUpdateOK)
	return nil
}

// reconcileConfigs applies pending configuration changes according to
// mode. Exactly one action runs per recognized mode; an unrecognized
// mode warns and leaves the changes for a later run.
func reconcileConfigs(ctx context.Context, log Logger, pkg Portage, rawMode string, warns *[]warnings.Warning) error {
	mode, ok := ParseConfigUpdateMode(rawMode)
	if !ok {
		log.Warnf("unrecognized config update mode %q, leaving configuration changes untouched", rawMode)
		*warns = append(*warns, warnings.Warning{
			Code:    warnings.CodeConfigModeUnrecognized,
			Subject: rawMode,
			Message: "the config update mode is not recognized, configuration changes were left pending",
			Fix:     "use one of: merge, interactive, dispatch, ignore",
		})
		return nil
	}
	switch mode {
	case ConfigMerge:
		log.Infof(messages.MaintConfigMerge)
		return pkg.MergeConfigs(ctx)
	case ConfigInteractive:
		log.Infof(messages.MaintConfigInteractive)
		return pkg.InteractiveMergeConfigs(ctx)
	case ConfigDispatch:
		log.Infof(messages.MaintConfigDispatch)
		return pkg.DispatchConfigs(ctx)
	default:
		log.Infof(messages.MaintConfigIgnore)
		return nil
	}
}

// cleanup removes orphaned packages, rebuilds broken reverse deps and
// purges stale distfiles when enabled.
func cleanup(ctx context.Context, log Logger, pkg Portage, clean bool) error {
	if !clean {
		log.Infof(messages.MaintCleanupDisabled)
		return nil
	}
	log.Infof(messages.MaintCleanupStart)
	if err := pkg.Depclean(ctx); err != nil {
		return err
	}
	if err := pkg.RevdepRebuild(ctx); err != nil {
		return err
	}
	return pkg.CleanDistfiles(ctx)
}

// restartCheck restarts outdated services, or only lists them when
// restarts are not requested.
func restartCheck(ctx context.Context, log Logger, pkg Portage, restart bool) error {
	if restart {
		log.Infof(messages.MaintRestartApply)
		return pkg.RestartServices(ctx)
	}
	log.Infof(messages.MaintRestartList)
	return pkg.ListPendingRestarts(ctx)
}
