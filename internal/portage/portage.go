// Package portage wraps the Gentoo maintenance tools portup drives:
// emerge, glsa-check, etc-update, dispatch-conf, revdep-rebuild,
// eclean-dist, needrestart and eselect. Each method maps to one tool
// invocation so the orchestration layer never builds argv itself.
package portage

import (
	"context"
	"regexp"
	"strings"
)

// Runner executes external commands. *shell.Runner satisfies it; tests
// substitute a recorder.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) error
	Output(ctx context.Context, name string, args ...string) (string, error)
	RunInteractive(ctx context.Context, name string, args ...string) error
}

// Tools invokes the system package-maintenance commands through a Runner.
type Tools struct {
	sh Runner
}

// NewTools returns a Tools bound to the given runner.
func NewTools(sh Runner) *Tools {
	return &Tools{sh: sh}
}

// SyncTree refreshes the Portage tree.
func (t *Tools) SyncTree(ctx context.Context) error {
	return t.sh.Run(ctx, "emerge", "--sync")
}

// PretendWorldUpdate performs the dry run that gates a full world update.
func (t *Tools) PretendWorldUpdate(ctx context.Context) error {
	return t.sh.Run(ctx, "emerge", "--pretend", "--verbose", "--update", "--deep", "--newuse", "@world")
}

// WorldUpdate updates @world, passing extra through to emerge verbatim.
func (t *Tools) WorldUpdate(ctx context.Context, extra []string) error {
	args := []string{"--verbose", "--update", "--deep", "--newuse"}
	args = append(args, extra...)
	args = append(args, "@world")
	return t.sh.Run(ctx, "emerge", args...)
}

// advisoryID matches GLSA identifiers such as 202403-01.
var advisoryID = regexp.MustCompile(`^\d{6}-\d{2}`)

// AffectedAdvisories lists the identifiers of security advisories that
// apply to installed packages. An empty slice means the system is clean.
func (t *Tools) AffectedAdvisories(ctx context.Context) ([]string, error) {
	out, err := t.sh.Output(ctx, "glsa-check", "--list", "affected")
	if err != nil {
		return nil, err
	}
	var ids []string
	for _, line := range strings.Split(out, "\n") {
		if id := advisoryID.FindString(strings.TrimSpace(line)); id != "" {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// FixAdvisories applies the updates resolving all affected advisories.
func (t *Tools) FixAdvisories(ctx context.Context) error {
	return t.sh.Run(ctx, "glsa-check", "--fix", "affected")
}

// MergeConfigs merges pending configuration updates automatically,
// preferring the new version on conflict.
func (t *Tools) MergeConfigs(ctx context.Context) error {
	return t.sh.Run(ctx, "etc-update", "--automode", "-5")
}

// InteractiveMergeConfigs walks pending configuration updates in
// etc-update's interactive session.
func (t *Tools) InteractiveMergeConfigs(ctx context.Context) error {
	return t.sh.RunInteractive(ctx, "etc-update")
}

// DispatchConfigs walks pending configuration updates with dispatch-conf.
func (t *Tools) DispatchConfigs(ctx context.Context) error {
	return t.sh.RunInteractive(ctx, "dispatch-conf")
}

// Depclean removes packages nothing in @world depends on.
func (t *Tools) Depclean(ctx context.Context) error {
	return t.sh.Run(ctx, "emerge", "--depclean")
}

// RevdepRebuild rebuilds packages with broken shared-library links.
func (t *Tools) RevdepRebuild(ctx context.Context) error {
	return t.sh.Run(ctx, "revdep-rebuild")
}

// CleanDistfiles deletes source archives no installed package needs.
func (t *Tools) CleanDistfiles(ctx context.Context) error {
	return t.sh.Run(ctx, "eclean-dist", "--deep")
}

// RestartServices restarts every service running outdated binaries.
func (t *Tools) RestartServices(ctx context.Context) error {
	return t.sh.Run(ctx, "needrestart", "-r", "a")
}

// ListPendingRestarts prints the services that need a restart without
// touching them.
func (t *Tools) ListPendingRestarts(ctx context.Context) error {
	return t.sh.Run(ctx, "needrestart", "-r", "l")
}

// ReadNews prints unread Gentoo news items and marks them read.
func (t *Tools) ReadNews(ctx context.Context) error {
	return t.sh.Run(ctx, "eselect", "news", "read", "new")
}
