package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/portup-dev/portup/internal/config"
	"github.com/portup-dev/portup/internal/lockfile"
	"github.com/portup-dev/portup/internal/maintenance"
	"github.com/portup-dev/portup/internal/messages"
	"github.com/portup-dev/portup/internal/portage"
	"github.com/portup-dev/portup/internal/shell"
	"github.com/portup-dev/portup/internal/wizard"
)

// runFlags holds the run command's flag values before they are merged
// with the config file.
type runFlags struct {
	mode          string
	emergeOpt     []string
	emergeOpts    string
	configUpdate  string
	daemonRestart bool
	clean         bool
	interactive   bool
}

var (
	runMaintenanceFunc = runMaintenance
	runStagesFunc      = maintenance.Run
)

func newRunCmd() *cobra.Command {
	flags := &runFlags{}
	cmd := &cobra.Command{
		Use:   messages.RunUse,
		Short: messages.RunShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMaintenanceFunc(cmd, flags)
		},
	}
	cmd.Flags().StringVar(&flags.mode, "mode", "", messages.RunFlagMode)
	cmd.Flags().StringArrayVar(&flags.emergeOpt, "emerge-opt", nil, messages.RunFlagEmergeOpt)
	cmd.Flags().StringVar(&flags.emergeOpts, "emerge-opts", "", messages.RunFlagEmergeOpts)
	cmd.Flags().StringVar(&flags.configUpdate, "config-update", "", messages.RunFlagConfigUpdate)
	cmd.Flags().BoolVar(&flags.daemonRestart, "daemon-restart", false, messages.RunFlagDaemonRestart)
	cmd.Flags().BoolVar(&flags.clean, "clean", false, messages.RunFlagClean)
	cmd.Flags().BoolVar(&flags.interactive, "interactive", false, messages.RunFlagInteractive)
	return cmd
}

func runMaintenance(cmd *cobra.Command, flags *runFlags) error {
	cfg, configPath, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	var opts maintenance.Options
	if flags.interactive {
		choices, ok, wizErr := wizard.Run(wizard.NewHuhUI(), cfg)
		if wizErr != nil {
			return wizErr
		}
		if !ok {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), messages.WizardCancelled)
			return nil
		}
		opts = choices.Options(cfg.Paths.ElogDir)
		if choices.SaveDefaults {
			if saveErr := saveDefaults(configPath, choices, cmd); saveErr != nil {
				return saveErr
			}
		}
	} else {
		opts, err = resolveOptions(cmd, cfg, flags)
		if err != nil {
			return err
		}
	}

	lock, err := lockfile.Acquire(cfg.Paths.LockFile)
	if err != nil {
		return err
	}
	defer func() { _ = lock.Release() }()

	runner, closeLog, err := shell.New(cfg.Paths.LogDir, cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	warns, err := runStagesFunc(cmd.Context(), runner, portage.NewTools(runner), opts)
	if len(warns) > 0 {
		// Recap of warnings already logged in their stages.
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), messages.RunWarningSummaryHdrFmt+"\n", len(warns))
		for _, warn := range warns {
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), warn.String())
		}
	}
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), messages.RunCompleted)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), messages.RunLogFileHintFmt+"\n", runner.LogPath())
	return nil
}

// resolveOptions merges the config file defaults with the flags that were
// explicitly set.
func resolveOptions(cmd *cobra.Command, cfg *config.Config, flags *runFlags) (maintenance.Options, error) {
	rawMode := cfg.Maintenance.UpgradeMode
	if cmd.Flags().Changed("mode") {
		rawMode = flags.mode
	}
	mode, err := maintenance.ParseUpgradeMode(rawMode)
	if err != nil {
		return maintenance.Options{}, err
	}

	emergeOpts := cfg.Maintenance.EmergeOpts
	switch {
	case len(flags.emergeOpt) > 0:
		emergeOpts = flags.emergeOpt
	case flags.emergeOpts != "":
		emergeOpts = maintenance.SplitEmergeOpts(flags.emergeOpts)
	}

	configMode := cfg.Maintenance.ConfigUpdateMode
	if cmd.Flags().Changed("config-update") {
		configMode = flags.configUpdate
	}

	restart := cfg.Maintenance.RestartDaemons
	if cmd.Flags().Changed("daemon-restart") {
		restart = flags.daemonRestart
	}

	clean := cfg.Maintenance.Clean
	if cmd.Flags().Changed("clean") {
		clean = flags.clean
	}

	return maintenance.Options{
		Mode:           mode,
		EmergeOpts:     emergeOpts,
		ConfigMode:     configMode,
		RestartDaemons: restart,
		Clean:          clean,
		ElogDir:        cfg.Paths.ElogDir,
	}, nil
}

// saveDefaults writes the wizard answers back to the config file,
// preserving its existing comments and unrelated sections.
func saveDefaults(configPath string, choices *wizard.Choices, cmd *cobra.Command) error {
	content, err := os.ReadFile(configPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf(messages.ConfigReadFileFmt, configPath, err)
	}
	patched, err := wizard.PatchConfig(string(content), choices)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf(messages.WizardWriteConfigErrFmt, configPath, err)
	}
	if err := os.WriteFile(configPath, []byte(patched), 0o644); err != nil {
		return fmt.Errorf(messages.WizardWriteConfigErrFmt, configPath, err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), messages.WizardSavedDefaultsFmt, configPath)
	return nil
}
