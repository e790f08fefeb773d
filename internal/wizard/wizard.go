// Package wizard collects maintenance run options through interactive
// prompts, with Esc stepping back to the previous question and Ctrl+C
// abandoning the wizard.
package wizard

import (
	"errors"
	"strings"

	"github.com/portup-dev/portup/internal/config"
	"github.com/portup-dev/portup/internal/maintenance"
	"github.com/portup-dev/portup/internal/messages"
)

var (
	errWizardBack      = errors.New("wizard back requested")
	errWizardCancelled = errors.New("wizard cancelled")
)

// Choices tracks the answers given so far.
type Choices struct {
	UpgradeMode    string
	EmergeOpts     string
	ConfigMode     string
	Clean          bool
	RestartDaemons bool
	SaveDefaults   bool
}

// NewChoices seeds the answers from the loaded configuration so every
// prompt starts at the current default.
func NewChoices(cfg *config.Config) *Choices {
	return &Choices{
		UpgradeMode:    cfg.Maintenance.UpgradeMode,
		EmergeOpts:     strings.Join(cfg.Maintenance.EmergeOpts, " "),
		ConfigMode:     cfg.Maintenance.ConfigUpdateMode,
		Clean:          cfg.Maintenance.Clean,
		RestartDaemons: cfg.Maintenance.RestartDaemons,
	}
}

// Options converts the answers into run options.
func (c *Choices) Options(elogDir string) maintenance.Options {
	return maintenance.Options{
		Mode:           maintenance.UpgradeMode(c.UpgradeMode),
		EmergeOpts:     maintenance.SplitEmergeOpts(c.EmergeOpts),
		ConfigMode:     c.ConfigMode,
		Clean:          c.Clean,
		RestartDaemons: c.RestartDaemons,
		ElogDir:        elogDir,
	}
}

type flowStep int

const (
	stepUpgradeMode flowStep = iota
	stepEmergeOpts
	stepConfigMode
	stepClean
	stepRestart
	stepSaveDefaults
)

// Run walks the prompt flow. It returns the collected choices and false
// when the user abandoned the wizard.
func Run(ui UI, cfg *config.Config) (*Choices, bool, error) {
	choices := NewChoices(cfg)
	step := stepUpgradeMode
	for {
		snapshot := *choices
		var err error

		switch step {
		case stepUpgradeMode:
			err = ui.Select(messages.WizardUpgradeModeTitle,
				[]string{string(maintenance.UpgradeSecurity), string(maintenance.UpgradeFull)},
				&choices.UpgradeMode)
		case stepEmergeOpts:
			if choices.UpgradeMode != string(maintenance.UpgradeFull) {
				choices.EmergeOpts = ""
			} else {
				err = ui.Input(messages.WizardEmergeOptsTitle, &choices.EmergeOpts)
			}
		case stepConfigMode:
			err = ui.Select(messages.WizardConfigModeTitle,
				[]string{
					string(maintenance.ConfigMerge),
					string(maintenance.ConfigInteractive),
					string(maintenance.ConfigDispatch),
					string(maintenance.ConfigIgnore),
				},
				&choices.ConfigMode)
		case stepClean:
			err = ui.Confirm(messages.WizardCleanTitle, &choices.Clean)
		case stepRestart:
			err = ui.Confirm(messages.WizardRestartTitle, &choices.RestartDaemons)
		case stepSaveDefaults:
			err = ui.Confirm(messages.WizardSaveDefaultsTitle, &choices.SaveDefaults)
		default:
			return choices, true, nil
		}

		if err == nil {
			if step == stepSaveDefaults {
				return choices, true, nil
			}
			step++
			continue
		}

		if errors.Is(err, errWizardCancelled) {
			return nil, false, nil
		}
		if !errors.Is(err, errWizardBack) {
			return nil, false, err
		}

		*choices = snapshot

		// Esc on the first question leaves the wizard.
		if step == stepUpgradeMode {
			return nil, false, nil
		}
		step--
		// The emerge opts step is skipped in security mode; skip it on
		// the way back too.
		if step == stepEmergeOpts && choices.UpgradeMode != string(maintenance.UpgradeFull) {
			step--
		}
	}
}
