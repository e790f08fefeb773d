package wizard

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/portup-dev/portup/internal/config"
)

var errTestFailure = errors.New("prompt failure")

// scriptedUI replays a fixed sequence of answers. Each step may override
// the prompted value and may return a navigation error.
type scriptedStep struct {
	selectValue  string
	inputValue   string
	confirmValue *bool
	err          error
}

type scriptedUI struct {
	t       *testing.T
	steps   []scriptedStep
	pos     int
	prompts []string
}

func (ui *scriptedUI) next(title string) scriptedStep {
	ui.prompts = append(ui.prompts, title)
	if ui.pos >= len(ui.steps) {
		ui.t.Fatalf("unexpected prompt %q after %d scripted steps", title, len(ui.steps))
	}
	step := ui.steps[ui.pos]
	ui.pos++
	return step
}

func (ui *scriptedUI) Select(title string, _ []string, current *string) error {
	step := ui.next(title)
	if step.selectValue != "" {
		*current = step.selectValue
	}
	return step.err
}

func (ui *scriptedUI) Confirm(title string, value *bool) error {
	step := ui.next(title)
	if step.confirmValue != nil {
		*value = *step.confirmValue
	}
	return step.err
}

func (ui *scriptedUI) Input(title string, value *string) error {
	step := ui.next(title)
	if step.inputValue != "" {
		*value = step.inputValue
	}
	return step.err
}

func boolPtr(b bool) *bool { return &b }

func TestRunSecurityFlowSkipsEmergeOpts(t *testing.T) {
	ui := &scriptedUI{t: t, steps: []scriptedStep{
		{selectValue: "security"},
		{selectValue: "merge"},
		{confirmValue: boolPtr(true)},  // clean
		{confirmValue: boolPtr(false)}, // restart
		{confirmValue: boolPtr(false)}, // save defaults
	}}

	choices, ok, err := Run(ui, config.Default())
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "security", choices.UpgradeMode)
	require.Empty(t, choices.EmergeOpts)
	require.True(t, choices.Clean)
	require.False(t, choices.RestartDaemons)
	require.Len(t, ui.prompts, 5)
}

func TestRunFullFlowCollectsEmergeOpts(t *testing.T) {
	ui := &scriptedUI{t: t, steps: []scriptedStep{
		{selectValue: "full"},
		{inputValue: "--color=y --quiet"},
		{selectValue: "dispatch"},
		{confirmValue: boolPtr(false)},
		{confirmValue: boolPtr(true)},
		{confirmValue: boolPtr(true)},
	}}

	choices, ok, err := Run(ui, config.Default())
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "full", choices.UpgradeMode)
	require.Equal(t, "--color=y --quiet", choices.EmergeOpts)
	require.Equal(t, "dispatch", choices.ConfigMode)
	require.True(t, choices.SaveDefaults)

	opts := choices.Options("/var/log/portage/elog")
	require.Equal(t, []string{"--color=y", "--quiet"}, opts.EmergeOpts)
	require.True(t, opts.RestartDaemons)
}

func TestRunBackRestoresPreviousAnswer(t *testing.T) {
	ui := &scriptedUI{t: t, steps: []scriptedStep{
		{selectValue: "full"},
		{inputValue: "--quiet"},
		{selectValue: "dispatch", err: errWizardBack}, // back from config mode
		{inputValue: "--verbose"},                     // emerge opts again
		{selectValue: "ignore"},
		{confirmValue: boolPtr(false)},
		{confirmValue: boolPtr(false)},
		{confirmValue: boolPtr(false)},
	}}

	choices, ok, err := Run(ui, config.Default())
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "--verbose", choices.EmergeOpts)
	require.Equal(t, "ignore", choices.ConfigMode)
}

func TestRunBackOverEmergeOptsInSecurityMode(t *testing.T) {
	ui := &scriptedUI{t: t, steps: []scriptedStep{
		{selectValue: "security"},
		{selectValue: "merge", err: errWizardBack}, // back from config mode
		{selectValue: "security"},                  // lands on upgrade mode again
		{selectValue: "merge"},
		{confirmValue: boolPtr(false)},
		{confirmValue: boolPtr(false)},
		{confirmValue: boolPtr(false)},
	}}

	_, ok, err := Run(ui, config.Default())
	require.NoError(t, err)
	require.True(t, ok)
}

func TestRunEscOnFirstStepLeaves(t *testing.T) {
	ui := &scriptedUI{t: t, steps: []scriptedStep{
		{err: errWizardBack},
	}}

	choices, ok, err := Run(ui, config.Default())
	require.NoError(t, err)
	require.False(t, ok)
	require.Nil(t, choices)
}

func TestRunCtrlCAbandons(t *testing.T) {
	ui := &scriptedUI{t: t, steps: []scriptedStep{
		{selectValue: "security"},
		{err: errWizardCancelled},
	}}

	choices, ok, err := Run(ui, config.Default())
	require.NoError(t, err)
	require.False(t, ok)
	require.Nil(t, choices)
}

func TestRunPropagatesUIErrors(t *testing.T) {
	ui := &scriptedUI{t: t, steps: []scriptedStep{
		{err: errTestFailure},
	}}

	_, _, err := Run(ui, config.Default())
	require.ErrorIs(t, err, errTestFailure)
}

func TestHuhUIRequiresTerminal(t *testing.T) {
	ui := &HuhUI{isTerminal: func() bool { return false }}
	var value string
	err := ui.Input("question", &value)
	require.ErrorContains(t, err, "interactive terminal")
}
