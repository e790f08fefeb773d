package wizard

import (
	"fmt"
	"strconv"
	"strings"

	// toml is used for syntax validation only; the actual edit is
	// line-based so user comments and formatting survive.
	toml "github.com/pelletier/go-toml"

	"github.com/portup-dev/portup/internal/maintenance"
	"github.com/portup-dev/portup/internal/messages"
)

// keyValue is one key the wizard writes into the [maintenance] section.
type keyValue struct {
	key   string
	value string
}

// PatchConfig writes the wizard answers into the [maintenance] section of
// content, preserving everything else in the file. A missing section is
// appended; missing keys are added at the end of the section.
func PatchConfig(content string, choices *Choices) (string, error) {
	if strings.TrimSpace(content) != "" {
		if _, err := toml.LoadBytes([]byte(content)); err != nil {
			return "", fmt.Errorf(messages.WizardParseConfigFailedFmt, err)
		}
	}

	updates := []keyValue{
		{"upgrade_mode", strconv.Quote(choices.UpgradeMode)},
		{"emerge_opts", renderStringArray(maintenance.SplitEmergeOpts(choices.EmergeOpts))},
		{"config_update_mode", strconv.Quote(choices.ConfigMode)},
		{"restart_daemons", strconv.FormatBool(choices.RestartDaemons)},
		{"clean", strconv.FormatBool(choices.Clean)},
	}

	return patchSection(content, "maintenance", updates), nil
}

// renderStringArray renders a TOML array of strings.
func renderStringArray(values []string) string {
	quoted := make([]string, len(values))
	for i, value := range values {
		quoted[i] = strconv.Quote(value)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

// patchSection replaces the named keys inside [section], keeping comments
// and unrelated keys in place.
func patchSection(content, section string, updates []keyValue) string {
	header := "[" + section + "]"
	lines := strings.Split(content, "\n")
	written := make(map[string]bool)

	var out []string
	inSection := false
	sectionSeen := false
	flushMissing := func() {
		for _, update := range updates {
			if !written[update.key] {
				out = append(out, update.key+" = "+update.value)
				written[update.key] = true
			}
		}
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "[") {
			if inSection {
				// Leaving the section: add any keys it did not have,
				// before the blank lines separating it from the next one.
				for len(out) > 0 && strings.TrimSpace(out[len(out)-1]) == "" {
					out = out[:len(out)-1]
				}
				flushMissing()
				out = append(out, "")
				inSection = false
			}
			if trimmed == header {
				inSection = true
				sectionSeen = true
			}
			out = append(out, line)
			continue
		}
		if inSection {
			if key, ok := lineKey(trimmed); ok {
				if update, found := findUpdate(updates, key); found {
					out = append(out, update.key+" = "+update.value)
					written[update.key] = true
					continue
				}
			}
		}
		out = append(out, line)
	}

	if inSection {
		for len(out) > 0 && strings.TrimSpace(out[len(out)-1]) == "" {
			out = out[:len(out)-1]
		}
		flushMissing()
	}
	if !sectionSeen {
		for len(out) > 0 && strings.TrimSpace(out[len(out)-1]) == "" {
			out = out[:len(out)-1]
		}
		if len(out) > 0 {
			out = append(out, "")
		}
		out = append(out, header)
		flushMissing()
	}

	return strings.TrimRight(strings.Join(out, "\n"), "\n") + "\n"
}

// lineKey extracts the key from a `key = value` line. Comments and blank
// lines have no key.
func lineKey(trimmed string) (string, bool) {
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return "", false
	}
	key, _, found := strings.Cut(trimmed, "=")
	if !found {
		return "", false
	}
	return strings.TrimSpace(key), true
}

func findUpdate(updates []keyValue, key string) (keyValue, bool) {
	for _, update := range updates {
		if update.key == key {
			return update, true
		}
	}
	return keyValue{}, false
}
