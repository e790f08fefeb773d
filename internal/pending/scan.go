// Package pending locates configuration updates Portage has staged but
// not applied. Portage writes them as ._cfg0000_<name> files next to the
// protected file they would replace.
package pending

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/aymanbagabas/go-udiff"

	"github.com/portup-dev/portup/internal/messages"
)

// stagedName matches Portage's staged config file naming scheme.
var stagedName = regexp.MustCompile(`^\._cfg(\d{4})_(.+)$`)

// Update is one staged configuration change.
type Update struct {
	// StagedPath is the ._cfgXXXX_ file holding the new content.
	StagedPath string
	// TargetPath is the live file the staged content would replace.
	TargetPath string
	// Serial is the XXXX counter from the staged file name.
	Serial string
	// NewFile reports that the target does not exist yet.
	NewFile bool
}

// Scan walks the protected directories and returns every staged
// configuration update, in walk order. Directories that do not exist are
// skipped.
func Scan(protected []string) ([]Update, error) {
	var updates []Update
	for _, dir := range protected {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			continue
		}
		err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if entry.IsDir() {
				return nil
			}
			m := stagedName.FindStringSubmatch(entry.Name())
			if m == nil {
				return nil
			}
			target := filepath.Join(filepath.Dir(path), m[2])
			update := Update{
				StagedPath: path,
				TargetPath: target,
				Serial:     m[1],
			}
			if _, statErr := os.Stat(target); os.IsNotExist(statErr) {
				update.NewFile = true
			} else if statErr != nil {
				return statErr
			}
			updates = append(updates, update)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf(messages.PendingScanErrFmt, err)
		}
	}
	return updates, nil
}

// Diff renders the unified diff from the live file to the staged
// content. For a new file the live side is empty.
func Diff(update Update) (string, error) {
	staged, err := os.ReadFile(update.StagedPath)
	if err != nil {
		return "", fmt.Errorf(messages.PendingReadErrFmt, update.StagedPath, err)
	}
	var live []byte
	if !update.NewFile {
		live, err = os.ReadFile(update.TargetPath)
		if err != nil {
			return "", fmt.Errorf(messages.PendingReadErrFmt, update.TargetPath, err)
		}
	}
	diff := udiff.Unified(update.TargetPath, update.StagedPath, string(live), string(staged))
	return strings.TrimSpace(diff), nil
}
