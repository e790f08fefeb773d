// Package elog prints the Portage build log entries written during the
// current maintenance window so the operator sees post-install notes
// without digging through the elog directory by hand.
package elog

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/portup-dev/portup/internal/messages"
)

// recentWindow bounds how old an elog entry may be and still get printed.
const recentWindow = 24 * time.Hour

// System is the filesystem surface Review needs. RealSystem backs it in
// production; tests substitute an in-memory implementation.
type System interface {
	Stat(name string) (fs.FileInfo, error)
	ReadDir(name string) ([]fs.DirEntry, error)
	ReadFile(name string) ([]byte, error)
}

// RealSystem implements System against the host filesystem.
type RealSystem struct{}

func (RealSystem) Stat(name string) (fs.FileInfo, error)      { return os.Stat(name) }
func (RealSystem) ReadDir(name string) ([]fs.DirEntry, error) { return os.ReadDir(name) }
func (RealSystem) ReadFile(name string) ([]byte, error)       { return os.ReadFile(name) }

// Printer receives the rendered elog blocks line by line.
type Printer interface {
	Infof(format string, args ...any)
}

// Review prints every elog file under dir modified within the last 24
// hours as a delimited block. A missing directory is reported through
// missing rather than as an error since a fresh system has no elog dir.
func Review(sys System, log Printer, dir string, now time.Time) (missing bool, err error) {
	if _, statErr := sys.Stat(dir); statErr != nil {
		if os.IsNotExist(statErr) {
			log.Infof(messages.MaintElogDirMissingFmt, dir)
			return true, nil
		}
		return false, fmt.Errorf(messages.ElogReadDirErrFmt, dir, statErr)
	}

	entries, readErr := sys.ReadDir(dir)
	if readErr != nil {
		return false, fmt.Errorf(messages.ElogReadDirErrFmt, dir, readErr)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, infoErr := entry.Info()
		if infoErr != nil {
			return false, fmt.Errorf(messages.ElogReadFileErrFmt, entry.Name(), infoErr)
		}
		if now.Sub(info.ModTime()) > recentWindow {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, fileErr := sys.ReadFile(path)
		if fileErr != nil {
			return false, fmt.Errorf(messages.ElogReadFileErrFmt, path, fileErr)
		}
		log.Infof(messages.ElogBlockHeaderFmt, entry.Name())
		for _, line := range strings.Split(strings.TrimRight(string(data), "\n"), "\n") {
			log.Infof("%s", line)
		}
		log.Infof("%s", messages.ElogBlockFooter)
	}
	return false, nil
}
