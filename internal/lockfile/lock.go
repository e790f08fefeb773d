// Package lockfile serializes maintenance runs with an exclusive file lock.
// Portage itself serializes access to the package database, but two portup
// runs interleaving their stages would still produce a useless log, so the
// whole run holds one lock from start to finish.
package lockfile

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"github.com/portup-dev/portup/internal/messages"
)

var flockFn = unix.Flock

// Lock holds an acquired run lock until released.
type Lock struct {
	file *os.File
	path string
}

// Acquire opens or creates path and takes an exclusive non-blocking lock.
// A held lock fails immediately; the run is all-or-nothing and never waits.
func Acquire(path string) (*Lock, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf(messages.LockOpenErrFmt, path, err)
	}
	if err := flockFn(int(file.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		_ = file.Close()
		if errors.Is(err, unix.EWOULDBLOCK) {
			return nil, fmt.Errorf(messages.LockHeldFmt, path)
		}
		return nil, fmt.Errorf(messages.LockAcquireErrFmt, path, err)
	}
	return &Lock{file: file, path: path}, nil
}

// Release unlocks and closes the lock file. The file itself is left in
// place so the path stays stable across runs.
func (l *Lock) Release() error {
	if l == nil || l.file == nil {
		return nil
	}
	err := flockFn(int(l.file.Fd()), unix.LOCK_UN)
	closeErr := l.file.Close()
	l.file = nil
	if err != nil {
		return fmt.Errorf(messages.LockAcquireErrFmt, l.path, err)
	}
	return closeErr
}
