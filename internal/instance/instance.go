// Package instance keeps a second copy of the tray from starting.
package instance

import (
	"errors"
	"os"
	"regexp"
)

// ErrAlreadyRunning means another process holds the lock.
var ErrAlreadyRunning = errors.New("another instance is already running")

// DefaultName identifies the lock shared by every copy of the program.
const DefaultName = "TaskTrayQuickLaunch"

// Lock is held for the life of the process. Release is safe to call more
// than once.
type Lock struct {
	name    string
	release func() error
}

// Name returns the lock name.
func (l *Lock) Name() string {
	return l.name
}

// Release drops the lock.
func (l *Lock) Release() error {
	if l == nil || l.release == nil {
		return nil
	}
	release := l.release
	l.release = nil
	return release()
}

// lockDirFn locates lock files on platforms that lock with flock.
var lockDirFn = os.TempDir

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9._-]`)

func sanitize(name string) string {
	name = unsafeName.ReplaceAllString(name, "_")
	if name == "" {
		return DefaultName
	}
	return name
}

// Acquire takes the named lock or returns ErrAlreadyRunning.
func Acquire(name string) (*Lock, error) {
	name = sanitize(name)
	release, err := acquire(name)
	if err != nil {
		return nil, err
	}
	return &Lock{name: name, release: release}, nil
}
