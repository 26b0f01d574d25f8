package watcher

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/Leandrogm81/Compromissos/internal/constants"
)

var (
	findProcessFunc = ps.FindProcess
	getpidFunc      = os.Getpid
)

// ErrAlreadyRunning is returned when another live watcher holds the lockfile.
var ErrAlreadyRunning = errors.New("watcher is already running")

// Lockfile guards against two watcher processes arming timers for the same
// store. The file holds the owner's pid; a lockfile whose pid no longer maps
// to a live process of ours is stale and gets replaced.
type Lockfile struct {
	path string
}

// NewLockfile places the lock next to the store file it guards.
func NewLockfile(storePath string) *Lockfile {
	return &Lockfile{
		path: filepath.Join(filepath.Dir(storePath), constants.WatcherLockfileName),
	}
}

func (l *Lockfile) Path() string {
	return l.path
}

// Acquire claims the lockfile for this process. Returns ErrAlreadyRunning if
// a live watcher already owns it.
func (l *Lockfile) Acquire() error {
	if pid, running := l.ownerPid(); running {
		return fmt.Errorf("%w (pid %d)", ErrAlreadyRunning, pid)
	}

	if err := os.MkdirAll(filepath.Dir(l.path), 0700); err != nil {
		return fmt.Errorf("failed to create lockfile directory: %w", err)
	}
	pid := strconv.Itoa(getpidFunc())
	if err := os.WriteFile(l.path, []byte(pid), 0600); err != nil {
		return fmt.Errorf("failed to write lockfile: %w", err)
	}
	return nil
}

// Release removes the lockfile. Missing file is not an error.
func (l *Lockfile) Release() error {
	err := os.Remove(l.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lockfile: %w", err)
	}
	return nil
}

// OwnerRunning reports whether a live watcher currently holds the lock, and
// its pid. Used by the doctor command to flag duplicate watchers.
func (l *Lockfile) OwnerRunning() (int, bool) {
	return l.ownerPid()
}

func (l *Lockfile) ownerPid() (int, bool) {
	content, err := os.ReadFile(l.path)
	if err != nil {
		return 0, false
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(content)))
	if err != nil {
		// Malformed lockfile is treated as stale
		return 0, false
	}

	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return 0, false
	}

	// A recycled pid belonging to an unrelated process does not count
	if !strings.HasPrefix(process.Executable(), constants.AppName) {
		return 0, false
	}

	return pid, true
}
