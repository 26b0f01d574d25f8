package watcher

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-ps"
)

type fakeProcess struct {
	pid        int
	executable string
}

func (p *fakeProcess) Pid() int           { return p.pid }
func (p *fakeProcess) PPid() int          { return 0 }
func (p *fakeProcess) Executable() string { return p.executable }

func withProcessTable(t *testing.T, table map[int]string) {
	t.Helper()

	origFind := findProcessFunc
	findProcessFunc = func(pid int) (ps.Process, error) {
		exe, ok := table[pid]
		if !ok {
			return nil, nil
		}
		return &fakeProcess{pid: pid, executable: exe}, nil
	}
	t.Cleanup(func() { findProcessFunc = origFind })
}

func withOwnPid(t *testing.T, pid int) {
	t.Helper()

	origPid := getpidFunc
	getpidFunc = func() int { return pid }
	t.Cleanup(func() { getpidFunc = origPid })
}

func TestAcquireAndRelease(t *testing.T) {
	withProcessTable(t, map[int]string{})
	withOwnPid(t, 100)

	lock := NewLockfile(filepath.Join(t.TempDir(), "test.db"))
	if err := lock.Acquire(); err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}

	content, err := os.ReadFile(lock.Path())
	if err != nil {
		t.Fatalf("failed to read lockfile: %v", err)
	}
	if string(content) != "100" {
		t.Errorf("lockfile content = %s, want 100", content)
	}

	if err := lock.Release(); err != nil {
		t.Fatalf("Release() error = %v", err)
	}
	if _, err := os.Stat(lock.Path()); !os.IsNotExist(err) {
		t.Error("lockfile still exists after Release()")
	}
}

func TestAcquireRejectsLiveOwner(t *testing.T) {
	withProcessTable(t, map[int]string{100: "compromissos"})
	withOwnPid(t, 200)

	lock := NewLockfile(filepath.Join(t.TempDir(), "test.db"))
	if err := os.WriteFile(lock.Path(), []byte("100"), 0600); err != nil {
		t.Fatalf("failed to seed lockfile: %v", err)
	}

	if err := lock.Acquire(); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("Acquire() error = %v, want ErrAlreadyRunning", err)
	}
}

func TestAcquireReplacesStaleLock(t *testing.T) {
	// Pid 100 is dead, pid 300 belongs to an unrelated process
	withProcessTable(t, map[int]string{300: "firefox"})
	withOwnPid(t, 200)

	tests := []struct {
		name    string
		content string
	}{
		{"dead pid", "100"},
		{"recycled pid", "300"},
		{"malformed", "not-a-pid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lock := NewLockfile(filepath.Join(t.TempDir(), "test.db"))
			if err := os.WriteFile(lock.Path(), []byte(tt.content), 0600); err != nil {
				t.Fatalf("failed to seed lockfile: %v", err)
			}

			if err := lock.Acquire(); err != nil {
				t.Errorf("Acquire() over stale lock error = %v", err)
			}
		})
	}
}

func TestOwnerRunning(t *testing.T) {
	withProcessTable(t, map[int]string{100: "compromissos"})

	lock := NewLockfile(filepath.Join(t.TempDir(), "test.db"))
	if _, running := lock.OwnerRunning(); running {
		t.Error("OwnerRunning() = true with no lockfile")
	}

	if err := os.WriteFile(lock.Path(), []byte("100"), 0600); err != nil {
		t.Fatalf("failed to seed lockfile: %v", err)
	}
	pid, running := lock.OwnerRunning()
	if !running || pid != 100 {
		t.Errorf("OwnerRunning() = (%d, %v), want (100, true)", pid, running)
	}
}
