package crawler

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"

	"golang.org/x/sys/unix"
)

// ErrLocked is returned when another live crawler instance holds the lock.
var ErrLocked = errors.New("already locked by a running process")

// PIDLock is an advisory flock on a pid file. The flock releases
// automatically when the holding process dies, so a crash never wedges the
// instrument; the recorded PID is for diagnostics.
type PIDLock struct {
	path string
	file *os.File
}

// AcquirePIDLock takes the lock at path, writing the caller's PID into the
// file. It fails with ErrLocked when another process holds the flock.
func AcquirePIDLock(path string) (*PIDLock, error) {
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open lock file: %w", err)
	}

	if err := unix.Flock(int(file.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		holder := readPID(file)
		_ = file.Close()
		if holder > 0 {
			return nil, fmt.Errorf("%s held by PID %d: %w", path, holder, ErrLocked)
		}
		return nil, fmt.Errorf("%s: %w", path, ErrLocked)
	}

	// A leftover PID of a live process means someone wrote the file without
	// flocking it. Back off rather than steal the lock; a dead holder is
	// recovered silently.
	if holder := readPID(file); holder > 0 && holder != os.Getpid() && pidAlive(holder) {
		_ = unix.Flock(int(file.Fd()), unix.LOCK_UN)
		_ = file.Close()
		return nil, fmt.Errorf("%s held by PID %d: %w", path, holder, ErrLocked)
	}

	if err := file.Truncate(0); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to truncate lock file: %w", err)
	}
	if _, err := file.WriteAt([]byte(strconv.Itoa(os.Getpid())), 0); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to write pid: %w", err)
	}

	return &PIDLock{path: path, file: file}, nil
}

// Release drops the lock and removes the pid file.
func (l *PIDLock) Release() error {
	if l.file == nil {
		return nil
	}
	if err := unix.Flock(int(l.file.Fd()), unix.LOCK_UN); err != nil {
		return fmt.Errorf("failed to unlock: %w", err)
	}
	if err := l.file.Close(); err != nil {
		return fmt.Errorf("failed to close lock file: %w", err)
	}
	l.file = nil
	return os.Remove(l.path)
}

func readPID(file *os.File) int {
	content := make([]byte, 32)
	n, err := file.ReadAt(content, 0)
	if n == 0 || (err != nil && n <= 0) {
		return 0
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(content[:n])))
	if err != nil {
		return 0
	}
	return pid
}

// pidAlive probes the process with signal 0. os.FindProcess on Unix always
// succeeds, the probe is what tells.
func pidAlive(pid int) bool {
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return process.Signal(syscall.Signal(0)) == nil
}
