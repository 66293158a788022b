package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/rs/zerolog/log"
)

// errStalePID marks a PID file left behind by a process that no longer runs
var errStalePID = errors.New("stale PID file")

// pidFile records the server's process id, optionally holding an exclusive
// flock so a second instance refuses to start.
type pidFile struct {
	path string
	lock bool
	file *os.File
}

// acquirePIDFile creates path and writes the current PID into it. With lock set,
// an existing file owned by a live process is an error, and one left by a dead
// process is reclaimed.
func acquirePIDFile(path string, lock bool) (*pidFile, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		if !os.IsExist(err) {
			return nil, fmt.Errorf("cannot create PID file: %w", err)
		}

		if lock {
			if err := checkStalePID(path); err != nil {
				if !errors.Is(err, errStalePID) {
					return nil, err
				}
				log.Warn().Err(err).Str("path", path).Msg("reclaiming PID file")
			}
		}

		// Truncate whatever the previous owner wrote
		file, err = os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
		if err != nil {
			return nil, fmt.Errorf("cannot open PID file: %w", err)
		}
	}

	p := &pidFile{path: path, lock: lock, file: file}

	if lock {
		if err := syscall.Flock(int(file.Fd()), syscall.LOCK_EX|syscall.LOCK_NB); err != nil {
			file.Close()
			if errors.Is(err, syscall.EWOULDBLOCK) {
				return nil, fmt.Errorf("cannot acquire lock: another instance is running")
			}
			return nil, fmt.Errorf("lock failed: %w", err)
		}
	}

	if _, err := fmt.Fprintf(file, "%d\n", os.Getpid()); err != nil {
		p.Release()
		return nil, fmt.Errorf("cannot write PID: %w", err)
	}
	if err := file.Sync(); err != nil {
		p.Release()
		return nil, fmt.Errorf("cannot sync PID file: %w", err)
	}

	return p, nil
}

// Release unlocks, closes and removes the PID file
func (p *pidFile) Release() error {
	var errs []error
	if p.lock {
		if err := syscall.Flock(int(p.file.Fd()), syscall.LOCK_UN); err != nil {
			errs = append(errs, fmt.Errorf("unlock: %w", err))
		}
	}
	if err := p.file.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close: %w", err))
	}
	if err := os.Remove(p.path); err != nil && !os.IsNotExist(err) {
		errs = append(errs, fmt.Errorf("remove: %w", err))
	}
	return errors.Join(errs...)
}

// checkStalePID explains why an existing PID file blocks startup. A file whose
// process is gone yields an error wrapping errStalePID.
func checkStalePID(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("cannot read existing PID file: %w", err)
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return fmt.Errorf("corrupted PID file (contains: %q)", string(data))
	}

	// FindProcess never fails on Unix; signal 0 checks for existence
	proc, _ := os.FindProcess(pid)
	if err := proc.Signal(syscall.Signal(0)); err != nil {
		if errors.Is(err, os.ErrProcessDone) || errors.Is(err, syscall.ESRCH) {
			return fmt.Errorf("%w: process %d is gone", errStalePID, pid)
		}
		return fmt.Errorf("process %d exists but cannot verify ownership: %v", pid, err)
	}

	return fmt.Errorf("PID file held by running process %d", pid)
}
