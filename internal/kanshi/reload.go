package kanshi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"golang.org/x/sys/unix"
)

// Reloader asks a running kanshi daemon to re-read its configuration.
type Reloader struct {
	// ProcDir is the procfs mount used to find kanshi processes.
	ProcDir string
	// Command runs kanshictl; replaced in tests.
	Command func(ctx context.Context, name string, args ...string) error
	// Signal delivers a signal to a pid; replaced in tests.
	Signal func(pid int, sig syscall.Signal) error
}

// NewReloader returns a Reloader using kanshictl and /proc.
func NewReloader() *Reloader {
	return &Reloader{
		ProcDir: "/proc",
		Command: func(ctx context.Context, name string, args ...string) error {
			out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
			if err != nil {
				return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(out)))
			}
			return nil
		},
		Signal: unix.Kill,
	}
}

// Reload tries `kanshictl reload` first and falls back to sending SIGHUP to
// every process named kanshi.
func (r *Reloader) Reload(ctx context.Context) error {
	err := r.Command(ctx, "kanshictl", "reload")
	if err == nil {
		slog.Info("kanshi: reloaded via kanshictl")
		return nil
	}
	slog.Debug("kanshi: kanshictl failed, falling back to SIGHUP", "err", err)

	pids, perr := findProcesses(r.ProcDir, "kanshi")
	if perr != nil {
		return fmt.Errorf("reloading kanshi: %w", errors.Join(err, perr))
	}
	if len(pids) == 0 {
		return fmt.Errorf("reloading kanshi: no running kanshi process: %w", err)
	}
	for _, pid := range pids {
		if serr := r.Signal(pid, unix.SIGHUP); serr != nil {
			return fmt.Errorf("reloading kanshi: signal pid %d: %w", pid, serr)
		}
	}
	slog.Info("kanshi: reloaded via SIGHUP", "pids", pids)
	return nil
}

// findProcesses returns the pids under procDir whose comm equals name.
func findProcesses(procDir, name string) ([]int, error) {
	entries, err := os.ReadDir(procDir)
	if err != nil {
		return nil, err
	}
	var pids []int
	for _, e := range entries {
		pid, err := strconv.Atoi(e.Name())
		if err != nil || !e.IsDir() {
			continue
		}
		comm, err := os.ReadFile(filepath.Join(procDir, e.Name(), "comm"))
		if err != nil {
			continue
		}
		if strings.TrimSpace(string(comm)) == name {
			pids = append(pids, pid)
		}
	}
	return pids, nil
}
