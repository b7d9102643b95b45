// Package maintenance provides background goroutines for the editor: live
// output polling and pruning of old configuration backups.
package maintenance

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/monitoradlo/monitoradlo-go/internal/config"
	"github.com/monitoradlo/monitoradlo-go/internal/models"
)

// DefaultBackupMaxAge is how long configuration backups are kept.
const DefaultBackupMaxAge = 90 * 24 * time.Hour

// LiveSource enumerates connected outputs.
type LiveSource interface {
	DetectOutputs(ctx context.Context) ([]models.LiveOutput, error)
}

// LiveSink receives whole live output snapshots.
type LiveSink interface {
	SetLiveOutputs(outputs []models.LiveOutput) bool
}

// Service manages background maintenance goroutines.
type Service struct {
	source      LiveSource
	sink        LiveSink
	interval    time.Duration
	backupDir   string
	onAvailable func(bool) // called when the live source starts or stops answering
}

// New creates a maintenance Service polling source every interval. An
// empty backupDir disables backup pruning.
func New(source LiveSource, sink LiveSink, interval time.Duration, backupDir string, onAvailable func(bool)) *Service {
	return &Service{
		source:      source,
		sink:        sink,
		interval:    interval,
		backupDir:   backupDir,
		onAvailable: onAvailable,
	}
}

// Start launches all background maintenance goroutines.
// Blocks until ctx is cancelled; all goroutines respect the context.
func (s *Service) Start(ctx context.Context) {
	if s.source != nil && s.sink != nil && s.interval > 0 {
		go s.runRefreshLive(ctx)
	}
	if s.backupDir != "" {
		go s.runPruneBackups(ctx)
	}

	<-ctx.Done()
}

// runRefreshLive polls the live source and pushes snapshots into the sink.
func (s *Service) runRefreshLive(ctx context.Context) {
	available := false
	first := true

	poll := func() {
		outputs, err := s.source.DetectOutputs(ctx)
		ok := err == nil
		if first || ok != available {
			first = false
			available = ok
			if ok {
				slog.Info("maintenance: live outputs available", "count", len(outputs))
			} else {
				slog.Warn("maintenance: live outputs unavailable", "err", err)
			}
			if s.onAvailable != nil {
				s.onAvailable(ok)
			}
		}
		if !ok {
			return
		}
		if s.sink.SetLiveOutputs(outputs) {
			slog.Debug("maintenance: live outputs changed", "count", len(outputs))
		}
	}

	poll() // immediate first poll

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			poll()
		}
	}
}

// runPruneBackups prunes old backups at startup and daily at 2am.
func (s *Service) runPruneBackups(ctx context.Context) {
	PruneBackups(s.backupDir, DefaultBackupMaxAge)

	for {
		now := time.Now()
		// Next 2am
		next2am := time.Date(now.Year(), now.Month(), now.Day(), 2, 0, 0, 0, now.Location())
		if !next2am.After(now) {
			next2am = next2am.Add(24 * time.Hour)
		}
		delay := next2am.Sub(now)

		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
			PruneBackups(s.backupDir, DefaultBackupMaxAge)
		}
	}
}

// PruneBackups deletes configuration backups older than maxAge and returns
// how many were removed.
func PruneBackups(backupDir string, maxAge time.Duration) int {
	files, err := config.ListBackups(backupDir)
	if err != nil {
		slog.Warn("maintenance: listing backups failed", "dir", backupDir, "err", err)
		return 0
	}

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for _, path := range files {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(path); err != nil {
				slog.Warn("maintenance: failed to prune old backup", "file", path, "err", err)
			} else {
				slog.Info("maintenance: pruned old backup", "file", path)
				removed++
			}
		}
	}
	return removed
}
