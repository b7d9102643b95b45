package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/monitoradlo/monitoradlo-go/internal/kanshi"
	"github.com/monitoradlo/monitoradlo-go/internal/models"
)

const (
	backupPrefix = "kanshi-config-"
	backupLayout = "20060102-150405.000000000"
	maxBackups   = 30
)

// KanshiStore reads and writes a kanshi configuration file. Every Save
// first copies the previous file into the backup directory.
type KanshiStore struct {
	mu        sync.Mutex
	path      string
	backupDir string
}

// NewKanshiStore creates a store for the kanshi file at path. An empty
// backupDir disables backups.
func NewKanshiStore(path, backupDir string) *KanshiStore {
	return &KanshiStore{path: path, backupDir: backupDir}
}

// Path returns the kanshi file path.
func (s *KanshiStore) Path() string { return s.path }

// Load reads and parses the kanshi file. A missing file yields an empty
// configuration. A file that fails to parse is an error: the caller must
// not overwrite it with an empty configuration.
func (s *KanshiStore) Load() (*models.Configuration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			slog.Info("config: kanshi config not found, starting empty", "path", s.path)
			def := models.DefaultConfiguration()
			return &def, nil
		}
		return nil, fmt.Errorf("reading kanshi config: %w", err)
	}

	cfg, err := kanshi.Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("parsing kanshi config %s: %w", s.path, err)
	}
	normalize(cfg)
	return cfg, nil
}

// Save serializes cfg and atomically replaces the kanshi file.
func (s *KanshiStore) Save(cfg *models.Configuration) error {
	if err := kanshi.Validate(cfg); err != nil {
		return fmt.Errorf("refusing to write kanshi config: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.backupDir != "" {
		if path, err := s.backup(); err != nil {
			slog.Warn("config: backup failed, saving anyway", "err", err)
		} else if path != "" {
			slog.Debug("config: backup created", "file", path)
		}
	}
	if err := writeAtomic(s.path, []byte(kanshi.Serialize(cfg))); err != nil {
		return fmt.Errorf("writing kanshi config: %w", err)
	}
	slog.Info("config: saved kanshi config", "path", s.path, "profiles", len(cfg.Profiles))
	return nil
}

// Backups returns the backup files, oldest first.
func (s *KanshiStore) Backups() ([]string, error) {
	if s.backupDir == "" {
		return []string{}, nil
	}
	return ListBackups(s.backupDir)
}

// backup copies the current kanshi file into the backup directory and
// prunes old copies. It returns "" when there is nothing to back up.
func (s *KanshiStore) backup() (string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.backupDir, 0755); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}
	dest := filepath.Join(s.backupDir, backupPrefix+time.Now().Format(backupLayout))
	if err := os.WriteFile(dest, data, 0644); err != nil {
		return "", err
	}
	pruneBackups(s.backupDir, maxBackups)
	return dest, nil
}

// ListBackups returns the kanshi config backups in dir, oldest first.
func ListBackups(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}
	files := []string{}
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), backupPrefix) {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// pruneBackups keeps the newest keep backups in dir.
func pruneBackups(dir string, keep int) {
	files, err := ListBackups(dir)
	if err != nil || len(files) <= keep {
		return
	}
	for _, path := range files[:len(files)-keep] {
		if err := os.Remove(path); err != nil {
			slog.Warn("config: failed to prune old backup", "file", path, "err", err)
		} else {
			slog.Debug("config: pruned old backup", "file", path)
		}
	}
}

// writeAtomic writes data to a temp file next to path, then renames it over
// path, keeping the existing file mode when there is one.
func writeAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	mode := os.FileMode(0644)
	if fi, err := os.Stat(path); err == nil {
		mode = fi.Mode().Perm()
	}
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, mode); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}

// Ensure KanshiStore implements config.Store
var _ Store = (*KanshiStore)(nil)
