// Package auth implements API-key authentication for the editor's HTTP API.
// Keys live in keys.json in the editor's config directory; with no keys
// configured the API is open, which is the default for a loopback-only
// daemon.
package auth

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/monitoradlo/monitoradlo-go/internal/config"
)

const keysFileName = "keys.json"

// Key is a single API key entry in keys.json, keyed by client name.
type Key struct {
	Key     string `json:"key"`
	Created string `json:"created,omitempty"`
}

// Service verifies API keys.
type Service struct {
	mu        sync.RWMutex
	configDir string
	keys      map[string]Key
	watcher   *config.Watcher
}

// NewService creates an auth service reading keys.json from configDir and
// reloading it when it changes. An empty configDir yields an open service.
func NewService(configDir string) (*Service, error) {
	s := &Service{
		configDir: configDir,
		keys:      make(map[string]Key),
	}
	if configDir == "" {
		return s, nil
	}

	// Load initial state (missing file means open mode)
	if err := s.Reload(); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		slog.Warn("auth: could not create config dir", "err", err)
		return s, nil
	}
	watcher, err := config.NewWatcher(s.keysPath(), func() {
		if err := s.Reload(); err != nil {
			slog.Warn("auth: failed to reload keys", "err", err)
		}
	})
	if err != nil {
		slog.Warn("auth: could not watch keys file", "err", err)
		return s, nil
	}
	s.watcher = watcher
	return s, nil
}

func (s *Service) keysPath() string {
	return filepath.Join(s.configDir, keysFileName)
}

// Reload re-reads keys.json.
func (s *Service) Reload() error {
	if s.configDir == "" {
		return nil
	}
	data, err := os.ReadFile(s.keysPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.mu.Lock()
			s.keys = make(map[string]Key)
			s.mu.Unlock()
			return nil
		}
		return err
	}

	var keys map[string]Key
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}
	if keys == nil {
		keys = make(map[string]Key)
	}

	s.mu.Lock()
	s.keys = keys
	s.mu.Unlock()
	slog.Debug("auth: reloaded keys", "count", len(keys))
	return nil
}

// IsOpenMode returns true if no non-empty key is configured.
// In open mode, all requests are allowed without authentication.
func (s *Service) IsOpenMode() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, k := range s.keys {
		if k.Key != "" {
			return false
		}
	}
	return true
}

// VerifyKey returns the name of the client owning key. Uses constant-time
// comparison to prevent timing attacks.
func (s *Service) VerifyKey(key string) (string, bool) {
	if key == "" {
		return "", false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for name, k := range s.keys {
		if k.Key != "" && subtle.ConstantTimeCompare([]byte(key), []byte(k.Key)) == 1 {
			return name, true
		}
	}
	return "", false
}

// Close stops the file watcher.
func (s *Service) Close() {
	if s.watcher != nil {
		s.watcher.Close()
	}
}
