package config

import (
	"sync"

	"github.com/monitoradlo/monitoradlo-go/internal/models"
)

// MemStore is an in-memory Store for tests that never writes to disk.
type MemStore struct {
	mu    sync.Mutex
	cfg   *models.Configuration
	saves int
	// Err, when set, is returned by Load and Save.
	Err error
}

// NewMemStore returns an in-memory store seeded with cfg. A nil cfg behaves
// like a missing file.
func NewMemStore(cfg *models.Configuration) *MemStore {
	m := &MemStore{}
	if cfg != nil {
		cp := cfg.DeepCopy()
		m.cfg = &cp
	}
	return m
}

// Load returns a copy of the stored configuration.
func (m *MemStore) Load() (*models.Configuration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	if m.cfg == nil {
		def := models.DefaultConfiguration()
		return &def, nil
	}
	cp := m.cfg.DeepCopy()
	normalize(&cp)
	return &cp, nil
}

// Save stores a deep copy of cfg.
func (m *MemStore) Save(cfg *models.Configuration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	cp := cfg.DeepCopy()
	m.cfg = &cp
	m.saves++
	return nil
}

// Saves reports how many times Save succeeded.
func (m *MemStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// Path returns ":memory:" to indicate this is an in-memory store.
func (m *MemStore) Path() string { return ":memory:" }

// Ensure MemStore implements config.Store
var _ Store = (*MemStore)(nil)
