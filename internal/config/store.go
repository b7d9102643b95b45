// Package config loads and saves the kanshi configuration edited by
// monitoradlo and watches it for changes made by other programs.
package config

import "github.com/monitoradlo/monitoradlo-go/internal/models"

// Store is the interface for persisting the edited configuration.
type Store interface {
	// Load reads the configuration. A missing file yields an empty
	// configuration, not an error.
	Load() (*models.Configuration, error)

	// Save persists the configuration.
	Save(cfg *models.Configuration) error

	// Path returns the file path used by this store.
	Path() string
}
