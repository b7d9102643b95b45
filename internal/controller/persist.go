package controller

import (
	"context"
	"log/slog"
	"reflect"

	"github.com/monitoradlo/monitoradlo-go/internal/events"
	"github.com/monitoradlo/monitoradlo-go/internal/models"
)

// Save writes the configuration to the store, clears the dirty flag and
// asks the profile daemon to reload. A failed daemon reload is logged but
// does not fail the save.
func (c *Controller) Save(ctx context.Context) (models.State, *models.AppError) {
	c.mu.Lock()
	cfg := c.config.Get().DeepCopy()
	if err := c.store.Save(&cfg); err != nil {
		c.mu.Unlock()
		slog.Error("controller: save failed", "path", c.store.Path(), "err", err)
		return models.State{}, models.ErrInternal(err.Error())
	}
	c.dirty = false
	c.stored = cfg
	c.publish(events.KindSaved)
	state := c.snapshot()
	c.mu.Unlock()

	if c.reloader != nil {
		if err := c.reloader.Reload(ctx); err != nil {
			slog.Warn("controller: profile daemon reload failed", "err", err)
		}
	}
	return state, nil
}

// Load replaces the configuration with the stored one, discarding unsaved
// edits, and clears the dirty flag.
func (c *Controller) Load(_ context.Context) (models.State, *models.AppError) {
	cfg, err := c.store.Load()
	if err != nil {
		slog.Error("controller: load failed", "path", c.store.Path(), "err", err)
		return models.State{}, models.AsAppError(err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.config.Set(*cfg)
	c.stored = cfg.DeepCopy()
	c.dirty = false
	c.propagate(events.KindLoaded)
	return c.snapshot(), nil
}

// ReloadExternal handles a change of the stored configuration made outside
// the editor. A stored configuration equal to the last one read or written
// by the editor, such as its own save, is ignored even when newer edits are
// pending. With unsaved edits nothing is loaded and a conflict event is
// published instead. It reports whether the configuration was replaced.
func (c *Controller) ReloadExternal() (bool, error) {
	cfg, err := c.store.Load()
	if err != nil {
		return false, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if reflect.DeepEqual(*cfg, c.stored) {
		return false, nil
	}
	c.stored = cfg.DeepCopy()
	if reflect.DeepEqual(*cfg, c.config.Get()) {
		return false, nil
	}
	if c.dirty {
		slog.Warn("controller: configuration changed on disk while edits are unsaved", "path", c.store.Path())
		c.publish(events.KindConflict)
		return false, nil
	}
	slog.Info("controller: configuration changed on disk, reloading", "path", c.store.Path())
	c.config.Set(*cfg)
	c.propagate(events.KindLoaded)
	return true, nil
}
