package controller

import (
	"context"
	"log/slog"
	"reflect"

	"github.com/monitoradlo/monitoradlo-go/internal/events"
	"github.com/monitoradlo/monitoradlo-go/internal/models"
)

// LiveOutputs returns a copy of the live output snapshot.
func (c *Controller) LiveOutputs() []models.LiveOutput {
	c.mu.Lock()
	defer c.mu.Unlock()
	return models.CopyLiveOutputs(c.live.Get())
}

// SetLiveOutputs replaces the live snapshot wholesale. A snapshot equal to
// the current one is ignored so polling does not churn subscribers. It
// reports whether the snapshot changed.
func (c *Controller) SetLiveOutputs(outputs []models.LiveOutput) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := models.CopyLiveOutputs(outputs)
	if reflect.DeepEqual(next, c.live.Get()) {
		return false
	}
	c.live.Set(next)
	slog.Debug("controller: live outputs replaced", "count", len(next))
	c.propagate(events.KindLive)
	return true
}

// RefreshLive asks the backend for the connected outputs and installs them.
func (c *Controller) RefreshLive(ctx context.Context) ([]models.LiveOutput, *models.AppError) {
	if c.backend == nil {
		return nil, models.ErrUnavailable("no live output backend configured")
	}
	outputs, err := c.backend.DetectOutputs(ctx)
	if err != nil {
		slog.Warn("controller: detecting outputs failed", "err", err)
		return nil, models.ErrUnavailable(err.Error())
	}
	c.SetLiveOutputs(outputs)
	return c.LiveOutputs(), nil
}

// Preview pushes temporary settings for connector to the compositor. The
// configuration is not touched.
func (c *Controller) Preview(ctx context.Context, connector string, req models.PreviewRequest) *models.AppError {
	if c.backend == nil {
		return models.ErrUnavailable("no live output backend configured")
	}
	c.mu.Lock()
	known := c.findLive(connector) != nil
	c.mu.Unlock()
	if !known {
		return models.ErrNotFound("unknown connector " + connector)
	}
	if err := c.backend.ApplyPreview(ctx, connector, req); err != nil {
		return models.AsAppError(err)
	}
	return nil
}
