package controller

import (
	"fmt"
	"strconv"

	"github.com/monitoradlo/monitoradlo-go/internal/layout"
	"github.com/monitoradlo/monitoradlo-go/internal/models"
)

// UpdateOutput merges upd into the output entry at (profileIdx, outputIdx).
// Fields left nil in upd keep their value. Indices that do not name an
// entry leave the configuration unchanged, but the store is still replaced
// and marked dirty.
func (c *Controller) UpdateOutput(profileIdx, outputIdx int, upd models.OutputUpdate) models.State {
	return c.apply(func(cfg *models.Configuration) {
		if e := cfg.Output(profileIdx, outputIdx); e != nil {
			upd.ApplyTo(e)
		}
	})
}

// UpdateOutputPosition replaces the position of the output entry at
// (profileIdx, outputIdx) with {x, y}.
func (c *Controller) UpdateOutputPosition(profileIdx, outputIdx, x, y int) models.State {
	return c.apply(func(cfg *models.Configuration) {
		if e := cfg.Output(profileIdx, outputIdx); e != nil {
			e.Position = &models.Position{X: x, Y: y}
		}
	})
}

// AddOutput appends an entry matching criteria to the profile at
// profileIdx. Every other field is left at the compositor default.
func (c *Controller) AddOutput(profileIdx int, criteria string) models.State {
	return c.apply(func(cfg *models.Configuration) {
		if profileIdx < 0 || profileIdx >= len(cfg.Profiles) {
			return
		}
		p := &cfg.Profiles[profileIdx]
		p.Outputs = append(p.Outputs, models.OutputEntry{Criteria: criteria})
	})
}

// AddOutputFromLive appends an entry seeded from the live output on
// connector: its description as criteria and its current mode, scale and
// position as settings. Unknown connectors leave the profile unchanged.
func (c *Controller) AddOutputFromLive(profileIdx int, connector string) models.State {
	return c.apply(func(cfg *models.Configuration) {
		if profileIdx < 0 || profileIdx >= len(cfg.Profiles) {
			return
		}
		o := c.findLive(connector)
		if o == nil {
			return
		}
		p := &cfg.Profiles[profileIdx]
		p.Outputs = append(p.Outputs, EntryFromLive(*o))
	})
}

// findLive returns the live output on connector. Caller holds c.mu.
func (c *Controller) findLive(connector string) *models.LiveOutput {
	live := c.live.Get()
	for i := range live {
		if live[i].Connector == connector {
			return &live[i]
		}
	}
	return nil
}

// EntryFromLive builds an enabled output entry that reproduces the live
// output's current state.
func EntryFromLive(o models.LiveOutput) models.OutputEntry {
	e := models.OutputEntry{
		Criteria: o.Description,
		Enabled:  models.Bool(true),
	}
	if !o.CurrentMode.IsZero() {
		e.Mode = FormatMode(o.CurrentMode)
	}
	if o.Scale > 0 {
		e.Scale = models.Float(o.Scale)
	}
	if o.LogicalPosition != nil {
		e.Position = &models.Position{X: o.LogicalPosition.X, Y: o.LogicalPosition.Y}
	}
	if o.Transform != "" && o.Transform != "Normal" && o.Transform != "normal" {
		e.Transform = o.Transform
	}
	return e
}

// FormatMode renders a mode the way kanshi expects it: "<w>x<h>@<r>Hz", or
// "<w>x<h>" when the refresh rate is unknown.
func FormatMode(m models.Mode) string {
	if m.RefreshRate <= 0 {
		return fmt.Sprintf("%dx%d", m.Width, m.Height)
	}
	return fmt.Sprintf("%dx%d@%sHz", m.Width, m.Height, strconv.FormatFloat(m.RefreshRate, 'f', -1, 64))
}

// RemoveOutput deletes the output entry at (profileIdx, outputIdx).
func (c *Controller) RemoveOutput(profileIdx, outputIdx int) models.State {
	return c.apply(func(cfg *models.Configuration) {
		if cfg.Output(profileIdx, outputIdx) == nil {
			return
		}
		p := &cfg.Profiles[profileIdx]
		p.Outputs = append(p.Outputs[:outputIdx], p.Outputs[outputIdx+1:]...)
	})
}

// MoveOutput reorders the outputs of a profile.
func (c *Controller) MoveOutput(profileIdx, from, to int) models.State {
	return c.apply(func(cfg *models.Configuration) {
		if profileIdx < 0 || profileIdx >= len(cfg.Profiles) {
			return
		}
		p := &cfg.Profiles[profileIdx]
		p.Outputs = move(p.Outputs, from, to)
	})
}

// ResolveOutput resolves one entry of the configuration against the live
// snapshot, whether or not its profile is selected.
func (c *Controller) ResolveOutput(profileIdx, outputIdx int) (models.ResolvedRect, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	cfg := c.config.Get()
	e := cfg.Output(profileIdx, outputIdx)
	if e == nil {
		return models.ResolvedRect{}, false
	}
	return layout.ResolveEntry(*e, c.live.Get()), true
}
