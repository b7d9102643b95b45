package controller

import (
	"github.com/monitoradlo/monitoradlo-go/internal/events"
	"github.com/monitoradlo/monitoradlo-go/internal/models"
)

// Selection returns the raw selection. Indices may be out of range.
func (c *Controller) Selection() models.Selection {
	c.mu.Lock()
	defer c.mu.Unlock()
	return models.Selection{ProfileIndex: c.profileIdx.Get(), OutputIndex: c.outputIdx.Get()}
}

// SelectProfile makes profile idx current and clears the output selection.
// Selection changes never mark the configuration dirty.
func (c *Controller) SelectProfile(idx int) models.State {
	return c.applySelection(func(sel *models.Selection) {
		sel.ProfileIndex = idx
		sel.OutputIndex = models.NoOutputSelected
	})
}

// SelectOutput selects output idx of the current profile.
func (c *Controller) SelectOutput(idx int) models.State {
	return c.applySelection(func(sel *models.Selection) {
		sel.OutputIndex = idx
	})
}

// SetSelection applies a partial selection update. Changing only the
// profile behaves like SelectProfile.
func (c *Controller) SetSelection(upd models.SelectionUpdate) models.State {
	return c.applySelection(func(sel *models.Selection) {
		if upd.ProfileIndex != nil {
			sel.ProfileIndex = *upd.ProfileIndex
			sel.OutputIndex = models.NoOutputSelected
		}
		if upd.OutputIndex != nil {
			sel.OutputIndex = *upd.OutputIndex
		}
	})
}

func (c *Controller) applySelection(fn func(*models.Selection)) models.State {
	c.mu.Lock()
	defer c.mu.Unlock()

	sel := models.Selection{ProfileIndex: c.profileIdx.Get(), OutputIndex: c.outputIdx.Get()}
	next := sel
	fn(&next)
	if next.ProfileIndex != sel.ProfileIndex {
		c.profileIdx.Set(next.ProfileIndex)
	}
	if next.OutputIndex != sel.OutputIndex {
		c.outputIdx.Set(next.OutputIndex)
	}
	c.propagate(events.KindSelection)
	return c.snapshot()
}
