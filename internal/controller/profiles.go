package controller

import (
	"github.com/monitoradlo/monitoradlo-go/internal/models"
)

// AddProfile appends an empty profile named name.
func (c *Controller) AddProfile(name string) models.State {
	return c.apply(func(cfg *models.Configuration) {
		cfg.Profiles = append(cfg.Profiles, models.Profile{
			Name:    name,
			Outputs: []models.OutputEntry{},
		})
	})
}

// RemoveProfile deletes the profile at idx. The selection is left alone;
// the current profile view clamps it.
func (c *Controller) RemoveProfile(idx int) models.State {
	return c.apply(func(cfg *models.Configuration) {
		if idx < 0 || idx >= len(cfg.Profiles) {
			return
		}
		cfg.Profiles = append(cfg.Profiles[:idx], cfg.Profiles[idx+1:]...)
	})
}

// RenameProfile sets the name of the profile at idx.
func (c *Controller) RenameProfile(idx int, name string) models.State {
	return c.apply(func(cfg *models.Configuration) {
		if idx < 0 || idx >= len(cfg.Profiles) {
			return
		}
		cfg.Profiles[idx].Name = name
	})
}

// DuplicateProfile inserts a copy of the profile at idx right after it,
// named name.
func (c *Controller) DuplicateProfile(idx int, name string) models.State {
	return c.apply(func(cfg *models.Configuration) {
		if idx < 0 || idx >= len(cfg.Profiles) {
			return
		}
		dup := cfg.Profiles[idx].DeepCopy()
		dup.Name = name
		cfg.Profiles = insertAt(cfg.Profiles, idx+1, dup)
	})
}

// MoveProfile moves the profile at from to index to. A target past either
// end is clamped.
func (c *Controller) MoveProfile(from, to int) models.State {
	return c.apply(func(cfg *models.Configuration) {
		cfg.Profiles = move(cfg.Profiles, from, to)
	})
}

func insertAt[T any](s []T, i int, v T) []T {
	s = append(s, v)
	copy(s[i+1:], s[i:])
	s[i] = v
	return s
}

// move relocates s[from] to index to, clamping to into range. An invalid
// from leaves s unchanged.
func move[T any](s []T, from, to int) []T {
	if from < 0 || from >= len(s) {
		return s
	}
	if to < 0 {
		to = 0
	}
	if to >= len(s) {
		to = len(s) - 1
	}
	if from == to {
		return s
	}
	v := s[from]
	s = append(s[:from], s[from+1:]...)
	return insertAt(s, to, v)
}
