// Package controller implements the monitoradlo editing engine: the single
// source of truth for the configuration, the selection and the live output
// snapshot, plus the views derived from them.
package controller

import (
	"context"
	"log/slog"
	"reflect"
	"sync"

	"github.com/monitoradlo/monitoradlo-go/internal/config"
	"github.com/monitoradlo/monitoradlo-go/internal/derive"
	"github.com/monitoradlo/monitoradlo-go/internal/events"
	"github.com/monitoradlo/monitoradlo-go/internal/layout"
	"github.com/monitoradlo/monitoradlo-go/internal/models"
)

// Backend enumerates live outputs and applies temporary settings to them.
type Backend interface {
	DetectOutputs(ctx context.Context) ([]models.LiveOutput, error)
	ApplyPreview(ctx context.Context, connector string, req models.PreviewRequest) error
}

// Reloader asks the running profile daemon to pick up a saved file.
type Reloader interface {
	Reload(ctx context.Context) error
}

// Controller is the central state machine for the editor.
// Configuration edits go through apply(), which swaps in a new snapshot,
// marks the configuration dirty, propagates derived views and publishes an
// event. Reading a view may recompute it, so every access takes the
// exclusive lock.
type Controller struct {
	mu sync.Mutex

	graph      *derive.Graph
	config     *derive.Cell[models.Configuration]
	profileIdx *derive.Cell[int]
	outputIdx  *derive.Cell[int]
	live       *derive.Cell[[]models.LiveOutput]

	currentProfile *derive.View[*models.Profile]
	selectedOutput *derive.View[*models.OutputEntry]
	layout         *derive.View[[]models.ResolvedRect]

	dirty bool
	// stored is the configuration last read from or written to the store.
	stored models.Configuration

	store    config.Store
	bus      *events.Bus
	backend  Backend
	reloader Reloader
}

// New creates a controller and loads the initial configuration from store.
// backend and reloader may be nil.
func New(store config.Store, bus *events.Bus, backend Backend, reloader Reloader) (*Controller, error) {
	cfg, err := store.Load()
	if err != nil {
		return nil, err
	}

	c := &Controller{
		store:    store,
		bus:      bus,
		backend:  backend,
		reloader: reloader,
		stored:   cfg.DeepCopy(),
	}
	sel := models.DefaultSelection()

	g := derive.NewGraph()
	c.graph = g
	c.config = derive.NewCell(g, cfg.DeepCopy())
	c.profileIdx = derive.NewCell(g, sel.ProfileIndex)
	c.outputIdx = derive.NewCell(g, sel.OutputIndex)
	c.live = derive.NewCell(g, []models.LiveOutput{})

	c.currentProfile = derive.NewView(g, "currentProfile", c.computeCurrentProfile,
		c.config, c.profileIdx).WithEqual(equalProfile)
	c.selectedOutput = derive.NewView(g, "selectedOutput", c.computeSelectedOutput,
		c.currentProfile, c.outputIdx)
	c.layout = derive.NewView(g, "monitorLayout", c.computeLayout,
		c.currentProfile, c.live)

	slog.Info("controller: loaded configuration", "path", store.Path(), "profiles", len(cfg.Profiles))
	return c, nil
}

func (c *Controller) computeCurrentProfile() *models.Profile {
	cfg := c.config.Get()
	idx := models.ClampProfileIndex(c.profileIdx.Get(), len(cfg.Profiles))
	if idx < 0 {
		return nil
	}
	p := cfg.Profiles[idx].DeepCopy()
	return &p
}

func (c *Controller) computeSelectedOutput() *models.OutputEntry {
	p := c.currentProfile.Get()
	idx := c.outputIdx.Get()
	if p == nil || idx < 0 || idx >= len(p.Outputs) {
		return nil
	}
	e := p.Outputs[idx].DeepCopy()
	return &e
}

func (c *Controller) computeLayout() []models.ResolvedRect {
	return layout.Resolve(c.currentProfile.Get(), c.live.Get())
}

func equalProfile(a, b *models.Profile) bool {
	return reflect.DeepEqual(a, b)
}

// State returns a deep copy of the full editor state.
func (c *Controller) State() models.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

// snapshot builds the externally visible state. Caller holds c.mu.
func (c *Controller) snapshot() models.State {
	s := models.State{
		Config: c.config.Get().DeepCopy(),
		Selection: models.Selection{
			ProfileIndex: c.profileIdx.Get(),
			OutputIndex:  c.outputIdx.Get(),
		},
		Layout:     copyRects(c.layout.Get()),
		Live:       models.CopyLiveOutputs(c.live.Get()),
		Dirty:      c.dirty,
		ConfigPath: c.store.Path(),
	}
	if p := c.currentProfile.Get(); p != nil {
		cp := p.DeepCopy()
		s.CurrentProfile = &cp
	}
	if e := c.selectedOutput.Get(); e != nil {
		cp := e.DeepCopy()
		s.SelectedOutput = &cp
	}
	return s
}

func copyRects(rects []models.ResolvedRect) []models.ResolvedRect {
	next := make([]models.ResolvedRect, len(rects))
	for i, r := range rects {
		next[i] = r
		next[i].Output = r.Output.DeepCopy()
		if r.Live != nil {
			cp := r.Live.DeepCopy()
			next[i].Live = &cp
		}
	}
	return next
}

// Config returns a deep copy of the current configuration.
func (c *Controller) Config() models.Configuration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.config.Get().DeepCopy()
}

// CurrentProfile returns a copy of the active profile, or nil when there
// are no profiles or the selected index is negative.
func (c *Controller) CurrentProfile() *models.Profile {
	c.mu.Lock()
	defer c.mu.Unlock()
	p := c.currentProfile.Get()
	if p == nil {
		return nil
	}
	cp := p.DeepCopy()
	return &cp
}

// SelectedOutput returns a copy of the selected output entry of the active
// profile, or nil.
func (c *Controller) SelectedOutput() *models.OutputEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.selectedOutput.Get()
	if e == nil {
		return nil
	}
	cp := e.DeepCopy()
	return &cp
}

// MonitorLayout returns the resolved rectangles of the active profile.
func (c *Controller) MonitorLayout() []models.ResolvedRect {
	c.mu.Lock()
	defer c.mu.Unlock()
	return copyRects(c.layout.Get())
}

// Dirty reports whether the configuration has unsaved changes.
func (c *Controller) Dirty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dirty
}

// MarkClean clears the unsaved-changes flag. Only the persistence path
// calls it.
func (c *Controller) MarkClean() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dirty = false
}

// ViewComputes reports how many times each derived view has been computed.
func (c *Controller) ViewComputes() map[string]int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return map[string]int{
		c.currentProfile.Name(): c.currentProfile.Computes(),
		c.selectedOutput.Name(): c.selectedOutput.Computes(),
		c.layout.Name():         c.layout.Computes(),
	}
}

// Update applies fn to a copy of the configuration and swaps the copy in.
// Dependents are recomputed once and the configuration is marked dirty,
// even when fn changes nothing.
func (c *Controller) Update(fn func(*models.Configuration)) models.State {
	return c.apply(fn)
}

// apply is the core mutation primitive. It:
//  1. Acquires the lock
//  2. Makes a deep copy of the configuration
//  3. Calls fn to modify the copy
//  4. Swaps the copy in, sets dirty, propagates views, publishes an event
func (c *Controller) apply(fn func(*models.Configuration)) models.State {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := c.config.Get().DeepCopy()
	fn(&next)
	c.config.Set(next)
	c.dirty = true
	c.propagate(events.KindConfig)
	return c.snapshot()
}

// propagate recomputes stale views and publishes the new state. Caller
// holds c.mu.
func (c *Controller) propagate(kind events.Kind) {
	if ran := c.graph.Propagate(); len(ran) > 0 {
		slog.Debug("controller: views recomputed", "cause", string(kind), "views", ran)
	}
	c.publish(kind)
}

// publish sends the current state to subscribers. Caller holds c.mu.
func (c *Controller) publish(kind events.Kind) {
	if c.bus == nil {
		return
	}
	c.bus.Publish(events.Event{Kind: kind, State: c.snapshot()})
}
