// Package models defines the data structures shared by the layout engine,
// the kanshi persistence layer and the HTTP API.
// JSON field names match the editor frontend's bindings.
package models

// Position is a configured output position in logical pixels.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// OutputEntry is a single persisted output rule within a profile.
// A nil pointer or empty string means "let the compositor default apply".
type OutputEntry struct {
	Criteria     string    `json:"criteria"`
	Enabled      *bool     `json:"enabled,omitempty"`
	Mode         string    `json:"mode,omitempty"` // "<w>x<h>[@<refresh>]"
	Scale        *float64  `json:"scale,omitempty"`
	Position     *Position `json:"position,omitempty"`
	Transform    string    `json:"transform,omitempty"`
	AdaptiveSync *bool     `json:"adaptiveSync,omitempty"`
}

// Profile is a named layout assignment for a set of outputs.
type Profile struct {
	Name    string        `json:"name"`
	Outputs []OutputEntry `json:"outputs"`
	// ExtraLines are profile lines the editor does not interpret (exec, comments).
	ExtraLines []string `json:"extraLines,omitempty"`
}

// Configuration is the complete editable configuration.
type Configuration struct {
	Profiles []Profile `json:"profiles"`
	// Preamble is top-level text outside any profile, kept verbatim.
	Preamble string `json:"preamble,omitempty"`
}

// DeepCopy returns a copy of the output entry sharing no pointers with e.
func (e OutputEntry) DeepCopy() OutputEntry {
	next := e
	if e.Enabled != nil {
		v := *e.Enabled
		next.Enabled = &v
	}
	if e.Scale != nil {
		v := *e.Scale
		next.Scale = &v
	}
	if e.Position != nil {
		v := *e.Position
		next.Position = &v
	}
	if e.AdaptiveSync != nil {
		v := *e.AdaptiveSync
		next.AdaptiveSync = &v
	}
	return next
}

// DeepCopy returns a copy of the profile sharing no slices or pointers with p.
func (p Profile) DeepCopy() Profile {
	next := Profile{Name: p.Name}
	next.Outputs = make([]OutputEntry, len(p.Outputs))
	for i, o := range p.Outputs {
		next.Outputs[i] = o.DeepCopy()
	}
	if p.ExtraLines != nil {
		next.ExtraLines = make([]string, len(p.ExtraLines))
		copy(next.ExtraLines, p.ExtraLines)
	}
	return next
}

// DeepCopy returns a deep copy of the configuration.
func (c Configuration) DeepCopy() Configuration {
	next := Configuration{Preamble: c.Preamble}
	next.Profiles = make([]Profile, len(c.Profiles))
	for i, p := range c.Profiles {
		next.Profiles[i] = p.DeepCopy()
	}
	return next
}

// Output returns a pointer to the entry at (profileIdx, outputIdx), or nil
// when either index is out of range.
func (c *Configuration) Output(profileIdx, outputIdx int) *OutputEntry {
	if profileIdx < 0 || profileIdx >= len(c.Profiles) {
		return nil
	}
	p := &c.Profiles[profileIdx]
	if outputIdx < 0 || outputIdx >= len(p.Outputs) {
		return nil
	}
	return &p.Outputs[outputIdx]
}

// Selection is the active profile and output. Either index may be out of
// range; readers must clamp.
type Selection struct {
	ProfileIndex int `json:"profileIndex"`
	OutputIndex  int `json:"outputIndex"`
}

// NoOutputSelected is the OutputIndex meaning "nothing selected".
const NoOutputSelected = -1

// ResolvedRect is the on-screen geometry computed for one output entry.
// It is derived on demand and never persisted.
type ResolvedRect struct {
	Output    OutputEntry `json:"output"`
	Connector string      `json:"connector"`
	X         int         `json:"x"`
	Y         int         `json:"y"`
	Width     int         `json:"width"`
	Height    int         `json:"height"`
	Live      *LiveOutput `json:"niriOutput,omitempty"`
}

// State is the full editor state returned by GET /api and pushed over SSE.
type State struct {
	Config         Configuration  `json:"config"`
	Selection      Selection      `json:"selection"`
	CurrentProfile *Profile       `json:"currentProfile"`
	SelectedOutput *OutputEntry   `json:"selectedOutput"`
	Layout         []ResolvedRect `json:"layout"`
	Live           []LiveOutput   `json:"live"`
	Dirty          bool           `json:"hasChanges"`
	ConfigPath     string         `json:"configPath,omitempty"`
}
