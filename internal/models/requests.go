package models

// OutputUpdate is a partial output entry. Non-nil fields overwrite the
// target entry, nil fields leave it untouched.
type OutputUpdate struct {
	Criteria     *string   `json:"criteria,omitempty"`
	Enabled      *bool     `json:"enabled,omitempty"`
	Mode         *string   `json:"mode,omitempty"`
	Scale        *float64  `json:"scale,omitempty"`
	Position     *Position `json:"position,omitempty"`
	Transform    *string   `json:"transform,omitempty"`
	AdaptiveSync *bool     `json:"adaptiveSync,omitempty"`
}

// ApplyTo merges the update into e. Pointer values are copied so the entry
// never aliases the update.
func (u OutputUpdate) ApplyTo(e *OutputEntry) {
	if u.Criteria != nil {
		e.Criteria = *u.Criteria
	}
	if u.Enabled != nil {
		v := *u.Enabled
		e.Enabled = &v
	}
	if u.Mode != nil {
		e.Mode = *u.Mode
	}
	if u.Scale != nil {
		v := *u.Scale
		e.Scale = &v
	}
	if u.Position != nil {
		v := *u.Position
		e.Position = &v
	}
	if u.Transform != nil {
		e.Transform = *u.Transform
	}
	if u.AdaptiveSync != nil {
		v := *u.AdaptiveSync
		e.AdaptiveSync = &v
	}
}

// ProfileCreate is the POST body for adding or duplicating a profile.
type ProfileCreate struct {
	Name string `json:"name"`
}

// ProfileUpdate is the PATCH body for a profile.
type ProfileUpdate struct {
	Name *string `json:"name,omitempty"`
}

// OutputCreate is the POST body for adding an output entry. When Connector
// is set the entry is seeded from the matching live output.
type OutputCreate struct {
	Criteria  string `json:"criteria,omitempty"`
	Connector string `json:"connector,omitempty"`
}

// MoveRequest moves an element to a new index within its list.
type MoveRequest struct {
	To int `json:"to"`
}

// SelectionUpdate is the PUT body for the selection.
type SelectionUpdate struct {
	ProfileIndex *int `json:"profileIndex,omitempty"`
	OutputIndex  *int `json:"outputIndex,omitempty"`
}

// PreviewRequest holds temporary output settings to push to the compositor
// without touching the saved configuration.
type PreviewRequest struct {
	On        *bool     `json:"on,omitempty"`
	Mode      string    `json:"mode,omitempty"`
	Scale     *float64  `json:"scale,omitempty"`
	Transform string    `json:"transform,omitempty"`
	Position  *Position `json:"position,omitempty"`
}
