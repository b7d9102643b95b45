package models

// Mode is a physical display mode reported by the compositor.
type Mode struct {
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	RefreshRate float64 `json:"refreshRate"` // Hz, e.g. 59.973
	IsCurrent   bool    `json:"isCurrent"`
	IsPreferred bool    `json:"isPreferred"`
}

// IsZero reports whether the mode carries no dimensions.
func (m Mode) IsZero() bool { return m.Width == 0 && m.Height == 0 }

// Point is a logical position reported by the compositor.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Size is a width/height pair.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// LiveOutput is a connected display as enumerated by the compositor.
// Snapshots are replaced wholesale on every refresh and never edited.
type LiveOutput struct {
	Connector       string  `json:"connector"`
	Make            string  `json:"make"`
	Model           string  `json:"model"`
	Serial          string  `json:"serial"`
	Description     string  `json:"description"` // matched against OutputEntry.Criteria
	CurrentMode     Mode    `json:"currentMode"`
	AvailableModes  []Mode  `json:"availableModes"`
	LogicalPosition *Point  `json:"logicalPosition,omitempty"`
	LogicalSize     *Size   `json:"logicalSize,omitempty"`
	Scale           float64 `json:"scale"`
	Transform       string  `json:"transform"`
	PhysicalSize    *Size   `json:"physicalSize,omitempty"`
}

// DeepCopy returns a copy of the live output sharing no slices or pointers.
func (o LiveOutput) DeepCopy() LiveOutput {
	next := o
	if o.AvailableModes != nil {
		next.AvailableModes = make([]Mode, len(o.AvailableModes))
		copy(next.AvailableModes, o.AvailableModes)
	}
	if o.LogicalPosition != nil {
		v := *o.LogicalPosition
		next.LogicalPosition = &v
	}
	if o.LogicalSize != nil {
		v := *o.LogicalSize
		next.LogicalSize = &v
	}
	if o.PhysicalSize != nil {
		v := *o.PhysicalSize
		next.PhysicalSize = &v
	}
	return next
}

// CopyLiveOutputs deep-copies a live output snapshot. A nil input yields an
// empty, non-nil slice.
func CopyLiveOutputs(outputs []LiveOutput) []LiveOutput {
	next := make([]LiveOutput, len(outputs))
	for i, o := range outputs {
		next[i] = o.DeepCopy()
	}
	return next
}
