// Package niri talks to the niri compositor through its `niri msg` IPC
// command line and converts what it reports into live outputs.
package niri

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/monitoradlo/monitoradlo-go/internal/models"
)

// outputJSON matches one entry of `niri msg --json outputs`.
type outputJSON struct {
	Name         string          `json:"name"`
	Make         string          `json:"make"`
	Model        string          `json:"model"`
	Serial       *string         `json:"serial"`
	PhysicalSize json.RawMessage `json:"physical_size"`
	Modes        []modeJSON      `json:"modes"`
	CurrentMode  *int            `json:"current_mode"` // index into Modes, null when off
	Logical      *logicalJSON    `json:"logical"`
	VrrSupported bool            `json:"vrr_supported"`
	VrrEnabled   bool            `json:"vrr_enabled"`
}

type modeJSON struct {
	Width       int  `json:"width"`
	Height      int  `json:"height"`
	RefreshRate int  `json:"refresh_rate"` // millihertz
	IsPreferred bool `json:"is_preferred"`
}

type logicalJSON struct {
	X         int     `json:"x"`
	Y         int     `json:"y"`
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	Scale     float64 `json:"scale"`
	Transform string  `json:"transform"`
}

// ParseOutputsJSON decodes the output of `niri msg --json outputs`, a map
// keyed by connector. The result is sorted by connector so that equal
// compositor states give equal snapshots.
func ParseOutputsJSON(data []byte) ([]models.LiveOutput, error) {
	var raw map[string]outputJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing niri outputs JSON: %w", err)
	}

	outputs := make([]models.LiveOutput, 0, len(raw))
	for connector, r := range raw {
		outputs = append(outputs, convert(connector, r))
	}
	sort.Slice(outputs, func(i, j int) bool { return outputs[i].Connector < outputs[j].Connector })
	return outputs, nil
}

func convert(connector string, r outputJSON) models.LiveOutput {
	o := models.LiveOutput{
		Connector:      connector,
		Make:           r.Make,
		Model:          r.Model,
		AvailableModes: []models.Mode{},
	}
	if r.Serial != nil {
		o.Serial = *r.Serial
	}
	o.Description = Description(r.Make, r.Model, o.Serial)

	for i, m := range r.Modes {
		current := r.CurrentMode != nil && *r.CurrentMode == i
		mode := models.Mode{
			Width:       m.Width,
			Height:      m.Height,
			RefreshRate: float64(m.RefreshRate) / 1000.0,
			IsCurrent:   current,
			IsPreferred: m.IsPreferred,
		}
		o.AvailableModes = append(o.AvailableModes, mode)
		if current {
			o.CurrentMode = mode
		}
	}

	if r.Logical != nil {
		o.LogicalPosition = &models.Point{X: r.Logical.X, Y: r.Logical.Y}
		o.LogicalSize = &models.Size{Width: r.Logical.Width, Height: r.Logical.Height}
		o.Scale = r.Logical.Scale
		o.Transform = r.Logical.Transform
	}

	if len(r.PhysicalSize) > 0 && string(r.PhysicalSize) != "null" {
		var ps [2]int
		if err := json.Unmarshal(r.PhysicalSize, &ps); err == nil {
			o.PhysicalSize = &models.Size{Width: ps[0], Height: ps[1]}
		}
	}
	return o
}

// Description builds the kanshi-style output description
// "<make> <model> <serial>", using "Unknown" for a missing serial.
func Description(vendor, model, serial string) string {
	if serial == "" {
		serial = "Unknown"
	}
	var parts []string
	for _, v := range []string{vendor, model} {
		if v != "" {
			parts = append(parts, v)
		}
	}
	parts = append(parts, serial)
	return strings.Join(parts, " ")
}
