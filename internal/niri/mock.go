package niri

import (
	"context"
	"sync"

	"github.com/monitoradlo/monitoradlo-go/internal/models"
)

// Mock is an in-memory compositor for development and tests. Previews are
// recorded and reflected in later DetectOutputs calls.
type Mock struct {
	mu       sync.Mutex
	outputs  []models.LiveOutput
	previews []Preview
	// Err, when set, is returned by every call.
	Err error
}

// Preview is one recorded ApplyPreview call.
type Preview struct {
	Connector string
	Request   models.PreviewRequest
}

// NewMock returns a mock reporting outputs. A nil slice selects a laptop
// with one external monitor.
func NewMock(outputs []models.LiveOutput) *Mock {
	if outputs == nil {
		outputs = DemoOutputs()
	}
	return &Mock{outputs: models.CopyLiveOutputs(outputs)}
}

// DemoOutputs returns a laptop panel next to a 4K monitor.
func DemoOutputs() []models.LiveOutput {
	uhd := models.Mode{Width: 3840, Height: 2160, RefreshRate: 60, IsCurrent: true, IsPreferred: true}
	panel := models.Mode{Width: 2880, Height: 1800, RefreshRate: 90.001, IsCurrent: true, IsPreferred: true}
	return []models.LiveOutput{
		{
			Connector:       "DP-1",
			Make:            "Dell Inc.",
			Model:           "DELL U2720Q",
			Serial:          "8ABCDE2",
			Description:     Description("Dell Inc.", "DELL U2720Q", "8ABCDE2"),
			CurrentMode:     uhd,
			AvailableModes:  []models.Mode{uhd, {Width: 2560, Height: 1440, RefreshRate: 59.951}},
			LogicalPosition: &models.Point{X: 0, Y: 0},
			LogicalSize:     &models.Size{Width: 2560, Height: 1440},
			Scale:           1.5,
			Transform:       "Normal",
			PhysicalSize:    &models.Size{Width: 600, Height: 340},
		},
		{
			Connector:       "eDP-1",
			Make:            "Samsung Display Corp.",
			Model:           "ATNA40YK04-0",
			Description:     Description("Samsung Display Corp.", "ATNA40YK04-0", ""),
			CurrentMode:     panel,
			AvailableModes:  []models.Mode{panel},
			LogicalPosition: &models.Point{X: 2560, Y: 360},
			LogicalSize:     &models.Size{Width: 1440, Height: 900},
			Scale:           2,
			Transform:       "Normal",
			PhysicalSize:    &models.Size{Width: 300, Height: 190},
		},
	}
}

// DetectOutputs returns a copy of the mock's outputs.
func (m *Mock) DetectOutputs(context.Context) ([]models.LiveOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return models.CopyLiveOutputs(m.outputs), nil
}

// ApplyPreview records req and applies position, scale, transform and
// on/off to the matching output.
func (m *Mock) ApplyPreview(_ context.Context, connector string, req models.PreviewRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.previews = append(m.previews, Preview{Connector: connector, Request: req})

	for i := range m.outputs {
		o := &m.outputs[i]
		if o.Connector != connector {
			continue
		}
		if req.On != nil && !*req.On {
			o.LogicalPosition = nil
			o.LogicalSize = nil
			continue
		}
		if req.Position != nil {
			o.LogicalPosition = &models.Point{X: req.Position.X, Y: req.Position.Y}
		}
		if req.Scale != nil && *req.Scale > 0 {
			o.Scale = *req.Scale
			o.LogicalSize = nil
		}
		if req.Transform != "" {
			o.Transform = req.Transform
		}
	}
	return nil
}

// Previews returns the recorded preview calls.
func (m *Mock) Previews() []Preview {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Preview, len(m.previews))
	copy(out, m.previews)
	return out
}
