package models_test

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/monitoradlo/monitoradlo-go/internal/models"
)

func sampleConfig() models.Configuration {
	return models.Configuration{
		Preamble: "# laptop\n",
		Profiles: []models.Profile{
			{
				Name: "Home",
				Outputs: []models.OutputEntry{
					{
						Criteria: "Dell Inc. DELL U3419W 7VK66T2",
						Enabled:  models.Bool(true),
						Scale:    models.Float(1.25),
						Position: &models.Position{X: 384, Y: 1200},
					},
				},
				ExtraLines: []string{"exec notify-send home"},
			},
		},
	}
}

func TestConfigurationDeepCopy(t *testing.T) {
	c := sampleConfig()
	cp := c.DeepCopy()

	if !reflect.DeepEqual(c, cp) {
		t.Fatal("deep copy is not structurally equal to the original")
	}

	cp.Profiles[0].Name = "Modified"
	*cp.Profiles[0].Outputs[0].Scale = 3
	cp.Profiles[0].Outputs[0].Position.X = 9
	*cp.Profiles[0].Outputs[0].Enabled = false
	cp.Profiles[0].ExtraLines[0] = "exec true"

	orig := c.Profiles[0]
	if orig.Name != "Home" {
		t.Error("deep copy did not isolate profile name")
	}
	if *orig.Outputs[0].Scale != 1.25 {
		t.Error("deep copy did not isolate Scale pointer")
	}
	if orig.Outputs[0].Position.X != 384 {
		t.Error("deep copy did not isolate Position pointer")
	}
	if !*orig.Outputs[0].Enabled {
		t.Error("deep copy did not isolate Enabled pointer")
	}
	if orig.ExtraLines[0] != "exec notify-send home" {
		t.Error("deep copy did not isolate ExtraLines slice")
	}
}

func TestConfigurationOutput(t *testing.T) {
	c := sampleConfig()

	if o := c.Output(0, 0); o == nil || o.Criteria != "Dell Inc. DELL U3419W 7VK66T2" {
		t.Fatalf("Output(0, 0) = %v", o)
	}
	for _, idx := range [][2]int{{1, 0}, {0, 1}, {-1, 0}, {0, -1}} {
		if o := c.Output(idx[0], idx[1]); o != nil {
			t.Errorf("Output(%d, %d) = %v, want nil", idx[0], idx[1], o)
		}
	}
}

func TestOutputUpdateApplyTo(t *testing.T) {
	e := models.OutputEntry{
		Criteria:  "eDP-1",
		Mode:      "1920x1080",
		Transform: "90",
		Scale:     models.Float(2),
	}
	pos := models.Position{X: 10, Y: 20}
	upd := models.OutputUpdate{
		Mode:     models.String("2560x1440@144"),
		Position: &pos,
	}
	upd.ApplyTo(&e)

	if e.Mode != "2560x1440@144" {
		t.Errorf("Mode = %q", e.Mode)
	}
	if e.Transform != "90" || e.Criteria != "eDP-1" {
		t.Errorf("omitted fields changed: %+v", e)
	}
	if e.Scale == nil || *e.Scale != 2 {
		t.Errorf("Scale = %v, want 2", e.Scale)
	}
	pos.X = 999
	if e.Position.X != 10 {
		t.Error("entry aliases the update's Position")
	}
}

func TestClampProfileIndex(t *testing.T) {
	tests := []struct {
		idx, n, want int
	}{
		{0, 0, -1},
		{3, 0, -1},
		{0, 2, 0},
		{1, 2, 1},
		{5, 2, 1},
		{-1, 2, -1},
	}
	for _, tt := range tests {
		if got := models.ClampProfileIndex(tt.idx, tt.n); got != tt.want {
			t.Errorf("ClampProfileIndex(%d, %d) = %d, want %d", tt.idx, tt.n, got, tt.want)
		}
	}
}

func TestOutputEntryJSONOmitsAbsentFields(t *testing.T) {
	data, err := json.Marshal(models.OutputEntry{Criteria: "DP-1"})
	if err != nil {
		t.Fatalf("json.Marshal: %v", err)
	}
	if string(data) != `{"criteria":"DP-1"}` {
		t.Errorf("got %s", data)
	}
}

func TestAppError_JSON(t *testing.T) {
	appErr := models.ErrNotFound("profile not found")

	data, err := json.Marshal(appErr)
	if err != nil {
		t.Fatalf("json.Marshal(AppError): %v", err)
	}

	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	if m["error"] != "NOT_FOUND" {
		t.Errorf("error = %v, want NOT_FOUND", m["error"])
	}
	if _, ok := m["status"]; ok {
		t.Error("AppError JSON should not contain 'status' field")
	}
}

func TestAsAppError(t *testing.T) {
	if models.AsAppError(nil) != nil {
		t.Error("AsAppError(nil) should be nil")
	}
	conflict := models.ErrConflict("unsaved changes")
	if got := models.AsAppError(conflict); got != conflict {
		t.Error("AsAppError should pass AppError through unchanged")
	}
	if got := models.AsAppError(json.Unmarshal([]byte("{"), new(int))); got.Status != 500 {
		t.Errorf("status = %d, want 500", got.Status)
	}
}

func TestCopyLiveOutputs(t *testing.T) {
	live := []models.LiveOutput{{
		Connector:      "DP-1",
		AvailableModes: []models.Mode{{Width: 3840, Height: 2160}},
		LogicalSize:    &models.Size{Width: 1920, Height: 1080},
	}}
	cp := models.CopyLiveOutputs(live)
	cp[0].AvailableModes[0].Width = 1
	cp[0].LogicalSize.Width = 1
	if live[0].AvailableModes[0].Width != 3840 || live[0].LogicalSize.Width != 1920 {
		t.Error("CopyLiveOutputs shares memory with its input")
	}
	if got := models.CopyLiveOutputs(nil); got == nil || len(got) != 0 {
		t.Errorf("CopyLiveOutputs(nil) = %v, want empty non-nil", got)
	}
}
