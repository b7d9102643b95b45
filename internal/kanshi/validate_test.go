package kanshi_test

import (
	"errors"
	"testing"

	"github.com/monitoradlo/monitoradlo-go/internal/kanshi"
	"github.com/monitoradlo/monitoradlo-go/internal/models"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name string
		ok   bool
	}{
		{"docked", true},
		{"Dell Inc. DELL U2720Q 8ABCDE2", true},
		{"", true},
		{`my "work" desk`, false},
		{"two\nlines", false},
		{"carriage\rreturn", false},
	}
	for _, tt := range tests {
		err := kanshi.ValidateName(tt.name)
		if (err == nil) != tt.ok {
			t.Errorf("ValidateName(%q) = %v, want ok=%v", tt.name, err, tt.ok)
		}
	}
}

func TestValidateRejectsUnquotableNames(t *testing.T) {
	cfg := &models.Configuration{Profiles: []models.Profile{
		{Name: `my "work" desk`, Outputs: []models.OutputEntry{{Criteria: "eDP-1"}}},
	}}
	if err := kanshi.Validate(cfg); !errors.Is(err, kanshi.ErrUnquotable) {
		t.Errorf("profile name: Validate = %v, want ErrUnquotable", err)
	}

	cfg = &models.Configuration{Profiles: []models.Profile{
		{Name: "desk", Outputs: []models.OutputEntry{{Criteria: "Acme \"Pro\" 27"}}},
	}}
	if err := kanshi.Validate(cfg); !errors.Is(err, kanshi.ErrUnquotable) {
		t.Errorf("criteria: Validate = %v, want ErrUnquotable", err)
	}
}

func TestValidatedConfigParsesBack(t *testing.T) {
	cfg := goldenConfig()
	if err := kanshi.Validate(cfg); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if _, err := kanshi.Parse(kanshi.Serialize(cfg)); err != nil {
		t.Errorf("Parse(Serialize(cfg)) = %v", err)
	}
}
