package config

import (
	"log/slog"

	"github.com/monitoradlo/monitoradlo-go/internal/models"
)

// normalize replaces nil slices with empty ones so the configuration
// serializes as [] rather than null, and logs data-quality problems the
// editor tolerates but the user may want to know about.
func normalize(cfg *models.Configuration) {
	if cfg.Profiles == nil {
		cfg.Profiles = []models.Profile{}
	}
	seen := make(map[string]int, len(cfg.Profiles))
	for i := range cfg.Profiles {
		p := &cfg.Profiles[i]
		if p.Outputs == nil {
			p.Outputs = []models.OutputEntry{}
		}
		if p.Name != "" {
			if first, dup := seen[p.Name]; dup {
				slog.Warn("config: duplicate profile name", "name", p.Name, "first", first, "index", i)
			} else {
				seen[p.Name] = i
			}
		}
		criteria := make(map[string]bool, len(p.Outputs))
		for _, o := range p.Outputs {
			if criteria[o.Criteria] {
				slog.Warn("config: duplicate output criteria in profile", "profile", p.Name, "criteria", o.Criteria)
			}
			criteria[o.Criteria] = true
		}
	}
}
