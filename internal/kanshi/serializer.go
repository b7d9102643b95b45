package kanshi

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/monitoradlo/monitoradlo-go/internal/models"
)

// Serialize renders cfg in kanshi syntax: the preamble verbatim, then each
// profile with its outputs followed by its extra lines.
func Serialize(cfg *models.Configuration) string {
	var sb strings.Builder

	if cfg.Preamble != "" {
		sb.WriteString(cfg.Preamble)
		if !strings.HasSuffix(cfg.Preamble, "\n") {
			sb.WriteString("\n")
		}
		if len(cfg.Profiles) > 0 {
			sb.WriteString("\n")
		}
	}

	for i := range cfg.Profiles {
		if i > 0 {
			sb.WriteString("\n")
		}
		writeProfile(&sb, &cfg.Profiles[i])
	}
	return sb.String()
}

func writeProfile(sb *strings.Builder, p *models.Profile) {
	if p.Name != "" {
		fmt.Fprintf(sb, "profile %s {\n", quote(p.Name))
	} else {
		sb.WriteString("profile {\n")
	}
	for i := range p.Outputs {
		writeOutput(sb, &p.Outputs[i])
	}
	for _, line := range p.ExtraLines {
		fmt.Fprintf(sb, "  %s\n", line)
	}
	sb.WriteString("}\n")
}

func writeOutput(sb *strings.Builder, o *models.OutputEntry) {
	fmt.Fprintf(sb, "  output %s {\n", quote(o.Criteria))
	if o.Enabled != nil {
		if *o.Enabled {
			sb.WriteString("    enable\n")
		} else {
			sb.WriteString("    disable\n")
		}
	}
	if o.Mode != "" {
		fmt.Fprintf(sb, "    mode %s\n", o.Mode)
	}
	if o.Scale != nil {
		fmt.Fprintf(sb, "    scale %s\n", FormatScale(*o.Scale))
	}
	if o.Position != nil {
		fmt.Fprintf(sb, "    position %d,%d\n", o.Position.X, o.Position.Y)
	}
	if o.Transform != "" {
		fmt.Fprintf(sb, "    transform %s\n", o.Transform)
	}
	if o.AdaptiveSync != nil {
		if *o.AdaptiveSync {
			sb.WriteString("    adaptive_sync on\n")
		} else {
			sb.WriteString("    adaptive_sync off\n")
		}
	}
	sb.WriteString("  }\n")
}

// FormatScale prints a scale without trailing zeros but with at least one
// decimal, e.g. 2 -> "2.0", 1.25 -> "1.25".
func FormatScale(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func quote(s string) string {
	return `"` + s + `"`
}
