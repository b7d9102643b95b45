package kanshi

import (
	"errors"
	"fmt"
	"strings"

	"github.com/monitoradlo/monitoradlo-go/internal/models"
)

// ErrUnquotable is returned for names kanshi cannot quote: the format has
// no escape sequences.
var ErrUnquotable = errors.New(`must not contain '"' or line breaks`)

// ValidateName reports whether s can be written as a quoted profile name or
// output criteria.
func ValidateName(s string) error {
	if strings.ContainsAny(s, "\"\r\n") {
		return ErrUnquotable
	}
	return nil
}

// Validate checks that Serialize(cfg) parses back into the same profiles.
func Validate(cfg *models.Configuration) error {
	for i, p := range cfg.Profiles {
		if err := ValidateName(p.Name); err != nil {
			return fmt.Errorf("profile %d name %q: %w", i, p.Name, err)
		}
		for j, o := range p.Outputs {
			if err := ValidateName(o.Criteria); err != nil {
				return fmt.Errorf("profile %q output %d criteria %q: %w", p.Name, j, o.Criteria, err)
			}
			if strings.ContainsAny(o.Mode+o.Transform, "\r\n{}") {
				return fmt.Errorf("profile %q output %q: mode and transform must not contain line breaks or braces", p.Name, o.Criteria)
			}
		}
		for _, line := range p.ExtraLines {
			if strings.ContainsAny(line, "\r\n") {
				return fmt.Errorf("profile %q: extra line %q spans several lines", p.Name, line)
			}
		}
	}
	return nil
}
