// Package layout resolves configured output entries into on-screen
// rectangles by reconciling them with live compositor data.
package layout

import (
	"math"
	"regexp"
	"strconv"

	"github.com/monitoradlo/monitoradlo-go/internal/models"
)

// modeSizeRe matches the leading "<w>x<h>" of a mode string; any refresh
// suffix ("@60", "@59.94Hz") is ignored.
var modeSizeRe = regexp.MustCompile(`^(\d+)x(\d+)`)

// maxLogicalExtent bounds a computed logical width or height. Tiny scales
// would otherwise push the division past the int range.
const maxLogicalExtent = 1 << 17

// Resolve returns one rectangle per output entry of profile, in entry order.
// A nil profile yields an empty slice. Resolve keeps no state: the same
// inputs always produce the same rectangles.
func Resolve(profile *models.Profile, live []models.LiveOutput) []models.ResolvedRect {
	if profile == nil {
		return []models.ResolvedRect{}
	}
	rects := make([]models.ResolvedRect, len(profile.Outputs))
	for i, entry := range profile.Outputs {
		rects[i] = ResolveEntry(entry, live)
	}
	return rects
}

// ResolveEntry resolves a single output entry against a live snapshot.
func ResolveEntry(entry models.OutputEntry, live []models.LiveOutput) models.ResolvedRect {
	match := Match(entry.Criteria, live)
	w, h := LogicalSize(entry, match)

	rect := models.ResolvedRect{
		Output:    entry.DeepCopy(),
		Connector: entry.Criteria,
		Width:     w,
		Height:    h,
	}
	if entry.Position != nil {
		rect.X = entry.Position.X
		rect.Y = entry.Position.Y
	}
	if match != nil {
		cp := match.DeepCopy()
		rect.Live = &cp
		rect.Connector = match.Connector
	}
	return rect
}

// Match returns the first live output whose description equals criteria,
// or nil when none does.
func Match(criteria string, live []models.LiveOutput) *models.LiveOutput {
	for i := range live {
		if live[i].Description == criteria {
			return &live[i]
		}
	}
	return nil
}

// LogicalSize derives the logical size of entry. The first applicable rule
// wins:
//  1. the live output's reported logical size, verbatim;
//  2. the live current mode divided by the effective scale;
//  3. the entry's configured mode divided by the entry's scale;
//  4. DefaultLogicalWidth x DefaultLogicalHeight.
func LogicalSize(entry models.OutputEntry, match *models.LiveOutput) (int, int) {
	if match != nil {
		if match.LogicalSize != nil {
			return match.LogicalSize.Width, match.LogicalSize.Height
		}
		if !match.CurrentMode.IsZero() {
			scale := EffectiveScale(entry, match)
			return scaleDown(match.CurrentMode.Width, scale), scaleDown(match.CurrentMode.Height, scale)
		}
	}
	if w, h, ok := ParseModeSize(entry.Mode); ok {
		scale := 1.0
		if entry.Scale != nil && *entry.Scale > 0 {
			scale = *entry.Scale
		}
		return scaleDown(w, scale), scaleDown(h, scale)
	}
	return models.DefaultLogicalWidth, models.DefaultLogicalHeight
}

// EffectiveScale is the entry's configured scale if present, else the live
// output's reported scale, else 1. Non-positive scales are skipped.
func EffectiveScale(entry models.OutputEntry, match *models.LiveOutput) float64 {
	if entry.Scale != nil && *entry.Scale > 0 {
		return *entry.Scale
	}
	if match != nil && match.Scale > 0 {
		return match.Scale
	}
	return 1
}

// ParseModeSize extracts the physical width and height from a mode string
// such as "1920x1080@60". It reports false when the string does not start
// with "<digits>x<digits>".
func ParseModeSize(mode string) (int, int, bool) {
	m := modeSizeRe.FindStringSubmatch(mode)
	if m == nil {
		return 0, 0, false
	}
	w, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, 0, false
	}
	h, err := strconv.Atoi(m[2])
	if err != nil {
		return 0, 0, false
	}
	return w, h, true
}

func scaleDown(px int, scale float64) int {
	v := math.Round(float64(px) / scale)
	if math.IsNaN(v) || v > maxLogicalExtent {
		return maxLogicalExtent
	}
	if v < 0 {
		return 0
	}
	return int(v)
}
