package models

// Placeholder logical size used when neither live data nor a parsable mode
// is available, so every entry still renders as a non-zero rectangle.
const (
	DefaultLogicalWidth  = 1920
	DefaultLogicalHeight = 1080
)

// DefaultConfiguration returns the configuration used when no kanshi file
// exists yet: no profiles, no preamble.
func DefaultConfiguration() Configuration {
	return Configuration{Profiles: []Profile{}}
}

// DefaultSelection returns the initial selection: first profile, no output.
func DefaultSelection() Selection {
	return Selection{ProfileIndex: 0, OutputIndex: NoOutputSelected}
}

// ClampProfileIndex maps a raw profile index onto [0, n): indexes past the
// end resolve to the last profile. It returns -1 when n is zero or idx is
// negative.
func ClampProfileIndex(idx, n int) int {
	if n == 0 || idx < 0 {
		return -1
	}
	if idx >= n {
		return n - 1
	}
	return idx
}

// Bool returns a pointer to b.
func Bool(b bool) *bool { return &b }

// Float returns a pointer to f.
func Float(f float64) *float64 { return &f }

// String returns a pointer to s.
func String(s string) *string { return &s }
