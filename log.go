package rrule

import "github.com/rs/zerolog"

// Logger receives the package's internal diagnostics: a debug-level trace
// each time the jump accelerator takes a coarse jump, and a warning when
// NewRule clamps an UNTIL that precedes DTSTART.
// It is disabled by default so the library stays silent, the way the
// teacher rrule-go package is silent, unless a caller opts in.
var Logger = zerolog.Nop()

// SetLogger installs the logger used for internal diagnostics.
func SetLogger(l zerolog.Logger) {
	Logger = l
}
