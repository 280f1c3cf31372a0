// Package settings loads tool-level settings for the checkpatch hook.
// These are plumbing knobs (checker binary, timeout, default rules file),
// distinct from the YAML rules document itself.
package settings

import (
	"time"

	"github.com/cockroachdb/errors"
)

// ErrNegativeDuration is returned when a negative duration is provided.
var ErrNegativeDuration = errors.New("duration must be non-negative")

// Duration wraps time.Duration for TOML parsing.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler for TOML parsing.
func (d *Duration) UnmarshalText(text []byte) error {
	dur, err := time.ParseDuration(string(text))
	if err != nil {
		return errors.Wrap(err, "invalid duration")
	}

	if dur < 0 {
		return errors.Wrapf(ErrNegativeDuration, "got %s", dur)
	}

	*d = Duration(dur)

	return nil
}

// MarshalText implements encoding.TextMarshaler for TOML serialization.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// ToDuration converts Duration to time.Duration.
func (d Duration) ToDuration() time.Duration {
	return time.Duration(d)
}

// Settings is the tool-level configuration.
type Settings struct {
	Checker CheckerSettings `koanf:"checker"`
	Rules   RulesSettings   `koanf:"rules"`
	Output  OutputSettings  `koanf:"output"`
}

// CheckerSettings configures the external checker invocation.
type CheckerSettings struct {
	// Binaries are the candidate binary names, tried in order.
	Binaries []string `koanf:"binaries"`

	// Timeout bounds a single checker invocation.
	Timeout Duration `koanf:"timeout"`
}

// RulesSettings configures where the rules document comes from.
type RulesSettings struct {
	// File is the rules file used when --config-file is not given.
	File string `koanf:"file"`
}

// OutputSettings configures diagnostic rendering.
type OutputSettings struct {
	// Color is one of auto, always, never.
	Color string `koanf:"color"`
}

// ColorEnabled resolves the color mode against terminal auto-detection.
func (o OutputSettings) ColorEnabled(autoDetect func() bool) bool {
	switch o.Color {
	case "always":
		return true
	case "never":
		return false
	default:
		return autoDetect()
	}
}
