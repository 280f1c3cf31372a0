// Package config provides the schema types for the checkpatch rules document.
package config

// Well-known keys of the rules document.
const (
	// DefaultDirKey is the DIR_CONFIGS entry applied when no directory
	// prefix matches the file being checked.
	DefaultDirKey = "__default__"

	// MagicErrorsEnabled is the placeholder token that expands to the
	// top-level ERRORS_ENABLED list inside a directory rule list.
	MagicErrorsEnabled = "ERRORS_ENABLED"

	// MagicIgnoresCommon is the placeholder token that expands to the
	// top-level IGNORES_COMMON list inside a directory rule list.
	MagicIgnoresCommon = "IGNORES_COMMON"
)

// Document is the parsed rules file. It is loaded once per invocation and
// treated as read-only afterwards.
type Document struct {
	// ErrorsEnabled is the shared rule-id list referenced by the
	// ERRORS_ENABLED placeholder.
	ErrorsEnabled []string `yaml:"ERRORS_ENABLED"`

	// IgnoresCommon is the shared rule-id list referenced by the
	// IGNORES_COMMON placeholder.
	IgnoresCommon []string `yaml:"IGNORES_COMMON"`

	// IgnoredFiles lists files that are never handed to the checker.
	IgnoredFiles []string `yaml:"IGNORED_FILES"`

	// DirConfigs maps a directory prefix to the rule applied to files
	// under it. May contain the special __default__ key.
	DirConfigs map[string]*DirRule `yaml:"DIR_CONFIGS"`
}

// DirRule is the enable/ignore/line-length policy attached to one
// configured directory prefix. Exactly one of ErrorsEnabled and
// ErrorsIgnored must be declared.
type DirRule struct {
	// ErrorsEnabled restricts the checker to the listed rule ids.
	// May contain magic placeholders.
	ErrorsEnabled []string `yaml:"errors_enabled"`

	// ErrorsIgnored suppresses the listed rule ids.
	// May contain magic placeholders.
	ErrorsIgnored []string `yaml:"errors_ignored"`

	// MaxLineLength caps the line length for matching files. Nil means
	// the checker default applies.
	MaxLineLength *int `yaml:"max_line_length"`
}

// HasEnabled reports whether the rule declares an errors_enabled list.
// An explicitly empty list counts as declared.
func (r *DirRule) HasEnabled() bool {
	return r.ErrorsEnabled != nil
}

// HasIgnored reports whether the rule declares an errors_ignored list.
func (r *DirRule) HasIgnored() bool {
	return r.ErrorsIgnored != nil
}

// Default returns the __default__ rule, or nil when the document does not
// define one.
func (d *Document) Default() *DirRule {
	return d.DirConfigs[DefaultDirKey]
}

// IsIgnoredFile reports whether path is listed in IGNORED_FILES.
func (d *Document) IsIgnoredFile(path string) bool {
	for _, ignored := range d.IgnoredFiles {
		if ignored == path {
			return true
		}
	}

	return false
}
