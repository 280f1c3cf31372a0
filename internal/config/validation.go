package config

import (
	"slices"

	"github.com/cockroachdb/errors"

	"github.com/smykla-labs/checkpatch/pkg/config"
)

var (
	// ErrInvalidDocument is returned when the rules document is invalid.
	ErrInvalidDocument = errors.New("invalid rules document")

	// ErrExclusiveLists is returned when a directory rule declares both
	// errors_enabled and errors_ignored, or neither.
	ErrExclusiveLists = errors.New(
		"directory rule must declare exactly one of errors_enabled and errors_ignored",
	)

	// ErrInvalidLineLength is returned when max_line_length is not positive.
	ErrInvalidLineLength = errors.New("max_line_length must be positive")
)

// Validator checks the semantics of a parsed rules document.
type Validator struct{}

// NewValidator creates a new Validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate validates the entire document. All directory rules are checked
// so a single run reports every offending key.
func (v *Validator) Validate(doc *config.Document) error {
	if doc == nil {
		return errors.WithMessage(ErrInvalidDocument, "document is nil")
	}

	if len(doc.DirConfigs) == 0 {
		return errors.WithMessage(ErrInvalidDocument, "DIR_CONFIGS is missing or empty")
	}

	var validationErrors []error

	for _, dir := range sortedDirs(doc.DirConfigs) {
		if err := v.ValidateDirRule(doc.DirConfigs[dir]); err != nil {
			validationErrors = append(
				validationErrors,
				errors.Wrapf(err, "DIR_CONFIGS[%s]", dir),
			)
		}
	}

	if len(validationErrors) > 0 {
		return errors.WithSecondaryError(
			errors.Wrapf(
				ErrInvalidDocument,
				"validation failed with %d error(s)",
				len(validationErrors),
			),
			combineErrors(validationErrors),
		)
	}

	return nil
}

// ValidateDirRule checks a single directory rule. The resolver re-checks
// the rule it selects so a hand-built document cannot bypass load-time
// validation.
func (*Validator) ValidateDirRule(rule *config.DirRule) error {
	if rule == nil {
		return errors.WithMessage(ErrInvalidDocument, "rule is empty")
	}

	if rule.HasEnabled() == rule.HasIgnored() {
		return ErrExclusiveLists
	}

	if rule.MaxLineLength != nil && *rule.MaxLineLength <= 0 {
		return errors.Wrapf(ErrInvalidLineLength, "got %d", *rule.MaxLineLength)
	}

	return nil
}

// sortedDirs returns the directory keys in deterministic order.
func sortedDirs(dirConfigs map[string]*config.DirRule) []string {
	dirs := make([]string, 0, len(dirConfigs))
	for dir := range dirConfigs {
		dirs = append(dirs, dir)
	}

	slices.Sort(dirs)

	return dirs
}

// combineErrors merges validation errors into one.
func combineErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	if len(errs) == 1 {
		return errs[0]
	}

	return errors.Join(errs...)
}
