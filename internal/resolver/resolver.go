// Package resolver computes the rule set applicable to a single file from
// a parsed rules document.
package resolver

import (
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"

	internalconfig "github.com/smykla-labs/checkpatch/internal/config"
	"github.com/smykla-labs/checkpatch/pkg/config"
)

// RuleSet is the resolved policy for one file. At most one of Enabled and
// Ignored is populated, mirroring the matched directory rule. Both are
// empty when the file falls back to the unrestricted default.
type RuleSet struct {
	// Enabled restricts the checker to these rule ids. Empty means all
	// rules run (subject to Ignored).
	Enabled []string

	// Ignored suppresses these rule ids. Empty means none are suppressed.
	Ignored []string

	// MaxLineLength caps the line length. Zero means no cap.
	MaxLineLength int

	// Dir is the directory key the rule came from: the matched prefix,
	// __default__, or empty for the unrestricted fallback.
	Dir string
}

// Unrestricted reports whether the rule set places no restriction on the
// checker at all.
func (rs *RuleSet) Unrestricted() bool {
	return len(rs.Enabled) == 0 && len(rs.Ignored) == 0 && rs.MaxLineLength == 0
}

// Resolver resolves files against one rules document. It holds no mutable
// state; the same Resolver can be reused for any number of files.
type Resolver struct {
	validator *internalconfig.Validator
}

// New creates a Resolver.
func New() *Resolver {
	return &Resolver{
		validator: internalconfig.NewValidator(),
	}
}

// Resolve computes the rule set for filePath. Matching uses the longest
// configured directory key that is a path prefix of the file's containing
// directory; when nothing matches, the __default__ rule applies if
// present, else the unrestricted rule set. The document is never mutated,
// so repeated calls yield identical results.
func (r *Resolver) Resolve(filePath string, doc *config.Document) (*RuleSet, error) {
	dir := containingDir(filePath)

	matched, key := bestMatch(dir, doc)
	if matched == nil {
		if def := doc.Default(); def != nil {
			return r.expand(config.DefaultDirKey, def, doc)
		}

		return &RuleSet{}, nil
	}

	return r.expand(key, matched, doc)
}

// expand validates the matched rule and applies placeholder expansion.
func (r *Resolver) expand(
	key string,
	rule *config.DirRule,
	doc *config.Document,
) (*RuleSet, error) {
	if err := r.validator.ValidateDirRule(rule); err != nil {
		return nil, errors.Wrapf(err, "DIR_CONFIGS[%s]", key)
	}

	rs := &RuleSet{
		Enabled: expandMagic(rule.ErrorsEnabled, doc),
		Ignored: expandMagic(rule.ErrorsIgnored, doc),
		Dir:     key,
	}

	if rule.MaxLineLength != nil {
		rs.MaxLineLength = *rule.MaxLineLength
	}

	return rs, nil
}

// bestMatch returns the rule whose directory key is the longest path
// prefix of dir, with its key. Keys are scanned in sorted order so the
// result is deterministic; two distinct keys of equal length cannot both
// be segment prefixes of the same directory.
func bestMatch(dir string, doc *config.Document) (*config.DirRule, string) {
	var (
		best    *config.DirRule
		bestKey string
		bestLen = -1
	)

	keys := make([]string, 0, len(doc.DirConfigs))
	for key := range doc.DirConfigs {
		if key != config.DefaultDirKey {
			keys = append(keys, key)
		}
	}

	slices.Sort(keys)

	for _, key := range keys {
		prefix := normalizeDir(key)
		if !isPathPrefix(prefix, dir) {
			continue
		}

		if len(prefix) > bestLen {
			best = doc.DirConfigs[key]
			bestKey = key
			bestLen = len(prefix)
		}
	}

	return best, bestKey
}

// expandMagic performs the one-level placeholder substitution: each magic
// token is replaced in place by the corresponding top-level list (empty
// when the document does not define it), preserving surrounding order.
func expandMagic(ids []string, doc *config.Document) []string {
	if ids == nil {
		return nil
	}

	expanded := make([]string, 0, len(ids))

	for _, id := range ids {
		switch id {
		case config.MagicErrorsEnabled:
			expanded = append(expanded, doc.ErrorsEnabled...)
		case config.MagicIgnoresCommon:
			expanded = append(expanded, doc.IgnoresCommon...)
		default:
			expanded = append(expanded, id)
		}
	}

	return expanded
}

// containingDir returns the slash-separated directory holding filePath.
func containingDir(filePath string) string {
	return path.Dir(filepath.ToSlash(filePath))
}

// normalizeDir cleans a configured directory key into slash form without
// a trailing separator.
func normalizeDir(key string) string {
	return path.Clean(filepath.ToSlash(key))
}

// isPathPrefix reports whether prefix covers dir on path segment
// boundaries: "a" covers "a" and "a/b" but not "ab". The "." prefix
// covers every relative directory.
func isPathPrefix(prefix, dir string) bool {
	if prefix == "." {
		return !path.IsAbs(dir)
	}

	return dir == prefix || strings.HasPrefix(dir, prefix+"/")
}
