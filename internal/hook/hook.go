// Package hook orchestrates the pre-commit and commit-msg runs: loading
// the rules document once, resolving each file, and batching checker
// invocations.
package hook

import (
	"context"
	"os"
	"path/filepath"

	"github.com/smykla-labs/checkpatch/internal/checker"
	"github.com/smykla-labs/checkpatch/internal/resolver"
	"github.com/smykla-labs/checkpatch/pkg/config"
	"github.com/smykla-labs/checkpatch/pkg/logger"
)

// Hook runs the checker over the files of one git hook invocation.
type Hook struct {
	resolver *resolver.Resolver
	checker  *checker.Checker
	log      logger.Logger
}

// Option configures a Hook.
type Option func(*Hook)

// WithLogger sets the logger.
func WithLogger(log logger.Logger) Option {
	return func(h *Hook) {
		h.log = log
	}
}

// New creates a Hook around a checker.
func New(chk *checker.Checker, opts ...Option) *Hook {
	h := &Hook{
		resolver: resolver.New(),
		checker:  chk,
		log:      logger.NewNoOpLogger(),
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// fileBatch is a set of files sharing one resolved rule set. Files under
// the same directory key always resolve identically, so the checker runs
// once per batch instead of once per file.
type fileBatch struct {
	rules *resolver.RuleSet
	files []string
}

// PreCommit resolves and checks every file, accumulating findings across
// batches. Files listed in IGNORED_FILES and symlinks are skipped. The
// returned result is clean iff no batch produced findings.
func (h *Hook) PreCommit(
	ctx context.Context,
	doc *config.Document,
	files []string,
) (*checker.Result, error) {
	batches, err := h.groupFiles(doc, files)
	if err != nil {
		return nil, err
	}

	combined := &checker.Result{}

	for _, batch := range batches {
		result, err := h.checker.CheckFiles(ctx, batch.files, batch.rules)
		if err != nil {
			return nil, err
		}

		combined.Findings = append(combined.Findings, result.Findings...)
		combined.RawOutput += result.RawOutput

		if result.ExitCode != 0 {
			combined.ExitCode = result.ExitCode
		}
	}

	return combined, nil
}

// groupFiles resolves each file and batches files by the directory key
// their rule came from, preserving first-seen order.
func (h *Hook) groupFiles(
	doc *config.Document,
	files []string,
) ([]*fileBatch, error) {
	var order []*fileBatch

	byDir := make(map[string]*fileBatch)

	for _, file := range files {
		cleaned := filepath.ToSlash(filepath.Clean(file))

		if doc.IsIgnoredFile(cleaned) {
			h.log.Debug("skipping ignored file", "file", cleaned)
			continue
		}

		if isSymlink(file) {
			h.log.Debug("skipping symlink", "file", cleaned)
			continue
		}

		rules, err := h.resolver.Resolve(cleaned, doc)
		if err != nil {
			return nil, err
		}

		h.log.Info("resolved file",
			"file", cleaned,
			"dir", rules.Dir,
			"enabled", len(rules.Enabled),
			"ignored", len(rules.Ignored),
			"maxLineLength", rules.MaxLineLength,
		)

		batch, ok := byDir[rules.Dir]
		if !ok {
			batch = &fileBatch{rules: rules}
			byDir[rules.Dir] = batch
			order = append(order, batch)
		}

		batch.files = append(batch.files, file)
	}

	return order, nil
}

// isSymlink reports whether path is a symbolic link.
func isSymlink(path string) bool {
	info, err := os.Lstat(path)
	if err != nil {
		return false
	}

	return info.Mode()&os.ModeSymlink != 0
}
