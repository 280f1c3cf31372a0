package checker

import (
	"context"
	"strconv"
	"strings"

	"github.com/smykla-labs/checkpatch/internal/exec"
	"github.com/smykla-labs/checkpatch/internal/resolver"
	"github.com/smykla-labs/checkpatch/pkg/logger"
)

// baseFlags are always passed to checkpatch.pl. They make the output
// machine-parseable and drop kernel-tree assumptions that do not hold for
// out-of-tree projects.
var baseFlags = []string{
	"--strict",
	"--no-tree",
	"--emacs",
	"--terse",
	"--showfile",
	"--no-summary",
	"--color=never",
	"--no-signoff",
}

// commitMsgIgnores are rule ids that never make sense for a synthetic
// patch built from a commit message.
var commitMsgIgnores = []string{
	"GERRIT_CHANGE_ID",
	"COMMIT_LOG_LONG_LINE",
	"EMAIL_SUBJECT",
	"GIT_COMMIT_ID",
}

// Checker invokes checkpatch.pl. Everything past the command line is
// owned by the external tool; the Checker only shapes flags and parses
// the terse diagnostics back.
type Checker struct {
	runner     exec.Runner
	binary     string
	fixInplace bool
	log        logger.Logger
}

// Option configures a Checker.
type Option func(*Checker)

// WithFixInplace passes --fix-inplace to the checker.
func WithFixInplace(fix bool) Option {
	return func(c *Checker) {
		c.fixInplace = fix
	}
}

// WithLogger sets the logger.
func WithLogger(log logger.Logger) Option {
	return func(c *Checker) {
		c.log = log
	}
}

// New creates a Checker around the given binary.
func New(runner exec.Runner, binary string, opts ...Option) *Checker {
	c := &Checker{
		runner: runner,
		binary: binary,
		log:    logger.NewNoOpLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// CheckFiles runs the checker over files with the resolved rule set. All
// files must share the same rule set; the caller batches them.
func (c *Checker) CheckFiles(
	ctx context.Context,
	files []string,
	rules *resolver.RuleSet,
) (*Result, error) {
	args := BuildArgs(rules, c.fixInplace)
	args = append(args, "--file")
	args = append(args, files...)

	c.log.Debug("running checker",
		"binary", c.binary,
		"dir", rules.Dir,
		"args", strings.Join(args, " "),
	)

	run, err := c.runner.Run(ctx, c.binary, args...)
	if err != nil {
		return nil, err
	}

	return c.toResult(run), nil
}

// CheckPatch feeds a patch to the checker on stdin. Used for commit
// message checking, where findings carry no filename.
func (c *Checker) CheckPatch(ctx context.Context, patch string) (*Result, error) {
	args := append([]string{}, baseFlags...)
	args = append(args, "--ignore", strings.Join(commitMsgIgnores, ","))

	c.log.Debug("running checker on patch", "binary", c.binary)

	run, err := c.runner.RunWithStdin(ctx, strings.NewReader(patch), c.binary, args...)
	if err != nil {
		return nil, err
	}

	return c.toResult(run), nil
}

// toResult converts a command result into a checker result.
func (c *Checker) toResult(run *exec.Result) *Result {
	result := &Result{
		RawOutput: run.Stdout + run.Stderr,
		ExitCode:  run.ExitCode,
	}

	if !run.Succeeded() {
		result.Findings = parseTerseOutput(run.Stdout)
	}

	return result
}

// BuildArgs derives the checker flag list from a resolved rule set.
// Ignored takes precedence over Enabled when a hand-built rule set
// somehow carries both.
func BuildArgs(rules *resolver.RuleSet, fixInplace bool) []string {
	args := append([]string{}, baseFlags...)

	if fixInplace {
		args = append(args, "--fix-inplace")
	}

	switch {
	case len(rules.Ignored) > 0:
		args = append(args, "--ignore", strings.Join(rules.Ignored, ","))
	case len(rules.Enabled) > 0:
		args = append(args, "--types", strings.Join(rules.Enabled, ","))
	}

	if rules.MaxLineLength > 0 {
		args = append(args, "--max-line-length="+strconv.Itoa(rules.MaxLineLength))
	}

	return args
}
