// Package main provides the CLI entry point for the checkpatch hook.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/smykla-labs/checkpatch/internal/checker"
	"github.com/smykla-labs/checkpatch/internal/color"
	internalconfig "github.com/smykla-labs/checkpatch/internal/config"
	execpkg "github.com/smykla-labs/checkpatch/internal/exec"
	"github.com/smykla-labs/checkpatch/internal/hook"
	"github.com/smykla-labs/checkpatch/internal/report"
	"github.com/smykla-labs/checkpatch/internal/settings"
	"github.com/smykla-labs/checkpatch/pkg/logger"
)

var (
	configFile  string
	commitMsg   bool
	fixInplace  bool
	showSummary bool
	noColor     bool
	verbose     bool
	traceMode   bool
)

// errViolations marks a run where the checker reported findings. The
// diagnostics are already printed by then; only the exit code is left.
var errViolations = errors.New("style violations found")

func main() {
	os.Exit(mainWithExitCode())
}

func mainWithExitCode() int {
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, errViolations) {
			return 1
		}

		fmt.Fprintf(os.Stderr, "Error: %v\n", err)

		return 1
	}

	return 0
}

var rootCmd = &cobra.Command{
	Use:   "checkpatch [flags] <file>...",
	Short: "Directory-scoped checkpatch.pl runner",
	Long: `Runs checkpatch.pl over the given files with the rule set configured for
each file's directory. Rules come from a YAML document mapping directory
prefixes to enabled or ignored rule ids; the longest matching prefix wins.`,
	Args:          cobra.ArbitraryArgs,
	RunE:          run,
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

func init() {
	rootCmd.Flags().StringVar(
		&configFile,
		"config-file",
		"",
		"Path to the rules file (default: checkpatch.yaml)",
	)
	rootCmd.Flags().BoolVar(
		&commitMsg,
		"commit-msg",
		false,
		"Check the commit message instead of files",
	)
	rootCmd.Flags().BoolVar(
		&fixInplace,
		"fix-inplace",
		false,
		"Enable checkpatch in-place fixes",
	)
	rootCmd.Flags().BoolVar(
		&showSummary,
		"summary",
		false,
		"Print a per-file summary table after the diagnostics",
	)
	rootCmd.Flags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Verbose output",
	)
	rootCmd.Flags().BoolVar(
		&traceMode,
		"trace",
		false,
		"Enable trace logging",
	)

	rootCmd.PersistentFlags().BoolVar(
		&noColor,
		"no-color",
		false,
		"Disable colored output",
	)
}

func run(cmd *cobra.Command, args []string) error {
	log := logger.NewStderrLogger(verbose, traceMode)

	loader, err := settings.NewLoader()
	if err != nil {
		return errors.Wrap(err, "failed to create settings loader")
	}

	cfg, err := loader.Load(buildFlagsMap())
	if err != nil {
		return errors.Wrap(err, "failed to load settings")
	}

	binary, err := execpkg.FindTool(cfg.Checker.Binaries...)
	if err != nil {
		return err
	}

	runner := execpkg.NewRunner(cfg.Checker.Timeout.ToDuration())

	chk := checker.New(runner, binary,
		checker.WithFixInplace(fixInplace),
		checker.WithLogger(log),
	)

	h := hook.New(chk, hook.WithLogger(log))

	theme := color.NewTheme(cfg.Output.ColorEnabled(func() bool {
		return color.Profile(noColor)
	}))
	reporter := report.New(os.Stdout, theme)

	ctx := cmd.Context()

	var result *checker.Result

	if commitMsg {
		result, err = h.CommitMsg(ctx, args)
	} else {
		result, err = runPreCommit(ctx, h, cfg, args, log)
	}

	if err != nil {
		return err
	}

	if result == nil {
		return nil
	}

	reporter.Report(result)

	if showSummary {
		reporter.Summary(result)
	}

	if !result.Clean() {
		return errViolations
	}

	return nil
}

// runPreCommit loads the rules document and checks the given files.
// Rules-document errors abort before any checker invocation.
func runPreCommit(
	ctx context.Context,
	h *hook.Hook,
	cfg *settings.Settings,
	files []string,
	log logger.Logger,
) (*checker.Result, error) {
	rulesPath := configFile
	if rulesPath == "" {
		rulesPath = cfg.Rules.File
	}

	doc, err := internalconfig.NewLoader().Load(rulesPath)
	if err != nil {
		return nil, err
	}

	log.Debug("rules document loaded", "path", rulesPath, "dirs", len(doc.DirConfigs))

	if len(files) == 0 {
		log.Info("no files to check")
		return nil, nil
	}

	return h.PreCommit(ctx, doc, files)
}

// buildFlagsMap converts CLI flags to the highest-precedence settings layer.
func buildFlagsMap() map[string]any {
	flags := make(map[string]any)

	if noColor {
		flags["output"] = map[string]any{"color": "never"}
	}

	return flags
}
