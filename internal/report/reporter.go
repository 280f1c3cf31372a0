// Package report renders checker findings for the terminal.
package report

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/smykla-labs/checkpatch/internal/checker"
	"github.com/smykla-labs/checkpatch/internal/color"
)

// Reporter writes findings grouped per file, one `line: message` row per
// finding, in the checker's output order.
type Reporter struct {
	out   io.Writer
	theme color.Theme
}

// New creates a Reporter.
func New(out io.Writer, theme color.Theme) *Reporter {
	return &Reporter{
		out:   out,
		theme: theme,
	}
}

// Report renders the findings of one run. When the checker failed without
// producing anything parseable, its raw diagnostics are passed through
// unmodified instead.
func (r *Reporter) Report(result *checker.Result) {
	if result.Clean() {
		return
	}

	if len(result.Findings) == 0 {
		fmt.Fprint(r.out, result.RawOutput)
		return
	}

	order, grouped := result.ByFile()

	for _, file := range order {
		fmt.Fprintf(r.out, "%s:\n", r.theme.File.Render(file))

		for _, finding := range grouped[file] {
			fmt.Fprintf(r.out, "  %s: %s\n",
				r.theme.Line.Render(strconv.Itoa(finding.Line)),
				r.renderMessage(finding),
			)
		}
	}
}

// Summary renders a per-file table of finding counts.
func (r *Reporter) Summary(result *checker.Result) {
	if len(result.Findings) == 0 {
		return
	}

	order, grouped := result.ByFile()

	var buf bytes.Buffer

	t := tablewriter.NewTable(&buf,
		tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{
			Symbols: tw.NewSymbols(tw.StyleRounded),
		})),
		tablewriter.WithPadding(tw.Padding{Left: " ", Right: " "}),
	)

	t.Header([]string{"File", "Errors", "Warnings", "Checks"})

	for _, file := range order {
		var errs, warns, checks int

		for _, finding := range grouped[file] {
			switch finding.Severity {
			case checker.SeverityError:
				errs++
			case checker.SeverityWarning:
				warns++
			case checker.SeverityCheck:
				checks++
			}
		}

		_ = t.Append([]string{
			file,
			strconv.Itoa(errs),
			strconv.Itoa(warns),
			strconv.Itoa(checks),
		})
	}

	_ = t.Render()

	fmt.Fprintln(r.out, strings.TrimRight(buf.String(), "\n"))
}

// renderMessage colors the message by severity, re-attaching the tag the
// parser stripped so the text matches what checkpatch printed.
func (r *Reporter) renderMessage(finding checker.Finding) string {
	message := finding.Message
	if finding.Severity != checker.SeverityUnknown {
		message = string(finding.Severity) + ": " + message
	}

	switch finding.Severity {
	case checker.SeverityError:
		return r.theme.Error.Render(message)
	case checker.SeverityWarning:
		return r.theme.Warning.Render(message)
	case checker.SeverityCheck:
		return r.theme.Check.Render(message)
	default:
		return message
	}
}
