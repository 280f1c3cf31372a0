// Package checker builds checkpatch.pl command lines from resolved rule
// sets and interprets the checker's terse output.
package checker

// Severity is the level checkpatch.pl attaches to a finding.
type Severity string

const (
	// SeverityError is a blocking style violation.
	SeverityError Severity = "ERROR"

	// SeverityWarning is a non-fatal style violation.
	SeverityWarning Severity = "WARNING"

	// SeverityCheck is a --strict-only nitpick.
	SeverityCheck Severity = "CHECK"

	// SeverityUnknown is used when the output line carries no recognized
	// severity prefix.
	SeverityUnknown Severity = ""
)

// Finding is a single diagnostic reported by the checker.
type Finding struct {
	File     string
	Line     int
	Severity Severity
	Message  string
}

// Result is the outcome of one checker invocation. RawOutput carries the
// checker's diagnostics unmodified; Findings is the parsed view of it.
type Result struct {
	Findings  []Finding
	RawOutput string
	ExitCode  int
}

// Clean reports whether the checker found nothing.
func (r *Result) Clean() bool {
	return r.ExitCode == 0 && len(r.Findings) == 0
}

// ByFile groups findings per file, preserving the checker's output order
// within each file and the order in which files first appear.
func (r *Result) ByFile() ([]string, map[string][]Finding) {
	var order []string

	grouped := make(map[string][]Finding)

	for _, finding := range r.Findings {
		if _, seen := grouped[finding.File]; !seen {
			order = append(order, finding.File)
		}

		grouped[finding.File] = append(grouped[finding.File], finding)
	}

	return order, grouped
}
