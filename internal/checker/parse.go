package checker

import (
	"strconv"
	"strings"
)

// CommitMsgFile is the pseudo-filename findings are attributed to when
// the checker was fed a commit message on stdin. The terse output has an
// empty filename field in that case.
const CommitMsgFile = "/COMMIT_MSG"

// parseTerseOutput parses checkpatch.pl output produced with
// --terse --showfile --emacs, one finding per line:
//
//	file:line: SEVERITY: message
//
// Lines that do not fit the shape are dropped from the parsed view; the
// caller still has them in Result.RawOutput.
func parseTerseOutput(output string) []Finding {
	var findings []Finding

	for line := range strings.Lines(output) {
		line = strings.TrimRight(line, "\n")
		if line == "" {
			continue
		}

		finding, ok := parseTerseLine(line)
		if ok {
			findings = append(findings, finding)
		}
	}

	return findings
}

// parseTerseLine parses one terse output line.
func parseTerseLine(line string) (Finding, bool) {
	parts := strings.SplitN(line, ":", 3)
	if len(parts) != 3 {
		return Finding{}, false
	}

	lineNum, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Finding{}, false
	}

	file := parts[0]
	if file == "" {
		file = CommitMsgFile
	}

	severity, message := splitSeverity(strings.TrimSpace(parts[2]))

	return Finding{
		File:     file,
		Line:     lineNum,
		Severity: severity,
		Message:  message,
	}, true
}

// splitSeverity strips a leading severity tag from the message, if any.
func splitSeverity(message string) (Severity, string) {
	for _, severity := range []Severity{SeverityError, SeverityWarning, SeverityCheck} {
		prefix := string(severity) + ":"
		if strings.HasPrefix(message, prefix) {
			return severity, strings.TrimSpace(strings.TrimPrefix(message, prefix))
		}
	}

	return SeverityUnknown, message
}
