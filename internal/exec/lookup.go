package exec

import (
	"os/exec"
	"strings"
)

// ToolNotFoundError is returned when none of the candidate binaries for a
// tool are present in PATH.
type ToolNotFoundError struct {
	Candidates []string
}

// Error returns the error message.
func (e *ToolNotFoundError) Error() string {
	return "tool not found in PATH, tried: " + strings.Join(e.Candidates, ", ")
}

// FindTool returns the first candidate binary available in PATH. It
// returns a ToolNotFoundError naming every candidate tried when none are
// installed.
func FindTool(candidates ...string) (string, error) {
	for _, tool := range candidates {
		if _, err := exec.LookPath(tool); err == nil {
			return tool, nil
		}
	}

	return "", &ToolNotFoundError{Candidates: candidates}
}
