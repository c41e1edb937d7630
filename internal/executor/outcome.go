package executor

import (
	"fmt"
	"strings"
)

// Outcome classifies a finished command.
type Outcome string

const (
	// OutcomeOK means exit status zero and nothing on stderr.
	OutcomeOK Outcome = "ok"
	// OutcomeWarning means exit status zero but stderr carried text.
	OutcomeWarning Outcome = "warning"
	// OutcomeFailed means a non-zero exit status.
	OutcomeFailed Outcome = "failed"
)

// Classify judges a result from its exit status and error stream. The two
// signals are independent: a zero exit with stderr text is a warning, a
// non-zero exit is a failure whatever stderr says.
func Classify(r Result) Outcome {
	if r.ExitCode != 0 {
		return OutcomeFailed
	}
	if strings.TrimSpace(r.Stderr) != "" {
		return OutcomeWarning
	}
	return OutcomeOK
}

// ExecutionError reports a command that exited non-zero. Both captured
// streams are kept verbatim for the caller.
type ExecutionError struct {
	Result Result
}

func (e *ExecutionError) Error() string {
	msg := strings.TrimSpace(e.Result.Stderr)
	if msg == "" {
		msg = strings.TrimSpace(e.Result.Stdout)
	}
	if msg == "" {
		return fmt.Sprintf("%s %s exited with status %d", e.Result.Program, e.Result.Verb(), e.Result.ExitCode)
	}
	return fmt.Sprintf("%s %s exited with status %d: %s", e.Result.Program, e.Result.Verb(), e.Result.ExitCode, msg)
}

// Check returns an *ExecutionError when the result is a failure and nil
// otherwise. Warnings are not errors; inspect Classify for them.
func Check(r Result) error {
	if Classify(r) == OutcomeFailed {
		return &ExecutionError{Result: r}
	}
	return nil
}
