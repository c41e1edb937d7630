// Package executor runs external commands as explicit argument vectors.
//
// Commands are never joined into a shell string: the program and its
// arguments go straight to exec.CommandContext, so pool names and device
// paths cannot be reinterpreted by a shell. Each run captures both output
// streams and the exit status, and is bounded by a timeout.
package executor

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// DefaultTimeout bounds a single command when no timeout is configured.
const DefaultTimeout = 60 * time.Second

// ErrTimeout is returned when a command exceeds its deadline.
var ErrTimeout = errors.New("command timed out")

// waitDelay bounds how long Run waits for output pipes after the process
// is killed, in case a child still holds them open.
const waitDelay = 2 * time.Second

// Runner runs one command and returns its captured output.
//
// A non-zero exit status is not an error from Run; it is reported in
// Result.ExitCode and judged by Classify/Check. Run returns an error only
// when the command could not be started or did not finish in time.
type Runner interface {
	Run(ctx context.Context, program string, args []string) (Result, error)
}

// Recorder receives one observation per finished command.
type Recorder interface {
	ObserveCommand(verb string, outcome Outcome, d time.Duration)
}

// Result is the captured outcome of a command.
type Result struct {
	ID       string        `json:"id" yaml:"id"`
	Program  string        `json:"program" yaml:"program"`
	Args     []string      `json:"args" yaml:"args"`
	Stdout   string        `json:"stdout" yaml:"stdout"`
	Stderr   string        `json:"stderr" yaml:"stderr"`
	ExitCode int           `json:"exitCode" yaml:"exitCode"`
	Duration time.Duration `json:"duration" yaml:"duration"`
}

// Verb returns the first argument, which names the subcommand.
func (r Result) Verb() string {
	if len(r.Args) == 0 {
		return ""
	}
	return r.Args[0]
}

// Exec runs commands on the local host.
type Exec struct {
	// Timeout bounds each command. Zero means DefaultTimeout.
	Timeout time.Duration
	// Recorder, if set, is notified after every command.
	Recorder Recorder
}

// NewExec creates an Exec with the given timeout.
func NewExec(timeout time.Duration, recorder Recorder) *Exec {
	return &Exec{Timeout: timeout, Recorder: recorder}
}

// Run implements Runner.
func (e *Exec) Run(ctx context.Context, program string, args []string) (Result, error) {
	timeout := e.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	res := Result{
		ID:      uuid.NewString(),
		Program: program,
		Args:    append([]string(nil), args...),
	}

	logger := log.With().
		Str("component", "executor").
		Str("invocation", res.ID).
		Str("program", program).
		Strs("args", args).
		Logger()
	logger.Debug().Msg("Running command")

	cmd := exec.CommandContext(cctx, program, args...)
	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf
	cmd.WaitDelay = waitDelay

	start := time.Now()
	err := cmd.Run()
	res.Duration = time.Since(start)
	res.Stdout = outBuf.String()
	res.Stderr = errBuf.String()
	res.ExitCode = exitCode(err)

	if cerr := cctx.Err(); cerr != nil {
		e.record(res, OutcomeFailed)
		if errors.Is(cerr, context.DeadlineExceeded) {
			logger.Error().Dur("timeout", timeout).Msg("Command timed out")
			return res, ErrTimeout
		}
		logger.Warn().Err(cerr).Msg("Command cancelled")
		return res, cerr
	}

	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		logger.Error().Err(err).Msg("Command failed to start")
		e.record(res, OutcomeFailed)
		return res, err
	}

	outcome := Classify(res)
	event := logger.Debug()
	if outcome != OutcomeOK {
		event = logger.Warn().Str("stderr", res.Stderr)
	}
	event.Int("exit_code", res.ExitCode).
		Dur("duration", res.Duration).
		Str("outcome", string(outcome)).
		Msg("Command finished")

	e.record(res, outcome)
	return res, nil
}

func (e *Exec) record(res Result, outcome Outcome) {
	if e.Recorder != nil {
		e.Recorder.ObserveCommand(res.Verb(), outcome, res.Duration)
	}
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		return ee.ExitCode()
	}
	return -1
}
