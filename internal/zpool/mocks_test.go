package zpool

import (
	"context"
	"fmt"
	"strings"

	"github.com/jbweber/zpoolctl/internal/executor"
)

// mockRunner is a mock implementation of Runner for testing. It records
// every call and answers from a table keyed by program and verb.
type mockRunner struct {
	calls     []mockCall
	responses map[string]executor.Result
	errors    map[string]error
}

type mockCall struct {
	program string
	args    []string
}

func newMockRunner() *mockRunner {
	return &mockRunner{
		responses: make(map[string]executor.Result),
		errors:    make(map[string]error),
	}
}

func key(program, verb string) string {
	return program + " " + verb
}

// respond sets the result returned for program's verb.
func (m *mockRunner) respond(program, verb string, res executor.Result) {
	m.responses[key(program, verb)] = res
}

// fail makes program's verb return err.
func (m *mockRunner) fail(program, verb string, err error) {
	m.errors[key(program, verb)] = err
}

func (m *mockRunner) Run(ctx context.Context, program string, args []string) (executor.Result, error) {
	m.calls = append(m.calls, mockCall{program: program, args: append([]string(nil), args...)})

	verb := ""
	if len(args) > 0 {
		verb = args[0]
	}
	if program == "lsblk" {
		verb = ""
	}

	res := m.responses[key(program, verb)]
	res.Program = program
	res.Args = args
	if err, ok := m.errors[key(program, verb)]; ok {
		return res, err
	}
	return res, nil
}

func (m *mockRunner) lastCall() (mockCall, error) {
	if len(m.calls) == 0 {
		return mockCall{}, fmt.Errorf("no calls recorded")
	}
	return m.calls[len(m.calls)-1], nil
}

func (c mockCall) String() string {
	return c.program + " " + strings.Join(c.args, " ")
}
