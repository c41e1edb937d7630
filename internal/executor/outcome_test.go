package executor

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		res  Result
		want Outcome
	}{
		{name: "clean", res: Result{}, want: OutcomeOK},
		{name: "whitespace stderr", res: Result{Stderr: " \n"}, want: OutcomeOK},
		{name: "stderr text", res: Result{Stderr: "warning"}, want: OutcomeWarning},
		{name: "exit failure", res: Result{ExitCode: 1}, want: OutcomeFailed},
		{name: "exit failure with stderr", res: Result{ExitCode: 2, Stderr: "boom"}, want: OutcomeFailed},
		{name: "not started", res: Result{ExitCode: -1}, want: OutcomeFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.res); got != tt.want {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCheck(t *testing.T) {
	if err := Check(Result{Stderr: "warning only"}); err != nil {
		t.Errorf("Check() on warning = %v, want nil", err)
	}

	res := Result{Program: "zpool", Args: []string{"destroy", "tank"}, ExitCode: 1, Stderr: "cannot open 'tank': no such pool\n"}
	err := Check(res)

	var execErr *ExecutionError
	if !errors.As(err, &execErr) {
		t.Fatalf("Check() error = %v, want *ExecutionError", err)
	}
	if execErr.Result.Stderr != res.Stderr {
		t.Errorf("ExecutionError stderr = %q, want %q", execErr.Result.Stderr, res.Stderr)
	}

	want := "zpool destroy exited with status 1: cannot open 'tank': no such pool"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	bare := &ExecutionError{Result: Result{Program: "zpool", Args: []string{"list"}, ExitCode: 2}}
	if got := bare.Error(); got != "zpool list exited with status 2" {
		t.Errorf("Error() = %q", got)
	}
}

func TestLocateBinary(t *testing.T) {
	dir := t.TempDir()
	fallback := filepath.Join(dir, "zpool")
	if err := os.WriteFile(fallback, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	tests := []struct {
		name      string
		binary    string
		fallbacks []string
		want      string
		wantErr   bool
	}{
		{
			name:   "absolute path is returned as is",
			binary: "/opt/zfs/bin/zpool",
			want:   "/opt/zfs/bin/zpool",
		},
		{
			name:      "fallback location",
			binary:    "zpool-not-on-path-for-tests",
			fallbacks: []string{filepath.Join(dir, "missing"), fallback},
			want:      fallback,
		},
		{
			name:      "not found",
			binary:    "zpool-not-on-path-for-tests",
			fallbacks: []string{filepath.Join(dir, "missing")},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LocateBinary(tt.binary, tt.fallbacks)
			if (err != nil) != tt.wantErr {
				t.Fatalf("LocateBinary() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("LocateBinary() = %q, want %q", got, tt.want)
			}
		})
	}
}
