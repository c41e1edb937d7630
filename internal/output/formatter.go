// Package output provides formatters for displaying pools, disks, catalog
// entries and command results in various formats (table, YAML, JSON).
package output

import (
	"fmt"
	"time"

	"github.com/jbweber/zpoolctl/api/v1alpha1"
	"github.com/jbweber/zpoolctl/internal/catalog"
	"github.com/jbweber/zpoolctl/internal/inventory"
	"github.com/jbweber/zpoolctl/internal/zpool"
)

// Format represents an output format type.
type Format string

const (
	// FormatTable is a human-readable table format.
	FormatTable Format = "table"
	// FormatYAML is a YAML format for declarative configs.
	FormatYAML Format = "yaml"
	// FormatJSON is a JSON format for machine consumption.
	FormatJSON Format = "json"
)

// Formatter formats zpoolctl data for output.
type Formatter interface {
	// FormatPool formats a Pool manifest with its status.
	FormatPool(p *v1alpha1.Pool) (string, error)

	// FormatPools formats pool listing records.
	FormatPools(pools []inventory.PoolRecord) (string, error)

	// FormatDisks formats block devices and their partitions.
	FormatDisks(disks []inventory.DiskRecord) (string, error)

	// FormatProperties formats catalog properties and features.
	FormatProperties(props []catalog.Property) (string, error)

	// FormatRaidProfiles formats redundancy profiles.
	FormatRaidProfiles(profiles []catalog.RaidProfile) (string, error)

	// FormatInventory formats a full inventory snapshot.
	FormatInventory(snap *inventory.Snapshot) (string, error)

	// FormatExecution formats the result of a mutating command.
	FormatExecution(exec *zpool.Execution) (string, error)
}

// Options contains options for formatting output.
type Options struct {
	// Format specifies the output format.
	Format Format
	// NoHeaders omits headers in table format.
	NoHeaders bool
}

// NewFormatter creates a new Formatter based on the specified format.
func NewFormatter(opts Options) (Formatter, error) {
	switch opts.Format {
	case FormatTable:
		return &TableFormatter{NoHeaders: opts.NoHeaders}, nil
	case FormatYAML:
		return &YAMLFormatter{}, nil
	case FormatJSON:
		return &JSONFormatter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s (supported: table, yaml, json)", opts.Format)
	}
}

// ValidateFormat checks if a format string is valid.
func ValidateFormat(format string) error {
	f := Format(format)
	switch f {
	case FormatTable, FormatYAML, FormatJSON:
		return nil
	default:
		return fmt.Errorf("invalid format: %s (valid formats: table, yaml, json)", format)
	}
}

// executionView is the serialized form of a zpool.Execution.
type executionView struct {
	Command  string        `json:"command" yaml:"command"`
	Args     []string      `json:"args" yaml:"args"`
	Executed bool          `json:"executed" yaml:"executed"`
	Outcome  string        `json:"outcome" yaml:"outcome"`
	ExitCode int           `json:"exitCode" yaml:"exitCode"`
	Stdout   string        `json:"stdout,omitempty" yaml:"stdout,omitempty"`
	Stderr   string        `json:"stderr,omitempty" yaml:"stderr,omitempty"`
	Error    string        `json:"error,omitempty" yaml:"error,omitempty"`
	Duration time.Duration `json:"durationNs,omitempty" yaml:"durationNs,omitempty"`
	ID       string        `json:"id,omitempty" yaml:"id,omitempty"`
}

func viewOf(exec *zpool.Execution) executionView {
	outcome := string(exec.Outcome())
	if exec.DryRun {
		outcome = "dry-run"
	}
	var errText string
	if exec.Err != nil {
		errText = exec.Err.Error()
	}
	return executionView{
		Command:  exec.Command(),
		Args:     append([]string{exec.Program}, exec.Args...),
		Executed: exec.Executed,
		Outcome:  outcome,
		ExitCode: exec.Result.ExitCode,
		Stdout:   exec.Result.Stdout,
		Stderr:   exec.Result.Stderr,
		Error:    errText,
		Duration: exec.Result.Duration,
		ID:       exec.Result.ID,
	}
}

// inventoryView is the serialized form of an inventory.Snapshot. Lists are
// never null.
type inventoryView struct {
	Pools   []inventory.PoolRecord `json:"pools" yaml:"pools"`
	Disks   []inventory.DiskRecord `json:"disks" yaml:"disks"`
	TakenAt time.Time              `json:"takenAt,omitempty" yaml:"takenAt,omitempty"`
}

func inventoryViewOf(snap *inventory.Snapshot) inventoryView {
	view := inventoryView{
		Pools: []inventory.PoolRecord{},
		Disks: []inventory.DiskRecord{},
	}
	if snap == nil {
		return view
	}
	if snap.Pools != nil {
		view.Pools = snap.Pools
	}
	if snap.Disks != nil {
		view.Disks = snap.Disks
	}
	view.TakenAt = snap.TakenAt
	return view
}
