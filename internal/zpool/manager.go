package zpool

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/jbweber/zpoolctl/internal/catalog"
	"github.com/jbweber/zpoolctl/internal/executor"
	"github.com/jbweber/zpoolctl/internal/inventory"
)

// Runner is the interface for running external commands.
// This allows for dependency injection and testing.
type Runner interface {
	Run(ctx context.Context, program string, args []string) (executor.Result, error)
}

// ManagerOptions configure a Manager.
type ManagerOptions struct {
	ZpoolPath string // Defaults to "zpool"
	LsblkPath string // Defaults to "lsblk"
	// DryRun returns the argv of mutating calls without running them.
	DryRun bool
	// Store, if set, receives every snapshot taken by Refresh.
	Store *inventory.Store
}

// Execution describes a mutating call.
type Execution struct {
	Program string
	Args    Args
	// Result is the zero value when Executed is false.
	Result   executor.Result
	Executed bool
	DryRun   bool

	// Err is set when the runner itself failed: a timeout, a start failure
	// or cancellation. The command may or may not have run.
	Err error
}

// Outcome classifies the result. Dry runs report OutcomeOK and runner
// failures report OutcomeFailed.
func (e *Execution) Outcome() executor.Outcome {
	switch {
	case e.Err != nil:
		return executor.OutcomeFailed
	case !e.Executed:
		return executor.OutcomeOK
	}
	return executor.Classify(e.Result)
}

// Command renders the full command line for display.
func (e *Execution) Command() string {
	return strings.TrimSpace(e.Program + " " + e.Args.String())
}

// Manager coordinates pool operations. Each call issues at most one
// command, synchronously.
type Manager struct {
	builder *Builder
	runner  Runner
	zpool   string
	lsblk   string
	dryRun  bool
	store   *inventory.Store
}

// NewManager creates a new pool manager.
func NewManager(builder *Builder, runner Runner, opts ManagerOptions) *Manager {
	m := &Manager{
		builder: builder,
		runner:  runner,
		zpool:   opts.ZpoolPath,
		lsblk:   opts.LsblkPath,
		dryRun:  opts.DryRun,
		store:   opts.Store,
	}
	if m.zpool == "" {
		m.zpool = "zpool"
	}
	if m.lsblk == "" {
		m.lsblk = "lsblk"
	}
	return m
}

// Builder returns the manager's builder.
func (m *Manager) Builder() *Builder {
	return m.builder
}

// Create creates a pool.
func (m *Manager) Create(ctx context.Context, req CreateRequest) (*Execution, error) {
	args, err := m.builder.Create(req)
	if err != nil {
		return nil, err
	}
	return m.mutate(ctx, req.Name, args)
}

// Destroy destroys a pool.
func (m *Manager) Destroy(ctx context.Context, name string, force bool) (*Execution, error) {
	args, err := m.builder.Destroy(name, force)
	if err != nil {
		return nil, err
	}
	return m.mutate(ctx, name, args)
}

// Import imports a pool, applying import-time properties from overrides.
func (m *Manager) Import(ctx context.Context, name string, force bool, overrides []catalog.Property) (*Execution, error) {
	args, err := m.builder.Import(name, force, overrides)
	if err != nil {
		return nil, err
	}
	return m.mutate(ctx, name, args)
}

// Export exports a pool.
func (m *Manager) Export(ctx context.Context, name string, force bool) (*Execution, error) {
	args, err := m.builder.ImportExport(name, DirectionExport, force)
	if err != nil {
		return nil, err
	}
	return m.mutate(ctx, name, args)
}

// SetProperty changes a property on an existing pool.
func (m *Manager) SetProperty(ctx context.Context, name, property, value string) (*Execution, error) {
	args, err := m.builder.Set(name, property, value)
	if err != nil {
		return nil, err
	}
	return m.mutate(ctx, name, args)
}

// ListPools lists pools using zpool's scripted output.
func (m *Manager) ListPools(ctx context.Context) ([]inventory.PoolRecord, error) {
	args := []string{"list", "-H", "-o", strings.Join(inventory.TabularColumns, ",")}
	res, err := m.query(ctx, m.zpool, args)
	if err != nil {
		return nil, fmt.Errorf("failed to list pools: %w", err)
	}

	pools, err := inventory.ParsePoolsTabular(res.Stdout)
	if err != nil {
		return nil, fmt.Errorf("failed to parse pool list: %w", err)
	}
	return pools, nil
}

// ListDisks lists whole disks and their partitions.
func (m *Manager) ListDisks(ctx context.Context) ([]inventory.DiskRecord, error) {
	res, err := m.query(ctx, m.lsblk, inventory.LsblkArgs)
	if err != nil {
		return nil, fmt.Errorf("failed to list disks: %w", err)
	}

	disks, err := inventory.ParseDisks([]byte(res.Stdout))
	if err != nil {
		return nil, fmt.Errorf("failed to parse disk list: %w", err)
	}
	return disks, nil
}

// Refresh lists pools and disks and returns them as a new snapshot. If the
// manager has a Store, the snapshot replaces its current one.
func (m *Manager) Refresh(ctx context.Context) (*inventory.Snapshot, error) {
	pools, err := m.ListPools(ctx)
	if err != nil {
		return nil, err
	}

	disks, err := m.ListDisks(ctx)
	if err != nil {
		return nil, err
	}

	snap := inventory.NewSnapshot(pools, disks)
	if m.store != nil {
		m.store.Replace(snap)
	}

	log.Debug().
		Str("component", "zpool").
		Int("pools", len(pools)).
		Int("disks", len(disks)).
		Msg("Inventory refreshed")

	return snap, nil
}

func (m *Manager) mutate(ctx context.Context, pool string, args Args) (*Execution, error) {
	exec := &Execution{Program: m.zpool, Args: args}

	logger := log.With().Str("component", "zpool").Str("pool", pool).Str("verb", args[0]).Logger()

	if m.dryRun {
		exec.DryRun = true
		logger.Info().Str("command", exec.Command()).Msg("Dry run, not executing")
		return exec, nil
	}

	res, err := m.runner.Run(ctx, m.zpool, args)
	exec.Result = res
	if err != nil {
		exec.Err = err
		return exec, fmt.Errorf("failed to run zpool %s: %w", args[0], err)
	}
	exec.Executed = true

	if err := executor.Check(res); err != nil {
		return exec, err
	}
	if exec.Outcome() == executor.OutcomeWarning {
		logger.Warn().Str("stderr", strings.TrimSpace(res.Stderr)).Msg("zpool reported warnings")
	}

	return exec, nil
}

func (m *Manager) query(ctx context.Context, program string, args []string) (executor.Result, error) {
	res, err := m.runner.Run(ctx, program, args)
	if err != nil {
		return res, err
	}
	if err := executor.Check(res); err != nil {
		return res, err
	}
	return res, nil
}
