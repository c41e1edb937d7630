package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/jbweber/zpoolctl/internal/catalog"
	"github.com/jbweber/zpoolctl/internal/executor"
	"github.com/jbweber/zpoolctl/internal/inventory"
	"github.com/jbweber/zpoolctl/internal/metrics"
	"github.com/jbweber/zpoolctl/internal/sysinfo"
	"github.com/jbweber/zpoolctl/internal/zpool"
)

// app is everything a command needs to talk to zpool and lsblk.
type app struct {
	manager *zpool.Manager
	metrics *metrics.Metrics
	store   *inventory.Store
}

func newApp(ctx context.Context, dryRun bool) (*app, error) {
	family, err := sysinfo.ResolveOSFamily(ctx, settings.OSFamily)
	if err != nil {
		return nil, fmt.Errorf("failed to determine OS family: %w", err)
	}
	if !catalog.IsSupportedOSFamily(family) {
		log.Warn().Str("os", family).Msg("No features are enabled for this OS family")
	}

	zpoolPath, err := locate(settings.ZpoolPath, executor.ZpoolPaths, dryRun)
	if err != nil {
		return nil, err
	}
	lsblkPath, err := locate(settings.LsblkPath, executor.LsblkPaths, dryRun)
	if err != nil {
		return nil, err
	}

	m := metrics.New()
	store := &inventory.Store{}

	builder := zpool.NewBuilder(catalog.Default(), zpool.BuilderOptions{
		OSFamily: family,
		Strict:   settings.Strict,
	})
	runner := executor.NewExec(settings.Timeout, m)
	manager := zpool.NewManager(builder, runner, zpool.ManagerOptions{
		ZpoolPath: zpoolPath,
		LsblkPath: lsblkPath,
		DryRun:    dryRun,
		Store:     store,
	})

	return &app{manager: manager, metrics: m, store: store}, nil
}

// locate resolves a binary. Dry runs never execute, so a missing binary is
// only a warning there.
func locate(name string, fallbacks []string, dryRun bool) (string, error) {
	path, err := executor.LocateBinary(name, fallbacks)
	if err == nil {
		return path, nil
	}
	if dryRun {
		log.Warn().Err(err).Msg("Using unresolved binary name for dry run")
		return name, nil
	}
	return "", err
}

// flushMetrics writes the textfile if one is configured. The file is
// replaced wholesale, so an inventory is taken first if the command did not
// take one. Failures are logged, never returned, so they cannot mask the
// command's own result.
func (a *app) flushMetrics(ctx context.Context) {
	if settings.Textfile == "" {
		return
	}

	snap := a.store.Current()
	if snap == nil {
		var err error
		if snap, err = a.manager.Refresh(ctx); err != nil {
			log.Warn().Err(err).Msg("Inventory unavailable for metrics")
		}
	}
	a.metrics.ObserveSnapshot(snap)

	if err := a.metrics.WriteTextfile(settings.Textfile); err != nil {
		log.Error().Err(err).Msg("Failed to write metrics textfile")
	}
}
