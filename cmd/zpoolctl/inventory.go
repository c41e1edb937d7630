package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jbweber/zpoolctl/internal/status"
)

var inventoryCmd = &cobra.Command{
	Use:   "inventory",
	Short: "Refresh pool and disk inventory",
	Long: `List pools and disks in one pass and print both.

With --textfile (or textfile in the config file) the inventory is also
written as Prometheus metrics for node_exporter's textfile collector,
which makes this command suitable for a systemd timer or cron job.

Example:
  zpoolctl inventory --textfile /var/lib/node_exporter/textfile/zpool.prom`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx, false)
		if err != nil {
			return err
		}

		snap, err := a.manager.Refresh(ctx)
		if err != nil {
			return err
		}

		formatter, err := newFormatter()
		if err != nil {
			return err
		}
		result, err := formatter.FormatInventory(snap)
		if err != nil {
			return fmt.Errorf("failed to format output: %w", err)
		}
		fmt.Print(result)

		unhealthy := 0
		for _, p := range snap.Pools {
			if !status.IsHealthy(status.ParseHealth(p.Status)) {
				unhealthy++
			}
		}
		if unhealthy > 0 && tableOutput() {
			warning("%d of %d pool(s) need attention", unhealthy, len(snap.Pools))
		}

		if settings.Textfile == "" {
			return nil
		}
		a.metrics.ObserveSnapshot(snap)
		if err := a.metrics.WriteTextfile(settings.Textfile); err != nil {
			return err
		}
		success("Metrics written to %s", settings.Textfile)
		return nil
	},
}
