package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jbweber/zpoolctl/internal/inventory"
)

var diskCmd = &cobra.Command{
	Use:   "disk",
	Short: "Inspect block devices",
}

func init() {
	diskCmd.AddCommand(diskListCmd)
	diskListCmd.Flags().Bool("available", false, "only show disks with nothing mounted")
}

var diskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List disks and their partitions",
	Long: `List whole disks (SCSI and virtio) with their partitions, filesystem
types, sizes and mount points, as reported by lsblk.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		available, _ := cmd.Flags().GetBool("available")

		ctx := cmd.Context()
		a, err := newApp(ctx, false)
		if err != nil {
			return err
		}
		defer a.flushMetrics(ctx)

		disks, err := a.manager.ListDisks(ctx)
		if err != nil {
			return err
		}
		if available {
			disks = availableDisks(disks)
		}

		return printDisks(disks)
	},
}

func printDisks(disks []inventory.DiskRecord) error {
	formatter, err := newFormatter()
	if err != nil {
		return err
	}
	result, err := formatter.FormatDisks(disks)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	fmt.Print(result)
	return nil
}
