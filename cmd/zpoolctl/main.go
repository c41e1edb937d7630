package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jbweber/zpoolctl/internal/config"
	"github.com/jbweber/zpoolctl/internal/logging"
	"github.com/jbweber/zpoolctl/internal/output"
)

var (
	version = "dev"
	commit  = "unknown"
)

var (
	cfgFile      string
	outputFormat string
	noHeaders    bool
	settings     *config.Settings
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "zpoolctl",
	Short: "zpoolctl - ZFS pool management tool",
	Long: `zpoolctl is a CLI tool for creating and managing ZFS storage pools.

It builds zpool command lines from a catalog of pool properties and
features, validates names before anything runs, and parses pool and
disk inventories into structured output.`,
	Version:           fmt.Sprintf("%s (commit: %s)", version, commit),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initConfig,
}

func init() {
	flags := rootCmd.PersistentFlags()
	defaults := config.Defaults()

	flags.StringVar(&cfgFile, "config", "", "config file (default $HOME/.config/zpoolctl/config.yaml)")
	flags.String(config.KeyZpool, defaults.ZpoolPath, "zpool binary name or path")
	flags.String(config.KeyLsblk, defaults.LsblkPath, "lsblk binary name or path")
	flags.Duration(config.KeyTimeout, defaults.Timeout, "timeout for each external command")
	flags.String(config.KeyOSFamily, defaults.OSFamily, "OS family features are enabled for (auto detects the host)")
	flags.Bool(config.KeyStrict, defaults.Strict, "reject creates with fewer disks than the raid profile needs")
	flags.String(config.KeyLogLevel, defaults.LogLevel, "log level (trace, debug, info, warn, error)")
	flags.String(config.KeyLogFormat, defaults.LogFormat, "log format (auto, json, console)")
	flags.String(config.KeyTextfile, defaults.Textfile, "write metrics to this .prom file for the node_exporter textfile collector")
	flags.StringVarP(&outputFormat, "output", "o", string(output.FormatTable), "output format (table, yaml, json)")
	flags.BoolVar(&noHeaders, "no-headers", false, "omit table headers")

	for _, key := range []string{
		config.KeyZpool,
		config.KeyLsblk,
		config.KeyTimeout,
		config.KeyOSFamily,
		config.KeyStrict,
		config.KeyLogLevel,
		config.KeyLogFormat,
		config.KeyTextfile,
	} {
		if err := viper.BindPFlag(key, flags.Lookup(key)); err != nil {
			panic(fmt.Sprintf("failed to bind flag %s: %v", key, err))
		}
	}

	rootCmd.AddCommand(poolCmd)
	rootCmd.AddCommand(diskCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(inventoryCmd)
}

// initConfig loads settings from flags, environment and the config file,
// then sets up logging. It runs before every subcommand.
func initConfig(cmd *cobra.Command, args []string) error {
	s, err := config.Load(viper.GetViper(), cfgFile)
	if err != nil {
		return err
	}

	logging.Init(logging.Config{
		Level:     s.LogLevel,
		Format:    s.LogFormat,
		Component: "zpoolctl",
	})

	if err := output.ValidateFormat(outputFormat); err != nil {
		return err
	}

	settings = s
	return nil
}

func newFormatter() (output.Formatter, error) {
	return output.NewFormatter(output.Options{
		Format:    output.Format(outputFormat),
		NoHeaders: noHeaders,
	})
}

// tableOutput reports whether human-readable status lines may be printed
// alongside the result.
func tableOutput() bool {
	return output.Format(outputFormat) == output.FormatTable
}
