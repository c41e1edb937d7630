package main

import (
	"context"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jbweber/zpoolctl/api/v1alpha1"
	"github.com/jbweber/zpoolctl/internal/catalog"
	"github.com/jbweber/zpoolctl/internal/inventory"
	"github.com/jbweber/zpoolctl/internal/loader"
	"github.com/jbweber/zpoolctl/internal/status"
	"github.com/jbweber/zpoolctl/internal/zpool"
)

// Pool management commands
var poolCmd = &cobra.Command{
	Use:   "pool",
	Short: "Manage ZFS pools",
	Long: `Create, destroy, import, export and inspect ZFS pools.

Mutating commands accept --dry-run to print the zpool command line that
would be run without running it.`,
}

func init() {
	poolCmd.AddCommand(poolCreateCmd)
	poolCmd.AddCommand(poolDestroyCmd)
	poolCmd.AddCommand(poolImportCmd)
	poolCmd.AddCommand(poolExportCmd)
	poolCmd.AddCommand(poolSetCmd)
	poolCmd.AddCommand(poolListCmd)
	poolCmd.AddCommand(poolGetCmd)

	for _, c := range []*cobra.Command{poolCreateCmd, poolDestroyCmd, poolImportCmd, poolExportCmd, poolSetCmd} {
		c.Flags().Bool("dry-run", false, "print the command without running it")
	}
	for _, c := range []*cobra.Command{poolCreateCmd, poolDestroyCmd, poolImportCmd, poolExportCmd} {
		c.Flags().BoolP("force", "f", false, "pass -f to zpool")
	}

	addCreateFlags(poolCreateCmd)
	poolCreateCmd.Flags().Bool("pick-disks", false, "choose disks interactively from unmounted disks")
	poolCreateCmd.Flags().String("save", "", "write the pool with its resulting status to this file")

	poolImportCmd.Flags().StringArray("set", nil, "import-time property, name=value (repeatable)")

	poolDestroyCmd.Flags().BoolP("yes", "y", false, "do not ask for confirmation")
	poolExportCmd.Flags().BoolP("yes", "y", false, "do not ask for confirmation")

	poolListCmd.Flags().String("legacy-input", "", "parse a saved name:value listing instead of running zpool ('-' reads stdin)")
}

var poolCreateCmd = &cobra.Command{
	Use:   "create [manifest.yaml]",
	Short: "Create a pool",
	Long: `Create a ZFS pool from a Pool manifest or from flags.

Properties given in the manifest or with --set replace the catalog defaults
for this create; they are not merged with them. Features compatible with the
host's OS family are enabled explicitly.

Examples:
  zpoolctl pool create tank.yaml
  zpoolctl pool create --name tank --raid Mirror --disk /dev/sda --disk /dev/sdb
  zpoolctl pool create --name tank --pick-disks --set autoexpand=on --dry-run`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		pickInteractively, _ := cmd.Flags().GetBool("pick-disks")
		savePath, _ := cmd.Flags().GetString("save")

		ctx := cmd.Context()
		a, err := newApp(ctx, dryRun)
		if err != nil {
			return err
		}
		defer a.flushMetrics(ctx)

		var pool *v1alpha1.Pool
		if len(args) == 1 {
			if pool, err = loader.LoadFromFile(args[0]); err != nil {
				return fmt.Errorf("failed to load manifest: %w", err)
			}
		} else {
			if pool, err = poolFromFlags(cmd); err != nil {
				return err
			}
		}

		if pickInteractively {
			disks, err := a.manager.ListDisks(ctx)
			if err != nil {
				return err
			}
			if pool.Spec.Disks, err = pickDisks(disks); err != nil {
				return err
			}
		}

		exec, err := a.manager.CreatePool(ctx, pool)
		if exec != nil {
			if printErr := printExecution(exec); printErr != nil {
				return printErr
			}
		}
		if err != nil {
			saveStatus(pool, savePath)
			return fmt.Errorf("failed to create pool %s: %w", pool.Name, err)
		}
		if dryRun {
			return nil
		}

		observe(ctx, a, pool)
		saveStatus(pool, savePath)

		success("Pool %s created (%s)", pool.Name, pool.Status.Phase)
		return nil
	},
}

// addCreateFlags registers the flags poolFromFlags reads, except force.
func addCreateFlags(c *cobra.Command) {
	c.Flags().String("name", "", "pool name (when no manifest is given)")
	c.Flags().StringSlice("disk", nil, "disk path, in layout order (repeatable)")
	c.Flags().String("raid", v1alpha1.DefaultRaid, "raid profile (see 'zpoolctl catalog raid')")
	c.Flags().StringArray("set", nil, "override a property, name=value (repeatable)")
}

// poolFromFlags builds a Pool the way a manifest would describe it.
func poolFromFlags(cmd *cobra.Command) (*v1alpha1.Pool, error) {
	name, _ := cmd.Flags().GetString("name")
	disks, _ := cmd.Flags().GetStringSlice("disk")
	raid, _ := cmd.Flags().GetString("raid")
	force, _ := cmd.Flags().GetBool("force")
	pairs, _ := cmd.Flags().GetStringArray("set")

	if name == "" {
		return nil, fmt.Errorf("either a manifest or --name is required")
	}

	props, err := parseAssignments(pairs)
	if err != nil {
		return nil, err
	}

	pool := v1alpha1.NewPool(name)
	pool.Spec.Raid = raid
	pool.Spec.Disks = disks
	pool.Spec.Force = force
	pool.Spec.Properties = props
	pool.Normalize()
	return pool, nil
}

// observe refreshes the inventory and copies the pool's listing into its
// status. A failed refresh leaves the status as the create left it.
func observe(ctx context.Context, a *app, pool *v1alpha1.Pool) {
	snap, err := a.manager.Refresh(ctx)
	if err != nil {
		log.Warn().Err(err).Str("pool", pool.Name).Msg("Could not refresh inventory after create")
		return
	}
	if rec, ok := snap.Pool(pool.Name); ok {
		status.ObserveRecord(pool, rec)
	}
}

func saveStatus(pool *v1alpha1.Pool, path string) {
	if path == "" {
		return
	}
	if err := loader.SaveToFile(pool, path); err != nil {
		log.Error().Err(err).Str("path", path).Msg("Failed to save pool status")
	}
}

var poolDestroyCmd = &cobra.Command{
	Use:   "destroy <name>",
	Short: "Destroy a pool",
	Long: `Destroy a ZFS pool by name.

Warning: This permanently destroys all data in the pool. You are asked to
confirm unless --yes is given.

Example:
  zpoolctl pool destroy tank
  zpoolctl pool destroy tank --force --yes`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		force, _ := cmd.Flags().GetBool("force")
		yes, _ := cmd.Flags().GetBool("yes")
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		if !yes && !dryRun {
			ok, err := confirmDestructive("This will DESTROY ALL DATA in", name)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("destroy of pool %s cancelled", name)
			}
		}

		return runMutation(cmd, dryRun, func(ctx context.Context, m *zpool.Manager) (*zpool.Execution, error) {
			return m.Destroy(ctx, name, force)
		}, "Pool %s destroyed", name)
	},
}

var poolImportCmd = &cobra.Command{
	Use:   "import <name|id>",
	Short: "Import a pool",
	Long: `Import an exported ZFS pool by name or numeric identifier.

Import-time properties such as altroot or readonly can be set with --set.
When --set is used, only the given properties are passed.

Example:
  zpoolctl pool import tank
  zpoolctl pool import tank --set altroot=/mnt --set readonly=on`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		force, _ := cmd.Flags().GetBool("force")
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		pairs, _ := cmd.Flags().GetStringArray("set")

		values, err := parseAssignments(pairs)
		if err != nil {
			return err
		}

		return runMutation(cmd, dryRun, func(ctx context.Context, m *zpool.Manager) (*zpool.Execution, error) {
			overrides, err := importOverrides(m.Builder().Catalog(), values)
			if err != nil {
				return nil, err
			}
			return m.Import(ctx, name, force, overrides)
		}, "Pool %s imported", name)
	},
}

// importOverrides builds an override set holding only the given values.
// Nil values keep the catalog's import defaults.
func importOverrides(cat *catalog.Catalog, values map[string]string) ([]catalog.Property, error) {
	if values == nil {
		return nil, nil
	}

	for _, name := range slices.Sorted(maps.Keys(values)) {
		p, ok := cat.Lookup(name)
		if !ok || !p.AppliesTo(catalog.ModeImport) {
			return nil, fmt.Errorf("property %s cannot be set on import", name)
		}
	}

	overrides := make([]catalog.Property, 0, len(values))
	for _, p := range cat.ByMode(catalog.ModeImport) {
		if v, ok := values[p.Name]; ok {
			p.Default = v
			overrides = append(overrides, p)
		}
	}
	return overrides, nil
}

var poolExportCmd = &cobra.Command{
	Use:   "export <name>",
	Short: "Export a pool",
	Long: `Export a ZFS pool so it can be imported on another host.

Example:
  zpoolctl pool export tank
  zpoolctl pool export tank --force --yes`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		force, _ := cmd.Flags().GetBool("force")
		yes, _ := cmd.Flags().GetBool("yes")
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		if force && !yes && !dryRun {
			ok, err := confirm(fmt.Sprintf("Force export of %s? Open files will be unmounted.", name))
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("export of pool %s cancelled", name)
			}
		}

		return runMutation(cmd, dryRun, func(ctx context.Context, m *zpool.Manager) (*zpool.Execution, error) {
			return m.Export(ctx, name, force)
		}, "Pool %s exported", name)
	},
}

var poolSetCmd = &cobra.Command{
	Use:   "set <name> <property>=<value>",
	Short: "Set a pool property",
	Long: `Change a property on an existing pool.

Only properties the catalog marks as settable are accepted; see
'zpoolctl catalog properties --mode set'.

Example:
  zpoolctl pool set tank autoexpand=on`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		property, value, ok := strings.Cut(args[1], "=")
		if !ok || property == "" {
			return fmt.Errorf("invalid assignment %q (expected property=value)", args[1])
		}

		return runMutation(cmd, dryRun, func(ctx context.Context, m *zpool.Manager) (*zpool.Execution, error) {
			return m.SetProperty(ctx, name, property, value)
		}, "Set %s=%s on pool %s", property, value, name)
	},
}

// runMutation runs a single mutating call and prints its execution.
func runMutation(cmd *cobra.Command, dryRun bool, do func(context.Context, *zpool.Manager) (*zpool.Execution, error), done string, doneArgs ...any) error {
	ctx := cmd.Context()
	a, err := newApp(ctx, dryRun)
	if err != nil {
		return err
	}
	defer a.flushMetrics(ctx)

	exec, err := do(ctx, a.manager)
	if exec != nil {
		if printErr := printExecution(exec); printErr != nil {
			return printErr
		}
	}
	if err != nil {
		return err
	}

	if !dryRun {
		success(done, doneArgs...)
	}
	return nil
}

func printExecution(exec *zpool.Execution) error {
	formatter, err := newFormatter()
	if err != nil {
		return err
	}
	result, err := formatter.FormatExecution(exec)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	fmt.Print(result)
	return nil
}

var poolListCmd = &cobra.Command{
	Use:   "list",
	Short: "List pools",
	Long: `List imported pools with size, free space, fragmentation and health.

Output formats:
  -o table  Human-readable table (default)
  -o yaml   YAML list of pool records
  -o json   JSON list of pool records`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		legacyInput, _ := cmd.Flags().GetString("legacy-input")

		var pools []inventory.PoolRecord
		if legacyInput != "" {
			raw, err := readInput(legacyInput)
			if err != nil {
				return err
			}
			if pools, err = inventory.ParsePools(raw); err != nil {
				return fmt.Errorf("failed to parse %s: %w", legacyInput, err)
			}
		} else {
			ctx := cmd.Context()
			a, err := newApp(ctx, false)
			if err != nil {
				return err
			}
			defer a.flushMetrics(ctx)

			snap, err := a.manager.Refresh(ctx)
			if err != nil {
				return err
			}
			pools = snap.Pools
		}

		formatter, err := newFormatter()
		if err != nil {
			return err
		}
		result, err := formatter.FormatPools(pools)
		if err != nil {
			return fmt.Errorf("failed to format output: %w", err)
		}
		fmt.Print(result)

		for _, p := range pools {
			if h := status.ParseHealth(p.Status); !status.IsHealthy(h) && tableOutput() {
				warning("pool %s is %s", p.Name, h)
			}
		}
		return nil
	},
}

func readInput(path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

var poolGetCmd = &cobra.Command{
	Use:   "get <name>",
	Short: "Show a pool as a Pool resource",
	Long: `Show a single pool with its phase, health and conditions.

Example:
  zpoolctl pool get tank -o yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		ctx := cmd.Context()
		a, err := newApp(ctx, false)
		if err != nil {
			return err
		}
		defer a.flushMetrics(ctx)

		snap, err := a.manager.Refresh(ctx)
		if err != nil {
			return err
		}
		rec, ok := snap.Pool(name)
		if !ok {
			return fmt.Errorf("pool %s not found", name)
		}

		// Layout is not recoverable from the listing, so Spec stays empty.
		pool := &v1alpha1.Pool{ObjectMeta: v1alpha1.ObjectMeta{Name: name}}
		v1alpha1.SetDefaultAPIVersion(pool)
		status.ObserveRecord(pool, rec)

		formatter, err := newFormatter()
		if err != nil {
			return err
		}
		result, err := formatter.FormatPool(pool)
		if err != nil {
			return fmt.Errorf("failed to format output: %w", err)
		}
		fmt.Print(result)
		return nil
	},
}
