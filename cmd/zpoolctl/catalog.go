package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jbweber/zpoolctl/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Show the property, feature and raid profile catalog",
	Long: `Show the built-in catalog that pool commands are built from.

The catalog is read-only. Use --set on pool create or import to override
values for a single command.`,
}

func init() {
	catalogCmd.AddCommand(catalogPropertiesCmd)
	catalogCmd.AddCommand(catalogFeaturesCmd)
	catalogCmd.AddCommand(catalogRaidCmd)

	catalogPropertiesCmd.Flags().String("mode", "", "only entries accepted by this operation (create, import, set)")
	catalogFeaturesCmd.Flags().String("os", "", "only features for this OS family")
}

var catalogPropertiesCmd = &cobra.Command{
	Use:   "properties",
	Short: "List pool properties and features",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, _ := cmd.Flags().GetString("mode")

		cat := catalog.Default()
		props := cat.Properties()
		if mode != "" {
			m, err := parseMode(mode)
			if err != nil {
				return err
			}
			props = cat.ByMode(m)
		}
		return printProperties(props)
	},
}

var catalogFeaturesCmd = &cobra.Command{
	Use:   "features",
	Short: "List on-disk features",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		family, _ := cmd.Flags().GetString("os")

		cat := catalog.Default()
		if family != "" {
			return printProperties(cat.ByOSFamily(strings.ToLower(family)))
		}
		return printProperties(cat.Features())
	},
}

var catalogRaidCmd = &cobra.Command{
	Use:   "raid",
	Short: "List raid profiles",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		formatter, err := newFormatter()
		if err != nil {
			return err
		}
		result, err := formatter.FormatRaidProfiles(catalog.Default().RaidProfiles())
		if err != nil {
			return fmt.Errorf("failed to format output: %w", err)
		}
		fmt.Print(result)
		return nil
	},
}

func parseMode(s string) (catalog.Mode, error) {
	switch m := catalog.Mode(strings.ToLower(s)); m {
	case catalog.ModeCreate, catalog.ModeImport, catalog.ModeSet:
		return m, nil
	default:
		return "", fmt.Errorf("invalid mode: %s (valid modes: create, import, set)", s)
	}
}

func printProperties(props []catalog.Property) error {
	formatter, err := newFormatter()
	if err != nil {
		return err
	}
	result, err := formatter.FormatProperties(props)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	fmt.Print(result)
	return nil
}
