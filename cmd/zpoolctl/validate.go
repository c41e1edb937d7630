package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jbweber/zpoolctl/internal/naming"
)

var validateCmd = &cobra.Command{
	Use:   "validate <name>",
	Short: "Check a pool or dataset name",
	Long: `Check a name against the rules zpool applies, without running anything.

Exits non-zero and prints the reason when the name is rejected.

Example:
  zpoolctl validate tank
  zpoolctl validate home --kind dataset`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kindFlag, _ := cmd.Flags().GetString("kind")

		kind := naming.Kind(kindFlag)
		if kind != naming.KindPool && kind != naming.KindDataset {
			return fmt.Errorf("invalid kind: %s (valid kinds: pool, dataset)", kindFlag)
		}

		if err := naming.Check(args[0], kind); err != nil {
			return err
		}

		success("%s name %q is valid", kind, args[0])
		return nil
	},
}

func init() {
	validateCmd.Flags().String("kind", string(naming.KindPool), "name kind (pool, dataset)")
}
