package output

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/jbweber/zpoolctl/api/v1alpha1"
	"github.com/jbweber/zpoolctl/internal/catalog"
	"github.com/jbweber/zpoolctl/internal/inventory"
	"github.com/jbweber/zpoolctl/internal/zpool"
)

// YAMLFormatter formats resources as YAML.
type YAMLFormatter struct{}

func marshalYAML(v any, what string) (string, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to marshal %s to YAML: %w", what, err)
	}
	return string(data), nil
}

// FormatPool formats a Pool manifest as YAML.
func (f *YAMLFormatter) FormatPool(p *v1alpha1.Pool) (string, error) {
	v1alpha1.SetDefaultAPIVersion(p)
	return marshalYAML(p, "pool")
}

// FormatPools formats pool records as a YAML sequence.
func (f *YAMLFormatter) FormatPools(pools []inventory.PoolRecord) (string, error) {
	if len(pools) == 0 {
		return "[]\n", nil
	}
	return marshalYAML(pools, "pools")
}

// FormatDisks formats disks as a YAML sequence.
func (f *YAMLFormatter) FormatDisks(disks []inventory.DiskRecord) (string, error) {
	if len(disks) == 0 {
		return "[]\n", nil
	}
	return marshalYAML(disks, "disks")
}

// FormatProperties formats catalog entries as a YAML sequence.
func (f *YAMLFormatter) FormatProperties(props []catalog.Property) (string, error) {
	if len(props) == 0 {
		return "[]\n", nil
	}
	return marshalYAML(props, "properties")
}

// FormatRaidProfiles formats raid profiles as a YAML sequence.
func (f *YAMLFormatter) FormatRaidProfiles(profiles []catalog.RaidProfile) (string, error) {
	if len(profiles) == 0 {
		return "[]\n", nil
	}
	return marshalYAML(profiles, "raid profiles")
}

// FormatInventory formats a snapshot as a YAML document.
func (f *YAMLFormatter) FormatInventory(snap *inventory.Snapshot) (string, error) {
	return marshalYAML(inventoryViewOf(snap), "inventory")
}

// FormatExecution formats a command result as YAML.
func (f *YAMLFormatter) FormatExecution(exec *zpool.Execution) (string, error) {
	return marshalYAML(viewOf(exec), "execution")
}
