package output

import (
	"encoding/json"
	"fmt"

	"github.com/jbweber/zpoolctl/api/v1alpha1"
	"github.com/jbweber/zpoolctl/internal/catalog"
	"github.com/jbweber/zpoolctl/internal/inventory"
	"github.com/jbweber/zpoolctl/internal/zpool"
)

// JSONFormatter formats resources as JSON. Empty lists encode as [].
type JSONFormatter struct{}

func marshalJSON(v any, what string) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal %s to JSON: %w", what, err)
	}
	return string(data) + "\n", nil
}

// FormatPool formats a Pool manifest as JSON.
func (f *JSONFormatter) FormatPool(p *v1alpha1.Pool) (string, error) {
	v1alpha1.SetDefaultAPIVersion(p)
	return marshalJSON(p, "pool")
}

// FormatPools formats pool records as a JSON array.
func (f *JSONFormatter) FormatPools(pools []inventory.PoolRecord) (string, error) {
	if pools == nil {
		pools = []inventory.PoolRecord{}
	}
	return marshalJSON(pools, "pools")
}

// FormatDisks formats disks as a JSON array.
func (f *JSONFormatter) FormatDisks(disks []inventory.DiskRecord) (string, error) {
	if disks == nil {
		disks = []inventory.DiskRecord{}
	}
	return marshalJSON(disks, "disks")
}

// FormatProperties formats catalog entries as a JSON array.
func (f *JSONFormatter) FormatProperties(props []catalog.Property) (string, error) {
	if props == nil {
		props = []catalog.Property{}
	}
	return marshalJSON(props, "properties")
}

// FormatRaidProfiles formats raid profiles as a JSON array.
func (f *JSONFormatter) FormatRaidProfiles(profiles []catalog.RaidProfile) (string, error) {
	if profiles == nil {
		profiles = []catalog.RaidProfile{}
	}
	return marshalJSON(profiles, "raid profiles")
}

// FormatInventory formats a snapshot as a JSON object.
func (f *JSONFormatter) FormatInventory(snap *inventory.Snapshot) (string, error) {
	return marshalJSON(inventoryViewOf(snap), "inventory")
}

// FormatExecution formats a command result as JSON.
func (f *JSONFormatter) FormatExecution(exec *zpool.Execution) (string, error) {
	return marshalJSON(viewOf(exec), "execution")
}
