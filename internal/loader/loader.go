// Package loader provides functions for loading Pool manifests from YAML
// files.
package loader

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jbweber/zpoolctl/api/v1alpha1"
	"github.com/jbweber/zpoolctl/internal/naming"
)

// LoadFromFile loads a Pool manifest from a YAML file.
// The file must be in the zpoolctl.cofront.xyz/v1alpha1 format.
func LoadFromFile(path string) (*v1alpha1.Pool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	return LoadFromYAML(data)
}

// LoadFromYAML loads a Pool manifest from YAML bytes.
func LoadFromYAML(data []byte) (*v1alpha1.Pool, error) {
	var p v1alpha1.Pool
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal YAML: %w", err)
	}

	if p.APIVersion == "" {
		return nil, fmt.Errorf("missing required field: apiVersion")
	}
	if p.Kind == "" {
		return nil, fmt.Errorf("missing required field: kind")
	}

	if p.APIVersion != v1alpha1.APIVersion() {
		return nil, fmt.Errorf("unsupported apiVersion: %s (expected: %s)", p.APIVersion, v1alpha1.APIVersion())
	}
	if p.Kind != v1alpha1.PoolKind {
		return nil, fmt.Errorf("unsupported kind: %s (expected: %s)", p.Kind, v1alpha1.PoolKind)
	}

	applyDefaults(&p)

	if err := validateSpec(&p); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return &p, nil
}

// SaveToFile saves a Pool to a YAML file.
func SaveToFile(p *v1alpha1.Pool, path string) error {
	v1alpha1.SetDefaultAPIVersion(p)

	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal pool to YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}

	return nil
}

func applyDefaults(p *v1alpha1.Pool) {
	p.Normalize()

	if p.Spec.Raid == "" {
		p.Spec.Raid = v1alpha1.DefaultRaid
	}
	if p.Status.Phase == "" {
		p.Status.Phase = v1alpha1.PoolPhasePending
	}
}

// validateSpec checks the manifest for required fields and consistency.
// Raid profile names and property names are checked against the catalog
// when the pool is turned into a create request, not here.
func validateSpec(p *v1alpha1.Pool) error {
	if p.Name == "" {
		return fmt.Errorf("metadata.name is required")
	}
	if err := naming.Check(p.Name, naming.KindPool); err != nil {
		return fmt.Errorf("metadata.name: %w", err)
	}

	if len(p.Spec.Disks) == 0 {
		return fmt.Errorf("spec.disks must have at least one disk")
	}

	seen := make(map[string]bool, len(p.Spec.Disks))
	for i, d := range p.Spec.Disks {
		if seen[d] {
			return fmt.Errorf("spec.disks[%d] %q is duplicated", i, d)
		}
		seen[d] = true
	}

	for name := range p.Spec.Properties {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("spec.properties has an empty property name")
		}
	}

	return nil
}
