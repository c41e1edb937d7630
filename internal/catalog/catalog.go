// Package catalog holds the read-only tables of pool properties,
// on-disk-format features and redundancy profiles.
//
// A Catalog is built once (Default decodes the embedded defaults.yaml on
// first use) and never changes afterwards. Every accessor returns copies so
// callers cannot mutate shared state; override sets are derived with
// WithValues instead of editing entries in place.
package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the built-in catalog. It panics if the embedded data is
// invalid, which is covered by tests.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Parse(defaultsYAML)
		if err != nil {
			panic(fmt.Sprintf("catalog: invalid embedded defaults: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Catalog is an immutable set of properties and raid profiles.
type Catalog struct {
	properties []Property
	profiles   []RaidProfile
	byName     map[string]int
}

type document struct {
	Properties   []Property    `yaml:"properties"`
	RaidProfiles []RaidProfile `yaml:"raidProfiles"`
}

// Parse decodes and validates catalog YAML.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	return New(doc.Properties, doc.RaidProfiles)
}

// New builds a catalog from explicit tables. The inputs are copied.
func New(properties []Property, profiles []RaidProfile) (*Catalog, error) {
	c := &Catalog{
		properties: make([]Property, 0, len(properties)),
		profiles:   slices.Clone(profiles),
		byName:     make(map[string]int, len(properties)),
	}

	for i, p := range properties {
		if err := validateProperty(p); err != nil {
			return nil, fmt.Errorf("properties[%d]: %w", i, err)
		}
		if _, dup := c.byName[p.Name]; dup {
			return nil, fmt.Errorf("properties[%d]: duplicate name %q", i, p.Name)
		}
		c.byName[p.Name] = len(c.properties)
		c.properties = append(c.properties, p.clone())
	}

	if len(c.profiles) == 0 {
		return nil, errors.New("at least one raid profile is required")
	}
	seen := make(map[string]bool, len(c.profiles))
	for i, rp := range c.profiles {
		if rp.Name == "" {
			return nil, fmt.Errorf("raidProfiles[%d]: name is required", i)
		}
		if rp.MinDevices < 1 {
			return nil, fmt.Errorf("raidProfiles[%d]: minDevices must be >= 1, got %d", i, rp.MinDevices)
		}
		if seen[rp.Name] {
			return nil, fmt.Errorf("raidProfiles[%d]: duplicate name %q", i, rp.Name)
		}
		seen[rp.Name] = true
	}

	return c, nil
}

func validateProperty(p Property) error {
	if p.Name == "" {
		return errors.New("name is required")
	}
	switch p.Kind {
	case KindProperty, KindFeature:
	default:
		return fmt.Errorf("%s: invalid kind %q (must be property or feature)", p.Name, p.Kind)
	}
	if len(p.Modes) == 0 {
		return fmt.Errorf("%s: at least one mode is required", p.Name)
	}
	for _, m := range p.Modes {
		switch m {
		case ModeCreate, ModeImport, ModeSet:
		default:
			return fmt.Errorf("%s: invalid mode %q", p.Name, m)
		}
	}
	if p.Kind == KindFeature && p.OSFamily == "" {
		return fmt.Errorf("%s: features must name an os family", p.Name)
	}
	return nil
}

// Properties returns every entry, properties and features, in catalog order.
func (c *Catalog) Properties() []Property {
	return cloneAll(c.properties)
}

// Features returns only the feature entries.
func (c *Catalog) Features() []Property {
	return c.filter(func(p Property) bool { return p.Kind == KindFeature })
}

// ByMode returns the entries applicable to mode.
func (c *Catalog) ByMode(mode Mode) []Property {
	return c.filter(func(p Property) bool { return p.AppliesTo(mode) })
}

// ByOSFamily returns the features targeting family.
func (c *Catalog) ByOSFamily(family string) []Property {
	return c.filter(func(p Property) bool { return p.Kind == KindFeature && p.OSFamily == family })
}

// Lookup finds an entry by name.
func (c *Catalog) Lookup(name string) (Property, bool) {
	i, ok := c.byName[name]
	if !ok {
		return Property{}, false
	}
	return c.properties[i].clone(), true
}

// RaidProfiles returns the redundancy profiles in catalog order.
func (c *Catalog) RaidProfiles() []RaidProfile {
	return slices.Clone(c.profiles)
}

// RaidProfile finds a redundancy profile by its display name.
func (c *Catalog) RaidProfile(name string) (RaidProfile, bool) {
	for _, rp := range c.profiles {
		if rp.Name == name {
			return rp, true
		}
	}
	return RaidProfile{}, false
}

// WithValues returns a full copy of the catalog entries with the values of
// the named entries replaced. The result is meant to be passed as an
// override set, which replaces the defaults rather than merging with them.
func (c *Catalog) WithValues(values map[string]string) ([]Property, error) {
	for name := range values {
		if _, ok := c.byName[name]; !ok {
			return nil, fmt.Errorf("unknown property %q", name)
		}
	}

	out := cloneAll(c.properties)
	for i := range out {
		if v, ok := values[out[i].Name]; ok {
			out[i].Default = v
		}
	}
	return out, nil
}

func (c *Catalog) filter(keep func(Property) bool) []Property {
	var out []Property
	for _, p := range c.properties {
		if keep(p) {
			out = append(out, p.clone())
		}
	}
	return out
}

func cloneAll(in []Property) []Property {
	out := make([]Property, len(in))
	for i, p := range in {
		out[i] = p.clone()
	}
	return out
}
