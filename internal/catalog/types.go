package catalog

import (
	"slices"
)

// Kind distinguishes mutable pool properties from on-disk-format features.
type Kind string

const (
	KindProperty Kind = "property" // Pool-level attribute, emitted with -O
	KindFeature  Kind = "feature"  // On-disk-format feature, emitted with -o
)

// Mode is an operation a property may be supplied to.
type Mode string

const (
	ModeCreate Mode = "create" // zpool create
	ModeImport Mode = "import" // zpool import
	ModeSet    Mode = "set"    // zpool set on an existing pool
)

// FeatureEnabled is the value that turns a feature on.
const FeatureEnabled = "enabled"

// DefaultSentinels are property values meaning "leave at tool default".
// An entry without its own OmitWhen list is skipped when its value is one
// of these.
var DefaultSentinels = []string{"", "off", "wait", "0"}

// Property is a single catalog entry. The Default field doubles as the
// value to emit: override sets are built by copying entries and replacing
// Default (see Catalog.WithValues).
type Property struct {
	Name       string   `yaml:"name" json:"name"`
	Kind       Kind     `yaml:"kind" json:"kind"`
	Default    string   `yaml:"default" json:"default"`
	Modes      []Mode   `yaml:"modes" json:"modes"`
	OSFamily   string   `yaml:"os,omitempty" json:"os,omitempty"`
	Compatible bool     `yaml:"compatible,omitempty" json:"compatible,omitempty"`
	ReadOnly   *bool    `yaml:"readOnly,omitempty" json:"readOnly,omitempty"`
	OmitWhen   []string `yaml:"omitWhen,omitempty" json:"omitWhen,omitempty"`
}

// AppliesTo reports whether the entry may be supplied to mode.
func (p Property) AppliesTo(mode Mode) bool {
	return slices.Contains(p.Modes, mode)
}

// ShouldEmit reports whether a property's value must be passed explicitly.
// Values listed in OmitWhen (or DefaultSentinels when OmitWhen is empty)
// are left to the tool.
func (p Property) ShouldEmit() bool {
	skip := p.OmitWhen
	if len(skip) == 0 {
		skip = DefaultSentinels
	}
	return !slices.Contains(skip, p.Default)
}

// AutoEnable reports whether a feature is turned on at creation for the
// given OS family. Incompatible features are never auto-enabled whatever
// their default says.
func (p Property) AutoEnable(osFamily string) bool {
	return p.Kind == KindFeature &&
		p.Compatible &&
		p.Default == FeatureEnabled &&
		p.OSFamily == osFamily &&
		IsSupportedOSFamily(osFamily)
}

// Assignment renders the entry as name=value.
func (p Property) Assignment() string {
	return p.Name + "=" + p.Default
}

func (p Property) clone() Property {
	out := p
	out.Modes = slices.Clone(p.Modes)
	out.OmitWhen = slices.Clone(p.OmitWhen)
	if p.ReadOnly != nil {
		ro := *p.ReadOnly
		out.ReadOnly = &ro
	}
	return out
}

// RaidProfile is a redundancy layout applied across a pool's devices.
type RaidProfile struct {
	Name       string `yaml:"name" json:"name"`
	MinDevices int    `yaml:"minDevices" json:"minDevices"`
	Token      string `yaml:"token" json:"token"` // Empty for a plain stripe
}

// SupportedOSFamilies lists the OS families features may be emitted for.
// Adding a family means adding parallel catalog entries for it as well.
var SupportedOSFamilies = []string{"linux"}

// IsSupportedOSFamily reports whether family is in SupportedOSFamilies.
func IsSupportedOSFamily(family string) bool {
	return slices.Contains(SupportedOSFamilies, family)
}
