package v1alpha1

import "strings"

const (
	// GroupName is the API group for zpoolctl resources.
	GroupName = "zpoolctl.cofront.xyz"

	// Version is the API version.
	Version = "v1alpha1"

	// PoolKind is the kind string for Pool resources.
	PoolKind = "Pool"

	// DefaultRaid is the raid profile used when a manifest names none.
	DefaultRaid = "Stripe"
)

// APIVersion returns the group/version string.
func APIVersion() string {
	return GroupName + "/" + Version
}

// NewPool creates a Pool with TypeMeta and defaults set.
func NewPool(name string) *Pool {
	return &Pool{
		TypeMeta: TypeMeta{
			APIVersion: APIVersion(),
			Kind:       PoolKind,
		},
		ObjectMeta: ObjectMeta{Name: name},
		Spec: PoolSpec{
			Raid: DefaultRaid,
		},
		Status: PoolStatus{
			Phase: PoolPhasePending,
		},
	}
}

// SetDefaultAPIVersion fills in a missing apiVersion or kind.
func SetDefaultAPIVersion(p *Pool) {
	if p.APIVersion == "" {
		p.APIVersion = APIVersion()
	}
	if p.Kind == "" {
		p.Kind = PoolKind
	}
}

// GetName returns the pool name.
func (p *Pool) GetName() string {
	return p.Name
}

// SetPhase sets the pool phase.
func (p *Pool) SetPhase(phase PoolPhase) {
	p.Status.Phase = phase
}

// GetPhase returns the pool phase.
func (p *Pool) GetPhase() PoolPhase {
	return p.Status.Phase
}

// GetRaid returns the raid profile, defaulting to DefaultRaid.
func (p *Pool) GetRaid() string {
	if p.Spec.Raid == "" {
		return DefaultRaid
	}
	return p.Spec.Raid
}

// Normalize trims whitespace from names and disk paths and drops empty
// disk entries.
func (p *Pool) Normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.Spec.Raid = strings.TrimSpace(p.Spec.Raid)

	disks := p.Spec.Disks[:0]
	for _, d := range p.Spec.Disks {
		if d = strings.TrimSpace(d); d != "" {
			disks = append(disks, d)
		}
	}
	p.Spec.Disks = disks
}
