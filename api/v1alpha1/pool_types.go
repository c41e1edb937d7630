package v1alpha1

import (
	"maps"
	"slices"
)

// Pool is a storage pool managed by zpoolctl.
//
// Spec describes the pool to create; Status is filled in from what the
// tool reports after each operation and inventory refresh.
//
// Example manifest:
//
//	apiVersion: zpoolctl.cofront.xyz/v1alpha1
//	kind: Pool
//	metadata:
//	  name: tank
//	spec:
//	  raid: Mirror
//	  disks: [/dev/sda, /dev/sdb]
//	  properties:
//	    autoexpand: "on"
type Pool struct {
	TypeMeta   `json:",inline" yaml:",inline"`
	ObjectMeta `json:"metadata,omitempty" yaml:"metadata,omitempty"`

	Spec   PoolSpec   `json:"spec" yaml:"spec"`
	Status PoolStatus `json:"status,omitempty" yaml:"status,omitempty"`
}

// PoolSpec defines the desired pool.
type PoolSpec struct {
	// Raid is the display name of a raid profile, e.g. "RAID-Z L2".
	// Defaults to "Stripe".
	Raid string `json:"raid,omitempty" yaml:"raid,omitempty"`

	// Disks are device paths in layout order.
	Disks []string `json:"disks" yaml:"disks"`

	// Force passes -f to the tool.
	// +optional
	Force bool `json:"force,omitempty" yaml:"force,omitempty"`

	// Properties override catalog values by name. When set, the catalog
	// with these values applied replaces the defaults for the operation.
	// +optional
	Properties map[string]string `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// PoolStatus is the observed state of a pool.
type PoolStatus struct {
	Phase PoolPhase `json:"phase,omitempty" yaml:"phase,omitempty"`

	// Health is the tool's health column, e.g. ONLINE or DEGRADED.
	Health string `json:"health,omitempty" yaml:"health,omitempty"`
	Size   string `json:"size,omitempty" yaml:"size,omitempty"`
	Free   string `json:"free,omitempty" yaml:"free,omitempty"`
	Frag   string `json:"frag,omitempty" yaml:"frag,omitempty"`

	// LastCommand is the most recent command line run for this pool.
	LastCommand string `json:"lastCommand,omitempty" yaml:"lastCommand,omitempty"`

	Conditions []Condition `json:"conditions,omitempty" yaml:"conditions,omitempty"`
}

// PoolPhase is the lifecycle phase of a Pool.
type PoolPhase string

const (
	// PoolPhasePending means the manifest is loaded but nothing has run.
	PoolPhasePending PoolPhase = "Pending"
	// PoolPhaseCreating means zpool create is running.
	PoolPhaseCreating PoolPhase = "Creating"
	// PoolPhaseOnline means the pool exists and is healthy.
	PoolPhaseOnline PoolPhase = "Online"
	// PoolPhaseDegraded means the pool exists but needs attention.
	PoolPhaseDegraded PoolPhase = "Degraded"
	// PoolPhaseExported means the pool was exported from this host.
	PoolPhaseExported PoolPhase = "Exported"
	// PoolPhaseDestroyed means the pool was destroyed.
	PoolPhaseDestroyed PoolPhase = "Destroyed"
	// PoolPhaseFailed means the last operation failed.
	PoolPhaseFailed PoolPhase = "Failed"
)

// Condition types for Pool resources.
const (
	// ConditionReady is True while the pool is imported and healthy.
	ConditionReady = "Ready"
	// ConditionCreated is True once zpool create succeeded.
	ConditionCreated = "Created"
	// ConditionWarnings is True when the last command wrote to stderr
	// despite succeeding.
	ConditionWarnings = "Warnings"
)

// DeepCopy creates a deep copy of Pool.
func (in *Pool) DeepCopy() *Pool {
	if in == nil {
		return nil
	}
	out := new(Pool)
	*out = *in
	out.ObjectMeta = *in.ObjectMeta.DeepCopy()
	out.Spec.Disks = slices.Clone(in.Spec.Disks)
	out.Spec.Properties = maps.Clone(in.Spec.Properties)
	out.Status.Conditions = slices.Clone(in.Status.Conditions)
	return out
}
