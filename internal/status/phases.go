package status

import (
	"fmt"

	"github.com/jbweber/zpoolctl/api/v1alpha1"
	"github.com/jbweber/zpoolctl/internal/inventory"
)

// TransitionToCreating moves a pending pool to Creating.
func TransitionToCreating(p *v1alpha1.Pool) error {
	if p.GetPhase() != v1alpha1.PoolPhasePending && p.GetPhase() != v1alpha1.PoolPhaseFailed {
		return fmt.Errorf("cannot transition to Creating from phase %s", p.GetPhase())
	}

	p.SetPhase(v1alpha1.PoolPhaseCreating)
	SetCondition(p, v1alpha1.ConditionReady, v1alpha1.ConditionFalse, "Creating", "zpool create in progress")
	return nil
}

// MarkCreated records a successful create. The pool is assumed online until
// an inventory refresh says otherwise.
func MarkCreated(p *v1alpha1.Pool, command string) error {
	if p.GetPhase() != v1alpha1.PoolPhaseCreating {
		return fmt.Errorf("cannot mark created from phase %s", p.GetPhase())
	}

	p.Status.LastCommand = command
	SetCondition(p, v1alpha1.ConditionCreated, v1alpha1.ConditionTrue, "PoolCreated", "zpool create succeeded")
	ObserveHealth(p, HealthOnline)
	return nil
}

// TransitionToExported marks the pool as exported from this host.
func TransitionToExported(p *v1alpha1.Pool, command string) error {
	switch p.GetPhase() {
	case v1alpha1.PoolPhaseOnline, v1alpha1.PoolPhaseDegraded:
	default:
		return fmt.Errorf("cannot transition to Exported from phase %s", p.GetPhase())
	}

	p.SetPhase(v1alpha1.PoolPhaseExported)
	p.Status.LastCommand = command
	SetCondition(p, v1alpha1.ConditionReady, v1alpha1.ConditionFalse, "Exported", "pool exported")
	return nil
}

// TransitionToDestroyed marks the pool as destroyed. Allowed from any phase
// because destroy may target a pool zpoolctl never observed.
func TransitionToDestroyed(p *v1alpha1.Pool, command string) {
	p.SetPhase(v1alpha1.PoolPhaseDestroyed)
	p.Status.LastCommand = command
	p.Status.Health = ""
	SetCondition(p, v1alpha1.ConditionReady, v1alpha1.ConditionFalse, "Destroyed", "pool destroyed")
}

// TransitionToFailed records a failed operation.
func TransitionToFailed(p *v1alpha1.Pool, reason string, err error) {
	p.SetPhase(v1alpha1.PoolPhaseFailed)
	SetCondition(p, v1alpha1.ConditionReady, v1alpha1.ConditionFalse, reason, err.Error())
}

// ObserveHealth updates phase and the Ready condition from a health state.
func ObserveHealth(p *v1alpha1.Pool, h Health) {
	p.Status.Health = string(h)

	switch {
	case IsHealthy(h):
		p.SetPhase(v1alpha1.PoolPhaseOnline)
		SetCondition(p, v1alpha1.ConditionReady, v1alpha1.ConditionTrue, "Online", "pool is online")
	case NeedsAttention(h):
		p.SetPhase(v1alpha1.PoolPhaseDegraded)
		SetCondition(p, v1alpha1.ConditionReady, v1alpha1.ConditionTrue, string(h), "pool is serving data with reduced redundancy")
	default:
		p.SetPhase(v1alpha1.PoolPhaseFailed)
		SetCondition(p, v1alpha1.ConditionReady, v1alpha1.ConditionFalse, string(h), fmt.Sprintf("pool health is %s", h))
	}
}

// ObserveRecord copies a listing record into the pool status. It returns
// false, leaving the status untouched, when the record is for another pool.
func ObserveRecord(p *v1alpha1.Pool, rec inventory.PoolRecord) bool {
	if rec.Name != p.Name {
		return false
	}

	p.Status.Size = rec.Size
	p.Status.Free = rec.Free
	p.Status.Frag = rec.Frag
	ObserveHealth(p, ParseHealth(rec.Status))
	return true
}

// IsTerminal returns true if no further operation is expected without
// operator action.
func IsTerminal(phase v1alpha1.PoolPhase) bool {
	return phase == v1alpha1.PoolPhaseDestroyed || phase == v1alpha1.PoolPhaseFailed
}
