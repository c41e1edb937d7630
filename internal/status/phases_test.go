package status

import (
	"errors"
	"testing"

	"github.com/jbweber/zpoolctl/api/v1alpha1"
	"github.com/jbweber/zpoolctl/internal/inventory"
)

func TestTransitionToCreating(t *testing.T) {
	tests := []struct {
		name      string
		phase     v1alpha1.PoolPhase
		wantError bool
	}{
		{name: "from Pending", phase: v1alpha1.PoolPhasePending},
		{name: "retry after Failed", phase: v1alpha1.PoolPhaseFailed},
		{name: "from Online", phase: v1alpha1.PoolPhaseOnline, wantError: true},
		{name: "from Destroyed", phase: v1alpha1.PoolPhaseDestroyed, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := v1alpha1.NewPool("tank")
			p.SetPhase(tt.phase)

			err := TransitionToCreating(p)

			if tt.wantError {
				if err == nil {
					t.Error("Expected error but got nil")
				}
				if p.GetPhase() != tt.phase {
					t.Errorf("Phase should not change on error, got %s", p.GetPhase())
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if p.GetPhase() != v1alpha1.PoolPhaseCreating {
				t.Errorf("Expected phase Creating, got %s", p.GetPhase())
			}
			if !IsConditionFalse(p, v1alpha1.ConditionReady) {
				t.Error("Ready should be False while creating")
			}
		})
	}
}

func TestMarkCreated(t *testing.T) {
	p := v1alpha1.NewPool("tank")

	if err := MarkCreated(p, "zpool create tank /dev/sda"); err == nil {
		t.Error("MarkCreated() from Pending should fail")
	}

	if err := TransitionToCreating(p); err != nil {
		t.Fatalf("TransitionToCreating() error = %v", err)
	}
	if err := MarkCreated(p, "zpool create tank /dev/sda"); err != nil {
		t.Fatalf("MarkCreated() error = %v", err)
	}

	if p.GetPhase() != v1alpha1.PoolPhaseOnline {
		t.Errorf("Phase = %s, want Online", p.GetPhase())
	}
	if p.Status.LastCommand != "zpool create tank /dev/sda" {
		t.Errorf("LastCommand = %q", p.Status.LastCommand)
	}
	if !IsConditionTrue(p, v1alpha1.ConditionCreated) || !IsConditionTrue(p, v1alpha1.ConditionReady) {
		t.Error("Created and Ready should both be True")
	}
}

func TestTransitionToExported(t *testing.T) {
	tests := []struct {
		name      string
		phase     v1alpha1.PoolPhase
		wantError bool
	}{
		{name: "from Online", phase: v1alpha1.PoolPhaseOnline},
		{name: "from Degraded", phase: v1alpha1.PoolPhaseDegraded},
		{name: "from Pending", phase: v1alpha1.PoolPhasePending, wantError: true},
		{name: "from Exported", phase: v1alpha1.PoolPhaseExported, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := v1alpha1.NewPool("tank")
			p.SetPhase(tt.phase)

			err := TransitionToExported(p, "zpool export tank")
			if (err != nil) != tt.wantError {
				t.Fatalf("TransitionToExported() error = %v, wantError %v", err, tt.wantError)
			}
			if !tt.wantError && p.GetPhase() != v1alpha1.PoolPhaseExported {
				t.Errorf("Phase = %s, want Exported", p.GetPhase())
			}
		})
	}
}

func TestTransitionToDestroyedAndFailed(t *testing.T) {
	p := v1alpha1.NewPool("tank")
	p.Status.Health = "ONLINE"

	TransitionToDestroyed(p, "zpool destroy tank")
	if p.GetPhase() != v1alpha1.PoolPhaseDestroyed || p.Status.Health != "" {
		t.Errorf("after destroy: phase=%s health=%q", p.GetPhase(), p.Status.Health)
	}
	if !IsTerminal(p.GetPhase()) {
		t.Error("Destroyed should be terminal")
	}

	q := v1alpha1.NewPool("tank")
	TransitionToFailed(q, "CreateFailed", errors.New("pool already exists"))
	cond := GetCondition(q, v1alpha1.ConditionReady)
	if cond == nil || cond.Reason != "CreateFailed" || cond.Message != "pool already exists" {
		t.Errorf("Ready condition = %+v", cond)
	}
	if !IsTerminal(q.GetPhase()) {
		t.Error("Failed should be terminal")
	}
	if IsTerminal(v1alpha1.PoolPhaseOnline) {
		t.Error("Online should not be terminal")
	}
}

func TestObserveRecord(t *testing.T) {
	tests := []struct {
		name      string
		status    string
		wantPhase v1alpha1.PoolPhase
		wantReady v1alpha1.ConditionStatus
	}{
		{name: "online", status: "ONLINE", wantPhase: v1alpha1.PoolPhaseOnline, wantReady: v1alpha1.ConditionTrue},
		{name: "degraded", status: "DEGRADED", wantPhase: v1alpha1.PoolPhaseDegraded, wantReady: v1alpha1.ConditionTrue},
		{name: "faulted", status: "FAULTED", wantPhase: v1alpha1.PoolPhaseFailed, wantReady: v1alpha1.ConditionFalse},
		{name: "garbage", status: "???", wantPhase: v1alpha1.PoolPhaseFailed, wantReady: v1alpha1.ConditionFalse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := v1alpha1.NewPool("tank")
			rec := inventory.PoolRecord{Name: "tank", Size: "10G", Free: "5G", Frag: "1%", Status: tt.status, AltRoot: "-"}

			if !ObserveRecord(p, rec) {
				t.Fatal("ObserveRecord() = false for matching pool")
			}
			if p.GetPhase() != tt.wantPhase {
				t.Errorf("Phase = %s, want %s", p.GetPhase(), tt.wantPhase)
			}
			if cond := GetCondition(p, v1alpha1.ConditionReady); cond == nil || cond.Status != tt.wantReady {
				t.Errorf("Ready = %+v, want %s", cond, tt.wantReady)
			}
			if p.Status.Size != "10G" || p.Status.Free != "5G" || p.Status.Frag != "1%" {
				t.Errorf("sizes not copied: %+v", p.Status)
			}
		})
	}

	p := v1alpha1.NewPool("tank")
	if ObserveRecord(p, inventory.PoolRecord{Name: "other", Status: "ONLINE"}) {
		t.Error("ObserveRecord() = true for another pool")
	}
	if p.GetPhase() != v1alpha1.PoolPhasePending {
		t.Errorf("Phase changed to %s for another pool's record", p.GetPhase())
	}
}
