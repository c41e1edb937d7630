package v1alpha1

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewPool(t *testing.T) {
	p := NewPool("tank")

	if p.APIVersion != "zpoolctl.cofront.xyz/v1alpha1" {
		t.Errorf("APIVersion = %s, want zpoolctl.cofront.xyz/v1alpha1", p.APIVersion)
	}
	if p.Kind != "Pool" {
		t.Errorf("Kind = %s, want Pool", p.Kind)
	}
	if p.GetName() != "tank" {
		t.Errorf("GetName() = %s, want tank", p.GetName())
	}
	if p.Spec.Raid != DefaultRaid {
		t.Errorf("Spec.Raid = %s, want %s", p.Spec.Raid, DefaultRaid)
	}
	if p.GetPhase() != PoolPhasePending {
		t.Errorf("GetPhase() = %s, want Pending", p.GetPhase())
	}
}

func TestSetDefaultAPIVersion(t *testing.T) {
	tests := []struct {
		name     string
		pool     *Pool
		wantAPI  string
		wantKind string
	}{
		{
			name:     "missing both",
			pool:     &Pool{},
			wantAPI:  "zpoolctl.cofront.xyz/v1alpha1",
			wantKind: "Pool",
		},
		{
			name:     "existing values kept",
			pool:     &Pool{TypeMeta: TypeMeta{APIVersion: "other/v2", Kind: "Other"}},
			wantAPI:  "other/v2",
			wantKind: "Other",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SetDefaultAPIVersion(tt.pool)
			if tt.pool.APIVersion != tt.wantAPI {
				t.Errorf("APIVersion = %s, want %s", tt.pool.APIVersion, tt.wantAPI)
			}
			if tt.pool.Kind != tt.wantKind {
				t.Errorf("Kind = %s, want %s", tt.pool.Kind, tt.wantKind)
			}
		})
	}
}

func TestPool_GetRaid(t *testing.T) {
	p := &Pool{}
	if got := p.GetRaid(); got != "Stripe" {
		t.Errorf("GetRaid() = %s, want Stripe", got)
	}
	p.Spec.Raid = "Mirror"
	if got := p.GetRaid(); got != "Mirror" {
		t.Errorf("GetRaid() = %s, want Mirror", got)
	}
}

func TestPool_Normalize(t *testing.T) {
	p := &Pool{
		ObjectMeta: ObjectMeta{Name: "  tank "},
		Spec: PoolSpec{
			Raid:  " Mirror",
			Disks: []string{" /dev/sda", "", "/dev/sdb  ", "   "},
		},
	}
	p.Normalize()

	if p.Name != "tank" {
		t.Errorf("Name = %q, want tank", p.Name)
	}
	if p.Spec.Raid != "Mirror" {
		t.Errorf("Raid = %q, want Mirror", p.Spec.Raid)
	}
	if diff := cmp.Diff([]string{"/dev/sda", "/dev/sdb"}, p.Spec.Disks); diff != "" {
		t.Errorf("Disks mismatch (-want +got):\n%s", diff)
	}
}

func TestPool_DeepCopy(t *testing.T) {
	p := NewPool("tank")
	p.Spec.Disks = []string{"/dev/sda"}
	p.Spec.Properties = map[string]string{"autoexpand": "on"}
	p.Status.Conditions = []Condition{{Type: ConditionReady, Status: ConditionTrue}}

	cp := p.DeepCopy()
	cp.Spec.Disks[0] = "/dev/sdz"
	cp.Spec.Properties["autoexpand"] = "off"
	cp.Status.Conditions[0].Status = ConditionFalse

	if p.Spec.Disks[0] != "/dev/sda" {
		t.Error("DeepCopy() shares Disks")
	}
	if p.Spec.Properties["autoexpand"] != "on" {
		t.Error("DeepCopy() shares Properties")
	}
	if p.Status.Conditions[0].Status != ConditionTrue {
		t.Error("DeepCopy() shares Conditions")
	}

	var nilPool *Pool
	if nilPool.DeepCopy() != nil {
		t.Error("DeepCopy() of nil should be nil")
	}
}
