package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbweber/zpoolctl/internal/executor"
	"github.com/jbweber/zpoolctl/internal/inventory"
)

func TestMetrics_ObserveCommand(t *testing.T) {
	m := New()

	m.ObserveCommand("create", executor.OutcomeOK, 200*time.Millisecond)
	m.ObserveCommand("create", executor.OutcomeOK, 100*time.Millisecond)
	m.ObserveCommand("create", executor.OutcomeFailed, time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.commandsTotal.WithLabelValues("create", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.commandsTotal.WithLabelValues("create", "failed")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.commandDuration))
}

func TestMetrics_ObserveSnapshot(t *testing.T) {
	m := New()

	snap := &inventory.Snapshot{
		Pools: []inventory.PoolRecord{
			{Name: "tank", Size: "10G", Free: "4G", Frag: "12%", Status: "ONLINE"},
			{Name: "scratch", Size: "-", Free: "-", Frag: "-", Status: "DEGRADED"},
		},
		Disks:   []inventory.DiskRecord{{Name: "/dev/sda"}, {Name: "/dev/sdb"}},
		TakenAt: time.Unix(1700000000, 0),
	}
	m.ObserveSnapshot(snap)

	assert.Equal(t, float64(10<<30), testutil.ToFloat64(m.poolSize.WithLabelValues("tank")))
	assert.Equal(t, float64(4<<30), testutil.ToFloat64(m.poolFree.WithLabelValues("tank")))
	assert.InDelta(t, 0.12, testutil.ToFloat64(m.poolFrag.WithLabelValues("tank")), 1e-9)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.poolHealthy.WithLabelValues("tank", "ONLINE")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.poolHealthy.WithLabelValues("scratch", "DEGRADED")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.disks))
	assert.Equal(t, 1700000000.0, testutil.ToFloat64(m.lastRefresh))

	// Unknown sizes are not reported.
	assert.Equal(t, 1, testutil.CollectAndCount(m.poolSize))

	// A pool that disappears is dropped.
	m.ObserveSnapshot(&inventory.Snapshot{Pools: snap.Pools[:1], TakenAt: snap.TakenAt})
	assert.Equal(t, 1, testutil.CollectAndCount(m.poolHealthy))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.disks))
}

func TestMetrics_WriteTextfile(t *testing.T) {
	m := New()
	m.ObserveCommand("list", executor.OutcomeOK, 10*time.Millisecond)
	m.ObserveSnapshot(&inventory.Snapshot{
		Pools: []inventory.PoolRecord{{Name: "tank", Size: "1T", Free: "512G", Frag: "3%", Status: "ONLINE"}},
	})

	path := filepath.Join(t.TempDir(), "zpoolctl.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)

	for _, want := range []string{
		`zpoolctl_commands_total{outcome="ok",verb="list"} 1`,
		`zpoolctl_pool_healthy{pool="tank",status="ONLINE"} 1`,
		"# TYPE zpoolctl_pool_size_bytes gauge",
	} {
		assert.True(t, strings.Contains(out, want), "textfile missing %q:\n%s", want, out)
	}
}

func TestMetrics_WriteTextfile_BadPath(t *testing.T) {
	m := New()
	err := m.WriteTextfile(filepath.Join(t.TempDir(), "missing", "zpoolctl.prom"))
	assert.Error(t, err)
}
