package inventory

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/docker/go-units"
)

// Snapshot is the inventory as of one refresh.
type Snapshot struct {
	Pools   []PoolRecord `json:"pools" yaml:"pools"`
	Disks   []DiskRecord `json:"disks" yaml:"disks"`
	TakenAt time.Time    `json:"takenAt" yaml:"takenAt"`
}

// NewSnapshot stamps a snapshot with the current time.
func NewSnapshot(pools []PoolRecord, disks []DiskRecord) *Snapshot {
	return &Snapshot{Pools: pools, Disks: disks, TakenAt: time.Now()}
}

// Pool finds a pool by name.
func (s *Snapshot) Pool(name string) (PoolRecord, bool) {
	for _, p := range s.Pools {
		if p.Name == name {
			return p, true
		}
	}
	return PoolRecord{}, false
}

// Store holds the current snapshot.
type Store struct {
	mu      sync.RWMutex
	current *Snapshot
}

// Current returns the latest snapshot, or nil before the first refresh.
func (s *Store) Current() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Replace swaps in next and returns the previous snapshot. Records are
// never merged across snapshots.
func (s *Store) Replace(next *Snapshot) *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.current
	s.current = next
	return prev
}

// SizeBytes converts a zpool or lsblk size such as "10G" or "1.81T" to
// bytes using binary units. "-" and "" mean unknown.
func SizeBytes(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return 0, false
	}
	n, err := units.RAMInBytes(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// FragRatio converts a fragmentation column such as "12%" to 0.12.
func FragRatio(s string) (float64, bool) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "%")
	if s == "" || s == "-" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f / 100, true
}
