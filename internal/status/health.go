package status

import "strings"

// Health is a pool health state as reported by the tool.
type Health string

const (
	HealthOnline    Health = "ONLINE"
	HealthDegraded  Health = "DEGRADED"
	HealthFaulted   Health = "FAULTED"
	HealthOffline   Health = "OFFLINE"
	HealthUnavail   Health = "UNAVAIL"
	HealthRemoved   Health = "REMOVED"
	HealthSuspended Health = "SUSPENDED"
	HealthUnknown   Health = "unknown"
)

// AllHealth lists every known state, HealthUnknown last.
var AllHealth = []Health{
	HealthOnline,
	HealthDegraded,
	HealthFaulted,
	HealthOffline,
	HealthUnavail,
	HealthRemoved,
	HealthSuspended,
	HealthUnknown,
}

// ParseHealth maps a status column to a Health. Matching is case
// insensitive; anything unrecognised is HealthUnknown.
func ParseHealth(s string) Health {
	h := Health(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range AllHealth[:len(AllHealth)-1] {
		if h == known {
			return known
		}
	}
	return HealthUnknown
}

// IsHealthy returns true only for ONLINE.
func IsHealthy(h Health) bool {
	return h == HealthOnline
}

// NeedsAttention returns true for states where the pool still serves data
// but redundancy or a device is impaired.
func NeedsAttention(h Health) bool {
	return h == HealthDegraded || h == HealthRemoved
}

// IsUnavailable returns true if the pool cannot serve data.
func IsUnavailable(h Health) bool {
	switch h {
	case HealthFaulted, HealthOffline, HealthUnavail, HealthSuspended:
		return true
	}
	return false
}
