// Package inventory parses zpool and lsblk output into typed records.
//
// Records hold the tool's strings as-is; nothing is computed. A refresh
// produces a new Snapshot that replaces the previous one wholesale, so a
// pool missing from one listing simply disappears rather than lingering.
package inventory

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMalformedRecord is returned when a pool listing line does not
	// have the expected shape.
	ErrMalformedRecord = errors.New("malformed pool record")
	// ErrMalformedInventory is returned when a device listing document is
	// structurally invalid.
	ErrMalformedInventory = errors.New("malformed device inventory")
)

// PoolRecord is one pool as reported by zpool list.
type PoolRecord struct {
	Name    string `json:"name" yaml:"name"`
	Size    string `json:"size" yaml:"size"`
	Free    string `json:"free" yaml:"free"`
	Frag    string `json:"frag" yaml:"frag"`
	Status  string `json:"status" yaml:"status"`
	AltRoot string `json:"altroot" yaml:"altroot"`
}

// PoolFields is the fixed key order of a pool record.
var PoolFields = []string{"name", "size", "free", "frag", "status", "altroot"}

// TabularColumns are the zpool list -o columns matching PoolFields.
var TabularColumns = []string{"name", "size", "free", "frag", "health", "altroot"}

// ParsePools parses the key:value listing format, one pool per line:
//
//	name:tank,size:10G,free:5G,frag:1%,status:ONLINE,altroot:-
//
// Blank lines are ignored. Any malformed line fails the whole call.
func ParsePools(raw string) ([]PoolRecord, error) {
	var pools []PoolRecord

	for i, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		tokens := strings.Split(line, ",")
		if len(tokens) != len(PoolFields) {
			return nil, fmt.Errorf("%w: line %d: expected %d fields, got %d", ErrMalformedRecord, i+1, len(PoolFields), len(tokens))
		}

		values := make([]string, len(tokens))
		for j, tok := range tokens {
			key, value, ok := strings.Cut(tok, ":")
			if !ok {
				return nil, fmt.Errorf("%w: line %d: token %q has no key:value separator", ErrMalformedRecord, i+1, tok)
			}
			if key != PoolFields[j] {
				return nil, fmt.Errorf("%w: line %d: expected key %q at position %d, got %q", ErrMalformedRecord, i+1, PoolFields[j], j+1, key)
			}
			values[j] = value
		}

		pools = append(pools, recordFrom(values))
	}

	return pools, nil
}

// ParsePoolsTabular parses scripted zpool list output, as produced by
//
//	zpool list -H -o name,size,free,frag,health,altroot
//
// Fields are tab separated. Blank lines are ignored.
func ParsePoolsTabular(raw string) ([]PoolRecord, error) {
	var pools []PoolRecord

	for i, line := range strings.Split(raw, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) != len(TabularColumns) {
			return nil, fmt.Errorf("%w: line %d: expected %d tab-separated fields, got %d", ErrMalformedRecord, i+1, len(TabularColumns), len(fields))
		}
		if fields[0] == "" {
			return nil, fmt.Errorf("%w: line %d: empty pool name", ErrMalformedRecord, i+1)
		}

		pools = append(pools, recordFrom(fields))
	}

	return pools, nil
}

// FormatPoolsLegacy renders records in the key:value listing format.
func FormatPoolsLegacy(pools []PoolRecord) string {
	var sb strings.Builder
	for _, p := range pools {
		values := []string{p.Name, p.Size, p.Free, p.Frag, p.Status, p.AltRoot}
		for j, key := range PoolFields {
			if j > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(key)
			sb.WriteByte(':')
			sb.WriteString(values[j])
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func recordFrom(values []string) PoolRecord {
	return PoolRecord{
		Name:    values[0],
		Size:    values[1],
		Free:    values[2],
		Frag:    values[3],
		Status:  values[4],
		AltRoot: values[5],
	}
}
