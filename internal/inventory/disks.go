package inventory

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// LsblkArgs lists whole disks (major 3 and 8) with full paths as JSON.
var LsblkArgs = []string{"-I", "3,8", "-p", "-o", "NAME,FSTYPE,SIZE,MOUNTPOINT", "-J"}

//go:embed lsblk.schema.json
var lsblkSchema []byte

var lsblkSchemaLoader = gojsonschema.NewBytesLoader(lsblkSchema)

// DiskRecord is a block device and its partitions.
type DiskRecord struct {
	Name       string      `json:"name" yaml:"name"`
	FSType     string      `json:"fstype" yaml:"fstype"`
	Size       string      `json:"size" yaml:"size"`
	MountPoint *string     `json:"mountpoint" yaml:"mountpoint"`
	Children   []Partition `json:"children,omitempty" yaml:"children,omitempty"`
}

// Partition is a child of a DiskRecord. Deeper nesting is not kept.
type Partition struct {
	Name       string  `json:"name" yaml:"name"`
	FSType     string  `json:"fstype" yaml:"fstype"`
	Size       string  `json:"size" yaml:"size"`
	MountPoint *string `json:"mountpoint" yaml:"mountpoint"`
}

// Mounted reports whether the disk or any of its partitions is mounted.
func (d DiskRecord) Mounted() bool {
	if d.MountPoint != nil {
		return true
	}
	for _, c := range d.Children {
		if c.MountPoint != nil {
			return true
		}
	}
	return false
}

type rawTree struct {
	Blockdevices []rawDevice `json:"blockdevices"`
}

type rawDevice struct {
	Name       string      `json:"name"`
	FSType     *string     `json:"fstype"`
	Size       any         `json:"size"`
	MountPoint *string     `json:"mountpoint"`
	Children   []rawDevice `json:"children"`
}

// ParseDisks parses lsblk -J output. The document is checked against a
// schema first, so a missing blockdevices key or a wrongly typed field is
// reported as ErrMalformedInventory instead of decoding to zero values.
func ParseDisks(raw []byte) ([]DiskRecord, error) {
	result, err := gojsonschema.Validate(lsblkSchemaLoader, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInventory, err)
	}
	if !result.Valid() {
		problems := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			problems = append(problems, fmt.Sprintf("%s: %s", e.Field(), e.Description()))
		}
		return nil, fmt.Errorf("%w: %s", ErrMalformedInventory, strings.Join(problems, "; "))
	}

	var tree rawTree
	if err := json.Unmarshal(raw, &tree); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInventory, err)
	}

	disks := make([]DiskRecord, 0, len(tree.Blockdevices))
	for _, d := range tree.Blockdevices {
		rec := DiskRecord{
			Name:       d.Name,
			FSType:     deref(d.FSType),
			Size:       sizeString(d.Size),
			MountPoint: mountPoint(d.MountPoint),
		}
		for _, c := range d.Children {
			rec.Children = append(rec.Children, Partition{
				Name:       c.Name,
				FSType:     deref(c.FSType),
				Size:       sizeString(c.Size),
				MountPoint: mountPoint(c.MountPoint),
			})
		}
		disks = append(disks, rec)
	}

	return disks, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// mountPoint maps both null and "" to nil.
func mountPoint(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	v := *s
	return &v
}

// sizeString accepts lsblk's human string or, with --bytes, a number.
func sizeString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return ""
	}
}
