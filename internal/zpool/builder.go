package zpool

import (
	"fmt"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/jbweber/zpoolctl/internal/catalog"
	"github.com/jbweber/zpoolctl/internal/naming"
)

// Args is an argument vector for the zpool binary, excluding the program.
type Args []string

// String renders the vector shell-quoted for display. It is never handed to
// a shell.
func (a Args) String() string {
	return shellquote.Join(a...)
}

// Direction selects import or export.
type Direction string

const (
	DirectionImport Direction = "import"
	DirectionExport Direction = "export"
)

// BuilderOptions tune argv synthesis.
type BuilderOptions struct {
	// OSFamily gates feature emission. Empty means "linux".
	OSFamily string
	// Strict rejects creates with fewer disks than the raid profile needs.
	// Off by default: the tool performs its own check.
	Strict bool
}

// Builder synthesizes zpool argument vectors. It is safe for concurrent use
// because it holds only immutable state.
type Builder struct {
	catalog  *catalog.Catalog
	osFamily string
	strict   bool
}

// NewBuilder creates a Builder over cat.
func NewBuilder(cat *catalog.Catalog, opts BuilderOptions) *Builder {
	family := strings.ToLower(strings.TrimSpace(opts.OSFamily))
	if family == "" {
		family = "linux"
	}
	return &Builder{
		catalog:  cat,
		osFamily: family,
		strict:   opts.Strict,
	}
}

// Catalog returns the catalog the builder reads from.
func (b *Builder) Catalog() *catalog.Catalog {
	return b.catalog
}

// OSFamily returns the family features are gated on.
func (b *Builder) OSFamily() string {
	return b.osFamily
}

// Strict reports whether raid minimum device counts are enforced.
func (b *Builder) Strict() bool {
	return b.strict
}

// CreateRequest describes a new pool.
type CreateRequest struct {
	Name        string
	Disks       []string // Order decides layout within the redundancy group
	RaidProfile string   // Display name, e.g. "Mirror"
	Force       bool
	// Overrides, when non-nil, is the complete property set to use in place
	// of the catalog defaults. It is not merged with them.
	Overrides []catalog.Property
	// Ignored names caller-supplied overrides that Create can never emit on
	// this builder, e.g. a feature not set to "enabled".
	Ignored []string
}

// Create builds the argv for zpool create.
func (b *Builder) Create(req CreateRequest) (Args, error) {
	const op = "create"

	if err := naming.Check(req.Name, naming.KindPool); err != nil {
		return nil, rejectName(op, err)
	}

	if len(req.Disks) == 0 {
		return nil, reject(op, ReasonNoDisks, "at least one disk is required")
	}
	for i, d := range req.Disks {
		if strings.TrimSpace(d) == "" {
			return nil, reject(op, ReasonInvalidDisk, "disk %d is empty", i)
		}
		// zpool permutes its arguments, so a leading dash would parse as an option.
		if strings.HasPrefix(d, "-") {
			return nil, reject(op, ReasonInvalidDisk, "disk %q looks like an option", d)
		}
	}

	profile, ok := b.catalog.RaidProfile(req.RaidProfile)
	if !ok {
		return nil, reject(op, ReasonUnknownRaidProfile, "unknown raid profile %q", req.RaidProfile)
	}
	if b.strict && len(req.Disks) < profile.MinDevices {
		return nil, reject(op, ReasonInsufficientDevices,
			"%s needs at least %d disks, got %d", profile.Name, profile.MinDevices, len(req.Disks))
	}

	args := Args{"create"}
	if req.Force {
		args = append(args, "-f")
	}

	active := req.Overrides
	if active == nil {
		active = b.catalog.Properties()
	}

	for _, p := range active {
		if p.Kind == catalog.KindProperty && p.AppliesTo(catalog.ModeCreate) && p.ShouldEmit() {
			args = append(args, "-O", p.Assignment())
		}
	}
	for _, p := range active {
		if p.AppliesTo(catalog.ModeCreate) && p.AutoEnable(b.osFamily) {
			args = append(args, "-o", p.Assignment())
		}
	}

	args = append(args, req.Name)
	if profile.Token != "" {
		args = append(args, profile.Token)
	}
	args = append(args, req.Disks...)

	return args, nil
}

// neverEmitted reports whether Create drops p whatever its value. Property
// entries at a sentinel value are not counted: leaving them out is what the
// sentinel asks for.
func (b *Builder) neverEmitted(p catalog.Property) bool {
	if !p.AppliesTo(catalog.ModeCreate) {
		return true
	}
	return p.Kind == catalog.KindFeature && !p.AutoEnable(b.osFamily)
}

// Destroy builds the argv for zpool destroy.
func (b *Builder) Destroy(name string, force bool) (Args, error) {
	if name == "" {
		return nil, reject("destroy", ReasonEmptyName, "pool name is required")
	}

	args := Args{"destroy"}
	if force {
		args = append(args, "-f")
	}
	return append(args, name), nil
}

// ImportExport builds the argv for zpool import or export. The force flag
// is passed through identically for both directions.
func (b *Builder) ImportExport(name string, dir Direction, force bool) (Args, error) {
	switch dir {
	case DirectionImport, DirectionExport:
	default:
		return nil, fmt.Errorf("invalid direction %q (must be import or export)", dir)
	}

	if name == "" {
		return nil, reject(string(dir), ReasonEmptyName, "pool name is required")
	}

	args := Args{string(dir)}
	if force {
		args = append(args, "-f")
	}
	return append(args, name), nil
}

// Import builds the argv for zpool import with import-time properties.
// A nil overrides slice uses the catalog defaults, which emit nothing.
func (b *Builder) Import(name string, force bool, overrides []catalog.Property) (Args, error) {
	args, err := b.ImportExport(name, DirectionImport, force)
	if err != nil {
		return nil, err
	}

	active := overrides
	if active == nil {
		active = b.catalog.ByMode(catalog.ModeImport)
	}

	var opts Args
	for _, p := range active {
		if p.Kind == catalog.KindProperty && p.AppliesTo(catalog.ModeImport) && p.ShouldEmit() {
			opts = append(opts, "-o", p.Assignment())
		}
	}
	if len(opts) == 0 {
		return args, nil
	}

	// Options go between the flags and the trailing pool name.
	out := make(Args, 0, len(args)+len(opts))
	out = append(out, args[:len(args)-1]...)
	out = append(out, opts...)
	return append(out, name), nil
}

// Set builds the argv for zpool set on an existing pool.
func (b *Builder) Set(name, property, value string) (Args, error) {
	const op = "set"

	if name == "" {
		return nil, reject(op, ReasonEmptyName, "pool name is required")
	}

	p, ok := b.catalog.Lookup(property)
	if !ok {
		return nil, reject(op, ReasonUnknownProperty, "unknown property %q", property)
	}
	if !p.AppliesTo(catalog.ModeSet) {
		return nil, reject(op, ReasonNotSettable, "%s cannot be changed on an existing pool", property)
	}

	p.Default = value
	return Args{"set", p.Assignment(), name}, nil
}
