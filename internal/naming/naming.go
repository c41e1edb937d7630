// Package naming validates pool and dataset names against the grammar
// accepted by the underlying volume manager.
//
// Validation is pure: it performs no I/O and must run before any external
// command is issued. Failures are reported as a closed set of reasons so
// callers can branch on them instead of matching message text.
package naming

import (
	"fmt"
	"regexp"
	"strings"
)

// Kind selects which naming rules apply.
type Kind string

const (
	KindPool    Kind = "pool"    // Storage pool name
	KindDataset Kind = "dataset" // Filesystem or volume inside a pool
)

// Reason is the outcome of a validation. The zero value is Valid.
type Reason string

const (
	Valid               Reason = ""
	EmptyName           Reason = "EmptyName"
	IllegalCharacter    Reason = "IllegalCharacter"
	MustStartWithLetter Reason = "MustStartWithLetter"
	ReservedPrefix      Reason = "ReservedPrefix"
)

// ReservedPrefixes are vdev keywords a pool name may not begin with.
var ReservedPrefixes = []string{"log", "mirror", "raidz", "raidz2", "raidz3", "spare"}

var namePattern = regexp.MustCompile(`^[a-zA-Z0-9_\-.:]+$`)

// Validate checks name against the rules for kind.
//
// Checks run in a fixed order: empty, character set, leading letter, and
// (pools only) reserved prefix. The first failing check wins.
func Validate(name string, kind Kind) Reason {
	if name == "" {
		return EmptyName
	}

	if !namePattern.MatchString(name) {
		return IllegalCharacter
	}

	if !isLetter(name[0]) {
		return MustStartWithLetter
	}

	if kind == KindPool {
		for _, prefix := range ReservedPrefixes {
			if strings.HasPrefix(name, prefix) {
				return ReservedPrefix
			}
		}
	}

	return Valid
}

// Check is Validate returning an error for anything but Valid.
func Check(name string, kind Kind) error {
	if reason := Validate(name, kind); reason != Valid {
		return &Error{Name: name, Kind: kind, Reason: reason}
	}
	return nil
}

// Error describes a rejected name.
type Error struct {
	Name   string
	Kind   Kind
	Reason Reason
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid %s name %q: %s", e.Kind, e.Name, e.Reason.Message())
}

// Message returns a human-readable description of the reason.
func (r Reason) Message() string {
	switch r {
	case Valid:
		return "valid"
	case EmptyName:
		return "name must not be empty"
	case IllegalCharacter:
		return "only letters, digits, underscore, hyphen, dot and colon are allowed"
	case MustStartWithLetter:
		return "name must start with a letter"
	case ReservedPrefix:
		return fmt.Sprintf("name must not begin with a reserved word (%s)", strings.Join(ReservedPrefixes, ", "))
	default:
		return string(r)
	}
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
