package zpool

import (
	"errors"
	"fmt"

	"github.com/jbweber/zpoolctl/internal/naming"
)

var (
	// ErrRejected matches every builder rejection.
	ErrRejected = errors.New("rejected")
	// ErrValidation matches failures detected before any command runs.
	ErrValidation = errors.New("validation failed")
)

// Reason tags why a request was rejected.
type Reason string

const (
	ReasonEmptyName           Reason = Reason(naming.EmptyName)
	ReasonIllegalCharacter    Reason = Reason(naming.IllegalCharacter)
	ReasonMustStartWithLetter Reason = Reason(naming.MustStartWithLetter)
	ReasonReservedPrefix      Reason = Reason(naming.ReservedPrefix)
	ReasonNoDisks             Reason = "NoDisks"
	ReasonInvalidDisk         Reason = "InvalidDisk"
	ReasonUnknownRaidProfile  Reason = "UnknownRaidProfile"
	ReasonInsufficientDevices Reason = "InsufficientDevices"
	ReasonUnknownProperty     Reason = "UnknownProperty"
	ReasonNotSettable         Reason = "NotSettable"
)

// RejectedError is returned by the Builder when a request is structurally
// invalid. Nothing has been executed when it is returned.
type RejectedError struct {
	Op     string
	Reason Reason
	Detail string
}

func (e *RejectedError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s rejected: %s", e.Op, e.Reason)
	}
	return fmt.Sprintf("%s rejected: %s: %s", e.Op, e.Reason, e.Detail)
}

// Is lets errors.Is match ErrRejected and ErrValidation.
func (e *RejectedError) Is(target error) bool {
	return target == ErrRejected || target == ErrValidation
}

// ReasonOf extracts the rejection reason from err, or "" if err is not a
// rejection.
func ReasonOf(err error) Reason {
	var re *RejectedError
	if errors.As(err, &re) {
		return re.Reason
	}
	return ""
}

func reject(op string, reason Reason, format string, args ...any) error {
	return &RejectedError{Op: op, Reason: reason, Detail: fmt.Sprintf(format, args...)}
}

func rejectName(op string, err error) error {
	var ne *naming.Error
	if errors.As(err, &ne) {
		return &RejectedError{Op: op, Reason: Reason(ne.Reason), Detail: ne.Error()}
	}
	return err
}
