package keyboard

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by engine operations. Callers match them with
// errors.Is; operations wrap them with the offending input.
var (
	// ErrDeviceUnavailable means the gadget device node is missing, not
	// accessible, or rejected a write.
	ErrDeviceUnavailable = errors.New("hid device unavailable")

	// ErrNotConnected means an operation needing the device ran before
	// Connect, or after Disconnect.
	ErrNotConnected = errors.New("hid device not connected")

	// ErrUnknownKey means a key name resolved to no usage code.
	ErrUnknownKey = errors.New("unknown key")

	// ErrUnknownModifier means a combination token that must be a modifier
	// resolved to no modifier bit.
	ErrUnknownModifier = errors.New("unknown modifier")

	// ErrMaxKeys means all six report slots are occupied and another key
	// cannot be held.
	ErrMaxKeys = errors.New("too many keys held")

	// ErrInvalidCombination means a combination string had fewer than two
	// "+"-separated tokens.
	ErrInvalidCombination = errors.New("invalid key combination")

	// ErrInvalidReport means a raw report request could not be encoded,
	// for example more than six key codes.
	ErrInvalidReport = errors.New("invalid report")
)

// SequenceError wraps the failure of a single sequence action together with
// its zero-based position, so callers can tell which step aborted the run.
type SequenceError struct {
	Index int
	Err   error
}

func (e *SequenceError) Error() string {
	return fmt.Sprintf("sequence action %d: %v", e.Index, e.Err)
}

func (e *SequenceError) Unwrap() error { return e.Err }
