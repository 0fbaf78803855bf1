package session

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Error taxonomy, per the component design's error handling section.
var (
	// ErrConnect indicates transport refused, DNS, TCP, or PTY allocation failure.
	ErrConnect = errors.New("connect failed")

	// ErrAuthOrAlgorithm indicates authentication failure or exhausted
	// algorithm fallback across all three transport profiles.
	ErrAuthOrAlgorithm = errors.New("authentication or algorithm negotiation failed")

	// ErrTimeout indicates no prompt was observed within the operation deadline.
	ErrTimeout = errors.New("operation timed out")

	// ErrPromptNotFound indicates the device produced output but no
	// recognizable prompt.
	ErrPromptNotFound = errors.New("prompt not found")

	// ErrConfigMode indicates the Session could not enter or exit config mode.
	ErrConfigMode = errors.New("config mode transition failed")

	// ErrCommit indicates a commit was rejected by a commit-based vendor.
	ErrCommit = errors.New("commit failed")

	// ErrCommand indicates a vendor-specific error pattern matched in output.
	ErrCommand = errors.New("command failed")

	// ErrConfirmationMismatch indicates a confirmation dialog did not match
	// the expected pattern.
	ErrConfirmationMismatch = errors.New("confirmation prompt mismatch")

	// ErrCanceled indicates the caller cancelled the operation.
	ErrCanceled = errors.New("operation canceled")

	// ErrUnsupportedDevice indicates an unknown device-type tag.
	ErrUnsupportedDevice = errors.New("unsupported device type")

	// ErrNotConnected indicates an operation was called before a successful connect.
	ErrNotConnected = errors.New("session not connected")

	// ErrBusy indicates an exclusive pool acquire found the entry in use.
	ErrBusy = errors.New("pool entry busy")

	// ErrPoolKeyExists indicates a second live PoolEntry was attempted for a key already present (I5).
	ErrPoolKeyExists = errors.New("pool entry already exists for key")

	// ErrHostKeyMismatch indicates SSH host key verification failed.
	ErrHostKeyMismatch = errors.New("host key verification failed")
)

// commandErrorPattern matches vendor-emitted error text. Unlike the other
// sentinels, this one is deliberately checked by substring match against
// device output rather than errors.Is/As, since the text originates from the
// remote device, not from Go code.
var commandErrorPattern = regexp.MustCompile(`(?i)invalid command|syntax error|unknown command|error:|failed|not found`)

// ContainsCommandError reports whether raw device output contains a
// recognized vendor error pattern.
func ContainsCommandError(output string) bool {
	return commandErrorPattern.MatchString(output)
}

// UnsupportedDeviceError reports an unknown device-type tag together with
// the set of tags the Dispatcher actually supports.
type UnsupportedDeviceError struct {
	Tag       string
	Supported []string
}

func (e *UnsupportedDeviceError) Error() string {
	return fmt.Sprintf("%s: %q (supported: %s)", ErrUnsupportedDevice, e.Tag, strings.Join(e.Supported, ", "))
}

func (e *UnsupportedDeviceError) Unwrap() error {
	return ErrUnsupportedDevice
}
