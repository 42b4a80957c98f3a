package playerctl

import (
	"errors"
	"fmt"
	"strings"
)

// CommandError reports that playerctl ran and exited with a non-zero
// status. Stderr carries whatever the tool wrote, verbatim.
type CommandError struct {
	ExitCode int    // Process exit status
	Stderr   string // Raw standard error output
}

// Error returns the error message.
func (e *CommandError) Error() string {
	return fmt.Sprintf("playerctl: command failed with status %d: %s", e.ExitCode, strings.TrimSpace(e.Stderr))
}

// Is reports whether target is a CommandError with the same exit status.
//
// This allows errors.Is() matching on the status code alone, ignoring
// the stderr text.
func (e *CommandError) Is(target error) bool {
	t, ok := target.(*CommandError)
	if !ok {
		return false
	}
	return e.ExitCode == t.ExitCode
}

// ParseLengthError reports that a numeric metadata or position field did
// not parse as an unsigned integer. Value is the offending text.
type ParseLengthError struct {
	Value string // Text that failed to parse
	Err   error  // Underlying parse error
}

// Error returns the error message.
func (e *ParseLengthError) Error() string {
	return fmt.Sprintf("playerctl: invalid numeric field %q: %v", e.Value, e.Err)
}

// Unwrap returns the underlying parse error.
func (e *ParseLengthError) Unwrap() error {
	return e.Err
}

// ParseURLError reports that a percent-encoded metadata value could not
// be decoded, either because of a malformed escape sequence or because
// the decoded bytes are not valid UTF-8. Value is the offending text.
type ParseURLError struct {
	Value string // Text that failed to decode
	Err   error  // Underlying decode error
}

// Error returns the error message.
func (e *ParseURLError) Error() string {
	return fmt.Sprintf("playerctl: invalid url field %q: %v", e.Value, e.Err)
}

// Unwrap returns the underlying decode error.
func (e *ParseURLError) Unwrap() error {
	return e.Err
}

// errInvalidUTF8 marks percent-decoded values that are not valid UTF-8.
var errInvalidUTF8 = errors.New("decoded value is not valid UTF-8")
