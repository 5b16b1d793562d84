package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors checked with errors.Is.
var (
	// ErrMissingArgument means a command that requires an argument got none.
	ErrMissingArgument = errors.New("missing argument")

	// ErrNotFound means a delete position outside the cached listing, or
	// an absent credential artifact at startup.
	ErrNotFound = errors.New("not found")
)

// DateFormatError means the date/time text matched none of the accepted
// grammars. The add is aborted; nothing is guessed.
type DateFormatError struct {
	Input string
}

func (e *DateFormatError) Error() string {
	return fmt.Sprintf("unrecognized date format: %q (want DD/MM/YYYY or DD/MM/YYYY HH:MM)", e.Input)
}

// InvalidNumberError means a non-integer where an integer was expected.
type InvalidNumberError struct {
	Input string
}

func (e *InvalidNumberError) Error() string {
	return fmt.Sprintf("not a number: %q", e.Input)
}

// RemoteCalendarError wraps any failure from the remote calendar call:
// network, authorization, quota, malformed response. Never retried.
type RemoteCalendarError struct {
	Op  string // "create", "list" or "delete"
	Err error
}

func (e *RemoteCalendarError) Error() string {
	return fmt.Sprintf("calendar %s: %v", e.Op, e.Err)
}

func (e *RemoteCalendarError) Unwrap() error {
	return e.Err
}
