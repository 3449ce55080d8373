package dispatch

import (
	"errors"
	"fmt"
)

// ErrExit is returned for an exit token. The shell stops on it; outside
// the shell it is a no-op.
var ErrExit = errors.New("exit requested")

// UsageError reports a call with missing or malformed arguments.
type UsageError struct {
	Command string
	Message string
	Usage   string // may be empty
	Err     error
}

func (e *UsageError) Error() string {
	if e.Usage == "" {
		return e.Message
	}
	return fmt.Sprintf("%s (usage: %s)", e.Message, e.Usage)
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

// UnknownCommandError reports a command name missing from the table.
type UnknownCommandError struct {
	Name string
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("Unknown command: %s", e.Name)
}

// APIError carries the error text of a failed gateway call.
type APIError struct {
	Op      string
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// InternalError wraps a panic recovered while running a handler.
type InternalError struct {
	Command string
	Value   interface{}
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("unexpected error in %s: %v", e.Command, e.Value)
}
