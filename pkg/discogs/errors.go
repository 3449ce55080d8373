package discogs

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a non-200 response from the Discogs API.
//
// Error carries the HTTP status code and the message Discogs returned in
// the JSON body, if any.
type Error struct {
	StatusCode int    // HTTP status code
	Message    string // Message from the response body (may be empty)
}

// Error returns the error message.
func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("discogs: status %d", e.StatusCode)
	}
	return fmt.Sprintf("discogs: status %d: %s", e.StatusCode, e.Message)
}

// Is checks if the target error is a Discogs error with the same status.
//
// This allows errors.Is(err, discogs.ErrNotFound) to work.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.StatusCode == t.StatusCode
}

// Predefined errors for common cases.
var (
	// ErrMissingToken is returned by NewClient when no token is configured.
	ErrMissingToken = errors.New("discogs: token is required")

	ErrUnauthorized = &Error{StatusCode: http.StatusUnauthorized}
	ErrNotFound     = &Error{StatusCode: http.StatusNotFound}
	ErrRateLimited  = &Error{StatusCode: http.StatusTooManyRequests}
)
