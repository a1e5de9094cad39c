package entity

import (
	"errors"
	"fmt"
)

// ErrFetchFailed indicates the remote source was unreachable or returned a
// malformed payload and no previous snapshot exists to fall back to. When a
// snapshot does exist, fetch failures are logged and stale data is served
// instead of surfacing this error.
var ErrFetchFailed = errors.New("reference data fetch failed")

// ErrNotFound indicates a name query matched no entity. It is user-facing and
// non-fatal: the command layer turns it into a "could not find" message.
var ErrNotFound = errors.New("no matching entity")

// NotFoundError wraps [ErrNotFound] with the family and query that missed, so
// the command layer can phrase the reply.
type NotFoundError struct {
	// Family is the human-readable family label ("crew", "room", …).
	Family string

	// Query is the name the user asked for.
	Query string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no %s named %q", e.Family, e.Query)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}
