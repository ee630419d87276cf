package schema

import (
	"errors"
	"fmt"
)

// ErrNoData signals that an aggregation produced nothing to display.
// Consumers degrade to an explicit "no data" state instead of crashing.
var ErrNoData = errors.New("no activity data")

// MalformedInputError reports input whose structure could not be repaired
// into a single well-formed array of records. It is fatal to the run.
type MalformedInputError struct {
	Reason string
	Err    error
}

func (e *MalformedInputError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed input: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed input: %s", e.Reason)
}

func (e *MalformedInputError) Unwrap() error { return e.Err }

// PersistenceError reports an I/O or serialization failure while writing
// a durable artifact. The writer guarantees no partial file is left
// authoritative when this error is returned.
type PersistenceError struct {
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure for %s: %v", e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
