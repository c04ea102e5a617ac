package service

import (
	"errors"
	"fmt"
)

// ErrStoreUnavailable is returned by every data-touching operation when the
// persistence collaborator was never configured.
var ErrStoreUnavailable = errors.New("database not available")

// PersistenceError wraps a failed store operation. Store failures are not
// retried; the underlying message is surfaced to the caller.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
