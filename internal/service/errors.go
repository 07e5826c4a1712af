// Package service hosts the layout lifecycle (create, load, update,
// duplicate, delete, list) on top of the MySQL store, and the in-memory
// editor sessions that clients stream events into.
package service

import (
	"errors"
	"fmt"
)

// ErrSessionNotFound is returned for unknown, expired or foreign session ids.
var ErrSessionNotFound = errors.New("editor session not found")

// PersistenceError wraps a failure of the layout store. The editor state
// that produced the request is left untouched so the save can be retried.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func persistErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &PersistenceError{Op: op, Err: err}
}
