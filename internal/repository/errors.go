// Package repository holds the MySQL data access for layouts. The sentinel
// values below let higher layers such as handlers tell failure scenarios
// apart. ErrForbidden means the caller does not own the resource, while
// ErrConflict signals a uniqueness clash on insert.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation
// on a resource they do not own. Handlers should translate this
// into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an insert collides with an existing row,
// such as two items sharing an id inside one layout. Handlers should
// translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// ErrLayoutNotFound is returned when a layout lookup yields no rows.
var ErrLayoutNotFound = errors.New("layout not found")
