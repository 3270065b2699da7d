// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrNotFound indicates that the requested row does not exist,
// while ErrConflict signals that an operation cannot proceed because of
// conflicting state (e.g. accepting a deal that already left pending).
package repository

import "errors"

// ErrNotFound is returned when the requested entity does not exist.
// Handlers should translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when an update cannot be performed because of
// conflicting state, such as activating a subscription for a user that
// changed concurrently. Handlers should translate this into an HTTP 409
// response.
var ErrConflict = errors.New("conflict")
