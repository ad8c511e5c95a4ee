// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow the service layer to
// distinguish between a missing row, an ownership mismatch and a plain
// store failure without inspecting driver errors.
package repository

import "errors"

// ErrEventNotFound is returned when an event lookup yields no rows.
var ErrEventNotFound = errors.New("event not found")

// ErrSeatNotFound is returned when one or more seat ids do not belong to
// the event being booked.
var ErrSeatNotFound = errors.New("seat not found for event")

// ErrForbidden is returned when the caller attempts an operation
// on a resource they do not own. Handlers should translate this
// into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")
