// Package repository defines error types that are reused across multiple
// repositories.  These sentinel values let handlers distinguish failure
// scenarios: ErrConflict signals that an operation cannot proceed due to
// existing state (a duplicate waiting-list entry, an occupied seat),
// while the per-entity not-found sentinels map to HTTP 404.
package repository

import (
	"errors"
	"strings"
)

// ErrConflict is returned when an insert or update cannot be performed
// because of conflicting state, such as enrolling a member onto an
// occupied seat or queueing a member twice for the same location.
// Handlers should translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// ErrSeatNotFound is returned when a seat lookup yields no rows.
var ErrSeatNotFound = errors.New("seat not found")

// ErrSubscriptionNotFound is returned when a subscription lookup yields
// no rows.
var ErrSubscriptionNotFound = errors.New("subscription not found")

// ErrMemberNotFound is returned when a member lookup yields no rows.
var ErrMemberNotFound = errors.New("member not found")

// ErrLocationNotFound is returned when a location lookup yields no rows.
var ErrLocationNotFound = errors.New("location not found")

// ErrEmailExists is returned when registering a user or member with an
// email that is already taken.
var ErrEmailExists = errors.New("email already exists")

// isDuplicateKey reports whether err is a MySQL duplicate-entry error
// (error number 1062 from a UNIQUE constraint).
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}
