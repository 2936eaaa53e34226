// Package common defines the sentinel errors shared by repositories, services
// and the HTTP layer. Callers wrap them with fmt.Errorf("%w: ...") and match
// them with errors.Is.
package common

import "errors"

var (
	// Missing, malformed, expired or otherwise unverifiable credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// Missing required field, malformed payload, unknown enum value,
	// path traversal in a filename.
	ErrBadRequest = errors.New("bad request")

	// Referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// Duplicate unique field, e.g. email.
	ErrConflict = errors.New("conflict")
)
