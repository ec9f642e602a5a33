// Package shared contains sentinel errors used across the service layers.
// Handlers translate them into HTTP statuses at the boundary; everything
// that is not one of these collapses to a generic 500.
package shared

import "errors"

var (

	// repository errors
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// auth errors
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorForbidden    = errors.New("forbidden")
	ErrorInvalidToken = errors.New("invalid token")

	// anything unexpected, reported to clients as a generic failure
	ErrorInternal = errors.New("internal error")
)
