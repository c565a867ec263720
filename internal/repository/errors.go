// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as handlers
// to distinguish between different failure scenarios without inspecting
// driver-specific error strings.
package repository

import "errors"

// ErrUsernameExists is returned when registration collides with an existing
// username. Handlers translate this into an HTTP 409 response.
var ErrUsernameExists = errors.New("username already exists")

// ErrMovieNotFound is returned when an operation references a movie id that
// is not present. Handlers translate this into an HTTP 404 response.
var ErrMovieNotFound = errors.New("movie not found")
