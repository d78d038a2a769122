// Package repository implements the data access layer over MySQL.  This
// file defines sentinel error values reused across repositories so that
// handlers can map failure scenarios to HTTP statuses without inspecting
// driver errors.
package repository

import "errors"

// ErrEmailExists is returned when a registration collides with an
// existing email.  Handlers translate this into HTTP 400.
var ErrEmailExists = errors.New("email already exists")

// ErrUserNotFound is returned when a user row does not exist.
var ErrUserNotFound = errors.New("user not found")

// ErrAdminNotFound is returned when an admin row does not exist.
var ErrAdminNotFound = errors.New("admin not found")

// ErrPredictionNotFound is returned when a prediction row does not exist
// or is not owned by the caller.  The two cases are deliberately not
// distinguished so ownership is never leaked through error responses.
var ErrPredictionNotFound = errors.New("prediction not found")
