// Package domain provides shared domain-level sentinel errors.
package domain

import "errors"

// ErrNotFound indicates the requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrValidation indicates the caller's input failed validation.
var ErrValidation = errors.New("invalid input")

// ErrRejected indicates an operation was refused by policy before any
// side effect occurred (e.g. a tool outside the allow-list).
var ErrRejected = errors.New("rejected")

// ErrUnavailable indicates an external collaborator could not be reached.
// This is an expected condition, reported as a soft failure, not an incident.
var ErrUnavailable = errors.New("unavailable")
