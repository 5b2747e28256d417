// Package common defines sentinel errors shared by the storage, service and
// presentation layers of eventreg. Callers should use errors.Is to match
// these values; services wrap them with a human-readable reason.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Registration errors.
	ErrValidation     = errors.New("validation error")
	ErrDuplicatePhone = errors.New("phone number already registered")

	// Login errors. The message does not tell whether the phone exists.
	ErrInvalidCredentials = errors.New("invalid phone or password")

	// Catalog errors.
	ErrUnknownEvent = errors.New("unknown event")

	// Storage errors.
	ErrUnknownDriver = errors.New("unknown storage driver")
)
