// Package usecase implements the business logic for the users feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found by email or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyExists is returned when attempting to store a user with an email that already exists.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrInvalidUserID is returned when an operation receives a non-positive user ID.
	ErrInvalidUserID = errors.New("user id must be a positive integer")

	// ErrInvalidInput is returned when a create/update body is missing required fields
	// or contains a malformed email address.
	ErrInvalidInput = errors.New("invalid user input")

	// ErrForbidden is returned when ownership enforcement is enabled and the acting
	// user attempts to modify a record that is not their own.
	ErrForbidden = errors.New("not allowed to perform this action")
)
