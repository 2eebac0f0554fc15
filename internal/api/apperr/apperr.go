// Package apperr defines the error taxonomy shared by services and
// controllers. Repositories and services return these sentinels (or
// wrap them); controllers map them to HTTP statuses and user-facing
// messages. Raw storage errors never leave the service layer.
package apperr

import "errors"

var (
	// ErrEmailTaken is returned when registering or changing to an email
	// that already belongs to another user.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials covers both unknown email and wrong password
	// so a caller cannot probe which emails are registered.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrWrongPassword is returned when a password change is requested
	// with an old password that does not match the stored hash.
	ErrWrongPassword = errors.New("old password does not match")

	// ErrNoChanges is returned when an edit request carries no fields.
	ErrNoChanges = errors.New("no changes requested")

	// ErrEmptyName rejects names that are empty after trimming.
	ErrEmptyName = errors.New("name must not be empty")

	// ErrDuplicateName is returned when a bucketlist name collides with
	// another list of the same owner, or an item name with another item
	// of the same list.
	ErrDuplicateName = errors.New("name already in use")

	// ErrNotOwned covers both "no such resource" and "resource owned by
	// someone else". The two are deliberately indistinguishable so that
	// responses never confirm the existence of another user's data.
	ErrNotOwned = errors.New("bucketlist does not exist or is not owned by you")

	// ErrItemNotFound is returned for a missing item inside a list the
	// caller does own.
	ErrItemNotFound = errors.New("item does not exist in this bucketlist")

	// ErrTokenExpired and ErrTokenInvalid are distinct for logging, but
	// both surface to the client as the same access-denied response.
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)
