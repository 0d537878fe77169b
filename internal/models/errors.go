package models

import "errors"

var (
	// ErrDuplicateUsername is returned when the username is already taken.
	ErrDuplicateUsername = errors.New("username already exists")
	// ErrDuplicateEmail is returned when the email is already taken.
	ErrDuplicateEmail = errors.New("email already exists")
	// ErrInvalidCredentials is returned on any failed login, without
	// revealing which field was wrong.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrNotAuthorized is returned when the acting user is neither the
	// owner nor an admin.
	ErrNotAuthorized = errors.New("not authorized")
)
