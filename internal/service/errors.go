package service

import "errors"

var (
	// ErrNotLoggedIn gates mutating operations before any network call
	ErrNotLoggedIn = errors.New("not logged in")

	// ErrInvalidCredentials is returned when the server rejects a sign-in
	ErrInvalidCredentials = errors.New("invalid credentials")
)
