package client

import "errors"

var (
	// ErrAuthentication is returned when login yields no usable session ID.
	// The underlying fault or transport error, if any, is wrapped alongside.
	ErrAuthentication = errors.New("sugarcrm: authentication failed")

	// ErrNotAuthenticated is returned by operations on a client that holds no
	// session.
	ErrNotAuthenticated = errors.New("sugarcrm: client not authenticated")
)
