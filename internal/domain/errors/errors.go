package errors

import "errors"

// Sentinel errors for handlers to map to HTTP status. Core operations return
// these instead of raising; unexpected lower-layer faults propagate as-is and
// are logged internally, never echoed to end users.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrUsernameExists     = errors.New("username already exists")
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrPasswordMismatch   = errors.New("current password is incorrect")
	ErrUserNotFound       = errors.New("user not found")
	ErrNotFound           = errors.New("record not found")
	ErrForbidden          = errors.New("insufficient permissions")
	ErrPersistence        = errors.New("persistence failure")
)
