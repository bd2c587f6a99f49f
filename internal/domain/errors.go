package domain

import "errors"

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrPropertyNotFound = errors.New("property not found")
	ErrOrderNotFound    = errors.New("order not found")

	ErrUsernameTaken      = errors.New("username already exists")
	ErrEmailTaken         = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserDisabled       = errors.New("user account is disabled")

	ErrNotOwner            = errors.New("not the owner of this resource")
	ErrPropertyUnavailable = errors.New("property is not available")
	ErrInvalidDateRange    = errors.New("invalid date range")
	ErrOrderNotCancellable = errors.New("only pending orders can be cancelled")
)
