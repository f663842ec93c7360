package user

import "errors"

// Module errors.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrIncorrectPassword  = errors.New("incorrect password")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
	ErrTooManyAttempts    = errors.New("too many login attempts")
)
