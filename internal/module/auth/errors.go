package auth

import "errors"

// Auth module errors.
var (
	// Token errors
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token has expired")
	ErrInvalidTokenClaims = errors.New("invalid token claims")

	// Authorization errors
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// Rate limiting
	ErrTooManyAttempts = errors.New("too many login attempts")
)
