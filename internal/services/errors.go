package services

import (
	"errors"

	"github.com/photoshare/apiserver/internal/auth"
)

var (
	// ErrValidation marks missing or malformed input.
	ErrValidation = errors.New("validation failed")

	// ErrDuplicateEmail is returned when registering an email that is taken.
	ErrDuplicateEmail = errors.New("user with this email already exists")

	// ErrInvalidCredentials is returned for both unknown emails and wrong
	// passwords so callers cannot tell which one failed.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrHashing is an infrastructure failure while hashing a password.
	ErrHashing = auth.ErrHashing
)
