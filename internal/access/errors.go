package access

import (
	"errors"

	"github.com/photoshare/apiserver/types"
)

// Kind classifies a rejection.
type Kind int

const (
	// Unauthorized means no usable identity was presented.
	Unauthorized Kind = iota + 1
	// Forbidden means the identity is known but not permitted.
	Forbidden
)

func (k Kind) String() string {
	switch k {
	case Unauthorized:
		return "unauthorized"
	case Forbidden:
		return "forbidden"
	default:
		return "unknown"
	}
}

const (
	ReasonNoToken           = "no-token"
	ReasonInvalidToken      = "invalid-token"
	ReasonRoleMismatch      = "role-mismatch"
	ReasonOwnershipMismatch = "ownership-mismatch"
)

// Error is a rejection produced by a Stage.
type Error struct {
	Kind   Kind
	Reason string
	// Required is the role a role-mismatch rejection asked for.
	Required types.Role
	// Err is the underlying cause, if any. It is never shown to clients.
	Err error
}

func (e *Error) Error() string {
	return e.Kind.String() + ": " + e.Reason
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsUnauthorized reports whether err is an Unauthorized rejection.
func IsUnauthorized(err error) bool {
	var accessErr *Error
	return errors.As(err, &accessErr) && accessErr.Kind == Unauthorized
}

// IsForbidden reports whether err is a Forbidden rejection.
func IsForbidden(err error) bool {
	var accessErr *Error
	return errors.As(err, &accessErr) && accessErr.Kind == Forbidden
}
