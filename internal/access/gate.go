// Package access evaluates request-level authorization decisions.
//
// A request passes through an ordered chain of stages. Each stage either
// allows the request to continue or rejects it with an *Error; the first
// rejection ends evaluation and later stages never run.
package access

import (
	"strings"

	"github.com/photoshare/apiserver/internal/auth"
	"github.com/photoshare/apiserver/types"
)

// Principal is the identity decoded from a verified token.
type Principal struct {
	ID    string
	Email string
	Role  types.Role
}

// Request is the typed view of an incoming request seen by the stages.
type Request struct {
	// Authorization is the raw value of the Authorization header.
	Authorization string

	// Params holds named path parameters, e.g. "userID".
	Params map[string]string

	// Principal is set by Authenticate and nil before it.
	Principal *Principal
}

// Param returns the named path parameter or "".
func (r *Request) Param(name string) string {
	if r.Params == nil {
		return ""
	}
	return r.Params[name]
}

// Stage is a single allow-or-reject decision.
type Stage func(req *Request) error

// Verifier decodes and validates a bearer token.
type Verifier interface {
	Verify(token string) (auth.Claims, error)
}

// Evaluate runs stages in order and returns the first rejection, or nil when
// every stage allowed the request.
func Evaluate(req *Request, stages ...Stage) error {
	for _, stage := range stages {
		if err := stage(req); err != nil {
			return err
		}
	}
	return nil
}

// Authenticate requires an "Authorization: Bearer <token>" header carrying a
// token accepted by v, and attaches the decoded principal to req.
func Authenticate(v Verifier) Stage {
	return func(req *Request) error {
		token, ok := BearerToken(req.Authorization)
		if !ok {
			return &Error{Kind: Unauthorized, Reason: ReasonNoToken}
		}
		claims, err := v.Verify(token)
		if err != nil {
			return &Error{Kind: Unauthorized, Reason: ReasonInvalidToken, Err: err}
		}
		req.Principal = &Principal{
			ID:    claims.ID,
			Email: claims.Email,
			Role:  claims.Role,
		}
		return nil
	}
}

// RequireRole allows only principals whose role equals role.
func RequireRole(role types.Role) Stage {
	return func(req *Request) error {
		if req.Principal == nil {
			return &Error{Kind: Unauthorized, Reason: ReasonNoToken}
		}
		if req.Principal.Role != role {
			return &Error{Kind: Forbidden, Reason: ReasonRoleMismatch, Required: role}
		}
		return nil
	}
}

// RequireOwnerOrRole allows the principal whose ID equals the path parameter
// ownerParam, or any principal holding role.
func RequireOwnerOrRole(ownerParam string, role types.Role) Stage {
	return func(req *Request) error {
		if req.Principal == nil {
			return &Error{Kind: Unauthorized, Reason: ReasonNoToken}
		}
		if !IsOwnerOrRole(req.Principal, req.Param(ownerParam), role) {
			return &Error{Kind: Forbidden, Reason: ReasonOwnershipMismatch}
		}
		return nil
	}
}

// IsOwnerOrRole is the predicate behind RequireOwnerOrRole, usable once the
// owner is known only after loading a resource. An empty role grants nothing.
func IsOwnerOrRole(p *Principal, ownerID string, role types.Role) bool {
	if p == nil {
		return false
	}
	if ownerID != "" && p.ID == ownerID {
		return true
	}
	return role != "" && p.Role == role
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, bool) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", false
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	return token, true
}
