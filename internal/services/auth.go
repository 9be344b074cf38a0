package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/photoshare/apiserver/internal/access"
	"github.com/photoshare/apiserver/internal/auth"
	"github.com/photoshare/apiserver/internal/store"
	"github.com/photoshare/apiserver/types"
	"github.com/sirupsen/logrus"
)

// PasswordHasher derives and checks password hashes.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, passwordHash string) bool
}

// TokenIssuer issues and verifies access tokens.
type TokenIssuer interface {
	Issue(user types.User) (string, error)
	Verify(token string) (auth.Claims, error)
}

// RegisterInput is the payload accepted by Register.
type RegisterInput struct {
	Username string     `json:"username" validate:"required"`
	Email    string     `json:"email" validate:"required"`
	Password string     `json:"password" validate:"required"`
	Role     types.Role `json:"role" validate:"omitempty,oneof=creator consumer"`
}

// LoginInput is the payload accepted by Login.
type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResult is returned by Register and Login. User never carries the
// password hash.
type AuthResult struct {
	User  types.User `json:"user"`
	Token string     `json:"token"`
}

// AuthService implements registration, login and bearer authentication.
type AuthService struct {
	users     *UserService
	hasher    PasswordHasher
	tokens    TokenIssuer
	events    *Events
	log       logrus.FieldLogger
	validate  *validator.Validate
	dummyHash string
}

// NewAuthService wires the authentication use-cases. events may be nil.
func NewAuthService(users *UserService, hasher PasswordHasher, tokens TokenIssuer, events *Events, log logrus.FieldLogger) (*AuthService, error) {
	// Compared against when the email is unknown so both login failures cost
	// one hash comparison.
	dummyHash, err := hasher.Hash("photoshare-unknown-user")
	if err != nil {
		return nil, err
	}
	return &AuthService{
		users:     users,
		hasher:    hasher,
		tokens:    tokens,
		events:    events,
		log:       log,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		dummyHash: dummyHash,
	}, nil
}

// Register creates a user and returns it with a fresh token. An empty role
// defaults to consumer.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (AuthResult, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	if err := s.validateInput(in); err != nil {
		return AuthResult{}, err
	}
	if in.Role == "" {
		in.Role = types.RoleConsumer
	}

	// The duplicate check lives in UserService.Create, so a taken email still
	// pays for one hash.
	hashed, err := s.hasher.Hash(in.Password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return AuthResult{}, fmt.Errorf("%w: password is too long", ErrValidation)
		}
		return AuthResult{}, err
	}

	user, err := s.users.Create(ctx, in.Username, in.Email, hashed, in.Role)
	if err != nil {
		return AuthResult{}, err
	}

	result, err := s.issue(user)
	if err != nil {
		return AuthResult{}, err
	}

	s.log.WithFields(logrus.Fields{"user_id": user.ID, "role": user.Role}).Info("user registered")
	s.events.Emit(ctx, EventUserRegistered, map[string]string{"userId": user.ID, "role": user.Role.String()})
	return result, nil
}

// Login checks credentials and returns the user with a fresh token.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (AuthResult, error) {
	in.Email = strings.TrimSpace(in.Email)
	if err := s.validateInput(in); err != nil {
		return AuthResult{}, err
	}

	user, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.hasher.Verify(in.Password, s.dummyHash)
			return AuthResult{}, ErrInvalidCredentials
		}
		return AuthResult{}, fmt.Errorf("find user: %w", err)
	}

	if !s.hasher.Verify(in.Password, user.PasswordHash) {
		return AuthResult{}, ErrInvalidCredentials
	}

	result, err := s.issue(user)
	if err != nil {
		return AuthResult{}, err
	}

	s.log.WithField("user_id", user.ID).Info("user logged in")
	s.events.Emit(ctx, EventUserLoggedIn, map[string]string{"userId": user.ID})
	return result, nil
}

// Authenticate verifies the bearer token in headers and returns its claims.
// Failures are *access.Error values of kind access.Unauthorized.
func (s *AuthService) Authenticate(ctx context.Context, headers http.Header) (auth.Claims, error) {
	token, ok := access.BearerToken(headers.Get("Authorization"))
	if !ok {
		return auth.Claims{}, &access.Error{Kind: access.Unauthorized, Reason: access.ReasonNoToken}
	}
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return auth.Claims{}, &access.Error{Kind: access.Unauthorized, Reason: access.ReasonInvalidToken, Err: err}
	}
	return claims, nil
}

// Verifier exposes the token verifier for the access gate.
func (s *AuthService) Verifier() access.Verifier {
	return s.tokens
}

func (s *AuthService) issue(user types.User) (AuthResult, error) {
	token, err := s.tokens.Issue(user)
	if err != nil {
		return AuthResult{}, fmt.Errorf("issue token: %w", err)
	}
	user.PasswordHash = ""
	return AuthResult{User: user, Token: token}, nil
}

func (s *AuthService) validateInput(in any) error {
	return validationError(s.validate.Struct(in))
}

func validationError(err error) error {
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		name := strings.ToLower(fe.Field())
		if fe.Tag() == "required" {
			messages = append(messages, name+" is required")
		} else {
			messages = append(messages, name+" is invalid")
		}
	}
	return fmt.Errorf("%w: %s", ErrValidation, strings.Join(messages, ", "))
}
