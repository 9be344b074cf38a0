package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/photoshare/apiserver/internal/access"
	"github.com/photoshare/apiserver/internal/services"
	"github.com/sirupsen/logrus"
)

// AuthHandler provides registration, login and session endpoints.
type AuthHandler struct {
	authService *services.AuthService
	userService *services.UserService
	log         logrus.FieldLogger
}

// NewAuthHandler constructs an AuthHandler with the provided dependencies.
func NewAuthHandler(authService *services.AuthService, userService *services.UserService, log logrus.FieldLogger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		userService: userService,
		log:         log,
	}
}

// AuthRouter registers auth routes on the given router.
func AuthRouter(r chi.Router, authService *services.AuthService, userService *services.UserService, log logrus.FieldLogger) {
	handler := NewAuthHandler(authService, userService, log)

	r.Post("/register", handler.Register)
	r.Post("/login", handler.Login)
	r.With(Gate(log, access.Authenticate(authService.Verifier()))).Get("/me", handler.Me)
}

// Register creates a new account and returns it with a token.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req services.RegisterInput
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	result, err := h.authService.Register(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.log, err, errorText{failed: "failed to register"})
		return
	}

	writeJSON(w, http.StatusCreated, result)
}

// Login verifies credentials and returns the user with a token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req services.LoginInput
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	result, err := h.authService.Login(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.log, err, errorText{failed: "failed to authenticate"})
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Me returns the current authenticated user.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized - No token provided")
		return
	}

	user, err := h.userService.FindByID(r.Context(), principal.ID)
	if err != nil {
		writeServiceError(w, h.log, err, errorText{notFound: "User not found", failed: "failed to load user"})
		return
	}

	writeJSON(w, http.StatusOK, user)
}
