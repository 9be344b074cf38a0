package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/photoshare/apiserver/internal/access"
	"github.com/photoshare/apiserver/internal/services"
	"github.com/photoshare/apiserver/internal/store"
	"github.com/sirupsen/logrus"
)

const maxBodyBytes = 1 << 20

type contextKey string

const contextPrincipalKey contextKey = "principal"

// ErrorResponse is a simple error payload.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse acknowledges an operation with no resource to return.
type MessageResponse struct {
	Message string `json:"message"`
}

// errorText holds the per-route messages used by writeServiceError.
type errorText struct {
	notFound  string
	forbidden string
	failed    string
}

func withPrincipal(ctx context.Context, p access.Principal) context.Context {
	return context.WithValue(ctx, contextPrincipalKey, p)
}

func principalFromContext(ctx context.Context) (access.Principal, bool) {
	p, ok := ctx.Value(contextPrincipalKey).(access.Principal)
	return p, ok
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(dst)
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

// writeServiceError maps a service-layer error onto a status code. Unmapped
// errors are logged and answered with text.failed.
func writeServiceError(w http.ResponseWriter, log logrus.FieldLogger, err error, text errorText) {
	var accessErr *access.Error
	switch {
	case errors.Is(err, services.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrDuplicateEmail):
		writeError(w, http.StatusConflict, services.ErrDuplicateEmail.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, services.ErrInvalidCredentials.Error())
	case errors.As(err, &accessErr):
		status, message := rejection(accessErr)
		if accessErr.Kind == access.Forbidden && text.forbidden != "" {
			message = text.forbidden
		}
		writeError(w, status, message)
	case errors.Is(err, store.ErrNotFound) && text.notFound != "":
		writeError(w, http.StatusNotFound, text.notFound)
	default:
		log.WithError(err).Error(text.failed)
		writeError(w, http.StatusInternalServerError, text.failed)
	}
}

// Healthz reports liveness.
func Healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "message": "Server is running"})
}
