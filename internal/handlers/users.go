package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/photoshare/apiserver/internal/access"
	"github.com/photoshare/apiserver/internal/services"
	"github.com/photoshare/apiserver/types"
	"github.com/sirupsen/logrus"
)

type UserHandler struct {
	userService *services.UserService
	log         logrus.FieldLogger
}

// UserRouter registers profile routes. A profile is visible to its owner and
// to creators.
func UserRouter(r chi.Router, userService *services.UserService, verifier access.Verifier, log logrus.FieldLogger) {
	handler := &UserHandler{userService: userService, log: log}

	r.With(Gate(log,
		access.Authenticate(verifier),
		access.RequireOwnerOrRole("userID", types.RoleCreator),
	)).Get("/{userID}", handler.GetUser)
}

func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.userService.FindByID(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		writeServiceError(w, h.log, err, errorText{notFound: "User not found", failed: "Failed to fetch user"})
		return
	}
	writeJSON(w, http.StatusOK, user)
}
