package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/photoshare/apiserver/internal/access"
	"github.com/photoshare/apiserver/internal/services"
	"github.com/sirupsen/logrus"
)

type CommentHandler struct {
	commentService *services.CommentService
	log            logrus.FieldLogger
}

// CommentRouter registers comment routes.
func CommentRouter(r chi.Router, commentService *services.CommentService, verifier access.Verifier, log logrus.FieldLogger) {
	handler := &CommentHandler{commentService: commentService, log: log}

	r.Get("/photo/{photoID}", handler.ListComments)
	r.With(Gate(log, access.Authenticate(verifier))).Post("/", handler.CreateComment)
}

func (h *CommentHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	comments, err := h.commentService.ListByPhoto(r.Context(), chi.URLParam(r, "photoID"))
	if err != nil {
		writeServiceError(w, h.log, err, errorText{failed: "Failed to fetch comments"})
		return
	}
	writeJSON(w, http.StatusOK, comments)
}

func (h *CommentHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	principal, _ := principalFromContext(r.Context())

	var req services.CommentInput
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	comment, err := h.commentService.Create(r.Context(), principal, req)
	if err != nil {
		writeServiceError(w, h.log, err, errorText{notFound: "Photo not found", failed: "Failed to create comment"})
		return
	}
	writeJSON(w, http.StatusCreated, comment)
}
