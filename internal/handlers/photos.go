package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/photoshare/apiserver/internal/access"
	"github.com/photoshare/apiserver/internal/services"
	"github.com/photoshare/apiserver/types"
	"github.com/sirupsen/logrus"
)

// PhotoHandler provides HTTP handlers for photos.
type PhotoHandler struct {
	photoService *services.PhotoService
	log          logrus.FieldLogger
}

// PhotoUpdateRequest is the body accepted by PUT /photos/{photoID}. Omitted
// fields are left unchanged.
type PhotoUpdateRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Tags        []string `json:"tags"`
}

// PhotoRouter registers photo routes. Reads are public; publishing and
// editing require a creator, liking any signed-in user.
func PhotoRouter(r chi.Router, photoService *services.PhotoService, verifier access.Verifier, log logrus.FieldLogger) {
	handler := &PhotoHandler{photoService: photoService, log: log}
	signedIn := Gate(log, access.Authenticate(verifier))
	creator := Gate(log, access.Authenticate(verifier), access.RequireRole(types.RoleCreator))

	r.Get("/", handler.ListPhotos)
	r.With(creator).Post("/", handler.CreatePhoto)
	r.Route("/{photoID}", func(r chi.Router) {
		r.Get("/", handler.GetPhoto)
		r.With(creator).Put("/", handler.UpdatePhoto)
		r.With(creator).Delete("/", handler.DeletePhoto)
		r.With(signedIn).Post("/like", handler.LikePhoto)
	})
}

func (h *PhotoHandler) ListPhotos(w http.ResponseWriter, r *http.Request) {
	photos, err := h.photoService.List(r.Context())
	if err != nil {
		writeServiceError(w, h.log, err, errorText{failed: "Failed to fetch photos"})
		return
	}
	writeJSON(w, http.StatusOK, photos)
}

func (h *PhotoHandler) GetPhoto(w http.ResponseWriter, r *http.Request) {
	photo, err := h.photoService.Get(r.Context(), chi.URLParam(r, "photoID"))
	if err != nil {
		writeServiceError(w, h.log, err, errorText{notFound: "Photo not found", failed: "Failed to fetch photo"})
		return
	}
	writeJSON(w, http.StatusOK, photo)
}

func (h *PhotoHandler) CreatePhoto(w http.ResponseWriter, r *http.Request) {
	principal, _ := principalFromContext(r.Context())

	var req services.PhotoInput
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	photo, err := h.photoService.Create(r.Context(), principal, req)
	if err != nil {
		writeServiceError(w, h.log, err, errorText{failed: "Failed to create photo"})
		return
	}
	writeJSON(w, http.StatusCreated, photo)
}

func (h *PhotoHandler) UpdatePhoto(w http.ResponseWriter, r *http.Request) {
	principal, _ := principalFromContext(r.Context())

	var req PhotoUpdateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	photo, err := h.photoService.Update(r.Context(), principal, chi.URLParam(r, "photoID"), types.PhotoPatch{
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
	})
	if err != nil {
		writeServiceError(w, h.log, err, errorText{
			notFound:  "Photo not found",
			forbidden: "Not authorized to update this photo",
			failed:    "Failed to update photo",
		})
		return
	}
	writeJSON(w, http.StatusOK, photo)
}

func (h *PhotoHandler) DeletePhoto(w http.ResponseWriter, r *http.Request) {
	principal, _ := principalFromContext(r.Context())

	err := h.photoService.Delete(r.Context(), principal, chi.URLParam(r, "photoID"))
	if err != nil {
		writeServiceError(w, h.log, err, errorText{
			notFound:  "Photo not found",
			forbidden: "Not authorized to delete this photo",
			failed:    "Failed to delete photo",
		})
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Photo deleted successfully"})
}

func (h *PhotoHandler) LikePhoto(w http.ResponseWriter, r *http.Request) {
	photo, err := h.photoService.Like(r.Context(), chi.URLParam(r, "photoID"))
	if err != nil {
		writeServiceError(w, h.log, err, errorText{notFound: "Photo not found", failed: "Failed to like photo"})
		return
	}
	writeJSON(w, http.StatusOK, photo)
}
