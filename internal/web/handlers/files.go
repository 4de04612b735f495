package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kozaktomas/face-gallery/internal/storage"
)

// FilesHandler serves stored event photos.
type FilesHandler struct {
	photos storage.PhotoStore
}

// NewFilesHandler creates a new files handler.
func NewFilesHandler(photos storage.PhotoStore) *FilesHandler {
	return &FilesHandler{photos: photos}
}

// Serve streams a stored photo. Descriptor files and names escaping the
// event namespace are never served; anything not servable is a plain 404
// so the response does not reveal why.
func (h *FilesHandler) Serve(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventID")
	filename := chi.URLParam(r, "filename")

	path, err := h.photos.PhotoPath(eventID, filename)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, path)
}
