package handlers

import (
	"io"
	"log"
	"net/http"

	"github.com/kozaktomas/face-gallery/internal/constants"
	"github.com/kozaktomas/face-gallery/internal/gallery"
)

// GuestHandler handles guest face matching.
type GuestHandler struct {
	service *gallery.Service
}

// NewGuestHandler creates a new guest handler.
func NewGuestHandler(service *gallery.Service) *GuestHandler {
	return &GuestHandler{service: service}
}

// Page serves the guest search form.
func (h *GuestHandler) Page(w http.ResponseWriter, r *http.Request) {
	renderPage(w, http.StatusOK, "guest.html", pageData{})
}

// galleryData is the payload for the match gallery page.
type galleryData struct {
	Images []string
}

// Match finds every photo of the event containing the guest's face.
// Browser requests get the rendered gallery; API requests get a JSON list.
func (h *GuestHandler) Match(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(constants.MaxUploadSize); err != nil {
		respondError(w, http.StatusBadRequest, "failed to parse multipart form")
		return
	}

	eventID := r.FormValue("event_id")
	password := r.FormValue("password")

	var filename string
	var imageData []byte
	if file, header, err := r.FormFile("face"); err == nil {
		filename = header.Filename
		imageData, err = io.ReadAll(file)
		file.Close()
		if err != nil {
			respondError(w, http.StatusBadRequest, "failed to read face image")
			return
		}
	}

	matches, err := h.service.Match(r.Context(), eventID, password, filename, imageData)
	if err != nil {
		status := statusForError(err)
		if wantsHTML(r) {
			renderPage(w, status, "guest.html", pageData{Error: err.Error()})
			return
		}
		respondError(w, status, err.Error())
		return
	}

	log.Printf("guest matched %d photos in event %s", len(matches), sanitizeForLog(eventID))
	if wantsHTML(r) {
		renderPage(w, http.StatusOK, "gallery.html", galleryData{Images: matches})
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"matches": matches})
}
