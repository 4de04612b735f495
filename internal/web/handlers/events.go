package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kozaktomas/face-gallery/internal/gallery"
)

// EventsHandler handles admin event management.
type EventsHandler struct {
	service *gallery.Service
}

// NewEventsHandler creates a new events handler.
func NewEventsHandler(service *gallery.Service) *EventsHandler {
	return &EventsHandler{service: service}
}

// CreatePage serves the event creation form.
func (h *EventsHandler) CreatePage(w http.ResponseWriter, r *http.Request) {
	renderPage(w, http.StatusOK, "create_event.html", pageData{})
}

// Create registers a new event with its shared password.
func (h *EventsHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "invalid form data")
		return
	}
	eventID := r.FormValue("event_id")
	password := r.FormValue("password")

	if err := h.service.Registry().Create(eventID, password); err != nil {
		status := statusForError(err)
		if wantsHTML(r) {
			message := "Event ID and password required"
			if errors.Is(err, gallery.ErrConflict) {
				message = "Event ID already exists"
			}
			renderPage(w, status, "create_event.html", pageData{Error: message})
			return
		}
		respondError(w, status, err.Error())
		return
	}

	log.Printf("admin created event %s", sanitizeForLog(eventID))
	if wantsHTML(r) {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"event_id": eventID})
}

// Delete removes an event together with all its photos and descriptors.
// Deleting an event that does not exist is a no-op.
func (h *EventsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventID")

	if err := h.service.Registry().Delete(r.Context(), eventID); err != nil {
		respondError(w, statusForError(err), err.Error())
		return
	}

	log.Printf("admin deleted event %s", sanitizeForLog(eventID))
	if wantsHTML(r) {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"deleted": eventID})
}
