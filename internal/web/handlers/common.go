package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/kozaktomas/face-gallery/internal/gallery"
	"github.com/kozaktomas/face-gallery/internal/web/templates"
)

// sanitizeForLog removes newlines and carriage returns to prevent log injection.
func sanitizeForLog(s string) string {
	return strings.NewReplacer("\n", "", "\r", "").Replace(s)
}

// wantsHTML reports whether the client is a browser expecting a page rather
// than a JSON API response.
func wantsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}

// respondJSON sends a JSON response.
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// respondError sends an error response.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// statusForError maps core errors onto HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, gallery.ErrInvalidInput), errors.Is(err, gallery.ErrNoFaceFound):
		return http.StatusBadRequest
	case errors.Is(err, gallery.ErrUnknownEvent), errors.Is(err, gallery.ErrAuth):
		return http.StatusForbidden
	case errors.Is(err, gallery.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// renderPage renders an HTML template, falling back to a plain error when
// rendering itself fails.
func renderPage(w http.ResponseWriter, status int, name string, data any) {
	if err := templates.Render(w, status, name, data); err != nil {
		log.Printf("handlers: %v", err)
	}
}

// pageData is the common payload for form pages.
type pageData struct {
	Error string
}

// Home serves the landing page.
func Home(w http.ResponseWriter, r *http.Request) {
	renderPage(w, http.StatusOK, "index.html", nil)
}

// HealthCheck handles the health check endpoint.
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}
