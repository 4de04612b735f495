package handlers

import (
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"

	"github.com/kozaktomas/face-gallery/internal/constants"
	"github.com/kozaktomas/face-gallery/internal/gallery"
)

// UploadHandler handles event photo uploads.
type UploadHandler struct {
	service *gallery.Service
}

// NewUploadHandler creates a new upload handler.
func NewUploadHandler(service *gallery.Service) *UploadHandler {
	return &UploadHandler{service: service}
}

// Page serves the upload form.
func (h *UploadHandler) Page(w http.ResponseWriter, r *http.Request) {
	renderPage(w, http.StatusOK, "upload.html", pageData{})
}

// readUploadFiles reads every part of the batch into memory.
func readUploadFiles(headers []*multipart.FileHeader) ([]gallery.UploadFile, error) {
	files := make([]gallery.UploadFile, 0, len(headers))
	for _, header := range headers {
		file, err := header.Open()
		if err != nil {
			return nil, fmt.Errorf("open uploaded file %s: %w", header.Filename, err)
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return nil, fmt.Errorf("read uploaded file %s: %w", header.Filename, err)
		}
		files = append(files, gallery.UploadFile{Name: header.Filename, Data: data})
	}
	return files, nil
}

// Upload handles a multipart photo batch. Any invalid file rejects the whole
// batch before anything is stored.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(constants.MaxUploadSize); err != nil {
		respondError(w, http.StatusBadRequest, "failed to parse multipart form")
		return
	}

	eventID := r.FormValue("event_id")
	password := r.FormValue("password")
	headers := r.MultipartForm.File["image"]

	files, err := readUploadFiles(headers)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.Upload(r.Context(), eventID, password, files)
	if err != nil {
		status := statusForError(err)
		if wantsHTML(r) {
			renderPage(w, status, "upload.html", pageData{Error: err.Error()})
			return
		}
		respondError(w, status, err.Error())
		return
	}

	log.Printf("upload %s: stored %d photos for event %s", result.BatchID, len(result.Stored), sanitizeForLog(eventID))
	if wantsHTML(r) {
		renderPage(w, http.StatusOK, "upload.html", pageData{})
		return
	}
	respondJSON(w, http.StatusOK, result)
}
