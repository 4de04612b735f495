package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kozaktomas/face-gallery/internal/embedder"
	"github.com/kozaktomas/face-gallery/internal/storage"
)

func serveFile(t *testing.T, handler *FilesHandler, eventID, filename string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/uploads/"+eventID+"/"+filename, nil)
	req = requestWithChiParams(req, map[string]string{"eventID": eventID, "filename": filename})
	recorder := httptest.NewRecorder()
	handler.Serve(recorder, req)
	return recorder
}

func TestServePhoto(t *testing.T) {
	fs, err := storage.NewFilesystem(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	if err := fs.SavePhoto("party", "a.jpg", []byte("jpeg bytes")); err != nil {
		t.Fatalf("SavePhoto failed: %v", err)
	}
	handler := NewFilesHandler(fs)

	recorder := serveFile(t, handler, "party", "a.jpg")

	assertStatusCode(t, recorder, http.StatusOK)
	if recorder.Body.String() != "jpeg bytes" {
		t.Errorf("served body = %q", recorder.Body.String())
	}
}

func TestServeRefusesDescriptorsAndTraversal(t *testing.T) {
	fs, err := storage.NewFilesystem(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	if err := fs.SavePhoto("party", "a.jpg", []byte("jpeg bytes")); err != nil {
		t.Fatalf("SavePhoto failed: %v", err)
	}
	descriptors := storage.NewDescriptorFiles(fs)
	if err := descriptors.Save(context.Background(), "party", "a.jpg", embedder.Descriptor{1, 0}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	handler := NewFilesHandler(fs)

	tests := []struct {
		name     string
		eventID  string
		filename string
	}{
		{"descriptor file", "party", "a.jpg.enc"},
		{"missing photo", "party", "nope.jpg"},
		{"unknown event", "ghost", "a.jpg"},
		{"traversal filename", "party", "..%2Fa.jpg"},
		{"hidden file", "party", ".htaccess"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			recorder := serveFile(t, handler, tc.eventID, tc.filename)
			// Everything unservable is the same plain 404.
			assertStatusCode(t, recorder, http.StatusNotFound)
		})
	}
}
