package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/kozaktomas/face-gallery/internal/embedder"
	"github.com/kozaktomas/face-gallery/internal/gallery"
	"github.com/kozaktomas/face-gallery/internal/storage"
)

// stubEmbedder returns a fixed answer for every extraction.
type stubEmbedder struct {
	descriptors []embedder.Descriptor
	err         error
}

func (s *stubEmbedder) ExtractFaces(ctx context.Context, imageData []byte) ([]embedder.Descriptor, error) {
	return s.descriptors, s.err
}

// newTestService builds a service on a temp-dir filesystem store with the
// given embedder stub.
func newTestService(t *testing.T, faces gallery.FaceEmbedder) (*gallery.Service, *storage.Filesystem) {
	t.Helper()
	fs, err := storage.NewFilesystem(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	descriptors := storage.NewDescriptorFiles(fs)
	registry := gallery.NewRegistry(fs, descriptors)
	service := gallery.NewService(registry, fs, descriptors, gallery.NewPresence(), faces, 0.45)
	return service, fs
}

// multipartRequest builds a multipart POST with form fields and image parts.
func multipartRequest(t *testing.T, path string, fields map[string]string, files map[string][]byte, fileField string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("failed to write form field: %v", err)
		}
	}
	for name, data := range files {
		part, err := writer.CreateFormFile(fileField, name)
		if err != nil {
			t.Fatalf("failed to create form file: %v", err)
		}
		if _, err := io.Copy(part, bytes.NewReader(data)); err != nil {
			t.Fatalf("failed to write form file: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

// requestWithChiParams creates a request with chi URL parameters
func requestWithChiParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// parseJSONResponse parses a JSON response body into the target type
func parseJSONResponse(t *testing.T, recorder *httptest.ResponseRecorder, target any) {
	t.Helper()
	if err := json.Unmarshal(recorder.Body.Bytes(), target); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nBody: %s", err, recorder.Body.String())
	}
}

// assertStatusCode checks if the response has the expected status code
func assertStatusCode(t *testing.T, recorder *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if recorder.Code != expected {
		t.Errorf("expected status %d, got %d\nBody: %s", expected, recorder.Code, recorder.Body.String())
	}
}

// createEvent registers an event, failing the test on error.
func createEvent(t *testing.T, service *gallery.Service, eventID, password string) {
	t.Helper()
	if err := service.Registry().Create(eventID, password); err != nil {
		t.Fatalf("failed to create event %s: %v", eventID, err)
	}
}
