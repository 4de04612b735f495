package embedder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
)

const defaultEmbeddingURL = "http://localhost:8000"

// Client computes face descriptors using the embedding server.
type Client struct {
	baseURL      string
	maxImageSize int
	dim          int
	client       *http.Client
}

// NewClient creates a new embedding client. maxImageSize bounds the larger
// dimension of images sent to the server; zero disables downscaling. dim is
// the expected descriptor dimension; zero disables the check.
func NewClient(baseURL string, maxImageSize, dim int) *Client {
	if baseURL == "" {
		baseURL = defaultEmbeddingURL
	}
	return &Client{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		maxImageSize: maxImageSize,
		dim:          dim,
		client:       &http.Client{},
	}
}

// faceDetection represents a single detected face in the server response
type faceDetection struct {
	FaceIndex int       `json:"face_index"`
	Dim       int       `json:"dim"`
	Embedding []float32 `json:"embedding"`
	BBox      []float64 `json:"bbox"` // [x1, y1, x2, y2]
	DetScore  float64   `json:"det_score"`
}

// faceResponse represents the response from the face embedding endpoint
type faceResponse struct {
	FacesCount int             `json:"faces_count"`
	Faces      []faceDetection `json:"faces"`
	Model      string          `json:"model"`
}

// ExtractFaces detects faces in the image and returns one descriptor per
// face in the server's detection order. An image with no detectable faces
// yields an empty slice and no error.
func (c *Client) ExtractFaces(ctx context.Context, imageData []byte) ([]Descriptor, error) {
	if c.maxImageSize > 0 {
		resized, err := ResizeImage(imageData, c.maxImageSize)
		if err != nil {
			// Not all stored bytes decode locally (e.g. exotic JPEG variants);
			// let the server try the original.
			log.Printf("embedder: downscale failed, sending original: %v", err)
		} else {
			imageData = resized
		}
	}

	body, err := c.postMultipartImage(ctx, "/faces", imageData)
	if err != nil {
		return nil, err
	}

	var faceResp faceResponse
	if err := json.Unmarshal(body, &faceResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	descriptors := make([]Descriptor, 0, len(faceResp.Faces))
	for _, face := range faceResp.Faces {
		if len(face.Embedding) == 0 {
			continue
		}
		// A dimension mismatch means the server runs a different model than
		// the stored descriptors were computed with; matching against them
		// would be garbage.
		if c.dim > 0 && len(face.Embedding) != c.dim {
			return nil, fmt.Errorf("descriptor dimension %d, want %d (embedding model mismatch?)", len(face.Embedding), c.dim)
		}
		descriptors = append(descriptors, Descriptor(face.Embedding))
	}
	return descriptors, nil
}

// postMultipartImage constructs a multipart form with the image data and posts
// it to the given endpoint. The part carries an explicit Content-Type header
// based on magic byte detection.
func (c *Client) postMultipartImage(ctx context.Context, endpoint string, imageData []byte) ([]byte, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="image.jpg"`)
	h.Set("Content-Type", detectMIMEType(imageData))
	part, err := writer.CreatePart(h)
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}

	if _, err := part.Write(imageData); err != nil {
		return nil, fmt.Errorf("failed to write image data: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	return body, nil
}

// detectMIMEType detects the MIME type from image data
func detectMIMEType(data []byte) string {
	if len(data) < 8 {
		return "application/octet-stream"
	}
	// JPEG: FF D8 FF
	if data[0] == 0xFF && data[1] == 0xD8 && data[2] == 0xFF {
		return "image/jpeg"
	}
	// PNG: 89 50 4E 47 0D 0A 1A 0A
	if data[0] == 0x89 && data[1] == 0x50 && data[2] == 0x4E && data[3] == 0x47 {
		return "image/png"
	}
	return "application/octet-stream"
}
