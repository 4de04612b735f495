// Package apiclient is a thin HTTP client for a running face-gallery server,
// used by the CLI commands.
package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Client talks to a face-gallery server.
type Client struct {
	baseURL string
	client  *http.Client
}

// New creates a client for the given server URL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: 5 * time.Minute},
	}
}

// postMultipart posts a multipart form with the given fields and files to a path.
func (c *Client) postMultipart(path string, fields map[string]string, fileField string, filePaths []string) ([]byte, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return nil, fmt.Errorf("write field %s: %w", key, err)
		}
	}

	for _, filePath := range filePaths {
		file, err := os.Open(filePath)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", filePath, err)
		}
		part, err := writer.CreateFormFile(fileField, filepath.Base(filePath))
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("create form file: %w", err)
		}
		if _, err := io.Copy(part, file); err != nil {
			file.Close()
			return nil, fmt.Errorf("copy %s: %w", filePath, err)
		}
		file.Close()
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("server error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return body, nil
}

// Upload uploads one photo file to an event.
func (c *Client) Upload(eventID, password, filePath string) error {
	fields := map[string]string{
		"event_id": eventID,
		"password": password,
	}
	_, err := c.postMultipart("/upload", fields, "image", []string{filePath})
	return err
}

// Match submits a face image and returns the URLs of all matching photos.
func (c *Client) Match(eventID, password, imagePath string) ([]string, error) {
	fields := map[string]string{
		"event_id": eventID,
		"password": password,
	}
	body, err := c.postMultipart("/guest", fields, "face", []string{imagePath})
	if err != nil {
		return nil, err
	}

	var result struct {
		Matches []string `json:"matches"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	return result.Matches, nil
}
