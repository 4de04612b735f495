package gallery

import (
	"context"
	"fmt"
	"log"
	"path"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/kozaktomas/face-gallery/internal/constants"
	"github.com/kozaktomas/face-gallery/internal/embedder"
	"github.com/kozaktomas/face-gallery/internal/storage"
)

// FaceEmbedder extracts face descriptors from an image. The descriptors are
// returned in the service's detection order; an image without faces yields
// an empty slice and no error.
type FaceEmbedder interface {
	ExtractFaces(ctx context.Context, imageData []byte) ([]embedder.Descriptor, error)
}

// Service orchestrates uploads, guest matching, and reporting around the
// registry, the stores, and the embedding service.
type Service struct {
	registry    *Registry
	photos      storage.PhotoStore
	descriptors storage.DescriptorStore
	presence    *Presence
	embedder    FaceEmbedder
	threshold   float64
}

// NewService wires the matching core together. threshold is the minimum
// cosine similarity for a stored descriptor to count as a match.
func NewService(
	registry *Registry,
	photos storage.PhotoStore,
	descriptors storage.DescriptorStore,
	presence *Presence,
	faceEmbedder FaceEmbedder,
	threshold float64,
) *Service {
	if threshold <= 0 {
		threshold = constants.DefaultMatchThreshold
	}
	return &Service{
		registry:    registry,
		photos:      photos,
		descriptors: descriptors,
		presence:    presence,
		embedder:    faceEmbedder,
		threshold:   threshold,
	}
}

// Registry exposes the event registry for admin operations.
func (s *Service) Registry() *Registry {
	return s.registry
}

// Presence exposes the presence tracker for reporting.
func (s *Service) Presence() *Presence {
	return s.presence
}

// UploadFile is one file of an upload batch.
type UploadFile struct {
	Name string
	Data []byte
}

// UploadResult reports what an upload batch stored.
type UploadResult struct {
	BatchID string   `json:"batch_id"`
	Stored  []string `json:"stored"`
}

// allowedFile reports whether a filename carries an accepted image extension.
func allowedFile(name string) bool {
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(name)), ".")
	return ext != "" && constants.AllowedExtension(ext)
}

// Upload validates and stores a batch of photos for an event, extracting and
// persisting one descriptor per photo. Validation failures reject the whole
// batch before anything is written. Per-file embedder failures do not abort
// the batch: the photo stays, just without a descriptor, and can never match.
func (s *Service) Upload(ctx context.Context, eventID, password string, files []UploadFile) (*UploadResult, error) {
	if eventID == "" || password == "" || len(files) == 0 {
		return nil, fmt.Errorf("%w: event identifier, password and at least one image are required", ErrInvalidInput)
	}
	// Sanitized names are validated up front so a bad file anywhere in the
	// batch rejects it before anything is written.
	names := make([]string, len(files))
	for i, file := range files {
		if file.Name == "" || !allowedFile(file.Name) {
			return nil, fmt.Errorf("%w: file %q is not an allowed image type", ErrInvalidInput, file.Name)
		}
		name := SanitizeFilename(file.Name)
		if name == "" || !allowedFile(name) {
			return nil, fmt.Errorf("%w: filename %q sanitizes to nothing usable", ErrInvalidInput, file.Name)
		}
		names[i] = name
	}

	if !s.registry.Exists(eventID) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEvent, eventID)
	}
	if !s.registry.CheckPassword(eventID, password) {
		return nil, fmt.Errorf("%w: wrong password for event %s", ErrAuth, eventID)
	}

	result := &UploadResult{BatchID: uuid.New().String()}
	for i, file := range files {
		name := names[i]

		if err := s.photos.SavePhoto(eventID, name, file.Data); err != nil {
			return nil, fmt.Errorf("store photo %s: %w", name, err)
		}
		result.Stored = append(result.Stored, name)

		// Descriptor extraction is best effort per file; a photo without a
		// descriptor is kept but never matchable.
		descriptors, err := s.embedder.ExtractFaces(ctx, file.Data)
		if err != nil {
			log.Printf("upload %s: face extraction failed for %s/%s: %v", result.BatchID, eventID, name, err)
			continue
		}
		if len(descriptors) == 0 {
			continue
		}
		// Only the first detected face is kept for multi-face photos.
		if err := s.descriptors.Save(ctx, eventID, name, descriptors[0]); err != nil {
			log.Printf("upload %s: saving descriptor for %s/%s: %v", result.BatchID, eventID, name, err)
		}
	}

	return result, nil
}

// PhotoURL returns the serving path of a stored photo.
func PhotoURL(eventID, name string) string {
	return "/uploads/" + eventID + "/" + name
}

// Match compares the first face found in the guest image against every stored
// descriptor for the event and returns the URLs of all matching photos,
// sorted by photo name. An unknown event is indistinguishable from a wrong
// password. A zero-face guest image fails without touching presence tracking.
func (s *Service) Match(ctx context.Context, eventID, password, filename string, imageData []byte) ([]string, error) {
	if eventID == "" || password == "" || len(imageData) == 0 || !allowedFile(filename) {
		return nil, fmt.Errorf("%w: event identifier, password and a face image are required", ErrInvalidInput)
	}

	if !s.registry.CheckPassword(eventID, password) {
		return nil, fmt.Errorf("%w: invalid event or password", ErrAuth)
	}

	descriptors, err := s.embedder.ExtractFaces(ctx, imageData)
	if err != nil {
		return nil, fmt.Errorf("extracting guest face: %w", err)
	}
	if len(descriptors) == 0 {
		return nil, ErrNoFaceFound
	}
	guest := descriptors[0]

	stored, err := s.descriptors.List(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("listing descriptors for %s: %w", eventID, err)
	}

	var matched []string
	for _, sd := range stored {
		if embedder.Matches(sd.Descriptor, guest, s.threshold) {
			matched = append(matched, PhotoURL(eventID, sd.PhotoName))
		}
	}
	sort.Strings(matched)

	s.presence.Record(eventID, guest.Fingerprint())

	return matched, nil
}

// EventStats describes one event on the dashboard.
type EventStats struct {
	EventID    string `json:"event_id"`
	PhotoCount int    `json:"photo_count"`
}

// Stats is the read-only admin report. It is recomputed on every call.
type Stats struct {
	TotalEvents int          `json:"total_events"`
	TotalPhotos int          `json:"total_photos"`
	ActiveUsers int          `json:"active_users"`
	Events      []EventStats `json:"events"`
}

// Stats counts photos across all registered events (descriptor files are
// never counted) and reports distinct active guests.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	events := s.registry.Events()

	stats := &Stats{
		TotalEvents: len(events),
		ActiveUsers: s.presence.Count(),
		Events:      make([]EventStats, 0, len(events)),
	}
	for _, eventID := range events {
		photos, err := s.photos.ListPhotos(eventID)
		if err != nil {
			return nil, fmt.Errorf("counting photos for %s: %w", eventID, err)
		}
		stats.TotalPhotos += len(photos)
		stats.Events = append(stats.Events, EventStats{EventID: eventID, PhotoCount: len(photos)})
	}
	return stats, nil
}
