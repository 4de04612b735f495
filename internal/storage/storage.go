// Package storage persists event photos and their face descriptors.
//
// Photo bytes always live on the local filesystem, one directory per event.
// Descriptors have two backends: files stored alongside each photo (default)
// and PostgreSQL with pgvector (enabled via DATABASE_URL). Both backends
// produce identical match results.
package storage

import (
	"context"

	"github.com/kozaktomas/face-gallery/internal/embedder"
)

// StoredDescriptor pairs a descriptor with the photo it was extracted from.
type StoredDescriptor struct {
	PhotoName  string
	Descriptor embedder.Descriptor
}

// PhotoStore provides access to raw photo bytes within an event namespace.
type PhotoStore interface {
	// SavePhoto writes photo bytes under the event's namespace.
	// An existing photo with the same name is overwritten (last-write-wins).
	SavePhoto(eventID, name string, data []byte) error
	// ListPhotos returns the photo filenames for an event, sorted.
	// Descriptor files are never included. A missing event directory
	// yields an empty list, not an error.
	ListPhotos(eventID string) ([]string, error)
	// PhotoPath returns the filesystem path of a stored photo for serving.
	// It rejects descriptor files and names that escape the event namespace.
	PhotoPath(eventID, name string) (string, error)
	// DeleteEvent removes the event's entire namespace. Idempotent.
	DeleteEvent(eventID string) error
}

// DescriptorStore persists one descriptor per photo, keyed by event and
// photo name.
type DescriptorStore interface {
	// Save persists the descriptor for a photo, replacing any previous one.
	Save(ctx context.Context, eventID, photoName string, d embedder.Descriptor) error
	// List enumerates every stored descriptor for an event.
	List(ctx context.Context, eventID string) ([]StoredDescriptor, error)
	// DeleteEvent removes all descriptors for an event. Idempotent.
	DeleteEvent(ctx context.Context, eventID string) error
}
