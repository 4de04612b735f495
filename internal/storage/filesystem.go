package storage

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kozaktomas/face-gallery/internal/constants"
	"github.com/kozaktomas/face-gallery/internal/embedder"
)

// Filesystem stores photos and descriptors under a root directory, one
// subdirectory per event. Descriptors live next to their photo as
// "<name>.enc". It implements both PhotoStore and DescriptorStore.
type Filesystem struct {
	root string
}

// NewFilesystem creates the storage root if needed.
func NewFilesystem(root string) (*Filesystem, error) {
	if root == "" {
		return nil, errors.New("storage root is required")
	}
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	return &Filesystem{root: root}, nil
}

// Root returns the storage root directory.
func (f *Filesystem) Root() string {
	return f.root
}

// eventDir returns the directory for an event, refusing identifiers that
// would escape the root.
func (f *Filesystem) eventDir(eventID string) (string, error) {
	if eventID == "" || eventID != filepath.Base(eventID) || strings.HasPrefix(eventID, ".") {
		return "", fmt.Errorf("invalid event identifier %q", eventID)
	}
	return filepath.Join(f.root, eventID), nil
}

// safeName validates a storage-local filename.
func safeName(name string) error {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return fmt.Errorf("invalid filename %q", name)
	}
	return nil
}

func (f *Filesystem) SavePhoto(eventID, name string, data []byte) error {
	dir, err := f.eventDir(eventID)
	if err != nil {
		return err
	}
	if err := safeName(name); err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create event directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o640); err != nil {
		return fmt.Errorf("write photo %s: %w", name, err)
	}
	return nil
}

func (f *Filesystem) ListPhotos(eventID string) ([]string, error) {
	dir, err := f.eventDir(eventID)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list event %s: %w", eventID, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
		if constants.AllowedExtension(ext) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

func (f *Filesystem) PhotoPath(eventID, name string) (string, error) {
	dir, err := f.eventDir(eventID)
	if err != nil {
		return "", err
	}
	if err := safeName(name); err != nil {
		return "", err
	}
	if strings.HasSuffix(strings.ToLower(name), constants.DescriptorSuffix) {
		return "", fmt.Errorf("descriptor file %q is not servable", name)
	}
	path := filepath.Join(dir, name)
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("photo %s/%s: %w", eventID, name, err)
	}
	return path, nil
}

func (f *Filesystem) DeleteEvent(eventID string) error {
	dir, err := f.eventDir(eventID)
	if err != nil {
		return err
	}
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("delete event %s: %w", eventID, err)
	}
	return nil
}

// DescriptorFiles stores descriptors as "<name>.enc" files next to their
// photos, sharing the Filesystem root. It implements DescriptorStore.
type DescriptorFiles struct {
	fs *Filesystem
}

// NewDescriptorFiles returns the file-based descriptor store for fs.
func NewDescriptorFiles(fs *Filesystem) *DescriptorFiles {
	return &DescriptorFiles{fs: fs}
}

// Save persists the descriptor next to its photo as "<name>.enc".
func (s *DescriptorFiles) Save(_ context.Context, eventID, photoName string, d embedder.Descriptor) error {
	f := s.fs
	dir, err := f.eventDir(eventID)
	if err != nil {
		return err
	}
	if err := safeName(photoName); err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create event directory: %w", err)
	}
	path := filepath.Join(dir, photoName+constants.DescriptorSuffix)
	if err := os.WriteFile(path, d.Encode(), 0o640); err != nil {
		return fmt.Errorf("write descriptor for %s: %w", photoName, err)
	}
	return nil
}

// List reads every descriptor file for the event. Corrupt descriptor files
// are skipped with a log line so one bad file cannot break matching.
func (s *DescriptorFiles) List(_ context.Context, eventID string) ([]StoredDescriptor, error) {
	dir, err := s.fs.eventDir(eventID)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list descriptors for %s: %w", eventID, err)
	}

	var stored []StoredDescriptor
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, constants.DescriptorSuffix) {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			log.Printf("storage: read descriptor %s/%s: %v", eventID, name, err)
			continue
		}
		d, err := embedder.Decode(data)
		if err != nil {
			log.Printf("storage: decode descriptor %s/%s: %v", eventID, name, err)
			continue
		}
		stored = append(stored, StoredDescriptor{
			PhotoName:  strings.TrimSuffix(name, constants.DescriptorSuffix),
			Descriptor: d,
		})
	}
	return stored, nil
}

// DeleteEvent removes the descriptor files for an event. Photo bytes in the
// same directory are untouched; the photo-store DeleteEvent removes the
// whole namespace.
func (s *DescriptorFiles) DeleteEvent(_ context.Context, eventID string) error {
	dir, err := s.fs.eventDir(eventID)
	if err != nil {
		return err
	}
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("list descriptors for %s: %w", eventID, err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), constants.DescriptorSuffix) {
			continue
		}
		if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil {
			return fmt.Errorf("delete descriptor %s: %w", entry.Name(), err)
		}
	}
	return nil
}
