package gallery

import (
	"context"
	"crypto/subtle"
	"fmt"
	"sort"
	"sync"

	"github.com/kozaktomas/face-gallery/internal/storage"
)

// Registry maps event identifiers to their shared access passwords.
// All access goes through the mutex; handlers run concurrently.
type Registry struct {
	mu          sync.RWMutex
	events      map[string]string
	photos      storage.PhotoStore
	descriptors storage.DescriptorStore
}

// NewRegistry creates an empty registry. Deleting an event cascades into the
// given photo and descriptor stores.
func NewRegistry(photos storage.PhotoStore, descriptors storage.DescriptorStore) *Registry {
	return &Registry{
		events:      make(map[string]string),
		photos:      photos,
		descriptors: descriptors,
	}
}

// Create registers a new event. Both identifier and password are required;
// a duplicate identifier is a conflict.
func (r *Registry) Create(eventID, password string) error {
	if eventID == "" || password == "" {
		return fmt.Errorf("%w: event identifier and password are required", ErrInvalidInput)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.events[eventID]; ok {
		return fmt.Errorf("%w: %s", ErrConflict, eventID)
	}
	r.events[eventID] = password
	return nil
}

// Exists reports whether an event is registered.
func (r *Registry) Exists(eventID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.events[eventID]
	return ok
}

// CheckPassword reports whether the password matches the event's password.
// It fails closed for unknown events.
func (r *Registry) CheckPassword(eventID, password string) bool {
	r.mu.RLock()
	stored, ok := r.events[eventID]
	r.mu.RUnlock()
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(password)) == 1
}

// Events returns a sorted snapshot of registered event identifiers.
func (r *Registry) Events() []string {
	r.mu.RLock()
	ids := make([]string, 0, len(r.events))
	for id := range r.events {
		ids = append(ids, id)
	}
	r.mu.RUnlock()

	sort.Strings(ids)
	return ids
}

// Delete removes an event and cascades into photo and descriptor storage.
// Deleting an event that does not exist is a no-op.
func (r *Registry) Delete(ctx context.Context, eventID string) error {
	r.mu.Lock()
	_, existed := r.events[eventID]
	delete(r.events, eventID)
	r.mu.Unlock()

	if !existed {
		return nil
	}

	// Descriptors first so a partial failure never leaves descriptors
	// without their photos in the postgres backend.
	if err := r.descriptors.DeleteEvent(ctx, eventID); err != nil {
		return fmt.Errorf("cascade descriptor delete for %s: %w", eventID, err)
	}
	if err := r.photos.DeleteEvent(eventID); err != nil {
		return fmt.Errorf("cascade photo delete for %s: %w", eventID, err)
	}
	return nil
}
