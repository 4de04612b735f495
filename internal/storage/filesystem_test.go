package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/kozaktomas/face-gallery/internal/embedder"
)

func newTestFilesystem(t *testing.T) *Filesystem {
	t.Helper()
	fs, err := NewFilesystem(t.TempDir())
	if err != nil {
		t.Fatalf("NewFilesystem failed: %v", err)
	}
	return fs
}

func TestSavePhotoAndListPhotos(t *testing.T) {
	fs := newTestFilesystem(t)

	for _, name := range []string{"zebra.jpg", "alpha.png", "middle.jpeg"} {
		if err := fs.SavePhoto("party", name, []byte("image")); err != nil {
			t.Fatalf("SavePhoto(%s) failed: %v", name, err)
		}
	}
	// Files that are not photos stay invisible to listings.
	if err := os.WriteFile(filepath.Join(fs.Root(), "party", "alpha.png.enc"), []byte("enc"), 0o640); err != nil {
		t.Fatalf("writing descriptor file failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(fs.Root(), "party", "notes.txt"), []byte("text"), 0o640); err != nil {
		t.Fatalf("writing stray file failed: %v", err)
	}

	photos, err := fs.ListPhotos("party")
	if err != nil {
		t.Fatalf("ListPhotos failed: %v", err)
	}
	expected := []string{"alpha.png", "middle.jpeg", "zebra.jpg"}
	if len(photos) != len(expected) {
		t.Fatalf("got %v, want %v", photos, expected)
	}
	for i, name := range expected {
		if photos[i] != name {
			t.Errorf("photos[%d] = %q, want %q", i, photos[i], name)
		}
	}
}

func TestListPhotosMissingEvent(t *testing.T) {
	fs := newTestFilesystem(t)

	photos, err := fs.ListPhotos("nobody-uploaded-yet")
	if err != nil {
		t.Fatalf("ListPhotos failed: %v", err)
	}
	if len(photos) != 0 {
		t.Errorf("got %v, want empty", photos)
	}
}

func TestSavePhotoRejectsUnsafeNames(t *testing.T) {
	fs := newTestFilesystem(t)

	tests := []struct {
		name    string
		eventID string
		file    string
	}{
		{"event traversal", "../outside", "a.jpg"},
		{"hidden event", ".git", "a.jpg"},
		{"empty event", "", "a.jpg"},
		{"file traversal", "party", "../../etc/passwd"},
		{"hidden file", "party", ".htaccess"},
		{"empty file", "party", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := fs.SavePhoto(tc.eventID, tc.file, []byte("x")); err == nil {
				t.Errorf("SavePhoto(%q, %q) should fail", tc.eventID, tc.file)
			}
		})
	}
}

func TestPhotoPath(t *testing.T) {
	fs := newTestFilesystem(t)
	if err := fs.SavePhoto("party", "a.jpg", []byte("image")); err != nil {
		t.Fatalf("SavePhoto failed: %v", err)
	}

	path, err := fs.PhotoPath("party", "a.jpg")
	if err != nil {
		t.Fatalf("PhotoPath failed: %v", err)
	}
	if path != filepath.Join(fs.Root(), "party", "a.jpg") {
		t.Errorf("unexpected path %q", path)
	}

	if _, err := fs.PhotoPath("party", "missing.jpg"); err == nil {
		t.Error("PhotoPath should fail for a missing photo")
	}
	if _, err := fs.PhotoPath("party", "../a.jpg"); err == nil {
		t.Error("PhotoPath should fail for a traversal name")
	}
	if _, err := fs.PhotoPath("../party", "a.jpg"); err == nil {
		t.Error("PhotoPath should fail for a traversal event")
	}
}

func TestPhotoPathRefusesDescriptorFiles(t *testing.T) {
	fs := newTestFilesystem(t)
	if err := fs.SavePhoto("party", "a.jpg", []byte("image")); err != nil {
		t.Fatalf("SavePhoto failed: %v", err)
	}
	descriptors := NewDescriptorFiles(fs)
	if err := descriptors.Save(context.Background(), "party", "a.jpg", embedder.Descriptor{1, 2, 3}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if _, err := fs.PhotoPath("party", "a.jpg.enc"); err == nil {
		t.Error("descriptor files must never be servable")
	}
}

func TestDescriptorFilesRoundTrip(t *testing.T) {
	fs := newTestFilesystem(t)
	descriptors := NewDescriptorFiles(fs)
	ctx := context.Background()

	if err := descriptors.Save(ctx, "party", "a.jpg", embedder.Descriptor{0.5, -1.25, 3}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := descriptors.Save(ctx, "party", "b.jpg", embedder.Descriptor{1, 0, 0}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	stored, err := descriptors.List(ctx, "party")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("got %d descriptors, want 2", len(stored))
	}
	if stored[0].PhotoName != "a.jpg" || stored[1].PhotoName != "b.jpg" {
		t.Errorf("unexpected photo names: %+v", stored)
	}
	if stored[0].Descriptor[1] != -1.25 {
		t.Errorf("descriptor did not round trip: %v", stored[0].Descriptor)
	}
}

func TestDescriptorFilesListSkipsCorrupt(t *testing.T) {
	fs := newTestFilesystem(t)
	descriptors := NewDescriptorFiles(fs)
	ctx := context.Background()

	if err := descriptors.Save(ctx, "party", "good.jpg", embedder.Descriptor{1, 0}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(fs.Root(), "party", "bad.jpg.enc"), []byte{1, 2, 3}, 0o640); err != nil {
		t.Fatalf("writing corrupt descriptor failed: %v", err)
	}

	stored, err := descriptors.List(ctx, "party")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(stored) != 1 || stored[0].PhotoName != "good.jpg" {
		t.Errorf("got %+v, want only good.jpg", stored)
	}
}

func TestDescriptorFilesDeleteEventKeepsPhotos(t *testing.T) {
	fs := newTestFilesystem(t)
	descriptors := NewDescriptorFiles(fs)
	ctx := context.Background()

	if err := fs.SavePhoto("party", "a.jpg", []byte("image")); err != nil {
		t.Fatalf("SavePhoto failed: %v", err)
	}
	if err := descriptors.Save(ctx, "party", "a.jpg", embedder.Descriptor{1}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if err := descriptors.DeleteEvent(ctx, "party"); err != nil {
		t.Fatalf("DeleteEvent failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(fs.Root(), "party", "a.jpg.enc")); !os.IsNotExist(err) {
		t.Errorf("descriptor file should be gone, stat err = %v", err)
	}
	if _, err := os.Stat(filepath.Join(fs.Root(), "party", "a.jpg")); err != nil {
		t.Errorf("photo file should survive descriptor deletion: %v", err)
	}
}

func TestFilesystemDeleteEventIdempotent(t *testing.T) {
	fs := newTestFilesystem(t)
	if err := fs.SavePhoto("party", "a.jpg", []byte("image")); err != nil {
		t.Fatalf("SavePhoto failed: %v", err)
	}

	if err := fs.DeleteEvent("party"); err != nil {
		t.Fatalf("DeleteEvent failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(fs.Root(), "party")); !os.IsNotExist(err) {
		t.Errorf("event directory should be gone, stat err = %v", err)
	}
	if err := fs.DeleteEvent("party"); err != nil {
		t.Errorf("repeated DeleteEvent failed: %v", err)
	}
}
