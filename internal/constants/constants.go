// Package constants provides shared constants used across the codebase.
// Centralizing these values ensures consistency and makes them easier to modify.
package constants

import "strings"

// MaxUploadSize is the maximum total size of a multipart upload request (64 MB).
// The image downscale bound lives in config (matching.yaml max_image_size).
const MaxUploadSize = 64 << 20

// Face matching constants
const (
	// DefaultMatchThreshold is the default minimum cosine similarity for a
	// stored descriptor to count as the same person
	DefaultMatchThreshold = 0.45
)

// DescriptorSuffix is appended to a photo filename to form its descriptor
// file name. Descriptor files never appear in photo listings.
const DescriptorSuffix = ".enc"

// allowedExtensions lists the image file extensions accepted for upload
// and guest matching (lowercase, without dot).
var allowedExtensions = map[string]struct{}{
	"png":  {},
	"jpg":  {},
	"jpeg": {},
}

// AllowedExtension reports whether ext (without dot, any case) is an
// accepted image extension.
func AllowedExtension(ext string) bool {
	_, ok := allowedExtensions[strings.ToLower(ext)]
	return ok
}
