package gallery

import (
	"path"
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// removeDiacritics removes diacritical marks from a string (e.g., "Jiří" -> "Jiri").
func removeDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)
	return result
}

// SanitizeFilename turns a client-supplied filename into a safe storage-local
// name: path components stripped, diacritics removed, anything outside
// [A-Za-z0-9._-] replaced with an underscore, leading dots dropped.
// Two uploads in the same event that sanitize to the same name overwrite
// each other (last-write-wins); this is an accepted risk.
func SanitizeFilename(name string) string {
	// Strip directories from both path flavors; browsers on Windows send
	// backslash-separated paths.
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(name)
	name = filepath.Base(name)

	name = removeDiacritics(name)

	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '_' || r == '-':
			b.WriteRune(r)
		case r == ' ':
			b.WriteByte('_')
		default:
			b.WriteByte('_')
		}
	}

	return strings.TrimLeft(b.String(), ".")
}
