// Package registry provides the hierarchical key/value stores preview
// handler associations are discovered from.
package registry

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Separator joins key path segments.
const Separator = `\`

// Store is a read-only hierarchy of keys.
type Store interface {
	// OpenKey opens the key at path below the store root. Absent keys
	// report ErrNotExist.
	OpenKey(path string) (Key, error)
}

// Key is an open node of a Store.
type Key interface {
	OpenSubKey(path string) (Key, error)
	// DefaultValue returns the unnamed string value of the key, or
	// ErrNotExist when the key has none.
	DefaultValue() (string, error)
	Close() error
}

// NormalizePath folds case and trims separators so lookups behave like the
// case-insensitive Windows registry.
func NormalizePath(path string) string {
	path = strings.ReplaceAll(path, "/", Separator)
	path = strings.Trim(path, Separator)
	return cases.Fold().String(norm.NFC.String(path))
}

// Join joins key path segments, skipping empty ones.
func Join(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.Trim(p, Separator)
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, Separator)
}
