//go:build !windows

package registry

import "log/slog"

// Platform returns the association store for this OS. Without a registry,
// only the association file is consulted; an empty path gives an empty store.
func Platform(associations string, logger *slog.Logger) (Store, error) {
	if associations == "" {
		return NewMemoryStore(nil), nil
	}
	return OpenFileStore(associations, logger)
}
