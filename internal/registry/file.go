package registry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// associationFile is the on-disk layout of a FileStore:
//
//	keys:
//	  .md: markdownfile
//	  markdownfile\shellex\{8895b1c6-b41f-4c1c-a562-0d564250836f}: "{...}"
type associationFile struct {
	Keys map[string]string `yaml:"keys"`
}

// FileStore is a Store backed by a YAML association file. The parsed image
// is replaced atomically on Reload, so readers never observe a partial file.
type FileStore struct {
	path    string
	logger  *slog.Logger
	current atomic.Pointer[MemoryStore]
}

// OpenFileStore loads the association file at path. A missing file yields an
// empty store; the file may be created later and picked up by Watch.
func OpenFileStore(path string, logger *slog.Logger) (*FileStore, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &FileStore{path: path, logger: logger}
	s.current.Store(NewMemoryStore(nil))
	if err := s.Reload(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	return s, nil
}

// Path returns the association file location.
func (s *FileStore) Path() string {
	return s.path
}

// OpenKey implements Store.
func (s *FileStore) OpenKey(path string) (Key, error) {
	return s.current.Load().OpenKey(path)
}

// Reload re-reads the association file. On error the previous image stays.
func (s *FileStore) Reload() error {
	f, err := os.Open(s.path)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	store, err := ParseAssociations(f)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", s.path, err)
	}
	s.current.Store(store)
	s.logger.Debug("associations loaded", slog.String("path", s.path), slog.Int("keys", store.Len()))
	return nil
}

// ParseAssociations decodes an association document into a MemoryStore.
func ParseAssociations(r io.Reader) (*MemoryStore, error) {
	var doc associationFile
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return NewMemoryStore(doc.Keys), nil
}

// Watch reloads the store whenever the association file changes, until ctx
// is done. The parent directory is watched so editors that replace the file
// by rename are handled.
func (s *FileStore) Watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() {
		_ = w.Close()
	}()

	dir := filepath.Dir(s.path)
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	target := filepath.Clean(s.path)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if err := s.Reload(); err != nil {
				s.logger.Warn("reloading associations failed", slog.String("path", s.path), slog.Any("error", err))
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("association watcher error", slog.Any("error", err))
		}
	}
}
