package fs

import (
	"context"
	"os"
	"path/filepath"
	"time"
)

// Entry represents a single file or directory on disk.
type Entry struct {
	Name      string
	FullPath  string
	IsDir     bool
	IsSymlink bool
	Size      int64
	Modified  time.Time
	Mode      os.FileMode
}

// StorageItem is the clipboard-ready projection of a file.
type StorageItem struct {
	Path     string
	Name     string
	IsDir    bool
	Size     int64
	Modified time.Time
}

// IsHidden reports whether the entry should be treated as hidden.
func (e Entry) IsHidden() bool {
	return IsHidden(e.FullPath, e.Name)
}

// Path returns the absolute path of the entry.
func (e Entry) Path() string {
	return e.FullPath
}

// Extension returns the file name extension including the dot.
func (e Entry) Extension() string {
	if e.IsDir {
		return ""
	}
	return filepath.Ext(e.Name)
}

// StorageItem stats the entry again so the clipboard sees current metadata.
func (e Entry) StorageItem(ctx context.Context) (StorageItem, error) {
	if err := ctx.Err(); err != nil {
		return StorageItem{}, err
	}
	info, err := os.Stat(e.FullPath)
	if err != nil {
		return StorageItem{}, err
	}
	return StorageItem{
		Path:     e.FullPath,
		Name:     e.Name,
		IsDir:    info.IsDir(),
		Size:     info.Size(),
		Modified: info.ModTime(),
	}, nil
}
