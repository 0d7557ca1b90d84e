package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ReadDir lists dirPath, directories first, then by case-insensitive name.
// Hidden entries are dropped when hideHidden is set.
func ReadDir(dirPath string, hideHidden bool) ([]Entry, error) {
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, fmt.Errorf("cannot read directory %s: %w", dirPath, err)
	}

	visible := make([]Entry, 0, len(entries))
	for _, e := range entries {
		info, err := e.Info()
		if err != nil {
			continue
		}

		rawName := e.Name()
		fullPath := filepath.Join(dirPath, rawName)

		if ShouldHideFromListing(fullPath, rawName) {
			continue
		}
		if hideHidden && IsHidden(fullPath, rawName) {
			continue
		}

		isDir := e.IsDir()
		isSymlink := (info.Mode() & os.ModeSymlink) != 0

		// For symlinks, check if target is a directory
		if isSymlink {
			if targetInfo, err := os.Stat(fullPath); err == nil {
				isDir = targetInfo.IsDir()
			}
		}

		visible = append(visible, Entry{
			Name:      norm.NFC.String(rawName),
			FullPath:  fullPath,
			IsDir:     isDir,
			IsSymlink: isSymlink,
			Size:      info.Size(),
			Modified:  info.ModTime(),
			Mode:      info.Mode(),
		})
	}

	sort.SliceStable(visible, func(i, j int) bool {
		if visible[i].IsDir != visible[j].IsDir {
			return visible[i].IsDir
		}
		return strings.ToLower(visible[i].Name) < strings.ToLower(visible[j].Name)
	})
	return visible, nil
}
