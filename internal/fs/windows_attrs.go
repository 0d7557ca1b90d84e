//go:build windows

package fs

import (
	"os"

	"golang.org/x/sys/windows"
)

// getFileAttributes resolves Windows file attributes for the provided path,
// falling back to the bare name when the path does not exist.
func getFileAttributes(fullPath, name string) (uint32, error) {
	target := fullPath
	if target == "" {
		target = name
	}
	if target == "" {
		return 0, os.ErrInvalid
	}

	attrs, err := attributesOf(target)
	if err == nil {
		return attrs, nil
	}
	if os.IsNotExist(err) && fullPath != "" && fullPath != name {
		if alt, altErr := attributesOf(name); altErr == nil {
			return alt, nil
		}
	}
	return 0, err
}

func attributesOf(path string) (uint32, error) {
	ptr, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return 0, err
	}
	return windows.GetFileAttributes(ptr)
}
