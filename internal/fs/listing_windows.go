//go:build windows

package fs

import "golang.org/x/sys/windows"

// ShouldHideFromListing reports whether an entry should never appear in listings,
// even when hidden files are shown (e.g., Windows compatibility junctions).
func ShouldHideFromListing(fullPath, name string) bool {
	if fullPath == "" && name == "" {
		return false
	}

	attrs, err := getFileAttributes(fullPath, name)
	if err != nil {
		return false
	}

	const protectedMask = windows.FILE_ATTRIBUTE_SYSTEM | windows.FILE_ATTRIBUTE_REPARSE_POINT
	return attrs&protectedMask == protectedMask
}
