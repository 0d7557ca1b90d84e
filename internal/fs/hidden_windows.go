//go:build windows

package fs

import "golang.org/x/sys/windows"

// IsHidden checks the hidden attribute, falling back to the dot-file
// convention when attributes cannot be read.
func IsHidden(fullPath string, name string) bool {
	attrs, err := getFileAttributes(fullPath, name)
	if err != nil {
		return len(name) > 0 && name[0] == '.'
	}
	return attrs&windows.FILE_ATTRIBUTE_HIDDEN != 0
}
