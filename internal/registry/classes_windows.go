//go:build windows

package registry

import (
	"errors"
	"log/slog"

	winreg "golang.org/x/sys/windows/registry"
)

// ClassesRoot is the Store view of HKEY_CLASSES_ROOT.
type ClassesRoot struct{}

// OpenKey implements Store.
func (ClassesRoot) OpenKey(path string) (Key, error) {
	return openWindowsKey(winreg.CLASSES_ROOT, path)
}

type windowsKey struct {
	k winreg.Key
}

func openWindowsKey(parent winreg.Key, path string) (Key, error) {
	k, err := winreg.OpenKey(parent, path, winreg.QUERY_VALUE|winreg.ENUMERATE_SUB_KEYS)
	if err != nil {
		return nil, translateErr(err)
	}
	return &windowsKey{k: k}, nil
}

func (w *windowsKey) OpenSubKey(path string) (Key, error) {
	return openWindowsKey(w.k, path)
}

func (w *windowsKey) DefaultValue() (string, error) {
	v, _, err := w.k.GetStringValue("")
	if err != nil {
		return "", translateErr(err)
	}
	return v, nil
}

func (w *windowsKey) Close() error {
	return w.k.Close()
}

func translateErr(err error) error {
	if errors.Is(err, winreg.ErrNotExist) {
		return ErrNotExist
	}
	return err
}

// Platform returns the association store for this OS. An explicit
// association file overrides the system registry.
func Platform(associations string, logger *slog.Logger) (Store, error) {
	if associations != "" {
		return OpenFileStore(associations, logger)
	}
	return ClassesRoot{}, nil
}
