package state

import (
	"path/filepath"
	"time"

	fsutil "github.com/kk-code-lab/previewhost/internal/fs"
)

// FileEntry mirrors fs.Entry so UI/state code can rely on a stable type.
type FileEntry = fsutil.Entry

// PreviewStatus mirrors the host state of the file in the preview pane.
type PreviewStatus int

const (
	PreviewNone PreviewStatus = iota
	PreviewLoading
	PreviewLoaded
	PreviewUnsupported
	PreviewFailed
)

func (s PreviewStatus) String() string {
	switch s {
	case PreviewLoading:
		return "loading"
	case PreviewLoaded:
		return "loaded"
	case PreviewUnsupported:
		return "no preview available"
	case PreviewFailed:
		return "preview failed"
	default:
		return ""
	}
}

// Focus identifies which pane receives keyboard input.
type Focus int

const (
	FocusList Focus = iota
	FocusPreview
)

// AppState is the single source of truth
type AppState struct {
	// Navigation & filesystem
	CurrentPath string
	Files       []FileEntry

	// Selection & viewport
	SelectedIndex int
	ScrollOffset  int

	HideHiddenFiles bool

	// Preview pane
	PreviewVisible bool
	PreviewPath    string
	PreviewStatus  PreviewStatus
	PreviewErr     error
	Focus          Focus
	DarkTheme      bool

	// Dimensions
	ScreenWidth  int
	ScreenHeight int

	// Status line
	ClipboardAvailable bool
	LastYankTime       time.Time

	// Error state
	LastError error
}

// CurrentFile returns the selected entry, nil when the listing is empty.
func (s *AppState) CurrentFile() *FileEntry {
	if s.SelectedIndex < 0 || s.SelectedIndex >= len(s.Files) {
		return nil
	}
	return &s.Files[s.SelectedIndex]
}

// CurrentFilePath returns the path of the selected entry, or the current
// directory when nothing is selected.
func (s *AppState) CurrentFilePath() string {
	current := s.CurrentPath
	if current == "" {
		current = "."
	}
	if file := s.CurrentFile(); file != nil {
		current = filepath.Join(current, file.Name)
	}
	return filepath.Clean(current)
}

// PreviewTarget returns the file the preview pane should show, nil for
// directories and empty listings.
func (s *AppState) PreviewTarget() *FileEntry {
	file := s.CurrentFile()
	if file == nil || file.IsDir {
		return nil
	}
	return file
}

// listHeight is the number of rows available to the file list.
func (s *AppState) listHeight() int {
	// header + status line
	h := s.ScreenHeight - 2
	if h < 1 {
		return 1
	}
	return h
}

func (s *AppState) updateScrollVisibility() {
	visible := s.listHeight()
	if s.SelectedIndex < s.ScrollOffset {
		s.ScrollOffset = s.SelectedIndex
	}
	if s.SelectedIndex >= s.ScrollOffset+visible {
		s.ScrollOffset = s.SelectedIndex - visible + 1
	}
	maxOffset := len(s.Files) - visible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if s.ScrollOffset > maxOffset {
		s.ScrollOffset = maxOffset
	}
	if s.ScrollOffset < 0 {
		s.ScrollOffset = 0
	}
}

func (s *AppState) resetViewport() {
	s.SelectedIndex = 0
	s.ScrollOffset = 0
	if len(s.Files) == 0 {
		s.SelectedIndex = -1
	}
}
