package state

import (
	"path/filepath"
	"time"

	fsutil "github.com/kk-code-lab/previewhost/internal/fs"
)

// StateReducer applies actions to AppState. It remembers the selection of
// every directory it leaves so going back restores it.
type StateReducer struct {
	selectionHistory map[string]string
	readDir          func(string, bool) ([]FileEntry, error)
	now              func() time.Time
}

// NewStateReducer creates a reducer reading directories from disk.
func NewStateReducer() *StateReducer {
	return &StateReducer{
		selectionHistory: make(map[string]string),
		readDir:          fsutil.ReadDir,
		now:              time.Now,
	}
}

// LoadDirectory lists state.CurrentPath into state.Files.
func (r *StateReducer) LoadDirectory(state *AppState) error {
	files, err := r.readDir(state.CurrentPath, state.HideHiddenFiles)
	if err != nil {
		return err
	}
	state.Files = files
	state.resetViewport()
	return nil
}

// Reduce applies action to state in place.
func (r *StateReducer) Reduce(state *AppState, action Action) (*AppState, error) {
	switch a := action.(type) {

	// ===== NAVIGATION =====

	case NavigateDownAction:
		if len(state.Files) == 0 || state.SelectedIndex >= len(state.Files)-1 {
			return state, nil
		}
		state.SelectedIndex++
		state.updateScrollVisibility()

	case NavigateUpAction:
		if len(state.Files) == 0 || state.SelectedIndex <= 0 {
			return state, nil
		}
		state.SelectedIndex--
		state.updateScrollVisibility()

	case PageDownAction:
		if len(state.Files) == 0 {
			return state, nil
		}
		state.SelectedIndex = min(state.SelectedIndex+state.listHeight(), len(state.Files)-1)
		state.updateScrollVisibility()

	case PageUpAction:
		if len(state.Files) == 0 {
			return state, nil
		}
		state.SelectedIndex = max(state.SelectedIndex-state.listHeight(), 0)
		state.updateScrollVisibility()

	case EnterDirectoryAction:
		file := state.CurrentFile()
		if file == nil || !file.IsDir {
			return state, nil
		}
		r.selectionHistory[state.CurrentPath] = file.Name
		return state, r.changeDirectory(state, filepath.Join(state.CurrentPath, file.Name), "")

	case GoUpAction:
		parent := filepath.Dir(state.CurrentPath)
		if parent == state.CurrentPath {
			return state, nil
		}
		if file := state.CurrentFile(); file != nil {
			r.selectionHistory[state.CurrentPath] = file.Name
		}
		return state, r.changeDirectory(state, parent, filepath.Base(state.CurrentPath))

	case RefreshAction:
		return state, r.reload(state)

	case ToggleHiddenFilesAction:
		state.HideHiddenFiles = !state.HideHiddenFiles
		return state, r.reload(state)

	// ===== SCREEN =====

	case ResizeAction:
		state.ScreenWidth = a.Width
		state.ScreenHeight = a.Height
		state.updateScrollVisibility()

	// ===== PREVIEW =====

	case TogglePreviewAction:
		state.PreviewVisible = !state.PreviewVisible
		if !state.PreviewVisible {
			state.Focus = FocusList
		}

	case ToggleThemeAction:
		state.DarkTheme = !state.DarkTheme

	case FocusPreviewAction:
		if state.PreviewVisible && state.PreviewStatus == PreviewLoaded {
			state.Focus = FocusPreview
		}

	case FocusListAction:
		state.Focus = FocusList

	case YankDoneAction:
		if a.Err != nil {
			state.LastError = a.Err
			return state, nil
		}
		state.LastYankTime = r.now()

	case PreviewStatusAction:
		if a.Path != state.PreviewPath && a.Status != PreviewLoading && a.Status != PreviewNone {
			// Outcome of a load that was superseded.
			return state, nil
		}
		state.PreviewPath = a.Path
		state.PreviewStatus = a.Status
		state.PreviewErr = a.Err
		if a.Status != PreviewLoaded {
			state.Focus = FocusList
		}

	default:
		return state, nil
	}

	state.LastError = nil
	return state, nil
}

func (r *StateReducer) changeDirectory(state *AppState, path, selectName string) error {
	files, err := r.readDir(path, state.HideHiddenFiles)
	if err != nil {
		state.LastError = err
		return err
	}
	state.CurrentPath = path
	state.Files = files
	state.LastError = nil
	state.Focus = FocusList
	state.resetViewport()

	if selectName == "" {
		selectName = r.selectionHistory[path]
	}
	r.selectName(state, selectName)
	return nil
}

// reload lists the current directory again, keeping the selected name.
func (r *StateReducer) reload(state *AppState) error {
	selected := ""
	if file := state.CurrentFile(); file != nil {
		selected = file.Name
	}
	files, err := r.readDir(state.CurrentPath, state.HideHiddenFiles)
	if err != nil {
		state.LastError = err
		return err
	}
	state.Files = files
	state.resetViewport()
	r.selectName(state, selected)
	return nil
}

func (r *StateReducer) selectName(state *AppState, name string) {
	if name == "" {
		return
	}
	if idx := findFileIndexByName(state.Files, name); idx >= 0 {
		state.SelectedIndex = idx
		state.updateScrollVisibility()
	}
}

func findFileIndexByName(files []FileEntry, name string) int {
	for i, f := range files {
		if f.Name == name {
			return i
		}
	}
	return -1
}
