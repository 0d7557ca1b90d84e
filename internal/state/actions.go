package state

// Action represents a user intent or a host notification.
type Action interface{}

// ===== NAVIGATION =====

type NavigateUpAction struct{}
type NavigateDownAction struct{}
type PageUpAction struct{}
type PageDownAction struct{}
type EnterDirectoryAction struct{}
type GoUpAction struct{}
type RefreshAction struct{}
type ToggleHiddenFilesAction struct{}

// ===== SCREEN =====

type ResizeAction struct {
	Width  int
	Height int
}

// ===== PREVIEW =====

type TogglePreviewAction struct{}
type ToggleThemeAction struct{}
type FocusPreviewAction struct{}
type FocusListAction struct{}
type YankAction struct{}

// YankDoneAction reports the result of copying the previewed file.
type YankDoneAction struct {
	Err error
}

// PreviewStatusAction reports the outcome of a preview load for Path.
type PreviewStatusAction struct {
	Path   string
	Status PreviewStatus
	Err    error
}

// ===== APPLICATION =====

type QuitAction struct{}
type SuspendAction struct{}
