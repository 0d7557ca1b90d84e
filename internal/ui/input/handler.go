package input

import (
	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/previewhost/internal/state"
)

// InputHandler converts tcell events to Actions
type InputHandler struct {
	actionChan chan statepkg.Action
	state      *statepkg.AppState // Reference to current state for focus checking
}

// NewInputHandler creates a new input handler
func NewInputHandler(actionChan chan statepkg.Action) *InputHandler {
	return &InputHandler{
		actionChan: actionChan,
	}
}

// SetState sets the state reference for focus checking
func (ih *InputHandler) SetState(state *statepkg.AppState) {
	ih.state = state
}

// ProcessEvent converts a tcell event into an Action. It returns false
// when the event asks the application to quit.
func (ih *InputHandler) ProcessEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return ih.processKeyEvent(ev)
	case *tcell.EventResize:
		w, h := ev.Size()
		ih.actionChan <- statepkg.ResizeAction{Width: w, Height: h}
		return true
	default:
		return true
	}
}

func (ih *InputHandler) processKeyEvent(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyCtrlC {
		ih.actionChan <- statepkg.QuitAction{}
		return false
	}

	// The embedded preview owns the keyboard until focus is handed back.
	if ih.state != nil && ih.state.Focus == statepkg.FocusPreview {
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyTab, tcell.KeyBacktab:
			ih.actionChan <- statepkg.FocusListAction{}
		}
		return true
	}

	switch ev.Key() {
	case tcell.KeyUp:
		ih.actionChan <- statepkg.NavigateUpAction{}
	case tcell.KeyDown:
		ih.actionChan <- statepkg.NavigateDownAction{}
	case tcell.KeyPgUp:
		ih.actionChan <- statepkg.PageUpAction{}
	case tcell.KeyPgDn:
		ih.actionChan <- statepkg.PageDownAction{}
	case tcell.KeyEnter, tcell.KeyRight:
		ih.actionChan <- statepkg.EnterDirectoryAction{}
	case tcell.KeyBackspace, tcell.KeyBackspace2, tcell.KeyLeft:
		ih.actionChan <- statepkg.GoUpAction{}
	case tcell.KeyTab:
		ih.actionChan <- statepkg.FocusPreviewAction{}
	case tcell.KeyCtrlZ:
		ih.actionChan <- statepkg.SuspendAction{}
	case tcell.KeyRune:
		return ih.processRune(ev.Rune())
	}
	return true
}

func (ih *InputHandler) processRune(r rune) bool {
	switch r {
	case 'q', 'Q':
		ih.actionChan <- statepkg.QuitAction{}
		return false
	case 'j':
		ih.actionChan <- statepkg.NavigateDownAction{}
	case 'k':
		ih.actionChan <- statepkg.NavigateUpAction{}
	case 'l':
		ih.actionChan <- statepkg.EnterDirectoryAction{}
	case 'h':
		ih.actionChan <- statepkg.GoUpAction{}
	case 'y':
		ih.actionChan <- statepkg.YankAction{}
	case 't':
		ih.actionChan <- statepkg.ToggleThemeAction{}
	case 'p':
		ih.actionChan <- statepkg.TogglePreviewAction{}
	case '.':
		ih.actionChan <- statepkg.ToggleHiddenFilesAction{}
	case 'r':
		ih.actionChan <- statepkg.RefreshAction{}
	}
	return true
}
