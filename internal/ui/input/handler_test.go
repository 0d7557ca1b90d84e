package input

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/previewhost/internal/state"
)

func expectAction[T statepkg.Action](t *testing.T, actionChan chan statepkg.Action) {
	t.Helper()
	select {
	case action := <-actionChan:
		if _, ok := action.(T); !ok {
			var want T
			t.Fatalf("Expected %T, got %T", want, action)
		}
	default:
		var want T
		t.Fatalf("Expected %T to be emitted", want)
	}
}

func expectNoAction(t *testing.T, actionChan chan statepkg.Action) {
	t.Helper()
	select {
	case action := <-actionChan:
		t.Fatalf("Expected no action, got %T", action)
	default:
	}
}

func TestKeysMapToActions(t *testing.T) {
	tests := []struct {
		name  string
		event *tcell.EventKey
		check func(*testing.T, chan statepkg.Action)
	}{
		{"up", tcell.NewEventKey(tcell.KeyUp, 0, 0), expectAction[statepkg.NavigateUpAction]},
		{"down", tcell.NewEventKey(tcell.KeyDown, 0, 0), expectAction[statepkg.NavigateDownAction]},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, 0), expectAction[statepkg.EnterDirectoryAction]},
		{"backspace", tcell.NewEventKey(tcell.KeyBackspace2, 0, 0), expectAction[statepkg.GoUpAction]},
		{"tab", tcell.NewEventKey(tcell.KeyTab, 0, 0), expectAction[statepkg.FocusPreviewAction]},
		{"yank", tcell.NewEventKey(tcell.KeyRune, 'y', 0), expectAction[statepkg.YankAction]},
		{"theme", tcell.NewEventKey(tcell.KeyRune, 't', 0), expectAction[statepkg.ToggleThemeAction]},
		{"preview", tcell.NewEventKey(tcell.KeyRune, 'p', 0), expectAction[statepkg.TogglePreviewAction]},
		{"hidden", tcell.NewEventKey(tcell.KeyRune, '.', 0), expectAction[statepkg.ToggleHiddenFilesAction]},
		{"unbound", tcell.NewEventKey(tcell.KeyRune, 'z', 0), expectNoAction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actionChan := make(chan statepkg.Action, 1)
			handler := NewInputHandler(actionChan)
			handler.SetState(&statepkg.AppState{})

			if !handler.ProcessEvent(tt.event) {
				t.Fatal("ProcessEvent requested quit")
			}
			tt.check(t, actionChan)
		})
	}
}

func TestQuitKeysStopProcessing(t *testing.T) {
	for _, ev := range []*tcell.EventKey{
		tcell.NewEventKey(tcell.KeyRune, 'q', 0),
		tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl),
	} {
		actionChan := make(chan statepkg.Action, 1)
		handler := NewInputHandler(actionChan)

		if handler.ProcessEvent(ev) {
			t.Fatalf("%v: expected quit", ev.Name())
		}
		expectAction[statepkg.QuitAction](t, actionChan)
	}
}

func TestPreviewFocusSwallowsListKeys(t *testing.T) {
	actionChan := make(chan statepkg.Action, 1)
	handler := NewInputHandler(actionChan)
	handler.SetState(&statepkg.AppState{Focus: statepkg.FocusPreview})

	handler.ProcessEvent(tcell.NewEventKey(tcell.KeyDown, 0, 0))
	expectNoAction(t, actionChan)

	handler.ProcessEvent(tcell.NewEventKey(tcell.KeyRune, 'q', 0))
	expectNoAction(t, actionChan)

	handler.ProcessEvent(tcell.NewEventKey(tcell.KeyEscape, 0, 0))
	expectAction[statepkg.FocusListAction](t, actionChan)
}

func TestCtrlCQuitsEvenWithPreviewFocus(t *testing.T) {
	actionChan := make(chan statepkg.Action, 1)
	handler := NewInputHandler(actionChan)
	handler.SetState(&statepkg.AppState{Focus: statepkg.FocusPreview})

	if handler.ProcessEvent(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)) {
		t.Fatal("expected quit")
	}
	expectAction[statepkg.QuitAction](t, actionChan)
}

func TestResizeEmitsDimensions(t *testing.T) {
	actionChan := make(chan statepkg.Action, 1)
	handler := NewInputHandler(actionChan)

	handler.ProcessEvent(tcell.NewEventResize(120, 40))

	action := <-actionChan
	resize, ok := action.(statepkg.ResizeAction)
	if !ok || resize.Width != 120 || resize.Height != 40 {
		t.Fatalf("got %#v", action)
	}
}
