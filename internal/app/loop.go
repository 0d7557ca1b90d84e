package app

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/previewhost/internal/host"
	statepkg "github.com/kk-code-lab/previewhost/internal/state"
	"github.com/kk-code-lab/previewhost/internal/surface"
	renderui "github.com/kk-code-lab/previewhost/internal/ui/render"
)

// Run processes terminal events, actions and dispatched calls until quit.
// The caller still owns the application afterwards and must Close it.
func (app *Application) Run() {
	defer app.dispatcher.stop()

	app.render()
	renderPending := false

	eventChan := make(chan tcell.Event)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := app.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventChan <- ev:
			case <-quit:
				return
			}
		}
	}()

	var sigContCh chan os.Signal
	if sigs := contSignals(); len(sigs) > 0 {
		sigContCh = make(chan os.Signal, 1)
		signal.Notify(sigContCh, sigs...)
		defer signal.Stop(sigContCh)
	}

	for !app.shouldQuit {
		if renderPending {
			app.render()
			renderPending = false
		}

		select {
		case ev := <-eventChan:
			if app.handleEvent(ev) {
				renderPending = true
			}
		case action := <-app.actionCh:
			if app.handleAction(action) {
				renderPending = true
			}
		case call := <-app.dispatcher.calls:
			app.dispatcher.run(call)
			renderPending = true
		case <-sigContCh:
			if app.resumeAfterStop() {
				renderPending = true
			}
		}

		if app.processActions() {
			renderPending = true
		}
	}
}

func (app *Application) render() {
	app.renderer.Render(app.state)
	app.surface.Paint()
}

func (app *Application) handleEvent(ev tcell.Event) bool {
	switch ev.(type) {
	case *tcell.EventKey, *tcell.EventResize:
		if !app.input.ProcessEvent(ev) {
			app.shouldQuit = true
		}
	case *tcell.EventInterrupt:
		return true
	default:
		return false
	}
	return true
}

// processActions drains queued actions without blocking.
func (app *Application) processActions() bool {
	changed := false
	for {
		select {
		case action := <-app.actionCh:
			if app.handleAction(action) {
				changed = true
			}
		default:
			return changed
		}
	}
}

// handleAction reduces action and applies its side effects to the preview.
func (app *Application) handleAction(action statepkg.Action) bool {
	switch action.(type) {
	case statepkg.QuitAction:
		app.shouldQuit = true
		return false
	case statepkg.SuspendAction:
		app.suspendToShell()
		app.resumeAfterStop()
		return true
	case statepkg.YankAction:
		app.yank()
		return false
	case statepkg.FocusPreviewAction:
		if !app.inputOn {
			return false
		}
	}

	prev := *app.state
	if _, err := app.reducer.Reduce(app.state, action); err != nil {
		app.logger.Debug("action failed", slog.Any("error", err))
	}
	app.input.SetState(app.state)

	if app.state.DarkTheme != prev.DarkTheme {
		app.surface.ThemeChanged(surfaceTheme(app.state.DarkTheme))
	}
	if app.state.PreviewVisible != prev.PreviewVisible {
		app.surface.SetVisible(app.state.PreviewVisible)
	}
	if app.state.ScreenWidth != prev.ScreenWidth ||
		app.state.ScreenHeight != prev.ScreenHeight ||
		app.state.PreviewVisible != prev.PreviewVisible {
		app.syncViewport()
	}
	if app.state.Focus == statepkg.FocusPreview && prev.Focus != statepkg.FocusPreview {
		app.surface.Focus()
	}
	app.schedulePreview()
	return true
}

// syncViewport reports the preview pane geometry to the surface.
func (app *Application) syncViewport() {
	area := renderui.PreviewArea(app.state.ScreenWidth, app.state.ScreenHeight, app.state)
	if area == app.area {
		return
	}
	app.area = area
	app.surface.ViewportChanged(surface.Geometry{
		Offset: surface.Point{X: area.X, Y: area.Y},
		Size:   surface.Extent{Width: area.Width, Height: area.Height},
		Scale:  app.scale,
	})
}

// schedulePreview starts loading the selected file when the selection
// changed. Loads run one at a time; a new one cancels its predecessor and
// waits for it to finish.
func (app *Application) schedulePreview() {
	path := ""
	target := app.state.PreviewTarget()
	if target != nil {
		path = target.FullPath
	}
	if path == app.state.PreviewPath && app.loadDone != nil {
		return
	}

	app.cancelPreview()
	prevDone := app.loadDone
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	app.loadCancel, app.loadDone = cancel, done

	if target == nil {
		_, _ = app.reducer.Reduce(app.state, statepkg.PreviewStatusAction{Status: statepkg.PreviewNone})
		go func() {
			defer close(done)
			waitDone(prevDone)
			app.host.Clear()
		}()
		return
	}

	_, _ = app.reducer.Reduce(app.state, statepkg.PreviewStatusAction{Path: path, Status: statepkg.PreviewLoading})
	file := *target
	go func() {
		defer close(done)
		waitDone(prevDone)
		outcome := app.host.LoadPreview(ctx, file)
		var status statepkg.PreviewStatus
		switch outcome {
		case host.OutcomeLoaded:
			status = statepkg.PreviewLoaded
		case host.OutcomeError:
			status = statepkg.PreviewFailed
			if errors.Is(app.host.Err(), host.ErrUnsupported) {
				status = statepkg.PreviewUnsupported
			}
		default:
			return
		}
		app.post(statepkg.PreviewStatusAction{Path: path, Status: status, Err: app.host.Err()})
	}()
}

// yank copies the previewed file to the clipboard off the loop.
func (app *Application) yank() {
	if !app.state.ClipboardAvailable || app.state.PreviewStatus != statepkg.PreviewLoaded {
		return
	}
	go func() {
		err := app.host.CopyToClipboard(context.Background())
		if errors.Is(err, ErrLoopStopped) {
			return
		}
		if err != nil {
			app.logger.Warn("copy to clipboard failed", slog.Any("error", err))
		}
		app.post(statepkg.YankDoneAction{Err: err})
	}()
}

// post queues an action from a worker goroutine. Actions posted after the
// loop stopped are dropped.
func (app *Application) post(action statepkg.Action) {
	select {
	case app.actionCh <- action:
	case <-app.dispatcher.stopped:
	}
}

func (app *Application) cancelPreview() {
	if app.loadCancel != nil {
		app.loadCancel()
	}
}

func (app *Application) waitPreview() {
	waitDone(app.loadDone)
}

func waitDone(done <-chan struct{}) {
	if done != nil {
		<-done
	}
}
