package app

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/previewhost/internal/host"
	"github.com/kk-code-lab/previewhost/internal/plugin"
	statepkg "github.com/kk-code-lab/previewhost/internal/state"
	"github.com/kk-code-lab/previewhost/internal/surface"
	inputui "github.com/kk-code-lab/previewhost/internal/ui/input"
	renderui "github.com/kk-code-lab/previewhost/internal/ui/render"
)

// Options wires the application to its collaborators.
type Options struct {
	// Screen is created with tcell.NewScreen when nil.
	Screen    tcell.Screen
	Resolver  host.Resolver
	Activator host.Activator
	Logger    *slog.Logger
	// StartDir defaults to the working directory.
	StartDir   string
	DarkTheme  bool
	ShowHidden bool
	// Scale converts pane cells to device units for the embedded preview.
	Scale float64
	// Clipboard overrides command detection.
	Clipboard host.Clipboard
}

// Application represents the running app.
type Application struct {
	screen     tcell.Screen
	state      *statepkg.AppState
	reducer    *statepkg.StateReducer
	renderer   *renderui.Renderer
	input      *inputui.InputHandler
	actionCh   chan statepkg.Action
	shouldQuit bool
	logger     *slog.Logger

	host        *host.Host
	surface     *surface.Surface
	dispatcher  *loopDispatcher
	unsubscribe func()
	scale       float64
	area        renderui.Area
	inputOn     bool
	closed      bool

	// The preview load in flight; a new load waits for the previous one.
	loadCancel context.CancelFunc
	loadDone   chan struct{}
}

// NewApplication initializes the screen, lists the start directory and
// loads the preview of the first entry.
func NewApplication(opts Options) (*Application, error) {
	if opts.Resolver == nil || opts.Activator == nil {
		return nil, errors.New("app: resolver and activator are required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	screen := opts.Screen
	if screen == nil {
		var err error
		if screen, err = tcell.NewScreen(); err != nil {
			return nil, err
		}
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	flushPendingInput()

	startDir := opts.StartDir
	if startDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			screen.Fini()
			return nil, err
		}
		startDir = cwd
	}

	clipboard := opts.Clipboard
	if clipboard == nil {
		if cmd, ok := detectClipboard(); ok {
			clipboard = newCommandClipboard(cmd)
		}
	}

	w, h := screen.Size()
	state := &statepkg.AppState{
		CurrentPath:        startDir,
		HideHiddenFiles:    !opts.ShowHidden,
		PreviewVisible:     true,
		DarkTheme:          opts.DarkTheme,
		ScreenWidth:        w,
		ScreenHeight:       h,
		ClipboardAvailable: clipboard != nil,
	}

	reducer := statepkg.NewStateReducer()
	if err := reducer.LoadDirectory(state); err != nil {
		screen.Fini()
		return nil, err
	}

	actionCh := make(chan statepkg.Action, 10)
	dispatcher := newLoopDispatcher()

	hostOpts := []host.Option{host.WithLogger(logger), host.WithDispatcher(dispatcher)}
	if clipboard != nil {
		hostOpts = append(hostOpts, host.WithClipboard(clipboard))
	}

	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}

	app := &Application{
		screen:     screen,
		state:      state,
		reducer:    reducer,
		renderer:   renderui.NewRenderer(screen),
		input:      inputui.NewInputHandler(actionCh),
		actionCh:   actionCh,
		logger:     logger,
		host:       host.New(opts.Resolver, opts.Activator, hostOpts...),
		dispatcher: dispatcher,
		scale:      scale,
		inputOn:    true,
	}
	app.surface = surface.New(screen, app,
		surface.WithLogger(logger),
		surface.WithTheme(surfaceTheme(state.DarkTheme)),
	)
	app.unsubscribe = app.host.Subscribe(app.onActiveChanged)
	app.input.SetState(state)
	app.syncViewport()
	app.schedulePreview()
	return app, nil
}

// SetInputEnabled implements surface.Container: while the preview is
// hidden it cannot take the keyboard.
func (app *Application) SetInputEnabled(enabled bool) {
	app.inputOn = enabled
	if !enabled && app.state.Focus == statepkg.FocusPreview {
		app.state.Focus = statepkg.FocusList
	}
}

// onActiveChanged is the host observer. It moves the embedding work onto
// the event loop.
func (app *Application) onActiveChanged(h plugin.Handler) {
	attach := func() { app.surface.Attach(h) }
	if app.dispatcher.OnOwnerThread() {
		attach()
		return
	}
	if err := app.dispatcher.Invoke(context.Background(), attach); err != nil {
		app.logger.Debug("preview attach dropped", slog.Any("error", err))
	}
}

// Close releases the preview and restores the terminal.
func (app *Application) Close() error {
	if app.closed {
		return nil
	}
	app.closed = true
	app.cancelPreview()
	app.dispatcher.stop()
	app.waitPreview()
	app.host.Dispose()
	app.surface.Attach(nil)
	if app.unsubscribe != nil {
		app.unsubscribe()
	}
	app.screen.Fini()
	return nil
}

// GetCurrentPath returns the directory shown on exit.
func (app *Application) GetCurrentPath() string {
	return app.state.CurrentPath
}

func surfaceTheme(dark bool) surface.Theme {
	if dark {
		return surface.DarkTheme
	}
	return surface.LightTheme
}
