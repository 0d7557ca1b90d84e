// Package host activates, initializes and releases the preview handler for
// the file currently shown in the preview pane.
package host

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/kk-code-lab/previewhost/internal/plugin"
)

// Host owns at most one active preview component together with the file
// stream it was initialized from.
type Host struct {
	resolver   Resolver
	activator  Activator
	clipboard  Clipboard
	dispatcher Dispatcher
	worker     Worker
	logger     *slog.Logger
	open       func(path string) (io.ReadCloser, error)

	mu        sync.Mutex
	state     State
	err       error
	file      File
	active    plugin.Handler
	stream    *backingStream
	gen       uint64
	observers map[int]func(plugin.Handler)
	nextObs   int
}

// Option configures a Host.
type Option func(*Host)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Host) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithWorker sets where activation and initialization run.
func WithWorker(w Worker) Option {
	return func(h *Host) {
		if w != nil {
			h.worker = w
		}
	}
}

// WithClipboard sets the clipboard used by CopyToClipboard.
func WithClipboard(c Clipboard) Option {
	return func(h *Host) {
		h.clipboard = c
	}
}

// WithDispatcher sets the owner goroutine dispatcher.
func WithDispatcher(d Dispatcher) Option {
	return func(h *Host) {
		h.dispatcher = d
	}
}

// WithFileOpener replaces os.Open for stream initialization.
func WithFileOpener(open func(path string) (io.ReadCloser, error)) Option {
	return func(h *Host) {
		if open != nil {
			h.open = open
		}
	}
}

// New creates a Host.
func New(resolver Resolver, activator Activator, opts ...Option) *Host {
	h := &Host{
		resolver:  resolver,
		activator: activator,
		worker:    goroutineWorker{},
		logger:    slog.New(slog.DiscardHandler),
		open: func(path string) (io.ReadCloser, error) {
			return os.Open(path)
		},
		observers: make(map[int]func(plugin.Handler)),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// State returns the current state.
func (h *Host) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Err returns why the last load ended in StateError.
func (h *Host) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}

// Active returns the active component; nil unless State is StateLoaded.
func (h *Host) Active() plugin.Handler {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.active
}

// File returns the file of the last LoadPreview call.
func (h *Host) File() File {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.file
}

// Subscribe registers fn to be called with the active component whenever it
// changes; nil means the previous component was released. The returned
// function removes the subscription.
func (h *Host) Subscribe(fn func(plugin.Handler)) func() {
	h.mu.Lock()
	id := h.nextObs
	h.nextObs++
	h.observers[id] = fn
	h.mu.Unlock()

	return func() {
		h.mu.Lock()
		delete(h.observers, id)
		h.mu.Unlock()
	}
}

// LoadPreview releases any previous component and activates the handler
// registered for file. Cancellation is checked before activation, before
// initialization and before the component is published; a canceled load
// leaves the state at StateLoading and holds nothing.
func (h *Host) LoadPreview(ctx context.Context, file File) Outcome {
	h.Clear()

	h.mu.Lock()
	h.file = file
	h.err = nil
	h.state = StateLoading
	gen := h.gen
	h.mu.Unlock()

	if ctx.Err() != nil {
		return OutcomeCanceled
	}

	var (
		handler plugin.Handler
		err     error
	)
	h.worker.Run(func() {
		handler, err = h.activate(ctx, file)
	})
	if err != nil {
		// Activators honoring ctx fail with its error; that is a cancellation.
		if ctx.Err() != nil {
			h.release(handler, nil)
			return OutcomeCanceled
		}
		h.fail(gen, err)
		return OutcomeError
	}

	if ctx.Err() != nil {
		h.release(handler, nil)
		return OutcomeCanceled
	}

	var stream *backingStream
	h.worker.Run(func() {
		stream, err = h.initialize(handler, file)
	})
	if err != nil {
		h.release(handler, stream)
		if ctx.Err() != nil {
			return OutcomeCanceled
		}
		h.fail(gen, err)
		return OutcomeError
	}

	if ctx.Err() != nil {
		h.release(handler, stream)
		return OutcomeCanceled
	}

	return h.publish(gen, handler, stream)
}

func (h *Host) activate(ctx context.Context, file File) (plugin.Handler, error) {
	ext := file.Extension()
	id, ok := h.resolver.Resolve(ext)
	if !ok {
		return nil, fmt.Errorf("%w for %q", ErrUnsupported, ext)
	}

	var handler plugin.Handler
	err := plugin.Guard("Activate", func() error {
		var aerr error
		handler, aerr = h.activator.Activate(ctx, id)
		return aerr
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrActivation, id, err)
	}
	if handler == nil {
		return nil, fmt.Errorf("%w: %s returned no component", ErrActivation, id)
	}
	return handler, nil
}

func (h *Host) initialize(handler plugin.Handler, file File) (*backingStream, error) {
	probe, err := plugin.ProbeInit(handler)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInitialization, err)
	}

	switch probe.Kind {
	case plugin.InitStream:
		rc, err := h.open(file.Path())
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInitialization, err)
		}
		stream := &backingStream{rc: rc}
		err = plugin.Guard("InitializeWithStream", func() error {
			return probe.Stream.InitializeWithStream(readOnly{stream}, plugin.ModeRead)
		})
		if err != nil {
			return stream, fmt.Errorf("%w: %w", ErrInitialization, err)
		}
		return stream, nil
	default:
		err := plugin.Guard("InitializeWithPath", func() error {
			return probe.Path.InitializeWithPath(file.Path(), plugin.ModeRead)
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInitialization, err)
		}
		return nil, nil
	}
}

func (h *Host) publish(gen uint64, handler plugin.Handler, stream *backingStream) Outcome {
	h.mu.Lock()
	if h.gen != gen {
		// Cleared while loading.
		h.mu.Unlock()
		h.release(handler, stream)
		return OutcomeCanceled
	}
	h.active = handler
	h.stream = stream
	h.state = StateLoaded
	observers := h.snapshotObservers()
	h.mu.Unlock()

	h.logger.Debug("preview handler loaded", slog.String("path", h.filePath()))
	for _, fn := range observers {
		fn(handler)
	}
	return OutcomeLoaded
}

func (h *Host) fail(gen uint64, err error) {
	h.mu.Lock()
	if h.gen == gen {
		h.state = StateError
		h.err = err
	}
	h.mu.Unlock()

	// A file type without a previewer is the common case, not a fault.
	level := slog.LevelInfo
	if isUnsupported(err) {
		level = slog.LevelDebug
	}
	h.logger.Log(context.Background(), level, "preview unavailable", slog.Any("error", err))
}

// Clear releases the active component and its stream. It is safe to call
// in any state; with nothing held in StateUninitialized it does nothing.
func (h *Host) Clear() {
	h.mu.Lock()
	if h.state == StateUninitialized && h.active == nil && h.stream == nil {
		h.mu.Unlock()
		return
	}
	handler, stream := h.active, h.stream
	h.active, h.stream = nil, nil
	h.state = StateUninitialized
	h.err = nil
	h.gen++
	var observers []func(plugin.Handler)
	if handler != nil {
		observers = h.snapshotObservers()
	}
	h.mu.Unlock()

	for _, fn := range observers {
		fn(nil)
	}
	h.release(handler, stream)
}

// Dispose clears the host and drops subscriptions and the file reference.
func (h *Host) Dispose() {
	h.Clear()
	h.mu.Lock()
	h.observers = make(map[int]func(plugin.Handler))
	h.file = nil
	h.mu.Unlock()
}

// release unloads and drops handler and closes stream. Component faults
// are logged and discarded so a broken plugin cannot block recovery.
func (h *Host) release(handler plugin.Handler, stream *backingStream) {
	if handler != nil {
		plugin.Discard(h.logger, "Unload", handler.Unload)
		if r, ok := handler.(plugin.Releaser); ok {
			plugin.Discard(h.logger, "Release", func() error {
				r.Release()
				return nil
			})
		}
	}
	if stream != nil {
		if err := stream.Close(); err != nil {
			h.logger.Debug("closing preview stream failed", slog.Any("error", err))
		}
	}
}

// CopyToClipboard places the current file on the clipboard. Clipboard
// access is performed on the owner goroutine.
func (h *Host) CopyToClipboard(ctx context.Context) error {
	file := h.File()
	if file == nil {
		return ErrNoFile
	}
	if h.clipboard == nil {
		return ErrNoClipboard
	}

	item, err := file.StorageItem(ctx)
	if err != nil {
		return fmt.Errorf("resolving storage item: %w", err)
	}

	var cerr error
	set := func() {
		cerr = h.clipboard.SetStorageItem(item)
	}
	if h.dispatcher == nil || h.dispatcher.OnOwnerThread() {
		set()
		return cerr
	}
	if err := h.dispatcher.Invoke(ctx, set); err != nil {
		return err
	}
	return cerr
}

// PreviewSize reports the intrinsic size of the preview. Preview handlers
// fill their container, so there is none.
func (h *Host) PreviewSize() (Size, bool) {
	return Size{}, false
}

func (h *Host) snapshotObservers() []func(plugin.Handler) {
	out := make([]func(plugin.Handler), 0, len(h.observers))
	for _, fn := range h.observers {
		out = append(out, fn)
	}
	return out
}

func (h *Host) filePath() string {
	if f := h.File(); f != nil {
		return f.Path()
	}
	return ""
}

func isUnsupported(err error) bool {
	return errors.Is(err, ErrUnsupported)
}
