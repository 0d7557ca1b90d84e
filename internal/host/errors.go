package host

import "errors"

var (
	// ErrUnsupported means no preview handler is registered for the file type.
	ErrUnsupported = errors.New("no preview handler registered")

	// ErrActivation means the registered class could not be instantiated.
	ErrActivation = errors.New("preview handler activation failed")

	// ErrInitialization means the component rejected the file.
	ErrInitialization = errors.New("preview handler initialization failed")

	// ErrNoFile is returned by operations that need a loaded file.
	ErrNoFile = errors.New("no file loaded")

	// ErrNoClipboard is returned when no clipboard is configured.
	ErrNoClipboard = errors.New("clipboard not available")
)
