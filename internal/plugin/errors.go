package plugin

import "errors"

var (
	// ErrNoInitializer is returned when a component exposes neither
	// initialization capability.
	ErrNoInitializer = errors.New("component exposes no initializer")

	// ErrInvalidClassID is returned for class identifiers that are empty.
	ErrInvalidClassID = errors.New("invalid class id")
)

// PanicError wraps a value recovered from a panicking component call.
type PanicError struct {
	Op    string
	Value any
}

func (e *PanicError) Error() string {
	return "plugin panic in " + e.Op + ": " + formatPanic(e.Value)
}
