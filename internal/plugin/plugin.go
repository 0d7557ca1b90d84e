// Package plugin defines the boundary between the preview host and the
// untrusted preview handler components it activates.
//
// A component always implements Handler. Everything else it can do is
// discovered at runtime through type assertions: StreamInitializer or
// PathInitializer for initialization, Visuals for theming and Releaser for
// dropping its last reference.
package plugin

import (
	"fmt"
	"io"

	"github.com/gdamore/tcell/v2"
)

// Mode is the access mode passed to initializers.
type Mode uint32

// ModeRead grants read-only access to the file.
const ModeRead Mode = 0

// Rect is a rectangle in device units.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", r.X, r.Y, r.Width, r.Height)
}

// Window is the drawing target handed to a component by SetWindow.
// Coordinates are relative to the window origin.
type Window interface {
	Size() (width, height int)
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Fill(r rune, style tcell.Style)
	// SetPaintHandler installs the function called whenever the window
	// repaints. A nil handler leaves the window blank.
	SetPaintHandler(fn func())
	Invalidate()
}

// Handler is the hosting capability every preview component exposes.
type Handler interface {
	SetWindow(w Window, rect Rect) error
	SetRect(rect Rect) error
	SetFocus() error
	DoPreview() error
	Unload() error
}

// Stream is the sequential read-only view of a file handed to stream
// initializers. It deliberately has no Close: the host owns the handle.
type Stream interface {
	io.Reader
}

// StreamInitializer is implemented by components that read file content
// from a stream.
type StreamInitializer interface {
	InitializeWithStream(s Stream, mode Mode) error
}

// PathInitializer is implemented by components that open the file
// themselves.
type PathInitializer interface {
	InitializeWithPath(path string, mode Mode) error
}

// Visuals is implemented by components that accept host colors.
type Visuals interface {
	SetBackgroundColor(c tcell.Color) error
	SetTextColor(c tcell.Color) error
}

// Releaser is implemented by components that hold resources beyond Unload.
type Releaser interface {
	Release()
}
