package surface

import (
	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/previewhost/internal/plugin"
)

// Window is a child window carved out of a tcell screen. It is the drawing
// target handed to preview components. A hidden or destroyed window
// ignores drawing.
type Window struct {
	screen    tcell.Screen
	rect      plugin.Rect
	visible   bool
	layered   bool
	destroyed bool
	style     tcell.Style
	paint     func()
}

func newWindow(screen tcell.Screen, layered bool) *Window {
	return &Window{
		screen:  screen,
		layered: layered,
		style:   tcell.StyleDefault,
	}
}

// Size implements plugin.Window.
func (w *Window) Size() (int, int) {
	return w.rect.Width, w.rect.Height
}

// Bounds returns the window rectangle in screen cells.
func (w *Window) Bounds() plugin.Rect {
	return w.rect
}

// Visible reports whether the window is shown.
func (w *Window) Visible() bool {
	return w.visible && !w.destroyed
}

// Layered reports whether the window is composited over sibling UI.
func (w *Window) Layered() bool {
	return w.layered
}

// SetContent implements plugin.Window. Cells outside the window are clipped.
func (w *Window) SetContent(x, y int, primary rune, combining []rune, style tcell.Style) {
	if !w.Visible() || x < 0 || y < 0 || x >= w.rect.Width || y >= w.rect.Height {
		return
	}
	w.screen.SetContent(w.rect.X+x, w.rect.Y+y, primary, combining, style)
}

// Fill implements plugin.Window.
func (w *Window) Fill(r rune, style tcell.Style) {
	for y := 0; y < w.rect.Height; y++ {
		for x := 0; x < w.rect.Width; x++ {
			w.SetContent(x, y, r, nil, style)
		}
	}
}

// SetPaintHandler implements plugin.Window.
func (w *Window) SetPaintHandler(fn func()) {
	if w.destroyed {
		return
	}
	w.paint = fn
}

// Invalidate implements plugin.Window: the window is cleared to its
// background and the paint handler redraws it.
func (w *Window) Invalidate() {
	if !w.Visible() {
		return
	}
	w.Fill(' ', w.style)
	if w.paint != nil {
		w.paint()
	}
	w.screen.Show()
}

func (w *Window) setBackground(style tcell.Style) {
	w.style = style
}

func (w *Window) setBounds(r plugin.Rect) {
	if w.rect == r {
		return
	}
	w.erase()
	w.rect = r
}

func (w *Window) show(visible bool) {
	if w.destroyed || w.visible == visible {
		return
	}
	if !visible {
		w.erase()
	}
	w.visible = visible
}

func (w *Window) destroy() {
	if w.destroyed {
		return
	}
	w.erase()
	w.paint = nil
	w.visible = false
	w.destroyed = true
}

// erase blanks the area the window occupied so nothing stale stays behind.
func (w *Window) erase() {
	if !w.visible {
		return
	}
	for y := 0; y < w.rect.Height; y++ {
		for x := 0; x < w.rect.Width; x++ {
			w.screen.SetContent(w.rect.X+x, w.rect.Y+y, ' ', nil, tcell.StyleDefault)
		}
	}
}
