package catalog

import (
	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/previewhost/internal/plugin"
	"github.com/mattn/go-runewidth"
)

// canvas implements the hosting and visuals capabilities shared by the
// built-in previewers: it draws a list of prepared lines into the window.
type canvas struct {
	window   plugin.Window
	rect     plugin.Rect
	bg       tcell.Color
	fg       tcell.Color
	lines    []string
	focused  bool
	unloaded bool
}

func newCanvas() canvas {
	return canvas{bg: tcell.ColorDefault, fg: tcell.ColorDefault}
}

func (c *canvas) SetWindow(w plugin.Window, rect plugin.Rect) error {
	if c.unloaded {
		return ErrUnloaded
	}
	c.window = w
	c.rect = rect
	w.SetPaintHandler(c.paint)
	return nil
}

func (c *canvas) SetRect(rect plugin.Rect) error {
	c.rect = rect
	return nil
}

func (c *canvas) SetFocus() error {
	c.focused = true
	return nil
}

func (c *canvas) DoPreview() error {
	if c.window == nil {
		return ErrNotInitialized
	}
	c.window.Invalidate()
	return nil
}

func (c *canvas) Unload() error {
	if c.window != nil {
		c.window.SetPaintHandler(nil)
	}
	c.window = nil
	c.lines = nil
	c.unloaded = true
	return nil
}

func (c *canvas) SetBackgroundColor(col tcell.Color) error {
	c.bg = col
	return nil
}

func (c *canvas) SetTextColor(col tcell.Color) error {
	c.fg = col
	return nil
}

func (c *canvas) style() tcell.Style {
	return tcell.StyleDefault.Background(c.bg).Foreground(c.fg)
}

func (c *canvas) paint() {
	if c.window == nil {
		return
	}
	width, height := c.window.Size()
	style := c.style()
	c.window.Fill(' ', style)
	for y, line := range c.lines {
		if y >= height {
			break
		}
		drawLine(c.window, y, width, line, style)
	}
}

// drawLine writes text at row y, stopping before a rune would cross width.
func drawLine(w plugin.Window, y, width int, text string, style tcell.Style) {
	x := 0
	for _, r := range text {
		rw := runewidth.RuneWidth(r)
		if rw <= 0 {
			continue
		}
		if x+rw > width {
			return
		}
		w.SetContent(x, y, r, nil, style)
		x += rw
	}
}
