// Package surface embeds the active preview component into a child window
// of the terminal UI and keeps it in sync with the container's geometry,
// visibility, theme and focus.
//
// A Surface is owned by the UI goroutine; none of its methods are safe for
// concurrent use.
package surface

import (
	"log/slog"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/previewhost/internal/plugin"
)

// Container is the UI control the surface is embedded in.
type Container interface {
	// SetInputEnabled toggles whether the control accepts input.
	SetInputEnabled(enabled bool)
}

// Point is a position in container (logical) units.
type Point struct {
	X int
	Y int
}

// Extent is a size in container (logical) units.
type Extent struct {
	Width  int
	Height int
}

// Geometry is the container viewport as reported by the UI.
type Geometry struct {
	Offset Point
	Size   Extent
	Scale  float64
}

// Rect converts the geometry to device units.
func (g Geometry) Rect() plugin.Rect {
	scale := g.Scale
	if scale <= 0 {
		scale = 1
	}
	return plugin.Rect{
		X:      scaled(g.Offset.X, scale),
		Y:      scaled(g.Offset.Y, scale),
		Width:  scaled(g.Size.Width, scale),
		Height: scaled(g.Size.Height, scale),
	}
}

func scaled(v int, scale float64) int {
	return int(math.Round(float64(v) * scale))
}

// Surface hosts at most one component at a time.
type Surface struct {
	screen    tcell.Screen
	container Container
	logger    *slog.Logger

	window   *Window
	active   plugin.Handler
	attached bool
	geometry Geometry
	visible  bool
	theme    Theme
}

// Option configures a Surface.
type Option func(*Surface)

// WithLogger sets the logger used for discarded component faults.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Surface) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithTheme sets the initial theme.
func WithTheme(t Theme) Option {
	return func(s *Surface) {
		s.theme = t
	}
}

// WithGeometry sets the initial container geometry.
func WithGeometry(g Geometry) Option {
	return func(s *Surface) {
		s.geometry = g
	}
}

// New creates a visible surface on screen. The child window is created on
// the first Attach.
func New(screen tcell.Screen, container Container, opts ...Option) *Surface {
	s := &Surface{
		screen:    screen,
		container: container,
		logger:    slog.New(slog.DiscardHandler),
		visible:   true,
		theme:     DarkTheme,
		geometry:  Geometry{Scale: 1},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Active returns the attached component.
func (s *Surface) Active() plugin.Handler {
	return s.active
}

// Window returns the child window, nil while nothing is attached.
func (s *Surface) Window() *Window {
	return s.window
}

// Rect returns the current window rectangle in device units.
func (s *Surface) Rect() plugin.Rect {
	return s.geometry.Rect()
}

// Attach embeds h, replacing any previous component. A nil h detaches and
// destroys the child window. Component faults are discarded: a component
// that cannot be themed or fails to paint stays attached.
func (s *Surface) Attach(h plugin.Handler) {
	if s.active != nil {
		s.detach()
	}
	if h == nil {
		return
	}

	rect := s.Rect()
	s.window = newWindow(s.screen, true)
	s.window.setBounds(rect)
	s.window.setBackground(s.theme.Style())
	s.active = h

	s.pushTheme()
	err := plugin.Guard("SetWindow", func() error {
		return h.SetWindow(s.window, rect)
	})
	if err != nil {
		s.logger.Debug("plugin call failed", slog.String("op", "SetWindow"), slog.Any("error", err))
		return
	}
	s.attached = true

	s.window.show(s.visible)
	plugin.Discard(s.logger, "DoPreview", h.DoPreview)
	s.window.Invalidate()
}

func (s *Surface) detach() {
	if s.window != nil {
		s.window.destroy()
		s.window = nil
	}
	s.active = nil
	s.attached = false
	s.screen.Show()
}

// ViewportChanged handles moves, resizes and scrolls of the container.
func (s *Surface) ViewportChanged(g Geometry) {
	s.geometry = g
	if s.window == nil {
		return
	}
	rect := g.Rect()
	s.window.setBounds(rect)
	if s.attached && s.active != nil {
		h := s.active
		plugin.Discard(s.logger, "SetRect", func() error {
			return h.SetRect(rect)
		})
	}
	// Components do not reliably repaint themselves on resize.
	s.window.Invalidate()
}

// SetVisible shows or hides the child window. The container's input is
// toggled with it so a hidden component cannot receive input.
func (s *Surface) SetVisible(visible bool) {
	s.visible = visible
	if s.window != nil && s.attached {
		s.window.show(visible)
		if visible {
			s.window.Invalidate()
		} else {
			s.screen.Show()
		}
	}
	if s.container != nil {
		s.container.SetInputEnabled(visible)
	}
}

// Visible reports the requested visibility.
func (s *Surface) Visible() bool {
	return s.visible
}

// ThemeChanged pushes new colors to the component and repaints.
func (s *Surface) ThemeChanged(t Theme) {
	s.theme = t
	if s.window == nil {
		return
	}
	s.window.setBackground(t.Style())
	s.pushTheme()
	s.window.Invalidate()
}

// Theme returns the current theme.
func (s *Surface) Theme() Theme {
	return s.theme
}

// Focus forwards focus to the component once it is attached.
func (s *Surface) Focus() {
	if !s.attached || s.active == nil {
		return
	}
	plugin.Discard(s.logger, "SetFocus", s.active.SetFocus)
}

// Paint redraws the child window, for use after the surrounding UI has
// been redrawn over it.
func (s *Surface) Paint() {
	if s.window != nil && s.attached {
		s.window.Invalidate()
	}
}

func (s *Surface) pushTheme() {
	v, ok := s.active.(plugin.Visuals)
	if !ok {
		return
	}
	bg, fg := s.theme.Colors()
	plugin.Discard(s.logger, "SetBackgroundColor", func() error {
		return v.SetBackgroundColor(bg)
	})
	plugin.Discard(s.logger, "SetTextColor", func() error {
		return v.SetTextColor(fg)
	})
}
