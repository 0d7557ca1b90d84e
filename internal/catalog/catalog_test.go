package catalog

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/previewhost/internal/plugin"
	"github.com/kk-code-lab/previewhost/internal/registry"
	"github.com/kk-code-lab/previewhost/internal/resolver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gridWindow is a plugin.Window backed by an in-memory cell grid.
type gridWindow struct {
	width, height int
	cells         [][]rune
	paint         func()
	invalidations int
}

func newGridWindow(width, height int) *gridWindow {
	w := &gridWindow{width: width, height: height}
	w.cells = make([][]rune, height)
	for y := range w.cells {
		w.cells[y] = []rune(strings.Repeat(" ", width))
	}
	return w
}

func (w *gridWindow) Size() (int, int) { return w.width, w.height }

func (w *gridWindow) SetContent(x, y int, r rune, _ []rune, _ tcell.Style) {
	if x < 0 || y < 0 || x >= w.width || y >= w.height {
		return
	}
	w.cells[y][x] = r
}

func (w *gridWindow) Fill(r rune, style tcell.Style) {
	for y := 0; y < w.height; y++ {
		for x := 0; x < w.width; x++ {
			w.SetContent(x, y, r, nil, style)
		}
	}
}

func (w *gridWindow) SetPaintHandler(fn func()) { w.paint = fn }

func (w *gridWindow) Invalidate() {
	w.invalidations++
	if w.paint != nil {
		w.paint()
	}
}

func (w *gridWindow) row(y int) string {
	return strings.TrimRight(string(w.cells[y]), " ")
}

// mount embeds h into a fresh window and paints it.
func mount(t *testing.T, h plugin.Handler, width, height int) *gridWindow {
	t.Helper()
	w := newGridWindow(width, height)
	rect := plugin.Rect{Width: width, Height: height}
	require.NoError(t, h.SetWindow(w, rect))
	require.NoError(t, h.DoPreview())
	return w
}

func TestRegisterCanonicalizesClassID(t *testing.T) {
	c := New(nil)
	require.NoError(t, c.Register("5a1c3e2b-7d4f-4b8a-9c61-2e8f0d3b7a14", "Text", NewTextPreviewer))

	h, err := c.Activate(context.Background(), TextPreviewerClass)
	require.NoError(t, err)
	assert.IsType(t, &TextPreviewer{}, h)
}

func TestRegisterRejectsDuplicatesAndNil(t *testing.T) {
	c := New(nil)
	require.NoError(t, c.Register(TextPreviewerClass, "Text", NewTextPreviewer))

	err := c.Register(strings.ToLower(TextPreviewerClass), "Other", NewHexPreviewer)
	assert.ErrorIs(t, err, ErrAlreadyRegistered)

	err = c.Register(HexPreviewerClass, "Hex", nil)
	assert.ErrorIs(t, err, ErrNilFactory)

	err = c.Register("", "Empty", NewHexPreviewer)
	assert.ErrorIs(t, err, plugin.ErrInvalidClassID)
}

func TestActivateUnknownClass(t *testing.T) {
	c := New(nil)
	_, err := c.Activate(context.Background(), plugin.MustParseClassID(HexPreviewerClass))
	assert.ErrorIs(t, err, ErrClassNotRegistered)
}

func TestActivateHonorsCanceledContext(t *testing.T) {
	c := New(nil)
	require.NoError(t, RegisterBuiltins(c))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Activate(ctx, TextPreviewerClass)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestActivateContainsFactoryPanics(t *testing.T) {
	c := New(nil)
	require.NoError(t, c.Register(TextPreviewerClass, "Broken", func(context.Context) (plugin.Handler, error) {
		panic("boom")
	}))

	var h plugin.Handler
	var err error
	require.NotPanics(t, func() {
		h, err = c.Activate(context.Background(), TextPreviewerClass)
	})
	assert.Nil(t, h)
	var perr *plugin.PanicError
	assert.True(t, errors.As(err, &perr))
}

func TestClassesSortedByName(t *testing.T) {
	c := New(nil)
	require.NoError(t, RegisterBuiltins(c))

	var names []string
	for _, class := range c.Classes() {
		names = append(names, class.Name)
	}
	assert.Equal(t, []string{"File Info Preview Handler", "Hex Preview Handler", "Text Preview Handler"}, names)
}

func TestBuiltinCapabilities(t *testing.T) {
	c := New(nil)
	require.NoError(t, RegisterBuiltins(c))
	ctx := context.Background()

	tests := []struct {
		class string
		kind  plugin.InitKind
	}{
		{TextPreviewerClass, plugin.InitStream},
		{HexPreviewerClass, plugin.InitStream},
		{InfoPreviewerClass, plugin.InitPath},
	}
	for _, tt := range tests {
		h, err := c.Activate(ctx, plugin.ClassID(tt.class))
		require.NoError(t, err)
		got, err := plugin.ProbeInit(h)
		require.NoError(t, err)
		assert.Equal(t, tt.kind, got.Kind, tt.class)
		_, themed := h.(plugin.Visuals)
		assert.True(t, themed, tt.class)
	}
}

func TestDefaultAssociationsResolveToBuiltins(t *testing.T) {
	store := registry.NewMemoryStore(DefaultAssociations())
	r := resolver.New(store, nil)

	tests := map[string]string{
		".txt": TextPreviewerClass,
		".MD":  TextPreviewerClass,
		".bin": HexPreviewerClass,
		".iso": InfoPreviewerClass,
	}
	for ext, want := range tests {
		id, ok := r.Resolve(ext)
		require.True(t, ok, ext)
		assert.Equal(t, plugin.MustParseClassID(want), id, ext)
	}

	_, ok := r.Resolve(".unknown")
	assert.False(t, ok)
}
