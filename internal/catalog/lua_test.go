package catalog

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kk-code-lab/previewhost/internal/plugin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const streamScript = `
local text = ""
function initialize_with_stream(content)
  text = content
end
function render(width, height)
  local lines = {}
  for line in string.gmatch(text, "[^\n]+") do
    table.insert(lines, string.upper(line))
  end
  table.insert(lines, width .. "x" .. height)
  return lines
end
`

const pathScript = `
local name = ""
function initialize_with_path(path)
  name = path
end
function render(width, height)
  return "path: " .. name
end
`

func TestLuaStreamPreviewer(t *testing.T) {
	h, err := NewLuaPreviewer(context.Background(), "upper.lua", streamScript)
	require.NoError(t, err)
	defer h.Unload()

	probe, err := plugin.ProbeInit(h)
	require.NoError(t, err)
	require.Equal(t, plugin.InitStream, probe.Kind)

	require.NoError(t, probe.Stream.InitializeWithStream(strings.NewReader("one\ntwo\n"), plugin.ModeRead))
	w := mount(t, h, 12, 4)

	assert.Equal(t, "ONE", w.row(0))
	assert.Equal(t, "TWO", w.row(1))
	assert.Equal(t, "12x4", w.row(2))
}

func TestLuaRenderFollowsResize(t *testing.T) {
	h, err := NewLuaPreviewer(context.Background(), "upper.lua", streamScript)
	require.NoError(t, err)
	defer h.Unload()

	w := mount(t, h, 12, 4)
	require.NoError(t, h.SetRect(plugin.Rect{Width: 8, Height: 3}))
	w.Invalidate()
	assert.Equal(t, "8x3", w.row(0))
}

func TestLuaPathPreviewer(t *testing.T) {
	h, err := NewLuaPreviewer(context.Background(), "path.lua", pathScript)
	require.NoError(t, err)
	defer h.Unload()

	probe, err := plugin.ProbeInit(h)
	require.NoError(t, err)
	require.Equal(t, plugin.InitPath, probe.Kind)

	require.NoError(t, probe.Path.InitializeWithPath("/tmp/a.md", plugin.ModeRead))
	w := mount(t, h, 30, 2)
	assert.Equal(t, "path: /tmp/a.md", w.row(0))
}

func TestLuaScriptWithoutInitializer(t *testing.T) {
	h, err := NewLuaPreviewer(context.Background(), "bare.lua", `function render() return {} end`)
	require.NoError(t, err)
	defer h.Unload()

	_, err = plugin.ProbeInit(h)
	assert.ErrorIs(t, err, plugin.ErrNoInitializer)
}

func TestLuaScriptErrorsSurface(t *testing.T) {
	_, err := NewLuaPreviewer(context.Background(), "broken.lua", `this is not lua`)
	assert.Error(t, err)

	h, err := NewLuaPreviewer(context.Background(), "raise.lua", `function initialize_with_stream() error("nope") end`)
	require.NoError(t, err)
	defer h.Unload()
	err = h.(plugin.StreamInitializer).InitializeWithStream(strings.NewReader("x"), plugin.ModeRead)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope")
}

func withLuaCallTimeout(t *testing.T, d time.Duration) {
	t.Helper()
	orig := luaCallTimeout
	luaCallTimeout = d
	t.Cleanup(func() { luaCallTimeout = orig })
}

func TestLuaRenderIsBounded(t *testing.T) {
	withLuaCallTimeout(t, 50*time.Millisecond)
	h, err := NewLuaPreviewer(context.Background(), "spin.lua", `
function initialize_with_path(path) end
function render(width, height)
  while true do end
end`)
	require.NoError(t, err)
	defer h.Unload()

	w := newGridWindow(10, 2)
	require.NoError(t, h.SetWindow(w, plugin.Rect{Width: 10, Height: 2}))

	start := time.Now()
	err = h.DoPreview()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deadline exceeded")
	assert.Less(t, time.Since(start), 5*time.Second)

	// The next call gets a fresh deadline instead of failing at once or hanging.
	err = h.SetRect(plugin.Rect{Width: 8, Height: 2})
	assert.Error(t, err)
}

func TestLuaActivationIsBounded(t *testing.T) {
	withLuaCallTimeout(t, 50*time.Millisecond)
	_, err := NewLuaPreviewer(context.Background(), "spin.lua", `while true do end`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deadline exceeded")
}

func TestLuaSandboxHasNoFileAccess(t *testing.T) {
	h, err := NewLuaPreviewer(context.Background(), "io.lua", `
function initialize_with_stream()
  return io.open("/etc/passwd")
end`)
	require.NoError(t, err)
	defer h.Unload()
	err = h.(plugin.StreamInitializer).InitializeWithStream(strings.NewReader(""), plugin.ModeRead)
	assert.Error(t, err)
}

func TestLuaUnloadClosesState(t *testing.T) {
	h, err := NewLuaPreviewer(context.Background(), "upper.lua", streamScript)
	require.NoError(t, err)
	require.NoError(t, h.Unload())
	require.NoError(t, h.Unload())

	err = h.(plugin.StreamInitializer).InitializeWithStream(strings.NewReader("x"), plugin.ModeRead)
	assert.ErrorIs(t, err, ErrUnloaded)
}

func TestRegisterScripts(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "upper.lua")
	require.NoError(t, os.WriteFile(script, []byte(streamScript), 0o644))

	c := New(nil)
	const class = "{11111111-2222-3333-4444-555555555555}"
	require.NoError(t, RegisterScripts(c, []Script{{Class: class, Path: script}}))

	h, err := c.Activate(context.Background(), class)
	require.NoError(t, err)
	defer h.Unload()
	_, ok := h.(plugin.StreamInitializer)
	assert.True(t, ok)
	assert.Equal(t, script, c.Classes()[0].Name)
}

func TestLuaFactoryMissingScript(t *testing.T) {
	_, err := LuaFactory(filepath.Join(t.TempDir(), "missing.lua"))(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)
}
