package catalog

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/kk-code-lab/previewhost/internal/fs"
	"github.com/kk-code-lab/previewhost/internal/plugin"
	"github.com/kk-code-lab/previewhost/internal/textutil"
	lua "github.com/yuin/gopher-lua"
)

// Globals a preview script may define. Which initializer it defines decides
// which capability the component exposes.
const (
	luaInitStream = "initialize_with_stream"
	luaInitPath   = "initialize_with_path"
	luaRender     = "render"
)

// luaStreamLimit caps how much of a file is passed to a stream script.
const luaStreamLimit = 256 * 1024

// luaCallTimeout bounds every entry into a script. Rendering runs on the UI
// goroutine, so a script that never returns would otherwise freeze it.
var luaCallTimeout = 2 * time.Second

// LuaFactory returns a Factory that loads script into a fresh sandboxed Lua
// state for every activation.
func LuaFactory(script string) Factory {
	return func(ctx context.Context) (plugin.Handler, error) {
		src, err := os.ReadFile(script)
		if err != nil {
			return nil, fmt.Errorf("loading preview script: %w", err)
		}
		return NewLuaPreviewer(ctx, script, string(src))
	}
}

// NewLuaPreviewer compiles src and returns a component whose capabilities
// follow the globals the script defines.
func NewLuaPreviewer(ctx context.Context, name, src string) (plugin.Handler, error) {
	L := newSandbox()
	ctx, cancel := context.WithTimeout(ctx, luaCallTimeout)
	defer cancel()
	L.SetContext(ctx)
	err := L.DoString(src)
	L.RemoveContext()
	if err != nil {
		L.Close()
		return nil, fmt.Errorf("running %s: %w", name, err)
	}

	base := &luaPreviewer{canvas: newCanvas(), L: L, name: name}
	switch {
	case isFunction(L, luaInitStream):
		return &luaStreamPreviewer{base}, nil
	case isFunction(L, luaInitPath):
		return &luaPathPreviewer{base}, nil
	default:
		return base, nil
	}
}

// newSandbox opens only libraries without file or process access.
func newSandbox() *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	for _, lib := range []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		L.Push(L.NewFunction(lib.fn))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}
	for _, unsafe := range []string{"dofile", "loadfile", "load", "loadstring", "require"} {
		L.SetGlobal(unsafe, lua.LNil)
	}
	return L
}

func isFunction(L *lua.LState, name string) bool {
	return L.GetGlobal(name).Type() == lua.LTFunction
}

// luaPreviewer draws the lines returned by the script's render function.
// On its own it exposes no initializer.
type luaPreviewer struct {
	canvas
	L    *lua.LState
	name string
}

func (p *luaPreviewer) call(fn string, args ...lua.LValue) error {
	if p.L == nil {
		return ErrUnloaded
	}
	return p.bounded(func() error {
		return p.L.CallByParam(lua.P{Fn: p.L.GetGlobal(fn), NRet: 0, Protect: true}, args...)
	})
}

// bounded runs fn with a deadline on the Lua state.
func (p *luaPreviewer) bounded(fn func() error) error {
	ctx, cancel := context.WithTimeout(context.Background(), luaCallTimeout)
	defer cancel()
	p.L.SetContext(ctx)
	defer p.L.RemoveContext()
	return fn()
}

// DoPreview asks the script to render at the current size, then paints.
func (p *luaPreviewer) DoPreview() error {
	if err := p.render(); err != nil {
		return err
	}
	return p.canvas.DoPreview()
}

// SetRect re-renders so the script can lay out for the new size.
func (p *luaPreviewer) SetRect(rect plugin.Rect) error {
	if err := p.canvas.SetRect(rect); err != nil {
		return err
	}
	return p.render()
}

func (p *luaPreviewer) render() error {
	if p.L == nil {
		return ErrUnloaded
	}
	if !isFunction(p.L, luaRender) {
		return nil
	}
	err := p.bounded(func() error {
		return p.L.CallByParam(lua.P{Fn: p.L.GetGlobal(luaRender), NRet: 1, Protect: true},
			lua.LNumber(p.rect.Width), lua.LNumber(p.rect.Height))
	})
	if err != nil {
		return fmt.Errorf("%s: render: %w", p.name, err)
	}
	ret := p.L.Get(-1)
	p.L.Pop(1)

	p.lines = p.lines[:0]
	switch v := ret.(type) {
	case *lua.LTable:
		for i := 1; i <= v.Len(); i++ {
			p.lines = append(p.lines, textutil.SanitizeTerminalText(v.RawGetInt(i).String()))
		}
	case lua.LString:
		p.lines = textLines(string(v))
	}
	return nil
}

// Unload closes the Lua state.
func (p *luaPreviewer) Unload() error {
	if p.L != nil {
		p.L.Close()
		p.L = nil
	}
	return p.canvas.Unload()
}

type luaStreamPreviewer struct {
	*luaPreviewer
}

func (p *luaStreamPreviewer) InitializeWithStream(s plugin.Stream, _ plugin.Mode) error {
	data, err := fs.ReadHead(s, luaStreamLimit)
	if err != nil {
		return err
	}
	if err := p.call(luaInitStream, lua.LString(fs.NormalizeTextContent(data))); err != nil {
		return fmt.Errorf("%s: %w", p.name, err)
	}
	return nil
}

type luaPathPreviewer struct {
	*luaPreviewer
}

func (p *luaPathPreviewer) InitializeWithPath(path string, _ plugin.Mode) error {
	if err := p.call(luaInitPath, lua.LString(path)); err != nil {
		return fmt.Errorf("%s: %w", p.name, err)
	}
	return nil
}
