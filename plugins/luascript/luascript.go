// plugins/luascript/luascript.go
//
// Package luascript runs user Lua scripts that add commands to the editor.
// Scripts see a single global table:
//
//	sprig.command(name, fn)      register :name; fn receives the arguments
//	sprig.status(text)           show a status message
//	sprig.stats()                table of width, height, frames, layers, undo, redo, memsize
//	sprig.fill(x, y, w, h, hex)  fill a rectangle of the active cel (one undo step)
//	sprig.undo() / sprig.redo()
package luascript

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bethropolis/sprig/internal/docapi"
	"github.com/bethropolis/sprig/internal/logger"
	"github.com/bethropolis/sprig/internal/plugin"
	"github.com/bethropolis/sprig/internal/raster"
	"github.com/bethropolis/sprig/internal/types"
	lua "github.com/yuin/gopher-lua"
)

var _ plugin.Plugin = (*LuaScript)(nil)

// LuaScript loads every .lua file of a directory into one Lua state.
type LuaScript struct {
	api    plugin.EditorAPI
	dir    string
	L      *lua.LState
	loaded []string
}

// New creates the plugin for scripts in dir. An empty or missing dir
// loads nothing.
func New(dir string) plugin.Plugin {
	return &LuaScript{dir: dir}
}

func (p *LuaScript) Name() string {
	return "LuaScript"
}

// Loaded returns the base names of the scripts that ran successfully.
func (p *LuaScript) Loaded() []string {
	return p.loaded
}

func (p *LuaScript) Initialize(api plugin.EditorAPI) error {
	p.api = api
	p.L = lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(p.L)
	p.installModule()

	if p.dir == "" {
		return nil
	}
	entries, err := os.ReadDir(p.dir)
	if os.IsNotExist(err) {
		logger.DebugTagf("lua", "Script directory '%s' does not exist", p.dir)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read script directory '%s': %w", p.dir, err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".lua") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	for _, name := range names {
		path := filepath.Join(p.dir, name)
		if err := p.L.DoFile(path); err != nil {
			logger.ErrorTagf("lua", "Script '%s' failed: %v", path, err)
			continue
		}
		p.loaded = append(p.loaded, name)
	}
	logger.InfoTagf("lua", "Loaded %d of %d scripts from %s", len(p.loaded), len(names), p.dir)
	return nil
}

// RunString executes code in the plugin state. name labels errors.
func (p *LuaScript) RunString(name, code string) error {
	if p.L == nil {
		return fmt.Errorf("luascript: not initialized")
	}
	if code == "" {
		return nil
	}
	if err := p.L.DoString(code); err != nil {
		return fmt.Errorf("script '%s': %w", name, err)
	}
	return nil
}

func (p *LuaScript) Shutdown() error {
	if p.L != nil {
		p.L.Close()
		p.L = nil
	}
	return nil
}

// openSafeLibraries opens the base, table, string and math libraries only.
// io, os, debug and package stay closed.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

func (p *LuaScript) installModule() {
	L := p.L
	mod := L.NewTable()
	L.SetField(mod, "command", L.NewFunction(p.luaCommand))
	L.SetField(mod, "status", L.NewFunction(p.luaStatus))
	L.SetField(mod, "stats", L.NewFunction(p.luaStats))
	L.SetField(mod, "fill", L.NewFunction(p.luaFill))
	L.SetField(mod, "undo", L.NewFunction(p.luaUndo))
	L.SetField(mod, "redo", L.NewFunction(p.luaRedo))
	L.SetGlobal("sprig", mod)
}

// command(name, fn)
func (p *LuaScript) luaCommand(L *lua.LState) int {
	name := L.CheckString(1)
	fn := L.CheckFunction(2)
	err := p.api.RegisterCommand(name, func(args []string) error {
		params := make([]lua.LValue, len(args))
		for i, a := range args {
			params[i] = lua.LString(a)
		}
		return p.L.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true}, params...)
	})
	if err != nil {
		L.RaiseError("%v", err)
	}
	return 0
}

// status(text)
func (p *LuaScript) luaStatus(L *lua.LState) int {
	p.api.SetStatusMessage("%s", L.CheckString(1))
	return 0
}

// stats() -> table
func (p *LuaScript) luaStats(L *lua.LState) int {
	sprite := p.api.Document().Sprite()
	h := p.api.HistoryStats()
	t := L.NewTable()
	t.RawSetString("width", lua.LNumber(sprite.Width()))
	t.RawSetString("height", lua.LNumber(sprite.Height()))
	t.RawSetString("frames", lua.LNumber(sprite.Frames()))
	t.RawSetString("layers", lua.LNumber(len(sprite.Layers())))
	t.RawSetString("frame", lua.LNumber(p.api.CurrentFrame()))
	t.RawSetString("undo", lua.LNumber(h.UndoCount))
	t.RawSetString("redo", lua.LNumber(h.RedoCount))
	t.RawSetString("memsize", lua.LNumber(h.MemSize))
	L.Push(t)
	return 1
}

// fill(x, y, w, h, hex)
func (p *LuaScript) luaFill(L *lua.LState) int {
	region := types.NewRect(L.CheckInt(1), L.CheckInt(2), L.CheckInt(3), L.CheckInt(4))
	color, err := raster.ParseHex(L.CheckString(5))
	if err != nil {
		L.ArgError(5, err.Error())
		return 0
	}
	layer := p.api.CurrentLayer()
	if layer == nil {
		L.RaiseError("no active layer")
		return 0
	}
	frame := p.api.CurrentFrame()
	err = p.api.Execute("Script Fill", func(api *docapi.API) error {
		cel, err := api.EnsureCel(layer, frame)
		if err != nil {
			return err
		}
		pos := cel.Position()
		return api.FillRect(cel.Image(), region.Offset(types.Point{X: -pos.X, Y: -pos.Y}), color)
	})
	if err != nil {
		L.RaiseError("%v", err)
	}
	return 0
}

func (p *LuaScript) luaUndo(L *lua.LState) int {
	if err := p.api.Undo(); err != nil {
		L.RaiseError("%v", err)
	}
	return 0
}

func (p *LuaScript) luaRedo(L *lua.LState) int {
	if err := p.api.Redo(); err != nil {
		L.RaiseError("%v", err)
	}
	return 0
}
