// Package loader reads a Lua house-rules file into a config.Config.
// The Lua VM is discarded after loading; nothing scripted runs during play.
package loader

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/tuberoulette/config"
)

// collector accumulates Lua definitions during file execution.
type collector struct {
	rules *lua.LTable
	calls int
}

// Load executes the rules file at path in a sandboxed VM and overlays
// what it declares onto base. The result is validated before it is
// returned. Warnings name fields that were ignored.
func Load(path string, base config.Config) (config.Config, []string, error) {
	return run(base, func(L *lua.LState) error {
		if err := L.DoFile(path); err != nil {
			return fmt.Errorf("executing %s: %w", path, err)
		}
		return nil
	})
}

// LoadString is Load for rules held in memory.
func LoadString(src string, base config.Config) (config.Config, []string, error) {
	return run(base, func(L *lua.LState) error {
		if err := L.DoString(src); err != nil {
			return fmt.Errorf("executing rules: %w", err)
		}
		return nil
	})
}

func run(base config.Config, exec func(*lua.LState) error) (config.Config, []string, error) {
	// Create sandboxed VM.
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	openSafeLibs(L)
	sandbox(L)

	coll := &collector{}
	registerAPI(L, coll)

	if err := exec(L); err != nil {
		return base, nil, err
	}
	if coll.rules == nil {
		return base, nil, fmt.Errorf("no Rules { ... } declaration found")
	}
	if coll.calls > 1 {
		return base, nil, fmt.Errorf("Rules declared %d times, want exactly once", coll.calls)
	}

	cfg, warnings, err := compile(coll.rules, base)
	if err != nil {
		return base, warnings, fmt.Errorf("compiling house rules: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return base, warnings, err
	}
	return cfg, warnings, nil
}

// openSafeLibs opens only the safe subset of Lua standard libraries.
func openSafeLibs(L *lua.LState) {
	// Base library (print, type, tostring, tonumber, pairs, ipairs, etc.)
	lua.OpenBase(L)
	// String library (string.format, string.sub, etc.)
	lua.OpenString(L)
	// Math library (math.floor, math.max, etc.)
	lua.OpenMath(L)
}

// sandbox removes dangerous globals and functions.
func sandbox(L *lua.LState) {
	dangerous := []string{
		"dofile", "loadfile", "load", "loadstring", "require",
		"rawset", "rawget", "rawequal",
		"collectgarbage",
	}
	for _, name := range dangerous {
		L.SetGlobal(name, lua.LNil)
	}

	// A rules file must not pick its own random stream; seeds are declared.
	if mathTbl := L.GetGlobal("math"); mathTbl != lua.LNil {
		if tbl, ok := mathTbl.(*lua.LTable); ok {
			tbl.RawSetString("random", lua.LNil)
			tbl.RawSetString("randomseed", lua.LNil)
		}
	}
}
