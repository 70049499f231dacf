package loader

import (
	lua "github.com/yuin/gopher-lua"
)

// presets are named rule sets a file can start from.
var presets = map[string]map[string][2]int{
	"classic": {
		"shells": {2, 8},
		"hp":     {4, 4},
		"items":  {2, 4},
	},
	"quick": {
		"shells": {2, 4},
		"hp":     {2, 2},
		"items":  {1, 2},
	},
	"marathon": {
		"shells": {4, 8},
		"hp":     {6, 6},
		"items":  {3, 5},
	},
}

// pairKeys names the two fields of each grouped setting.
var pairKeys = map[string][2]string{
	"shells": {"min", "max"},
	"hp":     {"player", "dealer"},
	"items":  {"min", "max"},
}

// registerAPI registers the Lua constructors and helpers as globals.
func registerAPI(L *lua.LState, coll *collector) {
	// Rules { shells = {min=2, max=8}, hp = {player=4, dealer=4}, ... }
	L.SetGlobal("Rules", L.NewFunction(func(L *lua.LState) int {
		tbl := L.CheckTable(1)
		coll.rules = tbl
		coll.calls++
		return 0
	}))

	// Preset("quick") returns a fresh rules table to extend or pass to Rules.
	L.SetGlobal("Preset", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		p, ok := presets[name]
		if !ok {
			L.ArgError(1, "unknown preset "+name)
			return 0
		}
		tbl := L.NewTable()
		for group, vals := range p {
			keys := pairKeys[group]
			sub := L.NewTable()
			sub.RawSetString(keys[0], lua.LNumber(vals[0]))
			sub.RawSetString(keys[1], lua.LNumber(vals[1]))
			tbl.RawSetString(group, sub)
		}
		L.Push(tbl)
		return 1
	}))

	// Between(2, 6) is shorthand for {min = 2, max = 6}.
	L.SetGlobal("Between", L.NewFunction(func(L *lua.LState) int {
		lo := L.CheckInt(1)
		hi := L.CheckInt(2)
		tbl := L.NewTable()
		tbl.RawSetString("min", lua.LNumber(lo))
		tbl.RawSetString("max", lua.LNumber(hi))
		L.Push(tbl)
		return 1
	}))
}
