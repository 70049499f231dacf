package loader

import (
	"fmt"
	"math"
	"sort"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/tuberoulette/config"
)

// getInt reads an integer field. ok is false when the key is absent.
func getInt(tbl *lua.LTable, key string) (n int, ok bool, err error) {
	v := tbl.RawGetString(key)
	if v == lua.LNil {
		return 0, false, nil
	}
	num, isNum := v.(lua.LNumber)
	if !isNum {
		return 0, false, fmt.Errorf("%s must be a number, got %s", key, v.Type())
	}
	f := float64(num)
	if f != math.Trunc(f) {
		return 0, false, fmt.Errorf("%s must be a whole number, got %v", key, f)
	}
	return int(f), true, nil
}

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) (string, error) {
	v := tbl.RawGetString(key)
	if v == lua.LNil {
		return "", nil
	}
	s, ok := v.(lua.LString)
	if !ok {
		return "", fmt.Errorf("%s must be a string, got %s", key, v.Type())
	}
	return string(s), nil
}

// getTable returns a table field from a Lua table, or nil if missing.
func getTable(tbl *lua.LTable, key string) (*lua.LTable, error) {
	v := tbl.RawGetString(key)
	if v == lua.LNil {
		return nil, nil
	}
	t, ok := v.(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("%s must be a table, got %s", key, v.Type())
	}
	return t, nil
}

// tableKeys returns the string keys of tbl, sorted.
func tableKeys(tbl *lua.LTable) []string {
	var keys []string
	tbl.ForEach(func(k, _ lua.LValue) {
		if s, ok := k.(lua.LString); ok {
			keys = append(keys, string(s))
		}
	})
	sort.Strings(keys)
	return keys
}

// compile overlays the Rules table onto base. Every field is optional.
// Unknown fields come back as warnings.
func compile(rules *lua.LTable, base config.Config) (config.Config, []string, error) {
	cfg := base
	ve := &ValidationError{}

	for _, key := range tableKeys(rules) {
		if !knownTopLevel[key] {
			ve.Warnings = append(ve.Warnings, fmt.Sprintf("unknown field %q ignored", key))
		}
	}

	pair := func(group string, lo, hi *int) {
		tbl, err := getTable(rules, group)
		if err != nil {
			ve.Errors = append(ve.Errors, err.Error())
			return
		}
		if tbl == nil {
			return
		}
		keys := pairKeys[group]
		for i, dst := range []*int{lo, hi} {
			n, ok, err := getInt(tbl, keys[i])
			if err != nil {
				ve.Errors = append(ve.Errors, group+"."+err.Error())
				continue
			}
			if ok {
				*dst = n
			}
		}
		for _, k := range tableKeys(tbl) {
			if k != keys[0] && k != keys[1] {
				ve.Warnings = append(ve.Warnings, fmt.Sprintf("unknown field %s.%s ignored", group, k))
			}
		}
	}
	pair("shells", &cfg.MinShells, &cfg.MaxShells)
	pair("hp", &cfg.PlayerMaxHP, &cfg.DealerMaxHP)
	pair("items", &cfg.MinItems, &cfg.MaxItems)

	if n, ok, err := getInt(rules, "seed"); err != nil {
		ve.Errors = append(ve.Errors, err.Error())
	} else if ok {
		cfg = cfg.WithSeed(int64(n))
	}

	logTbl, err := getTable(rules, "log")
	if err != nil {
		ve.Errors = append(ve.Errors, err.Error())
	}
	if logTbl != nil {
		if level, err := getString(logTbl, "level"); err != nil {
			ve.Errors = append(ve.Errors, "log."+err.Error())
		} else if level != "" {
			cfg.LogLevel = level
		}
		if format, err := getString(logTbl, "format"); err != nil {
			ve.Errors = append(ve.Errors, "log."+err.Error())
		} else if format != "" {
			cfg.LogFormat = format
		}
	}

	if len(ve.Errors) > 0 {
		return base, ve.Warnings, ve
	}
	return cfg, ve.Warnings, nil
}
