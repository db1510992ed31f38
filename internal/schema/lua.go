package schema

import (
	"fmt"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/inkstorm/internal/engine/node"
)

// LuaRule runs a Lua validate function against nodes. The script must
// define a global function
//
//	function validate(n)
//	  -- n.kind ("element"|"text"), n.type, n.void, n.inline,
//	  -- n.text, n.props, n.child_count
//	  return true                          -- pass
//	  return false, "remove"               -- remove the node
//	  return false, "set_props", { ... }   -- patch properties
//	end
//
// gopher-lua's LState is not goroutine-safe, so each LuaRule owns its
// state behind a mutex.
type LuaRule struct {
	mu sync.Mutex
	ls *lua.LState
	fn lua.LValue
}

// NewLuaRule compiles script and looks up its validate function.
func NewLuaRule(script string) (*LuaRule, error) {
	ls := lua.NewState()
	if err := ls.DoString(script); err != nil {
		ls.Close()
		return nil, fmt.Errorf("load schema rule: %w", err)
	}
	fn := ls.GetGlobal("validate")
	if fn == lua.LNil {
		ls.Close()
		return nil, fmt.Errorf("schema rule defines no validate function")
	}
	return &LuaRule{ls: ls, fn: fn}, nil
}

// Close releases the underlying Lua state.
func (r *LuaRule) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ls.Close()
}

// Validate implements Rule. A script error counts as a pass: schema
// rules may reject nodes, not break editing.
func (r *LuaRule) Validate(n node.Node) Result {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.ls.CallByParam(lua.P{Fn: r.fn, NRet: 3, Protect: true}, r.nodeToLua(n)); err != nil {
		return Pass
	}
	ok := lua.LVAsBool(r.ls.Get(-3))
	action := lua.LVAsString(r.ls.Get(-2))
	propsVal := r.ls.Get(-1)
	r.ls.Pop(3)

	if ok {
		return Pass
	}
	switch action {
	case "remove":
		return Result{Repair: RepairRemove}
	case "set_props":
		props, _ := luaToGo(propsVal).(map[string]any)
		return Result{Repair: RepairSetProps, Props: props}
	default:
		return Result{Repair: RepairNone}
	}
}

// nodeToLua builds the read-only table handed to the script.
func (r *LuaRule) nodeToLua(n node.Node) *lua.LTable {
	t := r.ls.NewTable()
	switch v := n.(type) {
	case *node.Text:
		t.RawSetString("kind", lua.LString("text"))
		t.RawSetString("text", lua.LString(v.Content))
		t.RawSetString("props", goToLua(r.ls, v.Props))
	case *node.Element:
		t.RawSetString("kind", lua.LString("element"))
		t.RawSetString("type", lua.LString(v.Type))
		t.RawSetString("void", lua.LBool(v.Void))
		t.RawSetString("inline", lua.LBool(v.Inline))
		t.RawSetString("props", goToLua(r.ls, v.Props))
		t.RawSetString("child_count", lua.LNumber(len(v.Children)))
	case *node.Document:
		t.RawSetString("kind", lua.LString("document"))
		t.RawSetString("child_count", lua.LNumber(len(v.Children)))
	}
	return t
}

// goToLua converts a Go value to a Lua value. Unsupported types map to
// nil.
func goToLua(ls *lua.LState, v any) lua.LValue {
	switch x := v.(type) {
	case nil:
		return lua.LNil
	case bool:
		return lua.LBool(x)
	case int:
		return lua.LNumber(x)
	case int64:
		return lua.LNumber(x)
	case float64:
		return lua.LNumber(x)
	case string:
		return lua.LString(x)
	case map[string]any:
		t := ls.NewTable()
		for k, val := range x {
			t.RawSetString(k, goToLua(ls, val))
		}
		return t
	case []any:
		t := ls.NewTable()
		for i, val := range x {
			t.RawSetInt(i+1, goToLua(ls, val))
		}
		return t
	default:
		return lua.LNil
	}
}

// luaToGo converts a Lua value to a Go value. Tables with contiguous
// integer keys become slices, everything else a map.
func luaToGo(lv lua.LValue) any {
	switch v := lv.(type) {
	case lua.LBool:
		return bool(v)
	case lua.LNumber:
		f := float64(v)
		if f == float64(int64(f)) {
			return int64(f)
		}
		return f
	case lua.LString:
		return string(v)
	case *lua.LTable:
		maxN := 0
		isArray := true
		v.ForEach(func(k, _ lua.LValue) {
			if kn, ok := k.(lua.LNumber); ok && float64(kn) == float64(int(kn)) && int(kn) > 0 {
				if int(kn) > maxN {
					maxN = int(kn)
				}
				return
			}
			isArray = false
		})
		if isArray && maxN > 0 {
			out := make([]any, 0, maxN)
			for i := 1; i <= maxN; i++ {
				out = append(out, luaToGo(v.RawGetInt(i)))
			}
			return out
		}
		out := make(map[string]any)
		v.ForEach(func(k, val lua.LValue) {
			out[lua.LVAsString(k)] = luaToGo(val)
		})
		return out
	default:
		return nil
	}
}
