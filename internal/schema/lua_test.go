package schema

import (
	"testing"

	"github.com/dshills/inkstorm/internal/engine/node"
)

func TestLuaRulePass(t *testing.T) {
	rule, err := NewLuaRule(`function validate(n) return true end`)
	if err != nil {
		t.Fatalf("NewLuaRule: %v", err)
	}
	defer rule.Close()

	res := rule.Validate(node.NewElement("paragraph", node.NewText("x", nil)))
	if !res.OK {
		t.Error("expected pass")
	}
}

func TestLuaRuleRemove(t *testing.T) {
	rule, err := NewLuaRule(`
function validate(n)
  if n.kind == "element" and n.type == "banned" then
    return false, "remove"
  end
  return true
end`)
	if err != nil {
		t.Fatalf("NewLuaRule: %v", err)
	}
	defer rule.Close()

	res := rule.Validate(node.NewElement("banned"))
	if res.OK || res.Repair != RepairRemove {
		t.Errorf("result = %+v, want remove repair", res)
	}
	if res = rule.Validate(node.NewElement("paragraph")); !res.OK {
		t.Errorf("paragraph should pass, got %+v", res)
	}
}

func TestLuaRuleSetProps(t *testing.T) {
	rule, err := NewLuaRule(`
function validate(n)
  if n.kind == "element" and n.type == "heading" and n.props.level > 6 then
    return false, "set_props", { level = 6 }
  end
  return true
end`)
	if err != nil {
		t.Fatalf("NewLuaRule: %v", err)
	}
	defer rule.Close()

	h := node.NewElement("heading")
	h.Props = map[string]any{"level": 9}
	res := rule.Validate(h)
	if res.OK || res.Repair != RepairSetProps {
		t.Fatalf("result = %+v, want set_props repair", res)
	}
	if res.Props["level"] != int64(6) {
		t.Errorf("patch = %v, want level 6", res.Props)
	}
}

func TestLuaRuleSeesNodeShape(t *testing.T) {
	rule, err := NewLuaRule(`
function validate(n)
  if n.kind == "element" and n.void and n.child_count ~= 1 then
    return false, "remove"
  end
  return true
end`)
	if err != nil {
		t.Fatalf("NewLuaRule: %v", err)
	}
	defer rule.Close()

	good := node.NewVoid("divider", nil)
	if res := rule.Validate(good); !res.OK {
		t.Errorf("well-formed void should pass, got %+v", res)
	}
	bad := &node.Element{Type: "divider", Void: true}
	if res := rule.Validate(bad); res.OK {
		t.Error("empty void should fail")
	}
}

func TestLuaRuleScriptErrorCountsAsPass(t *testing.T) {
	rule, err := NewLuaRule(`function validate(n) error("boom") end`)
	if err != nil {
		t.Fatalf("NewLuaRule: %v", err)
	}
	defer rule.Close()

	if res := rule.Validate(node.NewElement("paragraph")); !res.OK {
		t.Errorf("script error should count as pass, got %+v", res)
	}
}

func TestNewLuaRuleRejectsBadScripts(t *testing.T) {
	if _, err := NewLuaRule(`this is not lua`); err == nil {
		t.Error("syntax error should fail")
	}
	if _, err := NewLuaRule(`x = 1`); err == nil {
		t.Error("script without validate should fail")
	}
}

func TestLuaRuleUnknownActionIsRepairNone(t *testing.T) {
	rule, err := NewLuaRule(`function validate(n) return false, "explode" end`)
	if err != nil {
		t.Fatalf("NewLuaRule: %v", err)
	}
	defer rule.Close()

	res := rule.Validate(node.NewElement("paragraph"))
	if res.OK || res.Repair != RepairNone {
		t.Errorf("result = %+v, want RepairNone", res)
	}
}
