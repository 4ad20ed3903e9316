package jsonpatch

import (
	"testing"
)

func diffJSON(t *testing.T, a, b interface{}) []Op {
	t.Helper()
	av, err := Snapshot(a)
	if err != nil {
		t.Fatalf("snapshot a: %v", err)
	}
	bv, err := Snapshot(b)
	if err != nil {
		t.Fatalf("snapshot b: %v", err)
	}
	return DiffValues(av, bv, "")
}

func TestNoChangesYieldsEmptyPatch(t *testing.T) {
	doc := map[string]interface{}{"clientName": "Acme", "total": 1080.0}
	if ops := diffJSON(t, doc, doc); len(ops) != 0 {
		t.Fatalf("expected empty patch, got %v", ops)
	}
}

func TestReplacedScalar(t *testing.T) {
	a := map[string]interface{}{"total": 1080.0}
	b := map[string]interface{}{"total": 1188.0}

	ops := diffJSON(t, a, b)
	if len(ops) != 1 || ops[0].Op != "replace" || ops[0].Path != "/total" {
		t.Fatalf("unexpected patch %v", ops)
	}
	if ops[0].Value != 1188.0 {
		t.Fatalf("unexpected value %v", ops[0].Value)
	}
}

func TestAddedAndRemovedKeys(t *testing.T) {
	a := map[string]interface{}{"old": 1.0}
	b := map[string]interface{}{"new": 2.0}

	ops := diffJSON(t, a, b)
	if len(ops) != 2 {
		t.Fatalf("expected 2 ops, got %v", ops)
	}
	var sawRemove, sawAdd bool
	for _, op := range ops {
		switch {
		case op.Op == "remove" && op.Path == "/old":
			sawRemove = true
		case op.Op == "add" && op.Path == "/new":
			sawAdd = true
		}
	}
	if !sawRemove || !sawAdd {
		t.Fatalf("unexpected ops %v", ops)
	}
}

func TestArrayShrinkRemovesHighIndexesFirst(t *testing.T) {
	a := []interface{}{"a", "b", "c"}
	b := []interface{}{"a"}

	ops := diffJSON(t, a, b)
	if len(ops) != 2 || ops[0].Path != "/2" || ops[1].Path != "/1" {
		t.Fatalf("removals must run high-to-low: %v", ops)
	}
}

func TestKindChangeReplacesWholeNode(t *testing.T) {
	a := map[string]interface{}{"services": map[string]interface{}{"HQ": 1.0}}
	b := map[string]interface{}{"services": []interface{}{"HQ"}}

	ops := diffJSON(t, a, b)
	if len(ops) != 1 || ops[0].Op != "replace" || ops[0].Path != "/services" {
		t.Fatalf("unexpected patch %v", ops)
	}
}

func TestPointerTokensEscaped(t *testing.T) {
	a := map[string]interface{}{"a/b": 1.0}
	b := map[string]interface{}{"a/b": 2.0}

	ops := diffJSON(t, a, b)
	if len(ops) != 1 || ops[0].Path != "/a~1b" {
		t.Fatalf("expected escaped pointer, got %v", ops)
	}
}
