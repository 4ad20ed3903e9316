// Package jsonpatch computes RFC 6902 patches between two proposal snapshots,
// giving edit callers a machine-readable view of what a batch changed to go
// with the human-readable changesSummary.
package jsonpatch

import (
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// Op is one RFC 6902 patch operation.
type Op struct {
	Op    string      `json:"op"`
	Path  string      `json:"path"`
	Value interface{} `json:"value,omitempty"`
}

// DiffValues computes a patch that transforms a into b. Both must be the
// result of unmarshaling JSON into interface{}. Pass "" as the root path.
func DiffValues(a, b interface{}, path string) []Op {
	if a == nil && b == nil {
		return nil
	}
	if a == nil || b == nil {
		return []Op{{Op: "replace", Path: path, Value: b}}
	}

	aMap, aIsMap := a.(map[string]interface{})
	bMap, bIsMap := b.(map[string]interface{})
	if aIsMap && bIsMap {
		return diffObjects(aMap, bMap, path)
	}

	aArr, aIsArr := a.([]interface{})
	bArr, bIsArr := b.([]interface{})
	if aIsArr && bIsArr {
		return diffArrays(aArr, bArr, path)
	}

	// Mismatched kinds (object vs array etc.) are not comparable with ==.
	if aIsMap || bIsMap || aIsArr || bIsArr {
		return []Op{{Op: "replace", Path: path, Value: b}}
	}

	if a != b {
		return []Op{{Op: "replace", Path: path, Value: b}}
	}
	return nil
}

// Snapshot round-trips a value through JSON so it can be diffed later even if
// the original is mutated in place, which is exactly what editor batches do.
func Snapshot(v interface{}) (interface{}, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func diffObjects(a, b map[string]interface{}, path string) []Op {
	var ops []Op

	for k := range a {
		if _, ok := b[k]; !ok {
			ops = append(ops, Op{Op: "remove", Path: path + "/" + escapeKey(k)})
		}
	}

	for k, bv := range b {
		childPath := path + "/" + escapeKey(k)
		av, inA := a[k]
		if !inA {
			ops = append(ops, Op{Op: "add", Path: childPath, Value: bv})
		} else {
			ops = append(ops, DiffValues(av, bv, childPath)...)
		}
	}

	return ops
}

func diffArrays(a, b []interface{}, path string) []Op {
	var ops []Op

	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}

	for i := 0; i < minLen; i++ {
		ops = append(ops, DiffValues(a[i], b[i], path+"/"+strconv.Itoa(i))...)
	}

	// Removals run last-index-first so earlier indexes stay valid.
	for i := len(a) - 1; i >= minLen; i-- {
		ops = append(ops, Op{Op: "remove", Path: path + "/" + strconv.Itoa(i)})
	}
	for i := minLen; i < len(b); i++ {
		ops = append(ops, Op{Op: "add", Path: path + "/" + strconv.Itoa(i), Value: b[i]})
	}

	return ops
}

// escapeKey escapes a JSON Pointer token per RFC 6901.
func escapeKey(s string) string {
	s = strings.ReplaceAll(s, "~", "~0")
	s = strings.ReplaceAll(s, "/", "~1")
	return s
}
