package sorter

import (
	"encoding/json"
	"math"
	"strings"
)

// Kind enumerates Sortable Value groups. The declaration order is the
// ascending variant order: Null < Array < Object < Bool < Number < String.
type Kind int

const (
	KindNull Kind = iota
	KindArray
	KindObject
	KindBool
	KindNumber
	KindString
)

const epsilon = 0x1p-52

// Value is a comparison key extracted from a document for one sort
// criterion. Array and Object carry no payload: two arrays, or two objects,
// always compare equal regardless of contents.
type Value struct {
	kind Kind
	b    bool
	f    float64
	s    string
}

// Null is the Value an unresolvable sort path maps to. It sorts before
// every other group.
func Null() Value { return Value{kind: KindNull} }

// FromDocument classifies a resolved document node as a comparison key.
// NaN numbers are not handled; documents decoded from JSON cannot carry
// them.
func FromDocument(v any) Value {
	switch x := v.(type) {
	case nil:
		return Value{kind: KindNull}
	case bool:
		return Value{kind: KindBool, b: x}
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return Value{kind: KindNull}
		}
		return Value{kind: KindNumber, f: f}
	case int:
		return Value{kind: KindNumber, f: float64(x)}
	case int64:
		return Value{kind: KindNumber, f: float64(x)}
	case float64:
		return Value{kind: KindNumber, f: x}
	case string:
		return Value{kind: KindString, s: x}
	case []any:
		return Value{kind: KindArray}
	case map[string]any:
		return Value{kind: KindObject}
	default:
		return Value{kind: KindNull}
	}
}

func (v Value) Kind() Kind { return v.kind }

// Equal reports same-group equality: arrays and objects always, bools and
// strings structurally, numbers within epsilon of each other.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull, KindArray, KindObject:
		return true
	case KindBool:
		return v.b == o.b
	case KindNumber:
		return math.Abs(v.f-o.f) <= epsilon
	default:
		return v.s == o.s
	}
}

// Compare orders v against o, returning -1, 0, or 1. Different groups order
// by variant rank; equal values (per Equal) are 0; within a group bools
// order false < true, numbers numerically, strings bytewise.
func (v Value) Compare(o Value) int {
	if v.Equal(o) {
		return 0
	}
	if v.kind != o.kind {
		if v.kind < o.kind {
			return -1
		}
		return 1
	}
	switch v.kind {
	case KindBool:
		// unequal here, so v=false means v < o
		if !v.b {
			return -1
		}
		return 1
	case KindNumber:
		if v.f < o.f {
			return -1
		}
		return 1
	default:
		return strings.Compare(v.s, o.s)
	}
}
