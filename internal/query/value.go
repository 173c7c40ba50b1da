package query

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Kind enumerates Scalar Value variants.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindBool:
		return "Bool"
	case KindInt:
		return "Int"
	case KindFloat:
		return "Float"
	case KindString:
		return "String"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// epsilon is the gap between 1.0 and the next representable float64.
const epsilon = 0x1p-52

// Value is a typed scalar extracted from a JSON document for condition
// evaluation. Arrays and objects are not representable; extracting one is an
// invalid target.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
}

func Null() Value           { return Value{kind: KindNull} }
func Bool(v bool) Value     { return Value{kind: KindBool, b: v} }
func Int(v int64) Value     { return Value{kind: KindInt, i: v} }
func Float(v float64) Value { return Value{kind: KindFloat, f: v} }
func String(v string) Value { return Value{kind: KindString, s: v} }

func (v Value) Kind() Kind { return v.kind }

func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "Null"
	case KindBool:
		return fmt.Sprintf("Bool(%t)", v.b)
	case KindInt:
		return fmt.Sprintf("Int(%d)", v.i)
	case KindFloat:
		return fmt.Sprintf("Float(%v)", v.f)
	case KindString:
		return fmt.Sprintf("String(%s)", v.s)
	default:
		return fmt.Sprintf("Value(%d)", int(v.kind))
	}
}

// Equal reports same-variant structural equality. There is no cross-variant
// equality. Floats compare equal when their absolute values differ by at
// most epsilon; note this compares magnitudes, so -x and x are equal.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == o.b
	case KindInt:
		return v.i == o.i
	case KindFloat:
		return math.Abs(math.Abs(v.f)-math.Abs(o.f)) <= epsilon
	default:
		return v.s == o.s
	}
}

// FromNumber classifies a float as Int when it is integral, Float otherwise.
// Specification documents carry all numbers as floats; this restores the
// Int/Float split for declared condition values.
func FromNumber(v float64) Value {
	if math.Ceil(v)-v == 0 {
		return Int(int64(v))
	}
	return Float(v)
}

// fromDocument converts a resolved document node into a Scalar Value.
// Arrays, objects, and unrecognized dynamic types report false.
// Numbers are Int when exactly representable as an integer, else Float.
func fromDocument(v any) (Value, bool) {
	switch x := v.(type) {
	case nil:
		return Null(), true
	case bool:
		return Bool(x), true
	case json.Number:
		if i, err := strconv.ParseInt(string(x), 10, 64); err == nil {
			return Int(i), true
		}
		f, err := x.Float64()
		if err != nil {
			return Value{}, false
		}
		return Float(f), true
	case int:
		return Int(int64(x)), true
	case int64:
		return Int(x), true
	case float64:
		return Float(x), true
	case string:
		return String(x), true
	default:
		return Value{}, false
	}
}
