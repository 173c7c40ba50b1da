package query

import (
	"github.com/berquerant/jsongrep/internal/matcher"
)

// Evaluator is one node of a boolean expression tree over operands of type
// T. Trees are built once from a specification document and never mutated.
type Evaluator[T any] interface {
	// Eval reports whether the operand satisfies the node.
	Eval(operand T) (bool, error)
}

// Condition evaluates a single Scalar Value.
type Condition = Evaluator[Value]

// Equal matches when the operand equals the declared value. Operands of a
// different variant fail with TypeMismatchError.
type Equal struct {
	Value Value
}

func (c *Equal) Eval(operand Value) (bool, error) {
	if c.Value.Kind() != operand.Kind() {
		return false, &TypeMismatchError{
			Want: c.Value.Kind().String(),
			Got:  operand.String(),
			By:   "Equal",
		}
	}
	return c.Value.Equal(operand), nil
}

// GreaterThan matches when the operand is greater than the declared value.
// Bools order false < true, numbers numerically, strings lexicographically.
// Null has no order, so Null operands always fail with TypeMismatchError.
type GreaterThan struct {
	Value Value
}

func (c *GreaterThan) Eval(operand Value) (bool, error) {
	l, r := c.Value, operand
	if l.Kind() == r.Kind() {
		switch l.Kind() {
		case KindBool:
			return !l.b && r.b, nil
		case KindInt:
			return l.i < r.i, nil
		case KindFloat:
			return l.f < r.f, nil
		case KindString:
			return l.s < r.s, nil
		}
	}
	return false, &TypeMismatchError{
		Want: l.Kind().String(),
		Got:  r.String(),
		By:   "GreaterThan",
	}
}

// LessThan matches when the operand is less than the declared value.
type LessThan struct {
	Value Value
}

func (c *LessThan) Eval(operand Value) (bool, error) {
	l, r := c.Value, operand
	if l.Kind() == r.Kind() {
		switch l.Kind() {
		case KindBool:
			return l.b && !r.b, nil
		case KindInt:
			return l.i > r.i, nil
		case KindFloat:
			return l.f > r.f, nil
		case KindString:
			return l.s > r.s, nil
		}
	}
	return false, &TypeMismatchError{
		Want: l.Kind().String(),
		Got:  r.String(),
		By:   "LessThan",
	}
}

// Match tests the operand string against the declared pattern string. Both
// sides must be strings; anything else fails with MatcherTypeMismatchError.
type Match struct {
	Value Value
	Kind  matcher.Kind
}

func (c *Match) Eval(operand Value) (bool, error) {
	if c.Value.Kind() != KindString || operand.Kind() != KindString {
		return false, &MatcherTypeMismatchError{
			MatcherType:  c.Kind.String(),
			MatcherValue: c.Value.String(),
			Target:       operand.String(),
			By:           "Match",
		}
	}
	return matcher.Test(c.Kind, c.Value.s, operand.s)
}

// Not negates its child; child errors pass through unchanged.
type Not[T any] struct {
	Child Evaluator[T]
}

func (c *Not[T]) Eval(operand T) (bool, error) {
	ok, err := c.Child.Eval(operand)
	if err != nil {
		return false, err
	}
	return !ok, nil
}

// And matches when every child matches. Children are evaluated in declared
// order; evaluation stops at the first error or first non-match and returns
// that child's result unchanged. Zero children fail with NoChildrenError.
type And[T any] struct {
	Children []Evaluator[T]
}

func (c *And[T]) Eval(operand T) (bool, error) {
	if len(c.Children) == 0 {
		return false, &NoChildrenError{By: "And"}
	}
	for _, child := range c.Children {
		ok, err := child.Eval(operand)
		if err != nil || !ok {
			return ok, err
		}
	}
	return true, nil
}

// Or matches when at least one child matches. Children are evaluated in
// declared order; evaluation stops at the first error or first match and
// returns that child's result unchanged. Zero children fail with
// NoChildrenError.
type Or[T any] struct {
	Children []Evaluator[T]
}

func (c *Or[T]) Eval(operand T) (bool, error) {
	if len(c.Children) == 0 {
		return false, &NoChildrenError{By: "Or"}
	}
	for _, child := range c.Children {
		ok, err := child.Eval(operand)
		if err != nil || ok {
			return ok, err
		}
	}
	return false, nil
}
