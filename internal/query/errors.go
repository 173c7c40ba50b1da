package query

import "fmt"

// TypeMismatchError reports eq/gt/lt operands of different Scalar Value
// variants. By names the evaluating node.
type TypeMismatchError struct {
	Want string
	Got  string
	By   string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("type mismatch (want %s, got %s, by %s)", e.Want, e.Got, e.By)
}

// MatcherTypeMismatchError reports a match whose operands are not both
// strings.
type MatcherTypeMismatchError struct {
	MatcherType  string
	MatcherValue string
	Target       string
	By           string
}

func (e *MatcherTypeMismatchError) Error() string {
	return fmt.Sprintf("matcher type mismatch (matcher_type %s, matcher_value %s, target %s, by %s)",
		e.MatcherType, e.MatcherValue, e.Target, e.By)
}

// NoChildrenError reports an and/or node with zero children.
type NoChildrenError struct {
	By string
}

func (e *NoChildrenError) Error() string {
	return fmt.Sprintf("no children (by %s)", e.By)
}

// UnresolvedPointerError reports a path with no target in the document.
type UnresolvedPointerError struct {
	Pointer string
	Value   string
}

func (e *UnresolvedPointerError) Error() string {
	return fmt.Sprintf("unresolved pointer (pointer %q, value %s)", e.Pointer, e.Value)
}

// InvalidTargetError reports a path resolving to an array or object, which
// no Scalar Value can represent.
type InvalidTargetError struct {
	Pointer string
	Value   string
}

func (e *InvalidTargetError) Error() string {
	return fmt.Sprintf("invalid target (pointer %q, value %s)", e.Pointer, e.Value)
}
