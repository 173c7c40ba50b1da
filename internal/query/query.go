// Package query evaluates declarative boolean condition trees against JSON
// documents. A Query holds a tree of QueryCondition nodes; each Raw leaf
// resolves a path within the document into a Scalar Value and tests it with
// a Condition tree.
package query

import (
	"encoding/json"
	"fmt"

	"github.com/berquerant/jsongrep/internal/pointer"
)

// QueryCondition evaluates a whole decoded document.
type QueryCondition = Evaluator[any]

// Raw resolves a path within the document and tests the result with a
// condition tree. A path without a target fails with
// UnresolvedPointerError; a path addressing an array or object fails with
// InvalidTargetError.
type Raw struct {
	Pointer   string
	Condition Condition
}

func (q *Raw) Eval(document any) (bool, error) {
	target, ok := pointer.Resolve(q.Pointer, document)
	if !ok {
		return false, &UnresolvedPointerError{
			Pointer: q.Pointer,
			Value:   renderDocument(document),
		}
	}

	value, ok := fromDocument(target)
	if !ok {
		return false, &InvalidTargetError{
			Pointer: q.Pointer,
			Value:   renderDocument(document),
		}
	}

	return q.Condition.Eval(value)
}

// Query is a compiled filter over whole documents.
type Query struct {
	Root QueryCondition
}

// Eval reports whether document satisfies the query.
func (q *Query) Eval(document any) (bool, error) {
	return q.Root.Eval(document)
}

func renderDocument(document any) string {
	b, err := json.Marshal(document)
	if err != nil {
		return fmt.Sprintf("%v", document)
	}
	return string(b)
}
