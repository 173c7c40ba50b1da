// Package selector filters JSON records with a compiled query.
package selector

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/berquerant/jsongrep/internal/query"
)

// ErrNotSelected reports a record the query evaluated to false. It marks a
// filtered record, not a failure; callers suppress it from diagnostics.
var ErrNotSelected = errors.New("not selected")

// Selector filters JSON records. A nil query accepts every valid record.
type Selector struct {
	query *query.Query
}

// New returns a selector backed by q.
func New(q *query.Query) *Selector {
	return &Selector{query: q}
}

// All returns a selector without a query; it accepts any valid JSON record.
func All() *Selector {
	return &Selector{}
}

// Select parses line as one JSON document and evaluates the query against
// it. It returns the decoded document when the record passes, ErrNotSelected
// when the query evaluates to false, and the underlying error when the line
// is not valid JSON or evaluation fails. Numbers decode as json.Number so
// the integer/float distinction survives into evaluation.
func (s *Selector) Select(line string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(line))
	dec.UseNumber()

	var document any
	if err := dec.Decode(&document); err != nil {
		return nil, fmt.Errorf("malformed input: %w", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("malformed input: trailing data after document")
	}

	if s.query == nil {
		return document, nil
	}

	ok, err := s.query.Eval(document)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotSelected
	}
	return document, nil
}
