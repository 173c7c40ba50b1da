// Package sorter orders buffered JSON documents by declared sort criteria.
//
// Criteria apply as sequential stable sorts, one pass per criterion in
// declaration order. Because each later pass only reorders documents that
// differ on its own key, the LAST declared criterion ends up as the primary
// sort key and the first declared is the weakest tie breaker.
package sorter

import (
	"slices"

	"github.com/berquerant/jsongrep/internal/pointer"
)

// Order is a sort direction.
type Order int

const (
	Asc Order = iota
	Desc
)

func (o Order) String() string {
	if o == Desc {
		return "desc"
	}
	return "asc"
}

// Criterion pairs a path with a direction.
type Criterion struct {
	Pointer string
	Order   Order
}

// slot tags one document's comparison keys with its insertion index.
type slot struct {
	index int
	keys  []Value
}

// Sorter buffers comparison keys for added documents and reports the sorted
// permutation. The complete set of documents must be added before any order
// is known.
type Sorter struct {
	criteria []Criterion
	slots    []slot
}

func New(criteria []Criterion) *Sorter {
	return &Sorter{criteria: criteria}
}

// Add extracts one comparison key per criterion from document, in
// declaration order. A path that does not resolve contributes Null; key
// extraction never fails.
func (s *Sorter) Add(document any) {
	keys := make([]Value, len(s.criteria))
	for i, c := range s.criteria {
		target, ok := pointer.Resolve(c.Pointer, document)
		if !ok {
			keys[i] = Null()
			continue
		}
		keys[i] = FromDocument(target)
	}
	s.slots = append(s.slots, slot{index: len(s.slots), keys: keys})
}

// Len returns the number of added documents.
func (s *Sorter) Len() int { return len(s.slots) }

// Indexes returns the original insertion indexes in sorted order.
//
// One stable sort with a composite comparator over the criteria in reverse
// declared order yields the same permutation as the per-criterion passes,
// without the extra passes: the comparator falls through to an earlier
// criterion only on exact key equality, and stability preserves insertion
// order on full ties.
func (s *Sorter) Indexes() []int {
	slots := slices.Clone(s.slots)
	slices.SortStableFunc(slots, func(a, b slot) int {
		for i := len(s.criteria) - 1; i >= 0; i-- {
			r := a.keys[i].Compare(b.keys[i])
			if r == 0 {
				continue
			}
			if s.criteria[i].Order == Desc {
				return -r
			}
			return r
		}
		return 0
	})

	indexes := make([]int, len(slots))
	for i, sl := range slots {
		indexes[i] = sl.index
	}
	return indexes
}
