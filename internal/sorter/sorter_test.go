package sorter

import (
	"encoding/json"
	"slices"
	"strings"
	"testing"
)

func decodeDocument(t *testing.T, text string) any {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		t.Fatalf("decode document: %v", err)
	}
	return doc
}

func sortedIndexes(t *testing.T, criteria []Criterion, documents []string) []int {
	t.Helper()
	s := New(criteria)
	for _, d := range documents {
		s.Add(decodeDocument(t, d))
	}
	return s.Indexes()
}

func TestSorterIndexes(t *testing.T) {
	documents := []string{
		`{"i":1,"s":"snow","opt":10}`,
		`{"i":2,"s":"fire"}`,
		`{"i":0,"s":"abyss","opt":100}`,
	}

	tests := []struct {
		name      string
		criteria  []Criterion
		documents []string
		want      []int
	}{
		{
			name:      "no_criteria_keeps_insertion_order",
			criteria:  nil,
			documents: []string{`{"i":1}`, `{"i":0}`},
			want:      []int{0, 1},
		},
		{
			name:      "by_number",
			criteria:  []Criterion{{Pointer: "/i"}},
			documents: documents,
			want:      []int{2, 0, 1},
		},
		{
			name:      "by_string",
			criteria:  []Criterion{{Pointer: "/s"}},
			documents: documents,
			want:      []int{2, 1, 0},
		},
		{
			name:      "missing_path_sorts_as_null_first",
			criteria:  []Criterion{{Pointer: "/opt"}},
			documents: documents,
			want:      []int{1, 0, 2},
		},
		{
			name:     "descending",
			criteria: []Criterion{{Pointer: "/i", Order: Desc}},
			documents: []string{
				`{"i":10,"s":"bellatrix"}`,
				`{"i":5,"s":"cassandra"}`,
				`{"i":20,"s":"alexander"}`,
				`{"i":0,"s":"dimitrius"}`,
			},
			want: []int{2, 0, 1, 3},
		},
		{
			name:      "jsonpath_criterion",
			criteria:  []Criterion{{Pointer: "$.i"}},
			documents: documents,
			want:      []int{2, 0, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sortedIndexes(t, tt.criteria, tt.documents)
			if !slices.Equal(got, tt.want) {
				t.Fatalf("Indexes() = %v, want %v", got, tt.want)
			}
		})
	}
}

// The last declared criterion is the primary key; earlier criteria only
// break ties.
func TestSorterCriterionPriority(t *testing.T) {
	documents := []string{
		`{"i":0,"j":1,"opt":10}`,
		`{"i":1,"j":1}`,
		`{"i":1,"j":0,"opt":100}`,
		`{"i":0,"j":0}`,
	}

	tests := []struct {
		name     string
		criteria []Criterion
		want     []int
	}{
		{
			name:     "i_then_j_groups_by_j",
			criteria: []Criterion{{Pointer: "/i"}, {Pointer: "/j"}},
			want:     []int{3, 2, 0, 1},
		},
		{
			name:     "j_then_i_groups_by_i",
			criteria: []Criterion{{Pointer: "/j"}, {Pointer: "/i"}},
			want:     []int{3, 0, 2, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sortedIndexes(t, tt.criteria, documents)
			if !slices.Equal(got, tt.want) {
				t.Fatalf("Indexes() = %v, want %v", got, tt.want)
			}
		})
	}
}

// The composite comparator must produce exactly the permutation of one
// stable sort pass per criterion in declaration order.
func TestSorterMatchesSequentialStablePasses(t *testing.T) {
	documents := []string{
		`{"a":2,"b":"x","c":true}`,
		`{"a":1,"b":"y"}`,
		`{"a":2,"b":"y","c":false}`,
		`{"a":1,"b":"x","c":true}`,
		`{"b":"x","c":false}`,
		`{"a":1,"b":"y","c":true}`,
	}
	criteria := []Criterion{
		{Pointer: "/a"},
		{Pointer: "/b", Order: Desc},
		{Pointer: "/c"},
	}

	s := New(criteria)
	decoded := make([]any, len(documents))
	for i, d := range documents {
		decoded[i] = decodeDocument(t, d)
		s.Add(decoded[i])
	}

	// reference: one stable pass per criterion, in declaration order
	type refSlot struct {
		index int
		keys  []Value
	}
	ref := make([]refSlot, len(decoded))
	for i, doc := range decoded {
		keys := make([]Value, len(criteria))
		for k, c := range criteria {
			keys[k] = extract(t, c.Pointer, doc)
		}
		ref[i] = refSlot{index: i, keys: keys}
	}
	for k, c := range criteria {
		cmp := func(a, b refSlot) int { return a.keys[k].Compare(b.keys[k]) }
		if c.Order == Desc {
			cmp = func(a, b refSlot) int { return b.keys[k].Compare(a.keys[k]) }
		}
		slices.SortStableFunc(ref, cmp)
	}

	want := make([]int, len(ref))
	for i, r := range ref {
		want[i] = r.index
	}

	if got := s.Indexes(); !slices.Equal(got, want) {
		t.Fatalf("Indexes() = %v, want %v", got, want)
	}
}

func extract(t *testing.T, path string, doc any) Value {
	t.Helper()
	s := New([]Criterion{{Pointer: path}})
	s.Add(doc)
	return s.slots[0].keys[0]
}

func TestSorterIndexesDoesNotMutate(t *testing.T) {
	s := New([]Criterion{{Pointer: "/i"}})
	for _, d := range []string{`{"i":2}`, `{"i":1}`, `{"i":3}`} {
		s.Add(decodeDocument(t, d))
	}

	first := s.Indexes()
	second := s.Indexes()
	if !slices.Equal(first, second) {
		t.Fatalf("Indexes() differs across calls: %v then %v", first, second)
	}
	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}
}
