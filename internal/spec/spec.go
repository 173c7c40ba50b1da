// Package spec decodes specification documents into compiled query and sort
// trees. Documents are YAML; since YAML is a superset of JSON, the JSON wire
// format is accepted verbatim.
package spec

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"

	"github.com/berquerant/jsongrep/internal/matcher"
	"github.com/berquerant/jsongrep/internal/query"
	"github.com/berquerant/jsongrep/internal/sorter"
)

// ErrDocument is the sentinel wrapped by every malformed-document error.
var ErrDocument = errors.New("invalid specification document")

// ParseQuery decodes a query document: {"query": <condition tree>}.
func ParseQuery(data []byte) (*query.Query, error) {
	doc, err := decode(data)
	if err != nil {
		return nil, err
	}

	raw, ok := doc["query"]
	if !ok {
		return nil, fmt.Errorf("%w: missing query", ErrDocument)
	}

	root, err := buildQueryCondition(raw)
	if err != nil {
		return nil, err
	}

	return &query.Query{Root: root}, nil
}

// ParseSort decodes a sort document: {"sort":[{"p":..., "ord":...}, ...]}.
// An omitted ord defaults to ascending.
func ParseSort(data []byte) ([]sorter.Criterion, error) {
	doc, err := decode(data)
	if err != nil {
		return nil, err
	}

	raw, ok := doc["sort"]
	if !ok {
		return nil, fmt.Errorf("%w: missing sort", ErrDocument)
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: sort must be a list, got %T", ErrDocument, raw)
	}

	criteria := make([]sorter.Criterion, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: sort entry must be a mapping, got %T", ErrDocument, item)
		}

		path, ok := m["p"].(string)
		if !ok {
			return nil, fmt.Errorf("%w: sort entry requires a string p", ErrDocument)
		}

		order := sorter.Asc
		if raw, ok := m["ord"]; ok {
			name, ok := raw.(string)
			if !ok {
				return nil, fmt.Errorf("%w: ord must be a string, got %T", ErrDocument, raw)
			}
			switch name {
			case "asc":
			case "desc":
				order = sorter.Desc
			default:
				return nil, fmt.Errorf("%w: unknown ord %q", ErrDocument, name)
			}
		}

		criteria = append(criteria, sorter.Criterion{Pointer: path, Order: order})
	}

	return criteria, nil
}

func decode(data []byte) (map[string]any, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocument, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: empty document", ErrDocument)
	}
	return doc, nil
}

func buildQueryCondition(v any) (query.QueryCondition, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: query condition must be a mapping, got %T", ErrDocument, v)
	}

	typ, ok := m["type"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: query condition requires a string type", ErrDocument)
	}
	pair, ok := m["pair"]
	if !ok {
		return nil, fmt.Errorf("%w: query condition %q requires pair", ErrDocument, typ)
	}

	switch typ {
	case "raw":
		pm, ok := pair.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: raw pair must be a mapping, got %T", ErrDocument, pair)
		}
		path, ok := pm["p"].(string)
		if !ok {
			return nil, fmt.Errorf("%w: raw pair requires a string p", ErrDocument)
		}
		cond, err := buildCondition(pm["cond"])
		if err != nil {
			return nil, err
		}
		return &query.Raw{Pointer: path, Condition: cond}, nil
	case "not":
		child, err := buildQueryCondition(pair)
		if err != nil {
			return nil, err
		}
		return &query.Not[any]{Child: child}, nil
	case "and", "or":
		items, ok := pair.([]any)
		if !ok {
			return nil, fmt.Errorf("%w: %s pair must be a list, got %T", ErrDocument, typ, pair)
		}
		children := make([]query.QueryCondition, 0, len(items))
		for _, item := range items {
			child, err := buildQueryCondition(item)
			if err != nil {
				return nil, err
			}
			children = append(children, child)
		}
		if typ == "and" {
			return &query.And[any]{Children: children}, nil
		}
		return &query.Or[any]{Children: children}, nil
	default:
		return nil, fmt.Errorf("%w: unknown query condition type %q", ErrDocument, typ)
	}
}

func buildCondition(v any) (query.Condition, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: condition must be a mapping, got %T", ErrDocument, v)
	}

	typ, ok := m["type"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: condition requires a string type", ErrDocument)
	}
	payload, ok := m["value"]
	if !ok {
		return nil, fmt.Errorf("%w: condition %q requires value", ErrDocument, typ)
	}

	switch typ {
	case "eq", "gt", "lt":
		value, err := buildValue(payload)
		if err != nil {
			return nil, err
		}
		switch typ {
		case "eq":
			return &query.Equal{Value: value}, nil
		case "gt":
			return &query.GreaterThan{Value: value}, nil
		default:
			return &query.LessThan{Value: value}, nil
		}
	case "match":
		value, err := buildValue(payload)
		if err != nil {
			return nil, err
		}
		kind, err := buildMatchKind(m["mtype"])
		if err != nil {
			return nil, err
		}
		return &query.Match{Value: value, Kind: kind}, nil
	case "not":
		child, err := buildCondition(payload)
		if err != nil {
			return nil, err
		}
		return &query.Not[query.Value]{Child: child}, nil
	case "and", "or":
		items, ok := payload.([]any)
		if !ok {
			return nil, fmt.Errorf("%w: %s value must be a list, got %T", ErrDocument, typ, payload)
		}
		children := make([]query.Condition, 0, len(items))
		for _, item := range items {
			child, err := buildCondition(item)
			if err != nil {
				return nil, err
			}
			children = append(children, child)
		}
		if typ == "and" {
			return &query.And[query.Value]{Children: children}, nil
		}
		return &query.Or[query.Value]{Children: children}, nil
	default:
		return nil, fmt.Errorf("%w: unknown condition type %q", ErrDocument, typ)
	}
}

func buildMatchKind(v any) (matcher.Kind, error) {
	name, ok := v.(string)
	if !ok {
		return 0, fmt.Errorf("%w: match requires a string mtype, got %T", ErrDocument, v)
	}
	switch name {
	case "contain":
		return matcher.Contain, nil
	case "regex":
		return matcher.Regex, nil
	default:
		return 0, fmt.Errorf("%w: unknown mtype %q", ErrDocument, name)
	}
}

func buildValue(v any) (query.Value, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return query.Value{}, fmt.Errorf("%w: value must be a mapping, got %T", ErrDocument, v)
	}

	typ, ok := m["type"].(string)
	if !ok {
		return query.Value{}, fmt.Errorf("%w: value requires a string type", ErrDocument)
	}

	switch typ {
	case "null":
		return query.Null(), nil
	case "bool":
		b, ok := m["value"].(bool)
		if !ok {
			return query.Value{}, fmt.Errorf("%w: bool value requires a bool, got %T", ErrDocument, m["value"])
		}
		return query.Bool(b), nil
	case "number":
		f, ok := toFloat64(m["value"])
		if !ok {
			return query.Value{}, fmt.Errorf("%w: number value requires a number, got %T", ErrDocument, m["value"])
		}
		return query.FromNumber(f), nil
	case "string":
		s, ok := m["value"].(string)
		if !ok {
			return query.Value{}, fmt.Errorf("%w: string value requires a string, got %T", ErrDocument, m["value"])
		}
		return query.String(s), nil
	default:
		return query.Value{}, fmt.Errorf("%w: unknown value type %q", ErrDocument, typ)
	}
}

// toFloat64 covers the numeric representations the YAML decoder produces.
func toFloat64(v any) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint64:
		return float64(x), true
	case float64:
		return x, true
	default:
		return 0, false
	}
}
