// Package pointer resolves path expressions against decoded JSON documents.
//
// Two syntaxes are supported: RFC 6901 JSON Pointers ("/a/b/0") and, for
// paths beginning with "$", RFC 9535 JSONPath expressions evaluated with
// singular semantics.
package pointer

import (
	"strconv"
	"strings"

	"github.com/theory/jsonpath"
)

// Resolve looks up path within doc and reports whether the path addressed a
// value. Documents are the generic values produced by encoding/json:
// map[string]any, []any, and scalar leaves.
func Resolve(path string, doc any) (any, bool) {
	if strings.HasPrefix(path, "$") {
		return resolveJSONPath(path, doc)
	}
	return resolvePointer(path, doc)
}

// resolveJSONPath selects the first node matched by the expression.
// An expression that selects nothing, or fails to parse, resolves nothing.
func resolveJSONPath(path string, doc any) (any, bool) {
	parsed, err := jsonpath.Parse(path)
	if err != nil {
		return nil, false
	}

	results := parsed.Select(doc)
	if len(results) == 0 {
		return nil, false
	}

	return results[0], true
}

func resolvePointer(path string, doc any) (any, bool) {
	if path == "" {
		return doc, true
	}
	if !strings.HasPrefix(path, "/") {
		return nil, false
	}

	current := doc
	for _, token := range strings.Split(path[1:], "/") {
		// ~1 before ~0 so "~01" unescapes to "~1", not "/".
		token = strings.ReplaceAll(token, "~1", "/")
		token = strings.ReplaceAll(token, "~0", "~")

		switch node := current.(type) {
		case map[string]any:
			child, ok := node[token]
			if !ok {
				return nil, false
			}
			current = child
		case []any:
			index, err := strconv.Atoi(token)
			if err != nil || index < 0 || index >= len(node) {
				return nil, false
			}
			current = node[index]
		default:
			return nil, false
		}
	}

	return current, true
}
