package matcher

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
)

// Kind selects how a pattern is tested against a candidate string.
type Kind int

const (
	// Contain tests that the candidate contains the pattern as a substring.
	Contain Kind = iota
	// Regex compiles the pattern as a regular expression and tests the
	// candidate against it.
	Regex
)

func (k Kind) String() string {
	switch k {
	case Contain:
		return "Contain"
	case Regex:
		return "Regex"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// InvalidPatternError reports a pattern that fails to compile as a regular
// expression.
type InvalidPatternError struct {
	Pattern string
	Err     error
}

func (e *InvalidPatternError) Error() string {
	return fmt.Sprintf("invalid regex %q: %v", e.Pattern, e.Err)
}

func (e *InvalidPatternError) Unwrap() error { return e.Err }

// Cache compiles regular expressions at most once per pattern text.
// It is safe for concurrent use; lookup and compile-and-insert happen under
// one lock, so a cache hit never recompiles.
type Cache struct {
	mu       sync.Mutex
	patterns map[string]*regexp.Regexp
}

// NewCache returns an empty pattern cache. Entries are never evicted.
func NewCache() *Cache {
	return &Cache{patterns: make(map[string]*regexp.Regexp)}
}

func (c *Cache) compile(pattern string) (*regexp.Regexp, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if compiled, ok := c.patterns[pattern]; ok {
		return compiled, nil
	}

	compiled, err := regexp.Compile(pattern)
	if err != nil {
		return nil, &InvalidPatternError{Pattern: pattern, Err: err}
	}
	c.patterns[pattern] = compiled

	return compiled, nil
}

// Test reports whether candidate matches pattern under kind.
func (c *Cache) Test(kind Kind, pattern, candidate string) (bool, error) {
	switch kind {
	case Contain:
		return strings.Contains(candidate, pattern), nil
	case Regex:
		compiled, err := c.compile(pattern)
		if err != nil {
			return false, err
		}
		return compiled.MatchString(candidate), nil
	default:
		return false, fmt.Errorf("unknown match kind %d", int(kind))
	}
}

// defaultCache lives for the whole process.
var defaultCache = NewCache()

// Test tests candidate against pattern using the process-wide cache.
func Test(kind Kind, pattern, candidate string) (bool, error) {
	return defaultCache.Test(kind, pattern, candidate)
}
