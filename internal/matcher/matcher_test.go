package matcher

import (
	"errors"
	"testing"
)

func TestTestContain(t *testing.T) {
	tests := []struct {
		name      string
		pattern   string
		candidate string
		want      bool
	}{
		{name: "equal", pattern: "dwarf", candidate: "dwarf", want: true},
		{name: "substring", pattern: "dwarf", candidate: "white dwarf", want: true},
		{name: "no_match", pattern: "dwarf", candidate: "giant", want: false},
		{name: "reversed_not_contained", pattern: "white dwarf", candidate: "dwarf", want: false},
		{name: "empty_pattern", pattern: "", candidate: "anything", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Test(Contain, tt.pattern, tt.candidate)
			if err != nil {
				t.Fatalf("Test() error = %v", err)
			}
			if got != tt.want {
				t.Fatalf("Test() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTestRegex(t *testing.T) {
	tests := []struct {
		name      string
		pattern   string
		candidate string
		want      bool
	}{
		{name: "equal", pattern: "dwarf", candidate: "dwarf", want: true},
		{name: "wildcard", pattern: "s.*e", candidate: "slice", want: true},
		{name: "wildcard_longer", pattern: "s.*e", candidate: "slice ice", want: true},
		{name: "anchored_no_match", pattern: "^dwarf", candidate: "brown dwarf", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Test(Regex, tt.pattern, tt.candidate)
			if err != nil {
				t.Fatalf("Test() error = %v", err)
			}
			if got != tt.want {
				t.Fatalf("Test() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTestInvalidPattern(t *testing.T) {
	_, err := Test(Regex, "(", "anything")
	if err == nil {
		t.Fatal("Test() error = nil, want invalid pattern error")
	}

	var patternErr *InvalidPatternError
	if !errors.As(err, &patternErr) {
		t.Fatalf("Test() error = %v, want *InvalidPatternError", err)
	}
	if patternErr.Pattern != "(" {
		t.Fatalf("Pattern = %q, want %q", patternErr.Pattern, "(")
	}
}

func TestCacheCompilesOnce(t *testing.T) {
	cache := NewCache()

	first, err := cache.compile("^ca[ts]$")
	if err != nil {
		t.Fatalf("compile() error = %v", err)
	}

	for range 10 {
		got, err := cache.Test(Regex, "^ca[ts]$", "cat")
		if err != nil {
			t.Fatalf("Test() error = %v", err)
		}
		if !got {
			t.Fatal("Test() = false, want true")
		}
	}

	if len(cache.patterns) != 1 {
		t.Fatalf("cache size = %d, want 1", len(cache.patterns))
	}

	second, err := cache.compile("^ca[ts]$")
	if err != nil {
		t.Fatalf("compile() error = %v", err)
	}
	if first != second {
		t.Fatal("compile() returned a new pattern, want the cached one")
	}
}

func TestCacheConcurrent(t *testing.T) {
	cache := NewCache()

	done := make(chan error)
	for range 8 {
		go func() {
			for range 100 {
				if _, err := cache.Test(Regex, "wal[tz]", "waltz"); err != nil {
					done <- err
					return
				}
			}
			done <- nil
		}()
	}

	for range 8 {
		if err := <-done; err != nil {
			t.Fatalf("Test() error = %v", err)
		}
	}

	if len(cache.patterns) != 1 {
		t.Fatalf("cache size = %d, want 1", len(cache.patterns))
	}
}

func TestTestUnknownKind(t *testing.T) {
	if _, err := Test(Kind(42), "p", "c"); err == nil {
		t.Fatal("Test() error = nil, want unknown kind error")
	}
}
