// Package config parses command-line arguments for jsongrep.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/berquerant/jsongrep/internal/exit"
)

var (
	ErrNoArguments    = errors.New("no arguments provided")
	ErrExclusiveQuery = errors.New("query-file and raw-query are exclusive")
	ErrExclusiveSort  = errors.New("sort-file and raw-sort are exclusive")
)

// Config is the resolved command-line configuration.
type Config struct {
	// Query specification: inline document or file path, at most one.
	RawQuery  string
	QueryFile string

	// Sort specification: inline document or file path, at most one.
	RawSort  string
	SortFile string

	// Output
	Template  string
	RateLimit float64 // emitted lines per second (0 = unlimited)
	Debug     bool
}

// Parse parses command-line arguments and returns a validated Config.
// If parsing fails or help is requested, returns nil config and exit result.
func Parse(args []string) (*Config, *exit.Result) {
	if len(args) == 0 {
		return nil, exit.Errorf("Error: %v\n\n%s", ErrNoArguments, Usage())
	}

	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)

	// Suppress the default usage and error output since we handle both.
	fs.Usage = func() {}
	fs.SetOutput(io.Discard)

	var (
		rawQuery  = fs.String("raw-query", "", "Query document given inline")
		queryFile = fs.String("query-file", "", "Path to a query document (JSON or YAML)")
		rawSort   = fs.String("raw-sort", "", "Sort document given inline")
		sortFile  = fs.String("sort-file", "", "Path to a sort document (JSON or YAML)")
		tmpl      = fs.String("template", "", "Output template for selected records")
		rateLimit = fs.Float64("rate-limit", 0, "Emitted lines per second (0 for unlimited)")
		debug     = fs.Bool("debug", false, "Report each record's verdict to stderr")
	)

	if err := fs.Parse(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, exit.Success(Usage())
		}
		return nil, exit.Errorf("Error: failed to parse arguments: %v\n\n%s", err, Usage())
	}

	if args := fs.Args(); len(args) > 0 {
		return nil, exit.Errorf("Error: unexpected arguments: %v\n\n%s", args, Usage())
	}

	config := &Config{
		RawQuery:  *rawQuery,
		QueryFile: *queryFile,
		RawSort:   *rawSort,
		SortFile:  *sortFile,
		Template:  *tmpl,
		RateLimit: *rateLimit,
		Debug:     *debug,
	}

	if err := config.Validate(); err != nil {
		return nil, exit.Errorf("Error: %v\n\n%s", err, Usage())
	}

	return config, nil
}

// Validate checks source exclusivity and that referenced files exist.
func (c *Config) Validate() error {
	if c.RawQuery != "" && c.QueryFile != "" {
		return ErrExclusiveQuery
	}
	if c.RawSort != "" && c.SortFile != "" {
		return ErrExclusiveSort
	}

	for _, file := range []string{c.QueryFile, c.SortFile} {
		if file == "" {
			continue
		}
		if _, err := os.Stat(file); err != nil {
			return fmt.Errorf("specification file %s not found: %w", file, err)
		}
	}

	return nil
}

// QueryDocument returns the query document text, or nil when none was
// configured.
func (c *Config) QueryDocument() ([]byte, error) {
	return document(c.RawQuery, c.QueryFile)
}

// SortDocument returns the sort document text, or nil when none was
// configured.
func (c *Config) SortDocument() ([]byte, error) {
	return document(c.RawSort, c.SortFile)
}

func document(raw, file string) ([]byte, error) {
	switch {
	case raw != "":
		return []byte(raw), nil
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read specification file %s: %w", file, err)
		}
		return data, nil
	default:
		return nil, nil
	}
}

// Usage returns a usage string for the CLI tool.
func Usage() string {
	return `jsongrep - grep and sort JSON records

Reads one JSON document per line from stdin, writes the documents selected
by the query to stdout, optionally reordered by the sort specification.
Records that fail to evaluate are reported to stderr and skipped; the
stream continues.

Usage: jsongrep [options]

Options:
  --raw-query DOC        Query document given inline
  --query-file FILE      Path to a query document (JSON or YAML)
  --raw-sort DOC         Sort document given inline
  --sort-file FILE       Path to a sort document (JSON or YAML)
  --template TEXT        Output template for selected records
  --rate-limit N         Emitted lines per second (0 for unlimited)
  --debug                Report each record's verdict to stderr
  -h, --help             Show this help message

Query documents wrap a condition tree:
  {"query":{"type":"raw","pair":{"p":"/s","cond":
    {"type":"match","mtype":"regex","value":{"type":"string","value":"[sS]irius"}}}}}
selects records whose /s value matches the regex, e.g. {"s":"sirius"}.
Condition types: eq, gt, lt, match, not, and, or.
Paths are JSON Pointers; paths starting with $ are JSONPath expressions.

Sort documents list criteria:
  {"sort":[{"p":"/i","ord":"desc"}]}
Value order: null < array < object < bool < number < string; array and
object contents are ignored. A path without a target sorts as null. With
several criteria the last one is the primary key and earlier ones break
ties.

Examples:
  jsongrep --raw-query '{"query":{"type":"raw","pair":{"p":"/level","cond":{"type":"eq","value":{"type":"string","value":"error"}}}}}' < app.log
  jsongrep --raw-sort '{"sort":[{"p":"/ts"}]}' < app.log
  jsongrep --template '{{uuid}} {{ptr . "/msg"}}' < app.log`
}
